package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wbrown/img2dot"
	"github.com/wbrown/img2dot/imageutil"
)

var convertCmd = &cobra.Command{
	Use:   "convert [image]",
	Short: "Convert an image into a print matrix",
	Long: `Detect edges in the image, downsample it to the plotter grid and
write matrix.txt to the output directory. Diagnostic images are written
alongside unless --no-debug is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	f := convertCmd.Flags()
	addSettingsFlags(f)
	f.Bool("no-debug", false, "Do not write diagnostic images")
	f.Int("debug-scale", 0, "Also write diagnostic images enlarged by this factor")
	f.String("border", "replicate", "Edge detector border policy (replicate, zero)")
	f.Bool("preview", false, "Also render preview.png")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	noDebug, _ := cmd.Flags().GetBool("no-debug")
	debugScale, _ := cmd.Flags().GetInt("debug-scale")
	borderStr, _ := cmd.Flags().GetString("border")
	withPreview, _ := cmd.Flags().GetBool("preview")

	border, err := imageutil.ParseBorderPolicy(borderStr)
	if err != nil {
		return err
	}

	p, err := img2dot.LoadProcessor(args[0], settings,
		img2dot.WithLogger(slog.Default()),
		img2dot.WithBorder(border),
		img2dot.WithDebugImages(settings.Debug && !noDebug),
		img2dot.WithDebugScale(debugScale),
	)
	if err != nil {
		return err
	}

	m, path, err := p.Run()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Matrix:      %s\n", path)
	fmt.Fprintf(out, "Grid:        %d x %d\n", m.Cols(), m.Rows())
	fmt.Fprintf(out, "Print cells: %d of %d\n", m.PrintCells(), m.Cols()*m.Rows())

	if withPreview {
		previewPath := filepath.Join(settings.OutputDir, img2dot.PreviewFile)
		if err := img2dot.SavePreview(previewPath, m, p.Palette(), img2dot.DefaultPreviewOptions()); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
		fmt.Fprintf(out, "Preview:     %s\n", previewPath)
	}
	return nil
}
