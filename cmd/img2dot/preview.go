package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wbrown/img2dot"
	"github.com/wbrown/img2dot/internal/logging"
)

var previewCmd = &cobra.Command{
	Use:   "preview [matrix]",
	Short: "Render a matrix file as a PNG plot preview",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	d := img2dot.DefaultPreviewOptions()
	f := previewCmd.Flags()
	f.StringP("output", "o", img2dot.PreviewFile, "Output PNG file")
	f.Int("cell-size", d.CellSize, "Pixels per grid cell")
	f.Float64("dot-ratio", d.DotRatio, "Dot diameter as a fraction of the cell")
	f.Bool("no-labels", false, "Omit row and column numbers")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	cellSize, _ := cmd.Flags().GetInt("cell-size")
	dotRatio, _ := cmd.Flags().GetFloat64("dot-ratio")
	noLabels, _ := cmd.Flags().GetBool("no-labels")

	m, err := img2dot.LoadMatrix(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	opts := img2dot.DefaultPreviewOptions()
	opts.CellSize = cellSize
	opts.DotRatio = dotRatio
	opts.Labels = !noLabels

	if err := img2dot.SavePreview(output, m, img2dot.DefaultPalette(), opts); err != nil {
		return err
	}
	logging.WithComponent(slog.Default(), logging.ComponentPreview).Info("preview saved",
		"path", output, "cols", m.Cols(), "rows", m.Rows())
	fmt.Fprintf(cmd.OutOrStdout(), "Preview: %s\n", output)
	return nil
}
