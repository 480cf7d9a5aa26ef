package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wbrown/img2dot"
	"github.com/wbrown/img2dot/internal/logging"
)

func addSettingsFlags(f *pflag.FlagSet) {
	d := img2dot.DefaultSettings()
	f.String("settings", "", "YAML settings file")
	f.String("image-dir", d.ImageDir, "Directory searched for relative image names")
	f.StringP("output-dir", "o", d.OutputDir, "Directory for matrix.txt and diagnostics")
	f.Int("threshold", d.Threshold, "Edge channel sum above which a cell prints (0-765)")
	f.Int("max-distance", d.MaxDistance, "Slider travel at the far edge of the sheet")
	f.Int("start-distance", d.StartDistance, "Slider travel at the first dot")
	f.Int("spacing", d.Spacing, "Slider travel between dots")
}

// loadSettings layers defaults, the settings file, the environment and
// finally any flags given explicitly on the command line.
func loadSettings(cmd *cobra.Command) (img2dot.Settings, error) {
	f := cmd.Flags()
	path, _ := f.GetString("settings")

	s, err := img2dot.LoadSettings(path)
	if err != nil {
		return s, err
	}

	if f.Changed("image-dir") {
		s.ImageDir, _ = f.GetString("image-dir")
	}
	if f.Changed("output-dir") {
		s.OutputDir, _ = f.GetString("output-dir")
	}
	for name, dst := range map[string]*int{
		"threshold":      &s.Threshold,
		"max-distance":   &s.MaxDistance,
		"start-distance": &s.StartDistance,
		"spacing":        &s.Spacing,
	} {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	logging.WithComponent(slog.Default(), logging.ComponentSettings).Debug("settings loaded",
		"file", path,
		"width", s.WidthBound(),
		"threshold", s.Threshold,
		"image_dir", s.ImageDir,
		"output_dir", s.OutputDir)
	return s, nil
}
