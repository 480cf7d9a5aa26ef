package img2dot

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wbrown/img2dot/internal/config"
)

// MaxThreshold is the largest meaningful print threshold: the channel sum
// of a white edge pixel.
const MaxThreshold = 3 * 255

// Environment variables read by Settings.ApplyEnv. Each also accepts a
// _FILE suffix naming a file that holds the value.
const (
	EnvMaxDistance   = "IMG2DOT_MAX_DISTANCE"
	EnvStartDistance = "IMG2DOT_START_DISTANCE"
	EnvSpacing       = "IMG2DOT_SPACING"
	EnvThreshold     = "IMG2DOT_THRESHOLD"
	EnvImageDir      = "IMG2DOT_IMAGE_DIR"
	EnvOutputDir     = "IMG2DOT_OUTPUT_DIR"
	EnvDebug         = "IMG2DOT_DEBUG"
)

// Settings holds the device geometry and print threshold. Distances are
// in the slider's own units; Spacing is the travel between two dots.
type Settings struct {
	MaxDistance   int    `yaml:"max_distance"`
	StartDistance int    `yaml:"start_distance"`
	Spacing       int    `yaml:"spacing"`
	Threshold     int    `yaml:"threshold"`
	ImageDir      string `yaml:"image_dir"`
	OutputDir     string `yaml:"output_dir"`
	Debug         bool   `yaml:"debug"`
}

// DefaultSettings returns a 24-dot wide print area and a threshold of 150.
func DefaultSettings() Settings {
	return Settings{
		MaxDistance:   2900,
		StartDistance: 500,
		Spacing:       100,
		Threshold:     150,
		ImageDir:      "images",
		OutputDir:     "images",
		Debug:         true,
	}
}

// WidthBound returns the number of dots that fit on one row:
// MaxDistance/Spacing - StartDistance/Spacing, each term truncated.
func (s Settings) WidthBound() int {
	if s.Spacing <= 0 {
		return 0
	}
	return s.MaxDistance/s.Spacing - s.StartDistance/s.Spacing
}

// Validate reports every problem with the settings at once.
func (s Settings) Validate() error {
	var errs []error
	if s.Spacing <= 0 {
		errs = append(errs, fmt.Errorf("spacing must be positive, got %d", s.Spacing))
	}
	if s.MaxDistance < 0 || s.StartDistance < 0 {
		errs = append(errs, fmt.Errorf("distances must not be negative, got max %d start %d",
			s.MaxDistance, s.StartDistance))
	}
	if s.StartDistance > s.MaxDistance {
		errs = append(errs, fmt.Errorf("start distance %d exceeds max distance %d",
			s.StartDistance, s.MaxDistance))
	}
	if s.Spacing > 0 && s.WidthBound() <= 0 {
		errs = append(errs, fmt.Errorf("print width must be positive, got %d", s.WidthBound()))
	}
	if s.Threshold < 0 || s.Threshold > MaxThreshold {
		errs = append(errs, fmt.Errorf("threshold must be in [0, %d], got %d", MaxThreshold, s.Threshold))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
}

// LoadSettingsFile overlays the YAML file at path onto s. Keys missing
// from the file keep their current values.
func (s Settings) LoadSettingsFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("%w: parse %s: %w", ErrInvalidSettings, path, err)
	}
	return s, nil
}

// ApplyEnv overlays the IMG2DOT_* environment variables onto s.
func (s Settings) ApplyEnv() (Settings, error) {
	var errs []error
	for _, v := range []struct {
		key string
		dst *int
	}{
		{EnvMaxDistance, &s.MaxDistance},
		{EnvStartDistance, &s.StartDistance},
		{EnvSpacing, &s.Spacing},
		{EnvThreshold, &s.Threshold},
	} {
		n, err := config.GetInt(v.key, *v.dst)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*v.dst = n
	}
	s.ImageDir = config.Get(EnvImageDir, s.ImageDir)
	s.OutputDir = config.Get(EnvOutputDir, s.OutputDir)
	s.Debug = config.GetBool(EnvDebug, s.Debug)

	if len(errs) > 0 {
		return s, fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}
	return s, nil
}

// LoadSettings builds the effective settings: defaults, then the YAML
// file at path when path is not empty, then the environment.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path != "" {
		var err error
		if s, err = s.LoadSettingsFile(path); err != nil {
			return s, err
		}
	}
	return s.ApplyEnv()
}
