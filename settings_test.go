package img2dot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	if got := s.WidthBound(); got != 24 {
		t.Errorf("WidthBound() = %d, expected 24", got)
	}
	if s.Threshold != 150 {
		t.Errorf("Threshold = %d, expected 150", s.Threshold)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("default settings should validate: %v", err)
	}
}

func TestWidthBoundTruncatesEachTerm(t *testing.T) {
	t.Parallel()

	// 29 - 5
	s := Settings{MaxDistance: 2950, StartDistance: 550, Spacing: 100, Threshold: 100}
	if got := s.WidthBound(); got != 24 {
		t.Errorf("WidthBound() = %d, expected 24", got)
	}
	// 11 - 1, where (1150-160)/100 would be 9
	s = Settings{MaxDistance: 1150, StartDistance: 160, Spacing: 100, Threshold: 100}
	if got := s.WidthBound(); got != 10 {
		t.Errorf("WidthBound() = %d, expected 10", got)
	}
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
		ok     bool
	}{
		{"defaults", func(s *Settings) {}, true},
		{"zero spacing", func(s *Settings) { s.Spacing = 0 }, false},
		{"negative spacing", func(s *Settings) { s.Spacing = -10 }, false},
		{"start beyond max", func(s *Settings) { s.StartDistance = 3000 }, false},
		{"zero width", func(s *Settings) { s.StartDistance = s.MaxDistance }, false},
		{"threshold too high", func(s *Settings) { s.Threshold = 766 }, false},
		{"threshold negative", func(s *Settings) { s.Threshold = -1 }, false},
		{"threshold max", func(s *Settings) { s.Threshold = 765 }, true},
		{"threshold zero", func(s *Settings) { s.Threshold = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestLoadSettingsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	data := "threshold: 90\nspacing: 50\noutput_dir: out\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := DefaultSettings().LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("LoadSettingsFile: %v", err)
	}
	if s.Threshold != 90 || s.Spacing != 50 || s.OutputDir != "out" {
		t.Errorf("unexpected settings %+v", s)
	}
	// Untouched keys keep their defaults.
	if s.MaxDistance != 2900 || s.ImageDir != "images" {
		t.Errorf("defaults lost: %+v", s)
	}
	if got := s.WidthBound(); got != 48 {
		t.Errorf("WidthBound() = %d, expected 48", got)
	}
}

func TestLoadSettingsFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := DefaultSettings().LoadSettingsFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("threshold: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := DefaultSettings().LoadSettingsFile(bad); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvThreshold, "200")
	t.Setenv(EnvImageDir, "/srv/images")
	t.Setenv(EnvDebug, "false")

	secret := filepath.Join(t.TempDir(), "spacing")
	if err := os.WriteFile(secret, []byte("25\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvSpacing+"_FILE", secret)

	s, err := DefaultSettings().ApplyEnv()
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if s.Threshold != 200 {
		t.Errorf("Threshold = %d, expected 200", s.Threshold)
	}
	if s.Spacing != 25 {
		t.Errorf("Spacing = %d, expected 25", s.Spacing)
	}
	if s.ImageDir != "/srv/images" {
		t.Errorf("ImageDir = %q", s.ImageDir)
	}
	if s.Debug {
		t.Error("Debug should be disabled from the environment")
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv(EnvThreshold, "lots")

	s, err := DefaultSettings().ApplyEnv()
	if !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
	if s.Threshold != 150 {
		t.Errorf("Threshold = %d, expected default to survive", s.Threshold)
	}
}

func TestLoadSettingsLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("threshold: 90\nspacing: 50\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvThreshold, "120")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Threshold != 120 {
		t.Errorf("environment should override file: threshold %d", s.Threshold)
	}
	if s.Spacing != 50 {
		t.Errorf("file should override defaults: spacing %d", s.Spacing)
	}
}
