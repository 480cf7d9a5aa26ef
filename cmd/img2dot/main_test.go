package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wbrown/img2dot"
	"github.com/wbrown/img2dot/imageutil"
)

// execute runs the root command with args and returns what it printed on
// stdout. Commands share global flag state, so these tests do not run in
// parallel.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&logs)
	rootCmd.SetArgs(append(args, "--no-color", "--log-level", "warn"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPaletteCommand(t *testing.T) {
	out, err := execute(t, "palette")
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 inks, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "0 white") || !strings.Contains(lines[0], "#ffffff") {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.HasPrefix(lines[5], "5 black") {
		t.Errorf("unexpected last line %q", lines[5])
	}
}

func TestConvertInspectPreview(t *testing.T) {
	imageDir := t.TempDir()
	outDir := t.TempDir()
	black := imageutil.RGB{}
	white := imageutil.RGB{R: 255, G: 255, B: 255}
	img := imageutil.CreateSplitImage(100, 50, black, white)
	if err := imageutil.SavePNG(img, filepath.Join(imageDir, "split.png")); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "convert", "split.png",
		"--image-dir", imageDir, "--output-dir", outDir, "--preview")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if !strings.Contains(out, "Grid:        24 x 12") {
		t.Errorf("unexpected convert output:\n%s", out)
	}
	matrixPath := filepath.Join(outDir, img2dot.MatrixFile)
	for _, name := range []string{img2dot.MatrixFile, img2dot.EdgesFile, img2dot.PreviewFile} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}

	out, err = execute(t, "inspect", matrixPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "Print cells: 12 of 288") {
		t.Errorf("unexpected inspect output:\n%s", out)
	}

	out, err = execute(t, "inspect", matrixPath, "--ink", "Black")
	if err != nil {
		t.Fatalf("inspect --ink: %v", err)
	}
	if !strings.Contains(out, "Cells with black:") || !strings.Contains(out, "row 0 col 11") ||
		!strings.Contains(out, "row 11 col 11") || strings.Contains(out, "col 12") {
		t.Errorf("unexpected ink listing:\n%s", out)
	}
	if _, err := execute(t, "inspect", matrixPath, "--ink", "purple"); !errors.Is(err, img2dot.ErrInvalidPalette) {
		t.Errorf("expected ErrInvalidPalette for unknown ink, got %v", err)
	}
	_ = inspectCmd.Flags().Set("ink", "")

	previewPath := filepath.Join(t.TempDir(), "plot.png")
	if _, err := execute(t, "preview", matrixPath, "--output", previewPath, "--no-labels"); err != nil {
		t.Fatalf("preview: %v", err)
	}
	preview, err := imageutil.LoadImage(previewPath)
	if err != nil {
		t.Fatal(err)
	}
	if preview.Width() != 24*24 || preview.Height() != 12*24 {
		t.Errorf("preview is %dx%d", preview.Width(), preview.Height())
	}
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "convert", filepath.Join(dir, "missing.png"), "--output-dir", dir); !errors.Is(err, img2dot.ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
	if _, err := execute(t, "convert", "x.png", "--spacing", "0", "--output-dir", dir); !errors.Is(err, img2dot.ErrInvalidSettings) {
		t.Errorf("expected ErrInvalidSettings, got %v", err)
	}
	// Reset for later tests sharing the flag set.
	_ = convertCmd.Flags().Set("spacing", "100")
}

func TestInspectMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("0,1,\n0,\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "inspect", path); !errors.Is(err, img2dot.ErrMalformedMatrix) {
		t.Errorf("expected ErrMalformedMatrix, got %v", err)
	}
}
