package img2dot

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/wbrown/img2dot/imageutil"
)

func TestRenderPreviewDimensions(t *testing.T) {
	t.Parallel()

	m := NewMatrix(12, 24)
	opts := DefaultPreviewOptions()
	img, err := RenderPreview(m, DefaultPalette(), opts)
	if err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}
	wantW := opts.Margin + 24*opts.CellSize
	wantH := opts.Margin + 12*opts.CellSize
	if img.Bounds().Dx() != wantW || img.Bounds().Dy() != wantH {
		t.Errorf("preview is %dx%d, expected %dx%d",
			img.Bounds().Dx(), img.Bounds().Dy(), wantW, wantH)
	}

	opts.Labels = false
	img, err = RenderPreview(m, DefaultPalette(), opts)
	if err != nil {
		t.Fatalf("RenderPreview without labels: %v", err)
	}
	if img.Bounds().Dx() != 24*opts.CellSize {
		t.Errorf("unlabelled preview should have no margin, width %d", img.Bounds().Dx())
	}
}

func TestRenderPreviewDots(t *testing.T) {
	t.Parallel()

	m := Matrix{
		{0, 1},
		{5, 0},
	}
	opts := PreviewOptions{CellSize: 20, DotRatio: 0.8}
	img, err := RenderPreview(m, DefaultPalette(), opts)
	if err != nil {
		t.Fatalf("RenderPreview: %v", err)
	}
	rgb := imageutil.RGBAImageFromImage(img)

	// Cell centers carry the ink, background cells stay white.
	if got := rgb.GetRGB(30, 10); got != (imageutil.RGB{R: 255}) {
		t.Errorf("red cell center = %v", got)
	}
	if got := rgb.GetRGB(10, 30); got != (imageutil.RGB{}) {
		t.Errorf("black cell center = %v", got)
	}
	if got := rgb.GetRGB(10, 10); got != (imageutil.RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("background cell center = %v", got)
	}
	// Just inside the cell corner lies outside the disc.
	if got := rgb.GetRGB(22, 2); got != (imageutil.RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("red cell corner = %v, expected white", got)
	}
}

func TestRenderPreviewErrors(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	if _, err := RenderPreview(Matrix{}, p, DefaultPreviewOptions()); !errors.Is(err, ErrMalformedMatrix) {
		t.Errorf("empty matrix: expected ErrMalformedMatrix, got %v", err)
	}
	if _, err := RenderPreview(Matrix{{7}}, p, DefaultPreviewOptions()); !errors.Is(err, ErrMalformedMatrix) {
		t.Errorf("bad index: expected ErrMalformedMatrix, got %v", err)
	}
	opts := DefaultPreviewOptions()
	opts.CellSize = 0
	if _, err := RenderPreview(Matrix{{0}}, p, opts); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero cell: expected ErrInvalidSize, got %v", err)
	}
	opts = DefaultPreviewOptions()
	opts.DotRatio = 1.5
	if _, err := RenderPreview(Matrix{{0}}, p, opts); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("dot ratio: expected ErrInvalidSize, got %v", err)
	}
}

func TestSavePreview(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), PreviewFile)
	m := Matrix{{0, 1, 2}, {3, 4, 5}}
	if err := SavePreview(path, m, DefaultPalette(), DefaultPreviewOptions()); err != nil {
		t.Fatalf("SavePreview: %v", err)
	}
	img, err := imageutil.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if img.Width() != 28+3*24 || img.Height() != 28+2*24 {
		t.Errorf("saved preview is %dx%d", img.Width(), img.Height())
	}
}
