package img2dot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/wbrown/img2dot/imageutil"
	"github.com/wbrown/img2dot/internal/logging"
)

// Diagnostic and output file names written to the output directory.
const (
	EdgesFile       = "sobel.png"
	ScaledEdgesFile = "scaled_edges.png"
	ScaledFile      = "scaled.png"
	MatrixFile      = "matrix.txt"
	PreviewFile     = "preview.png"
)

// Processor turns one source image into a print matrix. It owns the
// source image and every intermediate derived from it; nothing is
// shared between processors.
type Processor struct {
	Border imageutil.BorderPolicy
	Logger *slog.Logger

	// DebugImages writes the edge and downsampled images to OutputDir.
	DebugImages bool
	// DebugScale, when above 1, also writes nearest-neighbour copies of
	// the downsampled images enlarged by this factor.
	DebugScale int

	// Fixed at construction.
	settings Settings
	palette  Palette
	source   string
	original *imageutil.RGBAImage
	cols     int
	rows     int

	edges  *imageutil.RGBAImage
	matrix Matrix
}

// ProcessorOption is a functional option for configuring a Processor.
type ProcessorOption func(*Processor)

// WithLogger sets the logger used for pipeline progress.
func WithLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		p.Logger = logger
	}
}

// WithPalette replaces the default ink palette.
func WithPalette(palette Palette) ProcessorOption {
	return func(p *Processor) {
		p.palette = slices.Clone(palette)
	}
}

// WithBorder sets how the edge detector treats pixels beyond the image.
func WithBorder(border imageutil.BorderPolicy) ProcessorOption {
	return func(p *Processor) {
		p.Border = border
	}
}

// WithDebugImages turns diagnostic image output on or off, overriding
// Settings.Debug.
func WithDebugImages(enabled bool) ProcessorOption {
	return func(p *Processor) {
		p.DebugImages = enabled
	}
}

// WithDebugScale sets the enlargement factor for diagnostic copies.
func WithDebugScale(factor int) ProcessorOption {
	return func(p *Processor) {
		p.DebugScale = factor
	}
}

// NewProcessor prepares img for conversion. Settings, palette and grid
// size are all checked here so a bad run fails before any work is done.
// Default values: the default palette, replicate borders,
// slog.Default() and diagnostic images per Settings.Debug.
func NewProcessor(img *imageutil.RGBAImage, settings Settings, opts ...ProcessorOption) (*Processor, error) {
	p := &Processor{
		settings:    settings,
		palette:     DefaultPalette(),
		Border:      imageutil.BorderReplicate,
		Logger:      slog.Default(),
		DebugImages: settings.Debug,
		source:      "<memory>",
	}
	for _, opt := range opts {
		opt(p)
	}
	p.Logger = logging.WithComponent(p.Logger, logging.ComponentPipeline)

	if err := p.settings.Validate(); err != nil {
		return nil, err
	}
	if err := p.palette.Validate(); err != nil {
		return nil, err
	}
	if img == nil || img.Empty() {
		return nil, ErrEmptyImage
	}

	cols, rows, err := GridSize(img.Width(), img.Height(), p.settings.WidthBound())
	if err != nil {
		return nil, err
	}
	p.original = img.Clone()
	p.cols, p.rows = cols, rows
	return p, nil
}

// LoadProcessor loads the named image and prepares it for conversion.
// A relative name that does not exist as given is looked up in
// Settings.ImageDir.
func LoadProcessor(name string, settings Settings, opts ...ProcessorOption) (*Processor, error) {
	path := ResolveImagePath(name, settings.ImageDir)
	img, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, path, err)
	}
	p, err := NewProcessor(img, settings, opts...)
	if err != nil {
		return nil, err
	}
	p.source = path
	p.Logger.Info("loaded image", "path", path,
		"width", img.Width(), "height", img.Height())
	return p, nil
}

// ResolveImagePath returns name unchanged if it exists or is absolute,
// otherwise name joined onto dir.
func ResolveImagePath(name, dir string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return filepath.Join(dir, name)
}

// GridSize returns the print grid dimensions, columns then rows.
func (p *Processor) GridSize() (cols, rows int) {
	return p.cols, p.rows
}

// Settings returns a copy of the settings the processor was built with.
func (p *Processor) Settings() Settings {
	return p.settings
}

// Palette returns a copy of the ink palette.
func (p *Processor) Palette() Palette {
	return slices.Clone(p.palette)
}

// DetectEdges returns the Sobel gradient magnitude of the source image,
// computing it on first use.
func (p *Processor) DetectEdges() *imageutil.RGBAImage {
	if p.edges != nil {
		return p.edges
	}
	start := time.Now()
	p.edges = imageutil.SobelMagnitudeWithBorder(p.original, p.Border)
	p.logger(logging.ComponentEdges).Debug("edges detected",
		"border", p.Border.String(),
		"width", p.edges.Width(), "height", p.edges.Height(),
		"elapsed", time.Since(start))
	p.saveDiagnostic(EdgesFile, p.edges, false)
	return p.edges
}

// Downsample area-averages both edges and the source image down to the
// print grid.
func (p *Processor) Downsample(edges *imageutil.RGBAImage) (edgeSmall, origSmall *imageutil.RGBAImage, err error) {
	edgeSmall, err = imageutil.Resize(edges, p.cols, p.rows, imageutil.InterpolationArea)
	if err != nil {
		return nil, nil, fmt.Errorf("downsample edges: %w", err)
	}
	origSmall, err = imageutil.Resize(p.original, p.cols, p.rows, imageutil.InterpolationArea)
	if err != nil {
		return nil, nil, fmt.Errorf("downsample image: %w", err)
	}
	p.logger(logging.ComponentResample).Debug("downsampled",
		"from_width", p.original.Width(), "from_height", p.original.Height(),
		"cols", p.cols, "rows", p.rows)
	p.saveDiagnostic(ScaledEdgesFile, edgeSmall, true)
	p.saveDiagnostic(ScaledFile, origSmall, true)
	return edgeSmall, origSmall, nil
}

// ImageToMatrix runs the full pipeline: edges, downsample, classify.
// The result is kept and returned by later calls to Matrix.
func (p *Processor) ImageToMatrix() (Matrix, error) {
	edgeSmall, origSmall, err := p.Downsample(p.DetectEdges())
	if err != nil {
		return nil, err
	}

	c := Classifier{Palette: p.palette, Threshold: p.settings.Threshold}
	m, err := Assemble(edgeSmall, origSmall, c)
	if err != nil {
		return nil, err
	}
	p.matrix = m

	log := p.logger(logging.ComponentClassify)
	log.Debug("classified", "threshold", c.Threshold,
		"cells", m.Rows()*m.Cols(), "print_cells", m.PrintCells())
	if log.Enabled(context.Background(), slog.LevelDebug) {
		counts := m.Counts()
		for i, n := range counts {
			if n == 0 || i == Background {
				continue
			}
			log.Debug("ink usage", "index", i, "ink", p.palette[i].Name, "cells", n)
		}
	}
	return m, nil
}

// Matrix returns the matrix from the last ImageToMatrix call.
func (p *Processor) Matrix() (Matrix, error) {
	if p.matrix == nil {
		return nil, ErrNoMatrix
	}
	return p.matrix, nil
}

// SaveMatrix writes the assembled matrix to path, or to matrix.txt in
// OutputDir when path is empty.
func (p *Processor) SaveMatrix(path string) (string, error) {
	m, err := p.Matrix()
	if err != nil {
		return "", err
	}
	if path == "" {
		if err := p.ensureOutputDir(); err != nil {
			return "", err
		}
		path = filepath.Join(p.settings.OutputDir, MatrixFile)
	}
	if err := SaveMatrix(path, m); err != nil {
		return "", err
	}
	p.logger(logging.ComponentMatrix).Info("matrix saved", "path", path,
		"cols", m.Cols(), "rows", m.Rows())
	return path, nil
}

// Run converts the image and writes matrix.txt, returning the matrix and
// the file it was written to.
func (p *Processor) Run() (Matrix, string, error) {
	start := time.Now()
	m, err := p.ImageToMatrix()
	if err != nil {
		return nil, "", err
	}
	path, err := p.SaveMatrix("")
	if err != nil {
		return m, "", err
	}
	p.Logger.Info("conversion complete", "source", p.source,
		"cols", m.Cols(), "rows", m.Rows(), "print_cells", m.PrintCells(),
		"elapsed", time.Since(start))
	return m, path, nil
}

func (p *Processor) logger(component string) *slog.Logger {
	return p.Logger.With("stage", component)
}

func (p *Processor) ensureOutputDir() error {
	if p.settings.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(p.settings.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}

// saveDiagnostic writes img to OutputDir when diagnostics are enabled.
// Failures are logged and never abort the run.
func (p *Processor) saveDiagnostic(name string, img *imageutil.RGBAImage, scalable bool) {
	if !p.DebugImages {
		return
	}
	log := p.logger(logging.ComponentDiagnostic)
	if err := p.ensureOutputDir(); err != nil {
		log.Warn("diagnostic image skipped", "file", name, "error", err)
		return
	}

	var errs []error
	path := filepath.Join(p.settings.OutputDir, name)
	if err := imageutil.SavePNG(img, path); err != nil {
		errs = append(errs, err)
	} else {
		log.Info("diagnostic image saved", "path", path)
	}

	if scalable && p.DebugScale > 1 {
		big, err := imageutil.Enlarge(img, p.DebugScale)
		if err == nil {
			ext := filepath.Ext(name)
			path = filepath.Join(p.settings.OutputDir,
				fmt.Sprintf("%s_x%d%s", strings.TrimSuffix(name, ext), p.DebugScale, ext))
			err = imageutil.SavePNG(big, path)
		}
		if err != nil {
			errs = append(errs, err)
		} else {
			log.Info("diagnostic image saved", "path", path)
		}
	}

	if err := errors.Join(errs...); err != nil {
		log.Warn("diagnostic image not saved", "file", name, "error", err)
	}
}
