package img2dot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/vector"

	"github.com/wbrown/img2dot/imageutil"
)

// PreviewOptions controls how a matrix is drawn as a plot preview.
type PreviewOptions struct {
	CellSize int     // pixels per grid cell
	Margin   int     // pixels reserved above and left of the grid for labels
	DotRatio float64 // dot diameter as a fraction of CellSize, in (0, 1]
	Labels   bool    // draw row and column numbers in the margin
	FontSize float64 // label size in points at 72 DPI
}

// DefaultPreviewOptions returns 24 pixel cells with labelled rows and
// columns.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		CellSize: 24,
		Margin:   28,
		DotRatio: 0.8,
		Labels:   true,
		FontSize: 10,
	}
}

var labelFont = sync.OnceValues(func() (*truetype.Font, error) {
	return freetype.ParseFont(goregular.TTF)
})

// bezierCircle is the control point offset that approximates a quarter
// circle with one cubic segment.
const bezierCircle = 0.5522847498

var (
	gridColor  = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	labelColor = color.Gray{Y: 96}
)

// RenderPreview draws m as the plotter would: one disc of the cell's ink
// for every print cell on a white sheet.
func RenderPreview(m Matrix, p Palette, opts PreviewOptions) (*image.RGBA, error) {
	if m.Rows() == 0 || m.Cols() == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrMalformedMatrix)
	}
	if err := m.Validate(p); err != nil {
		return nil, err
	}
	if opts.CellSize <= 0 || opts.Margin < 0 {
		return nil, fmt.Errorf("%w: cell size %d, margin %d", ErrInvalidSize, opts.CellSize, opts.Margin)
	}
	if opts.DotRatio <= 0 || opts.DotRatio > 1 {
		return nil, fmt.Errorf("%w: dot ratio %g", ErrInvalidSize, opts.DotRatio)
	}

	margin := opts.Margin
	if !opts.Labels {
		margin = 0
	}
	cell := opts.CellSize
	width := margin + m.Cols()*cell
	height := margin + m.Rows()*cell

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	drawGrid(dst, margin, cell, m.Rows(), m.Cols())

	colors := p.Colors()
	inks := make([]image.Image, len(colors))
	for i, c := range colors {
		inks[i] = image.NewUniform(c)
	}

	z := vector.NewRasterizer(cell, cell)
	for y, row := range m {
		for x, v := range row {
			if v == Background {
				continue
			}
			z.Reset(cell, cell)
			addDisc(z, float32(cell)/2, float32(cell)/2, float32(float64(cell)*opts.DotRatio/2))
			r := image.Rect(0, 0, cell, cell).Add(image.Pt(margin+x*cell, margin+y*cell))
			z.Draw(dst, r, inks[v], image.Point{})
		}
	}

	if opts.Labels && margin > 0 {
		if err := drawLabels(dst, margin, cell, m.Rows(), m.Cols(), opts.FontSize); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// SavePreview renders m and writes it to path as PNG.
func SavePreview(path string, m Matrix, p Palette, opts PreviewOptions) error {
	img, err := RenderPreview(m, p, opts)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(img, path)
}

func addDisc(z *vector.Rasterizer, cx, cy, r float32) {
	k := float32(bezierCircle) * r
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// drawGrid outlines every cell with a one pixel line.
func drawGrid(dst *image.RGBA, margin, cell, rows, cols int) {
	right := margin + cols*cell
	bottom := margin + rows*cell
	for x := 0; x <= cols; x++ {
		px := min(margin+x*cell, right-1)
		for py := margin; py < bottom; py++ {
			dst.SetRGBA(px, py, gridColor)
		}
	}
	for y := 0; y <= rows; y++ {
		py := min(margin+y*cell, bottom-1)
		for px := margin; px < right; px++ {
			dst.SetRGBA(px, py, gridColor)
		}
	}
}

// drawLabels numbers the columns along the top margin and the rows along
// the left margin. Labels are thinned out when they would not fit a cell.
func drawLabels(dst *image.RGBA, margin, cell, rows, cols int, size float64) error {
	f, err := labelFont()
	if err != nil {
		return fmt.Errorf("parse label font: %w", err)
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(labelColor))
	ctx.SetHinting(font.HintingFull)

	widest := font.MeasureString(face, strconv.Itoa(max(rows, cols)-1)).Ceil()
	step := 1
	for step*cell < widest+2 {
		step++
	}

	topBaseline := (margin + ascent - descent) / 2
	for x := 0; x < cols; x += step {
		s := strconv.Itoa(x)
		w := font.MeasureString(face, s).Ceil()
		px := margin + x*cell + (cell-w)/2
		if _, err := ctx.DrawString(s, freetype.Pt(px, topBaseline)); err != nil {
			return fmt.Errorf("draw column label: %w", err)
		}
	}
	for y := 0; y < rows; y += step {
		s := strconv.Itoa(y)
		w := font.MeasureString(face, s).Ceil()
		px := max(margin-w-4, 0)
		py := margin + y*cell + (cell+ascent-descent)/2
		if _, err := ctx.DrawString(s, freetype.Pt(px, py)); err != nil {
			return fmt.Errorf("draw row label: %w", err)
		}
	}
	return nil
}
