package img2dot

import (
	"fmt"
	"image/color"
	"slices"
	"strings"

	"github.com/wbrown/img2dot/imageutil"
)

// Background is the palette index meaning "do not print here".
const Background = 0

// MaxPaletteSize is the largest palette the matrix file format can
// encode: every cell is written as a single decimal digit.
const MaxPaletteSize = 10

// Ink is one pen loaded in the plotter.
type Ink struct {
	Name  string
	Color imageutil.RGB
}

// Palette is an ordered list of inks. The order doubles as the
// tie-break priority for nearest-color matching and index 0 is the
// white background.
type Palette []Ink

var defaultPalette = Palette{
	{Name: "white", Color: imageutil.RGB{R: 255, G: 255, B: 255}},
	{Name: "red", Color: imageutil.RGB{R: 255, G: 0, B: 0}},
	{Name: "green", Color: imageutil.RGB{R: 0, G: 255, B: 0}},
	{Name: "blue", Color: imageutil.RGB{R: 0, G: 0, B: 255}},
	{Name: "yellow", Color: imageutil.RGB{R: 255, G: 255, B: 0}},
	{Name: "black", Color: imageutil.RGB{R: 0, G: 0, B: 0}},
}

// DefaultPalette returns the plotter's pen set: white, red, green, blue,
// yellow, black. The returned slice is a copy.
func DefaultPalette() Palette {
	return slices.Clone(defaultPalette)
}

// Validate checks that the palette is non-empty, fits the matrix file
// format and starts with the white background.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPalette
	}
	if len(p) > MaxPaletteSize {
		return fmt.Errorf("%w: %d entries, at most %d fit a single digit",
			ErrInvalidPalette, len(p), MaxPaletteSize)
	}
	if white := (imageutil.RGB{R: 255, G: 255, B: 255}); p[Background].Color != white {
		return fmt.Errorf("%w: index 0 must be white, got %v",
			ErrInvalidPalette, p[Background].Color)
	}
	return nil
}

// Nearest returns the index of the palette entry with the smallest
// squared RGB distance to c. Ties go to the earliest index.
func (p Palette) Nearest(c imageutil.RGB) int {
	best := 0
	bestDist := -1
	for i, ink := range p {
		d := c.DistanceSq(ink.Color)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Index returns the index of the ink with the given name, ignoring case.
func (p Palette) Index(name string) (int, bool) {
	for i, ink := range p {
		if strings.EqualFold(ink.Name, name) {
			return i, true
		}
	}
	return -1, false
}

// Colors returns the palette as a color.Palette.
func (p Palette) Colors() color.Palette {
	out := make(color.Palette, len(p))
	for i, ink := range p {
		out[i] = ink.Color.ToColor()
	}
	return out
}
