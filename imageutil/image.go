// Package imageutil provides the pure Go raster primitives used by the
// dot printer pipeline: pixel access, luminance, Sobel gradients, area
// resampling and image file I/O.
package imageutil

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
)

var (
	// ErrEmptyImage is returned when an operation receives an image with
	// a zero width or height.
	ErrEmptyImage = errors.New("image has zero dimension")

	// ErrInvalidSize is returned when a requested target size is not
	// strictly positive.
	ErrInvalidSize = errors.New("invalid target size")
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to an opaque color.RGBA.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// Sum returns R+G+B, in the range [0, 765].
func (rgb RGB) Sum() int {
	return int(rgb.R) + int(rgb.G) + int(rgb.B)
}

// DistanceSq returns the squared Euclidean distance between two colors
// in RGB space.
func (rgb RGB) DistanceSq(other RGB) int {
	dr := int(rgb.R) - int(other.R)
	dg := int(rgb.G) - int(other.G)
	db := int(rgb.B) - int(other.B)
	return dr*dr + dg*dg + db*db
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
// The origin is always (0, 0).
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage converts any image.Image to an RGBAImage with its
// origin moved to (0, 0). Transparent areas are composited over white so
// that they read as blank paper.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())
	draw.Draw(rgba.RGBA, rgba.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(rgba.RGBA, rgba.Bounds(), img, bounds.Min, draw.Over)
	return rgba
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// Empty reports whether the image has no pixels.
func (img *RGBAImage) Empty() bool {
	return img == nil || img.RGBA == nil || img.Width() <= 0 || img.Height() <= 0
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	i := img.PixOffset(x, y)
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// SetRGB sets the RGB value at (x, y) with full opacity.
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	i := img.PixOffset(x, y)
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = 255
}

// Clone creates a deep copy of the image.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := NewRGBAImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}
