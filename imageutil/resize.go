package imageutil

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea averages every source pixel a destination pixel
	// covers, weighted by the overlapped area. Equivalent to OpenCV's
	// INTER_AREA and Java's SCALE_AREA_AVERAGING.
	InterpolationArea Interpolation = iota

	// InterpolationNearest uses nearest-neighbor interpolation. Used to
	// enlarge tiny grids for inspection without blurring cell borders.
	InterpolationNearest
)

// String returns the interpolation name.
func (i Interpolation) String() string {
	switch i {
	case InterpolationArea:
		return "area"
	case InterpolationNearest:
		return "nearest"
	}
	return "unknown"
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) (*RGBAImage, error) {
	if img.Empty() {
		return nil, ErrEmptyImage
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	switch interp {
	case InterpolationArea:
		return ResizeArea(img, width, height)
	case InterpolationNearest:
	default:
		return nil, fmt.Errorf("unsupported interpolation %d", interp)
	}

	dst := NewRGBAImage(width, height)
	draw.NearestNeighbor.Scale(dst.RGBA, image.Rect(0, 0, width, height), img.RGBA, img.Bounds(), draw.Src, nil)
	return dst, nil
}

// Enlarge scales img up by an integer factor with nearest-neighbor
// sampling so each source pixel becomes a factor×factor square.
func Enlarge(img *RGBAImage, factor int) (*RGBAImage, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: enlarge factor %d", ErrInvalidSize, factor)
	}
	if img.Empty() {
		return nil, ErrEmptyImage
	}
	return Resize(img, img.Width()*factor, img.Height()*factor, InterpolationNearest)
}

// areaWeight is the share one source row or column contributes to a
// destination row or column.
type areaWeight struct {
	index  int
	weight int64
}

// areaWeights splits src source pixels over dst destination pixels.
// Coordinates are scaled by src*dst so that every overlap is an integer:
// destination d covers [d*src, (d+1)*src) and source s covers
// [s*dst, (s+1)*dst). The weights for each destination sum to src.
func areaWeights(src, dst int) [][]areaWeight {
	out := make([][]areaWeight, dst)
	for d := 0; d < dst; d++ {
		lo, hi := d*src, (d+1)*src
		for s := lo / dst; s < src && s*dst < hi; s++ {
			sLo, sHi := s*dst, (s+1)*dst
			w := min(hi, sHi) - max(lo, sLo)
			if w > 0 {
				out[d] = append(out[d], areaWeight{index: s, weight: int64(w)})
			}
		}
	}
	return out
}

// ResizeArea resamples img to width×height by area averaging: each
// destination pixel is the mean of the source region it covers, each
// source pixel weighted by its overlap. The mean is rounded to nearest,
// so a uniform image resamples to exactly the same color.
func ResizeArea(img *RGBAImage, width, height int) (*RGBAImage, error) {
	if img.Empty() {
		return nil, ErrEmptyImage
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	srcW, srcH := img.Width(), img.Height()
	xWeights := areaWeights(srcW, width)
	yWeights := areaWeights(srcH, height)
	total := int64(srcW) * int64(srcH)
	half := total / 2

	dst := NewRGBAImage(width, height)
	for dy, rows := range yWeights {
		for dx, cols := range xWeights {
			var sumR, sumG, sumB int64
			for _, wy := range rows {
				for _, wx := range cols {
					w := wy.weight * wx.weight
					c := img.GetRGB(wx.index, wy.index)
					sumR += int64(c.R) * w
					sumG += int64(c.G) * w
					sumB += int64(c.B) * w
				}
			}
			dst.SetRGB(dx, dy, RGB{
				R: uint8((sumR + half) / total),
				G: uint8((sumG + half) / total),
				B: uint8((sumB + half) / total),
			})
		}
	}
	return dst, nil
}
