package imageutil

import (
	"fmt"
	"math"
	"strings"
)

// Kernel represents a convolution kernel.
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel creates a new kernel from a 2D slice.
func NewKernel(values [][]float64) *Kernel {
	height := len(values)
	width := 0
	if height > 0 {
		width = len(values[0])
	}
	return &Kernel{
		Values: values,
		Width:  width,
		Height: height,
	}
}

// SobelXKernel responds to horizontal intensity change.
func SobelXKernel() *Kernel {
	return NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
}

// SobelYKernel responds to vertical intensity change.
func SobelYKernel() *Kernel {
	return NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
}

// BorderPolicy selects how neighbours outside the image are sampled.
type BorderPolicy int

const (
	// BorderReplicate clamps out-of-range coordinates to the nearest edge
	// pixel. A uniform image therefore has zero gradient on its border.
	BorderReplicate BorderPolicy = iota

	// BorderZero treats out-of-range neighbours as intensity 0.
	BorderZero
)

// String returns the policy name.
func (p BorderPolicy) String() string {
	switch p {
	case BorderReplicate:
		return "replicate"
	case BorderZero:
		return "zero"
	}
	return "unknown"
}

// ParseBorderPolicy parses "replicate" or "zero".
func ParseBorderPolicy(s string) (BorderPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "replicate", "":
		return BorderReplicate, nil
	case "zero":
		return BorderZero, nil
	}
	return BorderReplicate, fmt.Errorf("unknown border policy %q", s)
}

// ConvolveGrayFloat applies a convolution kernel to a [y][x] intensity
// grid. Values are returned without clamping.
func ConvolveGrayFloat(img [][]float64, kernel *Kernel, border BorderPolicy) [][]float64 {
	height := len(img)
	if height == 0 {
		return nil
	}
	width := len(img[0])

	dst := make([][]float64, height)
	for y := 0; y < height; y++ {
		dst[y] = make([]float64, width)
	}

	halfKW := kernel.Width / 2
	halfKH := kernel.Height / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64

			for ky := 0; ky < kernel.Height; ky++ {
				for kx := 0; kx < kernel.Width; kx++ {
					sx, sy := x+kx-halfKW, y+ky-halfKH
					if sx < 0 || sx >= width || sy < 0 || sy >= height {
						if border == BorderZero {
							continue
						}
						sx = clampInt(sx, 0, width-1)
						sy = clampInt(sy, 0, height-1)
					}
					sum += img[sy][sx] * kernel.Values[ky][kx]
				}
			}

			dst[y][x] = sum
		}
	}

	return dst
}

// clampInt clamps an integer to the given range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampUint8 clamps a float64 to [0, 255] and converts to uint8.
func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}
