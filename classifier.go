package img2dot

import "github.com/wbrown/img2dot/imageutil"

// Classifier decides the ink for a single grid cell. The edge image
// decides whether to print, the original image decides the color.
type Classifier struct {
	Palette   Palette
	Threshold int
}

// ChannelSum returns R+G+B of an edge pixel, the edge strength compared
// against the print threshold.
func ChannelSum(c imageutil.RGB) int {
	return c.Sum()
}

// Classify returns the palette index for a cell whose downsampled edge
// pixel is edge and whose downsampled original pixel is col. Cells at or
// below the threshold are Background.
func (c Classifier) Classify(edge, col imageutil.RGB) uint8 {
	if ChannelSum(edge) <= c.Threshold {
		return Background
	}
	return uint8(c.Palette.Nearest(col))
}
