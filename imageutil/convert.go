package imageutil

// Luminance returns the BT.601 luma of c: Y = 0.299*R + 0.587*G + 0.114*B.
func Luminance(c RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// ToGrayscaleFloat converts an RGBA image to luminance values in the
// range [0, 255], indexed [y][x].
func ToGrayscaleFloat(img *RGBAImage) [][]float64 {
	width, height := img.Width(), img.Height()
	gray := make([][]float64, height)

	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gray[y][x] = Luminance(img.GetRGB(x, y))
		}
	}

	return gray
}

// GrayscaleToRGBA builds an RGBA image from [y][x] intensity values,
// rounding and clamping each value to [0, 255] and replicating it across
// the three color channels.
func GrayscaleToRGBA(gray [][]float64) *RGBAImage {
	height := len(gray)
	width := 0
	if height > 0 {
		width = len(gray[0])
	}
	rgba := NewRGBAImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := clampUint8(gray[y][x])
			rgba.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}

	return rgba
}
