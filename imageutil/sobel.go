package imageutil

import "math"

// SobelGradients computes the horizontal and vertical Sobel responses of
// the luminance of img, indexed [y][x].
func SobelGradients(img *RGBAImage, border BorderPolicy) (gx, gy [][]float64) {
	gray := ToGrayscaleFloat(img)
	gx = ConvolveGrayFloat(gray, SobelXKernel(), border)
	gy = ConvolveGrayFloat(gray, SobelYKernel(), border)
	return gx, gy
}

// SobelMagnitude computes the gradient magnitude sqrt(Gx²+Gy²) of img
// using replicated borders. The result has the same dimensions as img,
// with the clamped magnitude copied into R, G and B.
func SobelMagnitude(img *RGBAImage) *RGBAImage {
	return SobelMagnitudeWithBorder(img, BorderReplicate)
}

// SobelMagnitudeWithBorder is SobelMagnitude with an explicit border
// policy.
func SobelMagnitudeWithBorder(img *RGBAImage, border BorderPolicy) *RGBAImage {
	width, height := img.Width(), img.Height()
	gx, gy := SobelGradients(img, border)

	mag := make([][]float64, height)
	for y := 0; y < height; y++ {
		mag[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			mag[y][x] = math.Sqrt(gx[y][x]*gx[y][x] + gy[y][x]*gy[y][x])
		}
	}

	out := GrayscaleToRGBA(mag)
	if out.Empty() {
		return NewRGBAImage(width, height)
	}
	return out
}
