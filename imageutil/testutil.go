package imageutil

// CreateSolidImage creates a solid color image.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateSplitImage creates an image whose left half (x < width/2) is
// left and whose right half is right, giving one vertical boundary down
// the middle.
func CreateSplitImage(width, height int, left, right RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < width/2 {
				img.SetRGB(x, y, left)
			} else {
				img.SetRGB(x, y, right)
			}
		}
	}
	return img
}

// CreateGradientImage creates a horizontal gray gradient test image.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / (width - 1))
			img.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard.
func CreateCheckerboardImage(width, height, squareSize int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetRGB(x, y, RGB{R: 255, G: 255, B: 255})
			} else {
				img.SetRGB(x, y, RGB{R: 0, G: 0, B: 0})
			}
		}
	}
	return img
}

// CreateFramedImage creates a background image with a filled rectangle
// of color fg covering the middle half in each direction.
func CreateFramedImage(width, height int, bg, fg RGB) *RGBAImage {
	img := CreateSolidImage(width, height, bg)
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.SetRGB(x, y, fg)
		}
	}
	return img
}

// CalculateMaxDiff calculates the maximum per-channel difference between
// two images, or 256 if their sizes differ.
func CalculateMaxDiff(img1, img2 *RGBAImage) int {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return 256
	}

	maxDiff := 0
	for y := 0; y < img1.Height(); y++ {
		for x := 0; x < img1.Width(); x++ {
			c1, c2 := img1.GetRGB(x, y), img2.GetRGB(x, y)
			maxDiff = max(maxDiff,
				abs(int(c1.R)-int(c2.R)),
				abs(int(c1.G)-int(c2.G)),
				abs(int(c1.B)-int(c2.B)))
		}
	}
	return maxDiff
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
