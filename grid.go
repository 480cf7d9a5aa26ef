package img2dot

import "fmt"

// GridSize returns the print grid for a srcW×srcH source image drawn
// width dots wide. The height keeps the source aspect ratio,
// floor(srcH*width/srcW).
func GridSize(srcW, srcH, width int) (cols, rows int, err error) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrEmptyImage, srcW, srcH)
	}
	if width <= 0 {
		return 0, 0, fmt.Errorf("%w: grid width %d", ErrInvalidSize, width)
	}
	rows = srcH * width / srcW
	if rows == 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d source at %d columns", ErrDegenerateGrid,
			srcW, srcH, width)
	}
	return width, rows, nil
}
