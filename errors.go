package img2dot

import (
	"errors"

	"github.com/wbrown/img2dot/imageutil"
)

var (
	// ErrLoad wraps every failure to read or decode the source image.
	ErrLoad = errors.New("load source image")

	// ErrEmptyImage is returned for images with a zero width or height.
	ErrEmptyImage = imageutil.ErrEmptyImage

	// ErrInvalidSize is returned when a target size is not positive.
	ErrInvalidSize = imageutil.ErrInvalidSize

	// ErrEmptyPalette is returned when a palette has no entries.
	ErrEmptyPalette = errors.New("palette is empty")

	// ErrInvalidPalette is returned when a palette cannot drive the
	// printer: background is not white, or there are more entries than
	// single-digit indices.
	ErrInvalidPalette = errors.New("invalid palette")

	// ErrInvalidSettings is returned by Settings.Validate.
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrDegenerateGrid is returned when the derived grid has no rows.
	ErrDegenerateGrid = errors.New("print grid has zero rows")

	// ErrDimensionMismatch is returned when the edge and color images
	// handed to the classifier differ in size.
	ErrDimensionMismatch = errors.New("image dimensions differ")

	// ErrMalformedMatrix is returned when a matrix file cannot be parsed.
	ErrMalformedMatrix = errors.New("malformed matrix")

	// ErrNoMatrix is returned when a matrix is requested before one has
	// been assembled.
	ErrNoMatrix = errors.New("no matrix assembled")
)
