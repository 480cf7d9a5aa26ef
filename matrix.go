package img2dot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wbrown/img2dot/imageutil"
)

// Matrix is the print matrix: Rows() rows of Cols() palette indices,
// row-major with the origin at the top left.
type Matrix [][]uint8

// NewMatrix allocates a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) Matrix {
	m := make(Matrix, rows)
	for y := range m {
		m[y] = make([]uint8, cols)
	}
	return m
}

// Rows returns the number of grid rows (H).
func (m Matrix) Rows() int {
	return len(m)
}

// Cols returns the number of grid columns (W).
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Assemble classifies every cell of the two downsampled images, scanning
// y outer and x inner, and collects the results into a Matrix.
func Assemble(edges, colors *imageutil.RGBAImage, c Classifier) (Matrix, error) {
	if edges.Empty() || colors.Empty() {
		return nil, ErrEmptyImage
	}
	if edges.Width() != colors.Width() || edges.Height() != colors.Height() {
		return nil, fmt.Errorf("%w: edges %dx%d, colors %dx%d", ErrDimensionMismatch,
			edges.Width(), edges.Height(), colors.Width(), colors.Height())
	}

	m := NewMatrix(edges.Height(), edges.Width())
	for y := 0; y < edges.Height(); y++ {
		for x := 0; x < edges.Width(); x++ {
			m[y][x] = c.Classify(edges.GetRGB(x, y), colors.GetRGB(x, y))
		}
	}
	return m, nil
}

// Validate checks that the matrix is rectangular and that every cell is
// an index into p.
func (m Matrix) Validate(p Palette) error {
	cols := m.Cols()
	for y, row := range m {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrMalformedMatrix, y, len(row), cols)
		}
		for x, v := range row {
			if int(v) >= len(p) {
				return fmt.Errorf("%w: cell (%d,%d) = %d outside palette of %d",
					ErrMalformedMatrix, x, y, v, len(p))
			}
		}
	}
	return nil
}

// Counts returns how many cells use each palette index. Indices beyond
// the largest one present are omitted.
func (m Matrix) Counts() []int {
	var counts []int
	for _, row := range m {
		for _, v := range row {
			for int(v) >= len(counts) {
				counts = append(counts, 0)
			}
			counts[v]++
		}
	}
	return counts
}

// PrintCells returns the number of cells that will receive a dot.
func (m Matrix) PrintCells() int {
	n := 0
	for _, row := range m {
		for _, v := range row {
			if v != Background {
				n++
			}
		}
	}
	return n
}

// WriteTo writes the matrix in the plotter's text format: every cell as
// a decimal index followed by a comma, every row terminated by a
// newline.
func (m Matrix) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, row := range m {
		for _, v := range row {
			k, err := bw.WriteString(strconv.Itoa(int(v)) + ",")
			n += int64(k)
			if err != nil {
				return n, err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, err
		}
		n++
	}
	return n, bw.Flush()
}

// String returns the matrix in its text format.
func (m Matrix) String() string {
	var sb strings.Builder
	_, _ = m.WriteTo(&sb)
	return sb.String()
}

// ParseMatrix reads a matrix in the text format written by WriteTo. Rows
// are split on newlines and cells on commas; the empty token after the
// final comma of a row is ignored. Every cell is a single decimal digit.
// Rows may be of any length.
func ParseMatrix(r io.Reader) (Matrix, error) {
	var m Matrix
	br := bufio.NewReader(r)
	for line := 1; ; line++ {
		text, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read matrix: %w", err)
		}
		eof := err != nil
		if eof && text == "" {
			break
		}

		row, perr := parseRow(strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r"), line)
		if perr != nil {
			return nil, perr
		}
		if len(m) > 0 && len(row) != len(m[0]) {
			return nil, fmt.Errorf("%w: line %d has %d cells, expected %d",
				ErrMalformedMatrix, line, len(row), len(m[0]))
		}
		m = append(m, row)
		if eof {
			break
		}
	}
	return m, nil
}

func parseRow(text string, line int) ([]uint8, error) {
	tokens := strings.Split(text, ",")
	if tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: line %d is empty", ErrMalformedMatrix, line)
	}
	row := make([]uint8, len(tokens))
	for i, tok := range tokens {
		if len(tok) != 1 || tok[0] < '0' || tok[0] > '9' {
			return nil, fmt.Errorf("%w: line %d cell %d: %q",
				ErrMalformedMatrix, line, i+1, tok)
		}
		row[i] = tok[0] - '0'
	}
	return row, nil
}

// SaveMatrix writes m to path in the plotter's text format.
func SaveMatrix(path string, m Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create matrix file: %w", err)
	}
	if _, err := m.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write matrix file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close matrix file: %w", err)
	}
	return nil
}

// LoadMatrix reads a matrix file written by SaveMatrix.
func LoadMatrix(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix file: %w", err)
	}
	defer f.Close()
	return ParseMatrix(f)
}
