// Dense is a concrete, row-major matrix, storing elements in a flat
// slice for performance and cache friendliness.
package matrix

import "fmt"

// denseErrorf wraps an underlying error with Dense method context.
// Example message shape: "Dense.Set(3,7): matrix: index out of range".
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix.
// r, c are dimensions; data holds r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage (len == r*c)
}

// NewDense creates an r×c Dense initialized to zeros.
// Validates r>0 && c>0; returns ErrInvalidDimensions on failure.
// Complexity: O(r*c) due to zero-fill by make.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{
		r:    rows,
		c:    cols,
		data: make([]float64, rows*cols), // zero-initialized
	}, nil
}

// Rows returns the number of rows in the matrix.
// Complexity: O(1).
func (m *Dense) Rows() int {
	return m.r
}

// Cols returns the number of columns in the matrix.
// Complexity: O(1).
func (m *Dense) Cols() int {
	return m.c
}

// indexOf computes the flat offset for (row,col) or returns a sentinel.
// It does *not* panic; it validates both indices and returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil // row-major offset
}

// At retrieves the element at (row, col).
// Returns ErrOutOfRange on index violation.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf("At", row, col, err)
	}

	return m.data[off], nil
}

// Set writes value v at (row, col).
// Returns ErrOutOfRange on index violation.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf("Set", row, col, err)
	}
	m.data[off] = v

	return nil
}
