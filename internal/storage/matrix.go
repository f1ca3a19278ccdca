package storage

import (
	"fmt"
	"math"
)

// Matrix is a rows × cols grid stored row-major in a Vector.
type Matrix[F Float] struct {
	rows, cols int
	data       Vector[F]
}

// NewMatrix allocates a zero matrix in representation t.
func NewMatrix[F Float](rows, cols int, t Type) (*Matrix[F], error) {
	n, err := Cells(rows, cols)
	if err != nil {
		return nil, err
	}
	data, err := New[F](n, t)
	if err != nil {
		return nil, err
	}
	return &Matrix[F]{rows: rows, cols: cols, data: data}, nil
}

// MatrixFrom wraps data as a rows × cols matrix. data is adopted.
func MatrixFrom[F Float](rows, cols int, data Vector[F]) (*Matrix[F], error) {
	n, err := Cells(rows, cols)
	if err != nil {
		return nil, err
	}
	if err := CheckLen(n, data.Len()); err != nil {
		return nil, err
	}
	return &Matrix[F]{rows: rows, cols: cols, data: data}, nil
}

// MatrixFromRows builds a matrix of representation t from a copy of rows.
// Every row must have the same length.
func MatrixFromRows[F Float](values [][]F, t Type) (*Matrix[F], error) {
	rows := len(values)
	cols := 0
	if rows > 0 {
		cols = len(values[0])
	}
	n, err := Cells(rows, cols)
	if err != nil {
		return nil, err
	}
	flat := make([]F, 0, n)
	for _, row := range values {
		if len(row) != cols {
			return nil, &SizeMismatchError{Expected: cols, Actual: len(row)}
		}
		flat = append(flat, row...)
	}
	var data Vector[F] = DenseFrom(flat)
	if t == SparseType {
		data = DenseFrom(flat).ToSparse()
	}
	return &Matrix[F]{rows: rows, cols: cols, data: data}, nil
}

// Cells returns rows × cols, rejecting negative dimensions and shapes whose
// cell count does not fit a uint32 index.
func Cells(rows, cols int) (int, error) {
	if rows < 0 || cols < 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidLength, rows, cols)
	}
	if cols != 0 && uint64(rows) > math.MaxUint32/uint64(cols) {
		return 0, fmt.Errorf("%w: %dx%d", ErrInvalidLength, rows, cols)
	}
	return rows * cols, nil
}

// Rows returns the row count.
func (m *Matrix[F]) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix[F]) Cols() int { return m.cols }

// Len returns rows × cols.
func (m *Matrix[F]) Len() int { return m.data.Len() }

// Type returns the representation of the backing vector.
func (m *Matrix[F]) Type() Type { return m.data.Type() }

// Data returns the row-major backing vector. It is not a copy.
func (m *Matrix[F]) Data() Vector[F] { return m.data }

func (m *Matrix[F]) offset(r, c int) (int, error) {
	if r < 0 || r >= m.rows {
		return 0, &IndexError{Index: r, Length: m.rows}
	}
	if c < 0 || c >= m.cols {
		return 0, &IndexError{Index: c, Length: m.cols}
	}
	return r*m.cols + c, nil
}

// At returns the magnitude at (r, c).
func (m *Matrix[F]) At(r, c int) (F, error) {
	i, err := m.offset(r, c)
	if err != nil {
		return 0, err
	}
	return m.data.At(i)
}

// Set stores v at (r, c).
func (m *Matrix[F]) Set(r, c int, v F) error {
	i, err := m.offset(r, c)
	if err != nil {
		return err
	}
	return m.data.Set(i, v)
}

// Cardinality counts populated cells.
func (m *Matrix[F]) Cardinality() int { return m.data.Cardinality() }

// ZSum sums every cell.
func (m *Matrix[F]) ZSum() F { return m.data.ZSum() }

// ToDense returns m when it is already dense.
func (m *Matrix[F]) ToDense() *Matrix[F] {
	if m.data.Type() == DenseType {
		return m
	}
	return &Matrix[F]{rows: m.rows, cols: m.cols, data: m.data.ToDense()}
}

// ToSparse returns m when it is already sparse.
func (m *Matrix[F]) ToSparse() *Matrix[F] {
	if m.data.Type() == SparseType {
		return m
	}
	return &Matrix[F]{rows: m.rows, cols: m.cols, data: m.data.ToSparse()}
}

// Clone returns an independent deep copy.
func (m *Matrix[F]) Clone() *Matrix[F] {
	return &Matrix[F]{rows: m.rows, cols: m.cols, data: m.data.Clone()}
}

// Values returns a freshly allocated row-major grid.
func (m *Matrix[F]) Values() [][]F {
	flat := m.data.Values()
	out := make([][]F, m.rows)
	for r := range out {
		out[r] = flat[r*m.cols : (r+1)*m.cols : (r+1)*m.cols]
	}
	return out
}

// Row extracts row r as a vector of the same representation.
func (m *Matrix[F]) Row(r int) (Vector[F], error) {
	if r < 0 || r >= m.rows {
		return nil, &IndexError{Index: r, Length: m.rows}
	}
	return m.extract(r*m.cols, 1, m.cols), nil
}

// Column extracts column c as a vector of the same representation.
func (m *Matrix[F]) Column(c int) (Vector[F], error) {
	if c < 0 || c >= m.cols {
		return nil, &IndexError{Index: c, Length: m.cols}
	}
	return m.extract(c, m.cols, m.rows), nil
}

// extract copies n cells starting at start with the given stride.
func (m *Matrix[F]) extract(start, stride, n int) Vector[F] {
	if d, ok := m.data.(*Dense[F]); ok {
		out := make([]F, n)
		for k := range out {
			out[k] = d.data[start+k*stride]
		}
		return DenseFrom(out)
	}

	s := m.data.(*Sparse[F])
	out := &Sparse[F]{n: n, growth: s.growth}
	for k := 0; k < n; k++ {
		if j, ok := s.find(start + k*stride); ok {
			out.idx = append(out.idx, uint32(k))
			out.vals = append(out.vals, s.vals[j])
		}
	}
	return out
}

// Assign replaces every cell x by fn(x).
func (m *Matrix[F]) Assign(fn func(F) F) { m.data.Assign(fn) }

// AddScalar adds c to every cell.
func (m *Matrix[F]) AddScalar(c F) { m.data.AddScalar(c) }

// MulScalar multiplies every cell by c.
func (m *Matrix[F]) MulScalar(c F) { m.data.MulScalar(c) }

// DivScalar divides every cell by c.
func (m *Matrix[F]) DivScalar(c F) { m.data.DivScalar(c) }

// Compact drops explicitly stored zeros of sparse matrices.
func (m *Matrix[F]) Compact() {
	if s, ok := m.data.(*Sparse[F]); ok {
		s.Compact()
	}
}

// EqualMatrix reports whether a and b have the same shape and magnitudes.
func EqualMatrix[F Float](a, b *Matrix[F]) bool {
	return a.rows == b.rows && a.cols == b.cols && Equal(a.data, b.data)
}

func checkShape[F Float](a, b *Matrix[F]) error {
	if a.rows != b.rows || a.cols != b.cols {
		return &ShapeMismatchError{ExpectedRows: a.rows, ExpectedCols: a.cols, Rows: b.rows, Cols: b.cols}
	}
	return nil
}

// ApplyMatrix returns op(a, b) as a new matrix; a and b are not modified.
func ApplyMatrix[F Float](op Op, a, b *Matrix[F]) (*Matrix[F], error) {
	if err := checkShape(a, b); err != nil {
		return nil, err
	}
	data, err := Apply(op, a.data, b.data)
	if err != nil {
		return nil, err
	}
	return &Matrix[F]{rows: a.rows, cols: a.cols, data: data}, nil
}

// ApplyMatrixInPlace stores op(dst, src) in dst. The backing vector of dst
// may change representation. Nothing is written when the shapes disagree.
func ApplyMatrixInPlace[F Float](op Op, dst, src *Matrix[F]) error {
	if err := checkShape(dst, src); err != nil {
		return err
	}
	data, err := ApplyInPlace(op, dst.data, src.data)
	if err != nil {
		return err
	}
	dst.data = data
	return nil
}
