package quantities

import (
	"iter"
	"time"

	"github.com/hupe1980/quantities/internal/cow"
	"github.com/hupe1980/quantities/internal/storage"
	"github.com/hupe1980/quantities/unit"
)

// Cell addresses one position of a matrix.
type Cell struct {
	Row, Col int
}

// matrix is the state shared by every matrix container. It mirrors vector
// with (row, col) addressing over row-major storage.
type matrix[Q unit.Quantity, F Float] struct {
	h    *cow.Handle[*storage.Matrix[F]]
	unit unit.Unit[Q]
	kind Kind
}

func cloneMatrix[F Float](m *storage.Matrix[F]) *storage.Matrix[F] { return m.Clone() }

func wrapMatrix[Q unit.Quantity, F Float](data *storage.Matrix[F], u unit.Unit[Q], k Kind) matrix[Q, F] {
	return matrix[Q, F]{h: cow.New(data, cloneMatrix[F]), unit: u, kind: k}
}

// newMatrix converts rows from u to SI and stores them as st.
func newMatrix[Q unit.Quantity, F Float](values [][]F, u unit.Unit[Q], k Kind, st StorageType) (matrix[Q, F], error) {
	if values == nil {
		return matrix[Q, F]{}, ErrConstruction
	}
	rows, cols := len(values), 0
	if rows > 0 {
		cols = len(values[0])
	}
	si := make([]F, 0, rows*cols)
	for _, row := range values {
		if len(row) != cols {
			return matrix[Q, F]{}, &SizeMismatchError{Expected: cols, Actual: len(row)}
		}
		for _, x := range row {
			si = append(si, toSI(k, u, x))
		}
	}
	return newMatrixSI(si, rows, cols, u, k, st)
}

func newMatrixSI[Q unit.Quantity, F Float](si []F, rows, cols int, u unit.Unit[Q], k Kind, st StorageType) (matrix[Q, F], error) {
	data, err := fromSIValues(si, st)
	if err != nil {
		return matrix[Q, F]{}, translateError(err)
	}
	m, err := storage.MatrixFrom(rows, cols, data)
	if err != nil {
		return matrix[Q, F]{}, translateError(err)
	}
	return wrapMatrix(m, u, k), nil
}

func fromCellMap[Q unit.Quantity, F Float, S any](m map[Cell]S, rows, cols int, split func(S) (F, unit.Unit[Q])) ([]F, unit.Unit[Q], error) {
	var u unit.Unit[Q]
	if len(m) == 0 || rows < 0 || cols < 0 {
		return nil, u, ErrConstruction
	}
	si := make([]F, rows*cols)
	lowest := rows * cols
	for c, s := range m {
		if err := checkIndex(c.Row, rows); err != nil {
			return nil, u, err
		}
		if err := checkIndex(c.Col, cols); err != nil {
			return nil, u, err
		}
		i := c.Row*cols + c.Col
		x, su := split(s)
		si[i] = x
		if i < lowest {
			lowest, u = i, su
		}
	}
	return si, u, nil
}

func (m matrix[Q, F]) data() *storage.Matrix[F] { return m.h.Load() }

// Rows returns the row count.
func (m matrix[Q, F]) Rows() int { return m.data().Rows() }

// Cols returns the column count.
func (m matrix[Q, F]) Cols() int { return m.data().Cols() }

// Len returns the number of cells.
func (m matrix[Q, F]) Len() int { return m.data().Len() }

// Unit returns the display unit.
func (m matrix[Q, F]) Unit() unit.Unit[Q] { return m.unit }

// Kind reports whether the container is absolute or relative.
func (m matrix[Q, F]) Kind() Kind { return m.kind }

// StorageType returns the current representation.
func (m matrix[Q, F]) StorageType() StorageType { return m.data().Type() }

// IsDense reports whether the cells are stored densely.
func (m matrix[Q, F]) IsDense() bool { return m.StorageType() == Dense }

// IsSparse reports whether only populated cells are stored.
func (m matrix[Q, F]) IsSparse() bool { return m.StorageType() == Sparse }

// Cardinality counts populated cells.
func (m matrix[Q, F]) Cardinality() int { return m.data().Cardinality() }

// ZSumSI returns the SI sum of all cells.
func (m matrix[Q, F]) ZSumSI() F { return m.data().ZSum() }

// GetSI returns the SI magnitude at (r, c).
func (m matrix[Q, F]) GetSI(r, c int) (F, error) {
	x, err := m.data().At(r, c)
	return x, translateError(err)
}

// GetInUnit returns the magnitude at (r, c) expressed in u.
func (m matrix[Q, F]) GetInUnit(r, c int, u unit.Unit[Q]) (F, error) {
	x, err := m.GetSI(r, c)
	if err != nil {
		return 0, err
	}
	return fromSI(m.kind, u, x), nil
}

// ValuesSI returns a fresh row-major grid of SI magnitudes.
func (m matrix[Q, F]) ValuesSI() [][]F { return m.data().Values() }

// ValuesInUnit returns a fresh row-major grid expressed in u.
func (m matrix[Q, F]) ValuesInUnit(u unit.Unit[Q]) [][]F {
	out := m.data().Values()
	for _, row := range out {
		for c, x := range row {
			row[c] = fromSI(m.kind, u, x)
		}
	}
	return out
}

// SISeq yields (cell, SI magnitude) pairs in row-major order.
func (m matrix[Q, F]) SISeq() iter.Seq2[Cell, F] {
	return func(yield func(Cell, F) bool) {
		data := m.data()
		for r := range data.Rows() {
			for c := range data.Cols() {
				x, _ := data.At(r, c)
				if !yield(Cell{Row: r, Col: c}, x) {
					return
				}
			}
		}
	}
}

func (m matrix[Q, F]) row(r int) (vector[Q, F], error) {
	data, err := m.data().Row(r)
	if err != nil {
		return vector[Q, F]{}, translateError(err)
	}
	return wrapVector(data, m.unit, m.kind), nil
}

func (m matrix[Q, F]) column(c int) (vector[Q, F], error) {
	data, err := m.data().Column(c)
	if err != nil {
		return vector[Q, F]{}, translateError(err)
	}
	return wrapVector(data, m.unit, m.kind), nil
}

func (m matrix[Q, F]) converted(t StorageType) matrix[Q, F] {
	cur := m.data()
	if cur.Type() == t {
		return m
	}
	var out *storage.Matrix[F]
	if t == Dense {
		out = cur.ToDense()
	} else {
		out = cur.ToSparse()
	}
	recordConversion(cur.Type(), t, cur.Len())
	return wrapMatrix(out, m.unit, m.kind)
}

func (m matrix[Q, F]) apply(op storage.Op, name string, o *storage.Matrix[F]) (*storage.Matrix[F], error) {
	start := time.Now()
	out, err := storage.ApplyMatrix(op, m.data(), o)
	observe(name, m.Len(), start, err)
	return out, translateError(err)
}

func (m matrix[Q, F]) share() matrix[Q, F] {
	return matrix[Q, F]{h: m.h.Share(), unit: m.unit, kind: m.kind}
}

func (m matrix[Q, F]) writable() *storage.Matrix[F] {
	data, copied := m.h.Acquire()
	if copied {
		recordCopyOnWrite(data.Len(), data.Type())
	}
	return data
}

func (m matrix[Q, F]) setSI(r, c int, x F) error {
	if err := checkIndex(r, m.Rows()); err != nil {
		return err
	}
	if err := checkIndex(c, m.Cols()); err != nil {
		return err
	}
	return translateError(m.writable().Set(r, c, x))
}

func (m matrix[Q, F]) inPlace(op storage.Op, name string, src *storage.Matrix[F]) error {
	start := time.Now()
	err := m.applyInPlace(op, src)
	observe(name, m.Len(), start, err)
	return translateError(err)
}

func (m matrix[Q, F]) applyInPlace(op storage.Op, src *storage.Matrix[F]) error {
	cur := m.data()
	if cur.Rows() != src.Rows() || cur.Cols() != src.Cols() {
		return &storage.ShapeMismatchError{
			ExpectedRows: cur.Rows(), ExpectedCols: cur.Cols(),
			Rows: src.Rows(), Cols: src.Cols(),
		}
	}
	dst := m.writable()
	before := dst.Type()
	if err := storage.ApplyMatrixInPlace(op, dst, src); err != nil {
		return err
	}
	if after := dst.Type(); after != before {
		recordConversion(before, after, dst.Len())
	}
	return nil
}

func (m matrix[Q, F]) scalar(name string, fn func(*storage.Matrix[F])) {
	start := time.Now()
	fn(m.writable())
	observe(name, m.Len(), start, nil)
}

func (m matrix[Q, F]) normalize() error {
	start := time.Now()
	sum := m.ZSumSI()
	if sum == 0 {
		observe("normalize", m.Len(), start, ErrNormalization)
		return ErrNormalization
	}
	m.writable().DivScalar(sum)
	observe("normalize", m.Len(), start, nil)
	return nil
}

func (m matrix[Q, F]) compact() {
	if m.IsSparse() && m.Cardinality() > 0 {
		m.writable().Compact()
	}
}
