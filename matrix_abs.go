package quantities

import (
	"iter"

	"github.com/hupe1980/quantities/internal/storage"
	"github.com/hupe1980/quantities/unit"
)

// AbsMatrixOperand is implemented by AbsMatrix and *MutableAbsMatrix of
// the same quantity and precision.
type AbsMatrixOperand[Q unit.Quantity, F Float] interface {
	absMatrix() (*storage.Matrix[F], unit.Unit[Q])
}

// AbsMatrix is an immutable matrix of absolute quantities.
type AbsMatrix[Q unit.Quantity, F Float] struct {
	matrix[Q, F]
}

// NewAbsMatrix builds an absolute matrix from rows of values given in u.
func NewAbsMatrix[Q unit.Quantity, F Float](values [][]F, u unit.Unit[Q], st StorageType) (AbsMatrix[Q, F], error) {
	m, err := newMatrix(values, u, Absolute, st)
	return AbsMatrix[Q, F]{m}, err
}

// NewAbsMatrixSI builds a rows × cols absolute matrix from row-major SI
// values, displayed in u.
func NewAbsMatrixSI[Q unit.Quantity, F Float](si []F, rows, cols int, u unit.Unit[Q], st StorageType) (AbsMatrix[Q, F], error) {
	if si == nil {
		return AbsMatrix[Q, F]{}, ErrConstruction
	}
	m, err := newMatrixSI(append([]F(nil), si...), rows, cols, u, Absolute, st)
	return AbsMatrix[Q, F]{m}, err
}

// NewAbsMatrixFromScalars builds an absolute matrix from rows of typed
// scalars. The display unit is taken from the first scalar.
func NewAbsMatrixFromScalars[Q unit.Quantity, F Float](scalars [][]Abs[Q, F], st StorageType) (AbsMatrix[Q, F], error) {
	if len(scalars) == 0 || len(scalars[0]) == 0 {
		return AbsMatrix[Q, F]{}, ErrConstruction
	}
	rows, cols := len(scalars), len(scalars[0])
	si := make([]F, 0, rows*cols)
	for _, row := range scalars {
		if len(row) != cols {
			return AbsMatrix[Q, F]{}, &SizeMismatchError{Expected: cols, Actual: len(row)}
		}
		for _, s := range row {
			si = append(si, s.SI())
		}
	}
	m, err := newMatrixSI(si, rows, cols, scalars[0][0].Unit(), Absolute, st)
	return AbsMatrix[Q, F]{m}, err
}

// NewAbsMatrixFromMap builds a rows × cols absolute matrix from scalars
// keyed by cell. Absent cells hold SI zero.
func NewAbsMatrixFromMap[Q unit.Quantity, F Float](cells map[Cell]Abs[Q, F], rows, cols int, st StorageType) (AbsMatrix[Q, F], error) {
	si, u, err := fromCellMap(cells, rows, cols, func(s Abs[Q, F]) (F, unit.Unit[Q]) { return s.SI(), s.Unit() })
	if err != nil {
		return AbsMatrix[Q, F]{}, err
	}
	m, err := newMatrixSI(si, rows, cols, u, Absolute, st)
	return AbsMatrix[Q, F]{m}, err
}

func (m AbsMatrix[Q, F]) absMatrix() (*storage.Matrix[F], unit.Unit[Q]) { return m.data(), m.unit }

// Get returns the scalar at (r, c).
func (m AbsMatrix[Q, F]) Get(r, c int) (Abs[Q, F], error) {
	x, err := m.GetSI(r, c)
	return AbsSI(x, m.unit), err
}

// Row returns row r as an absolute vector of the same representation.
func (m AbsMatrix[Q, F]) Row(r int) (AbsVector[Q, F], error) {
	v, err := m.row(r)
	return AbsVector[Q, F]{v}, err
}

// Column returns column c as an absolute vector of the same representation.
func (m AbsMatrix[Q, F]) Column(c int) (AbsVector[Q, F], error) {
	v, err := m.column(c)
	return AbsVector[Q, F]{v}, err
}

// WithUnit returns a matrix sharing m's storage, displayed in u.
func (m AbsMatrix[Q, F]) WithUnit(u unit.Unit[Q]) AbsMatrix[Q, F] {
	m.unit = u
	return m
}

// ToDense returns m itself when it is dense, else a dense copy.
func (m AbsMatrix[Q, F]) ToDense() AbsMatrix[Q, F] { return AbsMatrix[Q, F]{m.converted(Dense)} }

// ToSparse returns m itself when it is sparse, else a sparse copy.
func (m AbsMatrix[Q, F]) ToSparse() AbsMatrix[Q, F] { return AbsMatrix[Q, F]{m.converted(Sparse)} }

// Plus returns m shifted forward by d.
func (m AbsMatrix[Q, F]) Plus(d RelMatrixOperand[Q, F]) (AbsMatrix[Q, F], error) {
	src, _ := d.relMatrix()
	out, err := m.apply(storage.Add, "plus", src)
	if err != nil {
		return AbsMatrix[Q, F]{}, err
	}
	return AbsMatrix[Q, F]{wrapMatrix(out, m.unit, Absolute)}, nil
}

// Minus returns m shifted backward by d.
func (m AbsMatrix[Q, F]) Minus(d RelMatrixOperand[Q, F]) (AbsMatrix[Q, F], error) {
	src, _ := d.relMatrix()
	out, err := m.apply(storage.Sub, "minus", src)
	if err != nil {
		return AbsMatrix[Q, F]{}, err
	}
	return AbsMatrix[Q, F]{wrapMatrix(out, m.unit, Absolute)}, nil
}

// MinusAbs returns the differences m - o as a relative matrix.
func (m AbsMatrix[Q, F]) MinusAbs(o AbsMatrixOperand[Q, F]) (RelMatrix[Q, F], error) {
	src, _ := o.absMatrix()
	out, err := m.apply(storage.Sub, "minusAbs", src)
	if err != nil {
		return RelMatrix[Q, F]{}, err
	}
	return RelMatrix[Q, F]{wrapMatrix(out, m.unit, Relative)}, nil
}

// All yields (cell, scalar) pairs in row-major order.
func (m AbsMatrix[Q, F]) All() iter.Seq2[Cell, Abs[Q, F]] {
	return func(yield func(Cell, Abs[Q, F]) bool) {
		for c, x := range m.SISeq() {
			if !yield(c, AbsSI(x, m.unit)) {
				return
			}
		}
	}
}

// Equal reports whether m and o have the same shape and SI values.
func (m AbsMatrix[Q, F]) Equal(o AbsMatrixOperand[Q, F]) bool {
	data, _ := o.absMatrix()
	return storage.EqualMatrix(m.data(), data)
}

// Mutable returns a mutable matrix sharing m's storage until its first
// write.
func (m AbsMatrix[Q, F]) Mutable() *MutableAbsMatrix[Q, F] {
	return &MutableAbsMatrix[Q, F]{m.share()}
}

// String renders the cells in the display unit.
func (m AbsMatrix[Q, F]) String() string {
	return m.Format(m.unit, FormatOptions{WithUnit: true, Precision: DisplayPrecision()})
}

// Format renders the cells in u.
func (m AbsMatrix[Q, F]) Format(u unit.Unit[Q], opts FormatOptions) string {
	return formatMatrix(m.ValuesInUnit(u), u.Abbreviation(), header(false, Absolute, m.StorageType()), opts)
}

// MutableAbsMatrix is a copy-on-write editable matrix of absolute
// quantities.
//
// A MutableAbsMatrix is not safe for concurrent use.
type MutableAbsMatrix[Q unit.Quantity, F Float] struct {
	matrix[Q, F]
}

// NewMutableAbsMatrix builds an exclusively owned mutable matrix from rows
// of values given in u.
func NewMutableAbsMatrix[Q unit.Quantity, F Float](values [][]F, u unit.Unit[Q], st StorageType) (*MutableAbsMatrix[Q, F], error) {
	m, err := newMatrix(values, u, Absolute, st)
	if err != nil {
		return nil, err
	}
	return &MutableAbsMatrix[Q, F]{m}, nil
}

func (m *MutableAbsMatrix[Q, F]) absMatrix() (*storage.Matrix[F], unit.Unit[Q]) {
	return m.data(), m.unit
}

// IsShared reports whether the next write copies the storage first.
func (m *MutableAbsMatrix[Q, F]) IsShared() bool { return m.h.Shared() }

// Get returns the scalar at (r, c).
func (m *MutableAbsMatrix[Q, F]) Get(r, c int) (Abs[Q, F], error) {
	x, err := m.GetSI(r, c)
	return AbsSI(x, m.unit), err
}

// SetSI stores the SI value x at (r, c).
func (m *MutableAbsMatrix[Q, F]) SetSI(r, c int, x F) error { return m.setSI(r, c, x) }

// Set stores s at (r, c).
func (m *MutableAbsMatrix[Q, F]) Set(r, c int, s Abs[Q, F]) error { return m.setSI(r, c, s.SI()) }

// SetInUnit stores x, given in u, at (r, c).
func (m *MutableAbsMatrix[Q, F]) SetInUnit(r, c int, x F, u unit.Unit[Q]) error {
	return m.setSI(r, c, toSI(Absolute, u, x))
}

// IncrementBy shifts every cell forward by the matching cell of d.
func (m *MutableAbsMatrix[Q, F]) IncrementBy(d RelMatrixOperand[Q, F]) error {
	src, _ := d.relMatrix()
	return m.inPlace(storage.Add, "incrementBy", src)
}

// DecrementBy shifts every cell backward by the matching cell of d.
func (m *MutableAbsMatrix[Q, F]) DecrementBy(d RelMatrixOperand[Q, F]) error {
	src, _ := d.relMatrix()
	return m.inPlace(storage.Sub, "decrementBy", src)
}

// IncrementByScalar shifts every cell forward by s.
func (m *MutableAbsMatrix[Q, F]) IncrementByScalar(s Rel[Q, F]) { m.IncrementBySI(s.SI()) }

// DecrementByScalar shifts every cell backward by s.
func (m *MutableAbsMatrix[Q, F]) DecrementByScalar(s Rel[Q, F]) { m.DecrementBySI(s.SI()) }

// IncrementBySI shifts every cell forward by the SI constant c.
func (m *MutableAbsMatrix[Q, F]) IncrementBySI(c F) {
	m.scalar("incrementBy", func(d *storage.Matrix[F]) { d.AddScalar(c) })
}

// DecrementBySI shifts every cell backward by the SI constant c.
func (m *MutableAbsMatrix[Q, F]) DecrementBySI(c F) {
	m.scalar("decrementBy", func(d *storage.Matrix[F]) { d.AddScalar(-c) })
}

// Assign replaces every SI value x by fn(x).
func (m *MutableAbsMatrix[Q, F]) Assign(fn func(F) F) {
	m.scalar("assign", func(d *storage.Matrix[F]) { d.Assign(fn) })
}

// Compact drops explicitly stored zeros of sparse storage.
func (m *MutableAbsMatrix[Q, F]) Compact() { m.compact() }

// Immutable returns a snapshot of the current values.
func (m *MutableAbsMatrix[Q, F]) Immutable() AbsMatrix[Q, F] {
	return AbsMatrix[Q, F]{m.share()}
}

// Copy returns a second mutable matrix with the same values.
func (m *MutableAbsMatrix[Q, F]) Copy() *MutableAbsMatrix[Q, F] {
	return &MutableAbsMatrix[Q, F]{m.share()}
}

// String renders the cells in the display unit.
func (m *MutableAbsMatrix[Q, F]) String() string {
	return m.Format(m.unit, FormatOptions{WithUnit: true, Precision: DisplayPrecision()})
}

// Format renders the cells in u.
func (m *MutableAbsMatrix[Q, F]) Format(u unit.Unit[Q], opts FormatOptions) string {
	return formatMatrix(m.ValuesInUnit(u), u.Abbreviation(), header(true, Absolute, m.StorageType()), opts)
}
