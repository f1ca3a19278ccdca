package quantities

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/quantities/internal/storage"
	"github.com/hupe1980/quantities/unit"
)

// RelMatrixOperand is implemented by RelMatrix and *MutableRelMatrix of
// the same quantity and precision.
type RelMatrixOperand[Q unit.Quantity, F Float] interface {
	relMatrix() (*storage.Matrix[F], unit.Unit[Q])
}

// RelMatrix is an immutable matrix of relative quantities.
type RelMatrix[Q unit.Quantity, F Float] struct {
	matrix[Q, F]
}

// NewRelMatrix builds a relative matrix from rows of magnitudes given in u.
// All rows must have the same length.
func NewRelMatrix[Q unit.Quantity, F Float](values [][]F, u unit.Unit[Q], st StorageType) (RelMatrix[Q, F], error) {
	m, err := newMatrix(values, u, Relative, st)
	return RelMatrix[Q, F]{m}, err
}

// NewRelMatrixSI builds a rows × cols relative matrix from row-major SI
// magnitudes, displayed in u.
func NewRelMatrixSI[Q unit.Quantity, F Float](si []F, rows, cols int, u unit.Unit[Q], st StorageType) (RelMatrix[Q, F], error) {
	if si == nil {
		return RelMatrix[Q, F]{}, ErrConstruction
	}
	m, err := newMatrixSI(append([]F(nil), si...), rows, cols, u, Relative, st)
	return RelMatrix[Q, F]{m}, err
}

// NewRelMatrixFromScalars builds a relative matrix from rows of typed
// scalars. The display unit is taken from the first scalar.
func NewRelMatrixFromScalars[Q unit.Quantity, F Float](scalars [][]Rel[Q, F], st StorageType) (RelMatrix[Q, F], error) {
	if len(scalars) == 0 || len(scalars[0]) == 0 {
		return RelMatrix[Q, F]{}, ErrConstruction
	}
	rows, cols := len(scalars), len(scalars[0])
	si := make([]F, 0, rows*cols)
	for _, row := range scalars {
		if len(row) != cols {
			return RelMatrix[Q, F]{}, &SizeMismatchError{Expected: cols, Actual: len(row)}
		}
		for _, s := range row {
			si = append(si, s.SI())
		}
	}
	m, err := newMatrixSI(si, rows, cols, scalars[0][0].Unit(), Relative, st)
	return RelMatrix[Q, F]{m}, err
}

// NewRelMatrixFromMap builds a rows × cols relative matrix from scalars
// keyed by cell. Absent cells are zero.
func NewRelMatrixFromMap[Q unit.Quantity, F Float](cells map[Cell]Rel[Q, F], rows, cols int, st StorageType) (RelMatrix[Q, F], error) {
	si, u, err := fromCellMap(cells, rows, cols, func(s Rel[Q, F]) (F, unit.Unit[Q]) { return s.SI(), s.Unit() })
	if err != nil {
		return RelMatrix[Q, F]{}, err
	}
	m, err := newMatrixSI(si, rows, cols, u, Relative, st)
	return RelMatrix[Q, F]{m}, err
}

func (m RelMatrix[Q, F]) relMatrix() (*storage.Matrix[F], unit.Unit[Q]) { return m.data(), m.unit }

// Get returns the scalar at (r, c).
func (m RelMatrix[Q, F]) Get(r, c int) (Rel[Q, F], error) {
	x, err := m.GetSI(r, c)
	return RelSI(x, m.unit), err
}

// ZSum returns the sum of all cells.
func (m RelMatrix[Q, F]) ZSum() Rel[Q, F] { return RelSI(m.ZSumSI(), m.unit) }

// Row returns row r as a relative vector of the same representation.
func (m RelMatrix[Q, F]) Row(r int) (RelVector[Q, F], error) {
	v, err := m.row(r)
	return RelVector[Q, F]{v}, err
}

// Column returns column c as a relative vector of the same representation.
func (m RelMatrix[Q, F]) Column(c int) (RelVector[Q, F], error) {
	v, err := m.column(c)
	return RelVector[Q, F]{v}, err
}

// Determinant returns the determinant of the SI magnitudes. The matrix
// must be square; the empty matrix has determinant 1.
func (m RelMatrix[Q, F]) Determinant() (F, error) {
	rows, cols := m.Rows(), m.Cols()
	if rows != cols {
		return 0, &ShapeMismatchError{ExpectedRows: rows, ExpectedCols: rows, Rows: rows, Cols: cols}
	}
	if rows == 0 {
		return 1, nil
	}
	flat := m.data().Data().Values()
	data := make([]float64, len(flat))
	for i, x := range flat {
		data[i] = float64(x)
	}
	return F(mat.Det(mat.NewDense(rows, cols, data))), nil
}

// WithUnit returns a matrix sharing m's storage, displayed in u.
func (m RelMatrix[Q, F]) WithUnit(u unit.Unit[Q]) RelMatrix[Q, F] {
	m.unit = u
	return m
}

// ToDense returns m itself when it is dense, else a dense copy.
func (m RelMatrix[Q, F]) ToDense() RelMatrix[Q, F] { return RelMatrix[Q, F]{m.converted(Dense)} }

// ToSparse returns m itself when it is sparse, else a sparse copy.
func (m RelMatrix[Q, F]) ToSparse() RelMatrix[Q, F] { return RelMatrix[Q, F]{m.converted(Sparse)} }

// Plus returns m + o.
func (m RelMatrix[Q, F]) Plus(o RelMatrixOperand[Q, F]) (RelMatrix[Q, F], error) {
	return m.binary(storage.Add, "plus", o)
}

// Minus returns m - o.
func (m RelMatrix[Q, F]) Minus(o RelMatrixOperand[Q, F]) (RelMatrix[Q, F], error) {
	return m.binary(storage.Sub, "minus", o)
}

// Times returns the elementwise product of m and o.
func (m RelMatrix[Q, F]) Times(o RelMatrixOperand[Q, F]) (RelMatrix[Q, F], error) {
	return m.binary(storage.Mul, "times", o)
}

// Divide returns the elementwise quotient of m and o.
func (m RelMatrix[Q, F]) Divide(o RelMatrixOperand[Q, F]) (RelMatrix[Q, F], error) {
	return m.binary(storage.Div, "divide", o)
}

func (m RelMatrix[Q, F]) binary(op storage.Op, name string, o RelMatrixOperand[Q, F]) (RelMatrix[Q, F], error) {
	src, _ := o.relMatrix()
	out, err := m.apply(op, name, src)
	if err != nil {
		return RelMatrix[Q, F]{}, err
	}
	return RelMatrix[Q, F]{wrapMatrix(out, m.unit, Relative)}, nil
}

// All yields (cell, scalar) pairs in row-major order.
func (m RelMatrix[Q, F]) All() iter.Seq2[Cell, Rel[Q, F]] {
	return func(yield func(Cell, Rel[Q, F]) bool) {
		for c, x := range m.SISeq() {
			if !yield(c, RelSI(x, m.unit)) {
				return
			}
		}
	}
}

// Equal reports whether m and o have the same shape and SI magnitudes.
func (m RelMatrix[Q, F]) Equal(o RelMatrixOperand[Q, F]) bool {
	data, _ := o.relMatrix()
	return storage.EqualMatrix(m.data(), data)
}

// Mutable returns a mutable matrix sharing m's storage until its first
// write.
func (m RelMatrix[Q, F]) Mutable() *MutableRelMatrix[Q, F] {
	return &MutableRelMatrix[Q, F]{m.share()}
}

// String renders the cells in the display unit.
func (m RelMatrix[Q, F]) String() string {
	return m.Format(m.unit, FormatOptions{WithUnit: true, Precision: DisplayPrecision()})
}

// Format renders the cells in u.
func (m RelMatrix[Q, F]) Format(u unit.Unit[Q], opts FormatOptions) string {
	return formatMatrix(m.ValuesInUnit(u), u.Abbreviation(), header(false, Relative, m.StorageType()), opts)
}

// MutableRelMatrix is a copy-on-write editable matrix of relative
// quantities.
//
// A MutableRelMatrix is not safe for concurrent use.
type MutableRelMatrix[Q unit.Quantity, F Float] struct {
	matrix[Q, F]
}

// NewMutableRelMatrix builds an exclusively owned mutable matrix from rows
// of magnitudes given in u.
func NewMutableRelMatrix[Q unit.Quantity, F Float](values [][]F, u unit.Unit[Q], st StorageType) (*MutableRelMatrix[Q, F], error) {
	m, err := newMatrix(values, u, Relative, st)
	if err != nil {
		return nil, err
	}
	return &MutableRelMatrix[Q, F]{m}, nil
}

func (m *MutableRelMatrix[Q, F]) relMatrix() (*storage.Matrix[F], unit.Unit[Q]) {
	return m.data(), m.unit
}

// IsShared reports whether the next write copies the storage first.
func (m *MutableRelMatrix[Q, F]) IsShared() bool { return m.h.Shared() }

// Get returns the scalar at (r, c).
func (m *MutableRelMatrix[Q, F]) Get(r, c int) (Rel[Q, F], error) {
	x, err := m.GetSI(r, c)
	return RelSI(x, m.unit), err
}

// SetSI stores the SI magnitude x at (r, c).
func (m *MutableRelMatrix[Q, F]) SetSI(r, c int, x F) error { return m.setSI(r, c, x) }

// Set stores s at (r, c).
func (m *MutableRelMatrix[Q, F]) Set(r, c int, s Rel[Q, F]) error { return m.setSI(r, c, s.SI()) }

// SetInUnit stores x, given in u, at (r, c).
func (m *MutableRelMatrix[Q, F]) SetInUnit(r, c int, x F, u unit.Unit[Q]) error {
	return m.setSI(r, c, toSI(Relative, u, x))
}

// IncrementBy adds o elementwise.
func (m *MutableRelMatrix[Q, F]) IncrementBy(o RelMatrixOperand[Q, F]) error {
	src, _ := o.relMatrix()
	return m.inPlace(storage.Add, "incrementBy", src)
}

// DecrementBy subtracts o elementwise.
func (m *MutableRelMatrix[Q, F]) DecrementBy(o RelMatrixOperand[Q, F]) error {
	src, _ := o.relMatrix()
	return m.inPlace(storage.Sub, "decrementBy", src)
}

// MultiplyBy multiplies by o elementwise.
func (m *MutableRelMatrix[Q, F]) MultiplyBy(o RelMatrixOperand[Q, F]) error {
	src, _ := o.relMatrix()
	return m.inPlace(storage.Mul, "multiplyBy", src)
}

// DivideBy divides by o elementwise.
func (m *MutableRelMatrix[Q, F]) DivideBy(o RelMatrixOperand[Q, F]) error {
	src, _ := o.relMatrix()
	return m.inPlace(storage.Div, "divideBy", src)
}

// IncrementByScalar adds s to every cell.
func (m *MutableRelMatrix[Q, F]) IncrementByScalar(s Rel[Q, F]) { m.IncrementBySI(s.SI()) }

// DecrementByScalar subtracts s from every cell.
func (m *MutableRelMatrix[Q, F]) DecrementByScalar(s Rel[Q, F]) { m.IncrementBySI(-s.SI()) }

// MultiplyByScalar multiplies every cell by the SI magnitude of s.
func (m *MutableRelMatrix[Q, F]) MultiplyByScalar(s Rel[Q, F]) { m.MultiplyBySI(s.SI()) }

// DivideByScalar divides every cell by the SI magnitude of s.
func (m *MutableRelMatrix[Q, F]) DivideByScalar(s Rel[Q, F]) { m.DivideBySI(s.SI()) }

// IncrementBySI adds the SI constant c to every cell.
func (m *MutableRelMatrix[Q, F]) IncrementBySI(c F) {
	m.scalar("incrementBy", func(d *storage.Matrix[F]) { d.AddScalar(c) })
}

// DecrementBySI subtracts the SI constant c from every cell.
func (m *MutableRelMatrix[Q, F]) DecrementBySI(c F) {
	m.scalar("decrementBy", func(d *storage.Matrix[F]) { d.AddScalar(-c) })
}

// MultiplyBySI multiplies every cell by c.
func (m *MutableRelMatrix[Q, F]) MultiplyBySI(c F) {
	m.scalar("multiplyBy", func(d *storage.Matrix[F]) { d.MulScalar(c) })
}

// DivideBySI divides every cell by c.
func (m *MutableRelMatrix[Q, F]) DivideBySI(c F) {
	m.scalar("divideBy", func(d *storage.Matrix[F]) { d.DivScalar(c) })
}

// Normalize divides every cell by the total sum. It returns
// ErrNormalization, leaving the matrix untouched, when the sum is zero.
func (m *MutableRelMatrix[Q, F]) Normalize() error { return m.normalize() }

// Assign replaces every SI magnitude x by fn(x).
func (m *MutableRelMatrix[Q, F]) Assign(fn func(F) F) {
	m.scalar("assign", func(d *storage.Matrix[F]) { d.Assign(fn) })
}

// Abs replaces every magnitude by its absolute value.
func (m *MutableRelMatrix[Q, F]) Abs() { m.Assign(mathFn[F](math.Abs)) }

// Ceil rounds every SI magnitude up.
func (m *MutableRelMatrix[Q, F]) Ceil() { m.Assign(mathFn[F](math.Ceil)) }

// Floor rounds every SI magnitude down.
func (m *MutableRelMatrix[Q, F]) Floor() { m.Assign(mathFn[F](math.Floor)) }

// Rint rounds every SI magnitude to the nearest integer, ties to even.
func (m *MutableRelMatrix[Q, F]) Rint() { m.Assign(mathFn[F](math.RoundToEven)) }

// Neg negates every magnitude.
func (m *MutableRelMatrix[Q, F]) Neg() {
	m.scalar("neg", func(d *storage.Matrix[F]) { d.MulScalar(-1) })
}

// Compact drops explicitly stored zeros of sparse storage.
func (m *MutableRelMatrix[Q, F]) Compact() { m.compact() }

// Immutable returns a snapshot of the current magnitudes.
func (m *MutableRelMatrix[Q, F]) Immutable() RelMatrix[Q, F] {
	return RelMatrix[Q, F]{m.share()}
}

// Copy returns a second mutable matrix with the same magnitudes.
func (m *MutableRelMatrix[Q, F]) Copy() *MutableRelMatrix[Q, F] {
	return &MutableRelMatrix[Q, F]{m.share()}
}

// String renders the cells in the display unit.
func (m *MutableRelMatrix[Q, F]) String() string {
	return m.Format(m.unit, FormatOptions{WithUnit: true, Precision: DisplayPrecision()})
}

// Format renders the cells in u.
func (m *MutableRelMatrix[Q, F]) Format(u unit.Unit[Q], opts FormatOptions) string {
	return formatMatrix(m.ValuesInUnit(u), u.Abbreviation(), header(true, Relative, m.StorageType()), opts)
}
