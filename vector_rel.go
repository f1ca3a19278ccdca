package quantities

import (
	"iter"
	"math"

	"github.com/hupe1980/quantities/internal/storage"
	"github.com/hupe1980/quantities/unit"
)

// RelVectorOperand is implemented by RelVector and *MutableRelVector of
// the same quantity and precision.
type RelVectorOperand[Q unit.Quantity, F Float] interface {
	relVector() (storage.Vector[F], unit.Unit[Q])
}

// RelVector is an immutable vector of relative quantities.
//
// Relative vectors are closed under Plus, Minus, Times and Divide. The
// zero value is not usable; build vectors with NewRelVector and friends.
type RelVector[Q unit.Quantity, F Float] struct {
	vector[Q, F]
}

// NewRelVector builds a relative vector from magnitudes given in u.
func NewRelVector[Q unit.Quantity, F Float](values []F, u unit.Unit[Q], st StorageType) (RelVector[Q, F], error) {
	v, err := newVector(values, u, Relative, st)
	return RelVector[Q, F]{v}, err
}

// NewRelVectorSI builds a relative vector from SI magnitudes, displayed in u.
func NewRelVectorSI[Q unit.Quantity, F Float](si []F, u unit.Unit[Q], st StorageType) (RelVector[Q, F], error) {
	v, err := newVector(si, unit.SI[Q](), Relative, st)
	v.unit = u
	return RelVector[Q, F]{v}, err
}

// NewRelVectorFromScalars builds a relative vector from typed scalars. The
// display unit is taken from the first scalar.
func NewRelVectorFromScalars[Q unit.Quantity, F Float](scalars []Rel[Q, F], st StorageType) (RelVector[Q, F], error) {
	if len(scalars) == 0 {
		return RelVector[Q, F]{}, ErrConstruction
	}
	si := make([]F, len(scalars))
	for i, s := range scalars {
		si[i] = s.SI()
	}
	return NewRelVectorSI(si, scalars[0].Unit(), st)
}

// NewRelVectorFromMap builds a relative vector of the given length from
// scalars keyed by position. Absent positions are zero. The display unit is
// taken from the scalar at the lowest position.
func NewRelVectorFromMap[Q unit.Quantity, F Float](m map[int]Rel[Q, F], length int, st StorageType) (RelVector[Q, F], error) {
	si, u, err := fromMap(m, length, func(s Rel[Q, F]) (F, unit.Unit[Q]) { return s.SI(), s.Unit() })
	if err != nil {
		return RelVector[Q, F]{}, err
	}
	return NewRelVectorSI(si, u, st)
}

func fromMap[Q unit.Quantity, F Float, S any](m map[int]S, length int, split func(S) (F, unit.Unit[Q])) ([]F, unit.Unit[Q], error) {
	var u unit.Unit[Q]
	if len(m) == 0 || length < 0 {
		return nil, u, ErrConstruction
	}
	si := make([]F, length)
	lowest := length
	for i, s := range m {
		if err := checkIndex(i, length); err != nil {
			return nil, u, err
		}
		x, su := split(s)
		si[i] = x
		if i < lowest {
			lowest, u = i, su
		}
	}
	return si, u, nil
}

func (v RelVector[Q, F]) relVector() (storage.Vector[F], unit.Unit[Q]) { return v.data(), v.unit }

// Get returns the scalar at i.
func (v RelVector[Q, F]) Get(i int) (Rel[Q, F], error) {
	x, err := v.GetSI(i)
	return RelSI(x, v.unit), err
}

// ZSum returns the sum of all magnitudes.
func (v RelVector[Q, F]) ZSum() Rel[Q, F] { return RelSI(v.ZSumSI(), v.unit) }

// WithUnit returns a vector sharing v's storage, displayed in u.
func (v RelVector[Q, F]) WithUnit(u unit.Unit[Q]) RelVector[Q, F] {
	v.unit = u
	return v
}

// ToDense returns v itself when it is dense, else a dense copy.
func (v RelVector[Q, F]) ToDense() RelVector[Q, F] {
	return RelVector[Q, F]{v.withData(v.converted(Dense))}
}

// ToSparse returns v itself when it is sparse, else a sparse copy.
func (v RelVector[Q, F]) ToSparse() RelVector[Q, F] {
	return RelVector[Q, F]{v.withData(v.converted(Sparse))}
}

// Plus returns v + o. The result is sparse only when both are sparse.
func (v RelVector[Q, F]) Plus(o RelVectorOperand[Q, F]) (RelVector[Q, F], error) {
	return v.binary(storage.Add, "plus", o)
}

// Minus returns v - o.
func (v RelVector[Q, F]) Minus(o RelVectorOperand[Q, F]) (RelVector[Q, F], error) {
	return v.binary(storage.Sub, "minus", o)
}

// Times returns the elementwise product of v and o. Sparse results store
// exactly the positions where both operands are nonzero.
func (v RelVector[Q, F]) Times(o RelVectorOperand[Q, F]) (RelVector[Q, F], error) {
	return v.binary(storage.Mul, "times", o)
}

// Divide returns the elementwise quotient of v and o, evaluated only where
// both operands are populated.
func (v RelVector[Q, F]) Divide(o RelVectorOperand[Q, F]) (RelVector[Q, F], error) {
	return v.binary(storage.Div, "divide", o)
}

func (v RelVector[Q, F]) binary(op storage.Op, name string, o RelVectorOperand[Q, F]) (RelVector[Q, F], error) {
	src, _ := o.relVector()
	out, err := v.apply(op, name, src)
	if err != nil {
		return RelVector[Q, F]{}, err
	}
	return RelVector[Q, F]{wrapVector(out, v.unit, Relative)}, nil
}

// All yields (index, scalar) pairs in index order.
func (v RelVector[Q, F]) All() iter.Seq2[int, Rel[Q, F]] {
	return func(yield func(int, Rel[Q, F]) bool) {
		for i, x := range v.SISeq() {
			if !yield(i, RelSI(x, v.unit)) {
				return
			}
		}
	}
}

// Values yields the scalars in index order.
func (v RelVector[Q, F]) Values() iter.Seq[Rel[Q, F]] {
	return func(yield func(Rel[Q, F]) bool) {
		for _, s := range v.All() {
			if !yield(s) {
				return
			}
		}
	}
}

// Equal reports whether v and o hold the same SI magnitudes, regardless of
// representation and display unit.
func (v RelVector[Q, F]) Equal(o RelVectorOperand[Q, F]) bool {
	data, _ := o.relVector()
	return storage.Equal(v.data(), data)
}

// Mutable returns a mutable vector sharing v's storage until its first
// write.
func (v RelVector[Q, F]) Mutable() *MutableRelVector[Q, F] {
	return &MutableRelVector[Q, F]{v.share()}
}

// String renders the magnitudes in the display unit.
func (v RelVector[Q, F]) String() string {
	return v.Format(v.unit, FormatOptions{WithUnit: true, Precision: DisplayPrecision()})
}

// Format renders the magnitudes in u.
func (v RelVector[Q, F]) Format(u unit.Unit[Q], opts FormatOptions) string {
	return formatVector(v.ValuesInUnit(u), u.Abbreviation(), header(false, Relative, v.StorageType()), opts)
}

// MutableRelVector is a copy-on-write editable vector of relative
// quantities. Writes never become visible through containers it shares
// storage with.
//
// A MutableRelVector is not safe for concurrent use.
type MutableRelVector[Q unit.Quantity, F Float] struct {
	vector[Q, F]
}

// NewMutableRelVector builds an exclusively owned mutable vector from
// magnitudes given in u.
func NewMutableRelVector[Q unit.Quantity, F Float](values []F, u unit.Unit[Q], st StorageType) (*MutableRelVector[Q, F], error) {
	v, err := newVector(values, u, Relative, st)
	if err != nil {
		return nil, err
	}
	return &MutableRelVector[Q, F]{v}, nil
}

func (m *MutableRelVector[Q, F]) relVector() (storage.Vector[F], unit.Unit[Q]) {
	return m.data(), m.unit
}

// IsShared reports whether the storage may still be observed by another
// container, i.e. whether the next write copies it first.
func (m *MutableRelVector[Q, F]) IsShared() bool { return m.h.Shared() }

// Get returns the scalar at i.
func (m *MutableRelVector[Q, F]) Get(i int) (Rel[Q, F], error) {
	x, err := m.GetSI(i)
	return RelSI(x, m.unit), err
}

// ZSum returns the sum of all magnitudes.
func (m *MutableRelVector[Q, F]) ZSum() Rel[Q, F] { return RelSI(m.ZSumSI(), m.unit) }

// SetSI stores the SI magnitude x at i.
func (m *MutableRelVector[Q, F]) SetSI(i int, x F) error { return m.setSI(i, x) }

// Set stores s at i.
func (m *MutableRelVector[Q, F]) Set(i int, s Rel[Q, F]) error { return m.setSI(i, s.SI()) }

// SetInUnit stores x, given in u, at i.
func (m *MutableRelVector[Q, F]) SetInUnit(i int, x F, u unit.Unit[Q]) error {
	return m.setSI(i, toSI(Relative, u, x))
}

// IncrementBy adds o elementwise.
func (m *MutableRelVector[Q, F]) IncrementBy(o RelVectorOperand[Q, F]) error {
	src, _ := o.relVector()
	return m.inPlace(storage.Add, "incrementBy", src)
}

// DecrementBy subtracts o elementwise.
func (m *MutableRelVector[Q, F]) DecrementBy(o RelVectorOperand[Q, F]) error {
	src, _ := o.relVector()
	return m.inPlace(storage.Sub, "decrementBy", src)
}

// MultiplyBy multiplies by o elementwise.
func (m *MutableRelVector[Q, F]) MultiplyBy(o RelVectorOperand[Q, F]) error {
	src, _ := o.relVector()
	return m.inPlace(storage.Mul, "multiplyBy", src)
}

// DivideBy divides by o elementwise.
func (m *MutableRelVector[Q, F]) DivideBy(o RelVectorOperand[Q, F]) error {
	src, _ := o.relVector()
	return m.inPlace(storage.Div, "divideBy", src)
}

// IncrementByScalar adds s to every position.
func (m *MutableRelVector[Q, F]) IncrementByScalar(s Rel[Q, F]) { m.IncrementBySI(s.SI()) }

// DecrementByScalar subtracts s from every position.
func (m *MutableRelVector[Q, F]) DecrementByScalar(s Rel[Q, F]) { m.IncrementBySI(-s.SI()) }

// MultiplyByScalar multiplies every position by the SI magnitude of s.
func (m *MutableRelVector[Q, F]) MultiplyByScalar(s Rel[Q, F]) { m.MultiplyBySI(s.SI()) }

// DivideByScalar divides every position by the SI magnitude of s.
func (m *MutableRelVector[Q, F]) DivideByScalar(s Rel[Q, F]) { m.DivideBySI(s.SI()) }

// IncrementBySI adds the SI constant c to every position.
func (m *MutableRelVector[Q, F]) IncrementBySI(c F) {
	m.scalar("incrementBy", func(d storage.Vector[F]) { d.AddScalar(c) })
}

// DecrementBySI subtracts the SI constant c from every position.
func (m *MutableRelVector[Q, F]) DecrementBySI(c F) {
	m.scalar("decrementBy", func(d storage.Vector[F]) { d.AddScalar(-c) })
}

// MultiplyBySI multiplies every position by c.
func (m *MutableRelVector[Q, F]) MultiplyBySI(c F) {
	m.scalar("multiplyBy", func(d storage.Vector[F]) { d.MulScalar(c) })
}

// DivideBySI divides every position by c.
func (m *MutableRelVector[Q, F]) DivideBySI(c F) {
	m.scalar("divideBy", func(d storage.Vector[F]) { d.DivScalar(c) })
}

// Normalize divides every magnitude by the total sum. It returns
// ErrNormalization, leaving the vector untouched, when the sum is zero.
func (m *MutableRelVector[Q, F]) Normalize() error { return m.normalize() }

// Assign replaces every SI magnitude x by fn(x).
func (m *MutableRelVector[Q, F]) Assign(fn func(F) F) {
	m.scalar("assign", func(d storage.Vector[F]) { d.Assign(fn) })
}

// Abs replaces every magnitude by its absolute value.
func (m *MutableRelVector[Q, F]) Abs() { m.Assign(mathFn[F](math.Abs)) }

// Ceil rounds every SI magnitude up.
func (m *MutableRelVector[Q, F]) Ceil() { m.Assign(mathFn[F](math.Ceil)) }

// Floor rounds every SI magnitude down.
func (m *MutableRelVector[Q, F]) Floor() { m.Assign(mathFn[F](math.Floor)) }

// Rint rounds every SI magnitude to the nearest integer, ties to even.
func (m *MutableRelVector[Q, F]) Rint() { m.Assign(mathFn[F](math.RoundToEven)) }

// Neg negates every magnitude.
func (m *MutableRelVector[Q, F]) Neg() {
	m.scalar("neg", func(d storage.Vector[F]) { d.MulScalar(-1) })
}

// Compact drops explicitly stored zeros of sparse storage, such as those
// left behind by cancelling additions. It is a no-op on dense storage.
func (m *MutableRelVector[Q, F]) Compact() { m.compact() }

// Immutable returns a snapshot of the current magnitudes. Later edits of
// either side are not visible to the other.
func (m *MutableRelVector[Q, F]) Immutable() RelVector[Q, F] {
	return RelVector[Q, F]{m.share()}
}

// Copy returns a second mutable vector with the same magnitudes.
func (m *MutableRelVector[Q, F]) Copy() *MutableRelVector[Q, F] {
	return &MutableRelVector[Q, F]{m.share()}
}

// String renders the magnitudes in the display unit.
func (m *MutableRelVector[Q, F]) String() string {
	return m.Format(m.unit, FormatOptions{WithUnit: true, Precision: DisplayPrecision()})
}

// Format renders the magnitudes in u.
func (m *MutableRelVector[Q, F]) Format(u unit.Unit[Q], opts FormatOptions) string {
	return formatVector(m.ValuesInUnit(u), u.Abbreviation(), header(true, Relative, m.StorageType()), opts)
}

func mathFn[F Float](fn func(float64) float64) func(F) F {
	return func(x F) F { return F(fn(float64(x))) }
}
