package quantities

import (
	"iter"

	"github.com/hupe1980/quantities/internal/storage"
	"github.com/hupe1980/quantities/unit"
)

// AbsVectorOperand is implemented by AbsVector and *MutableAbsVector of the
// same quantity and precision.
type AbsVectorOperand[Q unit.Quantity, F Float] interface {
	absVector() (storage.Vector[F], unit.Unit[Q])
}

// AbsVector is an immutable vector of absolute quantities.
//
// Absolute vectors can be shifted by relative vectors and subtracted from
// each other. There is no way to add two absolute vectors or to scale one.
type AbsVector[Q unit.Quantity, F Float] struct {
	vector[Q, F]
}

// NewAbsVector builds an absolute vector from values given in u. Unit
// offsets (e.g. degrees Celsius) are applied.
func NewAbsVector[Q unit.Quantity, F Float](values []F, u unit.Unit[Q], st StorageType) (AbsVector[Q, F], error) {
	v, err := newVector(values, u, Absolute, st)
	return AbsVector[Q, F]{v}, err
}

// NewAbsVectorSI builds an absolute vector from SI values, displayed in u.
func NewAbsVectorSI[Q unit.Quantity, F Float](si []F, u unit.Unit[Q], st StorageType) (AbsVector[Q, F], error) {
	v, err := newVector(si, unit.SI[Q](), Absolute, st)
	v.unit = u
	return AbsVector[Q, F]{v}, err
}

// NewAbsVectorFromScalars builds an absolute vector from typed scalars. The
// display unit is taken from the first scalar.
func NewAbsVectorFromScalars[Q unit.Quantity, F Float](scalars []Abs[Q, F], st StorageType) (AbsVector[Q, F], error) {
	if len(scalars) == 0 {
		return AbsVector[Q, F]{}, ErrConstruction
	}
	si := make([]F, len(scalars))
	for i, s := range scalars {
		si[i] = s.SI()
	}
	return NewAbsVectorSI(si, scalars[0].Unit(), st)
}

// NewAbsVectorFromMap builds an absolute vector of the given length from
// scalars keyed by position. Absent positions hold SI zero.
func NewAbsVectorFromMap[Q unit.Quantity, F Float](m map[int]Abs[Q, F], length int, st StorageType) (AbsVector[Q, F], error) {
	si, u, err := fromMap(m, length, func(s Abs[Q, F]) (F, unit.Unit[Q]) { return s.SI(), s.Unit() })
	if err != nil {
		return AbsVector[Q, F]{}, err
	}
	return NewAbsVectorSI(si, u, st)
}

func (v AbsVector[Q, F]) absVector() (storage.Vector[F], unit.Unit[Q]) { return v.data(), v.unit }

// Get returns the scalar at i.
func (v AbsVector[Q, F]) Get(i int) (Abs[Q, F], error) {
	x, err := v.GetSI(i)
	return AbsSI(x, v.unit), err
}

// WithUnit returns a vector sharing v's storage, displayed in u.
func (v AbsVector[Q, F]) WithUnit(u unit.Unit[Q]) AbsVector[Q, F] {
	v.unit = u
	return v
}

// ToDense returns v itself when it is dense, else a dense copy.
func (v AbsVector[Q, F]) ToDense() AbsVector[Q, F] {
	return AbsVector[Q, F]{v.withData(v.converted(Dense))}
}

// ToSparse returns v itself when it is sparse, else a sparse copy.
func (v AbsVector[Q, F]) ToSparse() AbsVector[Q, F] {
	return AbsVector[Q, F]{v.withData(v.converted(Sparse))}
}

// Plus returns v shifted forward by d.
func (v AbsVector[Q, F]) Plus(d RelVectorOperand[Q, F]) (AbsVector[Q, F], error) {
	src, _ := d.relVector()
	out, err := v.apply(storage.Add, "plus", src)
	if err != nil {
		return AbsVector[Q, F]{}, err
	}
	return AbsVector[Q, F]{wrapVector(out, v.unit, Absolute)}, nil
}

// Minus returns v shifted backward by d.
func (v AbsVector[Q, F]) Minus(d RelVectorOperand[Q, F]) (AbsVector[Q, F], error) {
	src, _ := d.relVector()
	out, err := v.apply(storage.Sub, "minus", src)
	if err != nil {
		return AbsVector[Q, F]{}, err
	}
	return AbsVector[Q, F]{wrapVector(out, v.unit, Absolute)}, nil
}

// MinusAbs returns the differences v - o as a relative vector in the
// display unit of v.
func (v AbsVector[Q, F]) MinusAbs(o AbsVectorOperand[Q, F]) (RelVector[Q, F], error) {
	src, _ := o.absVector()
	out, err := v.apply(storage.Sub, "minusAbs", src)
	if err != nil {
		return RelVector[Q, F]{}, err
	}
	return RelVector[Q, F]{wrapVector(out, v.unit, Relative)}, nil
}

// All yields (index, scalar) pairs in index order.
func (v AbsVector[Q, F]) All() iter.Seq2[int, Abs[Q, F]] {
	return func(yield func(int, Abs[Q, F]) bool) {
		for i, x := range v.SISeq() {
			if !yield(i, AbsSI(x, v.unit)) {
				return
			}
		}
	}
}

// Values yields the scalars in index order.
func (v AbsVector[Q, F]) Values() iter.Seq[Abs[Q, F]] {
	return func(yield func(Abs[Q, F]) bool) {
		for _, s := range v.All() {
			if !yield(s) {
				return
			}
		}
	}
}

// Equal reports whether v and o hold the same SI values.
func (v AbsVector[Q, F]) Equal(o AbsVectorOperand[Q, F]) bool {
	data, _ := o.absVector()
	return storage.Equal(v.data(), data)
}

// Mutable returns a mutable vector sharing v's storage until its first
// write.
func (v AbsVector[Q, F]) Mutable() *MutableAbsVector[Q, F] {
	return &MutableAbsVector[Q, F]{v.share()}
}

// String renders the values in the display unit.
func (v AbsVector[Q, F]) String() string {
	return v.Format(v.unit, FormatOptions{WithUnit: true, Precision: DisplayPrecision()})
}

// Format renders the values in u.
func (v AbsVector[Q, F]) Format(u unit.Unit[Q], opts FormatOptions) string {
	return formatVector(v.ValuesInUnit(u), u.Abbreviation(), header(false, Absolute, v.StorageType()), opts)
}

// MutableAbsVector is a copy-on-write editable vector of absolute
// quantities.
//
// A MutableAbsVector is not safe for concurrent use.
type MutableAbsVector[Q unit.Quantity, F Float] struct {
	vector[Q, F]
}

// NewMutableAbsVector builds an exclusively owned mutable vector from
// values given in u.
func NewMutableAbsVector[Q unit.Quantity, F Float](values []F, u unit.Unit[Q], st StorageType) (*MutableAbsVector[Q, F], error) {
	v, err := newVector(values, u, Absolute, st)
	if err != nil {
		return nil, err
	}
	return &MutableAbsVector[Q, F]{v}, nil
}

func (m *MutableAbsVector[Q, F]) absVector() (storage.Vector[F], unit.Unit[Q]) {
	return m.data(), m.unit
}

// IsShared reports whether the next write copies the storage first.
func (m *MutableAbsVector[Q, F]) IsShared() bool { return m.h.Shared() }

// Get returns the scalar at i.
func (m *MutableAbsVector[Q, F]) Get(i int) (Abs[Q, F], error) {
	x, err := m.GetSI(i)
	return AbsSI(x, m.unit), err
}

// SetSI stores the SI value x at i.
func (m *MutableAbsVector[Q, F]) SetSI(i int, x F) error { return m.setSI(i, x) }

// Set stores s at i.
func (m *MutableAbsVector[Q, F]) Set(i int, s Abs[Q, F]) error { return m.setSI(i, s.SI()) }

// SetInUnit stores x, given in u, at i.
func (m *MutableAbsVector[Q, F]) SetInUnit(i int, x F, u unit.Unit[Q]) error {
	return m.setSI(i, toSI(Absolute, u, x))
}

// IncrementBy shifts every position forward by the matching entry of d.
func (m *MutableAbsVector[Q, F]) IncrementBy(d RelVectorOperand[Q, F]) error {
	src, _ := d.relVector()
	return m.inPlace(storage.Add, "incrementBy", src)
}

// DecrementBy shifts every position backward by the matching entry of d.
func (m *MutableAbsVector[Q, F]) DecrementBy(d RelVectorOperand[Q, F]) error {
	src, _ := d.relVector()
	return m.inPlace(storage.Sub, "decrementBy", src)
}

// IncrementByScalar shifts every position forward by s.
func (m *MutableAbsVector[Q, F]) IncrementByScalar(s Rel[Q, F]) { m.IncrementBySI(s.SI()) }

// DecrementByScalar shifts every position backward by s.
func (m *MutableAbsVector[Q, F]) DecrementByScalar(s Rel[Q, F]) { m.DecrementBySI(s.SI()) }

// IncrementBySI shifts every position forward by the SI constant c.
func (m *MutableAbsVector[Q, F]) IncrementBySI(c F) {
	m.scalar("incrementBy", func(d storage.Vector[F]) { d.AddScalar(c) })
}

// DecrementBySI shifts every position backward by the SI constant c.
func (m *MutableAbsVector[Q, F]) DecrementBySI(c F) {
	m.scalar("decrementBy", func(d storage.Vector[F]) { d.AddScalar(-c) })
}

// Assign replaces every SI value x by fn(x).
func (m *MutableAbsVector[Q, F]) Assign(fn func(F) F) {
	m.scalar("assign", func(d storage.Vector[F]) { d.Assign(fn) })
}

// Compact drops explicitly stored zeros of sparse storage.
func (m *MutableAbsVector[Q, F]) Compact() { m.compact() }

// Immutable returns a snapshot of the current values.
func (m *MutableAbsVector[Q, F]) Immutable() AbsVector[Q, F] {
	return AbsVector[Q, F]{m.share()}
}

// Copy returns a second mutable vector with the same values.
func (m *MutableAbsVector[Q, F]) Copy() *MutableAbsVector[Q, F] {
	return &MutableAbsVector[Q, F]{m.share()}
}

// String renders the values in the display unit.
func (m *MutableAbsVector[Q, F]) String() string {
	return m.Format(m.unit, FormatOptions{WithUnit: true, Precision: DisplayPrecision()})
}

// Format renders the values in u.
func (m *MutableAbsVector[Q, F]) Format(u unit.Unit[Q], opts FormatOptions) string {
	return formatVector(m.ValuesInUnit(u), u.Abbreviation(), header(true, Absolute, m.StorageType()), opts)
}
