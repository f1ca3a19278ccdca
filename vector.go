package quantities

import (
	"iter"
	"time"

	"github.com/hupe1980/quantities/internal/cow"
	"github.com/hupe1980/quantities/internal/storage"
	"github.com/hupe1980/quantities/unit"
)

// vector is the state shared by every vector container: a copy-on-write
// handle on SI storage, a display unit and the kind.
//
// Immutable containers never write through h. Mutable containers call
// writable before each edit, which detaches them from storage that another
// container still observes.
type vector[Q unit.Quantity, F Float] struct {
	h    *cow.Handle[storage.Vector[F]]
	unit unit.Unit[Q]
	kind Kind
}

func cloneVector[F Float](v storage.Vector[F]) storage.Vector[F] { return v.Clone() }

func wrapVector[Q unit.Quantity, F Float](data storage.Vector[F], u unit.Unit[Q], k Kind) vector[Q, F] {
	return vector[Q, F]{h: cow.New(data, cloneVector[F]), unit: u, kind: k}
}

// newVector converts values from u to SI and stores them as st.
func newVector[Q unit.Quantity, F Float](values []F, u unit.Unit[Q], k Kind, st StorageType) (vector[Q, F], error) {
	if values == nil {
		return vector[Q, F]{}, ErrConstruction
	}
	si := make([]F, len(values))
	for i, x := range values {
		si[i] = toSI(k, u, x)
	}
	data, err := fromSIValues(si, st)
	if err != nil {
		return vector[Q, F]{}, translateError(err)
	}
	return wrapVector(data, u, k), nil
}

// fromSIValues adopts si as dense storage or sparsifies it.
func fromSIValues[F Float](si []F, st StorageType) (storage.Vector[F], error) {
	if st == Dense {
		return storage.DenseFrom(si), nil
	}
	return storage.FromValues(si, st)
}

func toSI[Q unit.Quantity, F Float](k Kind, u unit.Unit[Q], x F) F {
	if k == Absolute {
		return F(u.ToSI(float64(x)))
	}
	return F(u.ToSIRelative(float64(x)))
}

func fromSI[Q unit.Quantity, F Float](k Kind, u unit.Unit[Q], si F) F {
	if k == Absolute {
		return F(u.FromSI(float64(si)))
	}
	return F(u.FromSIRelative(float64(si)))
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return &IndexOutOfRangeError{Index: i, Length: n}
	}
	return nil
}

func (v vector[Q, F]) data() storage.Vector[F] { return v.h.Load() }

// Len returns the fixed logical length.
func (v vector[Q, F]) Len() int { return v.data().Len() }

// Unit returns the display unit.
func (v vector[Q, F]) Unit() unit.Unit[Q] { return v.unit }

// Kind reports whether the container is absolute or relative.
func (v vector[Q, F]) Kind() Kind { return v.kind }

// StorageType returns the current representation.
func (v vector[Q, F]) StorageType() StorageType { return v.data().Type() }

// IsDense reports whether the magnitudes are stored densely.
func (v vector[Q, F]) IsDense() bool { return v.StorageType() == Dense }

// IsSparse reports whether only populated positions are stored.
func (v vector[Q, F]) IsSparse() bool { return v.StorageType() == Sparse }

// Cardinality counts populated positions: nonzero cells of dense storage,
// stored entries of sparse storage.
func (v vector[Q, F]) Cardinality() int { return v.data().Cardinality() }

// ZSumSI returns the SI sum of all magnitudes.
func (v vector[Q, F]) ZSumSI() F { return v.data().ZSum() }

// GetSI returns the SI magnitude at i.
func (v vector[Q, F]) GetSI(i int) (F, error) {
	x, err := v.data().At(i)
	return x, translateError(err)
}

// GetInUnit returns the magnitude at i expressed in u.
func (v vector[Q, F]) GetInUnit(i int, u unit.Unit[Q]) (F, error) {
	x, err := v.GetSI(i)
	if err != nil {
		return 0, err
	}
	return fromSI(v.kind, u, x), nil
}

// ValuesSI returns a fresh dense copy of the SI magnitudes.
func (v vector[Q, F]) ValuesSI() []F { return v.data().Values() }

// ValuesInUnit returns a fresh dense copy of the magnitudes expressed in u.
func (v vector[Q, F]) ValuesInUnit(u unit.Unit[Q]) []F {
	out := v.data().Values()
	for i, x := range out {
		out[i] = fromSI(v.kind, u, x)
	}
	return out
}

// SISeq yields (index, SI magnitude) pairs in index order. Each call
// starts a fresh traversal.
func (v vector[Q, F]) SISeq() iter.Seq2[int, F] {
	return func(yield func(int, F) bool) {
		data := v.data()
		for i := range data.Len() {
			x, _ := data.At(i)
			if !yield(i, x) {
				return
			}
		}
	}
}

func (v vector[Q, F]) converted(t StorageType) storage.Vector[F] {
	cur := v.data()
	if cur.Type() == t {
		return cur
	}
	var out storage.Vector[F]
	if t == Dense {
		out = cur.ToDense()
	} else {
		out = cur.ToSparse()
	}
	recordConversion(cur.Type(), t, cur.Len())
	return out
}

// withData wraps data in a new handle unless it is v's own storage.
func (v vector[Q, F]) withData(data storage.Vector[F]) vector[Q, F] {
	if data == v.data() {
		return v
	}
	return wrapVector(data, v.unit, v.kind)
}

func (v vector[Q, F]) apply(op storage.Op, name string, o storage.Vector[F]) (storage.Vector[F], error) {
	start := time.Now()
	out, err := storage.Apply(op, v.data(), o)
	observe(name, v.Len(), start, err)
	return out, translateError(err)
}

// share returns a second handle on the same storage.
func (v vector[Q, F]) share() vector[Q, F] {
	return vector[Q, F]{h: v.h.Share(), unit: v.unit, kind: v.kind}
}

// writable returns storage that only v observes, copying it first when it
// is shared.
func (v vector[Q, F]) writable() storage.Vector[F] {
	data, copied := v.h.Acquire()
	if copied {
		recordCopyOnWrite(data.Len(), data.Type())
	}
	return data
}

// replace publishes out when an in-place operation produced new storage.
func (v vector[Q, F]) replace(old, out storage.Vector[F]) {
	if out == old {
		return
	}
	if out.Type() != old.Type() {
		recordConversion(old.Type(), out.Type(), out.Len())
	}
	v.h.Store(out)
}

func (v vector[Q, F]) setSI(i int, x F) error {
	if err := checkIndex(i, v.Len()); err != nil {
		return err
	}
	return translateError(v.writable().Set(i, x))
}

func (v vector[Q, F]) inPlace(op storage.Op, name string, src storage.Vector[F]) error {
	start := time.Now()
	err := v.applyInPlace(op, src)
	observe(name, v.Len(), start, err)
	return translateError(err)
}

func (v vector[Q, F]) applyInPlace(op storage.Op, src storage.Vector[F]) error {
	if err := storage.CheckLen(v.Len(), src.Len()); err != nil {
		return err
	}
	dst := v.writable()
	out, err := storage.ApplyInPlace(op, dst, src)
	if err != nil {
		return err
	}
	v.replace(dst, out)
	return nil
}

func (v vector[Q, F]) scalar(name string, fn func(storage.Vector[F])) {
	start := time.Now()
	fn(v.writable())
	observe(name, v.Len(), start, nil)
}

func (v vector[Q, F]) normalize() error {
	start := time.Now()
	sum := v.ZSumSI()
	if sum == 0 {
		observe("normalize", v.Len(), start, ErrNormalization)
		return ErrNormalization
	}
	v.writable().DivScalar(sum)
	observe("normalize", v.Len(), start, nil)
	return nil
}

func (v vector[Q, F]) compact() {
	if s, ok := v.data().(*storage.Sparse[F]); ok && s.Cardinality() > 0 {
		v.writable().(*storage.Sparse[F]).Compact()
	}
}

func observe(op string, length int, start time.Time, err error) {
	o := current()
	o.metricsCollector.RecordOperation(op, time.Since(start), err)
	o.logger.LogOperation(op, length, err)
}

func recordCopyOnWrite(length int, t StorageType) {
	o := current()
	o.metricsCollector.RecordCopyOnWrite(length)
	o.logger.LogCopyOnWrite(length, t)
}

func recordConversion(from, to StorageType, length int) {
	o := current()
	o.metricsCollector.RecordConversion(from, to, length)
	o.logger.LogConversion(from, to, length)
}
