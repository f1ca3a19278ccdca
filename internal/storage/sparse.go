package storage

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Sparse stores nonzero positions as parallel sorted-index and value arrays.
// Positions absent from idx are zero.
type Sparse[F Float] struct {
	n      int
	idx    []uint32
	vals   []F
	growth Growth
}

// NewSparse allocates an all-zero sparse vector of logical length n.
func NewSparse[F Float](n int) (*Sparse[F], error) {
	if err := checkLength(n); err != nil {
		return nil, err
	}
	return &Sparse[F]{n: n, growth: DefaultGrowth()}, nil
}

// SparseFrom adopts idx and vals as the backing arrays. idx must be strictly
// ascending and every index below n.
func SparseFrom[F Float](n int, idx []uint32, vals []F) (*Sparse[F], error) {
	if err := checkLength(n); err != nil {
		return nil, err
	}
	if err := CheckLen(len(idx), len(vals)); err != nil {
		return nil, err
	}
	for k, i := range idx {
		if int64(i) >= int64(n) {
			return nil, &IndexError{Index: int(i), Length: n}
		}
		if k > 0 && idx[k-1] >= i {
			return nil, fmt.Errorf("%w: position %d", ErrUnsorted, k)
		}
	}
	return &Sparse[F]{n: n, idx: idx, vals: vals, growth: DefaultGrowth()}, nil
}

// Len implements Vector.
func (s *Sparse[F]) Len() int { return s.n }

// Type implements Vector.
func (s *Sparse[F]) Type() Type { return SparseType }

// Growth returns the insertion growth policy of s.
func (s *Sparse[F]) Growth() Growth { return s.growth }

// Indices returns a copy of the stored indices.
func (s *Sparse[F]) Indices() []uint32 { return slices.Clone(s.idx) }

// StoredValues returns a copy of the stored values, parallel to Indices.
func (s *Sparse[F]) StoredValues() []F { return slices.Clone(s.vals) }

func (s *Sparse[F]) find(i int) (int, bool) {
	return slices.BinarySearch(s.idx, uint32(i))
}

// At implements Vector.
func (s *Sparse[F]) At(i int) (F, error) {
	if err := checkIndex(i, s.n); err != nil {
		return 0, err
	}
	if k, ok := s.find(i); ok {
		return s.vals[k], nil
	}
	return 0, nil
}

// Set implements Vector. An existing entry keeps its slot even when v is
// zero; writing zero to an absent position stores nothing.
func (s *Sparse[F]) Set(i int, v F) error {
	if err := checkIndex(i, s.n); err != nil {
		return err
	}
	k, ok := s.find(i)
	if ok {
		s.vals[k] = v
		return nil
	}
	if v == 0 {
		return nil
	}
	s.insert(k, uint32(i), v)
	return nil
}

func (s *Sparse[F]) insert(k int, i uint32, v F) {
	if s.growth == GrowthAmortized {
		s.idx = slices.Insert(s.idx, k, i)
		s.vals = slices.Insert(s.vals, k, v)
		return
	}

	idx := make([]uint32, len(s.idx)+1)
	copy(idx, s.idx[:k])
	idx[k] = i
	copy(idx[k+1:], s.idx[k:])

	vals := make([]F, len(s.vals)+1)
	copy(vals, s.vals[:k])
	vals[k] = v
	copy(vals[k+1:], s.vals[k:])

	s.idx, s.vals = idx, vals
}

// Cardinality implements Vector. Explicitly stored zeros are counted.
func (s *Sparse[F]) Cardinality() int { return len(s.idx) }

// ZSum implements Vector.
func (s *Sparse[F]) ZSum() F { return sum(s.vals) }

// ToDense implements Vector.
func (s *Sparse[F]) ToDense() *Dense[F] {
	data := make([]F, s.n)
	for k, i := range s.idx {
		data[i] = s.vals[k]
	}
	return &Dense[F]{data: data}
}

// ToSparse implements Vector.
func (s *Sparse[F]) ToSparse() *Sparse[F] { return s }

// Clone implements Vector.
func (s *Sparse[F]) Clone() Vector[F] {
	return &Sparse[F]{
		n:      s.n,
		idx:    slices.Clone(s.idx),
		vals:   slices.Clone(s.vals),
		growth: s.growth,
	}
}

// Values implements Vector.
func (s *Sparse[F]) Values() []F { return s.ToDense().data }

// Compact drops explicitly stored zeros.
func (s *Sparse[F]) Compact() {
	idx := s.idx[:0:0]
	vals := s.vals[:0:0]
	for k, v := range s.vals {
		if v != 0 {
			idx = append(idx, s.idx[k])
			vals = append(vals, v)
		}
	}
	s.idx, s.vals = idx, vals
}

// Assign implements Vector. fn may map zero to nonzero, so the vector is
// densified, transformed and resparsified; the receiver's buffers are
// replaced only after the round trip completes.
func (s *Sparse[F]) Assign(fn func(F) F) {
	d := s.ToDense()
	d.Assign(fn)
	next := d.ToSparse()
	s.idx, s.vals = next.idx, next.vals
}

// AddScalar implements Vector.
func (s *Sparse[F]) AddScalar(c F) {
	if c == 0 {
		return
	}
	s.Assign(func(x F) F { return x + c })
}

// MulScalar implements Vector. Implicit zeros stay zero unless c is not
// finite, in which case the dense semantics (0 × Inf = NaN) are reproduced.
func (s *Sparse[F]) MulScalar(c F) {
	if !isFinite(c) {
		s.Assign(func(x F) F { return x * c })
		return
	}
	scale(c, s.vals)
}

// DivScalar implements Vector. Division by zero goes through Assign so that
// implicit zeros become NaN exactly as dense cells would.
func (s *Sparse[F]) DivScalar(c F) {
	if c == 0 || !isFinite(c) {
		s.Assign(func(x F) F { return x / c })
		return
	}
	for k := range s.vals {
		s.vals[k] /= c
	}
}

// scatter evaluates a multiplicative op against a dense operand at the
// stored nonzero positions of s only; every other cell of the result is
// zero.
func (s *Sparse[F]) scatter(op Op, src *Dense[F]) *Dense[F] {
	out := NewDense[F](s.n)
	for k, i := range s.idx {
		if v := s.vals[k]; v != 0 {
			out.data[i] = eval(op, v, src.data[i])
		}
	}
	return out
}

func (s *Sparse[F]) populated(fn func(i int, v F)) {
	for k, i := range s.idx {
		fn(int(i), s.vals[k])
	}
}

func (s *Sparse[F]) bitmap() *roaring.Bitmap {
	return roaring.BitmapOf(s.idx...)
}

func (s *Sparse[F]) nonzeroBitmap() *roaring.Bitmap {
	rb := roaring.New()
	for k, v := range s.vals {
		if v != 0 {
			rb.Add(s.idx[k])
		}
	}
	return rb
}

// merge combines o into s. Both operands are sparse; lengths are checked by
// the caller. New buffers are built before s is touched, so s == o is safe.
func (s *Sparse[F]) merge(op Op, o *Sparse[F]) {
	var positions *roaring.Bitmap
	if op.additive() {
		positions = roaring.Or(s.bitmap(), o.bitmap())
	} else {
		positions = roaring.And(s.nonzeroBitmap(), o.nonzeroBitmap())
	}

	idx := positions.ToArray()
	vals := make([]F, len(idx))
	a, b := cursor[F]{s: s}, cursor[F]{s: o}
	for k, i := range idx {
		vals[k] = eval(op, a.seek(i), b.seek(i))
	}
	s.idx, s.vals = idx, vals
}

// cursor walks a sparse vector with monotonically increasing lookups.
type cursor[F Float] struct {
	s   *Sparse[F]
	pos int
}

func (c *cursor[F]) seek(i uint32) F {
	for c.pos < len(c.s.idx) && c.s.idx[c.pos] < i {
		c.pos++
	}
	if c.pos < len(c.s.idx) && c.s.idx[c.pos] == i {
		return c.s.vals[c.pos]
	}
	return 0
}
