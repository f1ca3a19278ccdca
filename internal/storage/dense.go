package storage

import (
	"github.com/bits-and-blooms/bitset"
)

// Dense stores one magnitude per logical position.
type Dense[F Float] struct {
	data []F
}

// NewDense allocates a zero vector of length n.
func NewDense[F Float](n int) *Dense[F] {
	return &Dense[F]{data: make([]F, n)}
}

// DenseFrom adopts data as the backing buffer. The caller must not retain it.
func DenseFrom[F Float](data []F) *Dense[F] {
	if data == nil {
		data = []F{}
	}
	return &Dense[F]{data: data}
}

// Len implements Vector.
func (d *Dense[F]) Len() int { return len(d.data) }

// Type implements Vector.
func (d *Dense[F]) Type() Type { return DenseType }

// At implements Vector.
func (d *Dense[F]) At(i int) (F, error) {
	if err := checkIndex(i, len(d.data)); err != nil {
		return 0, err
	}
	return d.data[i], nil
}

// Set implements Vector.
func (d *Dense[F]) Set(i int, v F) error {
	if err := checkIndex(i, len(d.data)); err != nil {
		return err
	}
	d.data[i] = v
	return nil
}

// Cardinality implements Vector.
func (d *Dense[F]) Cardinality() int {
	n := 0
	for _, v := range d.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// ZSum implements Vector.
func (d *Dense[F]) ZSum() F { return sum(d.data) }

// ToDense implements Vector.
func (d *Dense[F]) ToDense() *Dense[F] { return d }

// ToSparse implements Vector. Zero cells are dropped.
func (d *Dense[F]) ToSparse() *Sparse[F] {
	mask := d.nonzero()
	n := mask.Count()
	s := &Sparse[F]{
		n:      len(d.data),
		idx:    make([]uint32, 0, n),
		vals:   make([]F, 0, n),
		growth: DefaultGrowth(),
	}
	for i, ok := mask.NextSet(0); ok; i, ok = mask.NextSet(i + 1) {
		s.idx = append(s.idx, uint32(i))
		s.vals = append(s.vals, d.data[i])
	}
	return s
}

// nonzero marks every cell holding a nonzero (or NaN) magnitude.
func (d *Dense[F]) nonzero() *bitset.BitSet {
	mask := bitset.New(uint(len(d.data)))
	for i, v := range d.data {
		if v != 0 {
			mask.Set(uint(i))
		}
	}
	return mask
}

// Clone implements Vector.
func (d *Dense[F]) Clone() Vector[F] {
	return &Dense[F]{data: append([]F{}, d.data...)}
}

// Values implements Vector.
func (d *Dense[F]) Values() []F {
	return append([]F{}, d.data...)
}

// Assign implements Vector.
func (d *Dense[F]) Assign(fn func(F) F) {
	for i, v := range d.data {
		d.data[i] = fn(v)
	}
}

// AddScalar implements Vector.
func (d *Dense[F]) AddScalar(c F) { addConst(c, d.data) }

// MulScalar implements Vector.
func (d *Dense[F]) MulScalar(c F) { scale(c, d.data) }

// DivScalar implements Vector.
func (d *Dense[F]) DivScalar(c F) {
	for i := range d.data {
		d.data[i] /= c
	}
}

func (d *Dense[F]) populated(fn func(i int, v F)) {
	for i, v := range d.data {
		fn(i, v)
	}
}

// apply combines src into d position by position. Lengths are checked by
// the caller.
func (d *Dense[F]) apply(op Op, src Vector[F]) {
	if s, ok := src.(*Dense[F]); ok {
		switch op {
		case Add:
			addInto(d.data, s.data)
		case Sub:
			subInto(d.data, s.data)
		case Mul:
			mulInto(d.data, s.data)
		case Div:
			divInto(d.data, s.data)
		}
		return
	}

	s := src.(*Sparse[F])
	if op.additive() {
		for k, i := range s.idx {
			d.data[i] = eval(op, d.data[i], s.vals[k])
		}
		return
	}

	// Multiplicative: only the sparse operand's nonzero positions survive.
	next := 0
	for k, i := range s.idx {
		v := s.vals[k]
		if v == 0 {
			continue
		}
		clear(d.data[next:i])
		d.data[i] = eval(op, d.data[i], v)
		next = int(i) + 1
	}
	clear(d.data[next:])
}
