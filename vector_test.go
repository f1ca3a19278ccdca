package quantities

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/quantities/testutil"
	"github.com/hupe1980/quantities/unit"
)

func relVec(t *testing.T, values []float64, st StorageType) RelVector[unit.Length, float64] {
	t.Helper()
	v, err := NewRelVector(values, unit.Meter, st)
	require.NoError(t, err)
	return v
}

func TestCopyOnWriteIsolation(t *testing.T) {
	for _, st := range []StorageType{Dense, Sparse} {
		t.Run(st.String(), func(t *testing.T) {
			v := relVec(t, []float64{1, 2, 3}, st)

			m := v.Mutable()
			assert.True(t, m.IsShared())

			require.NoError(t, m.SetSI(0, 9))
			assert.False(t, m.IsShared())

			x, err := v.GetSI(0)
			require.NoError(t, err)
			assert.Equal(t, 1.0, x)

			x, err = m.GetSI(0)
			require.NoError(t, err)
			assert.Equal(t, 9.0, x)

			snap := m.Immutable()
			assert.True(t, m.IsShared())

			require.NoError(t, m.SetSI(1, 7))
			assert.Equal(t, []float64{9, 2, 3}, snap.ValuesSI())
			assert.Equal(t, []float64{9, 7, 3}, m.ValuesSI())
			assert.Equal(t, []float64{1, 2, 3}, v.ValuesSI())
		})
	}
}

func TestCopyOnWriteSiblings(t *testing.T) {
	v := relVec(t, []float64{1, 2, 3}, Dense)
	a := v.Mutable()
	b := a.Copy()

	a.IncrementBySI(1)
	b.MultiplyBySI(2)

	assert.Equal(t, []float64{2, 3, 4}, a.ValuesSI())
	assert.Equal(t, []float64{2, 4, 6}, b.ValuesSI())
	assert.Equal(t, []float64{1, 2, 3}, v.ValuesSI())
}

func TestCopyOnWriteMetrics(t *testing.T) {
	mc := &BasicMetricsCollector{}
	Configure(WithMetricsCollector(mc))
	t.Cleanup(ResetConfiguration)

	v := relVec(t, []float64{1, 2, 3}, Dense)
	m := v.Mutable()
	require.NoError(t, m.SetSI(0, 5))
	require.NoError(t, m.SetSI(1, 5))

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.CopyOnWriteCount)
	assert.Equal(t, int64(3), stats.CopyOnWriteCells)

	excl, err := NewMutableRelVector([]float64{1}, unit.Meter, Dense)
	require.NoError(t, err)
	assert.False(t, excl.IsShared())
	require.NoError(t, excl.SetSI(0, 2))
	assert.Equal(t, int64(1), mc.GetStats().CopyOnWriteCount)
}

func TestMixedAdditiveIsDense(t *testing.T) {
	a := relVec(t, []float64{1, 0, 3}, Dense)
	b := relVec(t, []float64{0, 0, 3}, Sparse)

	sum, err := a.Plus(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 6}, sum.ValuesSI())
	assert.True(t, sum.IsDense())

	sum, err = b.Plus(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 6}, sum.ValuesSI())
	assert.True(t, sum.IsDense())
}

func TestSparseIntersection(t *testing.T) {
	a := relVec(t, []float64{2, 0, 0}, Sparse)
	b := relVec(t, []float64{0, 0, 5}, Sparse)

	p, err := a.Times(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, p.ValuesSI())
	assert.True(t, p.IsSparse())
	assert.Equal(t, 0, p.Cardinality())

	q, err := a.Divide(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, q.ValuesSI())
	assert.Equal(t, 0, q.Cardinality())
}

func TestSparseByDenseMultiplicative(t *testing.T) {
	a := relVec(t, []float64{0, 4, 0}, Sparse)
	b := relVec(t, []float64{0, 2, 5}, Dense)

	q, err := a.Divide(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 0}, q.ValuesSI())
	assert.True(t, q.IsDense())

	m := a.Mutable()
	require.NoError(t, m.DivideBy(b))
	assert.Equal(t, []float64{0, 2, 0}, m.ValuesSI())
	assert.Equal(t, []float64{0, 4, 0}, a.ValuesSI())

	m = a.Mutable()
	require.NoError(t, m.MultiplyBy(b))
	assert.Equal(t, []float64{0, 8, 0}, m.ValuesSI())
}

func TestCancellationKeepsZeros(t *testing.T) {
	a := relVec(t, []float64{2, 0, 1}, Sparse)
	b := relVec(t, []float64{-2, 0, 0}, Sparse)

	sum, err := a.Plus(b)
	require.NoError(t, err)
	assert.True(t, sum.IsSparse())
	assert.Equal(t, []float64{0, 0, 1}, sum.ValuesSI())
	assert.Equal(t, 2, sum.Cardinality())

	m := sum.Mutable()
	m.Compact()
	assert.Equal(t, 1, m.Cardinality())
	assert.Equal(t, 2, sum.Cardinality())
}

func TestAbsoluteTimeDifference(t *testing.T) {
	tt, err := NewAbsVector([]float64{10, 20}, unit.Second, Dense)
	require.NoError(t, err)
	t0, err := NewAbsVector([]float64{5, 5}, unit.Second, Dense)
	require.NoError(t, err)

	d, err := tt.MinusAbs(t0)
	require.NoError(t, err)
	assert.Equal(t, Relative, d.Kind())
	assert.Equal(t, []float64{5, 15}, d.ValuesSI())

	back, err := t0.Plus(d)
	require.NoError(t, err)
	assert.True(t, back.Equal(tt))

	again, err := tt.Minus(d)
	require.NoError(t, err)
	assert.True(t, again.Equal(t0))
}

func TestAbsoluteAlgebraIsStatic(t *testing.T) {
	absType := reflect.TypeOf(AbsVector[unit.Time, float64]{})
	for _, name := range []string{"Times", "Divide"} {
		_, ok := absType.MethodByName(name)
		assert.False(t, ok, name)
	}

	relOperand := reflect.TypeOf((*RelVectorOperand[unit.Time, float64])(nil)).Elem()
	absOperand := reflect.TypeOf((*AbsVectorOperand[unit.Time, float64])(nil)).Elem()

	plus, ok := absType.MethodByName("Plus")
	require.True(t, ok)
	assert.Equal(t, relOperand, plus.Type.In(1))
	assert.False(t, absType.Implements(relOperand))
	assert.True(t, absType.Implements(absOperand))

	mutAbs := reflect.TypeOf(&MutableAbsVector[unit.Time, float64]{})
	for _, name := range []string{"MultiplyBy", "DivideBy", "Normalize", "Neg"} {
		_, ok := mutAbs.MethodByName(name)
		assert.False(t, ok, name)
	}

	// Operands of another quantity do not satisfy the interface.
	lengthType := reflect.TypeOf(RelVector[unit.Length, float64]{})
	assert.False(t, lengthType.Implements(relOperand))
}

func TestSizeMismatch(t *testing.T) {
	a := relVec(t, []float64{1, 2, 3}, Dense)
	b := relVec(t, []float64{4, 5}, Sparse)

	_, err := a.Plus(b)
	require.ErrorIs(t, err, ErrSizeMismatch)

	var sm *SizeMismatchError
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, 3, sm.Expected)
	assert.Equal(t, 2, sm.Actual)

	assert.Equal(t, []float64{1, 2, 3}, a.ValuesSI())
	assert.Equal(t, []float64{4, 5}, b.ValuesSI())

	m := a.Mutable()
	require.ErrorIs(t, m.IncrementBy(b), ErrSizeMismatch)
	assert.True(t, m.IsShared())
	assert.Equal(t, []float64{1, 2, 3}, m.ValuesSI())
}

func TestIndexOutOfRange(t *testing.T) {
	v := relVec(t, []float64{1, 2, 3}, Sparse)

	_, err := v.GetSI(3)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	var ie *IndexOutOfRangeError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 3, ie.Index)
	assert.Equal(t, 3, ie.Length)

	_, err = v.Get(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	m := v.Mutable()
	assert.ErrorIs(t, m.SetSI(5, 1), ErrIndexOutOfRange)
	assert.True(t, m.IsShared())
}

func TestNormalize(t *testing.T) {
	for _, st := range []StorageType{Dense, Sparse} {
		t.Run(st.String(), func(t *testing.T) {
			m, err := NewMutableRelVector([]float64{1, 0, 2, 5}, unit.Meter, st)
			require.NoError(t, err)
			require.NoError(t, m.Normalize())
			assert.InDelta(t, 1.0, m.ZSumSI(), 1e-12)
			assert.InDelta(t, 0.625, m.ValuesSI()[3], 1e-12)

			z, err := NewMutableRelVector([]float64{1, -1, 0}, unit.Meter, st)
			require.NoError(t, err)
			assert.ErrorIs(t, z.Normalize(), ErrNormalization)
			assert.Equal(t, []float64{1, -1, 0}, z.ValuesSI())
		})
	}
}

func TestUnitConversion(t *testing.T) {
	v, err := NewRelVector([]float64{1, 2.5}, unit.Kilometer, Dense)
	require.NoError(t, err)

	x, err := v.GetSI(0)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, x)

	x, err = v.GetInUnit(1, unit.Meter)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, x)

	s, err := v.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, s.SI())
	assert.Equal(t, unit.Kilometer, s.Unit())

	meters, err := NewRelVector([]float64{500, 0}, unit.Meter, Sparse)
	require.NoError(t, err)
	sum, err := v.Plus(meters)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, sum.ValuesInUnit(unit.Kilometer))
	assert.Equal(t, unit.Kilometer, sum.Unit())
}

func TestAbsoluteOffsetUnits(t *testing.T) {
	temps, err := NewAbsVector([]float64{0, 100}, unit.Celsius, Dense)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{273.15, 373.15}, temps.ValuesSI(), 1e-9)
	assert.InDeltaSlice(t, []float64{32, 212}, temps.ValuesInUnit(unit.Fahrenheit), 1e-9)

	first, err := temps.Get(0)
	require.NoError(t, err)
	last, err := temps.Get(1)
	require.NoError(t, err)

	rise, err := temps.ToSparse().MinusAbs(temps.ToDense())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, rise.ValuesSI())

	delta := last.MinusAbs(first)
	assert.InDelta(t, 100.0, delta.InUnit(unit.Celsius), 1e-9)
	assert.InDelta(t, 180.0, delta.InUnit(unit.Fahrenheit), 1e-9)
}

func TestConstruction(t *testing.T) {
	_, err := NewRelVector[unit.Length, float64](nil, unit.Meter, Dense)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = NewRelVectorFromScalars[unit.Length, float64](nil, Dense)
	assert.ErrorIs(t, err, ErrConstruction)

	_, err = NewAbsVectorFromMap[unit.Length, float64](map[int]Abs[unit.Length, float64]{}, 3, Dense)
	assert.ErrorIs(t, err, ErrConstruction)

	empty, err := NewRelVector([]float64{}, unit.Meter, Sparse)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())

	scalars := []Rel[unit.Length, float64]{
		NewRel(1.0, unit.Kilometer),
		NewRel(5.0, unit.Meter),
	}
	v, err := NewRelVectorFromScalars(scalars, Sparse)
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 5}, v.ValuesSI())
	assert.Equal(t, unit.Kilometer, v.Unit())

	m := map[int]Rel[unit.Length, float64]{
		3: NewRel(2.0, unit.Kilometer),
		0: NewRel(1.0, unit.Meter),
	}
	v, err = NewRelVectorFromMap(m, 5, Sparse)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0, 2000, 0}, v.ValuesSI())
	assert.Equal(t, 2, v.Cardinality())
	assert.Equal(t, unit.Meter, v.Unit())

	m[7] = NewRel(1.0, unit.Meter)
	_, err = NewRelVectorFromMap(m, 5, Dense)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestIteration(t *testing.T) {
	v := relVec(t, []float64{4, 0, 6}, Sparse)

	collect := func() []float64 {
		var out []float64
		for i, s := range v.All() {
			assert.Len(t, out, i)
			out = append(out, s.SI())
		}
		return out
	}
	assert.Equal(t, []float64{4, 0, 6}, collect())
	assert.Equal(t, []float64{4, 0, 6}, collect())

	var first []float64
	for s := range v.Values() {
		first = append(first, s.SI())
		break
	}
	assert.Equal(t, []float64{4}, first)

	m := v.Mutable()
	snap := m.Immutable()
	require.NoError(t, m.SetSI(1, 3))
	var seen []float64
	for _, x := range m.SISeq() {
		seen = append(seen, x)
	}
	assert.Equal(t, []float64{4, 3, 6}, seen)
	assert.Equal(t, []float64{4, 0, 6}, snap.ValuesSI())
}

func TestRepresentationConversion(t *testing.T) {
	mc := &BasicMetricsCollector{}
	Configure(WithMetricsCollector(mc))
	t.Cleanup(ResetConfiguration)

	rng := testutil.NewRNG(7)
	values := rng.SparseSigned(64, 0.2)

	d := relVec(t, values, Dense)
	assert.True(t, d.ToDense().Equal(d))
	assert.Equal(t, int64(0), mc.GetStats().DensifyCount)

	s := d.ToSparse()
	assert.True(t, s.IsSparse())
	assert.Equal(t, testutil.CountNonzero(values), s.Cardinality())
	assert.Equal(t, values, s.ToDense().ValuesSI())

	stats := mc.GetStats()
	assert.Equal(t, int64(1), stats.SparsifyCount)
	assert.Equal(t, int64(1), stats.DensifyCount)
}

func TestPlusMatchesElementwise(t *testing.T) {
	rng := testutil.NewRNG(42)
	kinds := []StorageType{Dense, Sparse}

	for range 20 {
		n := 1 + rng.Intn(40)
		av, bv := rng.SparseSigned(n, 0.3), rng.SparseSigned(n, 0.3)
		a := relVec(t, av, kinds[rng.Intn(2)])
		b := relVec(t, bv, kinds[rng.Intn(2)])

		sum, err := a.Plus(b)
		require.NoError(t, err)
		diff, err := a.Minus(b)
		require.NoError(t, err)
		prod, err := a.Times(b)
		require.NoError(t, err)

		for i := range n {
			x, err := sum.GetSI(i)
			require.NoError(t, err)
			assert.Equal(t, av[i]+bv[i], x)

			x, err = diff.GetSI(i)
			require.NoError(t, err)
			assert.Equal(t, av[i]-bv[i], x)

			x, err = prod.GetSI(i)
			require.NoError(t, err)
			assert.Equal(t, av[i]*bv[i], x)
		}
		assert.Equal(t, a.IsSparse() && b.IsSparse(), sum.IsSparse())
	}
}

func TestMutableInPlace(t *testing.T) {
	m, err := NewMutableRelVector([]float64{1, 0, 3}, unit.Meter, Sparse)
	require.NoError(t, err)

	other := relVec(t, []float64{1, 1, 1}, Dense)
	require.NoError(t, m.IncrementBy(other))
	assert.True(t, m.IsDense())
	assert.Equal(t, []float64{2, 1, 4}, m.ValuesSI())

	require.NoError(t, m.MultiplyBy(relVec(t, []float64{2, 0, 0.5}, Sparse)))
	assert.Equal(t, []float64{4, 0, 2}, m.ValuesSI())

	require.NoError(t, m.DecrementBy(m))
	assert.Equal(t, []float64{0, 0, 0}, m.ValuesSI())

	m.IncrementByScalar(NewRel(1.0, unit.Kilometer))
	assert.Equal(t, []float64{1000, 1000, 1000}, m.ValuesSI())

	m.DivideBySI(10)
	m.DecrementByScalar(NewRel(50.0, unit.Meter))
	assert.Equal(t, []float64{50, 50, 50}, m.ValuesSI())

	require.NoError(t, m.DivideBy(relVec(t, []float64{5, 25, 50}, Dense)))
	assert.Equal(t, []float64{10, 2, 1}, m.ValuesSI())

	require.NoError(t, m.Set(0, NewRel(3.0, unit.Meter)))
	require.NoError(t, m.SetInUnit(1, 0.5, unit.Kilometer))
	assert.Equal(t, []float64{3, 500, 1}, m.ValuesSI())
}

func TestMutableMathFunctions(t *testing.T) {
	tests := []struct {
		name string
		fn   func(m *MutableRelVector[unit.Length, float64])
		want []float64
	}{
		{"Abs", (*MutableRelVector[unit.Length, float64]).Abs, []float64{1.5, 2.5, 0}},
		{"Ceil", (*MutableRelVector[unit.Length, float64]).Ceil, []float64{-1, 3, 0}},
		{"Floor", (*MutableRelVector[unit.Length, float64]).Floor, []float64{-2, 2, 0}},
		{"Rint", (*MutableRelVector[unit.Length, float64]).Rint, []float64{-2, 2, 0}},
		{"Neg", (*MutableRelVector[unit.Length, float64]).Neg, []float64{1.5, -2.5, 0}},
	}
	for _, tt := range tests {
		for _, st := range []StorageType{Dense, Sparse} {
			t.Run(tt.name+"/"+st.String(), func(t *testing.T) {
				v := relVec(t, []float64{-1.5, 2.5, 0}, st)
				m := v.Mutable()
				tt.fn(m)
				assert.Equal(t, tt.want, m.ValuesSI())
				assert.Equal(t, []float64{-1.5, 2.5, 0}, v.ValuesSI())
			})
		}
	}
}

func TestMutableAbsolute(t *testing.T) {
	start, err := NewAbsVector([]float64{0, 60}, unit.Second, Sparse)
	require.NoError(t, err)

	m := start.Mutable()
	require.NoError(t, m.IncrementBy(relVecTime(t, []float64{1, 1})))
	m.IncrementByScalar(NewRel(1.0, unit.Minute))
	assert.Equal(t, []float64{61, 121}, m.ValuesSI())

	m.DecrementBySI(1)
	require.NoError(t, m.SetInUnit(0, 2, unit.Minute))
	assert.Equal(t, []float64{120, 120}, m.ValuesSI())
	assert.Equal(t, []float64{0, 60}, start.ValuesSI())

	diff, err := m.Immutable().MinusAbs(start)
	require.NoError(t, err)
	assert.Equal(t, []float64{120, 60}, diff.ValuesSI())
}

func relVecTime(t *testing.T, values []float64) RelVector[unit.Time, float64] {
	t.Helper()
	v, err := NewRelVector(values, unit.Second, Dense)
	require.NoError(t, err)
	return v
}

func TestFloat32(t *testing.T) {
	a, err := NewRelVector([]float32{1, 0, 2}, unit.Gram, Sparse)
	require.NoError(t, err)
	b, err := NewRelVector([]float32{0.5, 0, 0}, unit.Kilogram, Dense)
	require.NoError(t, err)

	sum, err := a.Plus(b)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.501, 0, 0.002}, sum.ValuesSI(), 1e-6)
	assert.InDelta(t, float32(501), sum.ValuesInUnit(unit.Gram)[0], 1e-3)
	assert.InDelta(t, float32(0.503), sum.ZSum().SI(), 1e-6)
}

func TestConcurrentReads(t *testing.T) {
	rng := testutil.NewRNG(3)
	v := relVec(t, rng.SparseUniform(256, 0.1), Sparse)
	want := v.ZSumSI()

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			sum, err := v.Plus(v)
			if err != nil {
				return err
			}
			assert.InDelta(t, 2*want, sum.ZSumSI(), 1e-9)
			n := 0
			for range v.All() {
				n++
			}
			assert.Equal(t, 256, n)
			assert.Equal(t, v.Cardinality(), v.ToDense().Cardinality())
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
