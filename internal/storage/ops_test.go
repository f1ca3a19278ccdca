package storage

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/quantities/testutil"
)

func vec(t *testing.T, values []float64, ty Type) Vector[float64] {
	t.Helper()
	v, err := FromValues(values, ty)
	require.NoError(t, err)
	return v
}

func TestApplyRepresentation(t *testing.T) {
	tests := []struct {
		name   string
		op     Op
		a, b   Type
		result Type
	}{
		{"add dense dense", Add, DenseType, DenseType, DenseType},
		{"add dense sparse", Add, DenseType, SparseType, DenseType},
		{"add sparse dense", Add, SparseType, DenseType, DenseType},
		{"add sparse sparse", Add, SparseType, SparseType, SparseType},
		{"sub sparse dense", Sub, SparseType, DenseType, DenseType},
		{"sub sparse sparse", Sub, SparseType, SparseType, SparseType},
		{"mul dense sparse", Mul, DenseType, SparseType, DenseType},
		{"mul sparse sparse", Mul, SparseType, SparseType, SparseType},
		{"div sparse dense", Div, SparseType, DenseType, DenseType},
		{"div sparse sparse", Div, SparseType, SparseType, SparseType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := vec(t, []float64{1, 0, 3}, tt.a)
			b := vec(t, []float64{2, 0, 3}, tt.b)
			got, err := Apply(tt.op, a, b)
			require.NoError(t, err)
			assert.Equal(t, tt.result, got.Type())
		})
	}
}

func TestApplyMixedAdditive(t *testing.T) {
	a := vec(t, []float64{1, 0, 3}, DenseType)
	b := vec(t, []float64{0, 0, 3}, SparseType)

	got, err := Apply(Add, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 6}, got.Values())
	assert.Equal(t, DenseType, got.Type())

	assert.Equal(t, []float64{1, 0, 3}, a.Values(), "operand untouched")
	assert.Equal(t, []float64{0, 0, 3}, b.Values(), "operand untouched")
}

func TestApplySparseIntersection(t *testing.T) {
	a := vec(t, []float64{2, 0, 0}, SparseType)
	b := vec(t, []float64{0, 0, 5}, SparseType)

	got, err := Apply(Mul, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, got.Values())
	assert.Equal(t, SparseType, got.Type())
	assert.Equal(t, 0, got.Cardinality())
}

func TestApplyCancellationKeepsZeros(t *testing.T) {
	a := vec(t, []float64{2, 0, 1}, SparseType)
	b := vec(t, []float64{-2, 0, 0}, SparseType)

	got, err := Apply(Add, a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, got.Values())
	assert.Equal(t, 2, got.Cardinality(), "cancelled entry stays stored")
	assert.Equal(t, []uint32{0, 2}, got.(*Sparse[float64]).Indices())
}

func TestApplyDivision(t *testing.T) {
	t.Run("sparse sparse divides only at intersection", func(t *testing.T) {
		a := vec(t, []float64{6, 4, 0}, SparseType)
		b := vec(t, []float64{3, 0, 2}, SparseType)
		got, err := Apply(Div, a, b)
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 0, 0}, got.Values())
		assert.Equal(t, 1, got.Cardinality())
	})

	t.Run("dense by sparse zeroes the gaps", func(t *testing.T) {
		a := vec(t, []float64{6, 4, 8, 1}, DenseType)
		b := vec(t, []float64{0, 2, 0, 0}, SparseType)
		got, err := Apply(Div, a, b)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 2, 0, 0}, got.Values())
	})

	t.Run("sparse by dense divides only at stored positions", func(t *testing.T) {
		a := vec(t, []float64{0, 4, 0}, SparseType)
		b := vec(t, []float64{0, 2, 5}, DenseType)
		got, err := Apply(Div, a, b)
		require.NoError(t, err)
		assert.Equal(t, DenseType, got.Type())
		assert.Equal(t, []float64{0, 2, 0}, got.Values())
		assert.Equal(t, []float64{0, 4, 0}, a.Values(), "operand untouched")

		rev, err := Apply(Div, b, a)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0.5, 0}, rev.Values())
	})

	t.Run("sparse by dense ignores non-finite gaps", func(t *testing.T) {
		a, err := SparseFrom(3, []uint32{0, 1}, []float64{0, 3})
		require.NoError(t, err)
		b := vec(t, []float64{math.Inf(1), 2, math.Inf(1)}, DenseType)

		got, err := ApplyInPlace(Mul, a, b)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 6, 0}, got.Values())
	})

	t.Run("sparse explicit zero is skipped", func(t *testing.T) {
		a := vec(t, []float64{6, 4}, DenseType)
		b, err := SparseFrom(2, []uint32{0, 1}, []float64{0, 2})
		require.NoError(t, err)
		got, err := Apply(Div, a, b)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 2}, got.Values())
	})
}

func TestApplySizeMismatch(t *testing.T) {
	for _, ta := range []Type{DenseType, SparseType} {
		for _, tb := range []Type{DenseType, SparseType} {
			a := vec(t, []float64{1, 2, 3}, ta)
			b := vec(t, []float64{1, 2}, tb)

			_, err := Apply(Add, a, b)
			assert.ErrorIs(t, err, ErrSizeMismatch)

			_, err = ApplyInPlace(Mul, a, b)
			var sm *SizeMismatchError
			require.ErrorAs(t, err, &sm)
			assert.Equal(t, 3, sm.Expected)
			assert.Equal(t, 2, sm.Actual)

			assert.Equal(t, []float64{1, 2, 3}, a.Values())
			assert.Equal(t, []float64{1, 2}, b.Values())
		}
	}
}

func TestApplyInPlace(t *testing.T) {
	t.Run("dense receiver is reused", func(t *testing.T) {
		a := vec(t, []float64{1, 2}, DenseType)
		got, err := ApplyInPlace(Sub, a, vec(t, []float64{1, 1}, SparseType))
		require.NoError(t, err)
		assert.Same(t, a, got)
		assert.Equal(t, []float64{0, 1}, a.Values())
	})

	t.Run("sparse receiver with dense source densifies", func(t *testing.T) {
		a := vec(t, []float64{1, 0}, SparseType)
		got, err := ApplyInPlace(Add, a, vec(t, []float64{1, 1}, DenseType))
		require.NoError(t, err)
		assert.Equal(t, DenseType, got.Type())
		assert.Equal(t, []float64{2, 1}, got.Values())
		assert.Equal(t, []float64{1, 0}, a.Values(), "old receiver untouched")
	})

	t.Run("self aliasing", func(t *testing.T) {
		for _, ty := range []Type{DenseType, SparseType} {
			a := vec(t, []float64{1, 0, 3}, ty)
			got, err := ApplyInPlace(Add, a, a)
			require.NoError(t, err)
			assert.Equal(t, []float64{2, 0, 6}, got.Values())

			got, err = ApplyInPlace(Mul, got, got)
			require.NoError(t, err)
			assert.Equal(t, []float64{4, 0, 36}, got.Values())
		}
	})

	t.Run("float32", func(t *testing.T) {
		a, _ := FromValues([]float32{1, 0, 3}, SparseType)
		b, _ := FromValues([]float32{0.5, 0, 0.5}, DenseType)
		got, err := ApplyInPlace(Mul, a, b)
		require.NoError(t, err)
		assert.Equal(t, []float32{0.5, 0, 1.5}, got.Values())
	})
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "add", Add.String())
	assert.Equal(t, "div", Div.String())
	assert.Equal(t, "Unknown(7)", Op(7).String())
}

// sparsify zeroes roughly half of the fuzzed cells so both representations
// see gaps.
func sparsify(values []float64) []float64 {
	for i, v := range values {
		if v < 0.5 {
			values[i] = 0
		}
	}
	return values
}

func TestApplyProperties(t *testing.T) {
	f := fuzz.NewWithSeed(1234).NilChance(0).NumElements(1, 48)
	types := []Type{DenseType, SparseType}
	ops := map[Op]func(x, y float64) float64{
		Add: func(x, y float64) float64 { return x + y },
		Sub: func(x, y float64) float64 { return x - y },
		Mul: func(x, y float64) float64 { return x * y },
	}

	for round := 0; round < 200; round++ {
		var raw []float64
		f.Fuzz(&raw)
		a := sparsify(raw)
		b := make([]float64, len(a))
		for i := range b {
			f.Fuzz(&b[i])
		}
		b = sparsify(b)

		for op, fn := range ops {
			want := testutil.Elementwise(a, b, fn)
			for _, ta := range types {
				for _, tb := range types {
					got, err := Apply(op, vec(t, a, ta), vec(t, b, tb))
					require.NoError(t, err)
					require.Equal(t, want, got.Values(), "op=%v a=%v b=%v", op, ta, tb)
				}
			}
		}

		// Round trips.
		d := vec(t, a, DenseType)
		require.Equal(t, a, d.ToSparse().ToDense().Values())
		require.Equal(t, testutil.CountNonzero(a), d.ToSparse().Cardinality())
	}
}
