package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Uniform returns n magnitudes in [0, 1). Zero is practically never drawn.
func (r *RNG) Uniform(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, n)
	for i := range out {
		out[i] = r.rand.Float64()
	}
	return out
}

// UniformRange returns n magnitudes in [minVal, maxVal).
func (r *RNG) UniformRange(n int, minVal, maxVal float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	span := maxVal - minVal
	out := make([]float64, n)
	for i := range out {
		out[i] = minVal + r.rand.Float64()*span
	}
	return out
}

// SparseUniform returns n magnitudes where each cell is nonzero with
// probability density. Nonzero cells are drawn from [1, 2) so they can never
// collide with zero.
func (r *RNG) SparseUniform(n int, density float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float64, n)
	for i := range out {
		if r.rand.Float64() < density {
			out[i] = 1 + r.rand.Float64()
		}
	}
	return out
}

// SparseSigned is SparseUniform with random signs, which makes additive
// cancellation possible.
func (r *RNG) SparseSigned(n int, density float64) []float64 {
	out := r.SparseUniform(n, density)
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, v := range out {
		if v != 0 && r.rand.Intn(2) == 0 {
			out[i] = -v
		}
	}
	return out
}

// SparseGrid returns a rows × cols grid built from SparseUniform.
func (r *RNG) SparseGrid(rows, cols int, density float64) [][]float64 {
	flat := r.SparseUniform(rows*cols, density)
	out := make([][]float64, rows)
	for i := range out {
		out[i] = flat[i*cols : (i+1)*cols]
	}
	return out
}

// ToFloat32 narrows values to float32.
func ToFloat32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}

// CountNonzero counts cells different from zero (NaN counts as nonzero).
func CountNonzero(values []float64) int {
	n := 0
	for _, v := range values {
		if v != 0 {
			n++
		}
	}
	return n
}

// Elementwise applies fn pairwise. a and b must have the same length.
func Elementwise(a, b []float64, fn func(x, y float64) float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = fn(a[i], b[i])
	}
	return out
}

// InDeltaSlice reports whether every pair differs by at most delta.
func InDeltaSlice(a, b []float64, delta float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > delta {
			return false
		}
	}
	return true
}
