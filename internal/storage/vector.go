package storage

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// Float is the element type of every storage buffer.
type Float interface {
	~float32 | ~float64
}

// Type identifies the representation behind a Vector.
type Type uint8

const (
	// DenseType stores every position.
	DenseType Type = iota
	// SparseType stores nonzero positions only.
	SparseType
)

func (t Type) String() string {
	switch t {
	case DenseType:
		return "Dense"
	case SparseType:
		return "Sparse"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// ParseType parses "dense" or "sparse" (case-insensitive).
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dense":
		return DenseType, nil
	case "sparse":
		return SparseType, nil
	default:
		return 0, fmt.Errorf("storage: unknown storage type %q", s)
	}
}

// Growth selects how sparse buffers grow when a new entry is inserted.
type Growth uint32

const (
	// GrowthAmortized lets append manage capacity.
	GrowthAmortized Growth = iota
	// GrowthExact reallocates to exactly one more slot per insert.
	GrowthExact
)

func (g Growth) String() string {
	switch g {
	case GrowthAmortized:
		return "amortized"
	case GrowthExact:
		return "exact"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(g))
	}
}

// ParseGrowth parses "amortized" or "exact" (case-insensitive).
func ParseGrowth(s string) (Growth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "amortized", "":
		return GrowthAmortized, nil
	case "exact":
		return GrowthExact, nil
	default:
		return 0, fmt.Errorf("storage: unknown growth policy %q", s)
	}
}

var defaultGrowth atomic.Uint32

// SetDefaultGrowth sets the policy used by sparse vectors created from now on.
func SetDefaultGrowth(g Growth) { defaultGrowth.Store(uint32(g)) }

// DefaultGrowth returns the policy applied to new sparse vectors.
func DefaultGrowth() Growth { return Growth(defaultGrowth.Load()) }

// Vector is a fixed-length sequence of SI magnitudes.
//
// The interface is sealed: *Dense and *Sparse are the only implementations.
type Vector[F Float] interface {
	// Len returns the logical length.
	Len() int
	// Type returns the representation.
	Type() Type
	// At returns the magnitude at i.
	At(i int) (F, error)
	// Set stores v at i.
	Set(i int, v F) error
	// Cardinality counts populated cells: nonzero cells for Dense,
	// stored entries for Sparse.
	Cardinality() int
	// ZSum sums every magnitude.
	ZSum() F
	// ToDense returns the receiver if it is already dense.
	ToDense() *Dense[F]
	// ToSparse returns the receiver if it is already sparse.
	ToSparse() *Sparse[F]
	// Clone returns an independent deep copy.
	Clone() Vector[F]
	// Values returns a freshly allocated dense copy of all magnitudes.
	Values() []F
	// Assign replaces every magnitude x by fn(x).
	Assign(fn func(F) F)
	// AddScalar adds c to every magnitude.
	AddScalar(c F)
	// MulScalar multiplies every magnitude by c.
	MulScalar(c F)
	// DivScalar divides every magnitude by c.
	DivScalar(c F)

	// populated visits stored positions in ascending order.
	populated(fn func(i int, v F))
}

// Equal reports whether a and b hold the same magnitudes, regardless of
// representation.
func Equal[F Float](a, b Vector[F]) bool {
	if a.Len() != b.Len() {
		return false
	}
	av, bv := a.Values(), b.Values()
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

// New allocates a zero vector of length n in representation t.
func New[F Float](n int, t Type) (Vector[F], error) {
	switch t {
	case DenseType:
		if n < 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
		}
		return NewDense[F](n), nil
	case SparseType:
		return NewSparse[F](n)
	default:
		return nil, fmt.Errorf("storage: unknown storage type %v", t)
	}
}

// FromValues builds a vector of representation t holding a copy of values.
func FromValues[F Float](values []F, t Type) (Vector[F], error) {
	switch t {
	case DenseType:
		return DenseFrom(append([]F(nil), values...)), nil
	case SparseType:
		if err := checkLength(len(values)); err != nil {
			return nil, err
		}
		return DenseFrom(values).ToSparse(), nil
	default:
		return nil, fmt.Errorf("storage: unknown storage type %v", t)
	}
}

func checkLength(n int) error {
	if n < 0 || uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	return nil
}

func isFinite[F Float](v F) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
