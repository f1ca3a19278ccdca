package quantities

import (
	"fmt"

	"github.com/hupe1980/quantities/internal/storage"
)

// Float is the element type of every container: float32 or float64.
type Float = storage.Float

// StorageType selects the representation of a container's magnitudes.
type StorageType = storage.Type

const (
	// Dense stores one slot per position, including explicit zeros.
	Dense StorageType = storage.DenseType
	// Sparse stores sorted indices and values of populated positions only.
	Sparse StorageType = storage.SparseType
)

// ParseStorageType parses "dense" or "sparse" (case-insensitive).
func ParseStorageType(s string) (StorageType, error) {
	return storage.ParseType(s)
}

// SparseGrowth selects how sparse buffers grow on insertion of a new
// nonzero position.
type SparseGrowth = storage.Growth

const (
	// GrowthAmortized lets the buffers grow geometrically. This is the
	// default.
	GrowthAmortized SparseGrowth = storage.GrowthAmortized
	// GrowthExact reallocates the buffers to exactly one more slot per
	// insertion, keeping memory tight for rarely edited vectors.
	GrowthExact SparseGrowth = storage.GrowthExact
)

// ParseSparseGrowth parses "amortized" or "exact" (case-insensitive).
func ParseSparseGrowth(s string) (SparseGrowth, error) {
	return storage.ParseGrowth(s)
}

// Kind tells apart points on a scale from differences between them.
type Kind uint8

const (
	// Relative quantities are magnitudes or differences, e.g. a duration.
	Relative Kind = iota
	// Absolute quantities are points on a scale, e.g. an instant.
	Absolute
)

func (k Kind) String() string {
	switch k {
	case Relative:
		return "Rel"
	case Absolute:
		return "Abs"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses "rel"/"relative" or "abs"/"absolute".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Rel", "rel", "relative", "Relative":
		return Relative, nil
	case "Abs", "abs", "absolute", "Absolute":
		return Absolute, nil
	default:
		return 0, fmt.Errorf("quantities: unknown kind %q", s)
	}
}
