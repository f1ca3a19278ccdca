package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch is returned when operand lengths or shapes disagree.
	ErrSizeMismatch = errors.New("storage: size mismatch")

	// ErrIndexOutOfRange is returned for access beyond the logical length.
	ErrIndexOutOfRange = errors.New("storage: index out of range")

	// ErrInvalidLength is returned for negative or oversized lengths.
	ErrInvalidLength = errors.New("storage: invalid length")

	// ErrUnsorted is returned when sparse indices are not strictly ascending.
	ErrUnsorted = errors.New("storage: sparse indices not strictly ascending")
)

// SizeMismatchError reports two disagreeing vector lengths.
type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("storage: size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *SizeMismatchError) Unwrap() error { return ErrSizeMismatch }

// ShapeMismatchError reports two disagreeing matrix shapes.
type ShapeMismatchError struct {
	ExpectedRows, ExpectedCols int
	Rows, Cols                 int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("storage: shape mismatch: expected %dx%d, got %dx%d",
		e.ExpectedRows, e.ExpectedCols, e.Rows, e.Cols)
}

func (e *ShapeMismatchError) Unwrap() error { return ErrSizeMismatch }

// IndexError reports an access outside [0, Length).
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("storage: index %d out of range [0,%d)", e.Index, e.Length)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// CheckLen returns a *SizeMismatchError unless expected == actual.
func CheckLen(expected, actual int) error {
	if expected != actual {
		return &SizeMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return &IndexError{Index: i, Length: n}
	}
	return nil
}
