package quantities

import (
	"errors"
	"fmt"

	"github.com/hupe1980/quantities/internal/storage"
	"github.com/hupe1980/quantities/unit"
)

var (
	// ErrConstruction is returned when a container cannot be built from the
	// given input, e.g. an empty scalar list from which no unit can be taken.
	ErrConstruction = errors.New("quantities: invalid construction input")

	// ErrSizeMismatch is returned when operand lengths or shapes disagree.
	ErrSizeMismatch = errors.New("quantities: size mismatch")

	// ErrIndexOutOfRange is returned for access beyond the logical length.
	ErrIndexOutOfRange = errors.New("quantities: index out of range")

	// ErrNormalization is returned by Normalize when the total sum is zero.
	ErrNormalization = errors.New("quantities: cannot normalize, sum is zero")

	// ErrKindMismatch is returned when decoding a snapshot into a container
	// of the other kind.
	ErrKindMismatch = errors.New("quantities: kind mismatch")
)

// SizeMismatchError indicates that two operands (or a value list and a
// declared length) disagree in size.
//
// It matches ErrSizeMismatch via errors.Is. The original underlying error
// (if any) can be accessed via errors.Unwrap.
type SizeMismatchError struct {
	Expected int
	Actual   int
	cause    error
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("size mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *SizeMismatchError) Is(target error) bool { return target == ErrSizeMismatch }

func (e *SizeMismatchError) Unwrap() error { return e.cause }

// ShapeMismatchError indicates that two matrices disagree in shape.
//
// It matches ErrSizeMismatch via errors.Is.
type ShapeMismatchError struct {
	ExpectedRows, ExpectedCols int
	Rows, Cols                 int
	cause                      error
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: expected %dx%d, got %dx%d",
		e.ExpectedRows, e.ExpectedCols, e.Rows, e.Cols)
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrSizeMismatch }

func (e *ShapeMismatchError) Unwrap() error { return e.cause }

// IndexOutOfRangeError indicates access beyond the declared logical length.
//
// It matches ErrIndexOutOfRange via errors.Is.
type IndexOutOfRangeError struct {
	Index  int
	Length int
	cause  error
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Length)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

func (e *IndexOutOfRangeError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var sm *storage.SizeMismatchError
	if errors.As(err, &sm) {
		return &SizeMismatchError{Expected: sm.Expected, Actual: sm.Actual, cause: err}
	}
	var shm *storage.ShapeMismatchError
	if errors.As(err, &shm) {
		return &ShapeMismatchError{
			ExpectedRows: shm.ExpectedRows, ExpectedCols: shm.ExpectedCols,
			Rows: shm.Rows, Cols: shm.Cols,
			cause: err,
		}
	}
	var ie *storage.IndexError
	if errors.As(err, &ie) {
		return &IndexOutOfRangeError{Index: ie.Index, Length: ie.Length, cause: err}
	}

	// Remaining storage failures are construction problems.
	if errors.Is(err, storage.ErrInvalidLength) || errors.Is(err, storage.ErrUnsorted) {
		return fmt.Errorf("%w: %w", ErrConstruction, err)
	}
	if errors.Is(err, unit.ErrQuantityMismatch) {
		return fmt.Errorf("%w: %w", ErrConstruction, err)
	}

	return err
}
