// Package storage holds SI magnitudes for quantity containers.
//
// Two representations share the Vector interface:
//
//	Dense:  one slot per logical position, explicit zeros included
//	Sparse: sorted uint32 indices + parallel values + declared length
//
// Matrix is a shape (rows × cols) over a row-major Vector.
//
// # Binary Operations
//
// Apply and ApplyInPlace combine two operands of equal logical length:
//
//   - Add, Sub: computed over the union of populated positions. The result is
//     Sparse only when both operands are Sparse. Cancelled entries (2 + -2)
//     stay stored as explicit zeros.
//   - Mul, Div: computed over the intersection of nonzero positions. Every
//     other position is zero. The result is Sparse only when both operands are
//     Sparse, and then stores exactly the intersection.
//
// Length checks run before any write, so a failing call leaves its operands
// untouched.
//
// # Ownership
//
// Nothing in this package synchronises. Storage is owned by exactly one
// writer; sharing is handled one level up by copy-on-write handles.
package storage
