// Package unit describes units of measurement for quantity containers.
//
// A Quantity is a zero-sized marker type (Length, Mass, Time, ...). Units are
// typed by their quantity, so a meter can only describe a Length:
//
//	unit.Kilometer  // Unit[Length]
//	unit.Celsius    // Unit[Temperature], offset 273.15
//
// Conversion to SI is affine: si = v*scale + offset. Relative values
// (differences) ignore the offset, absolute values (points on a scale) apply
// it.
//
// Registry maps quantity and unit names to untyped Descriptors for the
// command line and decoding, where the quantity is only known at run time.
package unit
