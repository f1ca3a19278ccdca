// Package quantities provides dimension-safe numeric containers for physical
// quantities: scalars, vectors and matrices in single or double precision.
//
// Every container stores SI magnitudes. The display unit only affects input
// conversion and rendering, so operands declared in different units of the
// same quantity combine without further conversion.
//
// # Quick Start
//
//	lengths, _ := quantities.NewRelVector([]float64{1, 2, 3}, unit.Kilometer, quantities.Dense)
//	more, _ := quantities.NewRelVector([]float64{500, 0, 0}, unit.Meter, quantities.Sparse)
//	sum, _ := lengths.Plus(more)
//	fmt.Println(sum) // [1.500 2.000 3.000] km
//
// # Relative and Absolute
//
// Relative containers hold magnitudes or differences (a duration) and are
// closed under Plus, Minus, Times and Divide. Absolute containers hold
// points on a scale (an instant, a temperature reading):
//
//	AbsVector.Plus(RelVector)     -> AbsVector
//	AbsVector.Minus(RelVector)    -> AbsVector
//	AbsVector.MinusAbs(AbsVector) -> RelVector
//
// Adding two absolute containers, or scaling one, does not compile.
//
// # Dense and Sparse
//
// The storage choice is explicit at construction. Binary operations pick
// the result representation:
//
//   - Plus/Minus run over the union of populated positions and are sparse
//     only when both operands are sparse. Cancelled positions stay stored.
//   - Times/Divide run over the intersection; sparse results store exactly
//     the positions where both operands are nonzero.
//
// # Copy-on-write
//
// Mutable() returns an editable container sharing storage with its source.
// The first write copies the storage, so the source never observes it:
//
//	v, _ := quantities.NewRelVector([]float64{1, 2, 3}, unit.Meter, quantities.Dense)
//	m := v.Mutable()
//	_ = m.SetSI(0, 9)
//	// v is still [1 2 3], m is [9 2 3]
//
// Immutable containers are safe for concurrent reads. Mutable containers
// require a single writer at a time.
//
// # Observability
//
// Engine events (copy-on-write duplications, representation changes and
// arithmetic operations) are reported to the configured Logger and
// MetricsCollector:
//
//	quantities.Configure(
//	    quantities.WithLogger(quantities.NewJSONLogger(slog.LevelDebug)),
//	    quantities.WithMetricsCollector(&quantities.BasicMetricsCollector{}),
//	)
//
// LoadConfigFromEnv reads the same settings from QUANTITIES_* variables.
package quantities
