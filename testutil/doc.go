// Package testutil provides testing utilities for quantities.
//
// This package is intended for use in tests and benchmarks only.
// It generates reproducible magnitude slices with a controlled share of zero
// cells, which is what exercises the dense/sparse duality.
//
// # Random Magnitudes
//
//	rng := testutil.NewRNG(seed)
//	dense := rng.Uniform(128)             // every cell in [0, 1)
//	sparse := rng.SparseUniform(128, 0.1) // ~10% nonzero cells
//	grid := rng.SparseGrid(8, 16, 0.25)
//
// # Reference Results
//
//	want := testutil.Elementwise(a, b, func(x, y float64) float64 { return x + y })
package testutil
