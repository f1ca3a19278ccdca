package quantities_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/quantities"
	"github.com/hupe1980/quantities/codec"
	"github.com/hupe1980/quantities/unit"
)

// Example_relativeAlgebra adds lengths given in different units.
func Example_relativeAlgebra() {
	a, err := quantities.NewRelVector([]float64{1, 2, 3}, unit.Kilometer, quantities.Dense)
	if err != nil {
		log.Fatal(err)
	}
	b, err := quantities.NewRelVector([]float64{500, 0, 0}, unit.Meter, quantities.Sparse)
	if err != nil {
		log.Fatal(err)
	}

	sum, err := a.Plus(b)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(sum)
	fmt.Println(sum.Format(unit.Meter, quantities.FormatOptions{Verbose: true, WithUnit: true, Precision: 0}))
	// Output:
	// [1.500 2.000 3.000] km
	// Immutable Rel Dense [1500 2000 3000] m
}

// Example_absoluteTime subtracts instants to get durations.
func Example_absoluteTime() {
	t1, _ := quantities.NewAbsVector([]float64{10, 20}, unit.Second, quantities.Dense)
	t0, _ := quantities.NewAbsVector([]float64{5, 5}, unit.Second, quantities.Dense)

	d, err := t1.MinusAbs(t0)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(d)

	later, _ := t1.Plus(d)
	fmt.Println(later)
	// Output:
	// [5.000 15.000] s
	// [15.000 35.000] s
}

// Example_copyOnWrite edits a mutable view without touching its source.
func Example_copyOnWrite() {
	v, _ := quantities.NewRelVector([]float64{1, 2, 3}, unit.Meter, quantities.Dense)

	m := v.Mutable()
	fmt.Println(m.IsShared())

	_ = m.SetSI(0, 9)
	fmt.Println(m.IsShared())
	fmt.Println(v)
	fmt.Println(m)
	// Output:
	// true
	// false
	// [1.000 2.000 3.000] m
	// [9.000 2.000 3.000] m
}

// Example_sparsity shows the representation chosen by binary operations.
func Example_sparsity() {
	a, _ := quantities.NewRelVector([]float64{2, 0, 0}, unit.Meter, quantities.Sparse)
	b, _ := quantities.NewRelVector([]float64{0, 0, 5}, unit.Meter, quantities.Sparse)
	c, _ := quantities.NewRelVector([]float64{1, 1, 1}, unit.Meter, quantities.Dense)

	p, _ := a.Times(b)
	fmt.Println(p.StorageType(), p.Cardinality())

	s, _ := a.Plus(c)
	fmt.Println(s.StorageType(), s.Cardinality())
	// Output:
	// Sparse 0
	// Dense 3
}

// Example_normalize scales a mutable vector to unit sum.
func Example_normalize() {
	m, _ := quantities.NewMutableRelVector([]float64{1, 3}, unit.One, quantities.Dense)
	if err := m.Normalize(); err != nil {
		log.Fatal(err)
	}
	fmt.Println(m.Format(unit.Percent, quantities.FormatOptions{WithUnit: true, Precision: 0}))
	// Output: [25 75] %
}

// Example_snapshot round-trips a vector through a codec.
func Example_snapshot() {
	v, _ := quantities.NewRelVector([]float64{0, 1.5}, unit.Kilogram, quantities.Sparse)

	data, err := quantities.EncodeVector(codec.JSON{}, v)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(data))

	back, err := quantities.DecodeRelVector[unit.Mass, float64](codec.JSON{}, data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(back.Equal(v))
	// Output:
	// {"kind":"Rel","unit":{"quantity":"Mass","name":"kilogram","abbreviation":"kg","scale":1},"storage":"Sparse","length":2,"indices":[1],"values":[1.5]}
	// true
}
