package unit

import (
	"fmt"
	"math"
)

// Unit is a unit of quantity Q. The zero value is the SI unit of Q.
type Unit[Q Quantity] struct {
	name   string
	abbrev string
	scale  float64
	offset float64
}

// New returns a unit whose value v corresponds to v*scale in SI.
func New[Q Quantity](name, abbrev string, scale float64) Unit[Q] {
	return Unit[Q]{name: name, abbrev: abbrev, scale: scale}
}

// NewWithOffset returns a unit whose absolute value v corresponds to
// v*scale + offset in SI.
func NewWithOffset[Q Quantity](name, abbrev string, scale, offset float64) Unit[Q] {
	return Unit[Q]{name: name, abbrev: abbrev, scale: scale, offset: offset}
}

// SI returns the SI unit of Q.
func SI[Q Quantity]() Unit[Q] {
	return Unit[Q]{}
}

// Name returns the full unit name.
func (u Unit[Q]) Name() string {
	if u.name == "" && u.IsSI() {
		return "SI " + NameOf[Q]()
	}
	return u.name
}

// Abbreviation returns the display abbreviation.
func (u Unit[Q]) Abbreviation() string {
	if u.abbrev == "" && u.name == "" {
		var q Q
		return q.SIAbbreviation()
	}
	return u.abbrev
}

// Scale returns the factor to SI.
func (u Unit[Q]) Scale() float64 {
	if u.scale == 0 {
		return 1
	}
	return u.scale
}

// Offset returns the SI offset applied to absolute values.
func (u Unit[Q]) Offset() float64 { return u.offset }

// IsSI reports whether values in u are already SI.
func (u Unit[Q]) IsSI() bool { return u.Scale() == 1 && u.offset == 0 }

// ToSI converts an absolute value in u to SI.
func (u Unit[Q]) ToSI(v float64) float64 { return v*u.Scale() + u.offset }

// FromSI converts an absolute SI value to u.
func (u Unit[Q]) FromSI(si float64) float64 { return (si - u.offset) / u.Scale() }

// ToSIRelative converts a difference in u to SI.
func (u Unit[Q]) ToSIRelative(v float64) float64 { return v * u.Scale() }

// FromSIRelative converts an SI difference to u.
func (u Unit[Q]) FromSIRelative(si float64) float64 { return si / u.Scale() }

// Descriptor returns the untyped description of u.
func (u Unit[Q]) Descriptor() Descriptor {
	return Descriptor{
		Quantity:     NameOf[Q](),
		Name:         u.Name(),
		Abbreviation: u.Abbreviation(),
		Scale:        u.Scale(),
		Offset:       u.offset,
	}
}

func (u Unit[Q]) String() string { return u.Abbreviation() }

// Descriptor is a unit with its quantity erased.
type Descriptor struct {
	Quantity     string  `json:"quantity"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	Scale        float64 `json:"scale"`
	Offset       float64 `json:"offset,omitempty"`
}

// FromDescriptor restores a typed unit. It fails when d belongs to another
// quantity or carries an unusable scale.
func FromDescriptor[Q Quantity](d Descriptor) (Unit[Q], error) {
	if want := NameOf[Q](); d.Quantity != want {
		return Unit[Q]{}, fmt.Errorf("%w: unit %q is a %s, not a %s", ErrQuantityMismatch, d.Abbreviation, d.Quantity, want)
	}
	if d.Scale == 0 || math.IsNaN(d.Scale) || math.IsInf(d.Scale, 0) {
		return Unit[Q]{}, fmt.Errorf("unit: invalid scale %v for %q", d.Scale, d.Abbreviation)
	}
	return Unit[Q]{name: d.Name, abbrev: d.Abbreviation, scale: d.Scale, offset: d.Offset}, nil
}
