package quantities

import (
	"strconv"

	"github.com/hupe1980/quantities/unit"
)

// Rel is a relative scalar: a magnitude or a difference such as a
// duration. The value is held in SI; the unit is used for display only.
type Rel[Q unit.Quantity, F Float] struct {
	si   F
	unit unit.Unit[Q]
}

// NewRel returns the relative scalar v expressed in u.
func NewRel[Q unit.Quantity, F Float](v F, u unit.Unit[Q]) Rel[Q, F] {
	return Rel[Q, F]{si: F(u.ToSIRelative(float64(v))), unit: u}
}

// RelSI returns the relative scalar with SI magnitude si, displayed in u.
func RelSI[Q unit.Quantity, F Float](si F, u unit.Unit[Q]) Rel[Q, F] {
	return Rel[Q, F]{si: si, unit: u}
}

// SI returns the magnitude in the SI unit.
func (r Rel[Q, F]) SI() F { return r.si }

// Unit returns the display unit.
func (r Rel[Q, F]) Unit() unit.Unit[Q] { return r.unit }

// InUnit returns the magnitude expressed in u.
func (r Rel[Q, F]) InUnit(u unit.Unit[Q]) F { return F(u.FromSIRelative(float64(r.si))) }

// WithUnit returns the same magnitude displayed in u.
func (r Rel[Q, F]) WithUnit(u unit.Unit[Q]) Rel[Q, F] { return Rel[Q, F]{si: r.si, unit: u} }

// Plus returns r + o in the display unit of r.
func (r Rel[Q, F]) Plus(o Rel[Q, F]) Rel[Q, F] { return Rel[Q, F]{si: r.si + o.si, unit: r.unit} }

// Minus returns r - o.
func (r Rel[Q, F]) Minus(o Rel[Q, F]) Rel[Q, F] { return Rel[Q, F]{si: r.si - o.si, unit: r.unit} }

// Times returns r * o. The SI magnitudes are multiplied; the unit of r is
// kept.
func (r Rel[Q, F]) Times(o Rel[Q, F]) Rel[Q, F] { return Rel[Q, F]{si: r.si * o.si, unit: r.unit} }

// Divide returns r / o.
func (r Rel[Q, F]) Divide(o Rel[Q, F]) Rel[Q, F] { return Rel[Q, F]{si: r.si / o.si, unit: r.unit} }

// Neg returns -r.
func (r Rel[Q, F]) Neg() Rel[Q, F] { return Rel[Q, F]{si: -r.si, unit: r.unit} }

// String renders the magnitude in its display unit, e.g. "1.500 km".
func (r Rel[Q, F]) String() string {
	return formatScalar(float64(r.InUnit(r.unit)), r.unit.Abbreviation(), DisplayPrecision())
}

// Abs is an absolute scalar: a point on a scale such as an instant or a
// temperature reading.
type Abs[Q unit.Quantity, F Float] struct {
	si   F
	unit unit.Unit[Q]
}

// NewAbs returns the absolute scalar v expressed in u, honoring the unit's
// offset (e.g. degrees Celsius).
func NewAbs[Q unit.Quantity, F Float](v F, u unit.Unit[Q]) Abs[Q, F] {
	return Abs[Q, F]{si: F(u.ToSI(float64(v))), unit: u}
}

// AbsSI returns the absolute scalar with SI value si, displayed in u.
func AbsSI[Q unit.Quantity, F Float](si F, u unit.Unit[Q]) Abs[Q, F] {
	return Abs[Q, F]{si: si, unit: u}
}

// SI returns the value in the SI unit.
func (a Abs[Q, F]) SI() F { return a.si }

// Unit returns the display unit.
func (a Abs[Q, F]) Unit() unit.Unit[Q] { return a.unit }

// InUnit returns the value expressed in u.
func (a Abs[Q, F]) InUnit(u unit.Unit[Q]) F { return F(u.FromSI(float64(a.si))) }

// WithUnit returns the same point displayed in u.
func (a Abs[Q, F]) WithUnit(u unit.Unit[Q]) Abs[Q, F] { return Abs[Q, F]{si: a.si, unit: u} }

// Plus returns a shifted forward by d.
func (a Abs[Q, F]) Plus(d Rel[Q, F]) Abs[Q, F] { return Abs[Q, F]{si: a.si + d.si, unit: a.unit} }

// Minus returns a shifted backward by d.
func (a Abs[Q, F]) Minus(d Rel[Q, F]) Abs[Q, F] { return Abs[Q, F]{si: a.si - d.si, unit: a.unit} }

// MinusAbs returns the difference a - o as a relative scalar.
func (a Abs[Q, F]) MinusAbs(o Abs[Q, F]) Rel[Q, F] { return Rel[Q, F]{si: a.si - o.si, unit: a.unit} }

// String renders the value in its display unit, e.g. "21.500 °C".
func (a Abs[Q, F]) String() string {
	return formatScalar(float64(a.InUnit(a.unit)), a.unit.Abbreviation(), DisplayPrecision())
}

func formatScalar(v float64, abbrev string, precision int) string {
	s := strconv.FormatFloat(v, 'f', precisionArg(precision), 64)
	if abbrev == "" {
		return s
	}
	return s + " " + abbrev
}

func precisionArg(p int) int {
	if p < 0 {
		return -1
	}
	return p
}
