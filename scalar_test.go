package quantities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/quantities/unit"
)

func TestRelScalar(t *testing.T) {
	a := NewRel(1.5, unit.Kilometer)
	b := NewRel(500.0, unit.Meter)

	assert.Equal(t, 1500.0, a.SI())
	assert.Equal(t, 2000.0, a.Plus(b).SI())
	assert.Equal(t, unit.Kilometer, a.Plus(b).Unit())
	assert.Equal(t, 1000.0, a.Minus(b).SI())
	assert.Equal(t, 750000.0, a.Times(b).SI())
	assert.Equal(t, 3.0, a.Divide(b).SI())
	assert.Equal(t, -1500.0, a.Neg().SI())
	assert.Equal(t, 0.5, b.InUnit(unit.Kilometer))
	assert.Equal(t, "500.000 m", b.String())
	assert.Equal(t, "0.500 km", b.WithUnit(unit.Kilometer).String())
}

func TestAbsScalar(t *testing.T) {
	noon := NewAbs(12.0, unit.Hour)
	hour := NewRel(1.0, unit.Hour)

	assert.Equal(t, 43200.0, noon.SI())
	assert.Equal(t, 13.0, noon.Plus(hour).InUnit(unit.Hour))
	assert.Equal(t, 11.0, noon.Minus(hour).InUnit(unit.Hour))

	d := noon.MinusAbs(NewAbs(30.0, unit.Minute))
	assert.Equal(t, 41400.0, d.SI())
	assert.Equal(t, unit.Hour, d.Unit())

	freezing := NewAbs(32.0, unit.Fahrenheit)
	assert.InDelta(t, 273.15, freezing.SI(), 1e-9)
	assert.InDelta(t, 0.0, freezing.InUnit(unit.Celsius), 1e-9)
	assert.Equal(t, "273.150 K", AbsSI(273.15, unit.Kelvin).String())
}

func TestScalarDimensionless(t *testing.T) {
	p := NewRel(float32(50), unit.Percent)
	assert.Equal(t, float32(0.5), p.SI())
	assert.Equal(t, "0.500 1", p.WithUnit(unit.One).String())
	assert.Equal(t, "0.500", RelSI(float32(0.5), unit.SI[unit.Dimensionless]()).String())
}
