package main

import (
	"fmt"
	"strings"

	"github.com/hupe1980/quantities"
	"github.com/hupe1980/quantities/codec"
	"github.com/hupe1980/quantities/unit"
)

// calculator runs the commands for one quantity. The quantity is only known
// at run time, so each supported marker gets its own typed instance.
type calculator interface {
	arith(op string, a, b []float64) (string, error)
	diff(a, b []float64) (string, error)
	normalize(a []float64) (string, error)
	convert(a []float64, absolute bool) (string, error)
	encode(a []float64, absolute bool, c codec.Codec) ([]byte, error)
}

var calculators = []struct {
	name string
	new  func(*settings) (calculator, error)
}{
	{unit.NameOf[unit.Length](), newTyped[unit.Length]},
	{unit.NameOf[unit.Mass](), newTyped[unit.Mass]},
	{unit.NameOf[unit.Time](), newTyped[unit.Time]},
	{unit.NameOf[unit.Temperature](), newTyped[unit.Temperature]},
	{unit.NameOf[unit.Angle](), newTyped[unit.Angle]},
	{unit.NameOf[unit.Speed](), newTyped[unit.Speed]},
	{unit.NameOf[unit.Dimensionless](), newTyped[unit.Dimensionless]},
}

func newCalculator(s *settings) (calculator, error) {
	for _, c := range calculators {
		if strings.EqualFold(c.name, s.Quantity) {
			return c.new(s)
		}
	}
	return nil, fmt.Errorf("%w: %q", unit.ErrUnknownQuantity, s.Quantity)
}

type typed[Q unit.Quantity] struct {
	unit    unit.Unit[Q]
	display unit.Unit[Q]
	storage quantities.StorageType
	format  quantities.FormatOptions
}

func newTyped[Q unit.Quantity](s *settings) (calculator, error) {
	t := &typed[Q]{
		storage: quantities.DefaultStorage(),
		format: quantities.FormatOptions{
			Verbose:   s.Verbose,
			WithUnit:  true,
			Precision: s.Precision,
		},
	}

	var err error
	if t.unit, err = resolveUnit[Q](s.Unit); err != nil {
		return nil, err
	}
	t.display = t.unit
	if s.DisplayUnit != "" {
		if t.display, err = unit.Resolve[Q](unit.Default, s.DisplayUnit); err != nil {
			return nil, err
		}
	}
	if s.Storage != "" {
		if t.storage, err = quantities.ParseStorageType(s.Storage); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// resolveUnit looks abbrev up in the default registry. An empty abbrev
// selects the registered SI unit of Q.
func resolveUnit[Q unit.Quantity](abbrev string) (unit.Unit[Q], error) {
	if abbrev != "" {
		return unit.Resolve[Q](unit.Default, abbrev)
	}
	d, err := unit.Default.SI(unit.NameOf[Q]())
	if err != nil {
		return unit.Unit[Q]{}, err
	}
	return unit.FromDescriptor[Q](d)
}

func (t *typed[Q]) rel(values []float64) (quantities.RelVector[Q, float64], error) {
	return quantities.NewRelVector(values, t.unit, t.storage)
}

func (t *typed[Q]) abs(values []float64) (quantities.AbsVector[Q, float64], error) {
	return quantities.NewAbsVector(values, t.unit, t.storage)
}

func (t *typed[Q]) arith(op string, a, b []float64) (string, error) {
	x, err := t.rel(a)
	if err != nil {
		return "", err
	}
	y, err := t.rel(b)
	if err != nil {
		return "", err
	}

	var out quantities.RelVector[Q, float64]
	switch op {
	case "plus":
		out, err = x.Plus(y)
	case "minus":
		out, err = x.Minus(y)
	case "times":
		out, err = x.Times(y)
	case "divide":
		out, err = x.Divide(y)
	default:
		return "", fmt.Errorf("unknown operation %q", op)
	}
	if err != nil {
		return "", err
	}
	return out.Format(t.display, t.format), nil
}

func (t *typed[Q]) diff(a, b []float64) (string, error) {
	x, err := t.abs(a)
	if err != nil {
		return "", err
	}
	y, err := t.abs(b)
	if err != nil {
		return "", err
	}
	out, err := x.MinusAbs(y)
	if err != nil {
		return "", err
	}
	return out.Format(t.display, t.format), nil
}

func (t *typed[Q]) normalize(a []float64) (string, error) {
	m, err := quantities.NewMutableRelVector(a, t.unit, t.storage)
	if err != nil {
		return "", err
	}
	if err := m.Normalize(); err != nil {
		return "", err
	}
	return m.Immutable().Format(t.display, t.format), nil
}

func (t *typed[Q]) convert(a []float64, absolute bool) (string, error) {
	if absolute {
		v, err := t.abs(a)
		if err != nil {
			return "", err
		}
		return v.Format(t.display, t.format), nil
	}
	v, err := t.rel(a)
	if err != nil {
		return "", err
	}
	return v.Format(t.display, t.format), nil
}

func (t *typed[Q]) encode(a []float64, absolute bool, c codec.Codec) ([]byte, error) {
	var v quantities.VectorSnapshotter
	var err error
	if absolute {
		v, err = t.abs(a)
	} else {
		v, err = t.rel(a)
	}
	if err != nil {
		return nil, err
	}
	return quantities.EncodeVector(c, v)
}
