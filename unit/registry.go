package unit

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
)

var (
	// ErrUnknownQuantity is returned for an unregistered quantity name.
	ErrUnknownQuantity = errors.New("unit: unknown quantity")

	// ErrUnknownUnit is returned for an unregistered unit abbreviation.
	ErrUnknownUnit = errors.New("unit: unknown unit")

	// ErrQuantityMismatch is returned when a unit belongs to another quantity.
	ErrQuantityMismatch = errors.New("unit: quantity mismatch")

	// ErrDuplicateUnit is returned when an abbreviation is registered twice.
	ErrDuplicateUnit = errors.New("unit: duplicate unit")
)

// Registry indexes descriptors by quantity name and abbreviation.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	units map[string]map[string]Descriptor
	si    map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		units: make(map[string]map[string]Descriptor),
		si:    make(map[string]string),
	}
}

// Register adds d. The first unit registered for a quantity with scale 1 and
// no offset becomes its SI unit.
func (r *Registry) Register(d Descriptor) error {
	if d.Quantity == "" {
		return fmt.Errorf("%w: empty quantity name", ErrUnknownQuantity)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	byAbbrev, ok := r.units[d.Quantity]
	if !ok {
		byAbbrev = make(map[string]Descriptor)
		r.units[d.Quantity] = byAbbrev
	}
	if _, dup := byAbbrev[d.Abbreviation]; dup {
		return fmt.Errorf("%w: %s %q", ErrDuplicateUnit, d.Quantity, d.Abbreviation)
	}
	byAbbrev[d.Abbreviation] = d
	if _, ok := r.si[d.Quantity]; !ok && d.Scale == 1 && d.Offset == 0 {
		r.si[d.Quantity] = d.Abbreviation
	}
	return nil
}

// Lookup returns the descriptor for quantity and abbreviation.
func (r *Registry) Lookup(quantity, abbrev string) (Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byAbbrev, ok := r.units[quantity]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownQuantity, quantity)
	}
	d, ok := byAbbrev[abbrev]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s %q", ErrUnknownUnit, quantity, abbrev)
	}
	return d, nil
}

// SI returns the SI descriptor registered for quantity.
func (r *Registry) SI(quantity string) (Descriptor, error) {
	r.mu.RLock()
	abbrev, ok := r.si[quantity]
	r.mu.RUnlock()
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q has no SI unit", ErrUnknownQuantity, quantity)
	}
	return r.Lookup(quantity, abbrev)
}

// Quantities returns the registered quantity names in sorted order.
func (r *Registry) Quantities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Units returns the descriptors of quantity ordered by scale.
func (r *Registry) Units(quantity string) []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.units[quantity]))
	for _, d := range r.units[quantity] {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b Descriptor) int {
		if c := cmp.Compare(a.Scale, b.Scale); c != 0 {
			return c
		}
		return cmp.Compare(a.Abbreviation, b.Abbreviation)
	})
	return out
}

// Register adds a typed unit to r.
func Register[Q Quantity](r *Registry, u Unit[Q]) error {
	return r.Register(u.Descriptor())
}

// Resolve looks up abbrev for quantity Q and restores the typed unit.
func Resolve[Q Quantity](r *Registry, abbrev string) (Unit[Q], error) {
	d, err := r.Lookup(NameOf[Q](), abbrev)
	if err != nil {
		return Unit[Q]{}, err
	}
	return FromDescriptor[Q](d)
}

// Default holds every unit defined in this package.
var Default = func() *Registry {
	r := NewRegistry()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	for _, u := range []Unit[Length]{Meter, Kilometer, Centimeter, Millimeter, Foot, Inch, Mile} {
		must(Register(r, u))
	}
	for _, u := range []Unit[Mass]{Kilogram, Gram, Tonne, Pound} {
		must(Register(r, u))
	}
	for _, u := range []Unit[Time]{Second, Millisecond, Minute, Hour, Day} {
		must(Register(r, u))
	}
	for _, u := range []Unit[Temperature]{Kelvin, Celsius, Fahrenheit} {
		must(Register(r, u))
	}
	for _, u := range []Unit[Angle]{Radian, Degree} {
		must(Register(r, u))
	}
	for _, u := range []Unit[Speed]{MeterPerSecond, KilometerPerHour, Knot} {
		must(Register(r, u))
	}
	for _, u := range []Unit[Dimensionless]{One, Percent} {
		must(Register(r, u))
	}
	return r
}()
