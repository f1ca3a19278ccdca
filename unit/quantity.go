package unit

// Quantity is implemented by the zero-sized marker types below. The marker
// supplies the name used at the I/O boundary and the abbreviation of its SI
// unit.
type Quantity interface {
	QuantityName() string
	SIAbbreviation() string
}

type (
	// Length is measured in meters.
	Length struct{}
	// Mass is measured in kilograms.
	Mass struct{}
	// Time covers durations (relative) and instants (absolute), in seconds.
	Time struct{}
	// Temperature covers differences and absolute temperatures, in kelvin.
	Temperature struct{}
	// Angle covers angles (relative) and directions (absolute), in radians.
	Angle struct{}
	// Speed is measured in meters per second.
	Speed struct{}
	// Dimensionless is a pure number.
	Dimensionless struct{}
)

func (Length) QuantityName() string   { return "Length" }
func (Length) SIAbbreviation() string { return "m" }

func (Mass) QuantityName() string   { return "Mass" }
func (Mass) SIAbbreviation() string { return "kg" }

func (Time) QuantityName() string   { return "Time" }
func (Time) SIAbbreviation() string { return "s" }

func (Temperature) QuantityName() string   { return "Temperature" }
func (Temperature) SIAbbreviation() string { return "K" }

func (Angle) QuantityName() string   { return "Angle" }
func (Angle) SIAbbreviation() string { return "rad" }

func (Speed) QuantityName() string   { return "Speed" }
func (Speed) SIAbbreviation() string { return "m/s" }

func (Dimensionless) QuantityName() string   { return "Dimensionless" }
func (Dimensionless) SIAbbreviation() string { return "" }

// NameOf returns the quantity name of Q.
func NameOf[Q Quantity]() string {
	var q Q
	return q.QuantityName()
}
