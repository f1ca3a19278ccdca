package unit

import "math"

// Length units.
var (
	Meter      = New[Length]("meter", "m", 1)
	Kilometer  = New[Length]("kilometer", "km", 1000)
	Centimeter = New[Length]("centimeter", "cm", 0.01)
	Millimeter = New[Length]("millimeter", "mm", 0.001)
	Foot       = New[Length]("foot", "ft", 0.3048)
	Inch       = New[Length]("inch", "in", 0.0254)
	Mile       = New[Length]("mile", "mi", 1609.344)
)

// Mass units.
var (
	Kilogram = New[Mass]("kilogram", "kg", 1)
	Gram     = New[Mass]("gram", "g", 0.001)
	Tonne    = New[Mass]("tonne", "t", 1000)
	Pound    = New[Mass]("pound", "lb", 0.45359237)
)

// Time units.
var (
	Second      = New[Time]("second", "s", 1)
	Millisecond = New[Time]("millisecond", "ms", 0.001)
	Minute      = New[Time]("minute", "min", 60)
	Hour        = New[Time]("hour", "h", 3600)
	Day         = New[Time]("day", "day", 86400)
)

// Temperature units. Offsets only apply to absolute temperatures.
var (
	Kelvin     = New[Temperature]("kelvin", "K", 1)
	Celsius    = NewWithOffset[Temperature]("degree Celsius", "°C", 1, 273.15)
	Fahrenheit = NewWithOffset[Temperature]("degree Fahrenheit", "°F", 5.0/9.0, 273.15-32*5.0/9.0)
)

// Angle units.
var (
	Radian = New[Angle]("radian", "rad", 1)
	Degree = New[Angle]("degree", "deg", math.Pi/180)
)

// Speed units.
var (
	MeterPerSecond   = New[Speed]("meter per second", "m/s", 1)
	KilometerPerHour = New[Speed]("kilometer per hour", "km/h", 1/3.6)
	Knot             = New[Speed]("knot", "kt", 1852.0/3600.0)
)

// Dimensionless units.
var (
	One     = New[Dimensionless]("one", "1", 1)
	Percent = New[Dimensionless]("percent", "%", 0.01)
)
