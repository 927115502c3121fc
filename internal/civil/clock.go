package civil

import (
	"fmt"
	"math"
)

// secondEpsilon absorbs float noise when splitting a decimal value into
// sexagesimal parts, so 10.35h becomes 10:21:00 rather than 10:20:59.999999.
const secondEpsilon = 1e-7

// Time is a signed hour/minute/second triple. It doubles as a duration or
// offset, and as an hour-valued angle (right ascension, hour angle).
//
// A negative value carries its sign on the most significant non-zero
// component only: -0.5h is {0, -30, 0}, -1.5h is {-1, 30, 0}.
type Time struct {
	Hour   int
	Minute int
	Second float64
}

// Angle is a signed degree/arcminute/arcsecond triple with the same sign
// convention as Time.
type Angle struct {
	Degree int
	Minute int
	Second float64
}

// NewTime validates the components of t. Minutes and seconds must be below 60
// in magnitude, and at most one component may be negative.
func NewTime(hour, minute int, second float64) (Time, error) {
	t := Time{Hour: hour, Minute: minute, Second: second}
	if err := t.Validate(); err != nil {
		return Time{}, err
	}
	return t, nil
}

// Validate reports whether t is a well-formed sexagesimal triple.
func (t Time) Validate() error {
	if err := validateSexagesimal(t.Hour, t.Minute, t.Second); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	return nil
}

// Decimal returns t as signed decimal hours.
func (t Time) Decimal() float64 {
	return fromSexagesimal(t.Hour, t.Minute, t.Second)
}

// Degrees returns t, read as an hour angle, in degrees.
func (t Time) Degrees() float64 {
	return t.Decimal() * 15
}

// String formats t as [-]HH:MM:SS.ss.
func (t Time) String() string {
	return formatSexagesimal(t.Decimal(), 100, "%02d:%02d:%05.2f")
}

// TimeFromDecimal splits signed decimal hours into a Time.
func TimeFromDecimal(hours float64) Time {
	h, m, s := toSexagesimal(hours)
	return Time{Hour: h, Minute: m, Second: s}
}

// TimeFromDegrees converts an angle in degrees to an hour-valued Time.
func TimeFromDegrees(deg float64) Time {
	return TimeFromDecimal(deg / 15)
}

// NewAngle validates the components of an angle.
func NewAngle(degree, minute int, second float64) (Angle, error) {
	a := Angle{Degree: degree, Minute: minute, Second: second}
	if err := validateSexagesimal(a.Degree, a.Minute, a.Second); err != nil {
		return Angle{}, fmt.Errorf("%w: %v", ErrInvalidAngle, err)
	}
	return a, nil
}

// Decimal returns a as signed decimal degrees.
func (a Angle) Decimal() float64 {
	return fromSexagesimal(a.Degree, a.Minute, a.Second)
}

// String formats a as [-]DDD°MM'SS.s".
func (a Angle) String() string {
	return formatSexagesimal(a.Decimal(), 10, "%d°%02d'%04.1f\"")
}

// AngleFromDecimal splits signed decimal degrees into an Angle.
func AngleFromDecimal(deg float64) Angle {
	d, m, s := toSexagesimal(deg)
	return Angle{Degree: d, Minute: m, Second: s}
}

func fromSexagesimal(whole, minute int, second float64) float64 {
	v := math.Abs(float64(whole)) + (math.Abs(float64(minute))+math.Abs(second)/60)/60
	if whole < 0 || minute < 0 || second < 0 {
		return -v
	}
	return v
}

func toSexagesimal(value float64) (whole, minute int, second float64) {
	abs := math.Abs(value)

	w := math.Floor(abs)
	rest := (abs - w) * 60
	m := math.Floor(rest)
	s := (rest - m) * 60

	if s < 0 {
		s = 0
	}
	if 60-s < secondEpsilon {
		s = 0
		m++
	}
	if m >= 60 {
		m -= 60
		w++
	}

	whole, minute, second = int(w), int(m), s
	if value < 0 {
		switch {
		case whole != 0:
			whole = -whole
		case minute != 0:
			minute = -minute
		default:
			second = -second
		}
	}
	return whole, minute, second
}

func validateSexagesimal(whole, minute int, second float64) error {
	if math.IsNaN(second) || math.IsInf(second, 0) {
		return fmt.Errorf("seconds %v not finite", second)
	}
	if minute <= -60 || minute >= 60 {
		return fmt.Errorf("minutes %d out of range", minute)
	}
	if second <= -60 || second >= 60 {
		return fmt.Errorf("seconds %v out of range", second)
	}
	negatives := 0
	for _, neg := range []bool{whole < 0, minute < 0, second < 0} {
		if neg {
			negatives++
		}
	}
	if negatives > 1 {
		return fmt.Errorf("sign carried on more than one component")
	}
	return nil
}

// formatSexagesimal rounds value to 1/scale of a second before splitting it,
// so 10h20m59.9998s prints as 10:21:00.00 rather than 10:20:60.00.
func formatSexagesimal(value, scale float64, layout string) string {
	rounded := math.Round(math.Abs(value)*3600*scale) / (3600 * scale)
	w, m, s := toSexagesimal(rounded)
	out := fmt.Sprintf(layout, w, m, s)
	if value < 0 && rounded != 0 {
		return "-" + out
	}
	return out
}
