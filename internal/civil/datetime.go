package civil

import (
	"fmt"
	"math"
	"time"
)

const unixEpochJD = 2440587.5

// Instant is anything that can report a Gregorian calendar date and a clock
// reading. time.Time satisfies it, so engine entry points accept wall-clock
// times directly through FromInstant.
type Instant interface {
	Date() (year int, month time.Month, day int)
	Clock() (hour, min, sec int)
	Nanosecond() int
}

// DateTime is a calendar date combined with a time of day. Unless stated
// otherwise the clock reading is Universal Time.
type DateTime struct {
	Date
	Time
}

// NewDateTime validates both halves and returns the combined value.
func NewDateTime(d Date, t Time) (DateTime, error) {
	if err := d.Validate(); err != nil {
		return DateTime{}, err
	}
	if err := t.Validate(); err != nil {
		return DateTime{}, err
	}
	if t.Hour < 0 || t.Minute < 0 || t.Second < 0 || t.Hour >= 24 {
		return DateTime{}, fmt.Errorf("%w: clock reading %s out of range", ErrInvalidTime, t)
	}
	return DateTime{Date: d, Time: t}, nil
}

// FromInstant reads the date and clock of i into a DateTime.
func FromInstant(i Instant) DateTime {
	y, m, d := i.Date()
	h, min, s := i.Clock()
	return DateTime{
		Date: Date{Year: y, Month: m, Day: float64(d)},
		Time: Time{Hour: h, Minute: min, Second: float64(s) + float64(i.Nanosecond())/1e9},
	}
}

// Validate checks both the date and the clock reading.
func (dt DateTime) Validate() error {
	if err := dt.Date.Validate(); err != nil {
		return err
	}
	return dt.Time.Validate()
}

// String formats dt as an ISO 8601 style timestamp.
func (dt DateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%s", dt.Year, int(dt.Month), int(math.Floor(dt.Day)), dt.Time)
}

// JulianDay returns the Julian Day of dt including the time of day.
func (dt DateTime) JulianDay() float64 {
	return dt.Date.JulianDay() + dt.Time.Decimal()/24
}

// UTC converts dt to a time.Time in the UTC location.
func (dt DateTime) UTC() time.Time {
	secs := (dt.JulianDay() - unixEpochJD) * 86400
	whole := math.Floor(secs)
	nanos := math.Round((secs - whole) * 1e9)
	return time.Unix(int64(whole), int64(nanos)).UTC()
}

// DateTimeFromJulianDay splits a Julian Day into a date and a clock reading.
func DateTimeFromJulianDay(jd float64) DateTime {
	d := DateFromJulianDay(jd)
	whole := math.Floor(d.Day)
	t := TimeFromDecimal((d.Day - whole) * 24)
	d.Day = whole
	return NormalizeDateTime(DateTime{Date: d, Time: t})
}

// NormalizeTime reduces t into [0h, 24h), returning the reduced time and the
// signed whole days carried. The sign of t is read from its most significant
// non-zero component, so {-1, 30, 0} is -1.5h.
func NormalizeTime(t Time) (Time, float64) {
	hours, days := CarryOver(t.Decimal(), 24)
	out := TimeFromDecimal(hours)

	// A hair under 24h rounds up to 24:00:00 when split
	if out.Hour >= 24 {
		out.Hour -= 24
		days++
	}
	return out, days
}

// NormalizeDateTime brings every clock component into range and moves any
// overflow into the date.
func NormalizeDateTime(dt DateTime) DateTime {
	t, days := NormalizeTime(dt.Time)
	d := dt.Date
	if days != 0 {
		d = d.AddDays(days)
	}
	return DateTime{Date: d, Time: t}
}

// UTFromLocal converts a local civil time in a zone zoneHours east of
// Greenwich to Universal Time (Duffett-Smith pp.12-13).
func UTFromLocal(local DateTime, zoneHours float64) DateTime {
	return shiftZone(local, -zoneHours)
}

// LocalFromUT converts Universal Time to local civil time in a zone zoneHours
// east of Greenwich (Duffett-Smith p.14).
func LocalFromUT(ut DateTime, zoneHours float64) DateTime {
	return shiftZone(ut, zoneHours)
}

func shiftZone(dt DateTime, hours float64) DateTime {
	h, days := CarryOver(dt.Time.Decimal()+hours, 24)
	d := dt.Date
	if days != 0 {
		d = d.AddDays(days)
	}
	return DateTime{Date: d, Time: TimeFromDecimal(h)}
}
