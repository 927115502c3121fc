package civil

import (
	"fmt"
	"math"
	"time"
)

const (
	// J2000 is the Julian Day of 2000 January 1.5 (TT).
	J2000 = 2451545.0

	// Epoch1990 is the Julian Day of 1990 January 0.0, the epoch of the
	// Sun and Moon orbital elements.
	Epoch1990 = 2447891.5

	// MJDOffset converts a Julian Day to a Modified Julian Day.
	MJDOffset = 2400000.5

	// gregorianSwitch is the first day number (JD + 0.5, floored) of the
	// Gregorian calendar, 1582 October 15.
	gregorianSwitch = 2299160

	daysPerJulianYear = 365.25
)

// Date is a calendar date. Day may carry a fraction of a day. Dates before
// 1582 October 15 are read in the Julian calendar.
type Date struct {
	Year  int
	Month time.Month
	Day   float64
}

// NewDate validates and returns a Date.
func NewDate(year int, month time.Month, day float64) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// Validate checks the month range, the day against the month length, and
// rejects the ten days dropped by the Gregorian reform. Day 0 is accepted;
// "January 0" is the usual way of naming the last day of the prior year.
func (d Date) Validate() error {
	if d.Month < time.January || d.Month > time.December {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, int(d.Month))
	}
	if math.IsNaN(d.Day) || d.Day < 0 {
		return fmt.Errorf("%w: day %v out of range", ErrInvalidDate, d.Day)
	}
	if n := DaysInMonth(d.Year, d.Month); d.Day >= float64(n+1) {
		return fmt.Errorf("%w: day %v beyond %d days in %s %d", ErrInvalidDate, d.Day, n, d.Month, d.Year)
	}
	if d.Year == 1582 && d.Month == time.October && d.Day >= 5 && d.Day < 15 {
		return fmt.Errorf("%w: 1582-10-%02d falls in the Gregorian reform gap", ErrInvalidDate, int(d.Day))
	}
	return nil
}

// String formats d as YYYY-MM-DD, appending the day fraction when present.
func (d Date) String() string {
	whole := math.Floor(d.Day)
	if frac := d.Day - whole; frac > 0 {
		return fmt.Sprintf("%04d-%02d-%02d+%.4f", d.Year, int(d.Month), int(whole), frac)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), int(whole))
}

// IsLeapYear applies the Gregorian rule: divisible by 4, except centuries not
// divisible by 400.
func IsLeapYear(year int) bool {
	if year%4 != 0 {
		return false
	}
	if year%100 != 0 {
		return true
	}
	return year%400 == 0
}

// isCalendarLeapYear applies the Julian rule before the 1582 reform and the
// Gregorian rule from 1582 on.
func isCalendarLeapYear(year int) bool {
	if year < 1582 {
		return year%4 == 0
	}
	return IsLeapYear(year)
}

// DaysInMonth returns the length of month in year, using the Julian leap rule
// for years before the 1582 reform.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if isCalendarLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

// IsJulianCalendarDate reports whether d precedes 1582 October 15, the first
// day of the Gregorian calendar.
func (d Date) IsJulianCalendarDate() bool {
	if d.Year != 1582 {
		return d.Year < 1582
	}
	if d.Month != time.October {
		return d.Month < time.October
	}
	return d.Day < 15
}

// JulianDay converts d to a Julian Day (Duffett-Smith pp.6-7).
func (d Date) JulianDay() float64 {
	y, m := float64(d.Year), float64(d.Month)
	if d.Month <= time.February {
		y--
		m += 12
	}

	var b float64
	if !d.IsJulianCalendarDate() {
		a := math.Floor(y / 100)
		b = 2 - a + math.Floor(a/4)
	}

	// Truncation toward zero; the -0.75 brings negative years onto the
	// same day boundaries as positive ones.
	var c float64
	if y < 0 {
		c = math.Trunc(daysPerJulianYear*y - 0.75)
	} else {
		c = math.Floor(daysPerJulianYear * y)
	}

	e := math.Floor(30.6001 * (m + 1))

	return b + c + e + d.Day + 1720994.5
}

// DateFromJulianDay converts a Julian Day back to a calendar date
// (Duffett-Smith p.8).
func DateFromJulianDay(jd float64) Date {
	jd += 0.5
	i := math.Floor(jd)
	f := jd - i

	b := i
	if i > gregorianSwitch {
		a := math.Floor((i - 1867216.25) / 36524.25)
		b = i + 1 + a - math.Floor(a/4)
	}
	c := b + 1524
	d := math.Floor((c - 122.1) / daysPerJulianYear)
	e := math.Floor(d * daysPerJulianYear)
	g := math.Floor((c - e) / 30.6001)

	day := c - e + f - math.Floor(30.6001*g)

	month := g - 1
	if g >= 13.5 {
		month = g - 13
	}
	year := d - 4716
	if month < 2.5 {
		year = d - 4715
	}

	return Date{Year: int(year), Month: time.Month(month), Day: day}
}

// AddDays shifts d by a (possibly fractional) number of days.
func (d Date) AddDays(days float64) Date {
	return DateFromJulianDay(d.JulianDay() + days)
}

// DayNumber returns the day of the year, January 1 being day 1
// (Duffett-Smith p.5). Years before 1582 follow the Julian leap rule.
func (d Date) DayNumber() int {
	k := 63.0
	if isCalendarLeapYear(d.Year) {
		k = 62
	}
	m := float64(d.Month)
	var n float64
	if d.Month <= time.February {
		n = math.Floor((m - 1) * k / 2)
	} else {
		n = math.Floor((m+1)*30.6) - k
	}
	return int(n + math.Floor(d.Day))
}

// Weekday returns the day of the week of d (Duffett-Smith p.9).
func (d Date) Weekday() time.Weekday {
	day := math.Floor(d.Day)
	jd := Date{Year: d.Year, Month: d.Month, Day: day}.JulianDay()
	n := int(math.Round(Wrap(jd+1.5, 7)))
	return time.Weekday(n % 7)
}

// DecimalYear returns the year at the middle of d's month, the argument of
// the ΔT polynomials.
func (d Date) DecimalYear() float64 {
	return float64(d.Year) + (float64(d.Month)-0.5)/12
}

// ModifiedJulianDay converts a Julian Day to a Modified Julian Day.
func ModifiedJulianDay(jd float64) float64 {
	return jd - MJDOffset
}

// J2000Days returns the days elapsed since J2000.0.
func J2000Days(jd float64) float64 {
	return jd - J2000
}

// DaysSince1990Epoch returns the days elapsed since 1990 January 0.0.
func DaysSince1990Epoch(jd float64) float64 {
	return jd - Epoch1990
}
