// Package sidereal converts between Universal Time and Greenwich or local
// sidereal time, and models ΔT, the difference between Terrestrial Time and UT.
package sidereal

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-almanac/internal/civil"
)

const (
	// siderealRate is the ratio of a solar day to a sidereal day.
	siderealRate = 1.002737909

	// solarRate converts sidereal hours back to solar hours
	// (Duffett-Smith p.18).
	solarRate = 0.9972695663
)

// Direction selects the sign of an observer longitude. Longitudes are given as
// positive magnitudes; East adds and West subtracts.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns the compass name of d.
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection reads a compass letter or name, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

// SplitLongitude turns a signed, east-positive longitude into a magnitude and
// a Direction.
func SplitLongitude(lonDeg float64) (float64, Direction) {
	if lonDeg < 0 {
		return -lonDeg, West
	}
	return lonDeg, East
}

// offsetHours returns the signed hour offset for a longitude. Directions other
// than East and West contribute no offset.
func offsetHours(lngDeg float64, dir Direction) float64 {
	switch dir {
	case East:
		return lngDeg / 15
	case West:
		return -lngDeg / 15
	default:
		return 0
	}
}

// T0 returns the sidereal time at 0h UT on date, in hours
// (Duffett-Smith p.17).
func T0(date civil.Date) float64 {
	midnight := civil.Date{Year: date.Year, Month: date.Month, Day: math.Floor(date.Day)}

	// Julian centuries since J2000.0
	t := (midnight.JulianDay() - civil.J2000) / 36525

	return civil.Wrap(6.697374558+2400.051336*t+0.000025862*t*t, 24)
}

// GSTHours returns Greenwich sidereal time in decimal hours for a UT instant.
func GSTHours(ut civil.DateTime) float64 {
	return civil.Wrap(ut.Time.Decimal()*siderealRate+T0(ut.Date), 24)
}

// GSTFromUT converts Universal Time to Greenwich sidereal time.
func GSTFromUT(ut civil.DateTime) civil.Time {
	return civil.TimeFromDecimal(GSTHours(ut))
}

// UTFromGST converts Greenwich sidereal time on a given date back to
// Universal Time. The clock part of gst holds the sidereal reading.
func UTFromGST(gst civil.DateTime) civil.Time {
	ut := civil.Wrap(gst.Time.Decimal()-T0(gst.Date), 24) * solarRate
	return civil.TimeFromDecimal(ut)
}

// LSTFromGST converts Greenwich sidereal time to local sidereal time for an
// observer lngDeg degrees in direction dir of Greenwich.
func LSTFromGST(gst civil.Time, lngDeg float64, dir Direction) civil.Time {
	return civil.TimeFromDecimal(LSTHours(gst.Decimal(), lngDeg, dir))
}

// GSTFromLST is the inverse of LSTFromGST.
func GSTFromLST(lst civil.Time, lngDeg float64, dir Direction) civil.Time {
	return civil.TimeFromDecimal(civil.Wrap(lst.Decimal()-offsetHours(lngDeg, dir), 24))
}

// LSTHours applies a longitude offset to decimal GST hours, returning LST in
// [0, 24).
func LSTHours(gstHours, lngDeg float64, dir Direction) float64 {
	return civil.Wrap(gstHours+offsetHours(lngDeg, dir), 24)
}

// LSTFromUT chains GSTFromUT and LSTFromGST, returning decimal hours.
func LSTFromUT(ut civil.DateTime, lngDeg float64, dir Direction) float64 {
	return LSTHours(GSTHours(ut), lngDeg, dir)
}
