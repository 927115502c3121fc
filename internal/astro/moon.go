package astro

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/civil"
	"github.com/litescript/ls-almanac/internal/sidereal"
)

// Moon orbital elements at epoch 1990 January 0.0 (Duffett-Smith p.144).
const (
	moonMeanLongEpoch = 318.351648 // l0 (degrees)
	moonPerigeeEpoch  = 36.340410  // P0 (degrees)
	moonNodeEpoch     = 318.510107 // N0 (degrees)
	moonInclination   = 5.145396   // i (degrees)
)

// MoonEclipticPosition returns the Moon's geocentric ecliptic position at a UT
// instant. ΔT is applied internally since the orbital elements run on TT.
func MoonEclipticPosition(ut civil.DateTime) (Ecliptic, error) {
	tt := ut.JulianDay() + sidereal.DeltaT(ut.Date)/86400
	return moonEcliptic(civil.DaysSince1990Epoch(tt))
}

// MoonEquatorialPosition returns the Moon's right ascension and declination at
// a UT instant.
func MoonEquatorialPosition(ut civil.DateTime) (Equatorial, error) {
	tt := ut.JulianDay() + sidereal.DeltaT(ut.Date)/86400

	ecl, err := moonEcliptic(civil.DaysSince1990Epoch(tt))
	if err != nil {
		return Equatorial{}, err
	}
	return EquatorialFromEcliptic(ecl, MeanObliquity(tt)), nil
}

func moonEcliptic(days float64) (Ecliptic, error) {
	sunLng, sunM, err := SunLongitudeAndMeanAnomaly(days)
	if err != nil {
		return Ecliptic{}, fmt.Errorf("moon: %w", err)
	}
	sinSunM := math.Sin(degToRad(sunM))

	// Mean longitude, mean anomaly and ascending node (degrees)
	l := normalizeAngle360(13.1763966*days + moonMeanLongEpoch)
	mm := normalizeAngle360(l - 0.1114041*days - moonPerigeeEpoch)
	node := normalizeAngle360(moonNodeEpoch - 0.0529539*days)

	// Evection
	c := l - sunLng
	ev := 1.2739 * math.Sin(degToRad(2*c-mm))

	// Annual equation and third correction
	ae := 0.1858 * sinSunM
	a3 := 0.37 * sinSunM

	mm += ev - ae - a3

	// Equation of the centre and fourth correction
	ec := 6.2886 * math.Sin(degToRad(mm))
	a4 := 0.214 * math.Sin(degToRad(2*mm))

	l += ev + ec - ae + a4

	// Variation
	l += 0.6583 * math.Sin(degToRad(2*(l-sunLng)))

	node -= 0.16 * sinSunM

	// Project onto the ecliptic
	sinArg := math.Sin(degToRad(l - node))
	y := sinArg * math.Cos(degToRad(moonInclination))
	x := math.Cos(degToRad(l - node))

	lng := normalizeAngle360(radToDeg(math.Atan2(y, x)) + node)
	lat := radToDeg(math.Asin(clampUnit(sinArg * math.Sin(degToRad(moonInclination)))))

	return Ecliptic{Lat: lat, Lng: lng}, nil
}
