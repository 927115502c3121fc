package astro

import (
	"math"

	"github.com/litescript/ls-almanac/internal/civil"
)

// MeanObliquity returns the mean obliquity of the ecliptic in degrees for a
// Julian Day.
func MeanObliquity(jd float64) float64 {
	// Julian centuries since J2000.0
	t := (jd - civil.J2000) / 36525

	// Correction in arcseconds
	de := 46.815*t + 0.0006*t*t - 0.00181*t*t*t

	return 23.439292 - de/3600
}

// EquatorialFromEcliptic converts ecliptic coordinates to right ascension and
// declination for an obliquity epsDeg (Duffett-Smith p.40).
func EquatorialFromEcliptic(pos Ecliptic, epsDeg float64) Equatorial {
	beta := degToRad(pos.Lat)
	lambda := degToRad(pos.Lng)
	eps := degToRad(epsDeg)

	sinDec := math.Sin(beta)*math.Cos(eps) + math.Cos(beta)*math.Sin(eps)*math.Sin(lambda)
	dec := math.Asin(clampUnit(sinDec))

	y := math.Sin(lambda)*math.Cos(eps) - math.Tan(beta)*math.Sin(eps)
	x := math.Cos(lambda)
	ra := normalizeAngle360(radToDeg(math.Atan2(y, x)))

	return Equatorial{RA: ra / 15, Dec: radToDeg(dec)}
}

// EclipticFromEquatorial converts right ascension and declination to ecliptic
// coordinates for an obliquity epsDeg (Duffett-Smith p.42).
func EclipticFromEquatorial(pos Equatorial, epsDeg float64) Ecliptic {
	alpha := degToRad(pos.RA * 15)
	delta := degToRad(pos.Dec)
	eps := degToRad(epsDeg)

	sinBeta := math.Sin(delta)*math.Cos(eps) - math.Cos(delta)*math.Sin(eps)*math.Sin(alpha)
	beta := math.Asin(clampUnit(sinBeta))

	y := math.Sin(alpha)*math.Cos(eps) + math.Tan(delta)*math.Sin(eps)
	x := math.Cos(alpha)
	lambda := normalizeAngle360(radToDeg(math.Atan2(y, x)))

	return Ecliptic{Lat: radToDeg(beta), Lng: lambda}
}

// EquatorialFromEclipticAt converts using the mean obliquity on date.
func EquatorialFromEclipticAt(pos Ecliptic, date civil.Date) Equatorial {
	return EquatorialFromEcliptic(pos, MeanObliquity(date.JulianDay()))
}

// EclipticFromEquatorialAt converts using the mean obliquity on date.
func EclipticFromEquatorialAt(pos Equatorial, date civil.Date) Ecliptic {
	return EclipticFromEquatorial(pos, MeanObliquity(date.JulianDay()))
}
