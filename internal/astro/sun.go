package astro

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/civil"
	"github.com/litescript/ls-almanac/internal/sidereal"
)

// Sun orbital elements at epoch 1990 January 0.0 (Duffett-Smith p.86).
const (
	sunTropicalYear = 365.242191 // days
	sunEclLongEpoch = 279.403303 // εg, ecliptic longitude at epoch (degrees)
	sunPerigeeLong  = 282.768422 // ωg, longitude of perigee (degrees)
	sunEccentricity = 0.016713
)

// SunLongitudeAndMeanAnomaly returns the Sun's ecliptic longitude and mean
// anomaly, both in degrees, for a number of days since 1990 January 0.0.
func SunLongitudeAndMeanAnomaly(days float64) (lng, meanAnomaly float64, err error) {
	// Mean motion over the elapsed days
	n := normalizeAngle360(360 / sunTropicalYear * days)

	// Mean anomaly of the Sun (degrees)
	m := n + sunEclLongEpoch - sunPerigeeLong
	if m < 0 {
		m += 360
	}

	e, err := SolveKepler(degToRad(m))
	if err != nil {
		return 0, 0, fmt.Errorf("sun mean anomaly %.6f: %w", m, err)
	}

	// True anomaly (degrees)
	v := radToDeg(2 * math.Atan(math.Sqrt((1+sunEccentricity)/(1-sunEccentricity))*math.Tan(e/2)))

	return normalizeAngle360(v + sunPerigeeLong), m, nil
}

// SunEclipticPosition returns the Sun's geocentric ecliptic position at a UT
// instant. The latitude is always zero.
func SunEclipticPosition(ut civil.DateTime) (Ecliptic, error) {
	lng, _, err := SunLongitudeAndMeanAnomaly(civil.DaysSince1990Epoch(ut.JulianDay()))
	if err != nil {
		return Ecliptic{}, err
	}
	return Ecliptic{Lat: 0, Lng: lng}, nil
}

// SunEquatorialPosition returns the Sun's right ascension and declination at
// a UT instant.
func SunEquatorialPosition(ut civil.DateTime) (Equatorial, error) {
	ecl, err := SunEclipticPosition(ut)
	if err != nil {
		return Equatorial{}, err
	}
	return EquatorialFromEcliptic(ecl, MeanObliquity(ut.JulianDay())), nil
}

// EquationOfTime returns apparent minus mean solar time in decimal hours for
// a date. Negative values mean a sundial runs behind the clock.
func EquationOfTime(date civil.Date) (float64, error) {
	day := civil.Date{Year: date.Year, Month: date.Month, Day: math.Floor(date.Day)}

	// Sun's right ascension near its Greenwich transit
	sun, err := SunEquatorialPosition(civil.DateTime{Date: day, Time: civil.Time{Hour: 12}})
	if err != nil {
		return 0, err
	}

	// The Sun transits when GST equals its right ascension
	transit := sidereal.UTFromGST(civil.DateTime{
		Date: day,
		Time: civil.TimeFromDecimal(sun.RA),
	})

	return civil.NormalizeSigned(12-transit.Decimal(), 24), nil
}

// ApparentUTFromLocal converts local civil time in a zone zoneHours east of
// Greenwich to Universal Time and adds the equation of time for the UT date,
// giving UT on the apparent (sundial) time scale.
func ApparentUTFromLocal(local civil.DateTime, zoneHours float64) (civil.DateTime, error) {
	ut := civil.UTFromLocal(local, zoneHours)
	eot, err := EquationOfTime(ut.Date)
	if err != nil {
		return civil.DateTime{}, fmt.Errorf("equation of time: %w", err)
	}
	return civil.NormalizeDateTime(civil.DateTime{
		Date: ut.Date,
		Time: civil.TimeFromDecimal(ut.Time.Decimal() + eot),
	}), nil
}

// SunSeparation calculates the angular separation between the Sun and a
// target at a UT instant. Returns the separation angle in degrees.
func SunSeparation(target Equatorial, ut civil.DateTime) (float64, error) {
	sun, err := SunEquatorialPosition(ut)
	if err != nil {
		return 0, err
	}
	return AngularSeparation(sun, target), nil
}

// SunSeparationTier grades how close a body comes to the Sun. Bodies in
// glare are lost in twilight or daylight even when above the horizon.
type SunSeparationTier int

const (
	SunSepClear SunSeparationTier = iota // 20° or more
	SunSepGlare                          // 10-20°
	SunSepLost                           // under 10°
)

// String returns the tier name.
func (t SunSeparationTier) String() string {
	switch t {
	case SunSepClear:
		return "clear"
	case SunSepGlare:
		return "glare"
	case SunSepLost:
		return "lost"
	default:
		return "?"
	}
}

// MarshalText encodes the tier by name.
func (t SunSeparationTier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// SunSeparationTierFor grades a separation angle in degrees.
func SunSeparationTierFor(sepDeg float64) SunSeparationTier {
	switch {
	case sepDeg < 10:
		return SunSepLost
	case sepDeg < 20:
		return SunSepGlare
	default:
		return SunSepClear
	}
}
