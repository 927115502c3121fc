// Package astro converts celestial positions between coordinate frames and
// computes Sun, Moon and star positions from closed-form models.
//
// Right ascension and hour angle are carried in decimal hours, every other
// angle in decimal degrees. civil.Time and civil.Angle are only used at the
// edges, when a caller wants a sexagesimal reading.
package astro

import (
	"math"
	"time"

	"github.com/litescript/ls-almanac/internal/civil"
	"github.com/litescript/ls-almanac/internal/sidereal"
)

// Equatorial is a right ascension / declination position.
type Equatorial struct {
	RA  float64 // Right ascension in hours [0, 24)
	Dec float64 // Declination in degrees [-90, 90]
}

// EquatorialHA is the observer-relative equatorial form, using hour angle in
// place of right ascension.
type EquatorialHA struct {
	HA  float64 // Hour angle in hours [0, 24), west of the meridian
	Dec float64 // Declination in degrees [-90, 90]
}

// Horizon is an altitude / azimuth position.
type Horizon struct {
	Alt float64 // Altitude in degrees (0=horizon, 90=zenith)
	Az  float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
}

// Ecliptic is an ecliptic latitude / longitude position.
type Ecliptic struct {
	Lat float64 // β in degrees
	Lng float64 // λ in degrees [0, 360)
}

// Galactic is a galactic latitude / longitude position.
type Galactic struct {
	Lat float64 // b in degrees
	Lng float64 // l in degrees [0, 360)
}

// RATime returns the right ascension as a sexagesimal time.
func (e Equatorial) RATime() civil.Time { return civil.TimeFromDecimal(e.RA) }

// DecAngle returns the declination as a sexagesimal angle.
func (e Equatorial) DecAngle() civil.Angle { return civil.AngleFromDecimal(e.Dec) }

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// Longitude returns the observer longitude as a magnitude and direction.
func (o Observer) Longitude() (float64, sidereal.Direction) {
	return sidereal.SplitLongitude(o.LonDeg)
}

// HorizonFromEquatorial converts an hour angle / declination position to
// altitude and azimuth for an observer at latDeg (Duffett-Smith p.35).
func HorizonFromEquatorial(pos EquatorialHA, latDeg float64) Horizon {
	h := degToRad(pos.HA * 15)
	dec := degToRad(pos.Dec)
	lat := degToRad(latDeg)

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(h)
	alt := math.Asin(clampUnit(sinAlt))

	cosAz := (math.Sin(dec) - math.Sin(lat)*math.Sin(alt)) / (math.Cos(lat) * math.Cos(alt))
	az := radToDeg(math.Acos(clampUnit(cosAz)))

	// West of the meridian the azimuth lies in the western half
	if math.Sin(h) >= 0 {
		az = 360 - az
	}

	return Horizon{Alt: radToDeg(alt), Az: normalizeAngle360(az)}
}

// EquatorialFromHorizon converts altitude and azimuth back to hour angle and
// declination for an observer at latDeg (Duffett-Smith p.36).
func EquatorialFromHorizon(pos Horizon, latDeg float64) EquatorialHA {
	alt := degToRad(pos.Alt)
	az := degToRad(pos.Az)
	lat := degToRad(latDeg)

	sinDec := math.Sin(alt)*math.Sin(lat) + math.Cos(alt)*math.Cos(lat)*math.Cos(az)
	dec := math.Asin(clampUnit(sinDec))

	cosH := (math.Sin(alt) - math.Sin(lat)*math.Sin(dec)) / (math.Cos(lat) * math.Cos(dec))
	h := radToDeg(math.Acos(clampUnit(cosH)))

	if math.Sin(az) >= 0 {
		h = 360 - h
	}

	return EquatorialHA{HA: civil.Wrap(h/15, 24), Dec: radToDeg(dec)}
}

// HourAngleFromUT returns the hour angle of right ascension ra (hours) at a UT
// instant for an observer lngDeg degrees in direction dir.
func HourAngleFromUT(ra float64, ut civil.DateTime, lngDeg float64, dir sidereal.Direction) float64 {
	lst := sidereal.LSTFromUT(ut, lngDeg, dir)
	return civil.Wrap(lst-ra, 24)
}

// RightAscensionFromUT is the inverse of HourAngleFromUT.
func RightAscensionFromUT(ha float64, ut civil.DateTime, lngDeg float64, dir sidereal.Direction) float64 {
	lst := sidereal.LSTFromUT(ut, lngDeg, dir)
	return RightAscensionFromLSTAndHourAngle(lst, ha)
}

// RightAscensionFromLSTAndHourAngle returns RA = LST − H, reduced to [0, 24).
func RightAscensionFromLSTAndHourAngle(lst, ha float64) float64 {
	return civil.Wrap(lst-ha, 24)
}

// HorizonAt returns the altitude and azimuth of an equatorial position for an
// observer at a given instant. A time.Time is read in UTC whatever its
// location; any other Instant's clock reading is taken as UT.
func HorizonAt(pos Equatorial, obs Observer, at civil.Instant) Horizon {
	if t, ok := at.(time.Time); ok {
		at = t.UTC()
	}
	ut := civil.FromInstant(at)
	lng, dir := obs.Longitude()
	ha := HourAngleFromUT(pos.RA, ut, lng, dir)
	return HorizonFromEquatorial(EquatorialHA{HA: ha, Dec: pos.Dec}, obs.LatDeg)
}

// clampUnit keeps an asin/acos argument inside [-1, 1] against round-off.
func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// normalizeAngle360 normalizes an angle to 0-360 degrees.
func normalizeAngle360(a float64) float64 {
	return civil.Wrap(a, 360)
}
