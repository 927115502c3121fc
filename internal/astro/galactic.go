package astro

import "math"

// Galactic pole and node constants (B1950 frame).
const (
	galPoleRA      = 192.25 // RA of the north galactic pole, degrees
	galPoleTilt    = 27.4   // Declination of the north galactic pole, degrees
	galNodeLongOff = 33.0   // Galactic longitude of the ascending node, degrees
)

// GalacticFromEquatorial converts right ascension and declination to galactic
// latitude and longitude (Duffett-Smith p.44).
func GalacticFromEquatorial(pos Equatorial) Galactic {
	alpha := degToRad(pos.RA * 15)
	delta := degToRad(pos.Dec)
	pole := degToRad(galPoleTilt)
	node := degToRad(galPoleRA)

	sinB := math.Cos(delta)*math.Cos(pole)*math.Cos(alpha-node) + math.Sin(delta)*math.Sin(pole)
	b := math.Asin(clampUnit(sinB))

	y := math.Sin(delta) - sinB*math.Sin(pole)
	x := math.Cos(delta) * math.Sin(alpha-node) * math.Cos(pole)
	l := normalizeAngle360(radToDeg(math.Atan2(y, x)) + galNodeLongOff)

	return Galactic{Lat: radToDeg(b), Lng: l}
}

// EquatorialFromGalactic converts galactic latitude and longitude back to
// right ascension and declination.
func EquatorialFromGalactic(pos Galactic) Equatorial {
	b := degToRad(pos.Lat)
	l := degToRad(pos.Lng - galNodeLongOff)
	pole := degToRad(galPoleTilt)

	sinDec := math.Cos(b)*math.Cos(pole)*math.Sin(l) + math.Sin(b)*math.Sin(pole)
	dec := math.Asin(clampUnit(sinDec))

	y := math.Cos(b) * math.Cos(l)
	x := math.Sin(b)*math.Cos(pole) - math.Cos(b)*math.Sin(pole)*math.Sin(l)
	ra := normalizeAngle360(radToDeg(math.Atan2(y, x)) + galPoleRA)

	return Equatorial{RA: ra / 15, Dec: radToDeg(dec)}
}

// AngularSeparation calculates the angular separation between two points on
// the celestial sphere. Returns separation in degrees.
func AngularSeparation(a, b Equatorial) float64 {
	d1 := degToRad(a.Dec)
	d2 := degToRad(b.Dec)
	dRA := degToRad(15 * (a.RA - b.RA))

	cosD := math.Sin(d1)*math.Sin(d2) + math.Cos(d1)*math.Cos(d2)*math.Cos(dRA)
	return radToDeg(math.Acos(clampUnit(cosD)))
}

// GalacticSeparation is the angular separation of two galactic positions.
func GalacticSeparation(a, b Galactic) float64 {
	b1 := degToRad(a.Lat)
	b2 := degToRad(b.Lat)
	dl := degToRad(a.Lng - b.Lng)

	cosD := math.Sin(b1)*math.Sin(b2) + math.Cos(b1)*math.Cos(b2)*math.Cos(dl)
	return radToDeg(math.Acos(clampUnit(cosD)))
}
