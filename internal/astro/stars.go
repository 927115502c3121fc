package astro

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownStar is returned when a catalog lookup finds no match.
var ErrUnknownStar = errors.New("unknown star")

// Star represents a cataloged star with position and brightness.
type Star struct {
	Name   string  // Common name (e.g., "Sirius", "Vega")
	RAdeg  float64 // Right Ascension in degrees (J2000)
	DecDeg float64 // Declination in degrees (J2000)
	Mag    float64 // Apparent visual magnitude (lower = brighter)
}

// Equatorial returns the star position with right ascension in hours.
func (s Star) Equatorial() Equatorial {
	return Equatorial{RA: s.RAdeg / 15, Dec: s.DecDeg}
}

// StarCatalog holds a collection of stars ordered brightest first.
type StarCatalog struct {
	Stars []Star
}

// DefaultStarCatalog returns the built-in catalog of navigational stars.
// Coordinates are J2000 epoch, from the Yale Bright Star Catalog.
func DefaultStarCatalog() StarCatalog {
	stars := make([]Star, len(defaultStars))
	copy(stars, defaultStars)
	sort.SliceStable(stars, func(i, j int) bool { return stars[i].Mag < stars[j].Mag })
	return StarCatalog{Stars: stars}
}

// Find looks a star up by name, ignoring case and surrounding space.
func (c StarCatalog) Find(name string) (Star, error) {
	want := strings.TrimSpace(name)
	for _, s := range c.Stars {
		if strings.EqualFold(s.Name, want) {
			return s, nil
		}
	}
	return Star{}, fmt.Errorf("%w: %q", ErrUnknownStar, name)
}

// Brightest returns at most n stars, brightest first. n <= 0 returns all.
func (c StarCatalog) Brightest(n int) []Star {
	if n <= 0 || n > len(c.Stars) {
		n = len(c.Stars)
	}
	return c.Stars[:n]
}

// defaultStars contains bright stars visible from various latitudes.
var defaultStars = []Star{
	{"Sirius", 101.287, -16.716, -1.46},
	{"Canopus", 95.988, -52.696, -0.74},
	{"Arcturus", 213.915, 19.182, -0.05},
	{"Vega", 279.235, 38.784, 0.03},
	{"Capella", 79.172, 45.998, 0.08},
	{"Rigel", 78.634, -8.202, 0.13},
	{"Procyon", 114.826, 5.225, 0.34},
	{"Achernar", 24.429, -57.237, 0.46},
	{"Betelgeuse", 88.793, 7.407, 0.50},
	{"Hadar", 210.956, -60.373, 0.61},
	{"Altair", 297.696, 8.868, 0.76},
	{"Acrux", 186.650, -63.099, 0.76},
	{"Aldebaran", 68.980, 16.509, 0.85},
	{"Antares", 247.352, -26.432, 0.96},
	{"Spica", 201.298, -11.161, 0.97},
	{"Pollux", 116.329, 28.026, 1.14},
	{"Fomalhaut", 344.413, -29.622, 1.16},
	{"Deneb", 310.358, 45.280, 1.25},
	{"Regulus", 152.093, 11.967, 1.35},
	{"Castor", 113.650, 31.889, 1.58},
	{"Bellatrix", 81.283, 6.350, 1.64},
	{"Alnilam", 84.053, -1.202, 1.69},
	{"Alioth", 193.507, 55.960, 1.77},
	{"Dubhe", 165.932, 61.751, 1.79},
	{"Mirfak", 51.081, 49.861, 1.79},
	{"Alphard", 141.897, -8.659, 2.00},
	{"Polaris", 37.954, 89.264, 2.02},
	{"Hamal", 31.793, 23.463, 2.00},
	{"Alpheratz", 2.097, 29.091, 2.06},
	{"Kochab", 222.676, 74.156, 2.08},
	{"Rasalhague", 263.734, 12.560, 2.08},
	{"Denebola", 177.265, 14.572, 2.13},
	{"Schedar", 10.127, 56.537, 2.23},
	{"Enif", 326.046, 9.875, 2.39},
	{"Markab", 346.190, 15.205, 2.49},
}
