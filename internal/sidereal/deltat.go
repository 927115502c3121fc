package sidereal

import (
	"math"
	"sort"

	"github.com/litescript/ls-almanac/internal/civil"
)

// Branch is one interval of the piecewise ΔT model. A decimal year y belongs
// to the first branch with y < Upper.
type Branch struct {
	Name  string
	Upper float64
	eval  func(y float64) float64
}

// Eval returns ΔT in seconds for decimal year y using this branch's
// polynomial, regardless of whether y falls inside the branch.
func (b Branch) Eval(y float64) float64 {
	return b.eval(y)
}

// Polynomial fits to ΔT by Espenak and Meeus (NASA Five Millennium Canon).
var branches = []Branch{
	{"before -500", -500, longTerm},
	{"-500..500", 500, func(y float64) float64 {
		u := y / 100
		return horner(u, 10583.6, -1014.41, 33.78311, -5.952053, -0.1798452, 0.022174192, 0.0090316521)
	}},
	{"500..1600", 1600, func(y float64) float64 {
		u := (y - 1000) / 100
		return horner(u, 1574.2, -556.01, 71.23472, 0.319781, -0.8503463, -0.005050998, 0.0083572073)
	}},
	{"1600..1700", 1700, func(y float64) float64 {
		t := y - 1600
		return horner(t, 120, -0.9808, -0.01532, 1.0/7129)
	}},
	{"1700..1800", 1800, func(y float64) float64 {
		t := y - 1700
		return horner(t, 8.83, 0.1603, -0.0059285, 0.00013336, -1.0/1174000)
	}},
	{"1800..1860", 1860, func(y float64) float64 {
		t := y - 1800
		return horner(t, 13.72, -0.332447, 0.0068612, 0.0041116, -0.00037436, 0.0000121272, -0.0000001699, 0.000000000875)
	}},
	{"1860..1900", 1900, func(y float64) float64 {
		t := y - 1860
		return horner(t, 7.62, 0.5737, -0.251754, 0.01680668, -0.0004473624, 1.0/233174)
	}},
	{"1900..1920", 1920, func(y float64) float64 {
		t := y - 1900
		return horner(t, -2.79, 1.494119, -0.0598939, 0.0061966, -0.000197)
	}},
	{"1920..1941", 1941, func(y float64) float64 {
		t := y - 1920
		return horner(t, 21.20, 0.84493, -0.076100, 0.0020936)
	}},
	{"1941..1961", 1961, func(y float64) float64 {
		t := y - 1950
		return horner(t, 29.07, 0.407, -1.0/233, 1.0/2547)
	}},
	{"1961..1986", 1986, func(y float64) float64 {
		t := y - 1975
		return horner(t, 45.45, 1.067, -1.0/260, -1.0/718)
	}},
	{"1986..2005", 2005, func(y float64) float64 {
		t := y - 2000
		return horner(t, 63.86, 0.3345, -0.060374, 0.0017275, 0.000651814, 0.00002373599)
	}},
	{"2005..2050", 2050, func(y float64) float64 {
		t := y - 2000
		return horner(t, 62.92, 0.32217, 0.005589)
	}},
	{"2050..2150", 2150, func(y float64) float64 {
		return longTerm(y) - 0.5628*(2150-y)
	}},
	{"after 2150", math.Inf(1), longTerm},
}

// longTerm is the parabola used outside the historical record.
func longTerm(y float64) float64 {
	u := (y - 1820) / 100
	return -20 + 32*u*u
}

// horner evaluates c[0] + c[1]x + c[2]x² + ...
func horner(x float64, c ...float64) float64 {
	var sum float64
	for i := len(c) - 1; i >= 0; i-- {
		sum = sum*x + c[i]
	}
	return sum
}

// Branches returns a copy of the ΔT branch table in ascending order.
func Branches() []Branch {
	out := make([]Branch, len(branches))
	copy(out, branches)
	return out
}

// BranchFor returns the branch that covers decimal year y.
func BranchFor(y float64) Branch {
	i := sort.Search(len(branches), func(i int) bool {
		return y < branches[i].Upper
	})
	if i == len(branches) {
		i = len(branches) - 1
	}
	return branches[i]
}

// DeltaTForYear returns ΔT in seconds for a decimal year.
func DeltaTForYear(y float64) float64 {
	return BranchFor(y).Eval(y)
}

// DeltaT returns ΔT = TT − UT in seconds for a calendar date, evaluated at the
// middle of its month.
func DeltaT(date civil.Date) float64 {
	return DeltaTForYear(date.DecimalYear())
}

// TTFromUT adds ΔT to a UT instant.
func TTFromUT(ut civil.DateTime) civil.DateTime {
	return civil.DateTimeFromJulianDay(ut.JulianDay() + DeltaT(ut.Date)/86400)
}
