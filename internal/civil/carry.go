// Package civil provides calendar and clock arithmetic for positional astronomy:
// Julian Day conversion, signed sexagesimal values, and base-N carry.
package civil

import "math"

// CarryOver reduces value modulo base and returns the remainder together with
// the signed number of whole bases carried out of it.
//
// The remainder is always in [0, base) and value == remainder + quotient*base.
// For negative values the quotient is negative: CarryOver(-61, 60) returns
// (59, -2), CarryOver(-60, 60) returns (0, -1).
func CarryOver(value, base float64) (remainder, quotient float64) {
	quotient = math.Floor(value / base)
	remainder = value - quotient*base

	// Round-off can leave the remainder a hair outside [0, base).
	if remainder >= base {
		remainder -= base
		quotient++
	} else if remainder < 0 {
		remainder += base
		quotient--
	}
	if remainder == 0 {
		remainder = 0 // drop negative zero
	}
	return remainder, quotient
}

// Wrap reduces value into [0, base).
func Wrap(value, base float64) float64 {
	r, _ := CarryOver(value, base)
	return r
}

// NormalizeSigned reduces value into (-period/2, period/2].
func NormalizeSigned(value, period float64) float64 {
	half := period / 2
	v := Wrap(value+half, period) - half
	if v == -half {
		v = half
	}
	return v
}
