package astro

import (
	"errors"
	"fmt"
	"math"
)

const (
	keplerTolerance = 1e-6
	keplerMaxIter   = 1000
)

// ErrNoConvergence is returned when Kepler's equation fails to converge. It
// indicates a bad input or a bug, never a normal runtime condition.
var ErrNoConvergence = errors.New("kepler iteration did not converge")

// SolveKepler solves Kepler's equation E − e·sin E = M for the eccentric
// anomaly of the Sun's apparent orbit. meanAnomaly and the result are in
// radians.
func SolveKepler(meanAnomaly float64) (float64, error) {
	return SolveKeplerEcc(meanAnomaly, sunEccentricity)
}

// SolveKeplerEcc solves Kepler's equation for an arbitrary eccentricity by
// Newton iteration seeded with E = M.
func SolveKeplerEcc(meanAnomaly, ecc float64) (float64, error) {
	if math.IsNaN(meanAnomaly) || math.IsInf(meanAnomaly, 0) {
		return 0, fmt.Errorf("%w: mean anomaly %v", ErrNoConvergence, meanAnomaly)
	}

	e := meanAnomaly
	for i := 0; i < keplerMaxIter; i++ {
		delta := e - ecc*math.Sin(e) - meanAnomaly
		if math.Abs(delta) < keplerTolerance {
			return e, nil
		}
		e -= delta / (1 - ecc*math.Cos(e))
	}
	return 0, fmt.Errorf("%w after %d iterations (M=%v, e=%v)", ErrNoConvergence, keplerMaxIter, meanAnomaly, ecc)
}
