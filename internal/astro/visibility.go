package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-almanac/internal/civil"
)

// Sample is an equatorial position at a specific time.
type Sample struct {
	Time time.Time
	Pos  Equatorial
}

// VisibilityWindow represents a rise-transit-set cycle for an object.
type VisibilityWindow struct {
	Rise          time.Time // Time object rises above the threshold
	Transit       time.Time // Time object crosses meridian (highest point)
	Set           time.Time // Time object sets below the threshold
	MaxElevation  float64   // Peak elevation in degrees
	Valid         bool      // Whether a valid window was found
	AlwaysVisible bool      // Object never sets (circumpolar)
	NeverVisible  bool      // Object never rises
}

const (
	// MinElevation is the geometric horizon used for stars.
	MinElevation = 0.0

	// SunElevation is the altitude of the Sun's centre at rise and set,
	// allowing for refraction and the solar semi-diameter.
	SunElevation = -0.833

	// sampleStep is the spacing of generated tracks.
	sampleStep = 10 * time.Minute
)

// Errors for visibility calculations.
var (
	ErrInsufficientSamples = errors.New("insufficient samples for visibility calculation")
	ErrNoValidWindow       = errors.New("no valid visibility window found in time range")
)

// PositionFunc returns a body's position at an instant.
type PositionFunc func(t time.Time) (Equatorial, error)

// Track samples pos every step from start for span.
func Track(start time.Time, span, step time.Duration, pos PositionFunc) ([]Sample, error) {
	if step <= 0 {
		return nil, fmt.Errorf("track step %s must be positive", step)
	}
	var samples []Sample
	for t := start; !t.After(start.Add(span)); t = t.Add(step) {
		p, err := pos(t)
		if err != nil {
			return nil, fmt.Errorf("position at %s: %w", t.Format(time.RFC3339), err)
		}
		samples = append(samples, Sample{Time: t, Pos: p})
	}
	return samples, nil
}

// RiseSet computes rise, transit, and set times for an object given position
// samples. The samples must be in chronological order. Rise and Set are the
// first upward and downward crossings of thresholdDeg inside the window, so a
// body that is already up at the start reports a Set before its Rise.
//
// Crossings are found by linear interpolation between samples.
func RiseSet(obs Observer, samples []Sample, thresholdDeg float64) (VisibilityWindow, error) {
	if len(samples) < 3 {
		return VisibilityWindow{}, ErrInsufficientSamples
	}

	elevations := make([]float64, len(samples))
	minEl := 90.0
	maxEl := -90.0
	for i, s := range samples {
		el := HorizonAt(s.Pos, obs, s.Time).Alt
		elevations[i] = el
		minEl = math.Min(minEl, el)
		maxEl = math.Max(maxEl, el)
	}

	// Check for circumpolar or never-visible objects
	if minEl > thresholdDeg {
		transit, peak := maxElevation(samples, elevations)
		return VisibilityWindow{
			Transit:       transit,
			MaxElevation:  peak,
			Valid:         true,
			AlwaysVisible: true,
		}, nil
	}
	if maxEl < thresholdDeg {
		return VisibilityWindow{
			MaxElevation: maxEl,
			Valid:        true,
			NeverVisible: true,
		}, nil
	}

	var w VisibilityWindow
	riseFound, setFound := false, false
	for i := 1; i < len(samples); i++ {
		prev, curr := elevations[i-1], elevations[i]

		if !riseFound && prev <= thresholdDeg && curr > thresholdDeg {
			w.Rise = interpolateCrossing(samples[i-1].Time, samples[i].Time, prev, curr, thresholdDeg)
			riseFound = true
		}
		if !setFound && prev > thresholdDeg && curr <= thresholdDeg {
			w.Set = interpolateCrossing(samples[i-1].Time, samples[i].Time, prev, curr, thresholdDeg)
			setFound = true
		}
	}
	if !riseFound && !setFound {
		return VisibilityWindow{}, ErrNoValidWindow
	}

	w.Transit, w.MaxElevation = maxElevation(samples, elevations)
	w.Valid = true
	return w, nil
}

// SunRiseSet returns sunrise, transit and sunset for the UT day of date.
func SunRiseSet(obs Observer, date civil.Date) (VisibilityWindow, error) {
	start := civil.DateTime{Date: civil.Date{Year: date.Year, Month: date.Month, Day: math.Floor(date.Day)}}.UTC()

	samples, err := Track(start, 24*time.Hour, sampleStep, func(t time.Time) (Equatorial, error) {
		return SunEquatorialPosition(civil.FromInstant(t))
	})
	if err != nil {
		return VisibilityWindow{}, err
	}
	return RiseSet(obs, samples, SunElevation)
}

// StarRiseSet returns rise, transit and set of a fixed star for the UT day of
// date.
func StarRiseSet(obs Observer, star Star, date civil.Date) (VisibilityWindow, error) {
	start := civil.DateTime{Date: civil.Date{Year: date.Year, Month: date.Month, Day: math.Floor(date.Day)}}.UTC()
	pos := star.Equatorial()

	samples, err := Track(start, 24*time.Hour, sampleStep, func(time.Time) (Equatorial, error) {
		return pos, nil
	})
	if err != nil {
		return VisibilityWindow{}, err
	}
	return RiseSet(obs, samples, MinElevation)
}

// maxElevation finds the sample of highest elevation and refines it with a
// parabola through its neighbours.
func maxElevation(samples []Sample, elevations []float64) (time.Time, float64) {
	maxIdx := 0
	for i, el := range elevations {
		if el > elevations[maxIdx] {
			maxIdx = i
		}
	}

	// If we don't have three samples, return the discrete maximum
	if maxIdx == 0 || maxIdx == len(samples)-1 {
		return samples[maxIdx].Time, elevations[maxIdx]
	}

	// Parabola y = at² + bt + c through t = -1, 0, +1
	y0, y1, y2 := elevations[maxIdx-1], elevations[maxIdx], elevations[maxIdx+1]
	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2

	// Maximum at t = -b/(2a), but only if parabola opens downward (a < 0)
	if a >= 0 {
		return samples[maxIdx].Time, y1
	}

	tMax := math.Max(-1, math.Min(1, -b/(2*a)))

	dt := samples[maxIdx].Time.Sub(samples[maxIdx-1].Time)
	refined := samples[maxIdx].Time.Add(time.Duration(float64(dt) * tMax))

	return refined, a*tMax*tMax + b*tMax + c
}

// interpolateCrossing finds the time when elevation crosses a threshold.
func interpolateCrossing(t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	if math.Abs(el2-el1) < 0.0001 {
		return t1
	}

	// Linear interpolation: find t where el = threshold
	fraction := math.Max(0, math.Min(1, (threshold-el1)/(el2-el1)))

	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}

// ElevationTier categorizes elevation for UI display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // Below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// GetElevationTier returns the tier for a given elevation.
func GetElevationTier(elDeg float64) ElevationTier {
	switch {
	case elDeg <= 0:
		return ElevationNone
	case elDeg < 15:
		return ElevationLow
	case elDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
