package astro

import (
	"fmt"
	"sort"
	"time"

	"github.com/litescript/ls-almanac/internal/civil"
)

// PassStatus classifies a pass relative to current time.
type PassStatus int

const (
	PassPast   PassStatus = iota // Pass has ended
	PassNow                      // Currently in progress
	PassNext                     // Next upcoming pass
	PassFuture                   // Future pass (not next)
)

// String returns the status name.
func (s PassStatus) String() string {
	switch s {
	case PassPast:
		return "PAST"
	case PassNow:
		return "NOW"
	case PassNext:
		return "NEXT"
	case PassFuture:
		return "FUTURE"
	default:
		return "?"
	}
}

// MarshalText encodes the status by name.
func (s PassStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Pass is one interval during which a body stays above the threshold for a
// site.
type Pass struct {
	Site      string            `json:"site"`
	Start     time.Time         `json:"start"`
	Peak      time.Time         `json:"peak"`
	End       time.Time         `json:"end"`
	MaxElDeg  float64           `json:"max_elevation"`
	SunMinSep float64           `json:"sun_min_separation"`
	SunTier   SunSeparationTier `json:"sun_tier"`
	Status    PassStatus        `json:"status"`
}

// PassPlan holds the passes of one body over several sites, ordered by start.
type PassPlan struct {
	Body        string    `json:"body"`
	GeneratedAt time.Time `json:"generated_at"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Passes      []Pass    `json:"passes"`
}

// ComputePassPlan finds every pass of a body above thresholdDeg for each
// observer. Samples must be in chronological order.
func ComputePassPlan(body string, observers []Observer, samples []Sample, thresholdDeg float64, now time.Time) (*PassPlan, error) {
	plan := &PassPlan{Body: body, GeneratedAt: now}
	if len(samples) < 3 {
		return plan, nil
	}
	plan.WindowStart = samples[0].Time
	plan.WindowEnd = samples[len(samples)-1].Time

	// Sun separation does not depend on the site
	sunSep := make([]float64, len(samples))
	for i, s := range samples {
		sep, err := SunSeparation(s.Pos, civil.FromInstant(s.Time))
		if err != nil {
			return nil, fmt.Errorf("sun separation at %s: %w", s.Time.Format(time.RFC3339), err)
		}
		sunSep[i] = sep
	}

	for _, obs := range observers {
		plan.Passes = append(plan.Passes, passesForSite(obs, samples, sunSep, thresholdDeg)...)
	}

	sort.SliceStable(plan.Passes, func(i, j int) bool {
		return plan.Passes[i].Start.Before(plan.Passes[j].Start)
	})
	classifyPasses(plan.Passes, now)

	return plan, nil
}

// passesForSite finds the contiguous intervals above threshold for one site.
func passesForSite(obs Observer, samples []Sample, sunSep []float64, threshold float64) []Pass {
	elevations := make([]float64, len(samples))
	for i, s := range samples {
		elevations[i] = HorizonAt(s.Pos, obs, s.Time).Alt
	}

	var (
		passes  []Pass
		current Pass
		inPass  bool
	)
	for i, s := range samples {
		el := elevations[i]
		above := el >= threshold

		if !inPass && above {
			inPass = true
			current = Pass{Site: obs.Name, Start: s.Time, Peak: s.Time, MaxElDeg: el, SunMinSep: 360}
			if i > 0 {
				current.Start = interpolateCrossing(samples[i-1].Time, s.Time, elevations[i-1], el, threshold)
			}
		}
		if !inPass {
			continue
		}

		if !above {
			current.End = interpolateCrossing(samples[i-1].Time, s.Time, elevations[i-1], el, threshold)
			current.SunTier = SunSeparationTierFor(current.SunMinSep)
			passes = append(passes, current)
			inPass = false
			continue
		}

		if el > current.MaxElDeg {
			current.MaxElDeg = el
			current.Peak = s.Time
		}
		if sunSep[i] < current.SunMinSep {
			current.SunMinSep = sunSep[i]
		}
	}

	// Pass still open at the end of the window
	if inPass {
		current.End = samples[len(samples)-1].Time
		current.SunTier = SunSeparationTierFor(current.SunMinSep)
		passes = append(passes, current)
	}
	return passes
}

// classifyPasses assigns status to each pass based on current time.
func classifyPasses(passes []Pass, now time.Time) {
	foundNext := false
	for i := range passes {
		p := &passes[i]
		switch {
		case now.After(p.End):
			p.Status = PassPast
		case now.After(p.Start) && now.Before(p.End):
			p.Status = PassNow
		case !foundNext && now.Before(p.Start):
			p.Status = PassNext
			foundNext = true
		default:
			p.Status = PassFuture
		}
	}
}

// CurrentPass returns the pass currently in progress, or nil.
func (p *PassPlan) CurrentPass() *Pass {
	for i := range p.Passes {
		if p.Passes[i].Status == PassNow {
			return &p.Passes[i]
		}
	}
	return nil
}

// NextPass returns the next upcoming pass, or nil.
func (p *PassPlan) NextPass() *Pass {
	for i := range p.Passes {
		if p.Passes[i].Status == PassNext {
			return &p.Passes[i]
		}
	}
	return nil
}
