// Package schedule builds cron schedules for the watch command, including
// schedules that fire at sunrise or sunset for an observer.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/civil"
)

const (
	sunrisePrefix = "@sunrise"
	sunsetPrefix  = "@sunset"

	// searchDays bounds the look-ahead for polar summers and winters.
	searchDays = 7
)

// SolarEvent selects which crossing a Solar schedule fires on.
type SolarEvent int

const (
	Sunrise SolarEvent = iota
	Sunset
)

func (e SolarEvent) String() string {
	if e == Sunset {
		return "sunset"
	}
	return "sunrise"
}

// Solar fires at sunrise or sunset for an observer, shifted by Offset.
//
// This implements robfig/cron.Schedule
type Solar struct {
	Observer astro.Observer
	Event    SolarEvent
	Offset   time.Duration
}

// Next returns the first solar event after now. It returns the zero time when
// the Sun neither rises nor sets within a week, which cron reads as never.
func (s Solar) Next(now time.Time) time.Time {
	day := now.UTC()
	for i := 0; i < searchDays; i++ {
		if at, ok := s.on(day.AddDate(0, 0, i)); ok && at.After(now) {
			return at
		}
	}
	return time.Time{}
}

func (s Solar) on(day time.Time) (time.Time, bool) {
	w, err := astro.SunRiseSet(s.Observer, civil.FromInstant(day).Date)
	if err != nil || !w.Valid {
		return time.Time{}, false
	}

	at := w.Rise
	if s.Event == Sunset {
		at = w.Set
	}
	if at.IsZero() {
		return time.Time{}, false
	}
	return at.Add(s.Offset), true
}

// Parse reads a standard five-field cron expression, a descriptor such as
// @every 1m, or "@sunrise [offset]" / "@sunset [offset]" for the observer.
func Parse(spec string, obs astro.Observer) (cron.Schedule, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty schedule")
	}

	var event SolarEvent
	switch fields[0] {
	case sunrisePrefix:
		event = Sunrise
	case sunsetPrefix:
		event = Sunset
	default:
		sched, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
		}
		return sched, nil
	}

	var offset time.Duration
	switch len(fields) {
	case 1:
	case 2:
		d, err := time.ParseDuration(fields[1])
		if err != nil {
			return nil, fmt.Errorf("parse %s offset: %w", event, err)
		}
		offset = d
	default:
		return nil, fmt.Errorf("parse schedule %q: too many fields", spec)
	}

	return Solar{Observer: obs, Event: event, Offset: offset}, nil
}
