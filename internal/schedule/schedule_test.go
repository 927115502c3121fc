package schedule

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-almanac/internal/astro"
)

var london = astro.Observer{Name: "London", LatDeg: 51.5074, LonDeg: -0.1278}

func TestSolar_NextSunrise(t *testing.T) {
	s := Solar{Observer: london, Event: Sunrise}
	now := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)

	next := s.Next(now)
	require.False(t, next.IsZero())
	assert.Equal(t, 21, next.Day())
	assert.InDelta(t, 3*60+43, next.Hour()*60+next.Minute(), 3)
}

func TestSolar_RollsToNextDay(t *testing.T) {
	s := Solar{Observer: london, Event: Sunset}
	now := time.Date(2024, 6, 21, 22, 0, 0, 0, time.UTC)

	next := s.Next(now)
	require.False(t, next.IsZero())
	assert.Equal(t, 22, next.Day())
	assert.True(t, next.After(now))
}

func TestSolar_Offset(t *testing.T) {
	now := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	base := Solar{Observer: london, Event: Sunset}.Next(now)
	shifted := Solar{Observer: london, Event: Sunset, Offset: -30 * time.Minute}.Next(now)

	assert.Equal(t, -30*time.Minute, shifted.Sub(base))
}

func TestSolar_PolarDayNeverFires(t *testing.T) {
	svalbard := astro.Observer{Name: "Longyearbyen", LatDeg: 78.22, LonDeg: 15.65}
	s := Solar{Observer: svalbard, Event: Sunset}

	assert.True(t, s.Next(time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)).IsZero())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		spec   string
		event  SolarEvent
		offset time.Duration
		solar  bool
	}{
		{"sunrise", "@sunrise", Sunrise, 0, true},
		{"sunset with offset", "@sunset -15m", Sunset, -15 * time.Minute, true},
		{"cron expression", "*/5 * * * *", 0, 0, false},
		{"descriptor", "@every 30s", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched, err := Parse(tt.spec, london)
			require.NoError(t, err)

			solar, ok := sched.(Solar)
			assert.Equal(t, tt.solar, ok)
			if ok {
				assert.Equal(t, tt.event, solar.Event)
				assert.Equal(t, tt.offset, solar.Offset)
				assert.Equal(t, london, solar.Observer)
			}
		})
	}
}

func TestParse_Every(t *testing.T) {
	sched, err := Parse("@every 30s", london)
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now.Add(30*time.Second), sched.Next(now))
	_, ok := sched.(cron.ConstantDelaySchedule)
	assert.True(t, ok)
}

func TestParse_Invalid(t *testing.T) {
	for _, spec := range []string{"", "@sunset soon", "@sunrise 1m 2m", "not a schedule"} {
		_, err := Parse(spec, london)
		assert.Error(t, err, "spec %q", spec)
	}
}
