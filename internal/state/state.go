// Package state provides thread-safe state management for the application.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/civil"
	"github.com/litescript/ls-almanac/internal/sidereal"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventRise            EventType = "RISE"
	EventSet             EventType = "SET"
	EventObserverChanged EventType = "OBSERVER"
)

// Event represents a change in the observed sky between two snapshots.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body,omitempty"`
	Alt       float64   `json:"alt,omitempty"`
	Az        float64   `json:"az,omitempty"`
}

// BodyKind classifies the bodies in a snapshot.
type BodyKind string

const (
	KindSun  BodyKind = "sun"
	KindMoon BodyKind = "moon"
	KindStar BodyKind = "star"
)

// BodyPosition is one body's place in the sky at the snapshot instant.
type BodyPosition struct {
	Name string
	Kind BodyKind
	Eq   astro.Equatorial
	Hz   astro.Horizon
	Mag  float64
	Tier astro.ElevationTier
}

// Threshold returns the altitude at which the body is considered risen.
func (b BodyPosition) Threshold() float64 {
	if b.Kind == KindSun {
		return astro.SunElevation
	}
	return astro.MinElevation
}

// Up reports whether the body is above its rise threshold.
func (b BodyPosition) Up() bool {
	return b.Hz.Alt > b.Threshold()
}

// Sky is a computed snapshot of the sky for one observer and instant.
type Sky struct {
	Time     time.Time
	UT       civil.DateTime
	JD       float64
	GST      float64 // hours
	LST      float64 // hours
	DeltaT   float64 // seconds
	Observer astro.Observer
	Bodies   []BodyPosition
}

// Body returns the named body, if present.
func (s *Sky) Body(name string) (BodyPosition, bool) {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return BodyPosition{}, false
}

// ComputeSky evaluates the Sun, the Moon and the given stars for obs at.
func ComputeSky(obs astro.Observer, at time.Time, stars []astro.Star) (*Sky, error) {
	at = at.UTC()
	ut := civil.FromInstant(at)
	lng, dir := obs.Longitude()
	gst := sidereal.GSTHours(ut)

	sky := &Sky{
		Time:     at,
		UT:       ut,
		JD:       ut.JulianDay(),
		GST:      gst,
		LST:      sidereal.LSTHours(gst, lng, dir),
		DeltaT:   sidereal.DeltaT(ut.Date),
		Observer: obs,
	}

	sun, err := astro.SunEquatorialPosition(ut)
	if err != nil {
		return nil, fmt.Errorf("sun position: %w", err)
	}
	sky.add(BodyPosition{Name: "Sun", Kind: KindSun, Eq: sun, Mag: -26.74})

	moon, err := astro.MoonEquatorialPosition(ut)
	if err != nil {
		return nil, fmt.Errorf("moon position: %w", err)
	}
	sky.add(BodyPosition{Name: "Moon", Kind: KindMoon, Eq: moon, Mag: -12.7})

	for _, st := range stars {
		sky.add(BodyPosition{Name: st.Name, Kind: KindStar, Eq: st.Equatorial(), Mag: st.Mag})
	}

	return sky, nil
}

func (s *Sky) add(b BodyPosition) {
	b.Hz = astro.HorizonAt(b.Eq, s.Observer, s.Time)
	b.Tier = astro.GetElevationTier(b.Hz.Alt)
	s.Bodies = append(s.Bodies, b)
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current         *Sky
	lastUpdate      time.Time
	lastError       error
	computeDuration time.Duration

	// Previous altitudes for rise/set detection
	prevAlt map[string]float64

	// Sun altitude history
	sunHistory    []TimeSeries
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	observer        astro.Observer
	starLimit       int
	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	Observer        astro.Observer
	StarLimit       int
	MaxHistoryLen   int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Observer:        astro.Observer{Name: "Greenwich", LatDeg: 51.4769, LonDeg: 0},
		StarLimit:       15,
		MaxHistoryLen:   144, // one day at 10-minute refreshes
		MaxEvents:       50,
		RefreshInterval: time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	return &Manager{
		maxHistoryLen:   cfg.MaxHistoryLen,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		observer:        cfg.Observer,
		starLimit:       cfg.StarLimit,
		prevAlt:         make(map[string]float64),
	}
}

// Refresh computes a new sky for the configured observer at the given
// instant and stores it.
func (m *Manager) Refresh(at time.Time) (*Sky, error) {
	m.mu.RLock()
	obs := m.observer
	limit := m.starLimit
	m.mu.RUnlock()

	start := time.Now()
	sky, err := ComputeSky(obs, at, astro.DefaultStarCatalog().Brightest(limit))
	m.Update(sky, time.Since(start), err)
	return sky, err
}

// Update atomically updates the state with a new sky snapshot.
func (m *Manager) Update(sky *Sky, computeDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastUpdate = time.Now()
	m.lastError = err
	m.computeDuration = computeDuration

	if sky == nil {
		return
	}

	// Snapshots computed for a stale observer are dropped
	if sky.Observer != m.observer {
		return
	}

	m.detectEvents(sky)
	m.current = sky

	if sun, ok := sky.Body("Sun"); ok && m.maxHistoryLen > 0 {
		m.sunHistory = append(m.sunHistory, TimeSeries{Timestamp: sky.Time, Value: sun.Hz.Alt})
		if len(m.sunHistory) > m.maxHistoryLen {
			m.sunHistory = m.sunHistory[1:]
		}
	}

	m.prevAlt = make(map[string]float64, len(sky.Bodies))
	for _, b := range sky.Bodies {
		m.prevAlt[b.Name] = b.Hz.Alt
	}
}

// detectEvents compares the new sky with the previous altitudes and records
// threshold crossings.
func (m *Manager) detectEvents(sky *Sky) {
	for _, b := range sky.Bodies {
		prev, ok := m.prevAlt[b.Name]
		if !ok {
			continue
		}
		threshold := b.Threshold()

		var typ EventType
		switch {
		case prev <= threshold && b.Hz.Alt > threshold:
			typ = EventRise
		case prev > threshold && b.Hz.Alt <= threshold:
			typ = EventSet
		default:
			continue
		}
		m.addEvent(Event{
			Type:      typ,
			Timestamp: sky.Time,
			Body:      b.Name,
			Alt:       b.Hz.Alt,
			Az:        b.Hz.Az,
		})
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// SetObserver switches the observing site. Altitude history is discarded so
// the change itself does not produce rise or set events.
func (m *Manager) SetObserver(obs astro.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obs == m.observer {
		return
	}
	m.observer = obs
	m.current = nil
	m.sunHistory = nil
	m.prevAlt = make(map[string]float64)
	m.addEvent(Event{
		Type:      EventObserverChanged,
		Timestamp: time.Now().UTC(),
		Body:      obs.Name,
	})
}

// Observer returns the configured observing site.
func (m *Manager) Observer() astro.Observer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.observer
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Sky             *Sky
	Observer        astro.Observer
	LastUpdate      time.Time
	LastError       error
	ComputeDuration time.Duration
	SunHistory      []TimeSeries
	Events          []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hist := make([]TimeSeries, len(m.sunHistory))
	copy(hist, m.sunHistory)

	return Snapshot{
		Sky:             m.current,
		Observer:        m.observer,
		LastUpdate:      m.lastUpdate,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
		SunHistory:      hist,
		Events:          m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		result[i] = m.events[(m.eventWriteAt+i)%m.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events. n <= 0 returns nil.
func (m *Manager) RecentEvents(n int) []Event {
	if n <= 0 {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// SetStarLimit changes how many of the brightest stars each refresh includes.
func (m *Manager) SetStarLimit(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starLimit = n
}

// HasData returns true if we have received at least one snapshot.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}
