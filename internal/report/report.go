// Package report renders sky snapshots and almanac results as text tables and
// JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

// SkyExport is the JSON-serializable representation of a sky snapshot.
type SkyExport struct {
	Timestamp time.Time      `json:"timestamp"`
	Observer  ObserverExport `json:"observer"`
	JD        float64        `json:"jd"`
	GST       float64        `json:"gst_hours"`
	LST       float64        `json:"lst_hours"`
	DeltaT    float64        `json:"delta_t_seconds"`
	Bodies    []BodyExport   `json:"bodies"`
	Events    []state.Event  `json:"events,omitempty"`
}

// ObserverExport is a JSON-friendly observing site.
type ObserverExport struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// BodyExport is a JSON-friendly body position with formatted coordinates.
type BodyExport struct {
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	RAHours   float64 `json:"ra_hours"`
	DecDeg    float64 `json:"dec_deg"`
	RA        string  `json:"ra"`
	Dec       string  `json:"dec"`
	Altitude  float64 `json:"altitude"`
	Azimuth   float64 `json:"azimuth"`
	Magnitude float64 `json:"magnitude"`
	Up        bool    `json:"up"`
}

// ExportSky converts a snapshot to an exportable format.
func ExportSky(sky *state.Sky, events []state.Event) *SkyExport {
	if sky == nil {
		return &SkyExport{Events: events}
	}

	export := &SkyExport{
		Timestamp: sky.Time,
		Observer: ObserverExport{
			Name:      sky.Observer.Name,
			Latitude:  sky.Observer.LatDeg,
			Longitude: sky.Observer.LonDeg,
		},
		JD:     sky.JD,
		GST:    sky.GST,
		LST:    sky.LST,
		DeltaT: sky.DeltaT,
		Events: events,
	}
	for _, b := range sky.Bodies {
		export.Bodies = append(export.Bodies, BodyExport{
			Name:      b.Name,
			Kind:      string(b.Kind),
			RAHours:   b.Eq.RA,
			DecDeg:    b.Eq.Dec,
			RA:        FormatRA(b.Eq.RA),
			Dec:       FormatDec(b.Eq.Dec),
			Altitude:  b.Hz.Alt,
			Azimuth:   b.Hz.Az,
			Magnitude: b.Mag,
			Up:        b.Up(),
		})
	}
	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SkyExport) WriteJSON(w io.Writer) error {
	return WriteJSON(w, s)
}

// WriteJSON writes any value as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatRA renders right ascension in hours as sexagesimal hours.
func FormatRA(hours float64) string {
	return fmt.Sprintf("%.2d", sexa.FmtRA(unit.RAFromDeg(hours*15)))
}

// FormatDec renders an angle in degrees as signed sexagesimal degrees.
func FormatDec(deg float64) string {
	return fmt.Sprintf("%.1d", sexa.FmtAngle(unit.AngleFromDeg(deg)))
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Name string
	Kind string
	RA   string
	Dec  string
	Alt  float64
	Az   float64
	Mag  float64
	Up   bool
}

// GenerateSummaryRows creates summary rows from a snapshot, bodies above the
// horizon first.
func GenerateSummaryRows(sky *state.Sky) []SummaryRow {
	if sky == nil {
		return nil
	}

	var up, down []SummaryRow
	for _, b := range sky.Bodies {
		row := SummaryRow{
			Name: b.Name,
			Kind: string(b.Kind),
			RA:   b.Eq.RATime().String(),
			Dec:  b.Eq.DecAngle().String(),
			Alt:  b.Hz.Alt,
			Az:   b.Hz.Az,
			Mag:  b.Mag,
			Up:   b.Up(),
		}
		if row.Up {
			up = append(up, row)
		} else {
			down = append(down, row)
		}
	}
	return append(up, down...)
}

// WriteSummaryTable writes a text table of the snapshot to the given writer.
func WriteSummaryTable(w io.Writer, sky *state.Sky) {
	if sky == nil {
		fmt.Fprintln(w, "No sky data")
		return
	}

	fmt.Fprintf(w, "Sky @ %s  %s (%.4f, %.4f)\n",
		sky.Time.Format(time.RFC3339), sky.Observer.Name, sky.Observer.LatDeg, sky.Observer.LonDeg)
	fmt.Fprintf(w, "JD %.5f  GST %s  LST %s  ΔT %.1fs\n",
		sky.JD, FormatHours(sky.GST), FormatHours(sky.LST), sky.DeltaT)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	rows := GenerateSummaryRows(sky)
	if len(rows) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	// Header
	fmt.Fprintf(w, "%-14s %-5s %-12s %-14s %7s %7s %6s\n",
		"Body", "Kind", "RA", "Dec", "Alt", "Az", "Mag")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	visible := 0
	for _, r := range rows {
		if r.Up {
			visible++
		}
		fmt.Fprintf(w, "%-14s %-5s %-12s %-14s %7.2f %7.2f %6.2f\n",
			truncateStr(r.Name, 14),
			r.Kind,
			r.RA,
			r.Dec,
			r.Alt,
			r.Az,
			r.Mag,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies, %d above the horizon\n", len(rows), visible)
}

// WriteRiseSet writes a rise/transit/set summary for one body.
func WriteRiseSet(w io.Writer, body string, window astro.VisibilityWindow) {
	fmt.Fprintf(w, "%s\n", body)
	fmt.Fprintln(w, strings.Repeat("─", 40))

	switch {
	case !window.Valid:
		fmt.Fprintln(w, "No rise/set data")
		return
	case window.AlwaysVisible:
		fmt.Fprintln(w, "Circumpolar: above the horizon all day")
	case window.NeverVisible:
		fmt.Fprintln(w, "Below the horizon all day")
	}

	fmt.Fprintf(w, "%-10s %s\n", "Rise", formatEventTime(window.Rise))
	fmt.Fprintf(w, "%-10s %s\n", "Transit", formatEventTime(window.Transit))
	fmt.Fprintf(w, "%-10s %s\n", "Set", formatEventTime(window.Set))
	fmt.Fprintf(w, "%-10s %.2f°\n", "Max alt", window.MaxElevation)
}

// WritePasses writes one line per pass with its status and timings.
func WritePasses(w io.Writer, plan *astro.PassPlan) {
	if plan == nil || len(plan.Passes) == 0 {
		fmt.Fprintln(w, "No passes")
		return
	}

	fmt.Fprintf(w, "%s passes  %s – %s\n", plan.Body,
		plan.WindowStart.UTC().Format(time.RFC3339), plan.WindowEnd.UTC().Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 78))
	fmt.Fprintf(w, "%-6s %-14s %-11s %-11s %-11s %7s %7s %s\n",
		"Status", "Site", "Start", "Peak", "End", "MaxAlt", "SunSep", "Sun")
	fmt.Fprintln(w, strings.Repeat("─", 78))
	for _, p := range plan.Passes {
		fmt.Fprintf(w, "%-6s %-14s %-11s %-11s %-11s %7.2f %7.1f %s\n",
			p.Status,
			truncateStr(p.Site, 14),
			formatEventTime(p.Start),
			formatEventTime(p.Peak),
			formatEventTime(p.End),
			p.MaxElDeg,
			p.SunMinSep,
			p.SunTier,
		)
	}

	fmt.Fprintln(w)
	if cur := plan.CurrentPass(); cur != nil {
		fmt.Fprintf(w, "Up now from %s until %s\n", cur.Site, formatEventTime(cur.End))
	}
	if next := plan.NextPass(); next != nil {
		fmt.Fprintf(w, "Next: %s at %s\n", next.Site, formatEventTime(next.Start))
	} else {
		fmt.Fprintln(w, "Next: none in window")
	}
}

// Field is one labelled value in a key/value listing.
type Field struct {
	Label string
	Value string
}

// WriteFields writes aligned "label  value" lines.
func WriteFields(w io.Writer, fields []Field) {
	width := 0
	for _, f := range fields {
		if len(f.Label) > width {
			width = len(f.Label)
		}
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%-*s  %s\n", width, f.Label, f.Value)
	}
}

// WriteEvents writes one line per event.
func WriteEvents(w io.Writer, events []state.Event) {
	for _, e := range events {
		if e.Type == state.EventObserverChanged {
			fmt.Fprintf(w, "%s %-8s %s\n", e.Timestamp.Format(time.TimeOnly), e.Type, e.Body)
			continue
		}
		fmt.Fprintf(w, "%s %-8s %-14s alt %6.2f az %6.2f\n",
			e.Timestamp.Format(time.TimeOnly), e.Type, e.Body, e.Alt, e.Az)
	}
}

// FormatHours formats a decimal hour value as HH:MM:SS.
func FormatHours(h float64) string {
	return astro.Equatorial{RA: h}.RATime().String()
}

func formatEventTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.UTC().Format("15:04:05") + " UT"
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
