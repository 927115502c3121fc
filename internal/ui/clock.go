package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/civil"
	"github.com/litescript/ls-almanac/internal/report"
	"github.com/litescript/ls-almanac/internal/state"
)

// Styles for the clock view
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	belowRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("60"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// SparklineWidth is the fixed width of the Sun altitude sparkline.
const SparklineWidth = 48

// sparklineBlocks are the Unicode block characters for sparkline (0 = lowest, 7 = highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// ClockModel shows the time scales and a table of body positions.
type ClockModel struct {
	width    int
	height   int
	cursor   int
	zone     float64
	keys     KeyMap
	snapshot state.Snapshot
	lastErr  error
}

// NewClockModel creates a clock view showing local time zone hours east of UT.
func NewClockModel(zone float64) ClockModel {
	return ClockModel{zone: zone, keys: DefaultKeyMap()}
}

// SetSize updates the viewport size.
func (m ClockModel) SetSize(width, height int) ClockModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new snapshot.
func (m ClockModel) UpdateData(snapshot state.Snapshot) ClockModel {
	m.snapshot = snapshot
	m.lastErr = snapshot.LastError
	if n := m.bodyCount(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	return m
}

// SetError sets the last error for display.
func (m ClockModel) SetError(err error) ClockModel {
	m.lastErr = err
	return m
}

func (m ClockModel) bodyCount() int {
	return len(report.GenerateSummaryRows(m.snapshot.Sky))
}

// Update handles messages.
func (m ClockModel) Update(msg tea.Msg) (ClockModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.bodyCount()-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

// View renders the clock view.
func (m ClockModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	sky := m.snapshot.Sky
	if sky == nil {
		b.WriteString("Computing sky...\n")
		return b.String()
	}

	b.WriteString(m.renderTimeScales(sky))
	b.WriteString("\n")
	b.WriteString(m.renderBodiesTable(sky))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Sun altitude"))
	b.WriteString("\n  ")
	b.WriteString(renderAltitudeSparkline(m.snapshot.SunHistory))
	b.WriteString("\n")

	if events := m.snapshot.Events; len(events) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Recent events"))
		b.WriteString("\n")
		var eb strings.Builder
		if len(events) > 5 {
			events = events[len(events)-5:]
		}
		report.WriteEvents(&eb, events)
		for _, line := range strings.Split(strings.TrimRight(eb.String(), "\n"), "\n") {
			b.WriteString("  " + rowStyle.Render(line) + "\n")
		}
	}

	return b.String()
}

func (m ClockModel) renderTimeScales(sky *state.Sky) string {
	var b strings.Builder

	obs := sky.Observer
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %.4f°, %.4f°", obs.Name, obs.LatDeg, obs.LonDeg)))
	b.WriteString("\n")

	local := civil.LocalFromUT(sky.UT, m.zone)
	fields := []struct {
		label string
		value string
	}{
		{"UT", sky.UT.String()},
		{fmt.Sprintf("Local (%+g h)", m.zone), local.String()},
		{"Julian Day", fmt.Sprintf("%.5f", sky.JD)},
		{"GST", report.FormatHours(sky.GST)},
		{"LST", report.FormatHours(sky.LST)},
		{"ΔT", fmt.Sprintf("%.1f s", sky.DeltaT)},
	}
	for _, f := range fields {
		b.WriteString("  " + labelStyle.Render(fmt.Sprintf("%-14s", f.label)) + " " + rowStyle.Render(f.value) + "\n")
	}
	return b.String()
}

func (m ClockModel) renderBodiesTable(sky *state.Sky) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Bodies"))
	b.WriteString("\n")

	header := fmt.Sprintf("%-14s %-12s %-14s %7s %7s %6s",
		"Body", "RA", "Dec", "Alt", "Az", "Mag")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	rows := report.GenerateSummaryRows(sky)

	// Calculate visible rows based on height
	maxRows := m.height - 18
	if maxRows < 5 {
		maxRows = 5
	}
	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := min(startIdx+maxRows, len(rows))

	for i := startIdx; i < endIdx; i++ {
		r := rows[i]
		line := fmt.Sprintf("%-14s %-12s %-14s %7.2f %7.2f %6.2f",
			truncate(r.Name, 14), r.RA, r.Dec, r.Alt, r.Az, r.Mag)

		switch {
		case i == m.cursor:
			b.WriteString(selectedRowStyle.Render(line))
		case r.Up:
			b.WriteString(rowStyle.Render(line))
		default:
			b.WriteString(belowRowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(rows) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d bodies\n", startIdx+1, endIdx, len(rows)))
	}

	return b.String()
}

// renderAltitudeSparkline draws the altitude history from -90° to +90°,
// using the most recent SparklineWidth points.
func renderAltitudeSparkline(history []state.TimeSeries) string {
	if len(history) == 0 {
		return labelStyle.Render("No history yet")
	}
	if len(history) > SparklineWidth {
		history = history[len(history)-SparklineWidth:]
	}

	var sb strings.Builder
	for _, p := range history {
		sb.WriteRune(sparklineBlock(p.Value))
	}

	last := history[len(history)-1]
	sb.WriteString(labelStyle.Render(fmt.Sprintf(" now: %.1f° @ %s", last.Value, last.Timestamp.UTC().Format(time.TimeOnly))))
	return sb.String()
}

// sparklineBlock maps an altitude in degrees to a block character.
func sparklineBlock(alt float64) rune {
	t := (alt + 90) / 180
	idx := int(t * float64(len(sparklineBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sparklineBlocks) {
		idx = len(sparklineBlocks) - 1
	}
	return sparklineBlocks[idx]
}

// SelectedBody returns the name of the highlighted row, if any.
func (m ClockModel) SelectedBody() string {
	rows := report.GenerateSummaryRows(m.snapshot.Sky)
	if m.cursor < 0 || m.cursor >= len(rows) {
		return ""
	}
	return rows[m.cursor].Name
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
