// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewClock ViewMode = iota
	ViewSky
)

const viewCount = 2

// Msg types for Bubble Tea
type (
	// TickMsg triggers a sky refresh.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals a new sky snapshot is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a failed sky computation.
	ErrorMsg struct {
		Error error
	}

	// ObserverChangedMsg switches the observing site, e.g. after a config
	// reload.
	ObserverChangedMsg struct {
		Observer astro.Observer
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager
	keys  KeyMap

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	// Sub-models
	clock ClockModel
	sky   SkyViewModel

	snapshot state.Snapshot
}

// New creates a new root UI model. zone is the local time zone in hours east
// of UT.
func New(stateMgr *state.Manager, zone float64) Model {
	return Model{
		state:    stateMgr,
		keys:     DefaultKeyMap(),
		viewMode: ViewClock,
		clock:    NewClockModel(zone),
		sky:      NewSkyViewModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		refreshCmd(m.state),
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clock):
			m.viewMode = ViewClock
		case key.Matches(msg, m.keys.Sky):
			m.viewMode = ViewSky
		case key.Matches(msg, m.keys.Tab):
			m.viewMode = (m.viewMode + 1) % viewCount
		case key.Matches(msg, m.keys.Refresh):
			cmds = append(cmds, refreshCmd(m.state))
		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Title takes 3 lines, footer 2
		contentHeight := msg.Height - 6
		m.clock = m.clock.SetSize(msg.Width, contentHeight)
		m.sky = m.sky.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, refreshCmd(m.state))

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		m.clock = m.clock.UpdateData(m.snapshot)
		m.sky = m.sky.UpdateData(m.snapshot)
		cmds = append(cmds, tickCmd(m.state.RefreshInterval()))

	case ErrorMsg:
		m.clock = m.clock.SetError(msg.Error)
		cmds = append(cmds, tickCmd(m.state.RefreshInterval()))

	case ObserverChangedMsg:
		m.state.SetObserver(msg.Observer)
		cmds = append(cmds, refreshCmd(m.state))

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewClock:
		m.clock, cmd = m.clock.Update(msg)
	case ViewSky:
		m.sky, cmd = m.sky.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewClock:
		content = m.clock.View()
	case ViewSky:
		content = m.sky.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	var b strings.Builder

	title := fmt.Sprintf("  ls-almanac v%s", version.Version)
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(gradientColor(col, len(runes))))
		b.WriteString(style.Render(string(r)))
	}
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex colour for a column of the title gradient:
// blue -> purple -> magenta -> pink.
func gradientColor(col, width int) string {
	x := float64(col) / float64(max(width, 1))

	var r, g, b float64
	switch {
	case x < 0.33:
		t := x / 0.33
		r, g, b = 59+t*(139-59), 130+t*(92-130), 246
	case x < 0.66:
		t := (x - 0.33) / 0.33
		r, g, b = 139+t*(217-139), 92+t*(70-92), 246+t*(239-246)
	default:
		t := min((x-0.66)/0.34, 1)
		r, g, b = 217+t*(236-217), 70+t*(72-70), 239+t*(153-239)
	}

	return fmt.Sprintf("#%02X%02X%02X", int(r), int(g), int(b))
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Clock", "[2] Sky"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case m.snapshot.Sky != nil:
		status = accentStyle.Render(spinner) + dimStyle.Render(" "+m.snapshot.Observer.Name)
		if m.snapshot.ComputeDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.ComputeDuration.Round(time.Microsecond).String() + ")")
		}
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" Computing...")
	}

	var help string
	switch m.viewMode {
	case ViewSky:
		help = helpLine(m.keys.Up, m.keys.Down, m.keys.Labels, m.keys.Tab, m.keys.Quit)
	default:
		help = helpLine(m.keys.Up, m.keys.Down, m.keys.Refresh, m.keys.Tab, m.keys.Quit)
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
}

// refreshCmd recomputes the sky at the current instant.
func refreshCmd(mgr *state.Manager) tea.Cmd {
	return func() tea.Msg {
		if _, err := mgr.Refresh(time.Now()); err != nil {
			return ErrorMsg{Error: err}
		}
		return DataUpdateMsg{Snapshot: mgr.Snapshot()}
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendObserver creates a command that switches the observing site.
func SendObserver(obs astro.Observer) tea.Cmd {
	return func() tea.Msg {
		return ObserverChangedMsg{Observer: obs}
	}
}
