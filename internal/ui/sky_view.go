package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/state"
)

const (
	// Field of view in degrees
	fovAz = 120.0 // horizontal FOV
	fovEl = 60.0  // vertical FOV

	// Animation
	animDuration  = 400 * time.Millisecond
	animFrameRate = 30 * time.Millisecond

	glyphSun       = '☉'
	glyphMoon      = '☾'
	glyphFocused   = '◆'
	colorSun       = "220"
	colorMoon      = "252"
	colorFocused   = "229" // bright gold
	colorLabel     = "#d0c8ff"
	colorHorizon   = "60"
	colorBlankSky  = "236"
	colorCardinals = "252"

	// Star glyphs by magnitude
	glyphStarBright = '✶' // mag < 1.5
	glyphStarMedium = '✸' // mag 1.5-3.0
	glyphStarDim    = '·' // mag 3.0+
	colorStarBright = "255"
	colorStarMedium = "250"
	colorStarDim    = "244"
)

// LabelMode controls how body labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only focused body
	LabelAll                      // All bodies
)

// SkyViewModel renders the visible part of the sky around a camera direction.
type SkyViewModel struct {
	width  int
	height int
	keys   KeyMap

	// Camera position (center of view)
	camAz float64
	camEl float64

	// Animation state
	animating   bool
	animStartAz float64
	animStartEl float64
	animTargAz  float64
	animTargEl  float64
	animStart   time.Time

	// Focus cycles through bodies above the horizon
	focusIdx int
	visible  []state.BodyPosition

	labelMode LabelMode
}

// NewSkyViewModel creates a new sky view model looking south.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{
		camAz:     180,
		camEl:     30,
		keys:      DefaultKeyMap(),
		labelMode: LabelFocused,
	}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with new data snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	var focused string
	if f, ok := m.Focused(); ok {
		focused = f.Name
	}

	var visible []state.BodyPosition
	if snapshot.Sky != nil {
		for _, b := range snapshot.Sky.Bodies {
			if b.Hz.Alt > 0 {
				visible = append(visible, b)
			}
		}
	}
	m.visible = visible

	// Keep focus on the same body when it is still up
	m.focusIdx = 0
	for i, b := range m.visible {
		if b.Name == focused {
			m.focusIdx = i
			break
		}
	}

	if !m.animating {
		if f, ok := m.Focused(); ok {
			m.camAz = f.Hz.Az
			m.camEl = f.Hz.Alt
		}
	}
	return m
}

// Focused returns the focused body.
func (m SkyViewModel) Focused() (state.BodyPosition, bool) {
	if m.focusIdx < 0 || m.focusIdx >= len(m.visible) {
		return state.BodyPosition{}, false
	}
	return m.visible[m.focusIdx], true
}

// animTickMsg is sent during animation
type animTickMsg time.Time

func animTick() tea.Cmd {
	return tea.Tick(animFrameRate, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			return m.focusPrev()
		case key.Matches(msg, m.keys.Down):
			return m.focusNext()
		case key.Matches(msg, m.keys.Labels):
			m.labelMode = (m.labelMode + 1) % 3
		}

	case animTickMsg:
		if m.animating {
			return m.updateAnimation()
		}
	}

	return m, nil
}

func (m SkyViewModel) focusNext() (SkyViewModel, tea.Cmd) {
	if len(m.visible) == 0 {
		return m, nil
	}
	m.focusIdx = (m.focusIdx + 1) % len(m.visible)
	return m.startAnimation()
}

func (m SkyViewModel) focusPrev() (SkyViewModel, tea.Cmd) {
	if len(m.visible) == 0 {
		return m, nil
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(m.visible) - 1
	}
	return m.startAnimation()
}

func (m SkyViewModel) startAnimation() (SkyViewModel, tea.Cmd) {
	f, ok := m.Focused()
	if !ok {
		return m, nil
	}

	m.animating = true
	m.animStartAz = m.camAz
	m.animStartEl = m.camEl
	m.animTargAz = f.Hz.Az
	m.animTargEl = f.Hz.Alt
	m.animStart = time.Now()

	return m, animTick()
}

func (m SkyViewModel) updateAnimation() (SkyViewModel, tea.Cmd) {
	t := float64(time.Since(m.animStart)) / float64(animDuration)

	if t >= 1.0 {
		m.animating = false
		m.camAz = m.animTargAz
		m.camEl = m.animTargEl
		return m, nil
	}

	// Ease-out cubic
	t = 1 - math.Pow(1-t, 3)

	m.camAz = lerpAngle(m.animStartAz, m.animTargAz, t)
	m.camEl = lerp(m.animStartEl, m.animTargEl, t)

	return m, animTick()
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas(m.width, m.height-4))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorHorizon))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorLabel))

	var labelStr string
	switch m.labelMode {
	case LabelNone:
		labelStr = dimStyle.Render("Labels: off")
	case LabelFocused:
		labelStr = accentStyle.Render("Labels: focus")
	case LabelAll:
		labelStr = accentStyle.Render("Labels: all")
	}

	compass := dimStyle.Render(fmt.Sprintf("Az:%.0f° El:%.0f°", m.camAz, m.camEl))
	up := dimStyle.Render(fmt.Sprintf("%d above horizon", len(m.visible)))

	return fmt.Sprintf("%s | %s | %s | %s", titleStyle.Render("Sky View"), labelStr, compass, up)
}

func (m SkyViewModel) renderStatus() string {
	f, ok := m.Focused()
	if !ok {
		return "Nothing above the horizon"
	}

	line := fmt.Sprintf(">>> %s | Az:%.1f° Alt:%.1f° | mag %.2f",
		f.Name, f.Hz.Az, f.Hz.Alt, f.Mag)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorFocused)).Render(line)
}

// bodyPos tracks a plotted body for label rendering.
type bodyPos struct {
	x, y      int
	name      string
	isFocused bool
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = colorBlankSky
		}
	}

	horizonY := height - 2
	for x := 0; x < width; x++ {
		canvas[horizonY][x] = '─'
		colors[horizonY][x] = colorHorizon
	}
	for _, c := range []struct {
		label string
		az    float64
	}{{"N", 0}, {"E", 90}, {"S", 180}, {"W", 270}} {
		if x, _, ok := m.projectToScreen(c.az, 0, width, height); ok && x >= 0 && x < width {
			canvas[horizonY][x] = rune(c.label[0])
			colors[horizonY][x] = colorCardinals
		}
	}

	var positions []bodyPos
	for i, body := range m.visible {
		x, y, ok := m.projectToScreen(body.Hz.Az, body.Hz.Alt, width, height)
		if !ok || x < 0 || x >= width || y < 0 || y >= horizonY {
			continue
		}

		glyph, color := bodyGlyph(body)
		focused := i == m.focusIdx
		if focused && body.Kind == state.KindStar {
			glyph, color = glyphFocused, colorFocused
		}
		canvas[y][x] = glyph
		colors[y][x] = color
		positions = append(positions, bodyPos{x: x, y: y, name: body.Name, isFocused: focused})
	}

	m.renderLabels(canvas, colors, width, horizonY, positions)

	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.WriteString(lipgloss.NewStyle().Foreground(colors[y][x]).Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderLabels writes labels to the right of each glyph. The focused label
// is drawn last so it wins where labels overlap.
func (m SkyViewModel) renderLabels(canvas [][]rune, colors [][]lipgloss.Color, width, horizonY int, positions []bodyPos) {
	if m.labelMode == LabelNone {
		return
	}

	draw := func(p bodyPos) {
		text := p.name
		color := lipgloss.Color(colorLabel)
		if p.isFocused {
			text = "◄ " + p.name
			color = colorFocused
		}
		for i, r := range []rune(text) {
			x := p.x + 2 + i
			if x >= width || p.y >= horizonY {
				break
			}
			canvas[p.y][x] = r
			colors[p.y][x] = color
		}
	}

	if m.labelMode == LabelAll {
		for _, p := range positions {
			if !p.isFocused {
				draw(p)
			}
		}
	}
	for _, p := range positions {
		if p.isFocused {
			draw(p)
		}
	}
}

// bodyGlyph returns the glyph and colour for a body.
func bodyGlyph(b state.BodyPosition) (rune, lipgloss.Color) {
	switch b.Kind {
	case state.KindSun:
		return glyphSun, colorSun
	case state.KindMoon:
		return glyphMoon, colorMoon
	}
	return starGlyph(b.Mag)
}

// starGlyph returns the glyph and color for a star based on its magnitude.
func starGlyph(mag float64) (rune, lipgloss.Color) {
	switch {
	case mag < 1.5:
		return glyphStarBright, colorStarBright
	case mag < 3.0:
		return glyphStarMedium, colorStarMedium
	default:
		return glyphStarDim, colorStarDim
	}
}

// projectToScreen converts az/el to screen coordinates relative to camera
func (m SkyViewModel) projectToScreen(az, el float64, width, height int) (int, int, bool) {
	dAz := normalizeAngle(az - m.camAz)
	dEl := el - m.camEl

	if dAz < -fovAz/2 || dAz > fovAz/2 {
		return 0, 0, false
	}
	if dEl < -fovEl/2 || dEl > fovEl/2 {
		return 0, 0, false
	}

	// X: -fovAz/2..+fovAz/2 -> 0..width
	// Y: +fovEl/2..-fovEl/2 -> 0..horizon row
	horizonY := height - 2

	x := int((dAz + fovAz/2) / fovAz * float64(width))
	y := int((fovEl/2 - dEl) / fovEl * float64(horizonY))

	return x, y, true
}

// normalizeAngle wraps angle to -180..+180 range
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a > 180 {
		a -= 360
	}
	if a < -180 {
		a += 360
	}
	return a
}

// lerpAngle interpolates between angles, taking shortest path
func lerpAngle(a, b, t float64) float64 {
	return a + normalizeAngle(b-a)*t
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
