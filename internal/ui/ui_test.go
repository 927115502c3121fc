package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/state"
)

var testObserver = astro.Observer{Name: "Goldstone", LatDeg: 35.4267, LonDeg: -116.89}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testManager() *state.Manager {
	cfg := state.DefaultConfig()
	cfg.Observer = testObserver
	return state.NewManager(cfg)
}

func testSnapshot(t *testing.T) state.Snapshot {
	t.Helper()
	mgr := testManager()
	if _, err := mgr.Refresh(time.Date(2024, 7, 15, 6, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	return mgr.Snapshot()
}

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"q quits", runeKey('q'), km.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"1 selects clock", runeKey('1'), km.Clock},
		{"s selects sky", runeKey('s'), km.Sky},
		{"j moves down", runeKey('j'), km.Down},
		{"tab cycles", tea.KeyMsg{Type: tea.KeyTab}, km.Tab},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("%q does not match binding", tt.msg.String())
			}
		})
	}
}

func TestHelpLine(t *testing.T) {
	km := DefaultKeyMap()
	if got := helpLine(km.Refresh, km.Quit); got != "r: refresh | q: quit" {
		t.Errorf("helpLine() = %q", got)
	}
}

func TestModel_SwitchesViews(t *testing.T) {
	m := New(testManager(), 0)

	next, _ := m.Update(runeKey('2'))
	m = next.(Model)
	if m.viewMode != ViewSky {
		t.Fatalf("viewMode = %v, want ViewSky", m.viewMode)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.viewMode != ViewClock {
		t.Errorf("tab from sky should wrap to clock, got %v", m.viewMode)
	}
}

func TestModel_QuitReturnsQuitCmd(t *testing.T) {
	m := New(testManager(), 0)
	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce tea.QuitMsg")
	}
}

func TestModel_ViewBeforeReady(t *testing.T) {
	m := New(testManager(), 0)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() = %q", got)
	}
}

func TestModel_DataUpdateRendersClock(t *testing.T) {
	m := New(testManager(), -7)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 60})
	m = next.(Model)
	next, _ = m.Update(DataUpdateMsg{Snapshot: testSnapshot(t)})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"ls-almanac", "Goldstone", "Julian Day", "Sun", "Moon", "Local (-7 h)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_ErrorShownInClock(t *testing.T) {
	m := New(testManager(), 0)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(Model)
	next, _ = m.Update(ErrorMsg{Error: errors.New("kepler iteration did not converge")})
	m = next.(Model)

	if !strings.Contains(m.View(), "kepler iteration did not converge") {
		t.Error("error message not rendered")
	}
}

func TestModel_ObserverChanged(t *testing.T) {
	mgr := testManager()
	m := New(mgr, 0)

	canberra := astro.Observer{Name: "Canberra", LatDeg: -35.4014, LonDeg: 148.9817}
	_, cmd := m.Update(ObserverChangedMsg{Observer: canberra})
	if cmd == nil {
		t.Fatal("expected a refresh command")
	}
	if mgr.Observer() != canberra {
		t.Errorf("Observer() = %+v, want Canberra", mgr.Observer())
	}

	msg := SendObserver(canberra)()
	if got, ok := msg.(ObserverChangedMsg); !ok || got.Observer != canberra {
		t.Errorf("SendObserver() = %#v", msg)
	}
}

func TestRefreshCmd(t *testing.T) {
	mgr := testManager()
	msg := refreshCmd(mgr)()

	update, ok := msg.(DataUpdateMsg)
	if !ok {
		t.Fatalf("refreshCmd() = %T, want DataUpdateMsg", msg)
	}
	if update.Snapshot.Sky == nil {
		t.Error("snapshot has no sky")
	}
	if !mgr.HasData() {
		t.Error("manager was not refreshed")
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 10); got != "#3B82F6" {
		t.Errorf("gradientColor(0) = %s, want #3B82F6", got)
	}
	for col := 0; col <= 10; col++ {
		if c := gradientColor(col, 10); len(c) != 7 || c[0] != '#' {
			t.Errorf("gradientColor(%d) = %q", col, c)
		}
	}
}
