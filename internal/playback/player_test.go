package playback

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rmaitra/helioviz/internal/catalog"
	"github.com/rmaitra/helioviz/internal/ephem"
	"github.com/rmaitra/helioviz/internal/scene"
)

func testSet(t *testing.T, n int) *ephem.Set {
	t.Helper()
	series := make(ephem.Series, n)
	planet := make(ephem.Series, n)
	for i := range series {
		series[i] = ephem.Sample{X: 3.0 - 0.1*float64(i), Y: 0.5, Z: 0.1}
		planet[i] = ephem.Sample{X: 1.0, Y: float64(i) * 0.05}
	}
	set, err := ephem.NewSet(
		ephem.Epochs{Start: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), StepDays: 2, Count: n},
		ephem.Body{Designation: "C/2025 N1", Name: "3I/ATLAS", Series: series},
		[]ephem.Body{{Designation: "399", Name: "Earth", Series: planet}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func testModel(t *testing.T, n int) Model {
	set := testSet(t, n)
	sc := scene.New(set, []catalog.Entry{{Name: "Earth", OrbitAU: 1.0}}, scene.NoHighlight)
	return New(set, sc, 10)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNewStartsPlaying(t *testing.T) {
	m := testModel(t, 6)
	if !m.playing {
		t.Error("expected playback to start running")
	}
	if m.frame() != 0 {
		t.Errorf("expected frame 0, got %d", m.frame())
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	m := testModel(t, 6)
	m = update(m, key(" "))
	if m.playing {
		t.Error("expected paused after space")
	}
	m = update(m, key(" "))
	if !m.playing {
		t.Error("expected resumed after second space")
	}
}

func TestTickAdvancesAndWraps(t *testing.T) {
	m := testModel(t, 3)
	m = update(m, TickMsg(time.Now()))
	if m.frame() != 1 {
		t.Errorf("expected frame 1 after tick, got %d", m.frame())
	}
	m = update(m, TickMsg(time.Now()))
	if m.frame() != 2 {
		t.Errorf("expected frame 2, got %d", m.frame())
	}
	// At the last frame the next tick wraps back to the start.
	m = update(m, TickMsg(time.Now()))
	if m.frame() != 0 {
		t.Errorf("expected wrap to frame 0, got %d", m.frame())
	}
}

func TestTickIgnoredWhilePaused(t *testing.T) {
	m := testModel(t, 6)
	m = update(m, key(" "))
	m = update(m, TickMsg(time.Now()))
	if m.frame() != 0 {
		t.Errorf("expected frame 0 while paused, got %d", m.frame())
	}
}

func TestScrubClampsToRange(t *testing.T) {
	m := testModel(t, 4)

	m = update(m, key("["))
	if m.frame() != 0 {
		t.Errorf("expected scrub back clamped at 0, got %d", m.frame())
	}
	if m.playing {
		t.Error("expected scrubbing to pause playback")
	}

	for i := 0; i < 10; i++ {
		m = update(m, key("]"))
	}
	if m.frame() != 3 {
		t.Errorf("expected scrub forward clamped at 3, got %d", m.frame())
	}
}

func TestRewind(t *testing.T) {
	m := testModel(t, 6)
	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	m = update(m, key("r"))
	if m.frame() != 0 {
		t.Errorf("expected frame 0 after rewind, got %d", m.frame())
	}
}

func TestThemeCycles(t *testing.T) {
	m := testModel(t, 6)
	for i := 0; i < len(themes); i++ {
		m = update(m, key("t"))
	}
	if m.themeIdx != 0 {
		t.Errorf("expected theme cycle back to 0, got %d", m.themeIdx)
	}
}

func TestViewShowsEpochDate(t *testing.T) {
	m := testModel(t, 6)
	view := m.View()
	if !strings.Contains(view, "2025-11-01") {
		t.Error("expected view to show the epoch date")
	}
	if !strings.Contains(view, "3I/ATLAS") {
		t.Error("expected view to show the comet name")
	}

	m = update(m, TickMsg(time.Now()))
	if !strings.Contains(m.View(), "2025-11-03") {
		t.Error("expected view to show the advanced epoch date")
	}
}
