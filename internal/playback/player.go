// Package playback shows the trajectory animation in the terminal. The
// bubbletea program is the animation driver: it steps the animator on a
// tick and wraps around at the final frame.
package playback

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/rmaitra/helioviz/internal/anim"
	"github.com/rmaitra/helioviz/internal/ephem"
	"github.com/rmaitra/helioviz/internal/render"
	"github.com/rmaitra/helioviz/internal/scene"
)

const (
	canvasCols = 70
	canvasRows = 26
)

type TickMsg time.Time

// Model is the bubbletea state for one playback session.
type Model struct {
	set      *ephem.Set
	sc       *scene.Scene
	animator *anim.Animator
	canvas   *render.Canvas
	camera   *render.Camera

	radii    []float64 // comet distance from the Sun, per frame
	fps      int
	playing  bool
	playHead int // scrub position; -1 follows the animator
	themeIdx int
	styles   Styles
	showHelp bool
}

// New builds the playback model. fps controls the tick rate.
func New(set *ephem.Set, sc *scene.Scene, fps int) Model {
	if fps <= 0 {
		fps = 10
	}
	return Model{
		set:      set,
		sc:       sc,
		animator: anim.New(set),
		canvas:   render.NewCanvas(canvasCols, canvasRows),
		camera:   render.NewCamera(),
		radii:    set.Comet.Series.Radii(),
		fps:      fps,
		playing:  true,
		playHead: -1,
		styles:   newStyles(themes[0]),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
			if m.playing {
				m.playHead = -1
			}
		case "r":
			m.animator.Rewind()
			m.playHead = -1
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "t":
			m.themeIdx = (m.themeIdx + 1) % len(themes)
			m.styles = newStyles(themes[m.themeIdx])
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.playing {
			if !m.animator.Step() {
				// Wrap: the driver's policy, not the animator's.
				m.animator.Rewind()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// frame returns the frame currently shown: the scrub position when
// scrubbing, the animator's frame otherwise.
func (m Model) frame() int {
	if m.playHead >= 0 {
		return m.playHead
	}
	return m.animator.Frame()
}

func (m *Model) scrub(dir int) {
	m.playing = false
	k := m.frame() + dir
	if k < 0 {
		k = 0
	}
	if k > m.set.Epochs.Count-1 {
		k = m.set.Epochs.Count - 1
	}
	m.playHead = k
}

func (m Model) View() string {
	k := m.frame()

	m.canvas.Clear()
	wf := render.NewWireframe()
	m.sc.AddStatic(wf)
	anim.DrawFrame(wf, m.set, k)
	render.Draw(m.canvas, wf, m.camera)

	canvasView := m.styles.Canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(m.styles.Header.Render(m.set.Comet.Name) + "\n")

	status := "PLAYING"
	if m.playHead >= 0 {
		status = "SCRUB"
	} else if !m.playing {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	s.WriteString(m.styles.Label.Render("Date") +
		m.styles.Value.Render(m.set.Epochs.At(k).Format("2006-01-02")) + "\n")
	s.WriteString(m.styles.Label.Render("Frame") +
		m.styles.Value.Render(fmt.Sprintf("%d / %d", k, m.set.Epochs.Count-1)) + "\n")

	smp := m.set.Comet.Series[k]
	if smp.Missing {
		s.WriteString(m.styles.Label.Render("Position") + m.styles.Value.Render("(gap)") + "\n")
	} else {
		s.WriteString(m.styles.Label.Render("Position") +
			m.styles.Value.Render(fmt.Sprintf("%.2f, %.2f, %.2f AU", smp.X, smp.Y, smp.Z)) + "\n")
		s.WriteString(m.styles.Label.Render("Sun dist") +
			m.styles.Value.Render(fmt.Sprintf("%.3f AU", smp.Radius())) + "\n")
	}

	if k >= 1 {
		chart := asciigraph.Plot(finiteRadii(m.radii[:k+1]),
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption("Sun distance (AU)"))
		s.WriteString(m.styles.Graph.Render(chart) + "\n")
	}

	s.WriteString(m.styles.Help.Render(
		"─────────────────────\nSP:Pause R:Rewind Q:Quit\n[ ]:Scrub xyz:Rotate +-:Zoom\nT:Theme ?:Help"))

	panel := m.styles.Panel.Render(s.String())
	view := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)

	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

const helpText = `
  space  pause / resume
  r      rewind to frame 0
  [ ]    scrub one frame back / forward
  x/X    rotate around X      y/Y  rotate around Y
  z/Z    rotate around Z      +/-  zoom
  t      cycle theme
  q      quit`

// finiteRadii substitutes gaps with the previous finite value so the
// sparkline stays plottable.
func finiteRadii(rs []float64) []float64 {
	out := make([]float64, len(rs))
	last := 0.0
	for i, r := range rs {
		if r != r { // NaN marks a gap
			out[i] = last
			continue
		}
		out[i] = r
		last = r
	}
	return out
}
