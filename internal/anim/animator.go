// Package anim drives the frame-indexed trajectory animation. The
// Animator is an explicit context object owned by its caller: it holds the
// frame counter and nothing else mutates it.
package anim

import (
	"github.com/rmaitra/helioviz/internal/ephem"
	"github.com/rmaitra/helioviz/internal/render"
	"github.com/rmaitra/helioviz/internal/scene"
)

// Animator advances monotonically through frames 0..N-1, one step per
// Step call. No skipping, no reverse; the driving loop decides what to do
// when the final frame is reached.
type Animator struct {
	set   *ephem.Set
	frame int
}

func New(set *ephem.Set) *Animator {
	return &Animator{set: set}
}

// Frame returns the current frame index.
func (a *Animator) Frame() int { return a.frame }

// Len returns the frame count N.
func (a *Animator) Len() int { return a.set.Epochs.Count }

// Done reports whether the animator sits on the final frame.
func (a *Animator) Done() bool { return a.frame >= a.set.Epochs.Count-1 }

// Step advances one frame. At the final frame it is a no-op returning
// false, so a driving loop can halt or rewind as it sees fit.
func (a *Animator) Step() bool {
	if a.Done() {
		return false
	}
	a.frame++
	return true
}

// Rewind restarts the animation from frame 0.
func (a *Animator) Rewind() { a.frame = 0 }

// PathPrefix returns the comet samples accumulated so far: indices 0
// through the current frame, inclusive.
func (a *Animator) PathPrefix() ephem.Series {
	return a.set.Comet.Series[:a.frame+1]
}

// Draw appends the current frame's animated drawables to the wireframe.
func (a *Animator) Draw(wf *render.Wireframe) {
	DrawFrame(wf, a.set, a.frame)
}

// DrawFrame renders frame k of the set: the comet's cumulative path
// through k, the comet marker at k, and each planet's marker at k.
// Missing samples leave gaps instead of drawing.
func DrawFrame(wf *render.Wireframe, set *ephem.Set, k int) {
	if k < 0 || k >= set.Epochs.Count {
		return
	}

	// Path prefix, broken at gaps.
	prev := -1
	for i := 0; i <= k; i++ {
		smp := set.Comet.Series[i]
		if smp.Missing {
			continue
		}
		if prev >= 0 && prev == i-1 {
			wf.AddEdge(scene.Position(set.Comet.Series[prev]), scene.Position(smp))
		} else {
			wf.AddPoint(scene.Position(smp))
		}
		prev = i
	}

	if smp := set.Comet.Series[k]; !smp.Missing {
		wf.AddMarker(scene.Position(smp))
	}
	for _, p := range set.Planets {
		if smp := p.Series[k]; !smp.Missing {
			wf.AddMarker(scene.Position(smp))
		}
	}
}
