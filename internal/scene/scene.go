// Package scene builds the static context of the trajectory plot:
// circular reference orbits in the ecliptic plane, the Sun at the origin,
// and the highlight marker at the precomputed frame.
package scene

import (
	"github.com/rmaitra/helioviz/internal/astro"
	"github.com/rmaitra/helioviz/internal/catalog"
	"github.com/rmaitra/helioviz/internal/ephem"
	"github.com/rmaitra/helioviz/internal/render"
)

// NoHighlight disables the highlight marker.
const NoHighlight = -1

type Scene struct {
	set       *ephem.Set
	rings     [][]astro.Vec3
	highlight int
}

// New precomputes the reference rings for every planet entry carrying an
// orbit radius. highlightFrame indexes the comet sample to pin, or
// NoHighlight.
func New(set *ephem.Set, entries []catalog.Entry, highlightFrame int) *Scene {
	rings := make([][]astro.Vec3, 0, len(entries))
	for _, e := range entries {
		if e.OrbitAU > 0 {
			rings = append(rings, astro.CircularOrbit(e.OrbitAU, astro.OrbitSegments))
		}
	}
	return &Scene{set: set, rings: rings, highlight: highlightFrame}
}

// AddStatic appends the fixed drawables to the wireframe: one ring per
// reference orbit, the Sun marker, and the highlight marker.
func (s *Scene) AddStatic(wf *render.Wireframe) {
	for _, ring := range s.rings {
		wf.AddPolyline(ring)
	}

	wf.AddMarker(astro.Vec3{}) // the Sun

	if s.highlight != NoHighlight && s.highlight >= 0 && s.highlight < s.set.Epochs.Count {
		smp := s.set.Comet.Series[s.highlight]
		if !smp.Missing {
			wf.AddMarker(Position(smp))
		}
	}
}

// RingCount reports how many reference orbits the scene draws.
func (s *Scene) RingCount() int {
	return len(s.rings)
}

// Position converts a sample into a world-space vector.
func Position(smp ephem.Sample) astro.Vec3 {
	return astro.Vec3{X: smp.X, Y: smp.Y, Z: smp.Z}
}
