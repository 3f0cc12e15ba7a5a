package render

import (
	"math"
	"sort"

	"github.com/rmaitra/helioviz/internal/astro"
)

// Camera projects heliocentric AU coordinates onto the canvas. The view
// starts tilted 20 degrees above the ecliptic, rotated 45 degrees around
// the pole, matching the canonical trajectory plot.
type Camera struct {
	Distance         float64 // eye distance along +Z after rotation
	RotX, RotY, RotZ float64
	Zoom             float64
	Extent           float64 // world half-width mapped to the canvas, in AU
}

func NewCamera() *Camera {
	return &Camera{
		Distance: 50,
		RotX:     -20 * math.Pi / 180,
		RotZ:     45 * math.Pi / 180,
		Zoom:     1.0,
		Extent:   6.0, // covers Jupiter's 5.2 AU ring with margin
	}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p astro.Vec3) astro.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps a world point to pixel coordinates on a pw x ph pixel
// surface. Returns x, y, view-space depth, and whether the point lands on
// the surface.
func (c *Camera) Project(p astro.Vec3, pw, ph int) (int, int, float64, bool) {
	// Normalize AU into view units before rotating so Extent controls
	// framing independent of zoom.
	v := c.rotate(p.Scale(1 / c.Extent)).Scale(c.Zoom)
	if v.Z >= c.Distance-0.1 {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - v.Z)
	minDim := float64(ph)
	if float64(pw) < minDim {
		minDim = float64(pw)
	}
	scale := minDim / 2.2
	sx := int(v.X*persp*scale) + pw/2
	sy := int(-v.Y*persp*scale) + ph/2
	return sx, sy, v.Z, sx >= 0 && sx < pw && sy >= 0 && sy < ph
}

// Edge is a line segment (or a point, when Start == End) in world space.
type Edge struct {
	Start, End astro.Vec3
	Marker     bool // draw the endpoint as a 3x3 marker instead of a dot
}

// Wireframe accumulates the drawable set for one frame.
type Wireframe struct {
	Edges []Edge
}

func NewWireframe() *Wireframe {
	return &Wireframe{Edges: make([]Edge, 0, 256)}
}

func (w *Wireframe) AddEdge(s, e astro.Vec3) {
	w.Edges = append(w.Edges, Edge{Start: s, End: e})
}

func (w *Wireframe) AddPoint(p astro.Vec3) {
	w.Edges = append(w.Edges, Edge{Start: p, End: p})
}

func (w *Wireframe) AddMarker(p astro.Vec3) {
	w.Edges = append(w.Edges, Edge{Start: p, End: p, Marker: true})
}

// AddPolyline draws consecutive points as connected segments.
func (w *Wireframe) AddPolyline(pts []astro.Vec3) {
	for i := 1; i < len(pts); i++ {
		w.AddEdge(pts[i-1], pts[i])
	}
}

func (w *Wireframe) Clear() {
	w.Edges = w.Edges[:0]
}

type projected struct {
	x1, y1, x2, y2 int
	depth          float64
	marker         bool
}

// Draw projects the wireframe onto the canvas back-to-front.
func Draw(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	pw, ph := c.PixelSize()
	proj := make([]projected, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, pw, ph)
		x2, y2, d2, v2 := cam.Project(e.End, pw, ph)
		if v1 || v2 {
			proj = append(proj, projected{x1, y1, x2, y2, (d1 + d2) / 2, e.Marker})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		switch {
		case e.marker:
			c.Marker(e.x1, e.y1)
		case e.x1 == e.x2 && e.y1 == e.y2:
			c.Set(e.x1, e.y1)
		default:
			c.Line(e.x1, e.y1, e.x2, e.y2)
		}
	}
}
