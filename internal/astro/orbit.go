package astro

import "math"

// Reference orbit radii in AU. These are deliberately hardcoded context
// circles in the ecliptic plane, not derived from fetched data; Jupiter's
// orbit in particular is only roughly circular.
const (
	EarthOrbitAU   = 1.0
	MarsOrbitAU    = 1.35
	JupiterOrbitAU = 5.2
)

// OrbitSegments is the sample count used to approximate a reference
// orbit as a closed polyline.
const OrbitSegments = 100

// CircularOrbit samples a circle of the given radius in the ecliptic
// plane (Z = 0), centered on the Sun. The returned loop is closed: the
// final point repeats the first.
func CircularOrbit(radiusAU float64, segments int) []Vec3 {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Vec3, segments+1)
	for i := 0; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Vec3{X: radiusAU * math.Cos(theta), Y: radiusAU * math.Sin(theta)}
	}
	return pts
}
