// Package catalog maps body names to their Horizons query identifiers and
// display attributes. The comet uses its provisional designation because
// Horizons does not resolve the interstellar numbering.
package catalog

import (
	"fmt"
	"sort"

	"github.com/rmaitra/helioviz/internal/astro"
)

type Kind int

const (
	KindComet Kind = iota
	KindPlanet
)

// Entry describes one body the program knows how to fetch and draw.
type Entry struct {
	Name        string  // display name
	Designation string  // Horizons COMMAND value
	Kind        Kind
	OrbitAU     float64 // reference circle radius, 0 for no ring
	Color       string  // lipgloss/SVG color
	Glyph       rune    // marker glyph in ASCII listings
}

var entries = map[string]Entry{
	"3I/ATLAS": {
		Name:        "3I/ATLAS",
		Designation: "C/2025 N1",
		Kind:        KindComet,
		Color:       "#4488ff",
		Glyph:       '*',
	},
	"Earth": {
		Name:        "Earth",
		Designation: "399",
		Kind:        KindPlanet,
		OrbitAU:     astro.EarthOrbitAU,
		Color:       "#00cc44",
		Glyph:       'e',
	},
	"Mars": {
		Name:        "Mars",
		Designation: "499",
		Kind:        KindPlanet,
		OrbitAU:     astro.MarsOrbitAU,
		Color:       "#ff8800",
		Glyph:       'm',
	},
	"Jupiter": {
		Name:        "Jupiter",
		Designation: "599",
		Kind:        KindPlanet,
		OrbitAU:     astro.JupiterOrbitAU,
		Color:       "#aa6633",
		Glyph:       'j',
	},
}

// Get looks a body up by display name.
func Get(name string) (Entry, error) {
	e, ok := entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("catalog: unknown body: %s", name)
	}
	return e, nil
}

// Comet returns the tracked comet.
func Comet() Entry {
	return entries["3I/ATLAS"]
}

// Planets returns the planet entries ordered by orbit radius, innermost
// first. That order is also the fetch and render order.
func Planets() []Entry {
	out := make([]Entry, 0, len(entries)-1)
	for _, e := range entries {
		if e.Kind == KindPlanet {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrbitAU < out[j].OrbitAU })
	return out
}

// List returns all known body names, sorted.
func List() []string {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
