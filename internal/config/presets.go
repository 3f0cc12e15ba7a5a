package config

import "sort"

// Presets are named query windows. "atlas" is the canonical run; the
// others cover the wider observation arc and a tighter perihelion window.
var presets = map[string]*Config{
	"atlas": DefaultConfig(),
	"discovery": {
		Comet:     "3I/ATLAS",
		Planets:   []string{"Earth", "Mars", "Jupiter"},
		Start:     "2025-08-01",
		Stop:      "2026-03-28",
		StepDays:  5,
		Highlight: "2025-11-01",
		Output: OutputConfig{
			Path:        "comet_trajectory.mp4",
			FPS:         DefaultFPS,
			BitrateKbps: DefaultBitrate,
			Width:       DefaultWidth,
			Height:      DefaultHeight,
		},
	},
	"perihelion": {
		Comet:     "3I/ATLAS",
		Planets:   []string{"Earth", "Mars", "Jupiter"},
		Start:     "2025-10-15",
		Stop:      "2025-12-15",
		StepDays:  1,
		Highlight: "2025-11-01",
		Output: OutputConfig{
			Path:        "perihelion.gif",
			FPS:         10,
			BitrateKbps: DefaultBitrate,
			Width:       DefaultWidth,
			Height:      DefaultHeight,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	p, ok := presets[name]
	if !ok {
		return nil
	}
	c := *p
	c.Planets = append([]string(nil), p.Planets...)
	return &c
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
