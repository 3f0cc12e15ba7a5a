package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Comet != "3I/ATLAS" {
		t.Errorf("comet = %s", cfg.Comet)
	}
	if cfg.StepDays != 2 {
		t.Errorf("step_days = %d, want 2", cfg.StepDays)
	}
	if len(cfg.Planets) != 3 {
		t.Errorf("expected 3 planets, got %d", len(cfg.Planets))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}

	start, err := cfg.StartDate()
	if err != nil {
		t.Fatalf("StartDate: %v", err)
	}
	want := time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("start = %s, want %s", start, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad start", func(c *Config) { c.Start = "Nov 1 2025" }},
		{"bad stop", func(c *Config) { c.Stop = "" }},
		{"stop before start", func(c *Config) { c.Stop = "2025-01-01" }},
		{"zero step", func(c *Config) { c.StepDays = 0 }},
		{"bad highlight", func(c *Config) { c.Highlight = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.StepDays = 5
	cfg.Output.Path = "out.gif"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.StepDays != 5 {
		t.Errorf("step_days = %d, want 5", loaded.StepDays)
	}
	if loaded.Output.Path != "out.gif" {
		t.Errorf("output path = %s", loaded.Output.Path)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("step_days: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.StepDays != 7 {
		t.Errorf("step_days = %d, want 7", cfg.StepDays)
	}
	if cfg.Start != DefaultStart {
		t.Errorf("start should keep default, got %s", cfg.Start)
	}
}

func TestLoadOverKeepsBaseFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("output:\n  path: custom.mp4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOver(path, GetPreset("perihelion"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Output.Path != "custom.mp4" {
		t.Errorf("output path = %s, want custom.mp4", cfg.Output.Path)
	}
	// Fields the file omits keep the preset's values, not the defaults.
	if cfg.Start != "2025-10-15" {
		t.Errorf("start = %s, want preset start 2025-10-15", cfg.Start)
	}
	if cfg.StepDays != 1 {
		t.Errorf("step_days = %d, want preset step 1", cfg.StepDays)
	}
	if cfg.Output.FPS != 10 {
		t.Errorf("fps = %d, want preset fps 10", cfg.Output.FPS)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("discovery")
	if p == nil {
		t.Fatal("expected discovery preset")
	}
	if p.Start != "2025-08-01" || p.StepDays != 5 {
		t.Errorf("discovery preset wrong: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("preset should validate: %v", err)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}

	// Mutating a returned preset must not leak into the table.
	p.Planets[0] = "Venus"
	if GetPreset("discovery").Planets[0] != "Earth" {
		t.Error("preset table mutated through returned copy")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != 3 {
		t.Fatalf("expected 3 presets, got %d", len(names))
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
