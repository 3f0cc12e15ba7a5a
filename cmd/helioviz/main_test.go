package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/rmaitra/helioviz/internal/config"
)

func newFlaggedCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&highlight, "highlight", config.DefaultHighlight, "")
	cmd.Flags().StringVar(&outPath, "out", "comet_trajectory.mp4", "")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "")
	return cmd
}

func resetLayers(t *testing.T) {
	t.Helper()
	preset = ""
	configFile = ""
	t.Cleanup(func() {
		preset = ""
		configFile = ""
	})
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigFileLayersOverPreset(t *testing.T) {
	resetLayers(t)
	preset = "perihelion"
	configFile = writeYAML(t, "output:\n  path: from-file.gif\n")

	cfg, err := loadConfig(newFlaggedCmd())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Output.Path != "from-file.gif" {
		t.Errorf("output path = %s, want from-file.gif", cfg.Output.Path)
	}
	// Fields the file omits keep the preset's values, not the defaults.
	if cfg.Start != "2025-10-15" {
		t.Errorf("start = %s, want preset start 2025-10-15", cfg.Start)
	}
	if cfg.StepDays != 1 {
		t.Errorf("step_days = %d, want preset step 1", cfg.StepDays)
	}
}

func TestLoadConfigFlagWins(t *testing.T) {
	resetLayers(t)
	configFile = writeYAML(t, "highlight_date: \"2025-12-01\"\n")

	cmd := newFlaggedCmd()
	if err := cmd.Flags().Set("highlight", "2025-11-05"); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Highlight != "2025-11-05" {
		t.Errorf("highlight = %s, want flag value 2025-11-05", cfg.Highlight)
	}
}

func TestLoadConfigHighlightFromFile(t *testing.T) {
	resetLayers(t)
	configFile = writeYAML(t, "highlight_date: \"2025-12-01\"\n")

	cfg, err := loadConfig(newFlaggedCmd())
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Highlight != "2025-12-01" {
		t.Errorf("highlight = %s, want file value 2025-12-01", cfg.Highlight)
	}
}

func TestLoadConfigUnknownPreset(t *testing.T) {
	resetLayers(t)
	preset = "nope"

	if _, err := loadConfig(newFlaggedCmd()); err == nil {
		t.Error("expected error for unknown preset")
	}
}
