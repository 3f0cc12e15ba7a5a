package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Defaults reproduce the canonical 3I/ATLAS run: heliocentric vectors from
// 2025-11-01 to 2026-03-28 in 2-day steps, highlighting November 1.
const (
	DefaultStart     = "2025-11-01"
	DefaultStop      = "2026-03-28"
	DefaultStepDays  = 2
	DefaultHighlight = "2025-11-01"
	DefaultFPS       = 5
	DefaultBitrate   = 3000
	DefaultWidth     = 1280
	DefaultHeight    = 960
)

// Config describes one fetch-and-render run.
type Config struct {
	Comet     string       `yaml:"comet"`
	Planets   []string     `yaml:"planets"`
	Start     string       `yaml:"start_date"`
	Stop      string       `yaml:"stop_date"`
	StepDays  int          `yaml:"step_days"`
	Highlight string       `yaml:"highlight_date"`
	Output    OutputConfig `yaml:"output"`
}

// OutputConfig fixes the export parameters.
type OutputConfig struct {
	Path        string `yaml:"path"`
	FPS         int    `yaml:"fps"`
	BitrateKbps int    `yaml:"bitrate_kbps"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Comet:     "3I/ATLAS",
		Planets:   []string{"Earth", "Mars", "Jupiter"},
		Start:     DefaultStart,
		Stop:      DefaultStop,
		StepDays:  DefaultStepDays,
		Highlight: DefaultHighlight,
		Output: OutputConfig{
			Path:        "comet_trajectory.mp4",
			FPS:         DefaultFPS,
			BitrateKbps: DefaultBitrate,
			Width:       DefaultWidth,
			Height:      DefaultHeight,
		},
	}
}

// Load reads a yaml config, layered over the defaults.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml config, layered over base: fields the file omits
// keep base's values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, err
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks dates and step before any network traffic.
func (c *Config) Validate() error {
	start, err := c.StartDate()
	if err != nil {
		return err
	}
	stop, err := c.StopDate()
	if err != nil {
		return err
	}
	if !stop.After(start) {
		return fmt.Errorf("config: stop date %s is not after start date %s", c.Stop, c.Start)
	}
	if c.StepDays <= 0 {
		return fmt.Errorf("config: step_days must be positive, got %d", c.StepDays)
	}
	if _, err := c.HighlightDate(); err != nil {
		return err
	}
	return nil
}

func (c *Config) StartDate() (time.Time, error)     { return parseDate("start_date", c.Start) }
func (c *Config) StopDate() (time.Time, error)      { return parseDate("stop_date", c.Stop) }
func (c *Config) HighlightDate() (time.Time, error) { return parseDate("highlight_date", c.Highlight) }

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("config: bad %s %q: %w", field, value, err)
	}
	return t, nil
}
