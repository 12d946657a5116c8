package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/lifesim/internal/grid"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth       = 64
	DefaultHeight      = 32
	DefaultProbability = 25
	DefaultDelayMs     = 100
	DefaultTheme       = "classic"
	DefaultAliveGlyph  = "█"
	DefaultDeadGlyph   = "."
)

type Config struct {
	Width          int           `yaml:"width"`
	Height         int           `yaml:"height"`
	Probability    int           `yaml:"probability"`
	Seed           int64         `yaml:"seed"`
	Pattern        string        `yaml:"pattern"`
	Origin         OriginConfig  `yaml:"origin"`
	DelayMs        int           `yaml:"delay_ms"`
	MaxGenerations int           `yaml:"max_generations"`
	Display        DisplayConfig `yaml:"display"`
}

type OriginConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type DisplayConfig struct {
	Theme      string `yaml:"theme"`
	AliveGlyph string `yaml:"alive_glyph"`
	DeadGlyph  string `yaml:"dead_glyph"`
	Clear      bool   `yaml:"clear"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Probability: DefaultProbability,
		DelayMs:     DefaultDelayMs,
		Display: DisplayConfig{
			Theme:      DefaultTheme,
			AliveGlyph: DefaultAliveGlyph,
			DeadGlyph:  DefaultDeadGlyph,
			Clear:      true,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys missing from the
// file keep base's values. base itself is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("grid size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Probability < 0 || c.Probability > 100 {
		return fmt.Errorf("probability must be within [0, 100], got %d", c.Probability)
	}
	if c.DelayMs < 0 {
		return fmt.Errorf("delay must be non-negative, got %dms", c.DelayMs)
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf("max generations must be non-negative, got %d", c.MaxGenerations)
	}
	return nil
}

func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}

// Grid builds the starting grid: an empty grid with Pattern stamped at
// Origin when a pattern is named, otherwise a random fill from Seed.
func (c *Config) Grid() (*grid.Grid, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Pattern != "" {
		g, err := grid.New(c.Width, c.Height)
		if err != nil {
			return nil, err
		}
		return g.SeedNamed(c.Pattern, grid.Coord{X: c.Origin.X, Y: c.Origin.Y}), nil
	}
	return grid.NewRandom(c.Width, c.Height, c.Probability, grid.NewRNG(c.Seed))
}
