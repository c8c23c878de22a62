// Package config loads fluidlab settings from YAML and provides named
// presets.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fluidlab/internal/brush"
	"github.com/san-kum/fluidlab/internal/fluid"
	"github.com/san-kum/fluidlab/internal/history"
	"github.com/san-kum/fluidlab/internal/render"
	"github.com/san-kum/fluidlab/internal/sim"
)

const (
	DefaultSize = 128
	MinSize     = 16
	MaxSize     = 512
	SizeStep    = 16
)

var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Size     int           `yaml:"size"`
	Params   fluid.Params  `yaml:"params"`
	Brush    brush.Brush   `yaml:"brush"`
	History  HistoryConfig `yaml:"history"`
	Run      sim.Config    `yaml:"run"`
	Record   RecordConfig  `yaml:"record"`
	Emitters []sim.Emitter `yaml:"emitters,omitempty"`
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

type RecordConfig struct {
	FPS   int `yaml:"fps"`
	Scale int `yaml:"scale"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:    DefaultSize,
		Params:  fluid.DefaultParams(),
		Brush:   brush.Default(),
		History: HistoryConfig{Capacity: history.DefaultCapacity},
		Run:     sim.DefaultConfig(),
		Record:  RecordConfig{FPS: render.DefaultFPS, Scale: 4},
	}
}

// Load reads path over the defaults, so keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Size < MinSize || c.Size > MaxSize {
		return fmt.Errorf("%w: size must be in [%d, %d], got %d", ErrInvalid, MinSize, MaxSize, c.Size)
	}
	if err := c.Params.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Brush.Size < 1 {
		return fmt.Errorf("%w: brush size must be positive, got %d", ErrInvalid, c.Brush.Size)
	}
	if c.History.Capacity < 1 {
		return fmt.Errorf("%w: history capacity must be positive, got %d", ErrInvalid, c.History.Capacity)
	}
	if err := c.Run.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Record.FPS < 1 || c.Record.Scale < 1 {
		return fmt.Errorf("%w: record fps and scale must be positive", ErrInvalid)
	}
	for i, e := range c.Emitters {
		if e.X < 0 || e.X >= c.Size || e.Y < 0 || e.Y >= c.Size {
			return fmt.Errorf("%w: emitter %d at (%d, %d) is outside a %d grid", ErrInvalid, i, e.X, e.Y, c.Size)
		}
	}
	return nil
}

// NewGrid builds a grid for the configured size and parameters.
func (c *Config) NewGrid() (*fluid.Grid, error) {
	return fluid.New(c.Size, c.Params)
}

// Clone returns a copy that shares nothing with c.
func (c *Config) Clone() *Config {
	out := *c
	out.Emitters = append([]sim.Emitter(nil), c.Emitters...)
	return &out
}
