// Package config loads and validates the run configuration for the lattice
// driver.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pythonian23/lattice/internal/lbm"
	"github.com/pythonian23/lattice/internal/obstacle"
)

// Inlet injects a fixed population into one direction of a vertical run of
// cells before every step.
type Inlet struct {
	X     int     `json:"x"`
	Y0    int     `json:"y0"`
	Y1    int     `json:"y1"`
	DX    int     `json:"dx"`
	DY    int     `json:"dy"`
	Value float64 `json:"value"`
}

// Config is the root configuration document.
type Config struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Omega  float64 `json:"omega"` // not range-checked; values outside [0,2] are unstable
	// Workers > 1 parallelises the collision phase.
	Workers int `json:"workers"`

	StepsPerFrame int `json:"steps_per_frame"`
	Frames        int `json:"frames"`
	GifDelay      int `json:"gif_delay"`
	PixelScale    int `json:"pixel_scale"`
	// SpeedGain scales |momentum| onto the colour ramp.
	SpeedGain float64 `json:"speed_gain"`

	Tracers    int    `json:"tracers"`
	TracerSeed uint64 `json:"tracer_seed"`

	UnitDensity bool            `json:"unit_density"`
	Inlets      []Inlet         `json:"inlets"`
	Obstacles   []obstacle.Spec `json:"obstacles"`
}

// Default returns the built-in scene: a 60x60 box with a narrow westward jet,
// a partial wall and three round obstacles.
func Default() *Config {
	return &Config{
		Width:         60,
		Height:        60,
		Omega:         1.8,
		Workers:       1,
		StepsPerFrame: 10,
		Frames:        300,
		GifDelay:      4,
		PixelScale:    6,
		SpeedGain:     4,
		Tracers:       5000,
		TracerSeed:    1,
		UnitDensity:   true,
		Inlets: []Inlet{
			{X: 20, Y0: 28, Y1: 32, DX: -1, DY: 0, Value: 0.1},
		},
		Obstacles: []obstacle.Spec{
			{Kind: "wall", X: 40, Y: 10, Y1: 49},
			{Kind: "circle", X: 20, Y: 22, R: 5},
			{Kind: "circle", X: 30, Y: 35, R: 5},
			{Kind: "circle", X: 40, Y: 18, R: 5},
		},
	}
}

const maxFileSize = 1 * 1024 * 1024

// Load reads a JSON config from path. Fields omitted from the file keep
// their Default values. The inlets and obstacles lists are replaced as a
// whole when present; their entries never inherit default fields.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var lists struct {
		Inlets    json.RawMessage `json:"inlets"`
		Obstacles json.RawMessage `json:"obstacles"`
	}
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg := Default()
	if lists.Inlets != nil {
		cfg.Inlets = nil
	}
	if lists.Obstacles != nil {
		cfg.Obstacles = nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges that would otherwise fail later in the run.
func (c *Config) Validate() error {
	if c.Width < lbm.MinSize || c.Height < lbm.MinSize {
		return fmt.Errorf("lattice must be at least %dx%d, got %dx%d", lbm.MinSize, lbm.MinSize, c.Width, c.Height)
	}
	if c.StepsPerFrame <= 0 {
		return fmt.Errorf("steps_per_frame must be positive, got %d", c.StepsPerFrame)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	if c.Tracers < 0 {
		return fmt.Errorf("tracers must be non-negative, got %d", c.Tracers)
	}
	if c.GifDelay < 0 {
		return fmt.Errorf("gif_delay must be non-negative, got %d", c.GifDelay)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	for i, in := range c.Inlets {
		if in.X < 1 || in.X > c.Width-2 || min(in.Y0, in.Y1) < 1 || max(in.Y0, in.Y1) > c.Height-2 {
			return fmt.Errorf("inlet %d at x=%d y=%d..%d lies outside the interior", i, in.X, in.Y0, in.Y1)
		}
		if in.DX < -1 || in.DX > 1 || in.DY < -1 || in.DY > 1 {
			return fmt.Errorf("inlet %d direction (%d,%d) is not a lattice offset", i, in.DX, in.DY)
		}
	}
	for i, o := range c.Obstacles {
		if _, err := o.Shape(); err != nil {
			return fmt.Errorf("obstacle %d: %w", i, err)
		}
	}
	return nil
}

// Shapes converts the configured obstacles. Call after Validate.
func (c *Config) Shapes() ([]obstacle.Shape, error) {
	shapes := make([]obstacle.Shape, 0, len(c.Obstacles))
	for i, o := range c.Obstacles {
		s, err := o.Shape()
		if err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
		shapes = append(shapes, s)
	}
	return shapes, nil
}
