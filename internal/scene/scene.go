// Package scene drives an engine through a configured run: it injects inlet
// populations, optionally normalises density, steps the lattice and the
// tracers, and publishes snapshots for rendering.
package scene

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pythonian23/lattice/internal/config"
	"github.com/pythonian23/lattice/internal/diag"
	"github.com/pythonian23/lattice/internal/grid"
	"github.com/pythonian23/lattice/internal/lbm"
	"github.com/pythonian23/lattice/internal/monitoring"
	"github.com/pythonian23/lattice/internal/obstacle"
	"github.com/pythonian23/lattice/internal/tracer"
)

// Frame is a snapshot handed from the simulation goroutine to a consumer.
// It shares no memory with the engine.
type Frame struct {
	Index   int
	Speed   *mat.Dense // rows are y, columns are x
	Solid   *grid.Dense2D[bool]
	Tracers []r2.Vec
	Summary diag.Summary
}

// Scene couples an engine with its tracers and run parameters.
type Scene struct {
	cfg     *config.Config
	engine  *lbm.Engine
	tracers *tracer.Streamers
	shapes  []obstacle.Shape
}

// New builds the engine described by cfg and paints its obstacles.
func New(cfg *config.Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	shapes, err := cfg.Shapes()
	if err != nil {
		return nil, err
	}
	e, err := lbm.New(cfg.Width, cfg.Height, lbm.WithWorkers(cfg.Workers))
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	s := &Scene{
		cfg:     cfg,
		engine:  e,
		tracers: tracer.New(cfg.Tracers, cfg.Width, cfg.Height, cfg.TracerSeed),
		shapes:  shapes,
	}
	n := obstacle.PaintAll(e.Obstacles(), shapes...)
	monitoring.Logf("Scene %dx%d: %d obstacle cells painted, %d solid in total", cfg.Width, cfg.Height, n, obstacle.Count(e.Obstacles()))
	return s, nil
}

// Engine exposes the underlying lattice.
func (s *Scene) Engine() *lbm.Engine { return s.engine }

// Tracers exposes the tracer particles.
func (s *Scene) Tracers() *tracer.Streamers { return s.tracers }

// Reset restores the engine to its initial state and repaints obstacles.
func (s *Scene) Reset() {
	s.engine.Reset()
	obstacle.PaintAll(s.engine.Obstacles(), s.shapes...)
	s.tracers = tracer.New(s.cfg.Tracers, s.cfg.Width, s.cfg.Height, s.cfg.TracerSeed)
}

// Tick runs one simulation step including sources and tracer advection.
func (s *Scene) Tick() {
	g := s.engine.Grid()
	for _, in := range s.cfg.Inlets {
		for y := min(in.Y0, in.Y1); y <= max(in.Y0, in.Y1); y++ {
			g.Ptr(in.X, y).Set(in.DX, in.DY, in.Value)
		}
	}
	if s.cfg.UnitDensity {
		cells := g.Data()
		for i := range cells {
			cells[i] = lbm.ForceUnitDensity(cells[i])
		}
	}
	s.engine.Step(s.cfg.Omega)
	s.tracers.Step(s.engine.Grid(), s.engine.Obstacles())
}

// Speed returns |Momentum| of every cell of the current buffer.
func (s *Scene) Speed() *mat.Dense {
	return grid.Scalar(s.engine.Grid(), func(f lbm.Site) float64 {
		return r2.Norm(lbm.Momentum(f))
	})
}

// Snapshot copies the current state into a Frame.
func (s *Scene) Snapshot(index int) Frame {
	speed := s.Speed()
	solid := s.engine.Obstacles().Clone()
	return Frame{
		Index:   index,
		Speed:   speed,
		Solid:   solid,
		Tracers: append([]r2.Vec(nil), s.tracers.Particles...),
		Summary: diag.Summarize(s.engine.Ticks(), s.engine.TotalDensity(), speed, func(row, col int) bool {
			return solid.At(col, row)
		}),
	}
}

// Run publishes the initial frame and then one frame every StepsPerFrame
// ticks until Frames frames have followed it. It closes c when done.
func (s *Scene) Run(c chan<- Frame) {
	defer close(c)
	c <- s.Snapshot(0)
	for i := 1; i <= s.cfg.Frames; i++ {
		for range s.cfg.StepsPerFrame {
			s.Tick()
		}
		c <- s.Snapshot(i)
	}
}
