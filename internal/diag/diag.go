// Package diag summarises lattice state per frame and plots the history of
// those summaries.
package diag

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Summary describes one speed snapshot.
type Summary struct {
	Tick      uint64
	Mass      float64 // sum of site densities
	MeanSpeed float64 // over fluid cells
	StdSpeed  float64
	MaxSpeed  float64
	Fluid     int // number of cells that contributed
}

// Summarize computes speed statistics over the cells of speed for which solid
// reports false. A nil solid counts every cell.
func Summarize(tick uint64, mass float64, speed *mat.Dense, solid func(row, col int) bool) Summary {
	r, c := speed.Dims()
	vals := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if solid != nil && solid(i, j) {
				continue
			}
			vals = append(vals, speed.At(i, j))
		}
	}
	s := Summary{Tick: tick, Mass: mass, Fluid: len(vals)}
	if len(vals) == 0 {
		return s
	}
	s.MeanSpeed, s.StdSpeed = stat.MeanStdDev(vals, nil)
	s.MaxSpeed = floats.Max(vals)
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("tick=%d mass=%.6g speed mean=%.4g sd=%.4g max=%.4g over %d cells",
		s.Tick, s.Mass, s.MeanSpeed, s.StdSpeed, s.MaxSpeed, s.Fluid)
}

// History accumulates summaries in tick order.
type History struct {
	Samples []Summary
}

// Add appends s.
func (h *History) Add(s Summary) { h.Samples = append(h.Samples, s) }

// Drift returns the relative change of mass between the first and last
// sample, or 0 with fewer than two samples or a zero initial mass.
func (h *History) Drift() float64 {
	if len(h.Samples) < 2 || h.Samples[0].Mass == 0 {
		return 0
	}
	first, last := h.Samples[0].Mass, h.Samples[len(h.Samples)-1].Mass
	return (last - first) / first
}

// SavePlot renders mass and peak speed against tick into a PNG (or any
// extension gonum/plot understands) at path.
func (h *History) SavePlot(path string) error {
	if len(h.Samples) == 0 {
		return fmt.Errorf("no samples to plot")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = "Lattice history"
	p.X.Label.Text = "tick"

	mass := make(plotter.XYs, 0, len(h.Samples))
	peak := make(plotter.XYs, 0, len(h.Samples))
	mean := make(plotter.XYs, 0, len(h.Samples))
	for _, s := range h.Samples {
		mass = append(mass, plotter.XY{X: float64(s.Tick), Y: s.Mass})
		peak = append(peak, plotter.XY{X: float64(s.Tick), Y: s.MaxSpeed})
		mean = append(mean, plotter.XY{X: float64(s.Tick), Y: s.MeanSpeed})
	}

	for i, series := range []struct {
		name string
		xys  plotter.XYs
	}{{"mass", mass}, {"max speed", peak}, {"mean speed", mean}} {
		line, err := plotter.NewLine(series.xys)
		if err != nil {
			return fmt.Errorf("failed to build %s line: %w", series.name, err)
		}
		line.Width = vg.Points(1)
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(series.name, line)
	}

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
