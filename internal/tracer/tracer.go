// Package tracer advects massless particles through the lattice velocity
// field to visualise streamlines.
package tracer

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pythonian23/lattice/internal/grid"
	"github.com/pythonian23/lattice/internal/lbm"
)

// Streamers is a fixed-size population of tracer particles. Positions are in
// lattice units, cell (x, y) covering [x, x+1) x [y, y+1).
type Streamers struct {
	Particles []r2.Vec

	width, height int
	rng           *rand.Rand
}

// New scatters n particles uniformly over the interior of a width x height
// lattice. The same seed reproduces the same run.
func New(n, width, height int, seed uint64) *Streamers {
	s := &Streamers{
		Particles: make([]r2.Vec, n),
		width:     width,
		height:    height,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	for i := range s.Particles {
		s.Particles[i] = s.spawn()
	}
	return s
}

func (s *Streamers) spawn() r2.Vec {
	return r2.Vec{
		X: 1 + s.rng.Float64()*float64(s.width-2),
		Y: 1 + s.rng.Float64()*float64(s.height-2),
	}
}

// Step respawns one random particle, then moves every particle by the
// interpolated velocity at its position. Particles over a solid cell or
// outside the sampleable area are respawned instead.
func (s *Streamers) Step(g *grid.Dense2D[lbm.Site], mask *grid.Dense2D[bool]) {
	if len(s.Particles) == 0 {
		return
	}
	s.Particles[s.rng.IntN(len(s.Particles))] = s.spawn()

	for i, p := range s.Particles {
		x, y, frac, ok := cellOf(g, p)
		if !ok || mask.At(x, y) {
			s.Particles[i] = s.spawn()
			continue
		}
		s.Particles[i] = r2.Add(p, bilinear(g, x, y, frac))
	}
}

// Velocity returns the bilinearly interpolated Momentum at p, or the zero
// vector when p lies outside the sampleable area.
func Velocity(g *grid.Dense2D[lbm.Site], p r2.Vec) r2.Vec {
	x, y, frac, ok := cellOf(g, p)
	if !ok {
		return r2.Vec{}
	}
	return bilinear(g, x, y, frac)
}

// cellOf returns the top-left cell of the 2x2 stencil around p and the
// fractional offset inside it. Samples sit at cell centres.
func cellOf(g *grid.Dense2D[lbm.Site], p r2.Vec) (x, y int, frac r2.Vec, ok bool) {
	v := r2.Sub(p, r2.Vec{X: 0.5, Y: 0.5})
	if math.IsNaN(v.X) || math.IsNaN(v.Y) {
		return 0, 0, r2.Vec{}, false
	}
	v.X = math.Max(v.X, 0)
	v.Y = math.Max(v.Y, 0)
	fx, fy := math.Floor(v.X), math.Floor(v.Y)
	if fx+1 >= float64(g.Width()) || fy+1 >= float64(g.Height()) {
		return 0, 0, r2.Vec{}, false
	}
	return int(fx), int(fy), r2.Vec{X: v.X - fx, Y: v.Y - fy}, true
}

func bilinear(g *grid.Dense2D[lbm.Site], x, y int, frac r2.Vec) r2.Vec {
	tl := lbm.Momentum(g.At(x, y))
	tr := lbm.Momentum(g.At(x+1, y))
	bl := lbm.Momentum(g.At(x, y+1))
	br := lbm.Momentum(g.At(x+1, y+1))
	top := lerp(tl, tr, frac.X)
	bottom := lerp(bl, br, frac.X)
	return lerp(top, bottom, frac.Y)
}

func lerp(a, b r2.Vec, t float64) r2.Vec {
	return r2.Add(a, r2.Scale(t, r2.Sub(b, a)))
}
