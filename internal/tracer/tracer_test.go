package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pythonian23/lattice/internal/grid"
	"github.com/pythonian23/lattice/internal/lbm"
)

func eastward(w, h int, speed float64) *grid.Dense2D[lbm.Site] {
	g := grid.New[lbm.Site](w, h)
	for i := range g.Data() {
		g.Data()[i].Set(1, 0, speed)
	}
	return g
}

func TestNewScattersInsideInterior(t *testing.T) {
	t.Parallel()

	s := New(500, 20, 10, 7)
	require.Len(t, s.Particles, 500)
	for _, p := range s.Particles {
		assert.GreaterOrEqual(t, p.X, 1.0)
		assert.LessOrEqual(t, p.X, 19.0)
		assert.GreaterOrEqual(t, p.Y, 1.0)
		assert.LessOrEqual(t, p.Y, 9.0)
	}

	assert.Equal(t, s.Particles, New(500, 20, 10, 7).Particles, "same seed, same layout")
	assert.NotEqual(t, s.Particles, New(500, 20, 10, 8).Particles)
}

func TestVelocityInterpolation(t *testing.T) {
	t.Parallel()

	g := grid.New[lbm.Site](4, 4)
	g.Ptr(1, 1).Set(1, 0, 1)
	g.Ptr(2, 1).Set(1, 0, 3)

	// Cell centres sample exactly.
	assert.Equal(t, r2.Vec{X: 1}, Velocity(g, r2.Vec{X: 1.5, Y: 1.5}))
	assert.Equal(t, r2.Vec{X: 3}, Velocity(g, r2.Vec{X: 2.5, Y: 1.5}))

	mid := Velocity(g, r2.Vec{X: 2, Y: 1.5})
	assert.InDelta(t, 2.0, mid.X, 1e-12)
	assert.InDelta(t, 0.0, mid.Y, 1e-12)

	below := Velocity(g, r2.Vec{X: 1.5, Y: 2})
	assert.InDelta(t, 0.5, below.X, 1e-12)

	assert.Equal(t, r2.Vec{}, Velocity(g, r2.Vec{X: 3.9, Y: 1.5}))
}

func TestStepAdvects(t *testing.T) {
	t.Parallel()

	g := eastward(30, 10, 0.25)
	mask := grid.New[bool](30, 10)
	s := New(2, 30, 10, 1)
	s.Particles[0] = r2.Vec{X: 5, Y: 5}
	s.Particles[1] = r2.Vec{X: 10, Y: 5}

	s.Step(g, mask)

	// One of the two was respawned; the other moved a quarter cell east.
	moved := 0
	for i, start := range []r2.Vec{{X: 5, Y: 5}, {X: 10, Y: 5}} {
		if s.Particles[i] == r2.Add(start, r2.Vec{X: 0.25}) {
			moved++
		}
	}
	assert.GreaterOrEqual(t, moved, 1)
}

func TestStepRespawnsOnObstaclesAndEdges(t *testing.T) {
	t.Parallel()

	g := eastward(10, 10, 0)
	mask := grid.New[bool](10, 10)
	mask.Set(4, 4, true)

	s := New(3, 10, 10, 3)
	s.Particles[0] = r2.Vec{X: 4.6, Y: 4.6}
	s.Particles[1] = r2.Vec{X: 50, Y: 2}
	s.Particles[2] = r2.Vec{X: 2.5, Y: 2.5}

	for range 3 {
		s.Step(g, mask)
	}
	for _, p := range s.Particles {
		assert.Less(t, p.X, 10.0)
		assert.Less(t, p.Y, 10.0)
	}
	assert.NotEqual(t, r2.Vec{X: 50, Y: 2}, s.Particles[1])
	assert.NotEqual(t, r2.Vec{X: 4.6, Y: 4.6}, s.Particles[0])
}

func TestStepEmpty(t *testing.T) {
	t.Parallel()

	s := New(0, 5, 5, 0)
	assert.NotPanics(t, func() { s.Step(grid.New[lbm.Site](5, 5), grid.New[bool](5, 5)) })
}
