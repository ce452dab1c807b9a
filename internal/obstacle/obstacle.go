// Package obstacle paints solid cells onto an obstacle mask. Shapes are
// clipped to the mask; cells outside it are silently skipped.
package obstacle

import (
	"fmt"
	"math"

	"github.com/pythonian23/lattice/internal/grid"
	"github.com/pythonian23/lattice/internal/lbm"
)

// Mask is the solid-cell grid an Engine consults during streaming.
type Mask = grid.Dense2D[bool]

// Shape marks cells of a mask as solid.
type Shape interface {
	Paint(m *Mask) int
}

func mark(m *Mask, x, y int) int {
	if !m.InBounds(x, y) || m.At(x, y) {
		return 0
	}
	m.Set(x, y, true)
	return 1
}

// Ring is the closed one-cell border the engine starts with.
type Ring struct{}

func (Ring) Paint(m *Mask) int {
	before := Count(m)
	lbm.Ring(m)
	return Count(m) - before
}

// Circle covers cells with dx*dx + dy*dy < R*R around (X, Y).
type Circle struct {
	X, Y, R int
}

// Paint marks the circle and returns the number of newly solid cells.
func (c Circle) Paint(m *Mask) int {
	n := 0
	for i := -c.R; i <= c.R; i++ {
		for j := -c.R; j <= c.R; j++ {
			if i*i+j*j < c.R*c.R {
				n += mark(m, c.X+i, c.Y+j)
			}
		}
	}
	return n
}

// Wall is a vertical segment at column X covering rows Y0..Y1 inclusive.
type Wall struct {
	X, Y0, Y1 int
}

func (w Wall) Paint(m *Mask) int {
	y0, y1 := min(w.Y0, w.Y1), max(w.Y0, w.Y1)
	n := 0
	for y := y0; y <= y1; y++ {
		n += mark(m, w.X, y)
	}
	return n
}

// Rect is an axis-aligned block with inclusive corners.
type Rect struct {
	X0, Y0, X1, Y1 int
}

func (r Rect) Paint(m *Mask) int {
	n := 0
	for y := min(r.Y0, r.Y1); y <= max(r.Y0, r.Y1); y++ {
		for x := min(r.X0, r.X1); x <= max(r.X0, r.X1); x++ {
			n += mark(m, x, y)
		}
	}
	return n
}

// Airfoil is a NACA 4-digit profile whose chord starts at column X and spans
// Chord cells, centred vertically on row Y.
type Airfoil struct {
	X, Y, Chord int
	Camber      float64 // m, maximum camber as a fraction of chord
	CamberPos   float64 // p, position of maximum camber
	Thickness   float64 // t, maximum thickness as a fraction of chord
}

// NACA2412 returns the classic 2412 profile.
func NACA2412(x, y, chord int) Airfoil {
	return Airfoil{X: x, Y: y, Chord: chord, Camber: 0.02, CamberPos: 0.4, Thickness: 0.12}
}

func (a Airfoil) Paint(m *Mask) int {
	if a.Chord <= 0 {
		return 0
	}
	c := float64(a.Chord)
	n := 0
	for i := 0; i <= a.Chord; i++ {
		lower, upper := a.surface(float64(i) / c)
		for y := int(math.Floor(float64(a.Y) - upper*c)); y <= int(math.Ceil(float64(a.Y)-lower*c)); y++ {
			yn := (float64(a.Y) - float64(y)) / c
			if yn >= lower && yn <= upper {
				n += mark(m, a.X+i, y)
			}
		}
	}
	return n
}

// surface returns the lower and upper surface heights at chord fraction xn.
// Heights grow upwards; Paint flips them to grid rows.
func (a Airfoil) surface(xn float64) (lower, upper float64) {
	m, p := a.Camber, a.CamberPos
	var yc, slope float64
	switch {
	case p <= 0 || p >= 1:
	case xn < p:
		yc = m / (p * p) * (2*p*xn - xn*xn)
		slope = 2 * m / (p * p) * (p - xn)
	default:
		yc = m / ((1 - p) * (1 - p)) * ((1 - 2*p) + 2*p*xn - xn*xn)
		slope = 2 * m / ((1 - p) * (1 - p)) * (p - xn)
	}
	yt := 5 * a.Thickness * (0.2969*math.Sqrt(xn) - 0.1260*xn - 0.3516*xn*xn + 0.2843*xn*xn*xn - 0.1015*xn*xn*xn*xn)
	dy := yt * math.Cos(math.Atan(slope))
	return yc - dy, yc + dy
}

// Spec is the serialisable form of a shape, as found in run configuration.
type Spec struct {
	Kind  string `json:"kind"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	X1    int    `json:"x1,omitempty"`
	Y1    int    `json:"y1,omitempty"`
	R     int    `json:"r,omitempty"`
	Chord int    `json:"chord,omitempty"`
}

// Shape converts s into a paintable shape.
func (s Spec) Shape() (Shape, error) {
	switch s.Kind {
	case "ring":
		return Ring{}, nil
	case "circle":
		if s.R <= 0 {
			return nil, fmt.Errorf("circle radius must be positive, got %d", s.R)
		}
		return Circle{X: s.X, Y: s.Y, R: s.R}, nil
	case "wall":
		return Wall{X: s.X, Y0: s.Y, Y1: s.Y1}, nil
	case "rect":
		return Rect{X0: s.X, Y0: s.Y, X1: s.X1, Y1: s.Y1}, nil
	case "airfoil":
		if s.Chord <= 0 {
			return nil, fmt.Errorf("airfoil chord must be positive, got %d", s.Chord)
		}
		return NACA2412(s.X, s.Y, s.Chord), nil
	default:
		return nil, fmt.Errorf("unknown obstacle kind %q", s.Kind)
	}
}

// PaintAll paints every shape and returns the total number of newly solid cells.
func PaintAll(m *Mask, shapes ...Shape) int {
	n := 0
	for _, s := range shapes {
		n += s.Paint(m)
	}
	return n
}

// Count returns the number of solid cells in m.
func Count(m *Mask) int {
	n := 0
	for _, v := range m.Data() {
		if v {
			n++
		}
	}
	return n
}
