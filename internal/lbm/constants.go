package lbm

import "gonum.org/v1/gonum/spatial/r2"

// Offset is an integer lattice velocity.
type Offset struct{ DX, DY int }

var (
	weights = Site{
		1.0 / 36, 1.0 / 9, 1.0 / 36,
		1.0 / 9, 4.0 / 9, 1.0 / 9,
		1.0 / 36, 1.0 / 9, 1.0 / 36,
	}
	offsets    [Q]Offset
	velocities [Q]r2.Vec
)

func init() {
	for i := range Q {
		o := Offset{DX: i%3 - 1, DY: i/3 - 1}
		offsets[i] = o
		velocities[i] = r2.Vec{X: float64(o.DX), Y: float64(o.DY)}
	}
}

// Weights returns the D2Q9 lattice weights indexed like a Site.
func Weights() Site { return weights }

// Offsets returns the integer velocity of every direction.
func Offsets() [Q]Offset { return offsets }

// Velocities returns the velocity of every direction as a float vector.
func Velocities() [Q]r2.Vec { return velocities }
