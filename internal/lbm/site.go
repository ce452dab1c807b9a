package lbm

import "fmt"

// Q is the number of discrete velocities.
const Q = 9

// Site is the distribution function at one lattice point. Direction (dx, dy)
// is stored at index (dx+1) + (dy+1)*3.
type Site [Q]float64

// Dir returns the storage index of offset (dx, dy). It panics unless both
// components are in {-1, 0, 1}.
func Dir(dx, dy int) int {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		panic(fmt.Sprintf("lbm: offset (%d,%d) out of range", dx, dy))
	}
	return (dx + 1) + (dy+1)*3
}

// Opposite returns the direction index of the reversed offset.
func Opposite(i int) int { return Q - 1 - i }

// At returns the population travelling along (dx, dy).
func (s Site) At(dx, dy int) float64 { return s[Dir(dx, dy)] }

// Set stores the population travelling along (dx, dy).
func (s *Site) Set(dx, dy int, v float64) { s[Dir(dx, dy)] = v }

// Add accumulates v into the population travelling along (dx, dy).
func (s *Site) Add(dx, dy int, v float64) { s[Dir(dx, dy)] += v }

// Scale multiplies every population by k.
func (s *Site) Scale(k float64) {
	for i := range s {
		s[i] *= k
	}
}

// IsZero reports whether all populations are zero.
func (s Site) IsZero() bool { return s == Site{} }
