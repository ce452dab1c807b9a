// Package grid provides a fixed-size, row-major 2D container used for the
// lattice populations and the obstacle mask.
package grid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Dense2D is a width x height array of T backed by one flat slice.
// Cell (x, y) lives at index y*width + x.
type Dense2D[T any] struct {
	width, height int
	data          []T
}

// New allocates a zero-valued grid. Negative dimensions panic.
func New[T any](width, height int) *Dense2D[T] {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("grid: negative dimensions %dx%d", width, height))
	}
	return &Dense2D[T]{width: width, height: height, data: make([]T, width*height)}
}

// Width returns the number of columns.
func (g *Dense2D[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Dense2D[T]) Height() int { return g.height }

// Len returns width*height.
func (g *Dense2D[T]) Len() int { return len(g.data) }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Dense2D[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Index returns the flat index of (x, y), panicking when out of range.
func (g *Dense2D[T]) Index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: index (%d,%d) out of range %dx%d", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// At returns a copy of the value at (x, y).
func (g *Dense2D[T]) At(x, y int) T { return g.data[g.Index(x, y)] }

// Set stores v at (x, y).
func (g *Dense2D[T]) Set(x, y int, v T) { g.data[g.Index(x, y)] = v }

// Ptr returns a pointer to the cell at (x, y) so large values can be edited in place.
func (g *Dense2D[T]) Ptr(x, y int) *T { return &g.data[g.Index(x, y)] }

// Data exposes the backing slice in row-major order.
func (g *Dense2D[T]) Data() []T { return g.data }

// Fill sets every cell to v.
func (g *Dense2D[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clear resets every cell to the zero value of T.
func (g *Dense2D[T]) Clear() {
	clear(g.data)
}

// Clone returns a deep copy with its own backing store.
func (g *Dense2D[T]) Clone() *Dense2D[T] {
	c := New[T](g.width, g.height)
	copy(c.data, g.data)
	return c
}

// SameShape reports whether g and o have identical dimensions.
func SameShape[T, U any](g *Dense2D[T], o *Dense2D[U]) bool {
	return g.width == o.width && g.height == o.height
}

// Scalar projects every cell through f into a height x width matrix, so that
// row i, column j of the result holds f(g.At(j, i)).
func Scalar[T any](g *Dense2D[T], f func(T) float64) *mat.Dense {
	m := mat.NewDense(g.height, g.width, nil)
	for y := 0; y < g.height; y++ {
		row := g.data[y*g.width : (y+1)*g.width]
		for x, v := range row {
			m.Set(y, x, f(v))
		}
	}
	return m
}
