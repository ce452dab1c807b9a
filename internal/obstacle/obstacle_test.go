package obstacle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pythonian23/lattice/internal/grid"
)

func TestCircle(t *testing.T) {
	t.Parallel()

	m := grid.New[bool](11, 11)
	n := Circle{X: 5, Y: 5, R: 2}.Paint(m)

	// i*i+j*j < 4: the centre, 4 axis cells at distance 1 and 4 diagonals.
	assert.Equal(t, 9, n)
	assert.True(t, m.At(5, 5))
	assert.True(t, m.At(6, 6))
	assert.False(t, m.At(7, 5))
	assert.Equal(t, n, Count(m))

	assert.Zero(t, Circle{X: 5, Y: 5, R: 2}.Paint(m), "repainting marks nothing new")
}

func TestCircleIsClipped(t *testing.T) {
	t.Parallel()

	m := grid.New[bool](4, 4)
	assert.NotPanics(t, func() { Circle{X: 0, Y: 0, R: 3}.Paint(m) })
	assert.True(t, m.At(0, 0))
	assert.False(t, m.At(3, 3))
}

func TestWallAndRect(t *testing.T) {
	t.Parallel()

	m := grid.New[bool](6, 6)
	assert.Equal(t, 4, Wall{X: 2, Y0: 4, Y1: 1}.Paint(m))
	for y := 1; y <= 4; y++ {
		assert.True(t, m.At(2, y))
	}
	assert.False(t, m.At(2, 0))

	assert.Equal(t, 4, Rect{X0: 4, Y0: 4, X1: 5, Y1: 5}.Paint(m))
	assert.Equal(t, 2, Rect{X0: 5, Y0: 5, X1: 9, Y1: 5}.Paint(grid.New[bool](7, 7)))
}

func TestRing(t *testing.T) {
	t.Parallel()

	m := grid.New[bool](4, 3)
	assert.Equal(t, 10, Ring{}.Paint(m))
	assert.False(t, m.At(1, 1))
	assert.False(t, m.At(2, 1))
}

func TestAirfoil(t *testing.T) {
	t.Parallel()

	m := grid.New[bool](80, 40)
	n := NACA2412(10, 20, 50).Paint(m)
	require.Positive(t, n)

	assert.True(t, m.At(20, 20), "profile covers the chord line near max thickness")
	assert.False(t, m.At(5, 20), "nothing ahead of the leading edge")
	assert.False(t, m.At(70, 20), "nothing behind the trailing edge")
	assert.False(t, m.At(20, 5))
	assert.Zero(t, Airfoil{Chord: 0}.Paint(m))
}

func TestSpecShape(t *testing.T) {
	t.Parallel()

	cases := []struct {
		spec Spec
		want Shape
	}{
		{Spec{Kind: "ring"}, Ring{}},
		{Spec{Kind: "circle", X: 1, Y: 2, R: 3}, Circle{X: 1, Y: 2, R: 3}},
		{Spec{Kind: "wall", X: 4, Y: 1, Y1: 9}, Wall{X: 4, Y0: 1, Y1: 9}},
		{Spec{Kind: "rect", X: 1, Y: 2, X1: 3, Y1: 4}, Rect{X0: 1, Y0: 2, X1: 3, Y1: 4}},
		{Spec{Kind: "airfoil", X: 1, Y: 2, Chord: 30}, NACA2412(1, 2, 30)},
	}
	for _, tc := range cases {
		got, err := tc.spec.Shape()
		require.NoError(t, err, tc.spec.Kind)
		assert.Equal(t, tc.want, got)
	}

	for _, bad := range []Spec{{Kind: "blob"}, {Kind: "circle"}, {Kind: "airfoil"}} {
		_, err := bad.Shape()
		assert.Error(t, err, "%+v", bad)
	}
}

func TestPaintAll(t *testing.T) {
	t.Parallel()

	m := grid.New[bool](10, 10)
	n := PaintAll(m, Wall{X: 3, Y0: 0, Y1: 9}, Wall{X: 3, Y0: 0, Y1: 9}, Circle{X: 7, Y: 7, R: 1})
	assert.Equal(t, 11, n)
	assert.Equal(t, 11, Count(m))
}
