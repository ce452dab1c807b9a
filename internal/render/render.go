// Package render turns lattice snapshots into paletted images and GIFs.
package render

import (
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"

	"github.com/mazznoer/colorgrad"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pythonian23/lattice/internal/grid"
)

// Palette slots after the speed ramp.
const (
	rampSize      = 254
	ObstacleIndex = rampSize
	TracerIndex   = rampSize + 1
)

// Palette returns the 256-colour palette used for frames: a Viridis ramp for
// speed, then the obstacle and tracer colours.
func Palette() color.Palette {
	pal := make(color.Palette, 0, rampSize+2)
	for _, c := range colorgrad.Viridis().Colors(rampSize) {
		pal = append(pal, c)
	}
	pal = append(pal,
		color.RGBA{R: 0x8b, A: 0xff},
		color.White,
	)
	return pal
}

// Renderer maps speed fields to images. Scale is the number of pixels per
// lattice cell; Gain maps speed to the [0, 1] ramp before clamping.
type Renderer struct {
	Scale int
	Gain  float64

	pal color.Palette
}

// NewRenderer returns a renderer with the default palette.
func NewRenderer(scale int, gain float64) *Renderer {
	if scale < 1 {
		scale = 1
	}
	return &Renderer{Scale: scale, Gain: gain, pal: Palette()}
}

// RampIndex maps a speed to a ramp slot. NaN maps to the top of the ramp so
// a blown-up simulation stays visible.
func (r *Renderer) RampIndex(speed float64) uint8 {
	v := speed * r.Gain
	switch {
	case math.IsNaN(v) || v >= 1:
		return rampSize - 1
	case v <= 0:
		return 0
	}
	return uint8(v * (rampSize - 1))
}

// Render draws one frame. speed is rows x cols (y by x); solid may be nil.
func (r *Renderer) Render(speed *mat.Dense, solid *grid.Dense2D[bool], tracers []r2.Vec) *image.Paletted {
	rows, cols := speed.Dims()
	img := image.NewPaletted(image.Rect(0, 0, cols*r.Scale, rows*r.Scale), r.pal)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			idx := r.RampIndex(speed.At(y, x))
			if solid != nil && solid.At(x, y) {
				idx = ObstacleIndex
			}
			for py := y * r.Scale; py < (y+1)*r.Scale; py++ {
				for px := x * r.Scale; px < (x+1)*r.Scale; px++ {
					img.SetColorIndex(px, py, idx)
				}
			}
		}
	}

	bounds := img.Bounds()
	for _, p := range tracers {
		pt := image.Pt(int(math.Floor(p.X*float64(r.Scale))), int(math.Floor(p.Y*float64(r.Scale))))
		if pt.In(bounds) {
			img.SetColorIndex(pt.X, pt.Y, TracerIndex)
		}
	}
	return img
}

// Animation collects frames for a looping GIF.
type Animation struct {
	gif.GIF
}

// Add appends a frame shown for delay hundredths of a second.
func (a *Animation) Add(img *image.Paletted, delay int) {
	a.Image = append(a.Image, img)
	a.Delay = append(a.Delay, delay)
}

// Len returns the number of frames.
func (a *Animation) Len() int { return len(a.Image) }

// Encode writes the animation to w.
func (a *Animation) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &a.GIF)
}
