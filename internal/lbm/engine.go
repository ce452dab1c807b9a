package lbm

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pythonian23/lattice/internal/grid"
)

// ErrInvalidConfig is returned by New for dimensions without an interior.
var ErrInvalidConfig = errors.New("lbm: invalid configuration")

// MinSize is the smallest width or height that leaves an interior cell.
const MinSize = 3

// Engine owns the two population grids and the obstacle mask. It is not safe
// for concurrent use; callers mutate the grids only between calls to Step.
type Engine struct {
	cur, next *grid.Dense2D[Site]
	mask      *grid.Dense2D[bool]

	workers int
	ticks   uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers splits the collision phase across n goroutines, one band of
// rows each. n <= 1 keeps the whole step on the calling goroutine.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// New creates a width x height engine with all populations zero and a solid
// one-cell ring around the domain.
func New(width, height int, opts ...Option) (*Engine, error) {
	if width < MinSize || height < MinSize {
		return nil, fmt.Errorf("%w: %dx%d lattice, need at least %dx%d", ErrInvalidConfig, width, height, MinSize, MinSize)
	}
	e := &Engine{
		cur:     grid.New[Site](width, height),
		next:    grid.New[Site](width, height),
		mask:    grid.New[bool](width, height),
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	Ring(e.mask)
	return e, nil
}

// Ring marks the outermost row and column on every side of mask as solid.
func Ring(mask *grid.Dense2D[bool]) {
	w, h := mask.Width(), mask.Height()
	for x := 0; x < w; x++ {
		mask.Set(x, 0, true)
		mask.Set(x, h-1, true)
	}
	for y := 0; y < h; y++ {
		mask.Set(0, y, true)
		mask.Set(w-1, y, true)
	}
}

// Width returns the lattice width.
func (e *Engine) Width() int { return e.cur.Width() }

// Height returns the lattice height.
func (e *Engine) Height() int { return e.cur.Height() }

// Ticks returns the number of completed steps since New or Reset.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Grid returns the buffer the next Step reads from. Writes made through it
// before Step are seen by that step's collision phase. The returned pointer
// changes role after every Step.
func (e *Engine) Grid() *grid.Dense2D[Site] { return e.cur }

// Obstacles returns the obstacle mask; true marks a solid cell.
func (e *Engine) Obstacles() *grid.Dense2D[bool] { return e.mask }

// Reset zeroes both population buffers, restores the default ring mask and
// the tick counter.
func (e *Engine) Reset() {
	e.cur.Clear()
	e.next.Clear()
	e.mask.Clear()
	Ring(e.mask)
	e.ticks = 0
}

// TotalDensity sums Density over every cell of the current buffer.
func (e *Engine) TotalDensity() float64 {
	var total float64
	for _, f := range e.cur.Data() {
		total += Density(f)
	}
	return total
}

// Step advances the lattice by one tick: collision in place on the current
// buffer, then streaming into the other buffer, then a swap. omega is not
// validated; values outside [0, 2] are unstable but allowed.
func (e *Engine) Step(omega float64) {
	e.collide(omega)
	e.stream()
	e.cur, e.next = e.next, e.cur
	e.ticks++
}

func (e *Engine) collide(omega float64) {
	h := e.Height()
	if e.workers <= 1 || h < 2*e.workers {
		e.collideRows(omega, 0, h)
		return
	}

	band := h / e.workers
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		y0 := w * band
		y1 := y0 + band
		if w == e.workers-1 {
			y1 = h
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.collideRows(omega, y0, y1)
		}()
	}
	wg.Wait()
}

func (e *Engine) collideRows(omega float64, y0, y1 int) {
	w := e.Width()
	cells := e.cur.Data()[y0*w : y1*w]
	for i := range cells {
		cells[i] = Relax(cells[i], Equilibrium(cells[i]), omega)
	}
}

// stream pushes every population of each interior cell to its neighbour, or
// back into the opposite direction of the same cell when the neighbour is
// solid. Border cells are never sources.
func (e *Engine) stream() {
	e.next.Clear()
	w, h := e.Width(), e.Height()
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			src := e.cur.Ptr(x, y)
			for i, o := range offsets {
				nx, ny := x+o.DX, y+o.DY
				if e.mask.At(nx, ny) {
					e.next.Ptr(x, y)[Opposite(i)] += src[i]
				} else {
					e.next.Ptr(nx, ny)[i] += src[i]
				}
			}
		}
	}
}
