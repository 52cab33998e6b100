package board

import (
	"strings"

	"github.com/tanktourney/tanktourney/geom"
)

// Board is an immutable-by-convention snapshot of the grid. Callers that
// need to mutate cells (the engine) work on an owned Board value and
// never hand out the backing slice; callers that only observe (the
// algorithm core) read it through the SatelliteView interface.
//
// Coordinates wrap: (x,y) is always folded onto [0,W) x [0,H) before
// indexing, so the board behaves as a torus per spec.md §3.
type Board struct {
	W, H  int
	cells []Cell
}

// New returns a W x H board filled with Empty cells.
func New(w, h int) *Board {
	b := &Board{W: w, H: h, cells: make([]Cell, w*h)}
	for i := range b.cells {
		b.cells[i] = Empty
	}
	return b
}

func (b *Board) index(x, y int) int {
	p := geom.Point{X: x, Y: y}.Wrap(b.W, b.H)
	return p.Y*b.W + p.X
}

// ObjectAt returns the cell at (x, y), wrapping coordinates onto the
// torus. It never returns OutOfBounds for an in-range board; that
// sentinel is reserved for SatelliteView implementations fed coordinates
// outside their declared bounds.
func (b *Board) ObjectAt(x, y int) Cell {
	if b == nil || b.W <= 0 || b.H <= 0 {
		return OutOfBounds
	}
	return b.cells[b.index(x, y)]
}

// Set writes a cell at (x, y), wrapping coordinates onto the torus.
func (b *Board) Set(x, y int, c Cell) {
	b.cells[b.index(x, y)] = c
}

// Clone deep-copies the board. Safe for concurrent readers of the
// original to keep working while the clone is mutated.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := &Board{W: b.W, H: b.H, cells: make([]Cell, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}

// Lines renders the board row by row, normalizing WeakWall ('$') to Wall
// ('#') per the output format in spec.md §6.
func (b *Board) Lines() []string {
	lines := make([]string, b.H)
	for y := 0; y < b.H; y++ {
		var sb strings.Builder
		for x := 0; x < b.W; x++ {
			c := b.ObjectAt(x, y)
			if c == WeakWall {
				c = Wall
			}
			sb.WriteByte(byte(c))
		}
		lines[y] = sb.String()
	}
	return lines
}

// Equal reports whether two boards are equal under the comparative
// grouping equivalence from spec.md §4.7: same dimensions, and cell by
// cell equal after normalizing WeakWall to Wall.
func Equal(a, b *Board) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.W != b.W || a.H != b.H {
		return false
	}
	for y := 0; y < a.H; y++ {
		for x := 0; x < a.W; x++ {
			ca, cb := a.ObjectAt(x, y), b.ObjectAt(x, y)
			if ca == WeakWall {
				ca = Wall
			}
			if cb == WeakWall {
				cb = Wall
			}
			if ca != cb {
				return false
			}
		}
	}
	return true
}

// SatelliteView is the read-only contract handed to algorithms, mirroring
// original_source/UserCommon/UC_include/ExtSatelliteView.h. Implementors
// must return OutOfBounds for coordinates beyond their declared bounds
// rather than panicking (spec.md §7: "out-of-bounds snapshot access
// returns the & sentinel; never throws").
type SatelliteView interface {
	ObjectAt(x, y int) Cell
}
