// Package geom holds the 8-way compass and torus coordinate primitives
// shared by the engine and the algorithm core.
package geom

// Direction is one of the 8 compass headings a tank or shell can face.
// Values are ordered so that rotation is addition modulo 8.
type Direction int

const (
	U Direction = iota
	UR
	R
	DR
	D
	DL
	L
	UL
)

var names = [8]string{"U", "UR", "R", "DR", "D", "DL", "L", "UL"}

func (d Direction) String() string {
	return names[d&7]
}

// offsets mirrors original_source/UserCommon/UC_include/Direction.h's directionMap.
var offsets = [8]Point{
	U:  {0, -1},
	UR: {1, -1},
	R:  {1, 0},
	DR: {1, 1},
	D:  {0, 1},
	DL: {-1, 1},
	L:  {-1, 0},
	UL: {-1, -1},
}

// Offset returns the (dx, dy) unit step for this direction.
func (d Direction) Offset() Point {
	return offsets[d&7]
}

// RotateLeft45 rotates the direction one 45-degree step counter-clockwise.
func (d Direction) RotateLeft45() Direction { return (d + 7) & 7 }

// RotateRight45 rotates the direction one 45-degree step clockwise.
func (d Direction) RotateRight45() Direction { return (d + 1) & 7 }

// RotateLeft90 rotates the direction 90 degrees counter-clockwise.
func (d Direction) RotateLeft90() Direction { return (d + 6) & 7 }

// RotateRight90 rotates the direction 90 degrees clockwise.
func (d Direction) RotateRight90() Direction { return (d + 2) & 7 }

// Opposite returns the direction 180 degrees from d.
func (d Direction) Opposite() Direction { return (d + 4) & 7 }

// IsDiagonal reports whether d is one of the four diagonal headings.
func (d Direction) IsDiagonal() bool {
	return d&1 == 1
}

// AngleDiff returns the number of clockwise (RotateRight45) steps, in
// [0,8), needed to rotate from d to target.
func (d Direction) AngleDiff(target Direction) int {
	return int((target - d + 8) & 7)
}

// Point is a grid coordinate. Arithmetic on Point does not wrap; wrapping
// is the caller's job via Wrap, since only the board knows (W, H).
type Point struct {
	X, Y int
}

// Add returns p shifted by the given direction's unit offset.
func (p Point) Add(d Direction) Point {
	off := d.Offset()
	return Point{p.X + off.X, p.Y + off.Y}
}

// Wrap folds p onto a torus of width w and height h.
func (p Point) Wrap(w, h int) Point {
	return Point{mod(p.X, w), mod(p.Y, h)}
}

func mod(a, n int) int {
	if n <= 0 {
		return 0
	}
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
