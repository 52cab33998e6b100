// Package algo implements the per-tank decision core (C8): the BFS
// pursuit algorithm, the shoot/evade decision ladder, the rotation
// primitive, and the battle-info exchange contract against the engine.
// It mirrors original_source/Algorithm/Algo_src/TankAlgorithm_*.cpp and
// Player_*.cpp, reframed around the engine package's exported
// TankAlgorithm/Player interfaces instead of the original's virtual
// base classes.
package algo

import "github.com/tanktourney/tanktourney/geom"

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// wrapDelta folds a 1-D delta onto the shortest signed distance around a
// torus of the given size, e.g. on a width-10 board a delta of 8
// becomes -2 (it's shorter to go the other way around).
func wrapDelta(d, size int) int {
	if size <= 0 {
		return d
	}
	d = ((d % size) + size) % size
	if d*2 > size {
		d -= size
	}
	return d
}

// aligned reports whether delta (dx, dy) lies on one of the 8 compass
// rays from the origin: same row, same column, or a diagonal.
func aligned(dx, dy int) bool {
	return dx == 0 || dy == 0 || abs(dx) == abs(dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// deltaToDirection maps an aligned delta to the compass direction it
// points along. Callers must check aligned(dx, dy) first; the result is
// meaningless for a delta not aligned to one of the 8 rays.
func deltaToDirection(dx, dy int) geom.Direction {
	sx, sy := sign(dx), sign(dy)
	switch {
	case sx == 0 && sy < 0:
		return geom.U
	case sx > 0 && sy < 0:
		return geom.UR
	case sx > 0 && sy == 0:
		return geom.R
	case sx > 0 && sy > 0:
		return geom.DR
	case sx == 0 && sy > 0:
		return geom.D
	case sx < 0 && sy > 0:
		return geom.DL
	case sx < 0 && sy == 0:
		return geom.L
	default:
		return geom.UL
	}
}

// torusDirection returns the compass direction from 'from' to 'to' on a
// w x h torus, taking whichever way around is shorter, along with
// whether the two points are aligned on one of the 8 rays at all.
func torusDirection(from, to geom.Point, w, h int) (geom.Direction, bool) {
	dx := wrapDelta(to.X-from.X, w)
	dy := wrapDelta(to.Y-from.Y, h)
	if dx == 0 && dy == 0 {
		return geom.U, false
	}
	if !aligned(dx, dy) {
		return geom.U, false
	}
	return deltaToDirection(dx, dy), true
}
