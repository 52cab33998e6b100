package algo

import (
	"github.com/tanktourney/tanktourney/engine"
	"github.com/tanktourney/tanktourney/geom"
)

// rotationActions implements the rotation primitive table from
// spec.md §4.5: given the tank's current facing and the direction it
// needs to travel, return the minimal-rotation action sequence and the
// facing the tank will have once every queued action has executed.
//
// preferShoot is set when the caller is planning an evasion move: if
// the chosen cell is directly behind the tank (diff == 4) and canShoot
// holds, shooting in place is preferred over the slow backward step,
// mirroring the original's evade-case-4 special case.
func rotationActions(facing, target geom.Direction, preferShoot, canShoot bool) (actions []engine.Action, finalFacing geom.Direction) {
	diff := (int(facing) - int(target) + 8) % 8
	switch diff {
	case 0:
		return []engine.Action{engine.MoveForward}, facing
	case 1:
		return []engine.Action{engine.RotateLeft45, engine.MoveForward}, facing.RotateLeft45()
	case 2:
		return []engine.Action{engine.RotateLeft90, engine.MoveForward}, facing.RotateLeft90()
	case 3:
		return []engine.Action{engine.RotateLeft90, engine.RotateLeft45, engine.MoveForward}, facing.RotateLeft90().RotateLeft45()
	case 4:
		if preferShoot && canShoot {
			return []engine.Action{engine.Shoot}, facing
		}
		return []engine.Action{engine.MoveBackward}, facing
	case 5:
		return []engine.Action{engine.RotateRight90, engine.RotateRight45, engine.MoveForward}, facing.RotateRight90().RotateRight45()
	case 6:
		return []engine.Action{engine.RotateRight90, engine.MoveForward}, facing.RotateRight90()
	default: // 7
		return []engine.Action{engine.RotateRight45, engine.MoveForward}, facing.RotateRight45()
	}
}
