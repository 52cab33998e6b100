package engine

// applyAction runs the per-tank action-handling state machine from
// spec.md §4.4.1, including the two-turn backward protocol and the
// shoot-cooldown bookkeeping that applies regardless of which action
// was requested.
func (e *Engine) applyAction(ts *tankSlot, a Action) {
	if !ts.Alive() {
		return
	}

	wasJustMoved := ts.JustMovedBackward
	ts.JustMovedBackward = false
	shotThisTurn := false

	switch {
	case ts.BackwardPending:
		if a == MoveForward {
			ts.BackwardPending = false
			ts.BackwardTimer = 0
			break
		}
		ts.TickBackwardTimer()
		if ts.BackwardTimer == 0 {
			ts.BackwardPending = false
			e.moveTank(ts, ts.Facing.Opposite())
			ts.JustMovedBackward = true
		}

	case a == MoveBackward:
		if wasJustMoved {
			e.moveTank(ts, ts.Facing.Opposite())
			ts.JustMovedBackward = true
		} else {
			ts.StartBackwardTimer()
		}

	case a == MoveForward:
		e.moveTank(ts, ts.Facing)

	case a == RotateLeft45:
		ts.Facing = ts.Facing.RotateLeft45()

	case a == RotateRight45:
		ts.Facing = ts.Facing.RotateRight45()

	case a == RotateLeft90:
		ts.Facing = ts.Facing.RotateLeft90()

	case a == RotateRight90:
		ts.Facing = ts.Facing.RotateRight90()

	case a == Shoot:
		if ts.Ammo > 0 && ts.ShootCooldown == 0 {
			ts.Ammo--
			ts.ResetCooldown()
			e.spawnShellFrom(ts)
			shotThisTurn = true
		}

	case a == GetBattleInfo:
		e.serveBattleInfo(ts)

	case a == DoNothing:
		// no-op

	default:
		// unrecognized request from a misbehaving plugin: treat as DoNothing
	}

	if !shotThisTurn {
		ts.DecrementCooldown()
	}
}
