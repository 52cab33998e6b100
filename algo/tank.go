package algo

import (
	"github.com/tanktourney/tanktourney/board"
	"github.com/tanktourney/tanktourney/engine"
	"github.com/tanktourney/tanktourney/geom"
)

const (
	shootRangeLInf = 5
	actionQueueCap = 5
)

// Tank is the default TankAlgorithm: BFS pursuit with a shoot/evade
// decision ladder, grounded on
// original_source/Algorithm/Algo_src/TankAlgorithm_209277367_322542887.cpp.
//
// A Tank keeps its own shadow copy of position and facing for planning
// purposes, updated optimistically as each queued action is returned —
// it never learns whether an action the engine rejected (a blocked
// move, say) actually happened, matching the original's behavior.
type Tank struct {
	playerIndex, tankIndex int

	loc    geom.Point
	facing geom.Direction

	width, height int
	board         [][]board.Cell
	shells        []geom.Point

	ammo            int
	firstBattleInfo bool

	shootCooldown   int
	shotDir         geom.Direction
	shotDirCooldown int

	backwardPending   bool
	backwardTimer     int
	justMovedBackward bool

	evadeCooldown int

	justGotBattleInfo bool
	queue             []engine.Action
}

// NewTank builds a Tank. The default facing mirrors the engine's own
// spawn convention (owner 1 faces L, owner 2 faces R) since the
// algorithm's shadow state must start in agreement with the engine's
// authoritative tank record.
func NewTank(playerIndex, tankIndex int) engine.TankAlgorithm {
	facing := geom.L
	if playerIndex == 2 {
		facing = geom.R
	}
	return &Tank{
		playerIndex:     playerIndex,
		tankIndex:       tankIndex,
		facing:          facing,
		firstBattleInfo: true,
	}
}

// UpdateBattleInfo implements engine.TankAlgorithm.
func (t *Tank) UpdateBattleInfo(info *engine.BattleInfo) {
	if t.firstBattleInfo {
		t.firstBattleInfo = false
		t.ammo = info.InitialAmmo
		t.loc = info.InitialPosition
	}

	t.width, t.height = info.Width, info.Height
	t.board = scanGrid(info.Board, info.Width, info.Height)
	t.shells = info.Shells

	info.TankIndex = t.tankIndex
	info.CurrAmmo = t.ammo
}

func scanGrid(view board.SatelliteView, w, h int) [][]board.Cell {
	grid := make([][]board.Cell, h)
	for y := 0; y < h; y++ {
		grid[y] = make([]board.Cell, w)
		for x := 0; x < w; x++ {
			grid[y][x] = view.ObjectAt(x, y)
		}
	}
	return grid
}

// GetAction implements engine.TankAlgorithm, running the decision
// ladder from spec.md §4.5.
func (t *Tank) GetAction() engine.Action {
	if t.backwardPending {
		t.backwardTimer--
		t.tickAuxiliaryCooldowns()
		if t.backwardTimer <= 0 {
			t.backwardPending = false
			t.applyShadowMove(t.facing.Opposite())
			t.justMovedBackward = true
		}
		return engine.DoNothing
	}
	t.justMovedBackward = false

	if len(t.queue) == 0 && !t.justGotBattleInfo {
		t.justGotBattleInfo = true
		return engine.GetBattleInfo
	}
	t.justGotBattleInfo = false

	if dangerDir, inDanger := t.isShotAt(); inDanger && t.evadeCooldown == 0 {
		t.evade(dangerDir)
	} else if t.enemyInLine() && t.ammo > 0 && t.shootCooldown == 0 {
		t.queue = append(t.queue[:0], engine.Shoot)
	} else if len(t.queue) == 0 {
		t.planPursuit()
	}

	action := engine.DoNothing
	if len(t.queue) > 0 {
		action = t.queue[0]
		t.queue = t.queue[1:]
	}

	t.applyBookkeeping(action)
	return action
}

// applyBookkeeping mirrors the original's post-decision cooldown and
// shadow-state maintenance that runs regardless of which branch of the
// ladder produced the action.
func (t *Tank) applyBookkeeping(action engine.Action) {
	switch action {
	case engine.Shoot:
		t.ammo--
		t.shootCooldown = engine.ShootCooldownTurns
		t.shotDir = t.facing
		t.shotDirCooldown = engine.ShootCooldownTurns
	case engine.MoveBackward:
		t.backwardPending = true
		t.backwardTimer = engine.BackwardWaitTurns
	case engine.MoveForward:
		t.applyShadowMove(t.facing)
	case engine.RotateLeft45:
		t.facing = t.facing.RotateLeft45()
	case engine.RotateRight45:
		t.facing = t.facing.RotateRight45()
	case engine.RotateLeft90:
		t.facing = t.facing.RotateLeft90()
	case engine.RotateRight90:
		t.facing = t.facing.RotateRight90()
	}

	t.tickAuxiliaryCooldowns()
	if action != engine.Shoot && t.shootCooldown > 0 {
		t.shootCooldown--
	}
}

func (t *Tank) tickAuxiliaryCooldowns() {
	if t.evadeCooldown > 0 {
		t.evadeCooldown--
	}
	if t.shotDirCooldown > 0 {
		t.shotDirCooldown--
	}
}

func (t *Tank) applyShadowMove(dir geom.Direction) {
	off := dir.Offset()
	t.loc = geom.Point{
		X: ((t.loc.X+off.X)%t.width + t.width) % t.width,
		Y: ((t.loc.Y+off.Y)%t.height + t.height) % t.height,
	}
}

// isShotAt implements the danger check from spec.md §4.5 step 4: a
// shell within L-infinity distance 5, aligned on the tank's row,
// column, or diagonal, not matching the tank's own recently-shot
// direction.
func (t *Tank) isShotAt() (geom.Direction, bool) {
	for _, s := range t.shells {
		if s == t.loc {
			continue
		}
		dx := wrapDelta(t.loc.X-s.X, t.width)
		dy := wrapDelta(t.loc.Y-s.Y, t.height)
		if abs(dx) > shootRangeLInf || abs(dy) > shootRangeLInf {
			continue
		}
		if !aligned(dx, dy) {
			continue
		}
		dangerDir := deltaToDirection(dx, dy)
		if dangerDir == t.shotDir && t.shotDirCooldown > 0 {
			continue
		}
		return dangerDir, true
	}
	return geom.U, false
}

// evade implements spec.md §4.5 step 4's evasion: rotate off the danger
// axis (and its opposite) onto the first free neighboring cell, then
// move forward — or shoot in place when that first free cell lies
// directly behind the tank and ammo and cooldown allow it.
func (t *Tank) evade(dangerDir geom.Direction) {
	t.queue = t.queue[:0]
	opposite := dangerDir.Opposite()

	for d := geom.U; d <= geom.UL; d++ {
		if d == dangerDir || d == opposite {
			continue
		}
		off := d.Offset()
		nx := ((t.loc.X+off.X)%t.width + t.width) % t.width
		ny := ((t.loc.Y+off.Y)%t.height + t.height) % t.height
		if t.board[ny][nx] != board.Empty {
			continue
		}

		actions, _ := rotationActions(t.facing, d, true, t.ammo > 0 && t.shootCooldown == 0)
		t.queue = append(t.queue, actions...)
		t.evadeCooldown = len(actions)
		return
	}
}

// enemyInLine implements spec.md §4.5 step 5: an enemy tank lies along
// the tank's current facing, with no friendly tank closer along the
// same ray.
func (t *Tank) enemyInLine() bool {
	enemy := 3 - t.playerIndex
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			if board.OwnerOfTankCell(t.board[y][x]) != enemy {
				continue
			}
			dx := wrapDelta(x-t.loc.X, t.width)
			dy := wrapDelta(y-t.loc.Y, t.height)
			if !aligned(dx, dy) {
				continue
			}
			dir := deltaToDirection(dx, dy)
			if dir == t.facing && !t.friendlyInLine(t.facing) {
				return true
			}
		}
	}
	return false
}

// friendlyInLine raycasts from the tank along dir, mirroring
// original_source's friendlyInLine: cardinal directions wrap around the
// torus and test every cell including the tank's own; diagonals stop at
// the board edge. This asymmetry is spec.md §9's first preserved open
// question, not a bug to fix here.
func (t *Tank) friendlyInLine(dir geom.Direction) bool {
	off := dir.Offset()
	enemy := 3 - t.playerIndex

	if !dir.IsDiagonal() {
		x, y := t.loc.X, t.loc.Y
		for {
			x = ((x+off.X)%t.width + t.width) % t.width
			y = ((y+off.Y)%t.height + t.height) % t.height
			owner := board.OwnerOfTankCell(t.board[y][x])
			if owner == enemy {
				return false
			}
			if owner == t.playerIndex {
				return true
			}
			if x == t.loc.X && y == t.loc.Y {
				return true
			}
		}
	}

	x, y := t.loc.X, t.loc.Y
	for {
		x += off.X
		y += off.Y
		if x < 0 || x >= t.width || y < 0 || y >= t.height {
			return false
		}
		owner := board.OwnerOfTankCell(t.board[y][x])
		if owner == enemy {
			return false
		}
		if owner == t.playerIndex {
			return true
		}
	}
}

// planPursuit implements spec.md §4.5 step 6: BFS to the nearest enemy,
// translated into at most 5 queued actions via the rotation primitive.
// If no enemy is reachable, it takes a shot to try to clear a path
// instead, provided that doesn't risk a friendly tank.
func (t *Tank) planPursuit() {
	t.queue = t.queue[:0]

	path := bfsPathToEnemy(t.board, t.loc, t.playerIndex)
	if len(path) == 0 {
		if t.ammo > 0 && t.shootCooldown == 0 && !t.friendlyInLine(t.facing) {
			t.queue = append(t.queue, engine.Shoot)
		}
		return
	}

	curLoc := t.loc
	curFacing := t.facing
	for _, next := range path {
		dir, ok := torusDirection(curLoc, next, t.width, t.height)
		if !ok {
			break
		}
		actions, facingAfter := rotationActions(curFacing, dir, false, false)
		if len(t.queue)+len(actions) > actionQueueCap {
			break
		}
		t.queue = append(t.queue, actions...)
		curFacing = facingAfter
		curLoc = next
	}
}
