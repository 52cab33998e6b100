package engine

import (
	"github.com/tanktourney/tanktourney/board"
	"github.com/tanktourney/tanktourney/geom"
)

// renderCell computes the display cell at (x,y) from the terrain grid
// plus the live tank/shell entity lists, applying the overlap markers
// from spec.md §3. A cell never holds more than one live tank (move
// resolution enforces that), so the only overlaps to account for are
// tank-on-shell and the two-shells-stacked case.
func (e *Engine) renderCell(x, y int) board.Cell {
	x, y = e.wrap(x, y)

	shells := e.shellsAt(x, y)
	tank := e.liveTankAt(x, y)

	switch {
	case tank != nil && len(shells) > 0:
		return board.TankOnShellFor(tank.Owner)
	case tank != nil:
		return board.TankCellFor(tank.Owner)
	case len(shells) >= 2:
		return board.ShellsStacked
	case len(shells) == 1:
		return board.Shell
	}

	switch e.terrainAt(x, y) {
	case terrainWall:
		return board.Wall
	case terrainWeakWall:
		return board.WeakWall
	case terrainMine:
		return board.Mine
	default:
		return board.Empty
	}
}

// renderBoard materializes a full snapshot of the current state. It is
// the only place the engine produces a concrete board.Board; algorithms
// only ever see it through the SatelliteView interface.
func (e *Engine) renderBoard() *board.Board {
	b := board.New(e.w, e.h)
	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			b.Set(x, y, e.renderCell(x, y))
		}
	}
	return b
}

// selfView wraps a rendered board snapshot, substituting the self marker
// ('%') at one tank's own cell, mirroring how original_source's
// SatelliteView implementations report "%" to the tank that asked for
// it (ExtBattleInfo.h). Every other cell passes through unchanged; a
// shell overlapping the requesting tank is hidden behind the '%'.
type selfView struct {
	snapshot *board.Board
	self     geom.Point
}

func (v selfView) ObjectAt(x, y int) board.Cell {
	c := v.snapshot.ObjectAt(x, y)
	wrapped := geom.Point{X: x, Y: y}.Wrap(v.snapshot.W, v.snapshot.H)
	if wrapped == v.self {
		return board.SelfMarker
	}
	return c
}

// snapshotWithSelf wraps the turn's start-of-round snapshot with ts's own
// position marked '%', the view handed to that tank's Player. It
// deliberately reuses lastRoundBoard rather than re-rendering live: every
// tank this turn must see the same board, regardless of processing
// order, or a tank handled later would see its still-alive opponents'
// already-applied moves and shots from this same turn.
func (e *Engine) snapshotWithSelf(ts *tankSlot) board.SatelliteView {
	return selfView{snapshot: e.lastRoundBoard, self: ts.Pos}
}

// serveBattleInfo resolves a GetBattleInfo request by handing the
// requesting tank's Player a self-marked view; the player constructs
// the BattleInfo and exchanges it with the tank's algorithm.
func (e *Engine) serveBattleInfo(ts *tankSlot) {
	view := e.snapshotWithSelf(ts)
	e.players[ts.Owner-1].UpdateTankWithBattleInfo(ts.algo, view)
}
