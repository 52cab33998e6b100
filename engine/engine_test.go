package engine

import (
	"testing"

	"github.com/tanktourney/tanktourney/board"
	"github.com/tanktourney/tanktourney/geom"
)

// scriptedAlgo replays a fixed action sequence, holding DoNothing once
// exhausted. It never touches BattleInfo, matching a minimal plugin.
type scriptedAlgo struct {
	actions []Action
	step    int
}

func (s *scriptedAlgo) GetAction() Action {
	if s.step >= len(s.actions) {
		return DoNothing
	}
	a := s.actions[s.step]
	s.step++
	return a
}

func (s *scriptedAlgo) UpdateBattleInfo(info *BattleInfo) {
	info.TankIndex = 0
	info.CurrAmmo = 0
}

type noopPlayer struct{}

func (noopPlayer) UpdateTankWithBattleInfo(TankAlgorithm, board.SatelliteView) {}

func scriptedFactory(scripts map[int][]Action) TankAlgorithmFactory {
	return func(_, tankIndex int) TankAlgorithm {
		return &scriptedAlgo{actions: scripts[tankIndex]}
	}
}

func newTestBoard(w, h int) *board.Board {
	return board.New(w, h)
}

// TestHeadOnShellCollision covers scenario S1: two tanks facing each
// other fire simultaneously; the shells meet head-on and destroy each
// other before either tank is hit.
func TestHeadOnShellCollision(t *testing.T) {
	b := newTestBoard(10, 1)
	b.Set(2, 0, board.Player1Tank)
	b.Set(7, 0, board.Player2Tank)

	cfg := Config{
		Board:     b,
		MaxSteps:  50,
		NumShells: 5,
		Player1:   noopPlayer{},
		Player2:   noopPlayer{},
		Algo1: scriptedFactory(map[int][]Action{
			0: {Shoot},
		}),
		Algo2: scriptedFactory(map[int][]Action{
			0: {Shoot},
		}),
	}

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.tanks[0].Facing = geom.R
	e.tanks[1].Facing = geom.L

	result := e.Run()

	if result.Reason != MaxSteps {
		t.Fatalf("expected match to run to max steps once both tanks idle, got %v (winner=%d)", result.Reason, result.Winner)
	}
	if result.RemainingTanks[0] != 1 || result.RemainingTanks[1] != 1 {
		t.Fatalf("expected both tanks to survive the head-on collision, got %v", result.RemainingTanks)
	}
}

// TestMineKillsTank covers scenario S2: a tank moving forward onto a
// mine is destroyed and the mine is consumed.
func TestMineKillsTank(t *testing.T) {
	b := newTestBoard(5, 1)
	b.Set(0, 0, board.Player1Tank)
	b.Set(1, 0, board.Mine)
	b.Set(4, 0, board.Player2Tank)

	cfg := Config{
		Board:     b,
		MaxSteps:  10,
		NumShells: 5,
		Player1:   noopPlayer{},
		Player2:   noopPlayer{},
		Algo1: scriptedFactory(map[int][]Action{
			0: {MoveForward},
		}),
		Algo2: scriptedFactory(map[int][]Action{
			0: {DoNothing},
		}),
	}

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.tanks[0].Facing = geom.R

	result := e.Run()

	if result.Winner != 2 {
		t.Fatalf("expected player 2 to win once player 1's only tank hits the mine, got winner=%d reason=%v", result.Winner, result.Reason)
	}
	if e.terrainAt(1, 0) != terrainEmpty {
		t.Fatalf("expected the mine to be consumed")
	}
}

// TestShootWeakensWall covers scenario S3: a wall takes two hits to
// clear — the first turns it into a weak wall, the second destroys it.
func TestShootWeakensWall(t *testing.T) {
	b := newTestBoard(5, 1)
	b.Set(0, 0, board.Player1Tank)
	b.Set(2, 0, board.Wall)
	b.Set(4, 0, board.Player2Tank)

	cfg := Config{
		Board:     b,
		MaxSteps:  10,
		NumShells: 5,
		Player1:   noopPlayer{},
		Player2:   noopPlayer{},
		Algo1: scriptedFactory(map[int][]Action{
			0: {MoveForward, Shoot, DoNothing, DoNothing, DoNothing, Shoot},
		}),
		Algo2: scriptedFactory(map[int][]Action{
			0: {DoNothing},
		}),
	}

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.tanks[0].Facing = geom.R

	e.applyAction(e.tanks[0], MoveForward)
	if e.tanks[0].Pos.X != 1 {
		t.Fatalf("expected tank to advance to x=1, got %d", e.tanks[0].Pos.X)
	}

	e.applyAction(e.tanks[0], Shoot)
	if e.terrainAt(2, 0) != terrainWeakWall {
		t.Fatalf("expected first hit to weaken the wall")
	}

	e.tanks[0].DecrementCooldown()
	e.tanks[0].DecrementCooldown()
	e.tanks[0].DecrementCooldown()
	e.tanks[0].DecrementCooldown()

	e.applyAction(e.tanks[0], Shoot)
	if e.terrainAt(2, 0) != terrainEmpty {
		t.Fatalf("expected second hit to clear the wall")
	}
}

// TestBackwardMoveProtocol covers scenario S4: a backward request waits
// two full turns before executing, and a second backward request issued
// immediately afterward executes without delay.
func TestBackwardMoveProtocol(t *testing.T) {
	b := newTestBoard(10, 1)
	b.Set(5, 0, board.Player1Tank)
	b.Set(9, 0, board.Player2Tank)

	e, err := New(Config{
		Board:     b,
		MaxSteps:  20,
		NumShells: 5,
		Player1:   noopPlayer{},
		Player2:   noopPlayer{},
		Algo1:     scriptedFactory(nil),
		Algo2:     scriptedFactory(nil),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := e.tanks[0]
	ts.Facing = geom.R

	e.applyAction(ts, MoveBackward)
	if ts.Pos.X != 5 || !ts.BackwardPending || ts.BackwardTimer != 2 {
		t.Fatalf("turn 0: expected timer armed at 2 with no move, got pos=%v pending=%v timer=%d",
			ts.Pos, ts.BackwardPending, ts.BackwardTimer)
	}

	e.applyAction(ts, DoNothing)
	if ts.Pos.X != 5 || ts.BackwardTimer != 1 {
		t.Fatalf("turn 1: expected timer at 1 with no move, got pos=%v timer=%d", ts.Pos, ts.BackwardTimer)
	}

	e.applyAction(ts, DoNothing)
	if ts.Pos.X != 4 || ts.BackwardPending || !ts.JustMovedBackward {
		t.Fatalf("turn 2: expected backward move to x=4, got pos=%v pending=%v justMoved=%v",
			ts.Pos, ts.BackwardPending, ts.JustMovedBackward)
	}

	e.applyAction(ts, MoveBackward)
	if ts.Pos.X != 3 || !ts.JustMovedBackward {
		t.Fatalf("turn 3: expected fast-path backward move to x=3, got pos=%v", ts.Pos)
	}
}

// TestForwardCancelsBackwardTimer checks that a forward request during
// the backward wait resets the timer instead of executing a move.
func TestForwardCancelsBackwardTimer(t *testing.T) {
	b := newTestBoard(6, 1)
	b.Set(2, 0, board.Player1Tank)
	b.Set(5, 0, board.Player2Tank)

	e, err := New(Config{
		Board: b, MaxSteps: 20, NumShells: 5,
		Player1: noopPlayer{}, Player2: noopPlayer{},
		Algo1: scriptedFactory(nil), Algo2: scriptedFactory(nil),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := e.tanks[0]
	ts.Facing = geom.R

	e.applyAction(ts, MoveBackward)
	e.applyAction(ts, MoveForward)

	if ts.BackwardPending || ts.BackwardTimer != 0 {
		t.Fatalf("expected forward request to clear the pending backward timer, got pending=%v timer=%d",
			ts.BackwardPending, ts.BackwardTimer)
	}
	if ts.Pos.X != 2 {
		t.Fatalf("expected the cancel turn to consume no movement, got pos=%v", ts.Pos)
	}
}

// TestCollidingTanksBothDie covers the move-time mutual-kill rule: two
// tanks stepping into the same cell destroy each other.
func TestCollidingTanksBothDie(t *testing.T) {
	b := newTestBoard(4, 1)
	b.Set(0, 0, board.Player1Tank)
	b.Set(2, 0, board.Player2Tank)

	e, err := New(Config{
		Board: b, MaxSteps: 20, NumShells: 5,
		Player1: noopPlayer{}, Player2: noopPlayer{},
		Algo1: scriptedFactory(nil), Algo2: scriptedFactory(nil),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.tanks[0].Facing = geom.R
	e.tanks[1].Facing = geom.L

	e.moveTank(e.tanks[0], geom.R)
	e.moveTank(e.tanks[1], geom.L)

	if e.tanks[0].Alive() || e.tanks[1].Alive() {
		t.Fatalf("expected both tanks to die colliding at the same cell")
	}
}

// TestOppositeShellsDestroyEachOther covers the shell-shell rule at the
// substep level: two shells meeting head-on destroy each other.
func TestOppositeShellsDestroyEachOther(t *testing.T) {
	b := newTestBoard(6, 1)
	b.Set(0, 0, board.Player1Tank)
	b.Set(5, 0, board.Player2Tank)

	e, err := New(Config{
		Board: b, MaxSteps: 20, NumShells: 5,
		Player1: noopPlayer{}, Player2: noopPlayer{},
		Algo1: scriptedFactory(nil), Algo2: scriptedFactory(nil),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	e.shells = append(e.shells,
		&shellSlot{Shell: Shell{Pos: geom.Point{X: 2, Y: 0}, Dir: geom.R}},
		&shellSlot{Shell: Shell{Pos: geom.Point{X: 3, Y: 0}, Dir: geom.L}},
	)

	e.shellSubstep()

	if len(e.shells) != 0 {
		t.Fatalf("expected head-on shells to destroy each other, %d remain", len(e.shells))
	}
}

// TestCrossingShellsStackThenCollapse covers the non-opposite case: two
// shells on perpendicular paths land on the same cell in the same
// substep. They are not opposite, so the substep lets them stack; the
// post-substep collapse pass then destroys both.
func TestCrossingShellsStackThenCollapse(t *testing.T) {
	b := newTestBoard(4, 4)
	b.Set(0, 0, board.Player1Tank)
	b.Set(3, 3, board.Player2Tank)

	e, err := New(Config{
		Board: b, MaxSteps: 20, NumShells: 5,
		Player1: noopPlayer{}, Player2: noopPlayer{},
		Algo1: scriptedFactory(nil), Algo2: scriptedFactory(nil),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	e.shells = append(e.shells,
		&shellSlot{Shell: Shell{Pos: geom.Point{X: 1, Y: 2}, Dir: geom.R}},
		&shellSlot{Shell: Shell{Pos: geom.Point{X: 2, Y: 1}, Dir: geom.D}},
	)

	e.shellSubstep()

	if len(e.shells) != 2 {
		t.Fatalf("expected crossing shells to stack rather than destroy each other mid-substep, %d remain", len(e.shells))
	}

	e.collapseShells()

	if len(e.shells) != 0 {
		t.Fatalf("expected the stacked cell to collapse and destroy both shells, %d remain", len(e.shells))
	}
}

// TestZeroShellsGraceEndsInTie covers the 40-turn zero-shells grace
// period: once neither side can ever fire again, the match ties after
// the grace window elapses even though tanks remain alive.
func TestZeroShellsGraceEndsInTie(t *testing.T) {
	b := newTestBoard(10, 1)
	b.Set(0, 0, board.Player1Tank)
	b.Set(9, 0, board.Player2Tank)

	e, err := New(Config{
		Board: b, MaxSteps: 1000, NumShells: 0,
		Player1: noopPlayer{}, Player2: noopPlayer{},
		Algo1: scriptedFactory(nil), Algo2: scriptedFactory(nil),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result := e.Run()

	if result.Reason != ZeroShells || result.Winner != 0 {
		t.Fatalf("expected a zero-shells tie, got winner=%d reason=%v after %d rounds",
			result.Winner, result.Reason, result.Rounds)
	}
}
