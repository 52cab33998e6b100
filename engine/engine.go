package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tanktourney/tanktourney/board"
	"github.com/tanktourney/tanktourney/geom"
)

// tankSlot is the engine's bookkeeping wrapper around a Tank: the
// authoritative record plus the algorithm instance driving it.
type tankSlot struct {
	Tank
	algo TankAlgorithm
}

// Engine is the default GameManager (C7): a deterministic per-turn
// simulator following the strict ordering in spec.md §4.4.
type Engine struct {
	w, h      int
	terrain   []terrainCell
	tanks     []*tankSlot
	shells    []*shellSlot
	maxSteps  int
	numShells int
	players   [2]Player
	logger    *slog.Logger

	turn            int
	lastRoundBoard  *board.Board
	zeroShellsArmed bool
	zeroShellsGrace int
}

// New builds an Engine from a match Config. It parses tanks out of the
// initial board (row-major, per-owner spawn order) and lays down a
// terrain grid from the static cells.
func New(cfg Config) (*Engine, error) {
	if cfg.Board == nil {
		return nil, fmt.Errorf("engine: nil board")
	}
	if cfg.Player1 == nil || cfg.Player2 == nil {
		return nil, fmt.Errorf("engine: both players are required")
	}
	if cfg.Algo1 == nil || cfg.Algo2 == nil {
		return nil, fmt.Errorf("engine: both tank-algorithm factories are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		w:               cfg.Board.W,
		h:               cfg.Board.H,
		terrain:         make([]terrainCell, cfg.Board.W*cfg.Board.H),
		maxSteps:        cfg.MaxSteps,
		numShells:       cfg.NumShells,
		players:         [2]Player{cfg.Player1, cfg.Player2},
		logger:          logger,
		zeroShellsGrace: -1,
	}

	counts := [3]int{} // 1-indexed by owner
	for y := 0; y < e.h; y++ {
		for x := 0; x < e.w; x++ {
			switch cfg.Board.ObjectAt(x, y) {
			case board.Wall:
				e.setTerrain(x, y, terrainWall)
			case board.WeakWall:
				e.setTerrain(x, y, terrainWeakWall)
			case board.Mine:
				e.setTerrain(x, y, terrainMine)
			case board.Player1Tank, board.Player2Tank:
				owner := 1
				if cfg.Board.ObjectAt(x, y) == board.Player2Tank {
					owner = 2
				}
				id := counts[owner]
				counts[owner]++
				var facing geom.Direction
				if owner == 1 {
					facing = geom.L
				} else {
					facing = geom.R
				}
				algoFactory := cfg.Algo1
				if owner == 2 {
					algoFactory = cfg.Algo2
				}
				ts := &tankSlot{
					Tank: Tank{
						ID:     id,
						Owner:  owner,
						Pos:    geom.Point{X: x, Y: y},
						Facing: facing,
						Ammo:   cfg.NumShells,
					},
					algo: algoFactory(owner, id),
				}
				e.tanks = append(e.tanks, ts)
			}
		}
	}

	return e, nil
}

// Run executes turns until termination and returns the result.
func (e *Engine) Run() Result {
	for {
		e.lastRoundBoard = e.renderBoard()

		requests := e.gatherActions()
		for _, req := range requests {
			e.applyAction(req.tank, req.action)
		}

		e.shellSubstep()
		e.shellSubstep()
		e.collapseShells()

		e.logTurn()

		if result, done := e.checkTermination(); done {
			return result
		}

		e.turn++
	}
}

type actionRequest struct {
	tank   *tankSlot
	action Action
}

func (e *Engine) gatherActions() []actionRequest {
	requests := make([]actionRequest, 0, len(e.tanks))
	for _, ts := range e.tanks {
		if !ts.Alive() {
			continue
		}
		requests = append(requests, actionRequest{tank: ts, action: ts.algo.GetAction()})
	}
	return requests
}

func (e *Engine) logTurn() {
	e.logger.Debug("turn complete", "turn", e.turn, "shells", len(e.shells))
}
