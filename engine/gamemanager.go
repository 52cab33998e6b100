package engine

import (
	"log/slog"

	"github.com/tanktourney/tanktourney/board"
)

// Config bundles everything a GameManager needs to run one match.
// Orchestrators build this once per scheduled game; the default Engine
// is one concrete GameManager implementation, but the type is an
// interface so a plugin can supply an alternate rules engine entirely
// (spec.md §9's "Plugin dispatch": a GameManagerFactory is just a value
// that knows how to build one of these).
type Config struct {
	Board     *board.Board
	MaxSteps  int
	NumShells int
	Player1   Player
	Player2   Player
	Algo1     TankAlgorithmFactory
	Algo2     TankAlgorithmFactory
	Logger    *slog.Logger
}

// GameManager runs one match to termination.
type GameManager interface {
	Play(cfg Config) (Result, error)
}

// GameManagerFactory builds a fresh GameManager instance, matching the
// plugin triple's third factory slot in spec.md §4.6/§9.
type GameManagerFactory func() GameManager

// DefaultGameManager adapts the package's own Engine to the GameManager
// interface, so it can be registered in a registry.Registry like any
// other plugin.
type DefaultGameManager struct{}

// Play implements GameManager.
func (DefaultGameManager) Play(cfg Config) (Result, error) {
	e, err := New(cfg)
	if err != nil {
		return Result{}, err
	}
	return e.Run(), nil
}
