package engine

import (
	"github.com/tanktourney/tanktourney/board"
	"github.com/tanktourney/tanktourney/geom"
)

// BattleInfo is the structured message exchanged between the engine's
// Player collaborator and a TankAlgorithm (C4), mirroring
// original_source/UserCommon/UC_include/ExtBattleInfo.h. It is mutable
// and passed by reference: the engine/player side fills in the board
// and shell fields, and the algorithm self-declares TankIndex and
// CurrAmmo back to the player during UpdateBattleInfo.
//
// A TankAlgorithm must not retain Board beyond the call — the engine may
// reuse the backing snapshot across tanks within the same turn.
type BattleInfo struct {
	Board         board.SatelliteView
	Width, Height int
	Shells        []geom.Point

	// InitialPosition and InitialAmmo are meaningful only on a tank's
	// first exchange. The Player fills them in on every call (the
	// default one takes InitialPosition from the '%' cell, so it tracks
	// the tank's current position), but algorithms are expected to look
	// at them exactly once.
	InitialPosition geom.Point
	InitialAmmo     int

	// TankIndex and CurrAmmo are set by the algorithm inside
	// UpdateBattleInfo for the player to read back afterward.
	TankIndex int
	CurrAmmo  int
}

// TankAlgorithm is the per-tank decision interface (C8's contract
// surface), mirroring original_source/common/TankAlgorithm.h.
type TankAlgorithm interface {
	GetAction() Action
	UpdateBattleInfo(info *BattleInfo)
}

// Player is the engine-side collaborator that turns a satellite view into
// a BattleInfo exchange with a tank's algorithm, mirroring
// original_source/common/Player.h.
type Player interface {
	UpdateTankWithBattleInfo(tank TankAlgorithm, view board.SatelliteView)
}

// PlayerFactory builds a Player for one side of the match. width/height
// are the map dimensions; maxSteps/numShells are the match configuration
// from the map header.
type PlayerFactory func(playerIndex, width, height, maxSteps, numShells int) Player

// TankAlgorithmFactory builds the algorithm for one tank. tankIndex is
// the tank's per-owner spawn order (0-based).
type TankAlgorithmFactory func(playerIndex, tankIndex int) TankAlgorithm
