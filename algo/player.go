package algo

import (
	"github.com/tanktourney/tanktourney/board"
	"github.com/tanktourney/tanktourney/engine"
	"github.com/tanktourney/tanktourney/geom"
)

// Player is the default engine.Player: it scans the satellite view it
// is handed into a BattleInfo (shell locations plus the self marker)
// and exchanges it with the requesting tank's algorithm, mirroring
// original_source/Algorithm/Algo_src/Player_209277367_322542887.cpp's
// initGameboardAndShells/updateTankWithBattleInfo.
type Player struct {
	playerIndex         int
	width, height       int
	maxSteps, numShells int
	ammoByTank          map[int]int
}

// NewPlayer builds a Player for one side of the match.
func NewPlayer(playerIndex, width, height, maxSteps, numShells int) engine.Player {
	return &Player{
		playerIndex: playerIndex,
		width:       width,
		height:      height,
		maxSteps:    maxSteps,
		numShells:   numShells,
		ammoByTank:  make(map[int]int),
	}
}

// UpdateTankWithBattleInfo implements engine.Player.
func (p *Player) UpdateTankWithBattleInfo(tank engine.TankAlgorithm, view board.SatelliteView) {
	info := &engine.BattleInfo{
		Board:       view,
		Width:       p.width,
		Height:      p.height,
		InitialAmmo: p.numShells,
	}

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			switch view.ObjectAt(x, y) {
			case board.Shell, board.ShellsStacked:
				info.Shells = append(info.Shells, geom.Point{X: x, Y: y})
			case board.SelfMarker:
				info.InitialPosition = geom.Point{X: x, Y: y}
			}
		}
	}

	tank.UpdateBattleInfo(info)
	p.ammoByTank[info.TankIndex] = info.CurrAmmo
}

// AmmoOf reports the last ammo count the player observed for the given
// tank index, for diagnostics/testing.
func (p *Player) AmmoOf(tankIndex int) int {
	return p.ammoByTank[tankIndex]
}
