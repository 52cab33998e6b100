package engine

import "github.com/tanktourney/tanktourney/geom"

// Tank is the authoritative record for one tank, mirroring the field set
// in original_source/GameManager/GM_include/TankInfo.h (C6).
type Tank struct {
	ID     int // per-owner index, assigned in row-major spawn order
	Owner  int // 1 or 2
	Pos    geom.Point
	Facing geom.Direction
	Ammo   int

	ShootCooldown     int
	BackwardTimer     int
	BackwardPending   bool
	JustMovedBackward bool
	TurnsDead         int
}

// Alive reports whether the tank has not yet been destroyed.
func (t *Tank) Alive() bool { return t.TurnsDead == 0 }

// DecrementCooldown lowers the shoot cooldown by one, floored at zero.
func (t *Tank) DecrementCooldown() {
	if t.ShootCooldown > 0 {
		t.ShootCooldown--
	}
}

// ResetCooldown sets the shoot cooldown back to its post-fire value.
func (t *Tank) ResetCooldown() { t.ShootCooldown = ShootCooldownTurns }

// StartBackwardTimer arms the backward-move wait.
func (t *Tank) StartBackwardTimer() {
	t.BackwardPending = true
	t.BackwardTimer = BackwardWaitTurns
}

// TickBackwardTimer lowers the backward wait timer by one, floored at zero.
func (t *Tank) TickBackwardTimer() {
	if t.BackwardTimer > 0 {
		t.BackwardTimer--
	}
}

// MarkKilled destroys the tank: turns_dead becomes 1 and its position
// moves off-board, per spec.md §3.
func (t *Tank) MarkKilled() {
	if !t.Alive() {
		return
	}
	t.TurnsDead = 1
	t.Pos = geom.Point{X: -1, Y: -1}
}
