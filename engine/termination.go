package engine

// aliveCounts returns the number of living tanks per owner.
func (e *Engine) aliveCounts() (p1, p2 int) {
	for _, ts := range e.tanks {
		if !ts.Alive() {
			continue
		}
		if ts.Owner == 1 {
			p1++
		} else {
			p2++
		}
	}
	return
}

// allAliveOutOfAmmo reports whether every living tank has ammo 0,
// spec.md §4.4.5's zero-shells trigger condition.
func (e *Engine) allAliveOutOfAmmo() bool {
	for _, ts := range e.tanks {
		if ts.Alive() && ts.Ammo > 0 {
			return false
		}
	}
	return true
}

// checkTermination evaluates the three termination conditions from
// spec.md §4.8, in priority order: all tanks on one or both sides dead,
// max steps reached, and the 40-turn zero-shells grace period (armed
// once every living tank has ammo 0; shells still in flight do not
// delay it).
func (e *Engine) checkTermination() (Result, bool) {
	p1, p2 := e.aliveCounts()
	remaining := [2]int{p1, p2}

	if p1 == 0 || p2 == 0 {
		winner := 0
		switch {
		case p1 == 0 && p2 == 0:
			winner = 0
		case p1 == 0:
			winner = 2
		case p2 == 0:
			winner = 1
		}
		return Result{
			Winner:         winner,
			Reason:         AllTanksDead,
			RemainingTanks: remaining,
			FinalBoard:     e.renderBoard(),
			Rounds:         e.turn,
		}, true
	}

	if e.turn+1 >= e.maxSteps {
		return Result{
			Winner:         0,
			Reason:         MaxSteps,
			RemainingTanks: remaining,
			FinalBoard:     e.renderBoard(),
			Rounds:         e.turn + 1,
		}, true
	}

	if e.allAliveOutOfAmmo() {
		if !e.zeroShellsArmed {
			e.zeroShellsArmed = true
			e.zeroShellsGrace = ZeroShellsGraceTurns
		}
	} else {
		e.zeroShellsArmed = false
		e.zeroShellsGrace = -1
	}

	if e.zeroShellsArmed {
		e.zeroShellsGrace--
		if e.zeroShellsGrace <= 0 {
			return Result{
				Winner:         0,
				Reason:         ZeroShells,
				RemainingTanks: remaining,
				FinalBoard:     e.renderBoard(),
				Rounds:         e.turn,
			}, true
		}
	}

	return Result{}, false
}
