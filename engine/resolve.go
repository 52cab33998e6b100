package engine

import "github.com/tanktourney/tanktourney/geom"

// liveTankAt returns the alive tank occupying (x,y), if any.
func (e *Engine) liveTankAt(x, y int) *tankSlot {
	x, y = e.wrap(x, y)
	for _, ts := range e.tanks {
		if ts.Alive() && ts.Pos.X == x && ts.Pos.Y == y {
			return ts
		}
	}
	return nil
}

// shellsAt returns every live shell occupying (x,y).
func (e *Engine) shellsAt(x, y int) []*shellSlot {
	x, y = e.wrap(x, y)
	var out []*shellSlot
	for _, s := range e.shells {
		if s.Pos.X == x && s.Pos.Y == y {
			out = append(out, s)
		}
	}
	return out
}

// moveTank resolves a tank stepping one cell in dir, applying the
// move-time table from spec.md §4.4.4. Walls (and weak walls) block
// movement outright; everything else either kills the tank, kills both
// tanks, destroys an oncoming shell along with the tank, or lets the
// tank enter (overlapping a stationary shell if one is present).
func (e *Engine) moveTank(ts *tankSlot, dir geom.Direction) {
	next := ts.Pos.Add(dir)
	nx, ny := e.wrap(next.X, next.Y)
	terr := e.terrainAt(nx, ny)

	if terr == terrainWall || terr == terrainWeakWall {
		return
	}

	if other := e.liveTankAt(nx, ny); other != nil {
		ts.MarkKilled()
		other.MarkKilled()
		return
	}

	// A shell resting on the cell masks whatever terrain is beneath it
	// (rendered '*' over a mine) — check for one before the mine branch,
	// since a mine only kills when no shell currently occupies its cell.
	if shells := e.shellsAt(nx, ny); len(shells) > 0 {
		for _, s := range shells {
			if dir.AngleDiff(s.Dir) == 4 {
				e.destroyShell(s)
				ts.MarkKilled()
				return
			}
		}
		// no oncoming shell: tank enters, overlapping the stationary shell(s)
		ts.Pos = geom.Point{X: nx, Y: ny}
		return
	}

	if terr == terrainMine {
		ts.MarkKilled()
		e.setTerrain(nx, ny, terrainEmpty)
		return
	}

	ts.Pos = geom.Point{X: nx, Y: ny}
}

// spawnShellFrom resolves a valid Shoot, applying the shoot-time table
// from spec.md §4.4.4.
func (e *Engine) spawnShellFrom(ts *tankSlot) {
	next := ts.Pos.Add(ts.Facing)
	nx, ny := e.wrap(next.X, next.Y)
	terr := e.terrainAt(nx, ny)

	switch terr {
	case terrainWall:
		e.setTerrain(nx, ny, terrainWeakWall)
		return
	case terrainWeakWall:
		e.setTerrain(nx, ny, terrainEmpty)
		return
	}

	if tank := e.liveTankAt(nx, ny); tank != nil {
		e.shells = append(e.shells, &shellSlot{
			Shell:      Shell{Pos: geom.Point{X: nx, Y: ny}, Dir: ts.Facing},
			killTarget: tank,
		})
		return
	}

	if existing := e.shellsAt(nx, ny); len(existing) > 0 {
		e.destroyShell(existing[0])
		// A shell resting above a mine masks it; destroying that shell
		// here also destroys the mine beneath it, permanently.
		e.setTerrain(nx, ny, terrainEmpty)
		return
	}

	e.shells = append(e.shells, &shellSlot{
		Shell: Shell{Pos: geom.Point{X: nx, Y: ny}, Dir: ts.Facing, AboveMine: terr == terrainMine},
	})
}

// destroyShell removes a shell from play.
func (e *Engine) destroyShell(target *shellSlot) {
	for i, s := range e.shells {
		if s == target {
			e.shells = append(e.shells[:i], e.shells[i+1:]...)
			return
		}
	}
}

// shellSubstep advances every live shell by one cell, applying the
// per-shell steps from spec.md §4.4.2. Shells spawned directly onto a
// tank this turn (killTarget set) resolve their kill here instead of
// advancing, matching step 1 of the source's shell substep.
func (e *Engine) shellSubstep() {
	active := make([]*shellSlot, len(e.shells))
	copy(active, e.shells)
	destroyed := make(map[*shellSlot]bool, len(active))

	for _, s := range active {
		if destroyed[s] {
			continue
		}

		if s.killTarget != nil {
			s.killTarget.MarkKilled()
			destroyed[s] = true
			continue
		}

		next := s.Pos.Add(s.Dir)
		nx, ny := e.wrap(next.X, next.Y)
		terr := e.terrainAt(nx, ny)

		switch terr {
		case terrainWall:
			e.setTerrain(nx, ny, terrainWeakWall)
			destroyed[s] = true
			continue
		case terrainWeakWall:
			e.setTerrain(nx, ny, terrainEmpty)
			destroyed[s] = true
			continue
		}

		if tank := e.liveTankAt(nx, ny); tank != nil {
			tank.MarkKilled()
			destroyed[s] = true
			continue
		}

		if opponent := e.opposingShellAt(active, destroyed, s, nx, ny); opponent != nil {
			destroyed[s] = true
			destroyed[opponent] = true
			continue
		}

		s.Pos = geom.Point{X: nx, Y: ny}
		s.AboveMine = terr == terrainMine
	}

	kept := e.shells[:0]
	for _, s := range e.shells {
		if !destroyed[s] {
			kept = append(kept, s)
		}
	}
	e.shells = kept
}

// opposingShellAt returns a shell already sitting at (x,y) this substep
// whose direction is opposite s's, implementing the shell-shell rule
// from spec.md §4.4.2: opposite directions mutually destroy; anything
// else just stacks (rendered as '^', separated or re-collapsed on the
// following substep/collapse pass).
func (e *Engine) opposingShellAt(active []*shellSlot, destroyed map[*shellSlot]bool, s *shellSlot, x, y int) *shellSlot {
	for _, other := range active {
		if other == s || destroyed[other] {
			continue
		}
		if other.Pos.X != x || other.Pos.Y != y {
			continue
		}
		if s.Dir.AngleDiff(other.Dir) == 4 {
			return other
		}
	}
	return nil
}

// collapseShells implements spec.md §4.4.3: after both substeps, any
// cell still holding two or more shells has all of them destroyed.
func (e *Engine) collapseShells() {
	counts := make(map[geom.Point]int, len(e.shells))
	for _, s := range e.shells {
		counts[s.Pos]++
	}

	kept := e.shells[:0]
	for _, s := range e.shells {
		if counts[s.Pos] >= 2 {
			continue
		}
		kept = append(kept, s)
	}
	e.shells = kept
}
