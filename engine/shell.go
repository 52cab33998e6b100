package engine

import "github.com/tanktourney/tanktourney/geom"

// Shell is a live projectile (C5). Dir never changes after creation;
// the engine's shell substep updates Pos and AboveMine as the shell
// moves, mirroring original_source/UserCommon/UC_src/Shell.cpp.
type Shell struct {
	Pos       geom.Point
	Dir       geom.Direction
	AboveMine bool
}

// shellSlot is the engine's bookkeeping wrapper around a Shell. killTarget
// stands in for the source's transient 'c'/'d' board markers: a shell
// fired directly into an occupied cell doesn't kill the tank immediately
// (spec.md §4.4.1 shoot-time table) — it kills on the next shell substep
// that visits its own cell (spec.md §4.4.2 step 1).
type shellSlot struct {
	Shell
	killTarget *tankSlot
}
