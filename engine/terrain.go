package engine

// terrainCell is the static (non-entity) layer of the grid: walls, weak
// walls and mines. Tanks and shells are tracked as entity lists rather
// than board characters (see Engine.renderCell) so that resolving a
// move/shoot/shell-substep never requires the char-parsing gymnastics
// the transient overlap markers ('a','b','c','d','^') imply in
// spec.md §3 — the derived snapshot produces those markers for display
// and for algorithms, but the simulation's source of truth is the
// terrain grid plus the tank/shell lists.
type terrainCell byte

const (
	terrainEmpty terrainCell = iota
	terrainWall
	terrainWeakWall
	terrainMine
)

func (e *Engine) terrainAt(x, y int) terrainCell {
	x, y = e.wrap(x, y)
	return e.terrain[y*e.w+x]
}

func (e *Engine) setTerrain(x, y int, c terrainCell) {
	x, y = e.wrap(x, y)
	e.terrain[y*e.w+x] = c
}

func (e *Engine) wrap(x, y int) (int, int) {
	x %= e.w
	if x < 0 {
		x += e.w
	}
	y %= e.h
	if y < 0 {
		y += e.h
	}
	return x, y
}
