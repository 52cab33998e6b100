package algo

import (
	"github.com/tanktourney/tanktourney/board"
	"github.com/tanktourney/tanktourney/geom"
)

// bfsPathToEnemy runs a breadth-first search from start over the given
// gameboard (row-major, [y][x]) to the nearest cell holding an enemy
// tank, treating walls, weak walls, mines, and the tank's own side as
// blocked. It returns the path of cells from start to the target
// (exclusive of start, inclusive of the target), or nil if no enemy is
// reachable.
func bfsPathToEnemy(grid [][]board.Cell, start geom.Point, playerIndex int) []geom.Point {
	h := len(grid)
	if h == 0 {
		return nil
	}
	w := len(grid[0])
	if w == 0 {
		return nil
	}

	type cell struct{ x, y int }

	visited := make([][]bool, h)
	parent := make([][]cell, h)
	for y := range visited {
		visited[y] = make([]bool, w)
		parent[y] = make([]cell, w)
	}

	queue := []cell{{start.X, start.Y}}
	visited[start.Y][start.X] = true
	parent[start.Y][start.X] = cell{-1, -1}

	target := cell{-1, -1}
	found := false

outer:
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for d := geom.U; d <= geom.UL; d++ {
			off := d.Offset()
			nx := ((cur.x+off.X)%w + w) % w
			ny := ((cur.y+off.Y)%h + h) % h

			if visited[ny][nx] {
				continue
			}

			c := grid[ny][nx]
			if owner := board.OwnerOfTankCell(c); owner != 0 && owner != playerIndex {
				visited[ny][nx] = true
				parent[ny][nx] = cell{cur.x, cur.y}
				target = cell{nx, ny}
				found = true
				break outer
			}

			if blocksPath(c, playerIndex) {
				continue
			}

			visited[ny][nx] = true
			parent[ny][nx] = cell{cur.x, cur.y}
			queue = append(queue, cell{nx, ny})
		}
	}

	if !found {
		return nil
	}

	var path []geom.Point
	for cur := target; cur != (cell{start.X, start.Y}); cur = parent[cur.y][cur.x] {
		path = append([]geom.Point{{X: cur.x, Y: cur.y}}, path...)
	}
	return path
}

// blocksPath reports whether a cell can never be entered while
// pathfinding: walls, weak walls, mines, and any cell already occupied
// by a tank of the searcher's own side.
func blocksPath(c board.Cell, playerIndex int) bool {
	switch c {
	case board.Wall, board.WeakWall, board.Mine:
		return true
	}
	return board.OwnerOfTankCell(c) == playerIndex
}
