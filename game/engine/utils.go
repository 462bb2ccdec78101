package engine

import "fmt"

// ToInternal converts an external (bottom-left origin) coordinate into grid
// indices for the given board.
func ToInternal(grid Grid, external Position) Position {
	return Position{
		X: grid.Width() - external.X,
		Y: grid.Height() - external.Y,
	}
}

// ToExternal is the inverse of ToInternal.
func ToExternal(grid Grid, internal Position) Position {
	return Position{
		X: grid.Width() - internal.X,
		Y: grid.Height() - internal.Y,
	}
}

// NormalizeStart checks an external starting coordinate against the board
// extent and returns it in internal space. Only the upper bound is checked:
// zero and negative coordinates are accepted.
func NormalizeStart(grid Grid, external Position) (Position, error) {
	width, height := grid.Width(), grid.Height()
	if external.X > width {
		return Position{}, fmt.Errorf("%w: x=%d exceeds width %d", ErrOutOfBounds, external.X, width)
	}
	if external.Y > height {
		return Position{}, fmt.Errorf("%w: y=%d exceeds height %d", ErrOutOfBounds, external.Y, height)
	}
	return ToInternal(grid, external), nil
}

// CountCoins counts the passable cells in the grid
func CountCoins(grid Grid) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell != Wall {
				count++
			}
		}
	}
	return count
}

// CountWalls counts the blocked cells in the grid
func CountWalls(grid Grid) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell == Wall {
				count++
			}
		}
	}
	return count
}

// RunLength returns how many consecutive passable cells lie in direction d
// from the internal position pos, not counting pos itself.
func RunLength(grid Grid, pos Position, d Direction) int {
	dx, dy := d.Delta()
	if dx == 0 && dy == 0 {
		return 0
	}
	n := 0
	for x, y := pos.X+dx, pos.Y+dy; grid.Passable(x, y); x, y = x+dx, y+dy {
		n++
	}
	return n
}
