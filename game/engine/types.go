package engine

// Cell values
const (
	// Wall is the only blocked cell value; every other value is passable.
	Wall = 0
	// Coin is the value the random generator uses for open cells.
	Coin = 1
)

// Grid is a rectangular board of cells indexed as Grid[y][x].
type Grid [][]int

// Width returns the row length, or 0 for an empty grid.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// InBounds reports whether (x, y) indexes an existing cell.
func (g Grid) InBounds(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y])
}

// Passable reports whether the cell at (x, y) exists and is not a wall.
func (g Grid) Passable(x, y int) bool {
	return g.InBounds(x, y) && g[y][x] != Wall
}

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Board is a grid paired with its starting coordinate, as read from a board
// document or produced by the random generator. StartingPosition is in
// external (bottom-left origin) space.
type Board struct {
	Name             string   `json:"name,omitempty"`
	StartingPosition Position `json:"-"`
	Matrix           Grid     `json:"matrix"`
}

// HaltReason explains why a walk stopped.
type HaltReason string

const (
	HaltWall      HaltReason = "wall"
	HaltBoundary  HaltReason = "boundary"
	HaltExhausted HaltReason = "exhausted"
)

// Result is the record produced when a walk halts. Coordinates are external.
type Result struct {
	FinalX int `json:"final_x"`
	FinalY int `json:"final_y"`
	Coins  int `json:"coins"`
	Moves  int `json:"moves"`
}

// Trace describes how a walk went. All positions are external.
type Trace struct {
	Halt HaltReason `json:"halt"`
	// Path starts with the starting position and gains one entry per move.
	Path []Position `json:"path"`
	// Blocked is the cell the walk tried to enter when it halted on a wall or
	// the board edge. Nil when the moves ran out.
	Blocked *Position `json:"blocked,omitempty"`
}

// WalkState is the mutable state of a single walk. Pos is internal.
type WalkState struct {
	Pos   Position
	Moves int
	Coins int
	Next  int
}
