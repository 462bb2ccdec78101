package engine

import (
	"encoding/json"
	"fmt"
)

// ValidateGrid checks that the grid has at least one cell and that every row
// has the same length.
func ValidateGrid(grid Grid) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return fmt.Errorf("%w: matrix must have at least one row and one column", ErrInvalidBoard)
	}
	width := len(grid[0])
	for i, row := range grid {
		if len(row) != width {
			return fmt.Errorf("%w: row %d must have %d cells to match row 1, got %d",
				ErrInvalidBoard, i+1, width, len(row))
		}
	}
	return nil
}

// ValidateBoard validates the board grid and its starting position.
func ValidateBoard(board *Board) error {
	if board == nil {
		return fmt.Errorf("%w: board cannot be nil", ErrInvalidBoard)
	}
	if err := ValidateGrid(board.Matrix); err != nil {
		return err
	}
	if _, err := NormalizeStart(board.Matrix, board.StartingPosition); err != nil {
		return err
	}
	return nil
}

// boardDocument is the on-disk shape of a board.
type boardDocument struct {
	Name             string `json:"name,omitempty"`
	StartingPosition [2]int `json:"starting_position"`
	Matrix           Grid   `json:"matrix"`
}

// MarshalJSON writes the board in the board file format, with the starting
// position as a two-element [x, y] array.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardDocument{
		Name:             b.Name,
		StartingPosition: [2]int{b.StartingPosition.X, b.StartingPosition.Y},
		Matrix:           b.Matrix,
	})
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	grid := make(Grid, len(b.Matrix))
	for i, row := range b.Matrix {
		grid[i] = append([]int(nil), row...)
	}
	return &Board{
		Name:             b.Name,
		StartingPosition: b.StartingPosition,
		Matrix:           grid,
	}
}
