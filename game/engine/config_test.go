package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateGrid(t *testing.T) {
	tests := []struct {
		name    string
		grid    Grid
		wantErr string
	}{
		{"valid", Grid{{1, 0}, {0, 1}}, ""},
		{"single cell", Grid{{0}}, ""},
		{"no rows", Grid{}, "at least one row"},
		{"empty row", Grid{{}}, "at least one row"},
		{"ragged", Grid{{1, 1, 1}, {1, 1}}, "row 2 must have 3 cells"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateGrid(test.grid)
			if test.wantErr == "" {
				if err != nil {
					t.Errorf("Expected valid grid, got: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidBoard) {
				t.Fatalf("Expected ErrInvalidBoard, got %v", err)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", test.wantErr, err)
			}
		})
	}
}

func TestValidateBoard(t *testing.T) {
	if err := ValidateBoard(nil); !errors.Is(err, ErrInvalidBoard) {
		t.Errorf("Expected ErrInvalidBoard for nil board, got %v", err)
	}

	board := &Board{StartingPosition: Position{X: 3, Y: 2}, Matrix: fiveByFive()}
	if err := ValidateBoard(board); err != nil {
		t.Errorf("Expected valid board, got %v", err)
	}

	board.StartingPosition = Position{X: 18, Y: 24}
	if err := ValidateBoard(board); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}
