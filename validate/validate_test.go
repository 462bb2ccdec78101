package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/wayfinder/game/engine"
)

func writeBoard(t *testing.T, filename, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write board: %v", err)
	}
	return path
}

func TestValidateBoard_ValidBoard(t *testing.T) {
	path := writeBoard(t, "5x5.json", `{
		"starting_position": [3, 2],
		"matrix": [
			[1, 1, 1, 1, 1],
			[1, 0, 1, 0, 1],
			[1, 1, 1, 1, 1],
			[1, 0, 1, 0, 1],
			[1, 1, 1, 1, 1]
		]
	}`)

	result := validateBoard(path)
	if !result.Valid {
		t.Errorf("Expected valid board, but got errors: %v", result.Errors)
	}
	if result.File != "5x5.json" {
		t.Errorf("Expected file name 5x5.json, got %s", result.File)
	}
	if !contains(strings.Join(result.Errors, "\n"), "20/20 coin cells reachable") {
		t.Errorf("Expected reachability summary, got %v", result.Errors)
	}
}

func TestValidateBoard_HCL(t *testing.T) {
	path := writeBoard(t, "line.hcl", `
starting_position = [3, 1]
matrix = [
  [1, 1, 0],
]
`)

	result := validateBoard(path)
	if !result.Valid {
		t.Errorf("Expected valid board, but got errors: %v", result.Errors)
	}
}

func TestValidateBoard_InvalidDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid json", `{"matrix": [[1]], invalid}`, "malformed board document"},
		{"missing start", `{"matrix": [[1, 1]]}`, "starting_position is required"},
		{"missing matrix", `{"starting_position": [1, 1]}`, "matrix is required"},
		{"empty matrix", `{"starting_position": [1, 1], "matrix": []}`, "at least one row"},
		{"ragged matrix", `{"starting_position": [1, 1], "matrix": [[1, 1], [1]]}`, "row 2"},
		{"start too far", `{"starting_position": [18, 24], "matrix": [[1, 1], [1, 1]]}`, "outside the board extent"},
		{"start off the edge", `{"starting_position": [0, 1], "matrix": [[1, 1], [1, 1]]}`, "off the board"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := validateBoard(writeBoard(t, "board.json", test.content))
			if result.Valid {
				t.Fatal("Expected invalid board")
			}
			if !contains(strings.Join(result.Errors, "\n"), test.want) {
				t.Errorf("Expected error containing %q, got %v", test.want, result.Errors)
			}
		})
	}
}

func TestValidateBoard_MissingFile(t *testing.T) {
	result := validateBoard(filepath.Join(t.TempDir(), "nope.json"))

	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if len(result.Errors) == 0 || !strings.HasPrefix(result.Errors[0], "Failed to read file") {
		t.Errorf("Expected read error, got %v", result.Errors)
	}
}

func TestValidateReachability_BoxedIn(t *testing.T) {
	grid := engine.Grid{
		{1, 0, 1},
		{0, 1, 0},
		{1, 0, 1},
	}

	result := validateReachability(grid, engine.Position{X: 1, Y: 1})

	if result.Valid {
		t.Error("Expected boxed-in start to be invalid")
	}
}

func TestValidateReachability_PartialBoard(t *testing.T) {
	grid := engine.Grid{
		{1, 1, 0, 1},
		{1, 1, 0, 1},
	}

	result := validateReachability(grid, engine.Position{X: 0, Y: 0})

	if !result.Valid {
		t.Fatalf("Expected valid result, got %v", result.Errors)
	}
	if !contains(result.Errors[0], "3/5 coin cells reachable") {
		t.Errorf("Unexpected summary: %v", result.Errors)
	}
}

func TestValidateReachability_SingleCell(t *testing.T) {
	result := validateReachability(engine.Grid{{1}}, engine.Position{X: 0, Y: 0})

	if !result.Valid {
		t.Errorf("A single-cell board has nothing to reach and is valid, got %v", result.Errors)
	}
}

func TestValidateReachability_EmptyGrid(t *testing.T) {
	result := validateReachability(engine.Grid{}, engine.Position{})

	if result.Valid {
		t.Error("Expected empty grid to be invalid")
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func TestShippedBoards(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "boards", "*.*"))
	if err != nil {
		t.Fatalf("Failed to list boards: %v", err)
	}
	if len(files) == 0 {
		t.Skip("no shipped boards")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			result := validateBoard(file)
			if !result.Valid {
				t.Errorf("Expected shipped board to be valid, got %v", result.Errors)
			}
		})
	}
}
