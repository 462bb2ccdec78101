// Command validate checks the preset board files in a boards directory
// (default ../boards, or the first argument). It checks:
//   - Document structure and required keys (starting_position, matrix)
//   - A rectangular, non-empty matrix
//   - A starting position that lies on the board
//   - Reachability: how many coin cells a walk could reach from the start
//
// It exits with non-zero status if any board is invalid.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/mcp-training/wayfinder/game/board"
	"github.com/wricardo/mcp-training/wayfinder/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateBoard loads and validates a single board file.
func validateBoard(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	b, err := board.Decode(filePath, data)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid board: %v", err))
		return result
	}

	grid := b.Matrix
	result.Errors = append(result.Errors, fmt.Sprintf("✓ Size: %dx%d, %d coins, %d walls",
		grid.Width(), grid.Height(), engine.CountCoins(grid), engine.CountWalls(grid)))

	start, err := engine.NormalizeStart(grid, b.StartingPosition)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Starting position [%d,%d]: %v",
			b.StartingPosition.X, b.StartingPosition.Y, err))
		return result
	}
	if !grid.InBounds(start.X, start.Y) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(
			"Starting position [%d,%d] maps to column %d, row %d, which is off the board",
			b.StartingPosition.X, b.StartingPosition.Y, start.X, start.Y))
		return result
	}
	if grid[start.Y][start.X] == engine.Wall {
		result.Errors = append(result.Errors, "✓ Note: the starting cell is a wall; walls only block entry")
	}

	reach := validateReachability(grid, start)
	if !reach.Valid {
		result.Valid = false
	}
	result.Errors = append(result.Errors, reach.Errors...)

	return result
}

// validateReachability flood-fills from start and reports how many coin cells
// a walk could reach. A start with no passable neighbour is an error.
func validateReachability(grid engine.Grid, start engine.Position) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if grid.Height() == 0 || grid.Width() == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate reachability: empty matrix")
		return result
	}

	visited := map[engine.Position]bool{start: true}
	queue := []engine.Position{start}
	directions := []engine.Direction{engine.North, engine.East, engine.South, engine.West}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, d := range directions {
			dx, dy := d.Delta()
			next := engine.Position{X: current.X + dx, Y: current.Y + dy}
			if !visited[next] && grid.Passable(next.X, next.Y) {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	// The start itself is not collected
	reachable := len(visited) - 1
	total := engine.CountCoins(grid)
	if grid.Passable(start.X, start.Y) {
		total--
	}

	if reachable == 0 && total > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Reachability failure: the start is boxed in, no move can succeed")
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Reachability: %d/%d coin cells reachable from the start", reachable, total))
	return result
}

// main scans the boards directory for *.json and *.hcl files and validates
// each one, printing a concise report and exiting with non-zero status if any
// are invalid.
func main() {
	boardsDir := "../boards"
	if len(os.Args) > 1 {
		boardsDir = os.Args[1]
	}

	var files []string
	for _, pattern := range []string{"*.json", "*.hcl"} {
		matches, err := filepath.Glob(filepath.Join(boardsDir, pattern))
		if err != nil {
			fmt.Printf("Error finding board files: %v\n", err)
			os.Exit(1)
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		fmt.Printf("No board files found in %s\n", boardsDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateBoard(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All boards are valid!")
	} else {
		fmt.Println("❌ Some boards have errors")
		os.Exit(1)
	}
}
