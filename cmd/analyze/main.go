// Command analyze prints quick, human-readable heuristics about the preset
// boards in a boards directory (default boards, or the first argument). It
// summarizes dimensions, wall density, the starting cell and how far a walk
// can run in a straight line from the start in each direction.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/wricardo/mcp-training/wayfinder/game/board"
	"github.com/wricardo/mcp-training/wayfinder/game/engine"
)

// Analysis holds the heuristics computed for one board.
type Analysis struct {
	Name        string
	Width       int
	Height      int
	Walls       int
	Coins       int
	WallDensity float64
	Start       engine.Position // external
	StartCell   engine.Position // internal
	OnBoard     bool
	StartIsWall bool
	Runs        map[engine.Direction]int
}

var compass = []engine.Direction{engine.North, engine.East, engine.South, engine.West}

func main() {
	boardsDir := "boards"
	if len(os.Args) > 1 {
		boardsDir = os.Args[1]
	}

	manager, err := board.NewManager(boardsDir, nil)
	if err != nil {
		fmt.Printf("Error opening boards directory: %v\n", err)
		os.Exit(1)
	}

	infos, err := manager.ListBoards()
	if err != nil {
		fmt.Printf("Error listing boards: %v\n", err)
		os.Exit(1)
	}

	for _, info := range infos {
		fmt.Printf("\n=== Analyzing %s ===\n", info.Filename)
		b, err := manager.LoadBoard(info.Name)
		if err != nil {
			fmt.Printf("Error loading board: %v\n", err)
			continue
		}
		printAnalysis(os.Stdout, analyzeBoard(b))
	}
}

func analyzeBoard(b *engine.Board) Analysis {
	grid := b.Matrix
	a := Analysis{
		Name:   b.Name,
		Width:  grid.Width(),
		Height: grid.Height(),
		Walls:  engine.CountWalls(grid),
		Coins:  engine.CountCoins(grid),
		Start:  b.StartingPosition,
		Runs:   make(map[engine.Direction]int),
	}
	if cells := a.Width * a.Height; cells > 0 {
		a.WallDensity = float64(a.Walls) / float64(cells)
	}

	a.StartCell = engine.ToInternal(grid, b.StartingPosition)
	a.OnBoard = grid.InBounds(a.StartCell.X, a.StartCell.Y)
	if a.OnBoard {
		a.StartIsWall = grid[a.StartCell.Y][a.StartCell.X] == engine.Wall
	}
	for _, d := range compass {
		a.Runs[d] = engine.RunLength(grid, a.StartCell, d)
	}
	return a
}

func printAnalysis(w io.Writer, a Analysis) {
	fmt.Fprintf(w, "Name: %s\n", a.Name)
	fmt.Fprintf(w, "Grid Size: %d x %d\n", a.Width, a.Height)
	fmt.Fprintf(w, "Coins: %d, Walls: %d (%.1f%% walls)\n", a.Coins, a.Walls, a.WallDensity*100)
	fmt.Fprintf(w, "Start: [%d,%d] -> row %d, column %d\n", a.Start.X, a.Start.Y, a.StartCell.Y, a.StartCell.X)

	switch {
	case !a.OnBoard:
		fmt.Fprintf(w, "⚠️  WARNING: the start is off the board; only a move back onto it can succeed\n")
	case a.StartIsWall:
		fmt.Fprintf(w, "⚠️  NOTE: the start is a wall cell; walls only block entry\n")
	}

	best, longest := engine.Direction(0), -1
	for _, d := range compass {
		fmt.Fprintf(w, "  %s: %d free steps\n", d, a.Runs[d])
		if a.Runs[d] > longest {
			best, longest = d, a.Runs[d]
		}
	}

	if longest == 0 {
		fmt.Fprintf(w, "⚠️  CRITICAL: every first move is blocked\n")
	} else {
		fmt.Fprintf(w, "✅ Longest straight run: %d steps %s\n", longest, best)
	}
}
