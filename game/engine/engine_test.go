package engine

import (
	"errors"
	"strings"
	"testing"
)

func openGrid(width, height int) Grid {
	grid := make(Grid, height)
	for y := range grid {
		grid[y] = make([]int, width)
		for x := range grid[y] {
			grid[y][x] = Coin
		}
	}
	return grid
}

// createTestEngine builds an engine whose walk starts at the given internal
// position.
func createTestEngine(t *testing.T, grid Grid, internal Position, movements string) *GameEngine {
	t.Helper()

	moves, err := ParseMovements(movements)
	if err != nil {
		t.Fatalf("Failed to parse movements: %v", err)
	}
	board := &Board{
		StartingPosition: ToExternal(grid, internal),
		Matrix:           grid,
	}
	e, err := NewEngine(board, moves)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	if e.GetStart() != internal {
		t.Fatalf("Expected start %+v, got %+v", internal, e.GetStart())
	}
	return e
}

func TestNewEngine(t *testing.T) {
	board := &Board{StartingPosition: Position{X: 3, Y: 2}, Matrix: fiveByFive()}
	e, err := NewEngine(board, []Direction{North, East})
	if err != nil {
		t.Fatalf("Failed to create new engine: %v", err)
	}

	if e.GetBoard() != board {
		t.Error("Expected engine to keep the board")
	}
	if FormatMovements(e.GetMovements()) != "NE" {
		t.Errorf("Expected movements NE, got %s", FormatMovements(e.GetMovements()))
	}
	if e.GetStart() != (Position{X: 2, Y: 3}) {
		t.Errorf("Expected internal start (2,3), got %+v", e.GetStart())
	}
}

func TestNewEngine_Errors(t *testing.T) {
	tests := []struct {
		name  string
		board *Board
		moves []Direction
		want  error
	}{
		{"nil board", nil, nil, ErrInvalidBoard},
		{"ragged grid", &Board{Matrix: Grid{{1, 1}, {1}}}, nil, ErrInvalidBoard},
		{"start out of bounds", &Board{StartingPosition: Position{X: 18, Y: 24}, Matrix: fiveByFive()}, nil, ErrOutOfBounds},
		{"bad direction", &Board{StartingPosition: Position{X: 1, Y: 1}, Matrix: fiveByFive()}, []Direction{North, 'Q'}, ErrInvalidMovement},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewEngine(test.board, test.moves)
			if !errors.Is(err, test.want) {
				t.Errorf("Expected %v, got %v", test.want, err)
			}
		})
	}
}

func TestSetStartingCoords(t *testing.T) {
	board := &Board{StartingPosition: Position{X: 1, Y: 1}, Matrix: fiveByFive()}
	e, err := NewEngine(board, nil)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if err := e.SetStartingCoords(3, 2); err != nil {
		t.Errorf("Expected (3,2) to fit a 5x5 board, got %v", err)
	}
	if e.GetStart() != (Position{X: 2, Y: 3}) {
		t.Errorf("Expected internal start (2,3), got %+v", e.GetStart())
	}

	err = e.SetStartingCoords(18, 24)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Expected ErrOutOfBounds, got %v", err)
	}
	if !strings.Contains(err.Error(), "outside the board extent") {
		t.Errorf("Unexpected error message: %v", err)
	}
	if e.GetStart() != (Position{X: 2, Y: 3}) {
		t.Error("Failed SetStartingCoords must not change the start")
	}
}

func TestWalk_OpenGridNEWS(t *testing.T) {
	e := createTestEngine(t, openGrid(3, 3), Position{X: 1, Y: 1}, "NEWS")

	result, trace := e.Walk()

	if result.Moves != 4 {
		t.Errorf("Expected 4 moves, got %d", result.Moves)
	}
	if result.Coins != result.Moves {
		t.Errorf("Expected coins (%d) to equal moves (%d)", result.Coins, result.Moves)
	}
	if result.FinalX != 2 || result.FinalY != 2 {
		t.Errorf("Expected final external position (2,2), got (%d,%d)", result.FinalX, result.FinalY)
	}
	if trace.Halt != HaltExhausted {
		t.Errorf("Expected halt %q, got %q", HaltExhausted, trace.Halt)
	}
	if trace.Blocked != nil {
		t.Errorf("Expected no blocked cell, got %+v", trace.Blocked)
	}

	expectedPath := []Position{{2, 2}, {2, 3}, {1, 3}, {2, 3}, {2, 2}}
	if len(trace.Path) != len(expectedPath) {
		t.Fatalf("Expected path of %d positions, got %v", len(expectedPath), trace.Path)
	}
	for i := range expectedPath {
		if trace.Path[i] != expectedPath[i] {
			t.Errorf("Path[%d]: expected %+v, got %+v", i, expectedPath[i], trace.Path[i])
		}
	}
}

func TestWalk_StopsAtBoundary(t *testing.T) {
	e := createTestEngine(t, openGrid(3, 3), Position{X: 1, Y: 1}, "NNS")

	result, trace := e.Walk()

	if result.Moves != 1 || result.Coins != 1 {
		t.Errorf("Expected 1 move and 1 coin, got %d moves and %d coins", result.Moves, result.Coins)
	}
	if trace.Halt != HaltBoundary {
		t.Errorf("Expected halt %q, got %q", HaltBoundary, trace.Halt)
	}
	// internal (1,0) is external (2,3); the blocked target is internal (1,-1)
	if result.FinalX != 2 || result.FinalY != 3 {
		t.Errorf("Expected final (2,3), got (%d,%d)", result.FinalX, result.FinalY)
	}
	if trace.Blocked == nil || *trace.Blocked != (Position{X: 2, Y: 4}) {
		t.Errorf("Expected blocked external (2,4), got %+v", trace.Blocked)
	}
}

func TestWalk_StopsAtWall(t *testing.T) {
	grid := Grid{
		{1, 1, 1},
		{1, 1, 0},
		{1, 1, 1},
	}
	e := createTestEngine(t, grid, Position{X: 1, Y: 1}, "EN")

	result, trace := e.Walk()

	if result.Moves != 0 || result.Coins != 0 {
		t.Errorf("Expected no moves, got %d moves and %d coins", result.Moves, result.Coins)
	}
	if trace.Halt != HaltWall {
		t.Errorf("Expected halt %q, got %q", HaltWall, trace.Halt)
	}
	if result.FinalX != 2 || result.FinalY != 2 {
		t.Errorf("Expected to stay at (2,2), got (%d,%d)", result.FinalX, result.FinalY)
	}
	if len(trace.Path) != 1 {
		t.Errorf("Expected path with only the start, got %v", trace.Path)
	}
}

func TestWalk_NoMovements(t *testing.T) {
	e := createTestEngine(t, openGrid(2, 2), Position{X: 0, Y: 0}, "")

	result, trace := e.Walk()

	if result.Moves != 0 {
		t.Errorf("Expected 0 moves, got %d", result.Moves)
	}
	if trace.Halt != HaltExhausted {
		t.Errorf("Expected halt %q, got %q", HaltExhausted, trace.Halt)
	}
}

func TestWalk_LongSequence(t *testing.T) {
	e := createTestEngine(t, Grid{{1, 1}}, Position{X: 0, Y: 0}, strings.Repeat("ew", 50000))

	result, trace := e.Walk()

	if result.Moves != 100000 {
		t.Errorf("Expected 100000 moves, got %d", result.Moves)
	}
	if trace.Halt != HaltExhausted {
		t.Errorf("Expected halt %q, got %q", HaltExhausted, trace.Halt)
	}
}

func TestWalk_Repeatable(t *testing.T) {
	e := createTestEngine(t, openGrid(4, 4), Position{X: 0, Y: 3}, "NNEES")

	first, _ := e.Walk()
	second, _ := e.Walk()

	if first != second {
		t.Errorf("Walking twice gave different results: %+v vs %+v", first, second)
	}
}

func TestWalk_StartOffGrid(t *testing.T) {
	// External x=0 maps to internal x=width, one column past the grid. The
	// walk can still step back onto the board.
	board := &Board{StartingPosition: Position{X: 0, Y: 2}, Matrix: openGrid(3, 3)}
	moves, _ := ParseMovements("WE")
	e, err := NewEngine(board, moves)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	result, trace := e.Walk()

	if result.Moves != 1 {
		t.Errorf("Expected 1 move, got %d", result.Moves)
	}
	if trace.Halt != HaltBoundary {
		t.Errorf("Expected halt %q, got %q", HaltBoundary, trace.Halt)
	}
}

func TestWalk_OnStep(t *testing.T) {
	e := createTestEngine(t, openGrid(3, 3), Position{X: 0, Y: 0}, "EESS")

	var coins []int
	var dirs []Direction
	e.OnStep(func(state WalkState, d Direction) {
		coins = append(coins, state.Coins)
		dirs = append(dirs, d)
	})
	e.Walk()

	if len(coins) != 4 {
		t.Fatalf("Expected 4 callbacks, got %d", len(coins))
	}
	for i, c := range coins {
		if c != i+1 {
			t.Errorf("Callback %d: expected %d coins, got %d", i, i+1, c)
		}
	}
	if FormatMovements(dirs) != "EESS" {
		t.Errorf("Expected directions EESS, got %s", FormatMovements(dirs))
	}
}

func TestStep(t *testing.T) {
	grid := Grid{
		{1, 0},
		{1, 1},
	}
	moves := []Direction{North, East}

	state := WalkState{Pos: Position{X: 0, Y: 1}}
	next, halt, target := Step(grid, moves, state)
	if halt != "" || target != nil {
		t.Fatalf("Expected first step to succeed, got halt %q", halt)
	}
	if next.Pos != (Position{X: 0, Y: 0}) || next.Next != 1 || next.Moves != 1 {
		t.Errorf("Unexpected state after step: %+v", next)
	}
	if state.Moves != 0 {
		t.Error("Step must not modify the state it was given")
	}

	_, halt, target = Step(grid, moves, next)
	if halt != HaltWall {
		t.Errorf("Expected wall, got %q", halt)
	}
	if target == nil || *target != (Position{X: 1, Y: 0}) {
		t.Errorf("Expected target (1,0), got %+v", target)
	}

	_, halt, _ = Step(grid, moves, WalkState{Next: 2})
	if halt != HaltExhausted {
		t.Errorf("Expected exhausted, got %q", halt)
	}
}

func TestRun(t *testing.T) {
	board := &Board{StartingPosition: Position{X: 3, Y: 3}, Matrix: openGrid(3, 3)}

	result, _, err := Run(board, "sSe")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Moves != 3 {
		t.Errorf("Expected 3 moves, got %d", result.Moves)
	}

	if _, _, err := Run(board, "PQRS"); !errors.Is(err, ErrInvalidMovement) {
		t.Errorf("Expected ErrInvalidMovement, got %v", err)
	}
}
