package engine

import "fmt"

// Engine provides the main interface for walk operations
type Engine interface {
	// Board
	GetBoard() *Board
	GetMovements() []Direction

	// Starting position
	SetStartingCoords(x, y int) error
	GetStart() Position

	// Traversal
	Walk() (Result, Trace)
}

// StepFunc is called after every successful step with the state that step
// produced.
type StepFunc func(state WalkState, d Direction)

// GameEngine implements the Engine interface. It only holds the inputs of a
// walk; every call to Walk starts from a fresh WalkState.
type GameEngine struct {
	board  *Board
	moves  []Direction
	start  Position // internal
	onStep StepFunc
}

// NewEngine validates the board and prepares a walk of moves over it.
func NewEngine(board *Board, moves []Direction) (*GameEngine, error) {
	if err := ValidateBoard(board); err != nil {
		return nil, err
	}
	for i, m := range moves {
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: got %q at position %d", ErrInvalidMovement, m.String(), i+1)
		}
	}

	e := &GameEngine{
		board: board,
		moves: append([]Direction(nil), moves...),
	}
	if err := e.SetStartingCoords(board.StartingPosition.X, board.StartingPosition.Y); err != nil {
		return nil, err
	}
	return e, nil
}

// OnStep registers a callback invoked after each successful step.
func (e *GameEngine) OnStep(fn StepFunc) {
	e.onStep = fn
}

// GetBoard returns the board being walked
func (e *GameEngine) GetBoard() *Board {
	return e.board
}

// GetMovements returns the validated movement sequence
func (e *GameEngine) GetMovements() []Direction {
	return e.moves
}

// SetStartingCoords sets the starting position from external coordinates.
func (e *GameEngine) SetStartingCoords(x, y int) error {
	start, err := NormalizeStart(e.board.Matrix, Position{X: x, Y: y})
	if err != nil {
		return err
	}
	e.start = start
	return nil
}

// GetStart returns the starting position in internal coordinates
func (e *GameEngine) GetStart() Position {
	return e.start
}

// Walk runs the movement sequence from the starting position until a move is
// blocked or the moves run out.
func (e *GameEngine) Walk() (Result, Trace) {
	grid := e.board.Matrix
	state := WalkState{Pos: e.start}
	trace := Trace{Path: []Position{ToExternal(grid, state.Pos)}}

	for {
		next, halt, target := Step(grid, e.moves, state)
		if halt != "" {
			trace.Halt = halt
			if target != nil {
				blocked := ToExternal(grid, *target)
				trace.Blocked = &blocked
			}
			break
		}
		state = next
		trace.Path = append(trace.Path, ToExternal(grid, state.Pos))
		if e.onStep != nil {
			e.onStep(state, e.moves[state.Next-1])
		}
	}

	final := ToExternal(grid, state.Pos)
	return Result{
		FinalX: final.X,
		FinalY: final.Y,
		Coins:  state.Coins,
		Moves:  state.Moves,
	}, trace
}

// Step attempts the move at state.Next. It returns the advanced state, or a
// halt reason and the internal cell it tried to enter (nil when the moves are
// exhausted).
func Step(grid Grid, moves []Direction, state WalkState) (WalkState, HaltReason, *Position) {
	if state.Next < 0 || state.Next >= len(moves) {
		return state, HaltExhausted, nil
	}

	dx, dy := moves[state.Next].Delta()
	target := Position{X: state.Pos.X + dx, Y: state.Pos.Y + dy}

	if !grid.InBounds(target.X, target.Y) {
		return state, HaltBoundary, &target
	}
	if grid[target.Y][target.X] == Wall {
		return state, HaltWall, &target
	}

	state.Pos = target
	state.Moves++
	state.Coins++
	state.Next++
	return state, "", nil
}

// Run is a convenience wrapper that validates raw movements, builds an engine
// and walks it.
func Run(board *Board, movements string) (Result, Trace, error) {
	moves, err := ParseMovements(movements)
	if err != nil {
		return Result{}, Trace{}, err
	}
	e, err := NewEngine(board, moves)
	if err != nil {
		return Result{}, Trace{}, err
	}
	result, trace := e.Walk()
	return result, trace, nil
}
