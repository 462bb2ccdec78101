package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/wricardo/mcp-training/wayfinder/game/engine"
)

// Options tunes a WalkService
type Options struct {
	// Logger receives step and halt notices. Defaults to a discarding logger.
	Logger *log.Logger
	// MaxMovements caps the length of a movement string. 0 means unlimited.
	MaxMovements int
}

// walkServiceImpl implements the WalkService interface
type walkServiceImpl struct {
	boards       BoardManager
	logger       *log.Logger
	maxMovements int
}

// NewWalkService creates a new walk service instance
func NewWalkService(boards BoardManager, opts Options) WalkService {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &walkServiceImpl{
		boards:       boards,
		logger:       logger,
		maxMovements: opts.MaxMovements,
	}
}

// Walk resolves the board, validates the movements and runs the walk.
func (s *walkServiceImpl) Walk(ctx context.Context, req WalkRequest) (*WalkResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.BoardSource.Validate(); err != nil {
		return nil, err
	}
	if s.maxMovements > 0 && len(req.Movements) > s.maxMovements {
		return nil, fmt.Errorf("%w: %d exceeds the limit of %d", ErrTooManyMovements, len(req.Movements), s.maxMovements)
	}

	board, err := s.resolveBoard(req.BoardSource)
	if err != nil {
		return nil, err
	}

	moves, err := engine.ParseMovements(req.Movements)
	if err != nil {
		return nil, err
	}

	eng, err := engine.NewEngine(board, moves)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := s.logger.With("run", id)
	logger.Debug("Starting walk", "source", req.Kind(), "board", board.Name,
		"width", board.Matrix.Width(), "height", board.Matrix.Height(), "moves", len(moves))

	eng.OnStep(func(state engine.WalkState, d engine.Direction) {
		pos := engine.ToExternal(board.Matrix, state.Pos)
		logger.Debug("Cell available", "direction", d.String(), "x", pos.X, "y", pos.Y, "coins", state.Coins)
	})

	started := time.Now()
	result, trace := eng.Walk()
	elapsed := time.Since(started)

	logger.Info("Cell unavailable, game over", "halt", trace.Halt,
		"final_x", result.FinalX, "final_y", result.FinalY, "coins", result.Coins, "moves", result.Moves)

	walk := &WalkResult{
		ID:        id,
		Source:    req.Kind(),
		BoardName: board.Name,
		Movements: engine.FormatMovements(moves),
		Result:    result,
		Trace:     trace,
		StartedAt: started,
		Duration:  elapsed,
	}
	if req.IncludeBoard {
		walk.Board = board
	}
	return walk, nil
}

func (s *walkServiceImpl) resolveBoard(src BoardSource) (*engine.Board, error) {
	switch src.Kind() {
	case SourceBoard:
		return s.boards.LoadBoard(src.Board)
	case SourceRandom:
		return s.boards.Generate(src.Random)
	case SourceCustom:
		return s.boards.LoadCustom(src.Custom)
	}
	return nil, ErrNoBoardSource
}

// ListBoards returns the available preset boards
func (s *walkServiceImpl) ListBoards(ctx context.Context) ([]*BoardInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.boards.ListBoards()
}

// LoadBoard loads a preset board by name
func (s *walkServiceImpl) LoadBoard(ctx context.Context, name string) (*engine.Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.boards.LoadBoard(name)
}

// GenerateBoard builds a random board from a "<width>x<height>" spec
func (s *walkServiceImpl) GenerateBoard(ctx context.Context, spec string) (*engine.Board, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.boards.Generate(spec)
}
