package service

import (
	"context"
	"errors"

	"github.com/wricardo/mcp-training/wayfinder/game/engine"
)

var (
	ErrNoBoardSource        = errors.New("must supply either a board, a random spec or a custom board")
	ErrMultipleBoardSources = errors.New("only one of board, random or custom may be supplied")
	ErrTooManyMovements     = errors.New("too many movements")
)

// WalkService defines all walk-related operations
type WalkService interface {
	// Walks
	Walk(ctx context.Context, req WalkRequest) (*WalkResult, error)

	// Boards
	ListBoards(ctx context.Context) ([]*BoardInfo, error)
	LoadBoard(ctx context.Context, name string) (*engine.Board, error)
	GenerateBoard(ctx context.Context, spec string) (*engine.Board, error)
}

// BoardManager resolves boards from their three possible sources
type BoardManager interface {
	LoadBoard(name string) (*engine.Board, error)
	LoadCustom(path string) (*engine.Board, error)
	Generate(spec string) (*engine.Board, error)
	ListBoards() ([]*BoardInfo, error)
}
