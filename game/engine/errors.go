package engine

import "errors"

var (
	// ErrInvalidMovement indicates a movement token outside N, S, E, W.
	ErrInvalidMovement = errors.New("movements can only contain N,E,W,S")
	// ErrOutOfBounds indicates a starting coordinate beyond the board extent.
	ErrOutOfBounds = errors.New("starting position is outside the board extent")
	// ErrInvalidBoard indicates a board document or grid with the wrong shape.
	ErrInvalidBoard = errors.New("invalid board")
)
