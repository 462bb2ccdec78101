package service

import (
	"time"

	"github.com/wricardo/mcp-training/wayfinder/game/engine"
)

// Board source kinds
const (
	SourceBoard  = "board"
	SourceRandom = "random"
	SourceCustom = "custom"
)

// BoardSource names where a walk's board comes from. Exactly one field must
// be set.
type BoardSource struct {
	Board  string `json:"board,omitempty"`  // preset board name
	Random string `json:"random,omitempty"` // "<width>x<height>"
	Custom string `json:"custom,omitempty"` // path to a board document
}

// Kind returns which source is set, or "" when none is.
func (s BoardSource) Kind() string {
	switch {
	case s.Board != "":
		return SourceBoard
	case s.Random != "":
		return SourceRandom
	case s.Custom != "":
		return SourceCustom
	}
	return ""
}

// Validate checks that exactly one source is set
func (s BoardSource) Validate() error {
	n := 0
	for _, v := range []string{s.Board, s.Random, s.Custom} {
		if v != "" {
			n++
		}
	}
	switch {
	case n == 0:
		return ErrNoBoardSource
	case n > 1:
		return ErrMultipleBoardSources
	}
	return nil
}

// WalkRequest asks for a single walk
type WalkRequest struct {
	BoardSource
	Movements    string `json:"movements"`
	IncludeBoard bool   `json:"include_board,omitempty"`
}

// WalkResult contains the outcome of a walk
type WalkResult struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"`
	BoardName string        `json:"board_name,omitempty"`
	Movements string        `json:"movements"`
	Result    engine.Result `json:"result"`
	Trace     engine.Trace  `json:"trace"`
	Board     *engine.Board `json:"board,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// BoardInfo provides information about a preset board
type BoardInfo struct {
	Name             string `json:"name"` // The identifier to use with the board source
	Filename         string `json:"filename"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	StartingPosition [2]int `json:"starting_position"`
	Walls            int    `json:"walls"`
	Coins            int    `json:"coins"`
}
