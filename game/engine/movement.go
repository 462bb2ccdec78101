package engine

import (
	"fmt"
	"strings"
)

// Direction is a single cardinal move token.
type Direction byte

const (
	North Direction = 'N'
	South Direction = 'S'
	East  Direction = 'E'
	West  Direction = 'W'
)

// String returns the one-letter token for the direction.
func (d Direction) String() string {
	return string(rune(d))
}

// IsValid reports whether d is one of N, S, E or W.
func (d Direction) IsValid() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

// Delta returns the x and y offsets of a single step. Y grows downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// ParseMovements splits a raw movement string into directions. Letters are
// matched case-insensitively; any other character rejects the whole input.
func ParseMovements(raw string) ([]Direction, error) {
	tokens := make([]string, 0, len(raw))
	for _, r := range raw {
		tokens = append(tokens, string(r))
	}
	return NormalizeMovements(tokens)
}

// NormalizeMovements validates an already split movement sequence. Each token
// must be exactly one of n, s, e, w in either case.
func NormalizeMovements(tokens []string) ([]Direction, error) {
	moves := make([]Direction, 0, len(tokens))
	for i, token := range tokens {
		if len(token) != 1 {
			return nil, fmt.Errorf("%w: got %q at position %d", ErrInvalidMovement, token, i+1)
		}
		upper := strings.ToUpper(token)
		if !Direction(upper[0]).IsValid() {
			return nil, fmt.Errorf("%w: got %q at position %d", ErrInvalidMovement, token, i+1)
		}
		moves = append(moves, Direction(upper[0]))
	}
	return moves, nil
}

// FormatMovements joins directions back into a movement string.
func FormatMovements(moves []Direction) string {
	var b strings.Builder
	b.Grow(len(moves))
	for _, m := range moves {
		b.WriteByte(byte(m))
	}
	return b.String()
}

// Tokens returns the directions as single-letter strings.
func Tokens(moves []Direction) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
