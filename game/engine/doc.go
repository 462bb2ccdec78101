// Package engine provides the core walk logic for Wayfinder.
//
// The engine package implements:
//   - Movement parsing and validation (N, S, E, W)
//   - Conversion between external (bottom-left origin) and internal
//     (top-left origin) coordinates
//   - Board shape validation
//   - The traversal loop that walks the moves until one is blocked
//
// Core Types:
//
// Board pairs a Grid with its starting coordinate. GameEngine holds a board
// and a validated movement sequence; Walk threads a WalkState value through
// the loop and returns the Result record together with a Trace of the path.
//
// Usage:
//
//	moves, err := engine.ParseMovements("nnee")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	e, err := engine.NewEngine(board, moves)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, trace := e.Walk()
//
// Rules:
//
// A cell with value 0 is a wall; any other value is a coin collected by
// stepping onto it. The walk stops at the first move that would enter a wall
// or leave the grid, or when no moves remain.
package engine
