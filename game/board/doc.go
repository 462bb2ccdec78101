// Package board resolves the boards Wayfinder walks.
//
// The board package handles:
//   - Loading preset boards by name from the boards directory
//   - Loading custom board documents from any path (JSON or HCL)
//   - Generating random boards from a "<width>x<height>" spec
//   - Listing and saving preset boards
//
// Board Format:
//
// A board document holds a starting position in external (bottom-left
// origin) coordinates and a rectangular matrix where 0 is a wall and any other
// value is an open cell:
//
//	{
//	  "starting_position": [3, 2],
//	  "matrix": [[1, 0, 1], [1, 1, 1]]
//	}
//
// Custom boards ending in .hcl use the same two attributes:
//
//	starting_position = [3, 2]
//	matrix = [[1, 0, 1], [1, 1, 1]]
//
// Usage:
//
//	manager, err := board.NewManager("boards", board.NewGenerator(0))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	b, err := manager.LoadBoard("5x5")
//	b, err = manager.LoadCustom("/tmp/maze.hcl")
//	b, err = manager.Generate("20x10")
//
// Errors:
//
// Missing files wrap ErrBoardNotFound, malformed documents wrap ErrParse and
// documents without the required keys wrap engine.ErrInvalidBoard. Random
// specs fail with ErrInvalidSpec or ErrBoundsTooLarge.
package board
