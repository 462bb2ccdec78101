// Package mcp exposes Wayfinder to AI agents over the Model Context Protocol.
//
// MCP Tools:
//   - walk: Run a movement sequence on a preset or random board
//   - list_boards: List preset boards
//   - get_board: Show a preset board as text
//   - generate_board: Generate a random board
//   - describe_cell: Inspect one cell by external coordinates
//   - wayfinder_instructions: Rules and coordinate conventions
//
// Tool failures such as an unknown board or an invalid movement are reported
// as error results, never as protocol errors.
//
// Transport Modes:
//   - Stdio: ServeStdio, for local MCP clients
//   - HTTP: Server implements http.Handler and answers one JSON-RPC message
//     per POST
//
// Usage:
//
//	s := mcp.NewServer(walkService, version)
//	if err := s.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
