// Package api provides HTTP REST API handlers for Wayfinder.
//
// Endpoints:
//
// Walks:
//   - POST /api/walks - Run a walk and return its result and trace
//
// Boards:
//   - GET /api/boards - List preset boards
//   - GET /api/boards/{name} - Get a preset board document
//   - POST /api/boards/random - Generate a random board
//
// Other:
//   - GET /api/health - Liveness check
//   - GET /ws?board=<name> - Subscribe to walk_completed events
//   - POST /mcp - MCP JSON-RPC messages, when mounted with WithMCP
//
// A walk request names exactly one board source:
//
//	{
//	  "board": "5x5",          // preset board, or
//	  "random": "10x10",       // random board bounds
//	  "movements": "NNEESW",
//	  "include_board": true    // optional, echo the board back
//	}
//
// Custom board files are a CLI feature and are rejected here.
//
// Error Handling:
//
// Errors are returned as JSON with a status derived from the error kind.
// Unknown boards give 404, a start outside the board gives 422, and every
// other input problem gives 400:
//
//	{
//	  "error": "board not found: \"XXXX\"",
//	  "code": 404
//	}
package api
