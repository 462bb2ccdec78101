// Package service provides the business logic layer for Wayfinder.
//
// The service package implements:
//   - Board source selection (preset, random, custom)
//   - Movement validation and walk execution
//   - Structured logging of every step and of the halt
//   - Board listing and generation for the transports
//
// Core Interfaces:
//
// WalkService is the main service interface used by the CLI, the HTTP API and
// the MCP server. BoardManager resolves boards and is implemented by
// board.Manager.
//
// Usage:
//
//	boards, _ := board.NewManager("boards", board.NewGenerator(0))
//	svc := service.NewWalkService(boards, service.Options{Logger: logger})
//
//	result, err := svc.Walk(ctx, service.WalkRequest{
//		BoardSource: service.BoardSource{Board: "5x5"},
//		Movements:   "NNEE",
//	})
//
// Every walk builds its own engine, so a WalkService can be shared by
// concurrent callers.
package service
