package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/wayfinder/game/engine"
	"github.com/wricardo/mcp-training/wayfinder/game/render"
	"github.com/wricardo/mcp-training/wayfinder/game/service"
)

// Server exposes a WalkService as MCP tools
type Server struct {
	service   service.WalkService
	mcpServer *server.MCPServer
	renderer  *render.Renderer
}

// NewServer creates an MCP server backed by walkService
func NewServer(walkService service.WalkService, version string) *Server {
	// Tool output is plain text, so render without a color profile
	s := &Server{service: walkService, renderer: render.New(io.Discard)}
	s.initMCPServer(version)
	return s
}

// initMCPServer initializes the MCP server with all tools
func (s *Server) initMCPServer(version string) {
	s.mcpServer = server.NewMCPServer(
		"Wayfinder",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Wayfinder - MCP Interface

Walk a sequence of compass moves (N, E, W, S) across a grid of coins (1) and
walls (0). The walk collects a coin on every successful step and stops at the
first move that would hit a wall or leave the board.

AVAILABLE TOOLS:
- walk: Run a walk on a preset or random board
- list_boards: List preset boards
- get_board: Show a preset board
- generate_board: Generate a random board
- describe_cell: Inspect one cell of a preset board
- wayfinder_instructions: Coordinate system and rules`),
	)

	s.registerTools()
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "walk",
		Description: "Walk a movement sequence across a board and report where it stopped",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": map[string]interface{}{
					"type":        "string",
					"description": "Preset board name (use list_boards). Mutually exclusive with random",
				},
				"random": map[string]interface{}{
					"type":        "string",
					"description": "Random board bounds as <width>x<height>, each below 1000",
				},
				"movements": map[string]interface{}{
					"type":        "string",
					"description": "Compass moves, e.g. NNEESW (case-insensitive)",
				},
				"show_path": map[string]interface{}{
					"type":        "boolean",
					"description": "Include every visited coordinate and a drawing of the walk",
				},
			},
			Required: []string{"movements"},
		},
	}, s.handleWalk)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_boards",
		Description: "List the preset boards",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListBoards)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_board",
		Description: "Show a preset board with its starting position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Preset board name",
				},
			},
			Required: []string{"name"},
		},
	}, s.handleGetBoard)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "generate_board",
		Description: "Generate a random board. The board is not stored; walks on random sources generate a fresh board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"random": map[string]interface{}{
					"type":        "string",
					"description": "Bounds as <width>x<height>, each below 1000",
				},
			},
			Required: []string{"random"},
		},
	}, s.handleGenerateBoard)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe one cell of a preset board. Coordinates are external: origin at the bottom-left, as used by starting_position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"board": map[string]interface{}{
					"type":        "string",
					"description": "Preset board name",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "External x coordinate",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "External y coordinate",
				},
			},
			Required: []string{"board", "x", "y"},
		},
	}, s.handleDescribeCell)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "wayfinder_instructions",
		Description: "Get the rules and coordinate conventions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin and stdout until the input closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeHTTP handles one JSON-RPC message per POST request.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	response := s.mcpServer.HandleMessage(r.Context(), body)
	if response == nil {
		// Notifications have no response
		w.WriteHeader(http.StatusAccepted)
		return
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(responseData)
}

// Tool handlers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	return args
}

func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), v == float64(int(v))
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}

func (s *Server) handleWalk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	boardName, _ := args["board"].(string)
	random, _ := args["random"].(string)
	movements, _ := args["movements"].(string)
	showPath, _ := args["show_path"].(bool)

	result, err := s.service.Walk(ctx, service.WalkRequest{
		BoardSource:  service.BoardSource{Board: boardName, Random: random},
		Movements:    movements,
		IncludeBoard: random != "" || showPath,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatWalkResult(result, showPath)), nil
}

func (s *Server) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boards, err := s.service.ListBoards(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Preset Boards (%d):\n\n", len(boards)))
	for _, b := range boards {
		result.WriteString(fmt.Sprintf("- %s: %dx%d, start [%d,%d], %d coins, %d walls\n",
			b.Name, b.Width, b.Height, b.StartingPosition[0], b.StartingPosition[1], b.Coins, b.Walls))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) handleGetBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, _ := arguments(request)["name"].(string)

	b, err := s.service.LoadBoard(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatBoard(b)), nil
}

func (s *Server) handleGenerateBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spec, _ := arguments(request)["random"].(string)

	b, err := s.service.GenerateBoard(ctx, spec)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatBoard(b)), nil
}

func (s *Server) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	name, _ := args["board"].(string)
	x, okX := intArg(args, "x")
	y, okY := intArg(args, "y")
	if !okX || !okY {
		return mcp.NewToolResultError("x and y must be integers"), nil
	}

	b, err := s.service.LoadBoard(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	internal := engine.ToInternal(b.Matrix, engine.Position{X: x, Y: y})
	if !b.Matrix.InBounds(internal.X, internal.Y) {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Cell (%d,%d) is off the %dx%d board (row %d, column %d). A move onto it ends the walk.",
			x, y, b.Matrix.Width(), b.Matrix.Height(), internal.Y, internal.X)), nil
	}

	kind := "coin (passable)"
	if b.Matrix[internal.Y][internal.X] == engine.Wall {
		kind = "wall (impassable)"
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Cell (%d,%d) on %s\n", x, y, b.Name))
	result.WriteString(fmt.Sprintf("Matrix row %d, column %d: %s\n", internal.Y, internal.X, kind))
	for _, d := range []engine.Direction{engine.North, engine.East, engine.South, engine.West} {
		result.WriteString(fmt.Sprintf("  %s: %d free steps\n", d, engine.RunLength(b.Matrix, internal, d)))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func (s *Server) handleInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Wayfinder - Rules

BOARD:
A board is a rectangular matrix of cells. 1 is a coin, 0 is a wall.
matrix[0] is the top row.

COORDINATES:
starting_position is [x, y] with the origin at the bottom-left corner.
It maps onto the matrix as column = width - x, row = height - y.
Results report final_x and final_y in the same external form.

MOVES:
N moves up one row, S down one row, E right one column, W left one column.
Letters are case-insensitive. Any other character rejects the whole walk.

WALK:
Each successful step collects one coin, so coins always equal moves.
The walk stops at the first move that would enter a wall or leave the
board. Remaining moves are ignored. The stop is not an error.

BOARD SOURCES:
- board: a preset board (list_boards)
- random: <width>x<height>, each between 1 and 999
A random board is generated fresh for every walk.`

	return mcp.NewToolResultText(instructions), nil
}

// Formatting helpers

func (s *Server) formatWalkResult(result *service.WalkResult, showPath bool) string {
	var out strings.Builder

	out.WriteString(fmt.Sprintf("Final: (%d,%d) | Coins: %d | Moves: %d/%d | Halt: %s\n",
		result.Result.FinalX, result.Result.FinalY, result.Result.Coins,
		result.Result.Moves, len(result.Movements), result.Trace.Halt))
	out.WriteString(fmt.Sprintf("Board: %s (%s)\n", result.BoardName, result.Source))

	if result.Trace.Blocked != nil {
		out.WriteString(fmt.Sprintf("Blocked by %s at (%d,%d) on move %d (%s)\n",
			result.Trace.Halt, result.Trace.Blocked.X, result.Trace.Blocked.Y,
			result.Result.Moves+1, string(result.Movements[result.Result.Moves])))
	}

	if showPath {
		out.WriteString("Path:")
		for _, p := range result.Trace.Path {
			out.WriteString(fmt.Sprintf(" (%d,%d)", p.X, p.Y))
		}
		out.WriteString("\n")
	}

	if result.Board != nil {
		out.WriteString("\n")
		out.WriteString(boardHeader(result.Board))
		out.WriteString(s.renderer.Walk(result.Board, result.Result, result.Trace))
		out.WriteString("\n")
	}

	out.WriteString(fmt.Sprintf("\nRun: %s", result.ID))
	return out.String()
}

// formatBoard renders b with S for the start, # for walls and . for coins.
func (s *Server) formatBoard(b *engine.Board) string {
	return boardHeader(b) + s.renderer.Board(b) + "\n"
}

func boardHeader(b *engine.Board) string {
	return fmt.Sprintf("%s: %dx%d, starting_position [%d,%d]\n",
		b.Name, b.Matrix.Width(), b.Matrix.Height(), b.StartingPosition.X, b.StartingPosition.Y)
}
