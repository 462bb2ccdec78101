// Command wayfinder walks a sequence of compass moves across a coin board.
//
// The root command runs one walk and prints the result as JSON:
//
//	wayfinder -m NNEESW -b 5x5
//	wayfinder -m news -r 100x100
//	wayfinder -m NNE -c ./my-board.json
//
// Subcommands list and generate boards, serve the HTTP API with a WebSocket
// event stream and an /mcp endpoint, or run an MCP stdio server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/wayfinder/api"
	"github.com/wricardo/mcp-training/wayfinder/game/board"
	"github.com/wricardo/mcp-training/wayfinder/game/render"
	"github.com/wricardo/mcp-training/wayfinder/game/service"
	"github.com/wricardo/mcp-training/wayfinder/transport/mcp"
	"github.com/wricardo/mcp-training/wayfinder/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Wayfinder"
)

// networkMaxMovements caps movement strings arriving over HTTP or MCP.
const networkMaxMovements = 10000

var errMovementsRequired = errors.New("movements are required (-m)")

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("Error loading .env file", "err", err)
	}

	if err := newCommand(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "could not start the game")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newCommand builds the command tree. Results go to stdout; logs and
// renderings go to stderr.
func newCommand(out, errOut io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "wayfinder",
		Usage:     "walk compass moves across a coin board",
		Version:   Version,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "movements",
				Local:   true,
				Aliases: []string{"m"},
				Usage:   "moves as one string of N, S, E, W (case-insensitive)",
			},
			&cli.StringFlag{
				Name:    "board",
				Local:   true,
				Aliases: []string{"b"},
				Usage:   "preset board name from the boards directory, e.g. 5x5",
			},
			&cli.StringFlag{
				Name:    "random",
				Local:   true,
				Aliases: []string{"r"},
				Usage:   "random board bounds as <width>x<height>, e.g. 100x100",
			},
			&cli.StringFlag{
				Name:    "custom",
				Local:   true,
				Aliases: []string{"c"},
				Usage:   "path to a board document (.json or .hcl)",
			},
			&cli.StringFlag{
				Name:    "boards-dir",
				Value:   "boards",
				Usage:   "directory holding preset boards",
				Sources: cli.EnvVars("BOARDS_DIR"),
			},
			&cli.Uint64Flag{
				Name:    "seed",
				Usage:   "random board seed, 0 seeds from the clock",
				Sources: cli.EnvVars("WAYFINDER_SEED"),
			},
			&cli.BoolFlag{
				Name:  "show",
				Usage: "draw the board and path on stderr",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "log every step",
				Sources: cli.EnvVars("WAYFINDER_DEBUG"),
			},
		},
		Action: runWalk,
		Commands: []*cli.Command{
			{
				Name:   "boards",
				Usage:  "list preset boards",
				Action: runBoards,
			},
			{
				Name:  "generate",
				Usage: "generate a random board and print it as JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "random",
						Aliases:  []string{"r"},
						Usage:    "bounds as <width>x<height>",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "save",
						Usage: "also save the board as a preset under this name",
					},
				},
				Action: runGenerate,
			},
			{
				Name:  "serve",
				Usage: "serve the HTTP API, WebSocket events and /mcp",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Value:   "localhost:8080",
						Usage:   "listen address",
						Sources: cli.EnvVars("WAYFINDER_ADDR"),
					},
				},
				Action: runServe,
			},
			{
				Name:   "mcp",
				Usage:  "run an MCP server on stdio",
				Action: runMCP,
			},
		},
	}
}

func stdout(cmd *cli.Command) io.Writer {
	return cmd.Root().Writer
}

func stderr(cmd *cli.Command) io.Writer {
	return cmd.Root().ErrWriter
}

// newLogger creates the stderr logger shared by every component.
func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "wayfinder",
		Level:           level,
	})
}

// initializeServices wires the board manager and the walk service from the
// command's flags.
func initializeServices(cmd *cli.Command, logger *log.Logger, maxMovements int) (*board.Manager, service.WalkService, error) {
	manager, err := board.NewManager(cmd.String("boards-dir"), board.NewGenerator(cmd.Uint64("seed")))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create board manager: %w", err)
	}

	walkService := service.NewWalkService(manager, service.Options{
		Logger:       logger,
		MaxMovements: maxMovements,
	})
	return manager, walkService, nil
}

// runWalk runs a single walk and prints {final_x, final_y, coins, moves}.
func runWalk(ctx context.Context, cmd *cli.Command) error {
	if !cmd.IsSet("movements") {
		return errMovementsRequired
	}

	logger := newLogger(stderr(cmd), cmd.Bool("debug"))
	_, walkService, err := initializeServices(cmd, logger, 0)
	if err != nil {
		return err
	}

	result, err := walkService.Walk(ctx, service.WalkRequest{
		BoardSource: service.BoardSource{
			Board:  cmd.String("board"),
			Random: cmd.String("random"),
			Custom: cmd.String("custom"),
		},
		Movements:    cmd.String("movements"),
		IncludeBoard: cmd.Bool("show"),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("show") {
		fmt.Fprintln(stderr(cmd), render.New(stderr(cmd)).Walk(result.Board, result.Result, result.Trace))
	}

	return json.NewEncoder(stdout(cmd)).Encode(result.Result)
}

// runBoards prints a table of preset boards.
func runBoards(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(stderr(cmd), cmd.Bool("debug"))
	_, walkService, err := initializeServices(cmd, logger, 0)
	if err != nil {
		return err
	}

	boards, err := walkService.ListBoards(ctx)
	if err != nil {
		return err
	}
	if len(boards) == 0 {
		fmt.Fprintf(stdout(cmd), "No boards found in %s\n", cmd.String("boards-dir"))
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "SIZE", "START", "COINS", "WALLS", "FILE")
	for _, b := range boards {
		t.Row(
			b.Name,
			fmt.Sprintf("%dx%d", b.Width, b.Height),
			fmt.Sprintf("[%d,%d]", b.StartingPosition[0], b.StartingPosition[1]),
			strconv.Itoa(b.Coins),
			strconv.Itoa(b.Walls),
			b.Filename,
		)
	}
	fmt.Fprintln(stdout(cmd), t.Render())
	return nil
}

// runGenerate prints a random board, optionally saving it as a preset.
func runGenerate(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(stderr(cmd), cmd.Bool("debug"))
	manager, walkService, err := initializeServices(cmd, logger, 0)
	if err != nil {
		return err
	}

	b, err := walkService.GenerateBoard(ctx, cmd.String("random"))
	if err != nil {
		return err
	}

	if name := cmd.String("save"); name != "" {
		b.Name = name
		if err := manager.SaveBoard(name, b); err != nil {
			return err
		}
		logger.Info("Saved board", "name", name, "dir", manager.Dir())
	}

	if cmd.Bool("show") {
		fmt.Fprintln(stderr(cmd), render.New(stderr(cmd)).Board(b))
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout(cmd), string(data))
	return err
}

// runServe starts the HTTP server and blocks until SIGINT or SIGTERM.
func runServe(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(stderr(cmd), cmd.Bool("debug"))
	_, walkService, err := initializeServices(cmd, logger, networkMaxMovements)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(logger.WithPrefix("ws"))
	go hub.Run(ctx)

	mcpServer := mcp.NewServer(walkService, Version)
	apiServer := api.NewServer(walkService, hub,
		api.WithMCP(mcpServer),
		api.WithLogger(logger.WithPrefix("api")),
	)

	addr := cmd.String("addr")
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      apiServer,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		logger.Info("Endpoints",
			"api", fmt.Sprintf("http://%s/api", addr),
			"ws", fmt.Sprintf("ws://%s/ws?board=<name>", addr),
			"mcp", fmt.Sprintf("http://%s/mcp", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// runMCP serves MCP over stdio. Logs stay on stderr so stdout carries only
// protocol messages.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	logger := newLogger(stderr(cmd), cmd.Bool("debug"))
	_, walkService, err := initializeServices(cmd, logger, networkMaxMovements)
	if err != nil {
		return err
	}

	logger.Info("MCP stdio server ready", "boards", cmd.String("boards-dir"))
	return mcp.NewServer(walkService, Version).ServeStdio()
}
