package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/wricardo/mcp-training/wayfinder/game/board"
	"github.com/wricardo/mcp-training/wayfinder/game/engine"
	"github.com/wricardo/mcp-training/wayfinder/game/service"
	"github.com/wricardo/mcp-training/wayfinder/transport/websocket"
)

// maxBodyBytes bounds request bodies. Movement strings are capped by the
// service, so this only needs headroom for JSON framing.
const maxBodyBytes = 1 << 20

// Server represents the REST API server
type Server struct {
	service service.WalkService
	hub     *websocket.Hub
	mcp     http.Handler
	router  *mux.Router
	logger  *log.Logger
}

// Option configures a Server
type Option func(*Server)

// WithMCP mounts an MCP message handler at /mcp
func WithMCP(h http.Handler) Option {
	return func(s *Server) { s.mcp = h }
}

// WithLogger sets the request logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new API server. hub may be nil, in which case /ws is
// not served and walks are not broadcast.
func NewServer(walkService service.WalkService, hub *websocket.Hub, opts ...Option) *Server {
	s := &Server{
		service: walkService,
		hub:     hub,
		router:  mux.NewRouter(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	// Routes live on the root router so a method mismatch is a 405, not a 404
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Walks
	s.router.HandleFunc("/api/walks", s.handleWalk).Methods("POST")

	// Boards (random must be registered before {name})
	s.router.HandleFunc("/api/boards", s.handleListBoards).Methods("GET")
	s.router.HandleFunc("/api/boards/random", s.handleRandomBoard).Methods("POST")
	s.router.HandleFunc("/api/boards/{name}", s.handleGetBoard).Methods("GET")

	s.router.HandleFunc("/api/health", s.handleHealth).Methods("GET")

	if s.hub != nil {
		s.router.HandleFunc("/ws", s.handleWebSocket)
	}
	if s.mcp != nil {
		s.router.Handle("/mcp", s.mcp).Methods("POST")
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error": message,
		"code":  status,
	})
}

// statusFor maps service and domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, board.ErrBoardNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrOutOfBounds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, board.ErrParse),
		errors.Is(err, board.ErrInvalidSpec),
		errors.Is(err, board.ErrBoundsTooLarge),
		errors.Is(err, engine.ErrInvalidBoard),
		errors.Is(err, engine.ErrInvalidMovement),
		errors.Is(err, service.ErrNoBoardSource),
		errors.Is(err, service.ErrMultipleBoardSources),
		errors.Is(err, service.ErrTooManyMovements):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// Walk Handlers

func (s *Server) handleWalk(w http.ResponseWriter, r *http.Request) {
	var req service.WalkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// Custom boards read server-side paths and are only offered on the CLI
	if req.Custom != "" {
		respondError(w, http.StatusBadRequest, "custom boards are not available over HTTP")
		return
	}

	result, err := s.service.Walk(r.Context(), req)
	if err != nil {
		s.logger.Warn("Walk failed", "board", req.Board, "random", req.Random, "err", err)
		respondError(w, statusFor(err), err.Error())
		return
	}

	if s.hub != nil {
		s.hub.Publish(result.BoardName, websocket.EventWalkCompleted, result)
	}

	s.logger.Info("Walk completed", "run", result.ID, "board", result.BoardName,
		"halt", result.Trace.Halt, "coins", result.Result.Coins, "moves", result.Result.Moves)

	respondJSON(w, http.StatusOK, result)
}

// Board Handlers

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.service.ListBoards(r.Context())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(boards),
		"boards": boards,
	})
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(mux.Vars(r)["name"], ".json")

	b, err := s.service.LoadBoard(r.Context(), name)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleRandomBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Random string `json:"random"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	b, err := s.service.GenerateBoard(r.Context(), req.Random)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, b)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.hub.ServeWS(w, r, r.URL.Query().Get("board"))
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
