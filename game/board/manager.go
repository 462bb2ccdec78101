package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/mcp-training/wayfinder/game/engine"
	"github.com/wricardo/mcp-training/wayfinder/game/service"
)

var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrParse          = errors.New("malformed board document")
	ErrInvalidSpec    = errors.New("invalid random board spec")
	ErrBoundsTooLarge = errors.New("random board bounds too large")
)

// Manager handles board loading and caching
type Manager struct {
	boardsDir string
	generator *Generator
	boards    map[string]*engine.Board
	mu        sync.RWMutex
}

// NewManager creates a new board manager. The boards directory does not need
// to exist; named boards simply will not be found.
func NewManager(boardsDir string, generator *Generator) (*Manager, error) {
	if info, err := os.Stat(boardsDir); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("boards path is not a directory: %s", boardsDir)
	}
	if generator == nil {
		generator = NewGenerator(0)
	}

	return &Manager{
		boardsDir: boardsDir,
		generator: generator,
		boards:    make(map[string]*engine.Board),
	}, nil
}

// Dir returns the boards directory
func (m *Manager) Dir() string {
	return m.boardsDir
}

// LoadBoard loads a preset board by name from the boards directory, trying
// <name>.json before <name>.hcl. The returned board is a copy the caller may
// modify.
func (m *Manager) LoadBoard(name string) (*engine.Board, error) {
	name = trimBoardExt(name)

	m.mu.RLock()
	// Check cache first
	if b, exists := m.boards[name]; exists {
		m.mu.RUnlock()
		return b.Clone(), nil
	}
	m.mu.RUnlock()

	if name == "" || name != filepath.Base(name) || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrBoardNotFound, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if b, exists := m.boards[name]; exists {
		return b.Clone(), nil
	}

	b, err := readBoardFile(filepath.Join(m.boardsDir, name+".json"))
	if errors.Is(err, ErrBoardNotFound) {
		b, err = readBoardFile(filepath.Join(m.boardsDir, name+".hcl"))
	}
	if err != nil {
		return nil, err
	}
	if b.Name == "" {
		b.Name = name
	}

	m.boards[name] = b
	return b.Clone(), nil
}

// LoadCustom loads a board document from an arbitrary path. Custom boards are
// not cached.
func (m *Manager) LoadCustom(path string) (*engine.Board, error) {
	b, err := readBoardFile(path)
	if err != nil {
		return nil, err
	}
	if b.Name == "" {
		b.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return b, nil
}

// Generate creates a random board from a "<width>x<height>" spec.
func (m *Manager) Generate(spec string) (*engine.Board, error) {
	return m.generator.Generate(spec)
}

// ListBoards returns information about every preset board in the boards
// directory. Files that fail to load are skipped.
func (m *Manager) ListBoards() ([]*service.BoardInfo, error) {
	entries, err := os.ReadDir(m.boardsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*service.BoardInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read boards directory: %w", err)
	}

	boards := []*service.BoardInfo{}
	for _, entry := range entries {
		if entry.IsDir() || trimBoardExt(entry.Name()) == entry.Name() {
			continue
		}

		name := trimBoardExt(entry.Name())
		if filepath.Ext(entry.Name()) == ".hcl" {
			// A JSON board of the same name shadows it
			if _, err := os.Stat(filepath.Join(m.boardsDir, name+".json")); err == nil {
				continue
			}
		}
		b, err := m.LoadBoard(name)
		if err != nil {
			continue
		}

		boards = append(boards, &service.BoardInfo{
			Name:             name,
			Filename:         entry.Name(),
			Width:            b.Matrix.Width(),
			Height:           b.Matrix.Height(),
			StartingPosition: [2]int{b.StartingPosition.X, b.StartingPosition.Y},
			Walls:            engine.CountWalls(b.Matrix),
			Coins:            engine.CountCoins(b.Matrix),
		})
	}

	sort.Slice(boards, func(i, j int) bool { return boards[i].Name < boards[j].Name })
	return boards, nil
}

// SaveBoard writes a board to the boards directory under name.
func (m *Manager) SaveBoard(name string, b *engine.Board) error {
	name = strings.TrimSuffix(name, ".json")
	if name == "" || name != filepath.Base(name) || name == ".." {
		return fmt.Errorf("invalid board name %q", name)
	}
	if err := engine.ValidateGrid(b.Matrix); err != nil {
		return err
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal board: %w", err)
	}

	if err := os.MkdirAll(m.boardsDir, 0755); err != nil {
		return fmt.Errorf("failed to create boards directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.boardsDir, name+".json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write board file: %w", err)
	}

	cached := b.Clone()
	if cached.Name == "" {
		cached.Name = name
	}

	// Update cache
	m.mu.Lock()
	m.boards[name] = cached
	m.mu.Unlock()

	return nil
}

// RefreshCache drops every cached board so the next load reads from disk.
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boards = make(map[string]*engine.Board)
}

func trimBoardExt(name string) string {
	for _, ext := range []string{".json", ".hcl"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

func readBoardFile(path string) (*engine.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBoardNotFound, path)
		}
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}
	return Decode(path, data)
}
