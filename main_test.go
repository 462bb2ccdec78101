package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wricardo/mcp-training/wayfinder/game/board"
	"github.com/wricardo/mcp-training/wayfinder/game/engine"
	"github.com/wricardo/mcp-training/wayfinder/game/service"
)

const openFiveByFive = `{
  "starting_position": [3, 2],
  "matrix": [
    [1, 1, 1, 1, 1],
    [1, 1, 1, 1, 1],
    [1, 1, 1, 1, 1],
    [1, 1, 1, 1, 1],
    [1, 1, 1, 1, 1]
  ]
}`

func boardsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "5x5.json"), []byte(openFiveByFive), 0644))
	return dir
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newCommand(&stdout, &stderr).Run(context.Background(), append([]string{"wayfinder"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestConstants(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.Equal(t, "Wayfinder", AppName)
}

func TestWalkCommand_Board(t *testing.T) {
	dir := boardsDir(t)

	stdout, _, err := run(t, "--boards-dir", dir, "-m", "news", "-b", "5x5")
	require.NoError(t, err)

	var result engine.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, engine.Result{FinalX: 3, FinalY: 2, Coins: 4, Moves: 4}, result)
	assert.JSONEq(t, `{"final_x":3,"final_y":2,"coins":4,"moves":4}`, stdout)
}

func TestWalkCommand_Custom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
starting_position = [3, 1]
matrix = [
  [1, 1, 0],
]
`), 0644))

	// internal (0,0) east once, then the wall
	stdout, _, err := run(t, "-m", "EEE", "-c", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"final_x":2,"final_y":1,"coins":1,"moves":1}`, stdout)
}

func TestWalkCommand_RandomIsSeeded(t *testing.T) {
	first, _, err := run(t, "--seed", "11", "-m", "NNEESSWW", "-r", "20x20")
	require.NoError(t, err)
	second, _, err := run(t, "--seed", "11", "-m", "NNEESSWW", "-r", "20x20")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWalkCommand_Errors(t *testing.T) {
	dir := boardsDir(t)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"no movements", []string{"-b", "5x5"}, errMovementsRequired},
		{"no source", []string{"-m", "NEWS"}, service.ErrNoBoardSource},
		{"two sources", []string{"-m", "NEWS", "-b", "5x5", "-r", "5x5"}, service.ErrMultipleBoardSources},
		{"unknown board", []string{"-m", "NEWS", "-b", "XXXX"}, board.ErrBoardNotFound},
		{"bad movements", []string{"-m", "PQRS", "-b", "5x5"}, engine.ErrInvalidMovement},
		{"bounds too large", []string{"-m", "NEWS", "-r", "1000x1"}, board.ErrBoundsTooLarge},
		{"bad spec", []string{"-m", "NEWS", "-r", "ten"}, board.ErrInvalidSpec},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			stdout, _, err := run(t, append([]string{"--boards-dir", dir}, test.args...)...)
			assert.ErrorIs(t, err, test.want)
			assert.Empty(t, stdout)
		})
	}
}

func TestWalkCommand_Show(t *testing.T) {
	dir := boardsDir(t)

	_, stderr, err := run(t, "--boards-dir", dir, "--show", "-m", "NNNN", "-b", "5x5")
	require.NoError(t, err)

	assert.Contains(t, stderr, "halt boundary")
	assert.Contains(t, stderr, "Cell unavailable, game over")
}

func TestWalkCommand_Debug(t *testing.T) {
	dir := boardsDir(t)

	_, stderr, err := run(t, "--boards-dir", dir, "--debug", "-m", "NE", "-b", "5x5")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(stderr, "Cell available"))
}

func TestBoardsCommand(t *testing.T) {
	dir := boardsDir(t)

	stdout, _, err := run(t, "--boards-dir", dir, "boards")
	require.NoError(t, err)
	assert.Contains(t, stdout, "5x5.json")
	assert.Contains(t, stdout, "[3,2]")

	stdout, _, err = run(t, "--boards-dir", filepath.Join(dir, "missing"), "boards")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No boards found")
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := run(t, "--boards-dir", dir, "--seed", "5", "generate", "-r", "4x3", "--save", "saved")
	require.NoError(t, err)

	var doc struct {
		Name             string  `json:"name"`
		StartingPosition [2]int  `json:"starting_position"`
		Matrix           [][]int `json:"matrix"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "saved", doc.Name)
	require.Len(t, doc.Matrix, 3)
	assert.Len(t, doc.Matrix[0], 4)

	// The saved preset is walkable by name
	_, _, err = run(t, "--boards-dir", dir, "-m", "", "-b", "saved")
	assert.NoError(t, err)

	_, _, err = run(t, "generate", "-r", "0x3")
	assert.ErrorIs(t, err, board.ErrInvalidSpec)
}
