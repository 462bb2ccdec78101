package board

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/wricardo/mcp-training/wayfinder/game/engine"
)

// jsonBoard mirrors the JSON board document. Slices stay nil when a key is
// absent so missing keys can be told apart from empty ones.
type jsonBoard struct {
	Name             string  `json:"name"`
	StartingPosition []int   `json:"starting_position"`
	Matrix           [][]int `json:"matrix"`
}

// hclBoard mirrors the HCL board document.
type hclBoard struct {
	Name             *string `hcl:"name,optional"`
	StartingPosition []int   `hcl:"starting_position,optional"`
	Matrix           [][]int `hcl:"matrix,optional"`
}

// Decode parses a board document. Files ending in .hcl are parsed as HCL,
// everything else as JSON. filename is only used for format detection and
// error messages.
func Decode(filename string, data []byte) (*engine.Board, error) {
	if strings.EqualFold(filepath.Ext(filename), ".hcl") {
		return DecodeHCL(filename, data)
	}
	return DecodeJSON(filename, data)
}

// DecodeJSON parses a JSON board document.
func DecodeJSON(filename string, data []byte) (*engine.Board, error) {
	var doc jsonBoard
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, filename, err)
	}
	return buildBoard(filename, doc.Name, doc.StartingPosition, doc.Matrix)
}

// DecodeHCL parses an HCL board document.
func DecodeHCL(filename string, data []byte) (*engine.Board, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, filename, diags.Error())
	}

	var doc hclBoard
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %s", ErrParse, filename, diags.Error())
	}

	name := ""
	if doc.Name != nil {
		name = *doc.Name
	}
	return buildBoard(filename, name, doc.StartingPosition, doc.Matrix)
}

func buildBoard(filename, name string, start []int, matrix [][]int) (*engine.Board, error) {
	if start == nil {
		return nil, fmt.Errorf("%w: %s: starting_position is required", engine.ErrInvalidBoard, filename)
	}
	if matrix == nil {
		return nil, fmt.Errorf("%w: %s: matrix is required", engine.ErrInvalidBoard, filename)
	}
	if len(start) != 2 {
		return nil, fmt.Errorf("%w: %s: starting_position must have 2 elements, got %d",
			engine.ErrInvalidBoard, filename, len(start))
	}

	grid := engine.Grid(matrix)
	if err := engine.ValidateGrid(grid); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return &engine.Board{
		Name:             name,
		StartingPosition: engine.Position{X: start[0], Y: start[1]},
		Matrix:           grid,
	}, nil
}
