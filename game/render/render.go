// Package render draws boards and walk traces for terminals.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/wricardo/mcp-training/wayfinder/game/engine"
)

// Cell glyphs
const (
	GlyphWall    = "#"
	GlyphCoin    = "."
	GlyphPath    = "*"
	GlyphStart   = "S"
	GlyphFinish  = "F"
	GlyphBlocked = "X"
)

// Renderer draws boards using styles bound to one output.
type Renderer struct {
	wall    lipgloss.Style
	coin    lipgloss.Style
	path    lipgloss.Style
	start   lipgloss.Style
	finish  lipgloss.Style
	blocked lipgloss.Style
	frame   lipgloss.Style
	footer  lipgloss.Style
}

// New creates a renderer whose color profile matches w. Writers that are not
// terminals get plain text.
func New(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		wall:    r.NewStyle().Foreground(lipgloss.Color("240")),
		coin:    r.NewStyle().Foreground(lipgloss.Color("220")),
		path:    r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		start:   r.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		finish:  r.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		blocked: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		frame:   r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")),
		footer:  r.NewStyle().Faint(true),
	}
}

// Board draws the grid alone, marking the starting cell when it lies on it.
func (r *Renderer) Board(b *engine.Board) string {
	marks := make(map[engine.Position]string)
	if start := engine.ToInternal(b.Matrix, b.StartingPosition); b.Matrix.InBounds(start.X, start.Y) {
		marks[start] = GlyphStart
	}
	return r.frame.Render(r.grid(b.Matrix, marks))
}

// Walk draws the grid with the walked path. The trace holds external
// coordinates.
func (r *Renderer) Walk(b *engine.Board, result engine.Result, trace engine.Trace) string {
	grid := b.Matrix
	marks := make(map[engine.Position]string)

	for _, p := range trace.Path {
		marks[engine.ToInternal(grid, p)] = GlyphPath
	}
	if len(trace.Path) > 0 {
		marks[engine.ToInternal(grid, trace.Path[0])] = GlyphStart
		if len(trace.Path) > 1 {
			marks[engine.ToInternal(grid, trace.Path[len(trace.Path)-1])] = GlyphFinish
		}
	}
	if trace.Blocked != nil {
		marks[engine.ToInternal(grid, *trace.Blocked)] = GlyphBlocked
	}

	footer := r.footer.Render(fmt.Sprintf("final (%d,%d)  coins %d  moves %d  halt %s",
		result.FinalX, result.FinalY, result.Coins, result.Moves, trace.Halt))

	return lipgloss.JoinVertical(lipgloss.Left, r.frame.Render(r.grid(grid, marks)), footer)
}

func (r *Renderer) grid(grid engine.Grid, marks map[engine.Position]string) string {
	var sb strings.Builder
	for y, row := range grid {
		for x, cell := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(r.cell(cell, marks[engine.Position{X: x, Y: y}]))
		}
		if y < len(grid)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func (r *Renderer) cell(value int, mark string) string {
	switch mark {
	case GlyphStart:
		return r.start.Render(mark)
	case GlyphFinish:
		return r.finish.Render(mark)
	case GlyphBlocked:
		return r.blocked.Render(mark)
	case GlyphPath:
		return r.path.Render(mark)
	}
	if value == engine.Wall {
		return r.wall.Render(GlyphWall)
	}
	return r.coin.Render(GlyphCoin)
}
