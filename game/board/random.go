package board

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/mcp-training/wayfinder/game/engine"
)

const (
	// MaxDimension is the exclusive upper bound for random board width and height.
	MaxDimension = 1000

	minWallFactor = 3
	maxWallFactor = 10
)

var specPattern = regexp.MustCompile(`^(\d+)[xX](\d+)$`)

// Generator produces random boards. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator. A zero seed seeds from the clock; any
// other seed makes every board sequence reproducible.
func NewGenerator(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// ParseSpec parses a "<width>x<height>" bounds spec. Width is checked before
// height, so the first offending dimension decides the error: "0x1000" is
// ErrInvalidSpec and "1000x0" is ErrBoundsTooLarge.
func ParseSpec(spec string) (width, height int, err error) {
	m := specPattern.FindStringSubmatch(strings.TrimSpace(spec))
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q must look like <width>x<height>", ErrInvalidSpec, spec)
	}

	width, err = parseDimension(spec, "width", m[1])
	if err != nil {
		return 0, 0, err
	}
	height, err = parseDimension(spec, "height", m[2])
	if err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

func parseDimension(spec, label, digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s in %q must be below %d", ErrBoundsTooLarge, label, spec, MaxDimension)
		}
		return 0, fmt.Errorf("%w: %s in %q: %v", ErrInvalidSpec, label, spec, err)
	}
	if n >= MaxDimension {
		return 0, fmt.Errorf("%w: %s in %q must be below %d", ErrBoundsTooLarge, label, spec, MaxDimension)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: %s in %q must be at least 1", ErrInvalidSpec, label, spec)
	}
	return n, nil
}

// Generate parses spec and builds a random board of that size. Spec errors
// are reported as ParseSpec does, for the first offending dimension.
func (g *Generator) Generate(spec string) (*engine.Board, error) {
	width, height, err := ParseSpec(spec)
	if err != nil {
		return nil, err
	}
	b := g.GenerateSize(width, height)
	b.Name = fmt.Sprintf("random-%dx%d", width, height)
	return b, nil
}

// GenerateSize builds a width x height board. A wall factor F in [3, 10) is
// drawn once; each cell (x, y) draws r in [0, x*y) and is a wall when
// r mod F == 0. Row 0 and column 0 are therefore always walls. The starting
// position is drawn from [-1, width-1] x [-1, height-1] and is not checked.
func (g *Generator) GenerateSize(width, height int) *engine.Board {
	g.mu.Lock()
	defer g.mu.Unlock()

	factor := minWallFactor + g.rng.IntN(maxWallFactor-minWallFactor)

	grid := make(engine.Grid, height)
	for y := 0; y < height; y++ {
		grid[y] = make([]int, width)
		for x := 0; x < width; x++ {
			r := 0
			if n := x * y; n > 0 {
				r = g.rng.IntN(n)
			}
			if r%factor != 0 {
				grid[y][x] = engine.Coin
			} else {
				grid[y][x] = engine.Wall
			}
		}
	}

	start := engine.Position{
		X: g.rng.IntN(width+1) - 1,
		Y: g.rng.IntN(height+1) - 1,
	}

	return &engine.Board{StartingPosition: start, Matrix: grid}
}
