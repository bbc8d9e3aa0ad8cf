package mines

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

type GameParams struct {
	Rows, Cols, MineCount int
}

func (p GameParams) Unpack() (rows int, cols int, mc int) {
	return p.Rows, p.Cols, p.MineCount
}

func (p GameParams) Size() int {
	return p.Rows * p.Cols
}

// Validate returns a [ConfigError] unless every value is positive, the cell
// count fits in an int and the mines leave at least one safe cell.
func (p GameParams) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 || p.MineCount <= 0 ||
		p.Rows > math.MaxInt/p.Cols ||
		p.MineCount >= p.Rows*p.Cols {
		return ConfigError{p.Rows, p.Cols, p.MineCount}
	}
	return nil
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Cols, p.MineCount)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Rows, &p.Cols, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p GameParams) InBounds(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

var (
	Beginner     = GameParams{Rows: 9, Cols: 9, MineCount: 10}
	Intermediate = GameParams{Rows: 16, Cols: 16, MineCount: 40}
	Expert       = GameParams{Rows: 16, Cols: 30, MineCount: 99}
)

func Preset(name string) (GameParams, error) {
	switch strings.ToLower(name) {
	case "beginner":
		return Beginner, nil
	case "intermediate":
		return Intermediate, nil
	case "expert":
		return Expert, nil
	default:
		return GameParams{}, PresetError{name}
	}
}

const (
	maxRandomRows  = 16
	maxRandomCols  = 30
	maxRandomMines = 99
)

// RandomParams picks a board no larger than the expert preset. The result
// always passes [GameParams.Validate].
func RandomParams(r *rand.Rand) GameParams {
	rows := 1 + r.IntN(maxRandomRows)
	cols := 1 + r.IntN(maxRandomCols)
	if rows*cols < 2 {
		cols = 2
	}
	limit := min(maxRandomMines, rows*cols-1)
	return GameParams{
		Rows:      rows,
		Cols:      cols,
		MineCount: 1 + r.IntN(limit),
	}
}
