package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type FieldState int

const (
	Unconfigured FieldState = iota
	Configured
	Generated
)

func (s FieldState) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case Configured:
		return "configured"
	case Generated:
		return "generated"
	default:
		return "unknown"
	}
}

// Field is a minesweeper board: the immutable values chosen at generation
// and the visible/flagged/questioned overlays the player changes.
//
// A Field is not safe for concurrent use.
type Field struct {
	GameParams
	state FieldState
	rnd   *rand.Rand

	values     []int8 /* -1 for a mine, else the neighbour count */
	visible    []bool
	flagged    []bool
	questioned []bool

	revealed int
	flags    int
}

// NewField returns an unconfigured field drawing mines from r. A nil r is
// replaced with a randomly seeded source.
func NewField(r *rand.Rand) *Field {
	if r == nil {
		r = rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return &Field{rnd: r}
}

func (f *Field) State() FieldState {
	return f.state
}

// Configure stores the board dimensions. Any generated board is dropped; on
// error the field is left as it was.
func (f *Field) Configure(rows, cols, mineCount int) error {
	return f.configure(GameParams{Rows: rows, Cols: cols, MineCount: mineCount})
}

func (f *Field) ConfigureByPreset(name string) error {
	p, err := Preset(name)
	if err != nil {
		return err
	}
	return f.configure(p)
}

func (f *Field) ConfigureRandom() error {
	return f.configure(RandomParams(f.rnd))
}

func (f *Field) configure(p GameParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f.GameParams = p
	f.state = Configured
	f.values, f.visible, f.flagged, f.questioned = nil, nil, nil, nil
	f.revealed, f.flags = 0, 0
	return nil
}

// Generate lays out a fresh board for the stored configuration, replacing
// any previous one.
func (f *Field) Generate() error {
	if f.state == Unconfigured {
		return ErrNotConfigured
	}
	f.reset(f.GameParams.generate(f.rnd))
	if Log.IsLevelEnabled(logrus.DebugLevel) {
		Log.WithFields(logrus.Fields{
			"seed":  f.Seed(),
			"field": "\n" + f.layout(),
		}).Debug("generated field")
	}
	return nil
}

// Plant generates a board with mines at exactly the given row-major
// indices.
func (f *Field) Plant(indices []int) error {
	if f.state == Unconfigured {
		return ErrNotConfigured
	}
	if len(indices) != f.MineCount {
		return fmt.Errorf(
			"%w: %d mine indices for %d mines",
			ErrInvalidConfiguration, len(indices), f.MineCount,
		)
	}
	values := make([]int8, f.Size())
	for _, i := range indices {
		if i < 0 || i >= len(values) {
			return fmt.Errorf("%w: mine index %d out of range", ErrInvalidConfiguration, i)
		}
		if values[i] == mine {
			return fmt.Errorf("%w: duplicate mine index %d", ErrInvalidConfiguration, i)
		}
		values[i] = mine
	}
	countMines(values, f.Rows, f.Cols)
	f.reset(values)
	return nil
}

func (f *Field) reset(values []int8) {
	size := len(values)
	f.values = values
	f.visible = make([]bool, size)
	f.flagged = make([]bool, size)
	f.questioned = make([]bool, size)
	f.revealed, f.flags = 0, 0
	f.state = Generated
}

func (f *Field) index(row, col int) (int, bool) {
	if f.state != Generated || !f.InBounds(row, col) {
		return 0, false
	}
	return row*f.Cols + col, true
}

// Reveal opens a cell. An opened cell with no mined neighbours also opens
// the whole region of such cells connected to it up, down, left and right,
// skipping flagged and questioned ones. Opening a mine is allowed; deciding
// what that means is up to the caller.
func (f *Field) Reveal(row, col int) {
	i, ok := f.index(row, col)
	if !ok || f.visible[i] {
		return
	}
	f.open(i)
	if f.values[i] != 0 {
		return
	}

	std := newCelltodo(len(f.values))
	std.add(i)
	for {
		j, ok := std.pop()
		if !ok {
			break
		}
		r, c := j/f.Cols, j%f.Cols
		for _, d := range orthogonal {
			k, ok := f.index(r+d[0], c+d[1])
			if !ok {
				continue
			}
			if f.values[k] == 0 && !f.flagged[k] && !f.questioned[k] && !f.visible[k] {
				f.open(k)
				std.add(k)
			}
		}
	}
}

func (f *Field) open(i int) {
	if f.flagged[i] {
		f.flags--
	}
	f.visible[i] = true
	f.flagged[i] = false
	f.questioned[i] = false
	f.revealed++
}

// Flag marks a hidden cell as a suspected mine. Open cells are left alone.
func (f *Field) Flag(row, col int) {
	i, ok := f.index(row, col)
	if !ok || f.visible[i] {
		return
	}
	if !f.flagged[i] {
		f.flags++
	}
	f.flagged[i] = true
	f.questioned[i] = false
}

// MarkQuestion marks a hidden cell as uncertain. Open cells are left alone.
func (f *Field) MarkQuestion(row, col int) {
	i, ok := f.index(row, col)
	if !ok || f.visible[i] {
		return
	}
	if f.flagged[i] {
		f.flags--
	}
	f.flagged[i] = false
	f.questioned[i] = true
}

// Clear takes the flag or question mark off a hidden cell.
func (f *Field) Clear(row, col int) {
	i, ok := f.index(row, col)
	if !ok || f.visible[i] {
		return
	}
	if f.flagged[i] {
		f.flags--
	}
	f.flagged[i] = false
	f.questioned[i] = false
}

// Toggle cycles a hidden cell through flagged, questioned and back to
// hidden.
func (f *Field) Toggle(row, col int) {
	i, ok := f.index(row, col)
	if !ok || f.visible[i] {
		return
	}
	switch {
	case f.flagged[i]:
		f.MarkQuestion(row, col)
	case f.questioned[i]:
		f.Clear(row, col)
	default:
		f.Flag(row, col)
	}
}

// RevealMines opens every mine without touching the rest of the board.
func (f *Field) RevealMines() {
	for i, v := range f.values {
		if v == mine && !f.visible[i] {
			f.open(i)
		}
	}
}

// CellDisplayState reports what the player sees at a cell. Cells outside
// the board, or on a field that has not been generated, are [Hidden].
func (f *Field) CellDisplayState(row, col int) CellState {
	i, ok := f.index(row, col)
	if !ok {
		return Hidden
	}
	return f.display(i)
}

func (f *Field) display(i int) CellState {
	switch {
	case f.visible[i] && f.values[i] == mine:
		return RevealedMine
	case f.visible[i]:
		return RevealedCount(int(f.values[i]))
	case f.flagged[i]:
		return Flagged
	case f.questioned[i]:
		return Questioned
	default:
		return Hidden
	}
}

func (f *Field) Display() Grid {
	grid := make(Grid, len(f.values))
	for i := range grid {
		grid[i] = f.display(i)
	}
	return grid
}

// Value returns -1 for a mine and the neighbour count otherwise. It ignores
// the overlays and is meant for tests and post-game display.
func (f *Field) Value(row, col int) (int, bool) {
	i, ok := f.index(row, col)
	if !ok {
		return 0, false
	}
	return int(f.values[i]), true
}

func (f *Field) IsMine(row, col int) bool {
	v, ok := f.Value(row, col)
	return ok && v == int(mine)
}

// Revealed is the number of open cells.
func (f *Field) Revealed() int {
	return f.revealed
}

// Flags is the number of flagged cells.
func (f *Field) Flags() int {
	return f.flags
}

func (f *Field) String() string {
	if f.state != Generated {
		return fmt.Sprintf("%s (%s)", f.Seed(), f.state)
	}
	return f.Display().ToString(f.Cols)
}

// layout draws the board as if every cell were open.
func (f *Field) layout() string {
	grid := make(Grid, len(f.values))
	for i, v := range f.values {
		if v == mine {
			grid[i] = RevealedMine
		} else {
			grid[i] = RevealedCount(int(v))
		}
	}
	return grid.ToString(f.Cols)
}
