package mines

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Log.SetLevel(logrus.DebugLevel)
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

func newTestField(t *testing.T, rows, cols, mines int) *Field {
	t.Helper()
	f := NewField(rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, f.Configure(rows, cols, mines))
	return f
}

func naiveCount(f *Field, row, col int) (n int) {
	for r := row - 1; r <= row+1; r++ {
		for c := col - 1; c <= col+1; c++ {
			if (r != row || c != col) && f.IsMine(r, c) {
				n++
			}
		}
	}
	return
}

// zeroRegion collects the cells reachable from (row, col) through
// orthogonally adjacent zero-valued cells.
func zeroRegion(f *Field, row, col int) map[[2]int]bool {
	region := map[[2]int]bool{{row, col}: true}
	stack := [][2]int{{row, col}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range orthogonal {
			q := [2]int{p[0] + d[0], p[1] + d[1]}
			if v, ok := f.Value(q[0], q[1]); ok && v == 0 && !region[q] {
				region[q] = true
				stack = append(stack, q)
			}
		}
	}
	return region
}

func TestConfigure(t *testing.T) {
	tests := []struct {
		name              string
		rows, cols, mines int
		wantErr           bool
	}{
		{"valid", 9, 9, 10, false},
		{"single safe cell", 2, 2, 3, false},
		{"zero rows", 0, 5, 3, true},
		{"negative cols", 5, -1, 3, true},
		{"zero mines", 5, 5, 0, true},
		{"no safe cell", 3, 3, 9, true},
		{"too many mines", 3, 3, 10, true},
		{"cell count overflows", math.MaxInt/4 + 1, 4, 1, true},
		{"cell count overflows wide", 4, math.MaxInt, 1, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := NewField(nil)
			err := f.Configure(test.rows, test.cols, test.mines)
			if !test.wantErr {
				require.NoError(t, err)
				assert.Equal(t, Configured, f.State())
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
			var ce ConfigError
			assert.True(t, errors.As(err, &ce))
			assert.Equal(t, Unconfigured, f.State())
		})
	}
}

func TestConfigureKeepsPreviousOnError(t *testing.T) {
	f := newTestField(t, 9, 9, 10)
	require.NoError(t, f.Generate())

	require.ErrorIs(t, f.Configure(0, 5, 3), ErrInvalidConfiguration)
	assert.Equal(t, Generated, f.State())
	assert.Equal(t, Beginner, f.GameParams)
}

func TestConfigureByPreset(t *testing.T) {
	tests := []struct {
		name string
		want GameParams
	}{
		{"beginner", GameParams{9, 9, 10}},
		{"Intermediate", GameParams{16, 16, 40}},
		{"EXPERT", GameParams{16, 30, 99}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := NewField(nil)
			require.NoError(t, f.ConfigureByPreset(test.name))
			assert.Equal(t, test.want, f.GameParams)
		})
	}

	f := NewField(nil)
	err := f.ConfigureByPreset("random")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Equal(t, Unconfigured, f.State())
}

func TestGenerateNotConfigured(t *testing.T) {
	f := NewField(nil)
	assert.ErrorIs(t, f.Generate(), ErrNotConfigured)
	assert.ErrorIs(t, f.Plant(nil), ErrNotConfigured)
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name   string
		params GameParams
	}{
		{"9x9(10)", Beginner},
		{"16x16(40)", Intermediate},
		{"16x30(99)", Expert},
		{"1x2(1)", GameParams{1, 2, 1}},
		{"4x4(15)", GameParams{4, 4, 15}},
		{"30x16(170)", GameParams{30, 16, 170}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			f := NewField(r)
			rows, cols, mineCount := test.params.Unpack()
			require.NoError(t, f.Configure(rows, cols, mineCount))

			for range 20 {
				require.NoError(t, f.Generate())
				require.Equal(t, Generated, f.State())

				mines := 0
				for row := range rows {
					for col := range cols {
						v, ok := f.Value(row, col)
						require.True(t, ok)
						if v == -1 {
							mines++
							continue
						}
						assert.Equal(t, naiveCount(f, row, col), v,
							"count at %d:%d", row, col)
					}
				}
				assert.Equal(t, mineCount, mines)
				assert.Equal(t, 0, f.Revealed())
				assert.Equal(t, 0, f.Flags())
			}
		})
	}
}

func TestGenerateResetsOverlays(t *testing.T) {
	f := newTestField(t, 9, 9, 10)
	require.NoError(t, f.Generate())
	f.Flag(0, 0)
	f.MarkQuestion(0, 1)
	f.Reveal(4, 4)

	require.NoError(t, f.Generate())
	for _, s := range f.Display() {
		assert.Equal(t, Hidden, s)
	}
}

func TestPlant(t *testing.T) {
	f := newTestField(t, 3, 3, 2)

	assert.ErrorIs(t, f.Plant([]int{0}), ErrInvalidConfiguration)
	assert.ErrorIs(t, f.Plant([]int{0, 9}), ErrInvalidConfiguration)
	assert.ErrorIs(t, f.Plant([]int{4, 4}), ErrInvalidConfiguration)
	assert.Equal(t, Configured, f.State())

	require.NoError(t, f.Plant([]int{0, 8}))
	want := []int{
		-1, 1, 0,
		1, 2, 1,
		0, 1, -1,
	}
	for i, w := range want {
		v, ok := f.Value(i/3, i%3)
		require.True(t, ok)
		assert.Equal(t, w, v, "value at %d", i)
	}
}

func TestRevealBeginnerCornerMines(t *testing.T) {
	f := NewField(nil)
	require.NoError(t, f.ConfigureByPreset("beginner"))
	require.NoError(t, f.Plant([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}))

	f.Reveal(8, 8)

	assert.Equal(t, Hidden, f.CellDisplayState(0, 0))
	revealed := 0
	for row := range 9 {
		for col := range 9 {
			s := f.CellDisplayState(row, col)
			v, _ := f.Value(row, col)
			if v == 0 {
				assert.Equal(t, RevealedCount(0), s, "cell %d:%d", row, col)
				revealed++
			} else {
				assert.Equal(t, Hidden, s, "cell %d:%d", row, col)
			}
		}
	}
	assert.Equal(t, 7*9-2, revealed)
	assert.Equal(t, revealed, f.Revealed())
}

func TestRevealZeroRegion(t *testing.T) {
	for seed := range uint64(10) {
		f := NewField(rand.New(rand.NewPCG(seed, 2)))
		require.NoError(t, f.ConfigureByPreset("expert"))
		require.NoError(t, f.Generate())

		var start [2]int
		found := false
		for i := 0; i < f.Size() && !found; i++ {
			if v, _ := f.Value(i/f.Cols, i%f.Cols); v == 0 {
				start, found = [2]int{i / f.Cols, i % f.Cols}, true
			}
		}
		require.True(t, found, "seed %d has no empty cell", seed)

		region := zeroRegion(f, start[0], start[1])
		f.Reveal(start[0], start[1])

		for row := range f.Rows {
			for col := range f.Cols {
				open := f.CellDisplayState(row, col).Revealed()
				assert.Equal(t, region[[2]int{row, col}], open,
					"seed %d cell %d:%d", seed, row, col)
			}
		}
		assert.Equal(t, len(region), f.Revealed())
	}
}

func TestRevealStopsAtMarks(t *testing.T) {
	// one mine in the corner, everything else in one empty region
	f := newTestField(t, 5, 5, 1)
	require.NoError(t, f.Plant([]int{0}))

	// wall off the right two columns
	for row := range 5 {
		f.Flag(row, 2)
	}
	f.MarkQuestion(4, 2)
	f.Reveal(4, 4)

	for row := range 5 {
		assert.Equal(t, Hidden, f.CellDisplayState(row, 1), "row %d", row)
		assert.True(t, f.CellDisplayState(row, 3).Revealed(), "row %d", row)
	}
	assert.Equal(t, Flagged, f.CellDisplayState(0, 2))
	assert.Equal(t, Questioned, f.CellDisplayState(4, 2))
}

func TestRevealNumberedCell(t *testing.T) {
	f := newTestField(t, 3, 3, 2)
	require.NoError(t, f.Plant([]int{0, 8}))

	f.Reveal(1, 1)
	assert.Equal(t, RevealedCount(2), f.CellDisplayState(1, 1))
	assert.Equal(t, 1, f.Revealed())
}

func TestRevealIdempotent(t *testing.T) {
	f := newTestField(t, 9, 9, 10)
	require.NoError(t, f.Plant([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}))

	f.Reveal(8, 8)
	before := f.Display()
	revealed := f.Revealed()

	f.Reveal(8, 8)
	assert.Equal(t, before, f.Display())
	assert.Equal(t, revealed, f.Revealed())
}

func TestRevealMine(t *testing.T) {
	f := newTestField(t, 3, 3, 2)
	require.NoError(t, f.Plant([]int{0, 8}))
	f.Flag(0, 0)

	f.Reveal(0, 0)
	assert.Equal(t, RevealedMine, f.CellDisplayState(0, 0))
	assert.Equal(t, 0, f.Flags())
	assert.Equal(t, Hidden, f.CellDisplayState(0, 1))
}

func TestRevealClearsMarks(t *testing.T) {
	f := newTestField(t, 3, 3, 2)
	require.NoError(t, f.Plant([]int{0, 8}))

	f.Flag(1, 1)
	f.Reveal(1, 1)
	assert.Equal(t, RevealedCount(2), f.CellDisplayState(1, 1))

	f.MarkQuestion(0, 1)
	f.Reveal(0, 1)
	assert.Equal(t, RevealedCount(1), f.CellDisplayState(0, 1))
	assert.Equal(t, 0, f.Flags())
}

func TestFlagAndQuestion(t *testing.T) {
	f := newTestField(t, 3, 3, 2)
	require.NoError(t, f.Plant([]int{0, 8}))

	f.Flag(0, 1)
	f.MarkQuestion(0, 1)
	assert.Equal(t, Questioned, f.CellDisplayState(0, 1))
	assert.Equal(t, 0, f.Flags())

	f.MarkQuestion(1, 0)
	f.Flag(1, 0)
	assert.Equal(t, Flagged, f.CellDisplayState(1, 0))
	assert.Equal(t, 1, f.Flags())

	f.Flag(1, 0)
	assert.Equal(t, 1, f.Flags())

	f.Clear(1, 0)
	assert.Equal(t, Hidden, f.CellDisplayState(1, 0))
	assert.Equal(t, 0, f.Flags())
}

func TestMarksIgnoredOnOpenCells(t *testing.T) {
	f := newTestField(t, 3, 3, 2)
	require.NoError(t, f.Plant([]int{0, 8}))
	f.Reveal(1, 1)

	f.Flag(1, 1)
	assert.Equal(t, RevealedCount(2), f.CellDisplayState(1, 1))
	f.MarkQuestion(1, 1)
	assert.Equal(t, RevealedCount(2), f.CellDisplayState(1, 1))
	f.Toggle(1, 1)
	f.Clear(1, 1)
	assert.Equal(t, RevealedCount(2), f.CellDisplayState(1, 1))
	assert.Equal(t, 0, f.Flags())
}

func TestToggle(t *testing.T) {
	f := newTestField(t, 3, 3, 2)
	require.NoError(t, f.Plant([]int{0, 8}))

	want := []CellState{Flagged, Questioned, Hidden, Flagged}
	for _, w := range want {
		f.Toggle(2, 0)
		assert.Equal(t, w, f.CellDisplayState(2, 0))
	}
}

func TestOutOfBoundsIsNoop(t *testing.T) {
	f := newTestField(t, 3, 3, 2)

	// not generated yet
	f.Reveal(0, 0)
	f.Flag(0, 0)
	assert.Equal(t, Hidden, f.CellDisplayState(0, 0))

	require.NoError(t, f.Plant([]int{0, 8}))
	before := f.Display()
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {100, 100}} {
		f.Reveal(p[0], p[1])
		f.Flag(p[0], p[1])
		f.MarkQuestion(p[0], p[1])
		f.Toggle(p[0], p[1])
		assert.Equal(t, Hidden, f.CellDisplayState(p[0], p[1]))
	}
	assert.Equal(t, before, f.Display())
}

func TestRevealMines(t *testing.T) {
	f := newTestField(t, 3, 3, 2)
	require.NoError(t, f.Plant([]int{0, 8}))
	f.Flag(0, 0)
	f.Flag(0, 1)

	f.RevealMines()
	assert.Equal(t, RevealedMine, f.CellDisplayState(0, 0))
	assert.Equal(t, RevealedMine, f.CellDisplayState(2, 2))
	assert.Equal(t, Flagged, f.CellDisplayState(0, 1))
	assert.Equal(t, 1, f.Flags())
}

func TestFieldString(t *testing.T) {
	f := newTestField(t, 2, 3, 1)
	assert.Equal(t, "2:3:1 (configured)", f.String())

	require.NoError(t, f.Plant([]int{2}))
	f.Reveal(1, 0)
	f.Flag(0, 2)
	f.MarkQuestion(1, 2)
	assert.Equal(t, "0 . F \n0 . ? \n", f.String())
}
