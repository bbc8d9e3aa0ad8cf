package mines

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Questioned   CellState = -3
	Hidden       CellState = -2
	Flagged      CellState = -1
	RevealedMine CellState = 64
	// 0-8 for a revealed cell with that many mined neighbours
)

// RevealedCount is the display state of an open cell with n mined
// neighbours.
func RevealedCount(n int) CellState {
	return CellState(n)
}

func (s CellState) Revealed() bool {
	return s == RevealedMine || s.Count() >= 0
}

// Count returns the neighbour count of an open safe cell, -1 otherwise.
func (s CellState) Count() int {
	if 0 <= s && s <= 8 {
		return int(s)
	}
	return -1
}

func (s CellState) String() string {
	switch {
	case s == Questioned:
		return "?"
	case s == Hidden:
		return "."
	case s == Flagged:
		return "F"
	case s == RevealedMine:
		return "X"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

// [Grid] implements [json.Marshaler], a nil grid encodes as [].
func (g Grid) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(g))
	for i, s := range g {
		ints[i] = int(s)
	}
	return json.Marshal(ints)
}

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
