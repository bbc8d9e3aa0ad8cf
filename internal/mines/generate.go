package mines

import (
	"math/rand/v2"
)

const mine int8 = -1

// placeMines picks mineCount distinct cells of a size-long board.
func placeMines(size, mineCount int, r *rand.Rand) []int {
	/*
	 * Write down the list of possible mine locations, then pick n off
	 * the list at random, swapping each pick out of the live range so
	 * it cannot be drawn twice.
	 */
	candidates := make([]int, size)
	for i := range candidates {
		candidates[i] = i
	}

	k := size
	picked := make([]int, 0, mineCount)
	for range mineCount {
		i := r.IntN(k)
		picked = append(picked, candidates[i])
		k--
		candidates[i] = candidates[k]
	}
	return picked
}

// countMines fills every non-mine cell with the number of mines among its
// up to eight neighbours.
func countMines(values []int8, rows, cols int) {
	for row := range rows {
		for col := range cols {
			i := row*cols + col
			if values[i] == mine {
				continue
			}
			var n int8
			for dr := -1; dr <= 1; dr++ {
				if row+dr < 0 || row+dr >= rows {
					continue
				}
				for dc := -1; dc <= 1; dc++ {
					if col+dc < 0 || col+dc >= cols {
						continue
					}
					if dr == 0 && dc == 0 {
						continue
					}
					if values[(row+dr)*cols+(col+dc)] == mine {
						n++
					}
				}
			}
			values[i] = n
		}
	}
}

func (p GameParams) generate(r *rand.Rand) []int8 {
	rows, cols, mineCount := p.Unpack()
	values := make([]int8, rows*cols)
	for _, i := range placeMines(rows*cols, mineCount, r) {
		values[i] = mine
	}
	countMines(values, rows, cols)
	return values
}
