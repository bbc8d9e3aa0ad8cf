// Package geometry maps between board cells and the pixels of a square-tiled
// canvas.
package geometry

import (
	"fmt"
	"math"
	"strings"
)

type Layout struct {
	MaxSize     int `json:"max_size"`     // longest canvas side, padding included
	Padding     int `json:"padding"`      // split evenly around the board
	CellPadding int `json:"cell_padding"` // gap inside each tile edge
}

var Default = Layout{MaxSize: 600, Padding: 20, CellPadding: 1}

// TileSize is the side of one tile so that the longer board side fits in
// MaxSize. It is never less than 1.
func (l Layout) TileSize(rows, cols int) int {
	n := max(rows, cols, 1)
	return max((l.MaxSize-l.Padding)/n, 1)
}

// Canvas returns the width and height of the drawing surface.
func (l Layout) Canvas(rows, cols int) (width, height int) {
	tile := l.TileSize(rows, cols)
	return cols*tile + l.Padding, rows*tile + l.Padding
}

// Cell returns the tile under pixel (x, y). ok is false when the point falls
// outside the board.
func (l Layout) Cell(x, y float64, rows, cols int) (row, col int, ok bool) {
	tile := float64(l.TileSize(rows, cols))
	offset := float64(l.Padding / 2)
	col = int(math.Floor((x - offset) / tile))
	row = int(math.Floor((y - offset) / tile))
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return 0, 0, false
	}
	return row, col, true
}

// Origin is the top-left pixel of the visible part of a tile.
func (l Layout) Origin(row, col, rows, cols int) (x, y int) {
	tile := l.TileSize(rows, cols)
	return col*tile + l.Padding/2 + l.CellPadding,
		row*tile + l.Padding/2 + l.CellPadding
}

type Button int

const (
	Primary Button = iota + 1
	Secondary
)

func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return "unknown"
	}
}

func ParseButton(s string) (Button, error) {
	switch strings.ToLower(s) {
	case "1", "primary", "left":
		return Primary, nil
	case "2", "secondary", "right":
		return Secondary, nil
	default:
		return 0, fmt.Errorf(`unknown pointer button "%s"`, s)
	}
}

// [Button] implements [encoding.TextUnmarshaler]
func (b *Button) UnmarshalText(text []byte) (err error) {
	*b, err = ParseButton(string(text))
	return err
}
