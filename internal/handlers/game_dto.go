package handlers

import (
	"errors"
	"fmt"

	"github.com/gorilla/schema"

	"github.com/vancomm/minefield/internal/geometry"
	"github.com/vancomm/minefield/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

// Largest board a client may ask for. The model itself has no limit.
const (
	MaxRows = 100
	MaxCols = 100
)

var ErrBoardTooLarge = errors.New("board too large")

func ParseNewGameDTO(src map[string][]string) (session.Options, error) {
	var opts session.Options
	if err := decoder.Decode(&opts, src); err != nil {
		return opts, err
	}
	if opts.Rows > MaxRows || opts.Cols > MaxCols {
		return opts, fmt.Errorf(
			"%w: at most %d rows and %d columns", ErrBoardTooLarge, MaxRows, MaxCols,
		)
	}
	return opts, nil
}

type Move string

const (
	Reveal   Move = "reveal"
	Flag     Move = "flag"
	Question Move = "question"
	Toggle   Move = "toggle"
	Clear    Move = "clear"
)

type MoveDTO struct {
	Move Move `schema:"move,required"`
	Row  int  `schema:"row,required"`
	Col  int  `schema:"col,required"`
}

func ParseMoveDTO(src map[string][]string) (MoveDTO, error) {
	var dto MoveDTO
	if err := decoder.Decode(&dto, src); err != nil {
		return dto, err
	}
	switch dto.Move {
	case Reveal, Flag, Question, Toggle, Clear:
		return dto, nil
	default:
		return dto, fmt.Errorf(`unknown move "%s"`, dto.Move)
	}
}

func (m MoveDTO) apply(s *session.Session) {
	switch m.Move {
	case Reveal:
		s.Reveal(m.Row, m.Col)
	case Flag:
		s.Flag(m.Row, m.Col)
	case Question:
		s.Question(m.Row, m.Col)
	case Toggle:
		s.Toggle(m.Row, m.Col)
	case Clear:
		s.Clear(m.Row, m.Col)
	}
}

type PressDTO struct {
	Button geometry.Button `schema:"button,required"`
	X      float64         `schema:"x,required"`
	Y      float64         `schema:"y,required"`
}

func ParsePressDTO(src map[string][]string) (PressDTO, error) {
	var dto PressDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type LayoutDTO struct {
	geometry.Layout
	TileSize int `json:"tile_size"`
	Width    int `json:"width"`
	Height   int `json:"height"`
}

func NewLayoutDTO(l geometry.Layout, rows, cols int) *LayoutDTO {
	width, height := l.Canvas(rows, cols)
	return &LayoutDTO{
		Layout:   l,
		TileSize: l.TileSize(rows, cols),
		Width:    width,
		Height:   height,
	}
}
