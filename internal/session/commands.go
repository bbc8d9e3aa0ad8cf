package session

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minefield/internal/geometry"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("invalid number of arguments")
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get
	"o": 2, // open row col
	"f": 2, // flag row col
	"q": 2, // question row col
	"t": 2, // toggle row col
	"u": 2, // unmark row col
	"p": 3, // press button x y
	"x": 0, // forfeit
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func parsePress(threeStrings []string) (b geometry.Button, x, y float64, err error) {
	if b, err = geometry.ParseButton(threeStrings[0]); err != nil {
		return
	}
	if x, err = strconv.ParseFloat(threeStrings[1], 64); err != nil {
		err = errors.New("second argument must be a number")
		return
	}
	if y, err = strconv.ParseFloat(threeStrings[2], 64); err != nil {
		err = errors.New("third argument must be a number")
		return
	}
	return
}

// Execute runs one text command against the session. Coordinates outside the
// board are accepted and ignored like any other stray input.
func (s *Session) Execute(c string) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("%w: %q takes %d", ErrArgCount, parts[0], nargs)
	}

	switch parts[0] {
	case "g":
		return nil
	case "x":
		s.Forfeit()
		return nil
	case "p":
		b, x, y, err := parsePress(parts[1:])
		if err != nil {
			return err
		}
		s.Press(b, x, y)
		return nil
	}

	row, col, err := parseRowCol(parts[1:])
	if err != nil {
		return err
	}
	switch parts[0] {
	case "o":
		s.Reveal(row, col)
	case "f":
		s.Flag(row, col)
	case "q":
		s.Question(row, col)
	case "t":
		s.Toggle(row, col)
	case "u":
		s.Clear(row, col)
	}
	return nil
}

// ExecuteAll runs newline separated commands, stopping at the first error.
func (s *Session) ExecuteAll(text string) error {
	for i, c := range byPiece(strings.TrimSpace(text), "\n") {
		if err := s.Execute(c); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}
	return nil
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
