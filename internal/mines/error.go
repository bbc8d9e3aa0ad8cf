package mines

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidConfiguration = errors.New("invalid field configuration")
	ErrUnknownPreset        = errors.New("unknown preset")
	ErrNotConfigured        = errors.New("field is not configured")
)

type ConfigError struct {
	Rows, Cols, MineCount int
}

// [ConfigError] implements [error]
func (e ConfigError) Error() string {
	switch {
	case e.Rows <= 0:
		return fmt.Sprintf("cannot create a field with %d rows", e.Rows)
	case e.Cols <= 0:
		return fmt.Sprintf("cannot create a field with %d columns", e.Cols)
	case e.MineCount <= 0:
		return fmt.Sprintf("cannot create a field with %d mines", e.MineCount)
	case e.Rows > math.MaxInt/e.Cols:
		return fmt.Sprintf("a field of %d * %d cells is too large", e.Rows, e.Cols)
	case e.MineCount >= e.Rows*e.Cols:
		return fmt.Sprintf(
			"not enough room for %d mines (%d >= %d * %d)",
			e.MineCount, e.MineCount, e.Rows, e.Cols,
		)
	default:
		return "cannot create a field"
	}
}

func (e ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

type PresetError struct {
	Name string
}

// [PresetError] implements [error]
func (e PresetError) Error() string {
	return fmt.Sprintf(
		`unknown preset "%s" (want beginner, intermediate or expert)`, e.Name,
	)
}

func (e PresetError) Unwrap() error {
	return ErrUnknownPreset
}
