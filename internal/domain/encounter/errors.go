package encounter

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the XP budget cannot be computed from the table.
	ErrUnavailable = errors.New("xp budget unavailable")
	// ErrUnknownDifficulty indicates a difficulty label that could not be parsed.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrUnknownMode indicates a budget mode other than group or individual.
	ErrUnknownMode = errors.New("unknown xp mode")
	// ErrInvalidTable indicates an XP table failed validation.
	ErrInvalidTable = errors.New("invalid xp table")
)

// LevelMissingError reports a level/difficulty pair absent from the XP table.
type LevelMissingError struct {
	Level      int
	Difficulty Difficulty
}

func (e *LevelMissingError) Error() string {
	return fmt.Sprintf("xp data not found for level %d (%s)", e.Level, e.Difficulty)
}

func (e *LevelMissingError) Unwrap() error {
	return ErrUnavailable
}
