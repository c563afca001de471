package adversary

import "errors"

var (
	// ErrInvalidInput indicates an adversary entry failed validation.
	ErrInvalidInput = errors.New("invalid adversary input")
	// ErrNotInRoster indicates the named adversary is not in the roster.
	ErrNotInRoster = errors.New("adversary not in roster")
	// ErrInvalidChallengeRating indicates a CR value could not be parsed.
	ErrInvalidChallengeRating = errors.New("invalid challenge rating")
)
