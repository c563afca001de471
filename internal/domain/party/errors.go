package party

import "errors"

var (
	// ErrInvalidInput indicates a character failed validation.
	ErrInvalidInput = errors.New("invalid character input")
	// ErrMemberNotFound indicates a roster index is out of range.
	ErrMemberNotFound = errors.New("party member not found")
)
