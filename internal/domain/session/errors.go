package session

import "errors"

var (
	// ErrNoSelection indicates a command that needs a record id was given none.
	ErrNoSelection = errors.New("no record selected")
	// ErrUnknownCommand indicates an action or target outside the command set.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUnknownAdversary indicates a catalog lookup found no adversary by that name.
	ErrUnknownAdversary = errors.New("adversary not in catalog")
	// ErrInvalidInput indicates invalid builder input.
	ErrInvalidInput = errors.New("invalid builder input")
)
