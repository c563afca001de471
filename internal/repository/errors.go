package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrCollectionMissing is returned when a collection has not been created
	ErrCollectionMissing = errors.New("collection missing")

	// ErrUnavailable is returned when the backing store cannot be reached or used
	ErrUnavailable = errors.New("store unavailable")

	// ErrConflict is returned when a record id is already taken
	ErrConflict = errors.New("conflict: id already exists")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)
