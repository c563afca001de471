package record

import "errors"

var (
	// ErrStorageUnavailable indicates the backing store could not be opened or used.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrCollectionMissing indicates the named collection does not exist.
	ErrCollectionMissing = errors.New("collection missing")
	// ErrDuplicateID indicates a caller-supplied id is already taken.
	ErrDuplicateID = errors.New("record id already exists")
	// ErrInvalidInput indicates invalid input for record operations.
	ErrInvalidInput = errors.New("invalid record input")
)
