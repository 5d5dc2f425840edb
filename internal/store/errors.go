package store

import "errors"

// Domain failures. Handlers match these with errors.Is to pick a status
// code; everything else is treated as a store failure.
var (
	ErrNotFound          = errors.New("not found")
	ErrItemExists        = errors.New("item already exists at this location")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid request status transition")
)
