package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyRecipe     = errors.New("recipe has no steps")
	ErrInvalidState    = errors.New("invalid session state")
	ErrInvalidDuration = errors.New("invalid countdown duration")
	ErrNotFinished     = errors.New("session is not finished")
)
