package apperror

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnknownPlayer = errors.New("unknown player")
	ErrOutOfBounds   = errors.New("coordinate is out of bounds")
	ErrSamePlayer    = errors.New("players must be distinct")
	ErrGameFinished  = errors.New("game is already finished")
	ErrConflict      = errors.New("game was modified concurrently")
)
