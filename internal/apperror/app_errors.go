package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrCellOutOfRange  = errors.New("cell coordinates out of range")
)
