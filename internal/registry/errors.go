package registry

import "errors"

var (
	ErrNotFound     = errors.New("registry: not found")
	ErrConflict     = errors.New("registry: conflict")
	ErrInvalidInput = errors.New("registry: invalid input")
)
