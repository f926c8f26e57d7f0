package services

import "errors"

var (
	// ErrInvalidInput marks malformed caller input: bad code format,
	// rating outside [1,4], wrong selection count. Never retried.
	ErrInvalidInput = errors.New("invalid input")
)
