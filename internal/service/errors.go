package service

import "errors"

// Sentinel errors returned by services. Handlers translate them to HTTP codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrForbidden          = errors.New("access denied")
)
