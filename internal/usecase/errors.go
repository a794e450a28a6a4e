package usecase

import (
	"errors"
)

// Validation failures returned as typed errors to the adaptor layer. Each one
// short-circuits its operation with no partial state change; only storage
// failures surface as untyped internal errors.
var (
	ErrNotFound            = errors.New("not found")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrClassFull           = errors.New("class is full")
	ErrAccountFrozen       = errors.New("account is frozen")
	ErrPassExhausted       = errors.New("tourist pass has no classes remaining")
	ErrAlreadyInState      = errors.New("already in requested state")
)
