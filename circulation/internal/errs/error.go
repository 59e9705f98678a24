package errs

import (
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrCannotBorrow    = errors.New("book cannot be borrowed")
	ErrNoActiveLoan    = errors.New("no active loan found")
	ErrLoanReturned    = errors.New("loan already returned")
	ErrInvalidDuration = errors.New("loan duration must be positive")
)
