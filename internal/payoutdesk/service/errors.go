package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks client faults. Every validation error below wraps it.
var ErrValidation = errors.New("validation failed")

var (
	ErrMissingField        = fmt.Errorf("%w: missing required field", ErrValidation)
	ErrNonPositiveAmount   = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", ErrValidation)
	ErrInvalidAmount       = fmt.Errorf("%w: amount is not a storable money value", ErrValidation)
	ErrUnknownStatus       = fmt.Errorf("%w: unknown status", ErrValidation)
)
