package data

import "errors"

var ErrConstraintViolation = errors.New("constraint violation")
