package service

import (
	"errors"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError carries every constraint violation found on a record, so
// the caller sees the full list in one round trip.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}
