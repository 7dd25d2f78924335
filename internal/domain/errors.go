package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrLocationNotFound = errors.New("location not found")
)

// LocationError is returned when every geocoding strategy failed for Input.
type LocationError struct {
	Input string
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("could not determine location for %s", e.Input)
}

func (e *LocationError) Unwrap() error { return ErrLocationNotFound }
