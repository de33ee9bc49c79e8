package domain

import (
	"errors"
	"strings"
)

// notFoundError is a specific not-found signal that still matches ErrNotFound.
type notFoundError struct {
	code string
}

func (e *notFoundError) Error() string { return e.code }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// IsNotFound reports whether err is a strict-resolution not-found signal.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
