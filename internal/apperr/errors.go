// Package apperr defines sentinel errors shared across the application.
package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrNoMarker = errors.New("no index marker in note")
)
