package scopes

import "errors"

var (
	// ErrInvalidScopePath is returned when a scope path lacks a resource or action part.
	ErrInvalidScopePath = errors.New("scopes: invalid scope path")
)
