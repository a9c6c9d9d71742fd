// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRecipeMode is returned when a recipe mode is not one of the known modes.
	ErrInvalidRecipeMode = errors.New("invalid recipe mode")
)
