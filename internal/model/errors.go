package model

import "errors"

// Sentinel errors used across layers for stable error mapping.
var (
	// ErrValidation indicates malformed input: bad email, wrong code.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an unknown user, token, or pending link.
	ErrNotFound = errors.New("not found")
)
