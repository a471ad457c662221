package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrNoCredential indicates no credential has been stored yet
	ErrNoCredential = errors.New("no credential available")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorage indicates a datastore read or write failed
	ErrStorage = errors.New("storage failure")
)
