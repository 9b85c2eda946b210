// Package common defines sentinel errors shared by the cellar layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// user input errors
	ErrorInvalidInput = errors.New("invalid input")

	// settings errors
	ErrorNotConfigured = errors.New("not configured")
)
