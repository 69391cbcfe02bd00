// Package common defines sentinel errors shared by the directory service
// layers. Callers should use errors.Is to match these values; most of them
// arrive wrapped with context by the layer that raised them.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorDecode     = errors.New("decode error")
	ErrorConnection = errors.New("connection error")

	// Service-level errors.
	ErrorInvalidInput = errors.New("invalid input")
	ErrorTransaction  = errors.New("transaction error")

	// Startup errors.
	ErrorConfiguration = errors.New("configuration error")
)
