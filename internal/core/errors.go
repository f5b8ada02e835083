package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when input is blank after trimming.
	ErrEmptyInput = errors.New("url is required")
	// ErrInvalidFormat is returned when input fails the URL pattern.
	ErrInvalidFormat = errors.New("invalid url format")
	// ErrNotFound is returned when a well-formed URL is not in the known list.
	ErrNotFound = errors.New("url does not exist")
)

// ProviderError wraps a failure to fetch the known-URL list.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps err with the provider name; nil stays nil.
func NewProviderError(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}
