package orcid

import (
	"errors"
	"fmt"
)

// Common errors returned by the ORCID client.
var (
	// ErrNotFound indicates the ORCID iD does not exist.
	ErrNotFound = errors.New("iD not found in ORCID")

	// ErrInvalidID indicates a malformed ORCID iD.
	ErrInvalidID = errors.New("invalid ORCID iD")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error communicating with ORCID")

	// ErrInvalidResponse indicates an unexpected API response.
	ErrInvalidResponse = errors.New("invalid response from ORCID")
)

// APIError represents an error from the ORCID public API.
type APIError struct {
	StatusCode int
	Message    string
	ID         string // For context in person-related errors
}

func (e *APIError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("ORCID API error (status %d): %s (id: %s)", e.StatusCode, e.Message, e.ID)
	}
	return fmt.Sprintf("ORCID API error (status %d): %s", e.StatusCode, e.Message)
}

// IsNotFound returns true if the error indicates an iD was not found.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}
