package service

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed caller input. It is raised before any
// network call is attempted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Reason
}

// UpstreamError reports failure of the one mandatory registry lookup of an
// operation. Optional lookups never surface here; they degrade silently.
type UpstreamError struct {
	DOI string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream lookup failed for %s: %v", e.DOI, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsValidation returns true if the error is a caller-input problem.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsUpstream returns true if the error is a failed mandatory registry lookup.
func IsUpstream(err error) bool {
	var u *UpstreamError
	return errors.As(err, &u)
}
