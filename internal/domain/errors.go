package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// ErrLinkExpired marks an access through a share link whose expiry has
	// passed. It maps to 403 at the HTTP layer.
	ErrLinkExpired = errors.New("share link has expired")
)

// ConflictError represents a duplicate-resource conflict with details about
// which resource collided (mobile number, folder name, file name).
type ConflictError struct {
	Message      string
	ResourceType string
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// SizeLimitError is returned when an upload exceeds the configured byte limit.
// Both the limit and the offending size are reported to the caller.
type SizeLimitError struct {
	Limit  int64
	Actual int64
}

// Error implements the error interface
func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("file size %d exceeds the maximum limit of %d bytes", e.Actual, e.Limit)
}

// Is allows errors.Is() to match against ErrValidation
func (e *SizeLimitError) Is(target error) bool {
	return target == ErrValidation
}
