// file: internals/features/school/grading/grading_systems/service/errors.go
package service

import "fmt"

// Error taxonomy for the grading engine. Controllers map these onto the
// JSON envelope; storage causes stay server-side.

// ValidationError: missing/malformed field, invalid range, overlapping bands.
type ValidationError struct {
	Msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError: duplicate grading system name.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// ReferentialIntegrityError: delete blocked by live references.
type ReferentialIntegrityError struct {
	Msg string
}

func (e *ReferentialIntegrityError) Error() string { return e.Msg }

// NotFoundError: unknown id.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// StorageError: transaction/infrastructure failure. The cause is logged,
// callers only ever see the opaque message.
type StorageError struct {
	Cause error
}

func (e *StorageError) Error() string { return "operation failed" }

func (e *StorageError) Unwrap() error { return e.Cause }
