package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// CodeValidation indicates structurally invalid input: a nil document,
	// a reserved-field collision, or a malformed predicate path.
	CodeValidation ErrorCode = "VALIDATION"

	// CodeStorage indicates the backing file is present but unparsable, or
	// its parent directory is absent.
	CodeStorage ErrorCode = "STORAGE"

	// CodeNotFound indicates a point read or delete referenced an ID that
	// is not stored.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeIDGeneration indicates identifier collision retries were
	// exhausted.
	CodeIDGeneration ErrorCode = "ID_GENERATION"
)

// Error is the store's error type. Code identifies the category, ID names
// the affected document where one exists, and Err carries the underlying
// cause for errors.Is/As chains.
type Error struct {
	Code    ErrorCode
	Message string
	ID      string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s (id=%s)", e.Code, e.Message, e.ID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a not-found store error.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsValidation reports whether err is a validation store error.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// IsStorage reports whether err is a storage store error.
func IsStorage(err error) bool {
	return hasCode(err, CodeStorage)
}

// IsIDGeneration reports whether err is an ID-generation store error.
func IsIDGeneration(err error) bool {
	return hasCode(err, CodeIDGeneration)
}

func hasCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

func validationError(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func storageError(message string, err error) *Error {
	return &Error{Code: CodeStorage, Message: message, Err: err}
}

func notFoundError(id string) *Error {
	return &Error{Code: CodeNotFound, Message: "no document with that id", ID: id}
}

func idGenerationError(err error) *Error {
	return &Error{Code: CodeIDGeneration, Message: "could not assign a unique id", Err: err}
}
