package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// Session errors
	ErrAuthRequired = errors.New("authentication required")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Resource errors
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Store errors
	ErrStore = errors.New("store error")
)

// Not found errors for the single-row fetches
var (
	ErrProfileNotFound = NewNotFoundError("profile not found")
	ErrPostNotFound    = NewNotFoundError("post not found")
	ErrClubNotFound    = NewNotFoundError("club not found")
)

// NewNotFoundError creates a new custom error for resource not found with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError reports a rejected field before any store round trip.
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// ForeignKeyViolation is the SQLSTATE both stores attach to a missing
// referenced row.
const ForeignKeyViolation = "23503"

// NewForeignKeyError reports a reference to a missing row through the named
// constraint. It matches ErrNotFound.
func NewForeignKeyError(constraint, message string) *CustomError {
	return NewCustomError(ErrNotFound, message).
		WithCode(ForeignKeyViolation).
		WithDetails(map[string]interface{}{"constraint": constraint})
}

// Constraint names the violated constraint of a foreign-key error, or "".
func Constraint(err error) string {
	var ce *CustomError
	if !errors.As(err, &ce) || ce.Code != ForeignKeyViolation {
		return ""
	}
	name, _ := ce.Details["constraint"].(string)
	return name
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// StoreError is a transport, permission or constraint failure reported by the
// store. Message carries the store's own text so it can be shown verbatim.
type StoreError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

// Error returns the store message verbatim.
func (e *StoreError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return ErrStore.Error()
}

// Unwrap exposes the driver error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStore) match any StoreError.
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// NewStoreError wraps err as a StoreError for operation op.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Message: err.Error(), Err: err}
}

// FieldOf returns the offending field of a validation error, if any.
func FieldOf(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}

// Describe renders err for logs as "op: message" when it is a StoreError.
func Describe(err error) string {
	var se *StoreError
	if errors.As(err, &se) && se.Op != "" {
		return fmt.Sprintf("%s: %s", se.Op, se.Error())
	}
	return err.Error()
}
