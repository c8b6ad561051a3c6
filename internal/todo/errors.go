package todo

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes command errors.
type ErrorCode string

const (
	// ErrCodeAlreadyExists indicates an add targeted a name already present.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// ErrCodeNotFound indicates a remove or edit referenced an absent name.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeInputInvalid indicates structurally invalid input (empty name).
	ErrCodeInputInvalid ErrorCode = "INPUT_INVALID"

	// ErrCodeCollision indicates a strict edit would overwrite another item.
	ErrCodeCollision ErrorCode = "COLLISION"
)

// CommandError is the single error type returned by store operations.
type CommandError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Name is the item the command referenced, if any.
	Name string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s (name=%q)", e.Code, e.Message, e.Name)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsAlreadyExists reports whether err is an ALREADY_EXISTS command error.
func IsAlreadyExists(err error) bool {
	return hasCode(err, ErrCodeAlreadyExists)
}

// IsNotFound reports whether err is a NOT_FOUND command error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsInputInvalid reports whether err is an INPUT_INVALID command error.
func IsInputInvalid(err error) bool {
	return hasCode(err, ErrCodeInputInvalid)
}

// IsCollision reports whether err is a COLLISION command error.
func IsCollision(err error) bool {
	return hasCode(err, ErrCodeCollision)
}

// CodeOf returns the error code of a wrapped CommandError, or "" if err is
// not one.
func CodeOf(err error) ErrorCode {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

func errAlreadyExists(name string) *CommandError {
	return &CommandError{
		Code:    ErrCodeAlreadyExists,
		Message: "item already exists with that name",
		Name:    name,
	}
}

func errNotFound(name string) *CommandError {
	return &CommandError{
		Code:    ErrCodeNotFound,
		Message: "item with that name not found",
		Name:    name,
	}
}

// InputInvalid builds an INPUT_INVALID error carrying reason.
func InputInvalid(reason string) *CommandError {
	return &CommandError{
		Code:    ErrCodeInputInvalid,
		Message: "input invalid, " + reason,
	}
}

func errCollision(name string) *CommandError {
	return &CommandError{
		Code:    ErrCodeCollision,
		Message: "edit target already exists",
		Name:    name,
	}
}
