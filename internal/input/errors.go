package input

import (
	"errors"
	"fmt"
)

// ErrorKind separates unknown commands from bad arguments.
type ErrorKind string

const (
	InvalidCommand  ErrorKind = "Invalid Command"
	InvalidArgument ErrorKind = "Invalid Argument"
)

// Error is returned for input that cannot become a command.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsInputError reports whether err is an *Error.
func IsInputError(err error) bool {
	var ie *Error
	return errors.As(err, &ie)
}

func badCommand(format string, args ...any) *Error {
	return &Error{Kind: InvalidCommand, Message: fmt.Sprintf(format, args...)}
}

func badArgument(format string, args ...any) *Error {
	return &Error{Kind: InvalidArgument, Message: fmt.Sprintf(format, args...)}
}
