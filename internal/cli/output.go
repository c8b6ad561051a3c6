package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/thingstodo/internal/codec"
	"github.com/roach88/thingstodo/internal/history"
	"github.com/roach88/thingstodo/internal/input"
	"github.com/roach88/thingstodo/internal/persist"
	"github.com/roach88/thingstodo/internal/todo"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // A codec, scenario, or self-test failed
	ExitCommandError = 2 // Bad input, missing files, unreadable data
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		if e.Message == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// ErrorCode maps an error to the code reported in JSON responses.
func ErrorCode(err error) string {
	if code := todo.CodeOf(err); code != "" {
		return string(code)
	}

	var inputErr *input.Error
	if errors.As(err, &inputErr) {
		if inputErr.Kind == input.InvalidCommand {
			return "INVALID_COMMAND"
		}
		return "INVALID_ARGUMENT"
	}

	var codecErr *codec.Error
	switch {
	case errors.As(err, &codecErr):
		return "CODEC_ERROR"
	case errors.Is(err, persist.ErrNotFound):
		return "FILE_NOT_FOUND"
	case errors.Is(err, history.ErrRunNotFound):
		return "RUN_NOT_FOUND"
	}
	return "ERROR"
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "NOT_FOUND", "E_BENCH_FAILED", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Emit prints text in text mode and data in JSON mode.
func (f *OutputFormatter) Emit(text string, data any) error {
	if f.Format == "json" {
		return f.Success(data)
	}
	if text != "" {
		fmt.Fprintln(f.Writer, text)
	}
	return nil
}

// Report outputs a result that carries its own pass/fail verdict. In JSON
// mode a failing result becomes an error response that still includes data.
func (f *OutputFormatter) Report(text string, data any, failure *CLIError) error {
	if f.Format != "json" {
		if text != "" {
			fmt.Fprintln(f.Writer, text)
		}
		return nil
	}
	if failure == nil {
		return f.Success(data)
	}
	return f.encode(CLIResponse{Status: "error", Data: data, Error: failure})
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Fail reports err and returns it as an ExitError with ExitCommandError.
// Text mode leaves printing to the caller of Execute.
func (f *OutputFormatter) Fail(err error) error {
	var exitErr *ExitError
	errors.As(err, &exitErr)
	if f.Format == "json" {
		if encErr := f.Error(ErrorCode(err), err.Error(), nil); encErr != nil {
			return encErr
		}
	}
	if exitErr != nil {
		return exitErr
	}
	return WrapExitError(ExitCommandError, "", err)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	encoder := json.NewEncoder(f.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resp)
}
