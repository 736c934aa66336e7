package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"stockbook/internal/core/apperror"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Domain failure (permission denied, unknown user)
	ExitCommandError = 2 // Command error (bad flags, storage unavailable)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Response is the JSON envelope of every command.
type Response struct {
	Status string     `json:"status"`
	Data   any        `json:"data,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the error part of a JSON response.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Success writes data as JSON, or calls text to render it for humans.
func (f *OutputFormatter) Success(data any, text func(w io.Writer) error) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "ok", Data: data})
	}
	return text(f.Writer)
}

// Error reports err in the configured format.
func (f *OutputFormatter) Error(err error) error {
	body := ErrorBody{Code: apperror.CodeInternal, Message: err.Error()}
	if appErr, ok := apperror.AsAppError(err); ok {
		body = ErrorBody{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details}
	}

	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(Response{Status: "error", Error: &body})
	}
	_, werr := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", body.Code, body.Message)
	return werr
}
