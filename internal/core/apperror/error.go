// Package apperror provides structured error handling following RFC 7807 Problem Details.
// Every workflow failure is an AppError so callers can branch on Code.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeInternal = "INTERNAL_ERROR"
	CodeStorage  = "STORAGE_ERROR"

	CodeValidation = "VALIDATION_ERROR"

	CodeInsufficientStock        = "INSUFFICIENT_STOCK"
	CodeInsufficientStockWarning = "INSUFFICIENT_STOCK_WARNING"
	CodeInvalidTransition        = "INVALID_STATE_TRANSITION"

	CodeUnauthorized     = "UNAUTHORIZED"
	CodePermissionDenied = "PERMISSION_DENIED"

	CodeNotFound  = "NOT_FOUND"
	CodeDuplicate = "DUPLICATE_ENTRY"
)

var statusByCode = map[string]int{
	CodeInternal:                 http.StatusInternalServerError,
	CodeStorage:                  http.StatusInternalServerError,
	CodeValidation:               http.StatusBadRequest,
	CodeInsufficientStock:        http.StatusUnprocessableEntity,
	CodeInsufficientStockWarning: http.StatusConflict,
	CodeInvalidTransition:        http.StatusConflict,
	CodeUnauthorized:             http.StatusUnauthorized,
	CodePermissionDenied:         http.StatusForbidden,
	CodeNotFound:                 http.StatusNotFound,
	CodeDuplicate:                http.StatusConflict,
}

// AppError is the standard error type for the ledger.
type AppError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is derived from Code
	HTTPStatus int `json:"-"`

	// Err is never serialized
	Err error `json:"-"`
}

// New builds an AppError whose status follows from code. Unknown codes map to 500.
func New(code, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail records one key of context, such as the offending field.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any, 4)
	}
	e.Details[key] = value
	return e
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// Field returns the offending field recorded on a validation error.
func (e *AppError) Field() string {
	f, _ := e.Details["field"].(string)
	return f
}

// NewValidation reports bad input.
func NewValidation(message string) *AppError {
	return New(CodeValidation, message)
}

// NewFieldValidation reports bad input pinned to one field.
func NewFieldValidation(field, message string) *AppError {
	return NewValidation(message).WithDetail("field", field)
}

func NewNotFound(entity string, id any) *AppError {
	return New(CodeNotFound, entity+" not found").
		WithDetail("entity", entity).
		WithDetail("id", id)
}

func shortage(code, message, productID string, requested, available int64) *AppError {
	return New(code, message).
		WithDetail("product_id", productID).
		WithDetail("requested", requested).
		WithDetail("available", available)
}

// NewInsufficientStock blocks an outbound movement larger than stock on hand.
func NewInsufficientStock(productID string, requested, available int64) *AppError {
	return shortage(CodeInsufficientStock, "Insufficient stock", productID, requested, available)
}

// NewInsufficientStockWarning is a shortage the caller may override by
// repeating the request with explicit confirmation.
func NewInsufficientStockWarning(productID string, requested, available int64) *AppError {
	return shortage(CodeInsufficientStockWarning,
		"Requested quantity exceeds stock on hand; confirm to proceed",
		productID, requested, available)
}

// NewInvalidTransition reports an operation invoked outside its source states.
func NewInvalidTransition(entity, id, from, operation string) *AppError {
	return New(CodeInvalidTransition, fmt.Sprintf("cannot %s %s in status %s", operation, entity, from)).
		WithDetail("entity", entity).
		WithDetail("id", id).
		WithDetail("status", from).
		WithDetail("operation", operation)
}

func NewPermissionDenied(role string, actions ...string) *AppError {
	return New(CodePermissionDenied, fmt.Sprintf("role %q is not allowed to perform this action", role)).
		WithDetail("role", role).
		WithDetail("required_any", actions)
}

func NewUnauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

// NewDuplicate reports a unique key already in use.
func NewDuplicate(entity, field, value string) *AppError {
	return New(CodeDuplicate, fmt.Sprintf("%s with this %s already exists", entity, field)).
		WithDetail("entity", entity).
		WithDetail("field", field).
		WithDetail("value", value)
}

// NewStorage wraps a persistence failure.
func NewStorage(op string, err error) *AppError {
	return New(CodeStorage, "Document storage failed").
		WithDetail("operation", op).
		WithCause(err)
}

// NewInternal hides err from clients.
func NewInternal(err error) *AppError {
	return New(CodeInternal, "Internal server error").WithCause(err)
}

// AsAppError extracts an AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

func IsNotFound(err error) bool {
	return IsCode(err, CodeNotFound)
}

// GetHTTPStatus returns the status for err; non-AppErrors are 500.
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
