package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// ValidationError represents a single failed field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios
var (
	ErrDatasetNotFound   = New(http.StatusNotFound, "DATASET_NOT_FOUND", "Merged dataset not found; run the pipeline first")
	ErrOperationNotFound = New(http.StatusNotFound, "OPERATION_NOT_FOUND", "Operation not found")
	ErrOperationRunning  = New(http.StatusConflict, "OPERATION_RUNNING", "A pipeline operation is already running")
)

// ErrValidation creates a field-level validation error
func ErrValidation(field, message string) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		fmt.Sprintf("Validation failed for field: %s", field),
		[]ValidationError{{Field: field, Message: message}},
	)
}

// ErrValidationMultiple creates an error carrying several failed fields
func ErrValidationMultiple(errs []ValidationError) *APIError {
	return NewWithDetails(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"Request validation failed",
		errs,
	)
}
