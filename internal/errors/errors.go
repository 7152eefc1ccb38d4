package errors

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/render"
)

// APIError is an error that already knows how it should be answered over HTTP
type APIError struct {
	StatusCode int    `json:"-"`
	ErrorCode  string `json:"code"`
	Message    string `json:"message"`
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

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// Predefined errors for the router and middleware
var (
	ErrInvalidRequest     = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrNotFound           = New(http.StatusNotFound, "NOT_FOUND", "Not found")
	ErrMethodNotAllowed   = New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	ErrRateLimitExceeded  = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrInternalServer     = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
	ErrServiceUnavailable = New(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
	ErrRequestTimeout     = New(http.StatusGatewayTimeout, "REQUEST_TIMEOUT", "The request took too long to process and was cancelled")
)

// ErrorResponse is the JSON body of every error answered by the ErrorHandler
type ErrorResponse struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`

	status int
}

// NewErrorResponse creates the response body for err
func NewErrorResponse(err *APIError, requestID string) *ErrorResponse {
	return &ErrorResponse{
		Message:   err.Message,
		Code:      err.ErrorCode,
		RequestID: requestID,
		status:    err.StatusCode,
	}
}

// Render implements the render.Renderer interface
func (e *ErrorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.status)
	return nil
}

// PanicError wraps a value recovered from a panic together with the stack of
// the goroutine that panicked.
type PanicError struct {
	Value any
	Stack string
}

// NewPanicError captures the current stack. Call it from the deferred
// function that recovered.
func NewPanicError(recovered any) *PanicError {
	return &PanicError{
		Value: recovered,
		Stack: string(debug.Stack()),
	}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// StackTrace returns the stack captured at recovery.
func (e *PanicError) StackTrace() string {
	return e.Stack
}

// Unwrap exposes a recovered error value to errors.Is and errors.As.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
