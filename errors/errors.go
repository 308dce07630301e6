package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable, possibly localized, error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// HasCode reports whether err, or any error it wraps, is an AppError with code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// --- Common Error Constructors ---

// InvalidArgument creates a new AppError for an unusable argument.
func InvalidArgument(argument, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("Invalid %s: %s", argument, reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"argument": argument},
	}
}

// BeanConstructionFailed creates a new AppError for a bean that could not be
// built. message is the rendered user-facing text.
func BeanConstructionFailed(bean, message string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeBeanConstructionFailed, Message: message,
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"bean": bean}, Cause: cause,
	}
}

// TeardownHookFailed creates a new AppError for a failed pre-destroy hook.
func TeardownHookFailed(bean, message string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTeardownHookFailed, Message: message,
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"bean": bean}, Cause: cause,
	}
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// InvalidConfig creates a new AppError for configuration that failed validation.
func InvalidConfig(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: reason,
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
