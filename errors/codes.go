package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Container errors
const (
	// ErrCodeInvalidArgument indicates a caller passed an unusable argument.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeBeanConstructionFailed indicates a bean could not be constructed,
	// wired or initialized.
	ErrCodeBeanConstructionFailed ErrorCode = "BEAN_CONSTRUCTION_FAILED"
	// ErrCodeTeardownHookFailed indicates a pre-destroy hook failed during shutdown.
	ErrCodeTeardownHookFailed ErrorCode = "TEARDOWN_HOOK_FAILED"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidConfig indicates configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Nothing the container reports is fixed by retrying the same call: a failed
// construction is deterministic for a given registration.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeInvalidArgument:        false,
	ErrCodeBeanConstructionFailed: false,
	ErrCodeTeardownHookFailed:     false,
	ErrCodeInternal:               false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
