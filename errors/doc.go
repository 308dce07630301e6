// Package errors provides the structured error type shared by beankit
// packages. Errors carry a machine-readable code, a human-readable (possibly
// localized) message, optional details, and the underlying cause.
package errors
