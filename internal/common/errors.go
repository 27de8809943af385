package common

import (
	"errors"
	"fmt"
)

// FailureKind classifies why an analysis run aborted. Every failure the
// pipeline surfaces carries exactly one kind.
type FailureKind string

const (
	KindUnsupportedFormat     FailureKind = "UNSUPPORTED_FORMAT"
	KindDependencyUnavailable FailureKind = "DEPENDENCY_UNAVAILABLE"
	KindExtractionFailed      FailureKind = "EXTRACTION_FAILED"
	KindMissingInput          FailureKind = "MISSING_INPUT"
	KindTransportExhausted    FailureKind = "TRANSPORT_EXHAUSTED"
	KindMalformedResponse     FailureKind = "MALFORMED_RESPONSE"
	KindValidationError       FailureKind = "VALIDATION_ERROR"
	KindCancelled             FailureKind = "CANCELLED"
)

// AppError is the application error type: a failure kind, a human-readable
// message, and the underlying cause when there is one.
type AppError struct {
	Kind    FailureKind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError builds an AppError for the given kind.
func NewAppError(kind FailureKind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

// Errorf builds an AppError with a formatted message and no cause.
func Errorf(kind FailureKind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind from err, unwrapping as needed.
// Returns "" when err carries no AppError.
func KindOf(err error) FailureKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}

// IsKind reports whether err carries the given failure kind.
func IsKind(err error, kind FailureKind) bool {
	return KindOf(err) == kind
}

// WrapError wraps err with a message, preserving the chain.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
