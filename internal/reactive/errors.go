package reactive

import (
	"errors"
	"fmt"
)

// ProtocolError reports a violation of the mutation-session protocol.
// These are programmer errors in the instrumenting wrapper, not data
// problems, so they are raised as panics carrying this type.
type ProtocolError struct {
	// Code identifies the violation category.
	Code ProtocolErrorCode

	// Message is a human-readable description.
	Message string
}

// ProtocolErrorCode categorizes protocol violations.
type ProtocolErrorCode string

const (
	// ErrCodeRecordOutsideSession indicates an elementary change was
	// recorded with no open mutation session.
	ErrCodeRecordOutsideSession ProtocolErrorCode = "RECORD_OUTSIDE_SESSION"

	// ErrCodeUnbalancedSession indicates EndMutation or CancelMutation was
	// called more times than BeginMutation.
	ErrCodeUnbalancedSession ProtocolErrorCode = "UNBALANCED_SESSION"
)

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsProtocolError reports whether err (or anything it wraps) is a
// ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
