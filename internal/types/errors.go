package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for planner errors.
type ErrorCode string

// Temporal network error codes
const (
	STN_INCONSISTENT        ErrorCode = "STN_INCONSISTENT"
	STN_UNKNOWN_TIME_POINT  ErrorCode = "STN_UNKNOWN_TIME_POINT"
	STN_INVALID_CONSTRAINT  ErrorCode = "STN_INVALID_CONSTRAINT"
	SCHEDULE_CYCLE_DETECTED ErrorCode = "SCHEDULE_CYCLE_DETECTED"
)

// Refinement error codes
const (
	NO_APPLICABLE_METHOD       ErrorCode = "NO_APPLICABLE_METHOD"
	ACTION_PRECONDITION_UNMET  ErrorCode = "ACTION_PRECONDITION_UNMET"
	ACTION_EXECUTION_FAILED    ErrorCode = "ACTION_EXECUTION_FAILED"
	ACTION_BLACKLISTED         ErrorCode = "ACTION_BLACKLISTED"
	GOAL_NOT_ESTABLISHED       ErrorCode = "GOAL_NOT_ESTABLISHED"
	NO_VIABLE_BACKTRACK_POINT  ErrorCode = "NO_VIABLE_BACKTRACK_POINT"
	PLANNING_DEADLINE_EXCEEDED ErrorCode = "PLANNING_DEADLINE_EXCEEDED"
	UNKNOWN_ACTION             ErrorCode = "UNKNOWN_ACTION"
	INVALID_TODO_ITEM          ErrorCode = "INVALID_TODO_ITEM"
)

// Domain registration error codes
const (
	DOMAIN_DUPLICATE_REGISTRATION ErrorCode = "DOMAIN_DUPLICATE_REGISTRATION"
	DOMAIN_INVALID_REGISTRATION   ErrorCode = "DOMAIN_INVALID_REGISTRATION"
)

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// PlannerError represents a structured error with error code, message,
// and optional cause. It supports error wrapping and carries contextual
// key/value pairs for failure diagnosis without re-running with tracing.
type PlannerError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *PlannerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
// This enables using errors.Is() and errors.As() with wrapped errors.
func (e *PlannerError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
// Returns true if target is a PlannerError with the same Code.
func (e *PlannerError) Is(target error) bool {
	var plannerErr *PlannerError
	if errors.As(target, &plannerErr) {
		return e.Code == plannerErr.Code
	}
	return false
}

// WithContext adds contextual information to the error and returns it
// for chaining.
func (e *PlannerError) WithContext(key string, value any) *PlannerError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewError creates a new PlannerError with the given code and message.
func NewError(code ErrorCode, message string) *PlannerError {
	return &PlannerError{
		Code:    code,
		Message: message,
	}
}

// NewErrorf creates a new PlannerError with a formatted message.
func NewErrorf(code ErrorCode, format string, args ...any) *PlannerError {
	return &PlannerError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates a new PlannerError wrapping an underlying cause.
func WrapError(code ErrorCode, message string, cause error) *PlannerError {
	return &PlannerError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err is, or wraps anywhere in its chain, a
// PlannerError with the given code.
func IsCode(err error, code ErrorCode) bool {
	return errors.Is(err, &PlannerError{Code: code})
}
