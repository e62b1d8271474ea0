package errors

import (
	"fmt"
)

// EnvError is the unified environment validation error type.
type EnvError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Key is the environment variable the error belongs to.
	Key string `json:"key"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *EnvError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("%s: %s", e.Key, e.Message)
	}
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause of the error.
func (e *EnvError) Unwrap() error { return e.Cause }

// Is reports whether target is an *EnvError with the same code. A target
// with an empty key matches any key, so package-level sentinels such as
// ErrMissing work with errors.Is.
func (e *EnvError) Is(target error) bool {
	t, ok := target.(*EnvError)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Key == "" || t.Key == e.Key
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *EnvError) WithCause(cause error) *EnvError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *EnvError) WithDetail(key string, value any) *EnvError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new EnvError.
func New(code ErrorCode, key, message string) *EnvError {
	return &EnvError{
		Code:    code,
		Key:     key,
		Message: message,
	}
}

// Sentinels for errors.Is checks.
var (
	ErrMissing       = &EnvError{Code: ErrCodeMissingRequired}
	ErrMalformedSpec = &EnvError{Code: ErrCodeMalformedSpec}
	ErrNotInChoices  = &EnvError{Code: ErrCodeNotInChoices}
)

// --- Constructors ---

// MalformedSpec creates an error for a spec that cannot be evaluated.
func MalformedSpec(key string) *EnvError {
	return New(ErrCodeMalformedSpec, key, fmt.Sprintf("invalid spec for %q: no parse function", key))
}

// Missing creates the missing-value variant. description is the
// human-readable summary of the spec and may be empty.
func Missing(key, description string) *EnvError {
	msg := "is required but not set"
	if description != "" {
		msg = fmt.Sprintf("%s (%s)", msg, description)
	}
	e := New(ErrCodeMissingRequired, key, msg)
	if description != "" {
		e.WithDetail("description", description)
	}
	return e
}

// InvalidChoiceSet creates an error for a choices list holding duplicates.
func InvalidChoiceSet(key string, duplicate any) *EnvError {
	return New(ErrCodeInvalidChoiceSet, key, fmt.Sprintf("choices must be unique, %v is listed more than once", duplicate)).
		WithDetail("duplicate", duplicate)
}

// NotInChoices creates an error for a value outside the declared choices.
// Pass redact to keep the value out of the message.
func NotInChoices(key string, value any, choices []any, redact bool) *EnvError {
	if redact {
		return New(ErrCodeNotInChoices, key, "value not in choices")
	}
	return New(ErrCodeNotInChoices, key, fmt.Sprintf("value %q not in choices %v", fmt.Sprint(value), choices)).
		WithDetail("choices", choices)
}

// NullAfterParse creates an error for a parser that produced a nil value.
func NullAfterParse(key string) *EnvError {
	return New(ErrCodeNullAfterParse, key, "invalid value, parser returned nil")
}

// InvalidValue wraps a parser failure. Pass redact to drop the parser's
// message, which usually quotes the raw input.
func InvalidValue(key string, cause error, redact bool) *EnvError {
	if redact {
		return New(ErrCodeInvalidValue, key, "invalid value")
	}
	return New(ErrCodeInvalidValue, key, cause.Error()).WithCause(cause)
}

// UnknownKey creates an error for a raw key that no spec declares.
func UnknownKey(key string) *EnvError {
	return New(ErrCodeUnknownKey, key, "is set but not declared")
}
