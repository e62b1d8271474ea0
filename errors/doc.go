// Package errors provides the error model for environment validation.
//
// Every failure produced while cleaning an environment is an *EnvError
// carrying a machine-readable ErrorCode, the variable it belongs to and a
// human-readable message. Missing-value failures are a variant of the same
// type and can be detected with IsMissing or errors.Is(err, ErrMissing).
package errors
