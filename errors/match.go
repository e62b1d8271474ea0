package errors

import (
	stderrors "errors"
)

// IsEnvError checks if an error is an EnvError.
func IsEnvError(err error) bool {
	var envErr *EnvError
	return stderrors.As(err, &envErr)
}

// AsEnvError converts an error to an EnvError if possible.
func AsEnvError(err error) (*EnvError, bool) {
	var envErr *EnvError
	if stderrors.As(err, &envErr) {
		return envErr, true
	}
	return nil, false
}

// IsMissing reports whether err is the missing-value variant.
func IsMissing(err error) bool {
	return stderrors.Is(err, ErrMissing)
}

// CodeOf returns the code of the first EnvError in err's chain, or an
// empty code.
func CodeOf(err error) ErrorCode {
	if envErr, ok := AsEnvError(err); ok {
		return envErr.Code
	}
	return ""
}
