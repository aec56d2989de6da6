package docqa

import (
	"errors"
	"fmt"
)

// General error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Corpus index error codes.
const (
	// EEMPTYCORPUS means no paragraph survived filtering during a build.
	EEMPTYCORPUS = "empty_corpus"

	// ENOTBUILT means the index was queried before a build or load.
	ENOTBUILT = "not_built"

	// ENOTHINGTOSAVE means save was called on an index that was never built.
	ENOTHINGTOSAVE = "nothing_to_save"

	// ECACHENOTFOUND means no cache artifact exists at the requested path.
	ECACHENOTFOUND = "cache_not_found"

	// ECACHECORRUPT means a cache artifact exists but cannot be decoded.
	ECACHECORRUPT = "cache_corrupt"

	// EPROVIDER means the embedding provider failed.
	EPROVIDER = "provider"
)

// Error represents an application-specific error. The optional Err field
// carries the underlying cause and is reachable through errors.Is/As.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("docqa error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("docqa error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with the given code and message that wraps err.
func WrapError(code string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
