package models

import "fmt"

type AppErrorKind string

// AppError is the structured failure surfaced to the caller for org-level
// and input errors. Layout-level parse failures are downgraded to a row
// status and never reach the caller as an AppError.
type AppError struct {
	Kind AppErrorKind
	Err  error
}

const (
	ErrCredential      AppErrorKind = "no usable session for the requested org"
	ErrProtocol        AppErrorKind = "unexpected response from the metadata service"
	ErrRetrieveFailed  AppErrorKind = "metadata retrieve reported failure"
	ErrRetrieveTimeout AppErrorKind = "metadata retrieve did not complete within the deadline"
	ErrLayoutParse     AppErrorKind = "could not parse layout xml"
	ErrInvalidInput    AppErrorKind = "invalid input"
)

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with the given kind. err may be nil when the kind
// alone carries the whole message.
func NewAppError(kind AppErrorKind, err error) *AppError {
	return &AppError{Kind: kind, Err: err}
}

// ErrorKind extracts the AppErrorKind from err, or "" when err is not an
// AppError anywhere in its chain.
func ErrorKind(err error) AppErrorKind {
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			return appErr.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
