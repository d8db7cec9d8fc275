package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores and identity providers for a missing id.
var ErrNotFound = errors.New("not found")

type ErrorKind string

const (
	KindUnauthenticated  ErrorKind = "unauthenticated"
	KindPermissionDenied ErrorKind = "permission-denied"
	KindInvalidArgument  ErrorKind = "invalid-argument"
	KindInternal         ErrorKind = "internal"
)

// Error is what request operations return to callers. Err is only logged.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func Unauthenticated(msg string) error  { return &Error{Kind: KindUnauthenticated, Msg: msg} }
func PermissionDenied(msg string) error { return &Error{Kind: KindPermissionDenied, Msg: msg} }
func InvalidArgument(msg string) error  { return &Error{Kind: KindInvalidArgument, Msg: msg} }
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf reports the kind of err; errors not built here are internal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
