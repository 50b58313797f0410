package usecase

import "fmt"

// ErrorKind classifies a service failure so handlers can pick an HTTP status
// without parsing messages.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindForbidden
	KindConflict
	KindAmountMismatch
	KindUpstream
	KindInternal
)

type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ErrValidation(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func ErrNotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func ErrForbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

func ErrConflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

func ErrAmountMismatch(msg string) *Error {
	return &Error{Kind: KindAmountMismatch, Msg: msg}
}

func ErrUpstream(msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: err}
}

func ErrInternal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}
