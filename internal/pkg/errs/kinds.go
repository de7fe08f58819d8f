package errs

import (
	"errors"
	"fmt"
)

// Kind classifies business-rule violations so callers can branch on the
// category instead of matching message strings.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindInvalidArgument   Kind = "INVALID_ARGUMENT"
	KindInvalidState      Kind = "INVALID_STATE"
	KindConflict          Kind = "CONFLICT"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
)

type KindError struct {
	kind    Kind
	msg     string
	details any
	err     error
}

func (e *KindError) Error() string {
	if e.err != nil {
		return string(e.kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.kind) + ": " + e.msg
}

func (e *KindError) Unwrap() error {
	return e.err
}

func (e *KindError) Kind() Kind {
	return e.kind
}

// Details returns the payload attached at construction time, such as the
// shortages map carried by insufficient-stock failures.
func (e *KindError) Details() any {
	return e.details
}

func E(kind Kind, msg string) error {
	return &KindError{kind: kind, msg: msg}
}

func Ef(kind Kind, format string, args ...any) error {
	return &KindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func WithDetails(kind Kind, msg string, details any) error {
	return &KindError{kind: kind, msg: msg, details: details}
}

func WrapKind(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &KindError{kind: kind, msg: msg, err: err}
}

func KindOf(err error) (Kind, bool) {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.kind, true
	}
	return "", false
}

func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func DetailsOf(err error) any {
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.details
	}
	return nil
}
