package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures so handlers can map them to distinct
// responses: bad input, conflicting state, failed re-authentication, missing
// records, and storage failures that forced a rollback.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindUnauthorized
	KindNotFound
	KindConsistency
)

// Error is a classified service failure with a human-readable reason.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the classification, defaulting to consistency for
// unclassified errors (storage failures and the like).
func KindOf(err error) ErrorKind {
	var serr *Error
	if errors.As(err, &serr) {
		return serr.Kind
	}
	return KindConsistency
}

func validationErr(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func conflictErr(format string, args ...interface{}) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func unauthorizedErr(format string, args ...interface{}) error {
	return &Error{Kind: KindUnauthorized, Msg: fmt.Sprintf(format, args...)}
}

func notFoundErr(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func consistencyErr(msg string, cause error) error {
	return &Error{Kind: KindConsistency, Msg: msg, Err: cause}
}
