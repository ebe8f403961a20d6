package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can map them to a response without probing fields.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindDuplicate
	KindNotFound
	KindOwnerMissing
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicate:
		return "duplicate"
	case KindNotFound:
		return "not_found"
	case KindOwnerMissing:
		return "owner_missing"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is the tagged failure returned by the validator, the service and the repositories.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError reports malformed or missing client input.
func ValidationError(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// DuplicateError reports a unique constraint conflict.
func DuplicateError(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing record that was looked up directly.
func NotFoundError(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// OwnerMissingError reports an exercise whose owner does not exist.
func OwnerMissingError(ownerID int64) *Error {
	return &Error{Kind: KindOwnerMissing, Message: fmt.Sprintf("The user with the id %d does not exist!", ownerID)}
}

// StorageError wraps a driver or I/O failure raised while running op.
func StorageError(op string, err error) *Error {
	return &Error{Kind: KindStorage, Message: op + " failed", Err: err}
}

// KindOf returns the kind carried by err, or 0 when err is not a *Error.
func KindOf(err error) ErrorKind {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return 0
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
