package models

import (
	"errors"
	"fmt"
)

// Common errors returned by the repositories
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrReferenced     = errors.New("record is referenced by other records")

	ErrAlreadyPaid           = errors.New("order already paid")
	ErrRedemptionLimit       = errors.New("coupon redemption limit reached")
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

// ErrorKind classifies a business error so the transport layer can pick a status code
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindBadRequest
	KindUnauthenticated
	KindUnauthorized
	KindConflict
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindUnauthorized:
		return "unauthorized"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// AppError is a terminal, user-facing failure of a request
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches any AppError of the same kind, so errors.Is(err, &AppError{Kind: KindNotFound}) works
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newAppError(kind ErrorKind, format string, args ...any) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a not-found error
func NotFound(format string, args ...any) *AppError {
	return newAppError(KindNotFound, format, args...)
}

// BadRequest creates a bad-request error
func BadRequest(format string, args ...any) *AppError {
	return newAppError(KindBadRequest, format, args...)
}

// Unauthenticated creates an authentication failure
func Unauthenticated(format string, args ...any) *AppError {
	return newAppError(KindUnauthenticated, format, args...)
}

// Unauthorized creates a permission failure
func Unauthorized(format string, args ...any) *AppError {
	return newAppError(KindUnauthorized, format, args...)
}

// Conflict creates a conflict error
func Conflict(format string, args ...any) *AppError {
	return newAppError(KindConflict, format, args...)
}

// KindOf returns the kind of err when it wraps an AppError, zero otherwise
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}
