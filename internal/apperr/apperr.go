// Package apperr defines the error taxonomy shared by the catalog and stock
// services. Every failure surfaced to a caller is one of these kinds; the
// discriminant drives HTTP mapping and retry policy.
package apperr

import "errors"

type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindDuplicate         Kind = "duplicate"
	KindConflict          Kind = "conflict"
	KindInsufficientStock Kind = "insufficient_stock"
	KindTransientConflict Kind = "transient_conflict"
	KindInternal          Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string

	// Fields carries the per-field messages of a validation failure,
	// keyed by input field name.
	Fields map[string]string

	// CurrentQuantity carries the on-hand amount when a withdrawal is
	// rejected for insufficient stock.
	CurrentQuantity *int
}

func (e *Error) Error() string {
	return e.Message
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "invalid input", Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Duplicate(message string) *Error {
	return &Error{Kind: KindDuplicate, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func InsufficientStock(message string, current int) *Error {
	return &Error{Kind: KindInsufficientStock, Message: message, CurrentQuantity: &current}
}

func TransientConflict(message string) *Error {
	return &Error{Kind: KindTransientConflict, Message: message}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// KindOf extracts the kind of err, or KindInternal for anything outside the
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is lets errors.Is match two apperr values by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}
