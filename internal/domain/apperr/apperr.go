// Package apperr is the error taxonomy shared by every domain package.
//
// Domain packages declare their sentinel errors with the constructors below
// and wrap them with fmt.Errorf("...: %w", err) when they need context. The
// HTTP layer only looks at the Kind, so a new sentinel never needs a new
// branch in the handlers.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindUnauthenticated
	KindPermissionDenied
	KindNotFound
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// Is matches on Code so a sentinel still matches after WithField copies it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Kind == t.Kind
}

// WithField returns a copy carrying one more field-level detail.
func (e *Error) WithField(field, message string) *Error {
	fields := make(map[string]string, len(e.Fields)+1)
	for key, value := range e.Fields {
		fields[key] = value
	}
	fields[field] = message
	return &Error{Kind: e.Kind, Code: e.Code, Message: e.Message, Fields: fields}
}

func Unauthenticated(code, message string) *Error {
	return &Error{Kind: KindUnauthenticated, Code: code, Message: message}
}

func PermissionDenied(code, message string) *Error {
	return &Error{Kind: KindPermissionDenied, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

// Invalid builds a field-level validation error with the shared
// "validation_failed" code.
func Invalid(field, message string) *Error {
	return ErrValidationFailed.WithField(field, message)
}

var ErrValidationFailed = Validation("validation_failed", "invalid input")

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// KindOf reports the kind of err, KindInternal when err is not classified.
func KindOf(err error) Kind {
	if target, ok := As(err); ok {
		return target.Kind
	}
	return KindInternal
}

// Validator accumulates field errors so one response can report all of them.
type Validator struct {
	fields map[string]string
}

func (v *Validator) Check(ok bool, field, message string) {
	if ok {
		return
	}
	if v.fields == nil {
		v.fields = make(map[string]string)
	}
	if _, exists := v.fields[field]; exists {
		return
	}
	v.fields[field] = message
}

func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &Error{
		Kind:    ErrValidationFailed.Kind,
		Code:    ErrValidationFailed.Code,
		Message: ErrValidationFailed.Message,
		Fields:  v.fields,
	}
}
