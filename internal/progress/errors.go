package progress

import (
	"errors"
	"fmt"
)

// Kind classifies a progress bar error.
type Kind int

const (
	// KindMissingArgument means a required argument was not supplied.
	KindMissingArgument Kind = iota + 1
	// KindArgumentType means a value could not be read as the expected type.
	KindArgumentType
	// KindInvalidProgress means current/max violate 0 <= current <= max, max > 0.
	KindInvalidProgress
	// KindInvalidAppearance means a placement is unsupported or collides with another.
	KindInvalidAppearance
	// KindInvalidCharacter means a glyph or label is not printable ASCII,
	// or the fill glyphs are identical.
	KindInvalidCharacter
	// KindInvalidValue means a generic value is out of range.
	KindInvalidValue
	// KindInvalidSize means the bar does not fit in the terminal.
	KindInvalidSize
)

var kindNames = map[Kind]string{
	KindMissingArgument:   "missing argument",
	KindArgumentType:      "argument type",
	KindInvalidProgress:   "invalid progress",
	KindInvalidAppearance: "invalid appearance",
	KindInvalidCharacter:  "invalid character",
	KindInvalidValue:      "invalid value",
	KindInvalidSize:       "invalid size",
}

// String returns the lower-case name used in error messages.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is returned by every validating operation in this package.
// Field names the offending setting and Value carries what was rejected.
type Error struct {
	Kind   Kind
	Field  string
	Value  any
	Reason string
}

// Sentinels for errors.Is; they match any *Error of the same Kind.
var (
	ErrMissingArgument   = &Error{Kind: KindMissingArgument}
	ErrArgumentType      = &Error{Kind: KindArgumentType}
	ErrInvalidProgress   = &Error{Kind: KindInvalidProgress}
	ErrInvalidAppearance = &Error{Kind: KindInvalidAppearance}
	ErrInvalidCharacter  = &Error{Kind: KindInvalidCharacter}
	ErrInvalidValue      = &Error{Kind: KindInvalidValue}
	ErrInvalidSize       = &Error{Kind: KindInvalidSize}
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s=%v", msg, e.Field, e.Value)
	}
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

func newError(kind Kind, field string, value any, reason string) error {
	return &Error{Kind: kind, Field: field, Value: value, Reason: reason}
}
