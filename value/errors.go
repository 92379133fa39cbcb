package value

import (
	"errors"
	"fmt"
)

// Sentinel errors making up the shared taxonomy of spec.md §4.1. The
// typed errors below unwrap to one of these, and the escape codec wraps
// them with fmt.Errorf("%w: ...", ...), so callers can dispatch on kind
// with errors.Is without caring about the formatted message, the way the
// teacher's token package wraps ErrDocBalance / ErrUnsupported / etc.
var (
	ErrWrongType             = errors.New("wrong value type")
	ErrKeyDoesNotExist       = errors.New("key does not exist")
	ErrIndexOutOfBounds      = errors.New("array index out of bounds")
	ErrEmptyKey              = errors.New("table key is empty")
	ErrArrayEmpty            = errors.New("array is empty")
	ErrArrayWrongElementType = errors.New("array element has incompatible type")
	ErrNameContainsInvalidChars = errors.New("name contains invalid characters")
	ErrInvalidEscape          = errors.New("invalid escape sequence")
	ErrInvalidUTF8            = errors.New("invalid UTF-8")
)

// WrongTypeError is returned by typed accessors on a mismatched [Value]
// kind. It carries both the kind the caller asked for and the kind that
// was actually stored, per spec.md §4.1.
type WrongTypeError struct {
	Expected Kind
	Actual   Kind
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("%v: expected %v, got %v", ErrWrongType, e.Expected, e.Actual)
}

func (e *WrongTypeError) Unwrap() error { return ErrWrongType }

// WrongType constructs a [WrongTypeError].
func WrongType(expected, actual Kind) error {
	return &WrongTypeError{Expected: expected, Actual: actual}
}

// KeyDoesNotExistError is returned by table lookups on a missing key.
type KeyDoesNotExistError struct {
	Key string
}

func (e *KeyDoesNotExistError) Error() string {
	return fmt.Sprintf("%v: %q", ErrKeyDoesNotExist, e.Key)
}

func (e *KeyDoesNotExistError) Unwrap() error { return ErrKeyDoesNotExist }

// KeyDoesNotExist constructs a [KeyDoesNotExistError].
func KeyDoesNotExist(key string) error {
	return &KeyDoesNotExistError{Key: key}
}

// IndexOutOfBoundsError is returned by array lookups on an out-of-range
// index. Len is the array's actual length at the time of the access.
type IndexOutOfBoundsError struct {
	Index int
	Len   int
}

func (e *IndexOutOfBoundsError) Error() string {
	return fmt.Sprintf("%v: index %d, length %d", ErrIndexOutOfBounds, e.Index, e.Len)
}

func (e *IndexOutOfBoundsError) Unwrap() error { return ErrIndexOutOfBounds }

// IndexOutOfBounds constructs an [IndexOutOfBoundsError].
func IndexOutOfBounds(index, length int) error {
	return &IndexOutOfBoundsError{Index: index, Len: length}
}

// ArrayWrongElementTypeError is returned when pushing/inserting a value
// whose kind is incompatible with an array's existing element kind.
type ArrayWrongElementTypeError struct {
	Expected Kind
	Actual   Kind
}

func (e *ArrayWrongElementTypeError) Error() string {
	return fmt.Sprintf("%v: array holds %v, got %v", ErrArrayWrongElementType, e.Expected, e.Actual)
}

func (e *ArrayWrongElementTypeError) Unwrap() error { return ErrArrayWrongElementType }

// ArrayWrongElementType constructs an [ArrayWrongElementTypeError].
func ArrayWrongElementType(expected, actual Kind) error {
	return &ArrayWrongElementTypeError{Expected: expected, Actual: actual}
}

// NameContainsInvalidCharsError is returned when a table key contains a
// raw control or escape character outside of what the escape codec
// produced (spec.md invariant 1).
type NameContainsInvalidCharsError struct {
	Name string
}

func (e *NameContainsInvalidCharsError) Error() string {
	return fmt.Sprintf("%v: %q", ErrNameContainsInvalidChars, e.Name)
}

func (e *NameContainsInvalidCharsError) Unwrap() error { return ErrNameContainsInvalidChars }

// NameContainsInvalidChars constructs a [NameContainsInvalidCharsError].
func NameContainsInvalidChars(name string) error {
	return &NameContainsInvalidCharsError{Name: name}
}
