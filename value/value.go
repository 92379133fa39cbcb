// Package value defines the tagged value algebra shared by every config
// dialect (mutable, binary, INI/Lua-like serialization) and the capability
// interfaces ([TableReader], [ArrayReader]) that let the parser, writer and
// serializers walk any of those dialects without depending on its concrete
// representation.
package value

import "fmt"

// Kind tags the six primitive and container variants a [Value] may hold.
type Kind int

const (
	Bool Kind = iota
	I64
	F64
	Str
	Array
	Table
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "Bool"
	case I64:
		return "I64"
	case F64:
		return "F64"
	case Str:
		return "Str"
	case Array:
		return "Array"
	case Table:
		return "Table"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsNumeric reports whether k is I64 or F64. The spec treats both as one
// unified "numeric" kind for array homogeneity purposes.
func (k Kind) IsNumeric() bool {
	return k == I64 || k == F64
}

// Compatible reports whether a value of kind other may occupy a slot
// declared to be of kind k, i.e. whether the two participate in the same
// homogeneity class. Numeric kinds are mutually compatible; every other
// kind is only compatible with itself.
func (k Kind) Compatible(other Kind) bool {
	if k.IsNumeric() && other.IsNumeric() {
		return true
	}
	return k == other
}

// Value is a tagged union over the four primitive kinds plus the two
// container kinds. Container payloads are represented abstractly: a mutable
// [Value] built by dynconfig carries owned containers, a binary [Value]
// carries borrowed views over a blob. Both satisfy [TableReader] /
// [ArrayReader] so callers never need to know which they have.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	array ArrayReader
	table TableReader
}

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{kind: Bool, b: b} }

// NewI64 constructs an I64 value.
func NewI64(i int64) Value { return Value{kind: I64, i: i} }

// NewF64 constructs an F64 value.
func NewF64(f float64) Value { return Value{kind: F64, f: f} }

// NewStr constructs a Str value.
func NewStr(s string) Value { return Value{kind: Str, s: s} }

// NewArray constructs an Array value wrapping an existing [ArrayReader].
func NewArray(a ArrayReader) Value { return Value{kind: Array, array: a} }

// NewTable constructs a Table value wrapping an existing [TableReader].
func NewTable(t TableReader) Value { return Value{kind: Table, table: t} }

// Kind returns the value's tag.
func (v Value) Kind() Kind { return v.kind }

// IsNumeric reports whether the value is stored as I64 or F64.
func (v Value) IsNumeric() bool { return v.kind.IsNumeric() }

// Bool returns the stored boolean, or [ErrWrongType] if the value is not a
// Bool.
func (v Value) Bool() (bool, error) {
	if v.kind != Bool {
		return false, WrongType(Bool, v.kind)
	}
	return v.b, nil
}

// I64 returns the stored int64. Unlike [Value.F64], this does not widen: a
// stored F64 yields [ErrWrongType] rather than truncating toward zero, so a
// value's read-back kind never silently narrows its precision.
func (v Value) I64() (int64, error) {
	if v.kind != I64 {
		return 0, WrongType(I64, v.kind)
	}
	return v.i, nil
}

// F64 returns the value widened to a float64. A stored I64 is converted
// exactly up to float64's 53-bit mantissa; a stored F64 is returned as-is.
// Any other kind yields [ErrWrongType].
func (v Value) F64() (float64, error) {
	switch v.kind {
	case F64:
		return v.f, nil
	case I64:
		return float64(v.i), nil
	default:
		return 0, WrongType(F64, v.kind)
	}
}

// Str returns the stored string, or [ErrWrongType] if the value is not a
// Str. Unlike the numeric accessors, no other kind converts to a string.
func (v Value) Str() (string, error) {
	if v.kind != Str {
		return "", WrongType(Str, v.kind)
	}
	return v.s, nil
}

// Array returns the stored array view, or [ErrWrongType] if the value is
// not an Array. Container accessors never convert.
func (v Value) Array() (ArrayReader, error) {
	if v.kind != Array {
		return nil, WrongType(Array, v.kind)
	}
	return v.array, nil
}

// Table returns the stored table view, or [ErrWrongType] if the value is
// not a Table. Container accessors never convert.
func (v Value) Table() (TableReader, error) {
	if v.kind != Table {
		return nil, WrongType(Table, v.kind)
	}
	return v.table, nil
}

// TableReader is the read-only capability set a table-shaped container
// exposes to the writer and serializers, regardless of whether it is
// backed by a mutable map/slice pair or a borrowed binary blob.
type TableReader interface {
	// Len returns the number of entries.
	Len() int
	// Get returns the value for key, or ErrKeyDoesNotExist.
	Get(key string) (Value, error)
	// Iter calls fn for every entry in the table's declaration order,
	// stopping early if fn returns false.
	Iter(fn func(key string, v Value) bool)
}

// ArrayReader is the read-only capability set an array-shaped container
// exposes to the writer and serializers.
type ArrayReader interface {
	// Len returns the number of elements.
	Len() int
	// Get returns the element at index, or ErrIndexOutOfBounds.
	Get(index int) (Value, error)
	// Iter calls fn for every element in order, stopping early if fn
	// returns false.
	Iter(fn func(index int, v Value) bool)
	// ElementKind returns the array's homogeneous element kind, and false
	// if the array is empty (kind is indeterminate per spec.md §9).
	ElementKind() (Kind, bool)
}
