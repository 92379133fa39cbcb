package value

import (
	"fmt"
	"strconv"
	"strings"
)

// PathKey is one segment of a [Path]: either a table string key or an
// array index. This mirrors the original crate's ConfigKey (see
// _examples/original_source/src/error.rs), collapsed into a single
// concrete type rather than a generic enum since Go has no borrowed vs.
// owned string distinction to preserve.
type PathKey struct {
	// Table is set when this segment indexes a table; Index, an array.
	// Exactly one of the two applies, selected by IsIndex.
	Table   string
	Index   int
	IsIndex bool
}

// TableKey constructs a table-indexing path segment.
func TableKey(key string) PathKey { return PathKey{Table: key} }

// ArrayKey constructs an array-indexing path segment.
func ArrayKey(index int) PathKey { return PathKey{Index: index, IsIndex: true} }

func (k PathKey) String() string {
	if k.IsIndex {
		return "[" + strconv.Itoa(k.Index) + "]"
	}
	return "." + k.Table
}

// Path is a sequence of [PathKey] segments identifying a nested value.
type Path []PathKey

func (p Path) String() string {
	if len(p) == 0 {
		return "<root>"
	}
	var b strings.Builder
	for _, k := range p {
		b.WriteString(k.String())
	}
	return strings.TrimPrefix(b.String(), ".")
}

// PathError is returned by the *Path family of accessors. It names the
// path segment at which resolution failed and wraps the underlying
// reason (one of [ErrEmptyKey], [ErrKeyDoesNotExist],
// [ErrIndexOutOfBounds], [ErrWrongType]), mirroring GetPathError in the
// original crate's error.rs without that type's hand-rolled
// push/reverse bookkeeping: Go's recursive helper builds the path
// front-to-back directly since there is no borrow checker forcing a
// reversed accumulation.
type PathError struct {
	Path Path
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// GetPath resolves path against root, descending through nested tables
// and arrays. An empty path returns root itself as a Table-kinded value.
func GetPath(root TableReader, path Path) (Value, error) {
	v := NewTable(root)
	for i, k := range path {
		var next Value
		var err error
		if k.IsIndex {
			arr, aerr := v.Array()
			if aerr != nil {
				return Value{}, &PathError{Path: path[:i+1], Err: aerr}
			}
			next, err = arr.Get(k.Index)
		} else {
			tbl, terr := v.Table()
			if terr != nil {
				return Value{}, &PathError{Path: path[:i+1], Err: terr}
			}
			next, err = tbl.Get(k.Table)
		}
		if err != nil {
			return Value{}, &PathError{Path: path[:i+1], Err: err}
		}
		v = next
	}
	return v, nil
}

// GetBoolPath resolves path and returns the result as a bool. Fails with
// ErrWrongType if the stored value is not a Bool.
func GetBoolPath(root TableReader, path Path) (bool, error) {
	v, err := GetPath(root, path)
	if err != nil {
		return false, err
	}
	b, err := v.Bool()
	if err != nil {
		return false, &PathError{Path: path, Err: err}
	}
	return b, nil
}

// GetI64Path resolves path and returns the result as int64. Fails with
// ErrWrongType if the stored value is not natively an I64.
func GetI64Path(root TableReader, path Path) (int64, error) {
	v, err := GetPath(root, path)
	if err != nil {
		return 0, err
	}
	i, err := v.I64()
	if err != nil {
		return 0, &PathError{Path: path, Err: err}
	}
	return i, nil
}

// GetF64Path resolves path and widens the result to float64.
func GetF64Path(root TableReader, path Path) (float64, error) {
	v, err := GetPath(root, path)
	if err != nil {
		return 0, err
	}
	f, err := v.F64()
	if err != nil {
		return 0, &PathError{Path: path, Err: err}
	}
	return f, nil
}

// GetStrPath resolves path and returns the result as a string.
func GetStrPath(root TableReader, path Path) (string, error) {
	v, err := GetPath(root, path)
	if err != nil {
		return "", err
	}
	s, err := v.Str()
	if err != nil {
		return "", &PathError{Path: path, Err: err}
	}
	return s, nil
}

// GetArrayPath resolves path and returns the result as an array view.
func GetArrayPath(root TableReader, path Path) (ArrayReader, error) {
	v, err := GetPath(root, path)
	if err != nil {
		return nil, err
	}
	a, err := v.Array()
	if err != nil {
		return nil, &PathError{Path: path, Err: err}
	}
	return a, nil
}

// GetTablePath resolves path and returns the result as a table view.
func GetTablePath(root TableReader, path Path) (TableReader, error) {
	v, err := GetPath(root, path)
	if err != nil {
		return nil, err
	}
	t, err := v.Table()
	if err != nil {
		return nil, &PathError{Path: path, Err: err}
	}
	return t, nil
}
