package binary

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alex05447/miniconfig/dynconfig"
	"github.com/alex05447/miniconfig/value"
)

// tableDiff reports a human-readable diff between two tables when they
// are unequal per [dynconfig.EqualTables], via go-cmp's Comparer hook:
// equality at every level (table, array, scalar value) bottoms out in
// the same tree-equality predicate the round-trip properties are stated
// against (spec.md §8), so a mismatch here is never a false positive
// relative to a plain EqualTables check, only more legible.
func tableDiff(want, got value.TableReader) string {
	return cmp.Diff(want, got,
		cmp.Comparer(func(a, b value.TableReader) bool { return dynconfig.EqualTables(a, b) }),
		cmp.Comparer(func(a, b value.ArrayReader) bool { return dynconfig.EqualArrays(a, b) }),
		cmp.Comparer(func(a, b value.Value) bool { return dynconfig.EqualValues(a, b) }),
	)
}

func buildSample() *dynconfig.Table {
	root := dynconfig.NewTable()
	root.Set("x", value.NewStr("hi"))
	arr := dynconfig.NewArray()
	arr.Push(value.NewI64(1))
	arr.Push(value.NewI64(2))
	root.Set("y", value.NewArray(arr))
	return root
}

func TestWriteReadRoundTrip(t *testing.T) {
	root := buildSample()
	var buf bytes.Buffer
	if err := Write(root, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	r, err := New(buf.Bytes())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	x, err := r.GetStrPath(value.Path{value.TableKey("x")})
	if err != nil || x != "hi" {
		t.Fatalf("x = %q, %v; want %q, nil", x, err, "hi")
	}

	y, err := r.GetArrayPath(value.Path{value.TableKey("y")})
	if err != nil {
		t.Fatalf("GetArrayPath: %v", err)
	}
	if y.Len() != 2 {
		t.Fatalf("y.Len() = %d, want 2", y.Len())
	}
	v1, err := y.Get(1)
	if err != nil {
		t.Fatalf("y.Get(1): %v", err)
	}
	i1, err := v1.I64()
	if err != nil || i1 != 2 {
		t.Fatalf("y[1] = %d, %v; want 2, nil", i1, err)
	}
	kind, ok := y.ElementKind()
	if !ok || kind != value.I64 {
		t.Fatalf("y.ElementKind() = %v, %v; want I64, true", kind, ok)
	}

	if !dynconfig.EqualTables(root, r.Root()) {
		t.Fatalf("tree read back differs from what was written:\n%s", tableDiff(root, r.Root()))
	}
}

func TestNestedTableRoundTrip(t *testing.T) {
	root := dynconfig.NewTable()
	inner := dynconfig.NewTable()
	inner.Set("z", value.NewBool(true))
	root.Set("a", value.NewTable(inner))

	var buf bytes.Buffer
	if err := Write(root, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	r, err := New(buf.Bytes())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	z, err := r.GetBoolPath(value.Path{value.TableKey("a"), value.TableKey("z")})
	if err != nil || !z {
		t.Fatalf("a.z = %v, %v; want true, nil", z, err)
	}
}

func TestStringDeduplication(t *testing.T) {
	root := dynconfig.NewTable()
	root.Set("a", value.NewStr("dup"))
	root.Set("b", value.NewStr("dup"))

	var buf bytes.Buffer
	if err := Write(root, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_, offsets := internStrings(root)
	if len(offsets) != 3 { // "dup", "a", "b"
		t.Fatalf("internStrings produced %d distinct strings, want 3", len(offsets))
	}
}

func TestUnsupportedVersion(t *testing.T) {
	root := buildSample()
	var buf bytes.Buffer
	if err := Write(root, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	blob := buf.Bytes()
	putLe32(blob[4:8], formatVersion+1)
	_, err := New(blob)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("err = %v, want ErrUnsupportedVersion", err)
	}
}

func TestCorruptStringTerminator(t *testing.T) {
	root := buildSample()
	var buf bytes.Buffer
	if err := Write(root, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	blob := buf.Bytes()

	// The blob's very last byte is the null terminator of the last
	// interned string; flipping it means that string's length-bounded
	// slice no longer ends on a 0x00 byte.
	blob[len(blob)-1] = 'X'

	_, err := New(blob)
	var ce *CorruptError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CorruptError", err)
	}
}

func TestTruncatedBlob(t *testing.T) {
	root := buildSample()
	var buf bytes.Buffer
	if err := Write(root, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	blob := buf.Bytes()[:headerSize+4]
	_, err := New(blob)
	var ce *CorruptError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CorruptError", err)
	}
}
