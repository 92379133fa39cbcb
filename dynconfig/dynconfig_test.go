package dynconfig

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alex05447/miniconfig/value"
)

func TestTableSetGet(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Set("k", value.NewI64(1)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := tbl.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	i, _ := v.I64()
	if i != 1 {
		t.Fatalf("got %d, want 1", i)
	}
}

func TestTableSetEmptyKey(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Set("", value.NewI64(1)); !errors.Is(err, value.ErrEmptyKey) {
		t.Fatalf("Set(\"\") error = %v, want ErrEmptyKey", err)
	}
}

func TestTableSetInvalidChars(t *testing.T) {
	tbl := NewTable()
	err := tbl.Set("a\nb", value.NewI64(1))
	if !errors.Is(err, value.ErrNameContainsInvalidChars) {
		t.Fatalf("Set with control char error = %v, want ErrNameContainsInvalidChars", err)
	}
}

func TestTableReplacePreservesSlot(t *testing.T) {
	tbl := NewTable()
	_ = tbl.Set("a", value.NewI64(1))
	_ = tbl.Set("b", value.NewI64(2))
	_ = tbl.Set("a", value.NewI64(99))

	var order []string
	tbl.Iter(func(key string, v value.Value) bool {
		order = append(order, key)
		return true
	})
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("iteration order = %v, want [a b] (replace must not reorder)", order)
	}
	v, _ := tbl.Get("a")
	i, _ := v.I64()
	if i != 99 {
		t.Fatalf("Get(a) = %d, want 99", i)
	}
}

func TestTableRemove(t *testing.T) {
	tbl := NewTable()
	_ = tbl.Set("a", value.NewI64(1))
	if err := tbl.Remove("a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := tbl.Get("a"); !errors.Is(err, value.ErrKeyDoesNotExist) {
		t.Fatalf("Get after Remove error = %v, want ErrKeyDoesNotExist", err)
	}
	if err := tbl.Remove("a"); !errors.Is(err, value.ErrKeyDoesNotExist) {
		t.Fatalf("Remove missing key error = %v, want ErrKeyDoesNotExist", err)
	}
}

func TestArrayPushPop(t *testing.T) {
	arr := NewArray()
	_ = arr.Push(value.NewI64(1))
	_ = arr.Push(value.NewI64(2))
	if arr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", arr.Len())
	}
	v, err := arr.Pop()
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	i, _ := v.I64()
	if i != 2 || arr.Len() != 1 {
		t.Fatalf("Pop() = %d, len now %d; want 2, 1", i, arr.Len())
	}
}

func TestArrayNumericUnification(t *testing.T) {
	arr := NewArray()
	if err := arr.Push(value.NewI64(3)); err != nil {
		t.Fatalf("Push i64: %v", err)
	}
	if err := arr.Push(value.NewF64(7.62)); err != nil {
		t.Fatalf("Push f64 after i64 should succeed (numeric unification): %v", err)
	}
	kind, ok := arr.ElementKind()
	if !ok || !kind.IsNumeric() {
		t.Fatalf("ElementKind() = %v, %v; want numeric, true", kind, ok)
	}

	v0, _ := arr.Get(0)
	i0, err := v0.I64()
	if err != nil || i0 != 3 {
		t.Fatalf("Get(0) as I64 = %d, %v; want 3, nil", i0, err)
	}

	v2, _ := arr.Get(1)
	f2, err := v2.F64()
	if err != nil || f2 != 7.62 {
		t.Fatalf("Get(1) as F64 = %v, %v; want 7.62, nil", f2, err)
	}
	if _, err := v2.Bool(); err == nil {
		t.Fatal("stored F64 should not convert to Bool")
	}
}

func TestArrayRejectsHeterogeneous(t *testing.T) {
	arr := NewArray()
	_ = arr.Push(value.NewI64(1))
	if err := arr.Push(value.NewStr("x")); !errors.Is(err, value.ErrArrayWrongElementType) {
		t.Fatalf("Push(Str) onto I64 array error = %v, want ErrArrayWrongElementType", err)
	}
}

func TestArrayEmptyKindIndeterminate(t *testing.T) {
	arr := NewArray()
	if _, ok := arr.ElementKind(); ok {
		t.Fatal("empty array should report no element kind")
	}
	_ = arr.Push(value.NewI64(1))
	_, _ = arr.Pop()
	if _, ok := arr.ElementKind(); ok {
		t.Fatal("array emptied by Pop should clear element kind")
	}
}

func TestArrayOutOfBounds(t *testing.T) {
	arr := NewArray()
	if _, err := arr.Get(0); !errors.Is(err, value.ErrIndexOutOfBounds) {
		t.Fatalf("Get(0) on empty array error = %v, want ErrIndexOutOfBounds", err)
	}
}

func TestNestedTableAndPath(t *testing.T) {
	root := NewTable()
	child, err := root.GetOrCreateTable("section")
	if err != nil {
		t.Fatalf("GetOrCreateTable: %v", err)
	}
	_ = child.Set("key", value.NewStr("value"))

	got, err := value.GetStrPath(root, value.Path{value.TableKey("section"), value.TableKey("key")})
	if err != nil {
		t.Fatalf("GetStrPath: %v", err)
	}
	if got != "value" {
		t.Fatalf("GetStrPath = %q, want %q", got, "value")
	}
}

func TestEqualTablesIgnoresOrder(t *testing.T) {
	a := NewTable()
	_ = a.Set("x", value.NewI64(1))
	_ = a.Set("y", value.NewI64(2))

	b := NewTable()
	_ = b.Set("y", value.NewI64(2))
	_ = b.Set("x", value.NewI64(1))

	if !EqualTables(a, b) {
		t.Fatal("tables with same entries in different order should be equal")
	}
}

func TestEqualValuesDistinguishesStoredKind(t *testing.T) {
	if EqualValues(value.NewI64(3), value.NewF64(3.0)) {
		t.Fatal("I64(3) and F64(3.0) must not compare equal: stored kind must survive round-trips")
	}
}

// TestTableDiffReportsMismatch checks that a go-cmp.Diff built from
// EqualTables/EqualArrays/EqualValues Comparers (the same pattern the
// binary and root-package round-trip tests use) actually flags a real
// mismatch, rather than silently reporting no difference.
func TestTableDiffReportsMismatch(t *testing.T) {
	a := NewTable()
	_ = a.Set("x", value.NewI64(1))

	b := NewTable()
	_ = b.Set("x", value.NewI64(2))

	diff := cmp.Diff(value.TableReader(a), value.TableReader(b),
		cmp.Comparer(func(a, b value.TableReader) bool { return EqualTables(a, b) }),
		cmp.Comparer(func(a, b value.ArrayReader) bool { return EqualArrays(a, b) }),
		cmp.Comparer(func(a, b value.Value) bool { return EqualValues(a, b) }),
	)
	if diff == "" {
		t.Fatal("cmp.Diff reported no difference between tables with different values")
	}
}
