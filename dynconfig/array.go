package dynconfig

import "github.com/alex05447/miniconfig/value"

// Array is a contiguous, 0-indexed, kind-homogeneous sequence of
// values, with I64 and F64 unified into one "numeric" kind per
// spec.md §3. The zero value is an empty, ready-to-use array.
type Array struct {
	values []value.Value
	// elementKind is nil exactly when the array is empty, per spec.md
	// §9 ("Empty-array kind"): it is set to Some(k) on the first push
	// and cleared back to nil on the last pop.
	elementKind *value.Kind
}

// NewArray returns an empty array.
func NewArray() *Array { return &Array{} }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.values) }

// Get returns the element at index, or value.ErrIndexOutOfBounds.
func (a *Array) Get(index int) (value.Value, error) {
	if index < 0 || index >= len(a.values) {
		return value.Value{}, value.IndexOutOfBounds(index, len(a.values))
	}
	return a.values[index], nil
}

// Iter calls fn for every element in order, stopping early if fn
// returns false.
func (a *Array) Iter(fn func(index int, v value.Value) bool) {
	for i, v := range a.values {
		if !fn(i, v) {
			return
		}
	}
}

// ElementKind returns the array's homogeneous element kind, and false
// if the array is empty.
func (a *Array) ElementKind() (value.Kind, bool) {
	if a.elementKind == nil {
		return 0, false
	}
	return *a.elementKind, true
}

// Push appends v, enforcing kind homogeneity with int/float
// unification: pushing an I64 onto an array already holding F64 (or
// vice versa) succeeds and the array's reported kind stays whatever it
// already was.
func (a *Array) Push(v value.Value) error {
	k := v.Kind()
	if a.elementKind == nil {
		a.elementKind = &k
	} else if !a.elementKind.Compatible(k) {
		return value.ArrayWrongElementType(*a.elementKind, k)
	}
	a.values = append(a.values, v)
	return nil
}

// Pop removes and returns the last element, or value.ErrArrayEmpty.
func (a *Array) Pop() (value.Value, error) {
	n := len(a.values)
	if n == 0 {
		return value.Value{}, value.ErrArrayEmpty
	}
	v := a.values[n-1]
	a.values = a.values[:n-1]
	if n-1 == 0 {
		a.elementKind = nil
	}
	return v, nil
}

// Insert places v at index, shifting later elements up by one.
// Enforces the same homogeneity rule as Push. index == Len() appends.
func (a *Array) Insert(index int, v value.Value) error {
	if index < 0 || index > len(a.values) {
		return value.IndexOutOfBounds(index, len(a.values))
	}
	k := v.Kind()
	if a.elementKind == nil {
		a.elementKind = &k
	} else if !a.elementKind.Compatible(k) {
		return value.ArrayWrongElementType(*a.elementKind, k)
	}
	a.values = append(a.values, value.Value{})
	copy(a.values[index+1:], a.values[index:])
	a.values[index] = v
	return nil
}

// RemoveAt deletes the element at index, shifting later elements down
// by one.
func (a *Array) RemoveAt(index int) error {
	if index < 0 || index >= len(a.values) {
		return value.IndexOutOfBounds(index, len(a.values))
	}
	a.values = append(a.values[:index], a.values[index+1:]...)
	if len(a.values) == 0 {
		a.elementKind = nil
	}
	return nil
}
