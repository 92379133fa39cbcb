package dynconfig

import "github.com/alex05447/miniconfig/value"

// EqualTables reports whether a and b have the same keys mapping to
// equal values, ignoring declaration order (spec.md §3: "Iteration
// order is unspecified across forms"). This is the equality notion
// spec.md §8's round-trip properties (ii) and (iii) are stated against
// ("the walked tree equals the input tree modulo key ordering"), and is
// grounded on the teacher's own tree-equality helper
// (_examples/signadot-tony-format/go-tony/ir/compare.go), simplified
// from a total order (needed there to sort/diff) down to a plain
// equality predicate, since nothing here needs to rank tables.
func EqualTables(a, b value.TableReader) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Iter(func(key string, av value.Value) bool {
		bv, err := b.Get(key)
		if err != nil || !EqualValues(av, bv) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// EqualArrays reports whether a and b have the same length and
// pairwise-equal elements, in order (arrays are ordered, so unlike
// EqualTables there is no "modulo ordering" clause).
func EqualArrays(a, b value.ArrayReader) bool {
	if a.Len() != b.Len() {
		return false
	}
	equal := true
	a.Iter(func(i int, av value.Value) bool {
		bv, err := b.Get(i)
		if err != nil || !EqualValues(av, bv) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// EqualValues reports whether a and b hold the same kind and the same
// payload. Numeric widening is deliberately not applied here: an I64(3)
// and an F64(3.0) are different stored values even though both widen to
// the same number, matching spec.md invariant 2's requirement that
// stored kind survive a round-trip.
func EqualValues(a, b value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case value.Bool:
		av, _ := a.Bool()
		bv, _ := b.Bool()
		return av == bv
	case value.I64:
		av, _ := a.I64()
		bv, _ := b.I64()
		return av == bv
	case value.F64:
		av, _ := a.F64()
		bv, _ := b.F64()
		return av == bv
	case value.Str:
		av, _ := a.Str()
		bv, _ := b.Str()
		return av == bv
	case value.Array:
		av, _ := a.Array()
		bv, _ := b.Array()
		return EqualArrays(av, bv)
	case value.Table:
		av, _ := a.Table()
		bv, _ := b.Table()
		return EqualTables(av, bv)
	default:
		return false
	}
}
