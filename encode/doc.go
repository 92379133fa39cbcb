// Package encode serializes a [value.TableReader] to text, in one of two
// back-ends: INI (the same dialect [ini] parses) or a Lua-like table
// expression. Both walk the TableReader/ArrayReader capability pair
// rather than a concrete tree type, so a [dynconfig.Table] and a
// [binary.Table] serialize through the same code (spec.md §4.7).
//
// The EncState-with-functional-options shape (a state struct built up
// by a chain of EncodeOption closures) is carried over from the
// teacher's own encoder, generalized from walking one polymorphic IR node
// type to walking the TableReader/ArrayReader pair.
package encode
