// Package binary implements the compact, self-contained, read-only binary
// config format (spec.md §4.5, §4.6 — C5/C6). A blob is
// [ Header ][ Data region (tables, arrays, packed values) ][ String region ],
// little-endian throughout, position-independent, and string-deduplicated.
// The reader and writer share one package the way the teacher keeps
// sibling halves of a format together (its own encode/decode pair lives
// in one package per format).
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/alex05447/miniconfig/value"
)

var magicBytes = [4]byte{'M', 'C', 'F', 'G'}

const (
	formatVersion = uint32(1)
	headerSize    = 24

	// tableRecordHeaderSize holds the entry count directly in the table
	// record itself (4 bytes count + 4 bytes padding), beyond what
	// spec.md §4.5 lists for the record payload alone. This is the one
	// deliberate deviation from the literal record layout: the root table
	// has no referencing value record to carry its count (every other
	// table/array is pointed to from a parent value record, which does
	// carry a redundant copy of the count per spec.md §4.5's "Value
	// record" section), so the record has to be self-describing. See
	// DESIGN.md for the full rationale.
	tableRecordHeaderSize = 8
	tableEntrySize        = 24

	// arrayRecordHeaderSize is the 1-byte element-kind marker "rounded up
	// for alignment" per spec.md §4.5, to the same 8-byte granularity as
	// a value record's payload.
	arrayRecordHeaderSize = 8
	valueRecordSize       = 16

	// numericArrayTag is the element-kind marker value.Kind has no literal
	// constant for: spec.md §3 unifies I64/F64 into one numeric kind for
	// homogeneity purposes, and §4.5 says "numeric arrays record Numeric".
	numericArrayTag = byte(6)
)

// ErrUnsupportedVersion is returned by [New] when a blob's format version
// is not one this reader understands (spec.md §6).
var ErrUnsupportedVersion = errors.New("unsupported binary config version")

// CorruptError reports a validation failure in a binary blob, naming the
// offending field and the byte offset where the failure was detected
// (spec.md §4.5: "Any violation ⇒ CorruptBinary(field)").
type CorruptError struct {
	Field  string
	Offset uint32
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt binary config: %s at offset %d", e.Field, e.Offset)
}

func corrupt(field string, offset uint32) error {
	return &CorruptError{Field: field, Offset: offset}
}

func tableRecordSize(t value.TableReader) uint32 {
	return tableRecordHeaderSize + uint32(t.Len())*tableEntrySize
}

func arrayRecordSize(a value.ArrayReader) uint32 {
	return arrayRecordHeaderSize + uint32(a.Len())*valueRecordSize
}

func elementKindTag(a value.ArrayReader) byte {
	kind, ok := a.ElementKind()
	if !ok {
		// Empty arrays receive element kind Numeric by convention
		// (spec.md §4.6, "Determinism").
		return numericArrayTag
	}
	if kind.IsNumeric() {
		return numericArrayTag
	}
	return byte(kind)
}

func le32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func putLe32(b []byte, v uint32) {
	binary.LittleEndian.PutUint32(b, v)
}
