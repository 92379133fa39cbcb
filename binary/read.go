package binary

import (
	"encoding/binary"
	"math"
	"unicode/utf8"

	"github.com/alex05447/miniconfig/value"
)

// maxNestingDepth bounds recursive validation so a malformed or
// adversarial blob with cyclic offsets fails closed instead of looping
// forever; legitimate trees never approach it.
const maxNestingDepth = 1000

// Reader is a validated, read-only view over a binary config blob. Every
// accessor is pure and zero-copy: returned strings and container views
// borrow directly from the backing buffer (spec.md §4.5, "Access"), and
// [Table.Get] resolves a key with a binary search over the still-encoded
// entries, decoding only the one matched value.
type Reader struct {
	buf       []byte
	stringOff uint32
	stringLen uint32
	rootOff   uint32
}

// New validates buf as a binary config blob, per spec.md §4.5's
// "Validation" list, and returns a read-only [Reader] over it. Any
// violation is reported as [*CorruptError] or [ErrUnsupportedVersion];
// there is no partial result on failure (spec.md §7).
func New(buf []byte) (*Reader, error) {
	if len(buf) < headerSize {
		return nil, corrupt("header", 0)
	}
	if buf[0] != magicBytes[0] || buf[1] != magicBytes[1] || buf[2] != magicBytes[2] || buf[3] != magicBytes[3] {
		return nil, corrupt("magic", 0)
	}
	version := le32(buf[4:8])
	if version != formatVersion {
		return nil, ErrUnsupportedVersion
	}
	totalLen := le32(buf[8:12])
	if int(totalLen) != len(buf) {
		return nil, corrupt("total_length", 8)
	}
	stringOff := le32(buf[12:16])
	stringLen := le32(buf[16:20])
	rootOff := le32(buf[20:24])

	if uint64(stringOff) > uint64(len(buf)) || uint64(stringOff)+uint64(stringLen) > uint64(len(buf)) {
		return nil, corrupt("string_region", 12)
	}
	if uint64(stringOff) < headerSize {
		return nil, corrupt("string_region_offset", 12)
	}

	r := &Reader{buf: buf, stringOff: stringOff, stringLen: stringLen, rootOff: rootOff}
	if err := r.validateTable(rootOff, 0); err != nil {
		return nil, err
	}
	return r, nil
}

// dataRegionEnd is the first byte past the data region, i.e. where the
// string region starts; every table/array/value offset must resolve
// within [headerSize, dataRegionEnd).
func (r *Reader) dataRegionEnd() uint32 { return r.stringOff }

func (r *Reader) readString(offset, length uint32) (string, error) {
	if uint64(offset)+uint64(length)+1 > uint64(r.stringLen) {
		return "", corrupt("string_bounds", r.stringOff+offset)
	}
	start := r.stringOff + offset
	end := start + length
	if r.buf[end] != 0 {
		return "", corrupt("string_terminator", end)
	}
	s := string(r.buf[start:end])
	if !utf8.ValidString(s) {
		return "", corrupt("string_utf8", start)
	}
	return s, nil
}

func (r *Reader) validateTable(offset uint32, depth int) error {
	if depth > maxNestingDepth {
		return corrupt("table_nesting", offset)
	}
	if offset < headerSize || uint64(offset)+tableRecordHeaderSize > uint64(r.dataRegionEnd()) {
		return corrupt("table_header", offset)
	}
	count := le32(r.buf[offset : offset+4])
	entriesEnd := uint64(offset) + tableRecordHeaderSize + uint64(count)*tableEntrySize
	if entriesEnd > uint64(r.dataRegionEnd()) {
		return corrupt("table_entries", offset)
	}
	pos := offset + tableRecordHeaderSize
	prevKey := ""
	for i := uint32(0); i < count; i++ {
		keyOff := le32(r.buf[pos : pos+4])
		keyLen := le32(r.buf[pos+4 : pos+8])
		key, err := r.readString(keyOff, keyLen)
		if err != nil {
			return err
		}
		if i > 0 && key <= prevKey {
			return corrupt("table_entry_order", pos)
		}
		prevKey = key
		if err := r.validateValueRecord(pos+8, depth); err != nil {
			return err
		}
		pos += tableEntrySize
	}
	return nil
}

func (r *Reader) validateArray(offset, expectedCount uint32, depth int) error {
	if depth > maxNestingDepth {
		return corrupt("array_nesting", offset)
	}
	if offset < headerSize || uint64(offset)+arrayRecordHeaderSize > uint64(r.dataRegionEnd()) {
		return corrupt("array_header", offset)
	}
	tag := r.buf[offset]
	if tag > numericArrayTag {
		return corrupt("array_element_kind", offset)
	}
	elemsEnd := uint64(offset) + arrayRecordHeaderSize + uint64(expectedCount)*valueRecordSize
	if elemsEnd > uint64(r.dataRegionEnd()) {
		return corrupt("array_elements", offset)
	}
	pos := offset + arrayRecordHeaderSize
	for i := uint32(0); i < expectedCount; i++ {
		if err := r.validateValueRecord(pos, depth); err != nil {
			return err
		}
		pos += valueRecordSize
	}
	return nil
}

func (r *Reader) validateValueRecord(offset uint32, depth int) error {
	if uint64(offset)+valueRecordSize > uint64(r.dataRegionEnd()) {
		return corrupt("value_record", offset)
	}
	tag := r.buf[offset]
	payload := r.buf[offset+8 : offset+16]
	switch tag {
	case byte(value.Bool):
		if payload[0] > 1 {
			return corrupt("bool_value", offset)
		}
	case byte(value.I64), byte(value.F64):
		// Every 8-byte pattern is a valid i64/f64 bit pattern.
	case byte(value.Str):
		if _, err := r.readString(le32(payload[0:4]), le32(payload[4:8])); err != nil {
			return err
		}
	case byte(value.Array):
		if err := r.validateArray(le32(payload[0:4]), le32(payload[4:8]), depth+1); err != nil {
			return err
		}
	case byte(value.Table):
		if err := r.validateTable(le32(payload[0:4]), depth+1); err != nil {
			return err
		}
	default:
		return corrupt("value_tag", offset)
	}
	return nil
}

func (r *Reader) decodeValue(offset uint32) (value.Value, error) {
	tag := r.buf[offset]
	payload := r.buf[offset+8 : offset+16]
	switch tag {
	case byte(value.Bool):
		return value.NewBool(payload[0] != 0), nil
	case byte(value.I64):
		return value.NewI64(int64(binary.LittleEndian.Uint64(payload))), nil
	case byte(value.F64):
		return value.NewF64(math.Float64frombits(binary.LittleEndian.Uint64(payload))), nil
	case byte(value.Str):
		s, err := r.readString(le32(payload[0:4]), le32(payload[4:8]))
		if err != nil {
			return value.Value{}, err
		}
		return value.NewStr(s), nil
	case byte(value.Array):
		off, count := le32(payload[0:4]), le32(payload[4:8])
		return value.NewArray(&Array{r: r, offset: off, count: count, kind: r.buf[off]}), nil
	case byte(value.Table):
		// The table record is self-describing (its header carries its own
		// entry count, unlike an array record); the count in payload[4:8]
		// is a write-time convenience for callers that never decode the
		// table and is not trusted here, since validateValueRecord never
		// checks it against the table's real header count.
		off := le32(payload[0:4])
		count := le32(r.buf[off : off+4])
		return value.NewTable(&Table{r: r, offset: off, count: count}), nil
	default:
		return value.Value{}, corrupt("value_tag", offset)
	}
}

// Root returns the config's root table view.
func (r *Reader) Root() *Table {
	count := le32(r.buf[r.rootOff : r.rootOff+4])
	return &Table{r: r, offset: r.rootOff, count: count}
}

// GetPath, GetBoolPath, ... mirror [dynconfig.Config]'s path accessors,
// rooted at this blob's root table (spec.md §9, "Generic container
// abstraction": the same path-walking code works over either form).
func (r *Reader) GetPath(path value.Path) (value.Value, error) { return value.GetPath(r.Root(), path) }
func (r *Reader) GetBoolPath(path value.Path) (bool, error)    { return value.GetBoolPath(r.Root(), path) }
func (r *Reader) GetI64Path(path value.Path) (int64, error)    { return value.GetI64Path(r.Root(), path) }
func (r *Reader) GetF64Path(path value.Path) (float64, error)  { return value.GetF64Path(r.Root(), path) }
func (r *Reader) GetStrPath(path value.Path) (string, error)   { return value.GetStrPath(r.Root(), path) }
func (r *Reader) GetArrayPath(path value.Path) (value.ArrayReader, error) {
	return value.GetArrayPath(r.Root(), path)
}
func (r *Reader) GetTablePath(path value.Path) (value.TableReader, error) {
	return value.GetTablePath(r.Root(), path)
}

// Table is a zero-copy, read-only view over one table record in a blob.
type Table struct {
	r      *Reader
	offset uint32
	count  uint32
}

func (t *Table) Len() int { return int(t.count) }

func (t *Table) entryAt(i uint32) (key string, valueOffset uint32) {
	pos := t.offset + tableRecordHeaderSize + i*tableEntrySize
	keyOff := le32(t.r.buf[pos : pos+4])
	keyLen := le32(t.r.buf[pos+4 : pos+8])
	// Bounds and UTF-8 were already confirmed during New's validation
	// pass; a second failure here is not possible for a Reader obtained
	// from New.
	key, _ = t.r.readString(keyOff, keyLen)
	return key, pos + 8
}

// Get resolves key with a binary search over the entry records, sorted by
// key at write time, decoding only the matched value.
func (t *Table) Get(key string) (value.Value, error) {
	lo, hi := uint32(0), t.count
	for lo < hi {
		mid := lo + (hi-lo)/2
		k, valOff := t.entryAt(mid)
		switch {
		case k == key:
			return t.r.decodeValue(valOff)
		case k < key:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return value.Value{}, value.KeyDoesNotExist(key)
}

// Iter visits entries in declaration order (ascending entry index).
func (t *Table) Iter(fn func(key string, v value.Value) bool) {
	for i := uint32(0); i < t.count; i++ {
		key, valOff := t.entryAt(i)
		v, err := t.r.decodeValue(valOff)
		if err != nil {
			return
		}
		if !fn(key, v) {
			return
		}
	}
}

// Array is a zero-copy, read-only view over one array record in a blob.
type Array struct {
	r      *Reader
	offset uint32
	count  uint32
	kind   byte
}

func (a *Array) Len() int { return int(a.count) }

func (a *Array) Get(index int) (value.Value, error) {
	if index < 0 || uint32(index) >= a.count {
		return value.Value{}, value.IndexOutOfBounds(index, int(a.count))
	}
	pos := a.offset + arrayRecordHeaderSize + uint32(index)*valueRecordSize
	return a.r.decodeValue(pos)
}

func (a *Array) Iter(fn func(index int, v value.Value) bool) {
	for i := uint32(0); i < a.count; i++ {
		pos := a.offset + arrayRecordHeaderSize + i*valueRecordSize
		v, err := a.r.decodeValue(pos)
		if err != nil {
			return
		}
		if !fn(int(i), v) {
			return
		}
	}
}

// ElementKind reports the array's homogeneous element kind, or false for
// an empty array. A numeric marker is reported as I64: the blob format
// only records "this array is numeric", not which of I64/F64 its first
// element originally was, and I64 is a valid (Compatible) witness for
// either since the kinds are unified for homogeneity purposes.
func (a *Array) ElementKind() (value.Kind, bool) {
	if a.count == 0 {
		return 0, false
	}
	if a.kind == numericArrayTag {
		return value.I64, true
	}
	return value.Kind(a.kind), true
}
