package binary

import (
	"encoding/binary"
	"io"
	"math"
	"sort"

	"github.com/alex05447/miniconfig/value"
)

// Write builds a binary blob from src and writes it to w, following
// spec.md §4.6's four-stage procedure: intern strings, lay out table/array
// records, emit them, then append the string region and a patched header.
// Write is deterministic: the same input tree always produces byte-
// identical output (spec.md §4.6, "Determinism").
func Write(src value.TableReader, w io.Writer) error {
	strBlob, strOffsets := internStrings(src)
	lay := layoutContainers(src)
	data := emitContainers(lay, strOffsets)

	header := make([]byte, headerSize)
	copy(header[0:4], magicBytes[:])
	putLe32(header[4:8], formatVersion)
	stringOff := uint32(headerSize) + uint32(len(data))
	totalLen := stringOff + uint32(len(strBlob))
	putLe32(header[8:12], totalLen)
	putLe32(header[12:16], stringOff)
	putLe32(header[16:20], uint32(len(strBlob)))
	putLe32(header[20:24], lay.tableOff[src])

	for _, chunk := range [][]byte{header, data, strBlob} {
		if _, err := w.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

// internStrings walks src once, collecting every key and every Str value
// into a content-deduplicated, null-terminated string region. Order of
// first appearance determines offset (spec.md §9, "String interning").
func internStrings(root value.TableReader) ([]byte, map[string]uint32) {
	offsets := make(map[string]uint32)
	var blob []byte

	intern := func(s string) {
		if _, ok := offsets[s]; ok {
			return
		}
		offsets[s] = uint32(len(blob))
		blob = append(blob, s...)
		blob = append(blob, 0)
	}

	var walkTable func(value.TableReader)
	var walkArray func(value.ArrayReader)
	walkValue := func(v value.Value) {
		switch v.Kind() {
		case value.Str:
			s, _ := v.Str()
			intern(s)
		case value.Array:
			a, _ := v.Array()
			walkArray(a)
		case value.Table:
			t, _ := v.Table()
			walkTable(t)
		}
	}
	walkTable = func(t value.TableReader) {
		t.Iter(func(key string, v value.Value) bool {
			intern(key)
			walkValue(v)
			return true
		})
	}
	walkArray = func(a value.ArrayReader) {
		a.Iter(func(_ int, v value.Value) bool {
			walkValue(v)
			return true
		})
	}
	walkTable(root)
	return blob, offsets
}

// containerLayout records the offset assigned to every table/array record
// during the layout pass, plus the BFS order to emit them in.
type containerLayout struct {
	tableOff map[value.TableReader]uint32
	arrayOff map[value.ArrayReader]uint32
	tables   []value.TableReader
	arrays   []value.ArrayReader
	dataLen  uint32
}

// layoutContainers walks src breadth-first, assigning sequential offsets
// to every table and array record in declaration order with root first
// (spec.md §4.6, "Layout pass"). Sizes are computed directly from each
// container's entry count, so no recursion into a container's contents is
// needed before its own offset is fixed.
func layoutContainers(root value.TableReader) *containerLayout {
	lay := &containerLayout{
		tableOff: map[value.TableReader]uint32{},
		arrayOff: map[value.ArrayReader]uint32{},
	}

	// Offsets are absolute within the blob: the data region starts right
	// after the header.
	offset := uint32(headerSize)
	place := func(v value.Value) {
		switch v.Kind() {
		case value.Table:
			t, _ := v.Table()
			lay.tableOff[t] = offset
			offset += tableRecordSize(t)
			lay.tables = append(lay.tables, t)
		case value.Array:
			a, _ := v.Array()
			lay.arrayOff[a] = offset
			offset += arrayRecordSize(a)
			lay.arrays = append(lay.arrays, a)
		}
	}

	lay.tableOff[root] = offset
	offset += tableRecordSize(root)
	lay.tables = append(lay.tables, root)

	// Drain both queues to a fixed point: each pass walks every
	// not-yet-visited table then every not-yet-visited array, and since
	// walking one queue can append to the other, the outer loop rechecks
	// both lengths until neither has grown.
	for ti, ai := 0, 0; ti < len(lay.tables) || ai < len(lay.arrays); {
		for ti < len(lay.tables) {
			t := lay.tables[ti]
			ti++
			t.Iter(func(_ string, v value.Value) bool {
				place(v)
				return true
			})
		}
		for ai < len(lay.arrays) {
			a := lay.arrays[ai]
			ai++
			a.Iter(func(_ int, v value.Value) bool {
				place(v)
				return true
			})
		}
	}

	lay.dataLen = offset
	return lay
}

func emitContainers(lay *containerLayout, strOffsets map[string]uint32) []byte {
	// lay.dataLen is the absolute end of the data region; records are
	// written at their absolute offsets and the header-sized prefix is
	// dropped, since Write emits the header separately.
	data := make([]byte, lay.dataLen)
	for _, t := range lay.tables {
		writeTableRecord(data, lay.tableOff[t], t, strOffsets, lay.tableOff, lay.arrayOff)
	}
	for _, a := range lay.arrays {
		writeArrayRecord(data, lay.arrayOff[a], a, strOffsets, lay.tableOff, lay.arrayOff)
	}
	return data[headerSize:]
}

func writeTableRecord(
	data []byte, offset uint32, t value.TableReader,
	strOffsets map[string]uint32,
	tableOff map[value.TableReader]uint32, arrayOff map[value.ArrayReader]uint32,
) {
	type entry struct {
		key string
		val value.Value
	}
	entries := make([]entry, 0, t.Len())
	t.Iter(func(k string, v value.Value) bool {
		entries = append(entries, entry{k, v})
		return true
	})
	// Entries are sorted by key bytes before emission, for binary-search
	// lookup and deterministic output (spec.md §4.5, §4.6).
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	putLe32(data[offset:offset+4], uint32(len(entries)))

	pos := offset + tableRecordHeaderSize
	for _, e := range entries {
		putLe32(data[pos:pos+4], strOffsets[e.key])
		putLe32(data[pos+4:pos+8], uint32(len(e.key)))
		rec := encodeValue(e.val, strOffsets, tableOff, arrayOff)
		copy(data[pos+8:pos+8+valueRecordSize], rec[:])
		pos += tableEntrySize
	}
}

func writeArrayRecord(
	data []byte, offset uint32, a value.ArrayReader,
	strOffsets map[string]uint32,
	tableOff map[value.TableReader]uint32, arrayOff map[value.ArrayReader]uint32,
) {
	data[offset] = elementKindTag(a)
	pos := offset + arrayRecordHeaderSize
	a.Iter(func(_ int, v value.Value) bool {
		rec := encodeValue(v, strOffsets, tableOff, arrayOff)
		copy(data[pos:pos+valueRecordSize], rec[:])
		pos += valueRecordSize
		return true
	})
}

func encodeValue(
	v value.Value,
	strOffsets map[string]uint32,
	tableOff map[value.TableReader]uint32, arrayOff map[value.ArrayReader]uint32,
) [valueRecordSize]byte {
	var rec [valueRecordSize]byte
	rec[0] = byte(v.Kind())
	payload := rec[8:16]
	switch v.Kind() {
	case value.Bool:
		b, _ := v.Bool()
		if b {
			payload[0] = 1
		}
	case value.I64:
		i, _ := v.I64()
		binary.LittleEndian.PutUint64(payload, uint64(i))
	case value.F64:
		f, _ := v.F64()
		binary.LittleEndian.PutUint64(payload, math.Float64bits(f))
	case value.Str:
		s, _ := v.Str()
		putLe32(payload[0:4], strOffsets[s])
		putLe32(payload[4:8], uint32(len(s)))
	case value.Array:
		a, _ := v.Array()
		putLe32(payload[0:4], arrayOff[a])
		putLe32(payload[4:8], uint32(a.Len()))
	case value.Table:
		t, _ := v.Table()
		putLe32(payload[0:4], tableOff[t])
		putLe32(payload[4:8], uint32(t.Len()))
	}
	return rec
}
