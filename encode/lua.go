package encode

import (
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/alex05447/miniconfig/escape"
	"github.com/alex05447/miniconfig/value"
)

var luaIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// luaAlwaysQuote forces [escape.Quote] into its quoted branch: Lua table
// keys and string values are never left bare, unlike the INI dialect
// where quoting is only needed to disambiguate.
func luaAlwaysQuote(r rune) bool { return true }

// Lua serializes root as a single brace-delimited Lua table expression
// (spec.md §4.7). Keys matching the bare-identifier pattern are emitted
// unquoted; any other key is bracket-indexed and quoted. Entries are
// sorted by key for stable output, unlike [INI], which preserves
// iteration order.
func Lua(root value.TableReader, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	var b strings.Builder
	writeLuaTable(&b, root, es, 0)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeLuaTable(b *strings.Builder, t value.TableReader, es *EncState, depth int) {
	b.WriteString("{\n")
	entries := sortedEntries(t)
	pad := strings.Repeat(" ", es.indent*(depth+1))
	for _, e := range entries {
		b.WriteString(pad)
		writeLuaKey(b, e.key, es)
		b.WriteString(" = ")
		writeLuaValue(b, e.value, es, depth+1)
		b.WriteString(",\n")
	}
	b.WriteString(strings.Repeat(" ", es.indent*depth))
	b.WriteByte('}')
}

type tableEntry struct {
	key   string
	value value.Value
}

func sortedEntries(t value.TableReader) []tableEntry {
	entries := make([]tableEntry, 0, t.Len())
	t.Iter(func(key string, v value.Value) bool {
		entries = append(entries, tableEntry{key, v})
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	return entries
}

func writeLuaKey(b *strings.Builder, key string, es *EncState) {
	if luaIdentifier.MatchString(key) {
		b.WriteString(key)
		return
	}
	b.WriteByte('[')
	q, _ := escape.Quote(es.quotePolicy(luaAlwaysQuote), key)
	b.WriteString(q)
	b.WriteByte(']')
}

func writeLuaValue(b *strings.Builder, v value.Value, es *EncState, depth int) {
	switch v.Kind() {
	case value.Bool:
		b.WriteString(formatBool(v))
	case value.I64, value.F64:
		s, _ := formatNumeric(v)
		b.WriteString(s)
	case value.Str:
		s, _ := v.Str()
		q, _ := escape.Quote(es.quotePolicy(luaAlwaysQuote), s)
		b.WriteString(q)
	case value.Array:
		a, _ := v.Array()
		writeLuaArray(b, a, es, depth)
	case value.Table:
		t, _ := v.Table()
		writeLuaTable(b, t, es, depth)
	}
}

func writeLuaArray(b *strings.Builder, a value.ArrayReader, es *EncState, depth int) {
	n := a.Len()
	if n == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{\n")
	pad := strings.Repeat(" ", es.indent*(depth+1))
	for i := 0; i < n; i++ {
		v, err := a.Get(i)
		if err != nil {
			continue
		}
		b.WriteString(pad)
		writeLuaValue(b, v, es, depth+1)
		b.WriteString(",\n")
	}
	b.WriteString(strings.Repeat(" ", es.indent*depth))
	b.WriteByte('}')
}
