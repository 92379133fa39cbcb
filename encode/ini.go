package encode

import (
	"fmt"
	"io"
	"strings"

	"github.com/alex05447/miniconfig/escape"
	"github.com/alex05447/miniconfig/value"
)

// INI serializes root to the INI dialect also understood by [ini.Parse]:
// root-level pairs first, then one "[section]" per nested table,
// recursing with "/"-joined section paths when nested sections are
// permitted (spec.md §4.7). An array of non-primitive elements, or a
// table nested deeper than the dialect allows, fails closed with
// [*UnsupportedForIniError] rather than emitting a lossy approximation.
func INI(root value.TableReader, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	var b strings.Builder
	if err := writeIniTable(&b, root, nil, es); err != nil {
		return err
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeIniTable(b *strings.Builder, t value.TableReader, path value.Path, es *EncState) error {
	if len(path) > 0 {
		if err := writeIniSectionHeader(b, path, es); err != nil {
			return err
		}
	}

	var nestedKeys []string
	var err error
	t.Iter(func(key string, v value.Value) bool {
		if v.Kind() == value.Table {
			nestedKeys = append(nestedKeys, key)
			return true
		}
		err = writeIniPair(b, key, v, path, es)
		return err == nil
	})
	if err != nil {
		return err
	}

	for _, key := range nestedKeys {
		if len(path) >= 1 && !es.nestedSections {
			return unsupportedForIni(append(path, value.TableKey(key)), "nested sections disabled")
		}
		child, getErr := t.Get(key)
		if getErr != nil {
			return getErr
		}
		childTable, tableErr := child.Table()
		if tableErr != nil {
			return tableErr
		}
		childPath := append(append(value.Path{}, path...), value.TableKey(key))
		if err := writeIniTable(b, childTable, childPath, es); err != nil {
			return err
		}
	}
	return nil
}

func writeIniSectionHeader(b *strings.Builder, path value.Path, es *EncState) error {
	special := escape.INISpecial(es.nestedSections)
	b.WriteByte('[')
	for i, seg := range path {
		if i > 0 {
			b.WriteByte('/')
		}
		q, _ := escape.Quote(es.quotePolicy(special), seg.Table)
		b.WriteString(q)
	}
	b.WriteString("]\n")
	return nil
}

func writeIniPair(b *strings.Builder, key string, v value.Value, path value.Path, es *EncState) error {
	special := escape.INISpecial(es.nestedSections)
	qkey, _ := escape.Quote(es.quotePolicy(special), key)
	b.WriteString(qkey)
	b.WriteString(" = ")
	s, err := formatIniValue(v, append(path, value.TableKey(key)), es)
	if err != nil {
		return err
	}
	b.WriteString(s)
	b.WriteByte('\n')
	return nil
}

func formatIniValue(v value.Value, path value.Path, es *EncState) (string, error) {
	special := escape.INISpecial(es.nestedSections)
	switch v.Kind() {
	case value.Bool:
		return formatBool(v), nil
	case value.I64, value.F64:
		s, _ := formatNumeric(v)
		return s, nil
	case value.Str:
		s, _ := v.Str()
		q, _ := escape.Quote(es.quotePolicy(special), s)
		return q, nil
	case value.Array:
		a, _ := v.Array()
		return formatIniArray(a, path, es)
	default:
		return "", unsupportedForIni(path, fmt.Sprintf("cannot represent kind %v", v.Kind()))
	}
}

func formatIniArray(a value.ArrayReader, path value.Path, es *EncState) (string, error) {
	special := escape.INISpecial(es.nestedSections)
	var b strings.Builder
	b.WriteByte('[')
	n := a.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		v, err := a.Get(i)
		if err != nil {
			return "", err
		}
		elemPath := append(path, value.ArrayKey(i))
		switch v.Kind() {
		case value.Bool:
			b.WriteString(formatBool(v))
		case value.I64, value.F64:
			s, _ := formatNumeric(v)
			b.WriteString(s)
		case value.Str:
			s, _ := v.Str()
			q, _ := escape.Quote(es.quotePolicy(special), s)
			b.WriteString(q)
		default:
			return "", unsupportedForIni(elemPath, "array elements must be primitive for INI")
		}
	}
	b.WriteByte(']')
	return b.String(), nil
}
