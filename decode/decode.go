// Package decode decodes a [value.TableReader] into a caller-supplied Go
// struct.
//
// This is not part of spec.md or of the original crate (a no_std-friendly
// low-level crate has no reflection-based decode), but every general-
// purpose Go config reader in the example corpus that exposes a generic
// map-shaped tree pairs it with exactly this ergonomic
// (_examples/nil-go-konf/config.go's Config.Unmarshal,
// _examples/shcv-kvl's equivalent). [Into] builds the same
// map[string]any/[]any shape those readers hand to mapstructure, then
// delegates to it with WeaklyTypedInput enabled; this is explicitly not
// schema validation, only mapstructure's weakly-typed coercion.
package decode

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/alex05447/miniconfig/value"
)

// Into decodes src into the struct (or map) pointed to by target, via
// mapstructure's default weakly-typed decoding rules. Field matching
// uses the "mapstructure" struct tag, mapstructure's own default.
func Into(src value.TableReader, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}
	if err := decoder.Decode(toPlain(src)); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// toPlain walks t into a plain map[string]any, with nested tables and
// arrays recursively converted the same way, so mapstructure's reflection
// never has to know about [value.TableReader]/[value.ArrayReader].
func toPlain(t value.TableReader) map[string]any {
	out := make(map[string]any, t.Len())
	t.Iter(func(key string, v value.Value) bool {
		out[key] = plainValue(v)
		return true
	})
	return out
}

func plainArray(a value.ArrayReader) []any {
	out := make([]any, 0, a.Len())
	a.Iter(func(_ int, v value.Value) bool {
		out = append(out, plainValue(v))
		return true
	})
	return out
}

func plainValue(v value.Value) any {
	switch v.Kind() {
	case value.Bool:
		b, _ := v.Bool()
		return b
	case value.I64:
		i, _ := v.I64()
		return i
	case value.F64:
		f, _ := v.F64()
		return f
	case value.Str:
		s, _ := v.Str()
		return s
	case value.Array:
		a, _ := v.Array()
		return plainArray(a)
	case value.Table:
		t, _ := v.Table()
		return toPlain(t)
	default:
		return nil
	}
}
