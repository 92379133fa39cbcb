// Package miniconfig is the façade over the library's pieces: parse INI
// text or a binary blob into a [Config], mutate it, serialize it back to
// INI or Lua-like text, or write it out as a binary blob. Everything
// here is thin glue over the [ini], [binary], [encode], and [dynconfig]
// packages; the real work lives there.
package miniconfig

import (
	"bytes"
	"io"

	"github.com/alex05447/miniconfig/binary"
	"github.com/alex05447/miniconfig/dynconfig"
	"github.com/alex05447/miniconfig/encode"
	"github.com/alex05447/miniconfig/ini"
	"github.com/alex05447/miniconfig/value"
)

// Config is the mutable, in-memory form: a thin wrapper over
// [dynconfig.Config] re-exported at the root so callers need not import
// the dynconfig package directly for everyday use.
type Config = dynconfig.Config

// New returns an empty, ready-to-use [Config].
func New() *Config {
	return dynconfig.FromTable(dynconfig.NewTable())
}

// Parse decodes INI text into a [Config], under the dialect Options
// configures (defaulting to [ini.Default] when opts is empty).
func Parse(src []byte, opts ...ini.Option) (*Config, error) {
	return ini.Parse(src, opts...)
}

// ReadBinary validates and reads a binary blob produced by [WriteBinary],
// returning a read-only view. Unlike [Config], the returned
// [binary.Reader] cannot be mutated directly; callers needing to mutate
// a read-back blob build a fresh [dynconfig.Table] from its contents.
func ReadBinary(buf []byte) (*binary.Reader, error) {
	return binary.New(buf)
}

// WriteBinary serializes src, typically a [Config]'s [dynconfig.Table]
// root (via [Config.Root]) or a [binary.Table] read back from another
// blob, to w as a binary blob readable by [ReadBinary].
func WriteBinary(src value.TableReader, w io.Writer) error {
	return binary.Write(src, w)
}

// ToBinary is a convenience wrapper over [WriteBinary] that returns the
// encoded blob directly.
func ToBinary(src value.TableReader) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToIniString serializes src to INI text.
func ToIniString(src value.TableReader, opts ...encode.EncodeOption) (string, error) {
	var b bytes.Buffer
	if err := encode.INI(src, &b, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ToLuaString serializes src to a Lua-like table expression.
func ToLuaString(src value.TableReader, opts ...encode.EncodeOption) (string, error) {
	var b bytes.Buffer
	if err := encode.Lua(src, &b, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}
