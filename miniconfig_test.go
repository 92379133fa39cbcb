package miniconfig

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/alex05447/miniconfig/dynconfig"
	"github.com/alex05447/miniconfig/value"
)

const sampleIni = `port = 8080
enabled = true
name = "widget"
rates = [1, 2, 3.5]

[server]
host = "localhost"
timeout = 30
`

func TestParseThenQuery(t *testing.T) {
	cfg, err := Parse([]byte(sampleIni))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	port, err := cfg.GetI64Path(value.Path{value.TableKey("port")})
	if err != nil || port != 8080 {
		t.Fatalf("port = %d, %v; want 8080, nil", port, err)
	}
	host, err := cfg.GetStrPath(value.Path{value.TableKey("server"), value.TableKey("host")})
	if err != nil || host != "localhost" {
		t.Fatalf("server.host = %q, %v; want %q, nil", host, err, "localhost")
	}
}

// TestIniRoundTrip checks spec.md §8 property (iii): re-emitting and
// re-parsing an INI config yields an equal config. A line-level diff
// from go-diff is attached to the failure message so a mismatch reads
// like a human-diffable config rather than a raw string dump.
func TestIniRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(sampleIni))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := ToIniString(cfg.Root())
	if err != nil {
		t.Fatalf("ToIniString: %v", err)
	}
	reparsed, err := Parse([]byte(out))
	if err != nil {
		t.Fatalf("Parse(re-emitted): %v\n%s", err, out)
	}
	if !dynconfig.EqualTables(cfg.Root(), reparsed.Root()) {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(sampleIni, out, false)
		t.Fatalf("round-trip mismatch; diff of original vs re-emitted:\n%s", dmp.DiffPrettyText(diffs))
	}
}

// TestBinaryRoundTrip checks spec.md §8 property (ii): the tree read
// back from a written blob equals the original tree modulo ordering.
func TestBinaryRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(sampleIni))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	blob, err := ToBinary(cfg.Root())
	if err != nil {
		t.Fatalf("ToBinary: %v", err)
	}
	reader, err := ReadBinary(blob)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}
	if !dynconfig.EqualTables(cfg.Root(), reader.Root()) {
		t.Fatalf("binary round-trip mismatch")
	}
}

func TestToLuaString(t *testing.T) {
	cfg, err := Parse([]byte(sampleIni))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := ToLuaString(cfg.Root())
	if err != nil {
		t.Fatalf("ToLuaString: %v", err)
	}
	if len(out) == 0 || out[0] != '{' {
		t.Fatalf("ToLuaString produced %q", out)
	}
}

func TestNewEmptyConfig(t *testing.T) {
	cfg := New()
	if cfg.Root().Len() != 0 {
		t.Fatalf("New() root len = %d, want 0", cfg.Root().Len())
	}
}
