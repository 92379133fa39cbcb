package escape

import (
	"strings"
	"testing"
)

func TestUnescapeMnemonics(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`a\nb`, "a\nb"},
		{`a\tb`, "a\tb"},
		{`\\`, `\`},
		{`\x41`, "A"},
	}
	for _, tt := range tests {
		got, err := Unescape(tt.in, false)
		if err != nil {
			t.Fatalf("Unescape(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnescapeUnicode(t *testing.T) {
	got, err := Unescape(`é`, true)
	if err != nil {
		t.Fatalf("Unescape error: %v", err)
	}
	if got != "é" {
		t.Fatalf("Unescape = %q, want %q", got, "é")
	}

	if _, err := Unescape(`é`, false); err == nil {
		t.Fatal("expected error when unicode escapes disabled")
	}
}

func TestLineContinuation(t *testing.T) {
	got, err := Unescape("a\\\nb\\\nc", false)
	if err != nil {
		t.Fatalf("Unescape error: %v", err)
	}
	if got != "abc" {
		t.Fatalf("Unescape = %q, want %q", got, "abc")
	}
}

func TestUnescapeInvalid(t *testing.T) {
	if _, err := Unescape(`\q`, false); err == nil {
		t.Fatal("expected error for unknown escape")
	}
	if _, err := Unescape(`\`, false); err == nil {
		t.Fatal("expected error for trailing backslash")
	}
}

func TestQuotePrefersUnquoted(t *testing.T) {
	policy := QuotePolicy{AllowSingle: true, AllowDouble: true, Special: INISpecial(false)}
	got, style := Quote(policy, "hello")
	if style != Unquoted || got != "hello" {
		t.Fatalf("Quote(hello) = %q, %v; want unquoted", got, style)
	}
}

func TestQuotePrefersMateAbsent(t *testing.T) {
	policy := QuotePolicy{AllowSingle: true, AllowDouble: true, Special: INISpecial(false)}
	got, style := Quote(policy, `has "double" quotes`)
	if style != SingleQuoted {
		t.Fatalf("Quote with double quotes present should pick single, got %v (%q)", style, got)
	}

	got, style = Quote(policy, "has 'single' quotes")
	if style != DoubleQuoted {
		t.Fatalf("Quote with single quotes present should pick double, got %v (%q)", style, got)
	}
}

func TestQuoteEmptyString(t *testing.T) {
	policy := QuotePolicy{AllowSingle: true, AllowDouble: true, Special: INISpecial(false)}
	got, style := Quote(policy, "")
	if style == Unquoted {
		t.Fatal("empty string must not be emitted unquoted (would parse as nothing)")
	}
	if got != `""` {
		t.Fatalf("Quote(\"\") = %q, want `\"\"`", got)
	}
}

func TestQuoteForcesQuotingOnAmbiguousLiterals(t *testing.T) {
	policy := QuotePolicy{AllowSingle: true, AllowDouble: true, Special: INISpecial(false)}
	for _, s := range []string{"true", "false", "42", "-7", "+3.5", "4a2", `"quoted`, "'quoted", "[1, 2]"} {
		if _, style := Quote(policy, s); style == Unquoted {
			t.Fatalf("Quote(%q) emitted unquoted; would misparse on re-read", s)
		}
	}
}

func TestQuoteLeavesOrdinaryTextUnquoted(t *testing.T) {
	policy := QuotePolicy{AllowSingle: true, AllowDouble: true, Special: INISpecial(false)}
	for _, s := range []string{"hello", "truest", "widget-1"} {
		if _, style := Quote(policy, s); style != Unquoted {
			t.Fatalf("Quote(%q) was quoted unnecessarily", s)
		}
	}
}

func TestWriteEscapedConditional(t *testing.T) {
	var b strings.Builder
	WriteEscaped(&b, "a[b]c", INISpecial(false), false)
	got := b.String()
	want := `a\x5bb\x5dc`
	if got != want {
		t.Fatalf("WriteEscaped = %q, want %q", got, want)
	}
}
