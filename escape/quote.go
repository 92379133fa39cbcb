package escape

import "strings"

// QuoteStyle identifies how [Quote] chose to represent a string.
type QuoteStyle int

const (
	Unquoted QuoteStyle = iota
	SingleQuoted
	DoubleQuoted
)

// QuotePolicy carries the dialect knobs [Quote] needs: which quote
// characters the target dialect accepts at all, and the conditionally-
// special predicate determining when unquoted text would be ambiguous.
type QuotePolicy struct {
	AllowSingle bool
	AllowDouble bool
	Special     ConditionallySpecial
	Unicode     bool
}

// Quote renders s for embedding as a key or string value under policy,
// choosing unquoted form when s contains no conditionally-special
// character (and isn't empty), otherwise preferring whichever permitted
// quote style's mate character does not occur in s, otherwise falling
// back to escaping every occurrence of the chosen mate as \xHH (spec.md §4.2).
func Quote(policy QuotePolicy, s string) (string, QuoteStyle) {
	if s != "" && !needsQuoting(s, policy.Special) {
		return s, Unquoted
	}

	hasSingle := strings.ContainsRune(s, '\'')
	hasDouble := strings.ContainsRune(s, '"')

	style := DoubleQuoted
	switch {
	case policy.AllowDouble && !hasDouble:
		style = DoubleQuoted
	case policy.AllowSingle && !hasSingle:
		style = SingleQuoted
	case policy.AllowDouble:
		style = DoubleQuoted
	case policy.AllowSingle:
		style = SingleQuoted
	}

	quoteRune := byte('"')
	if style == SingleQuoted {
		quoteRune = '\''
	}

	var b strings.Builder
	b.WriteByte(quoteRune)
	for _, r := range s {
		if byte(r) == quoteRune && r < 0x80 {
			writeHexEscape(&b, r, false)
			continue
		}
		if AlwaysSpecial(r) {
			b.WriteByte('\\')
			b.WriteByte(mnemonics[r])
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte(quoteRune)
	return b.String(), style
}

func needsQuoting(s string, special ConditionallySpecial) bool {
	if needsLiteralQuoting(s) {
		return true
	}
	for _, r := range s {
		if AlwaysSpecial(r) {
			return true
		}
		if special != nil && special(r) {
			return true
		}
	}
	return false
}

// needsLiteralQuoting reports whether s, left unquoted, would be misread on
// re-parse as something other than the string it is: the dialect's bool
// spelling, a number (or text that merely looks like an attempted one, which
// the parser rejects outright rather than falling back to a string), an
// array opener, or the start of a quoted string. Grounded on the teacher's
// own NeedsQuote (go-tony/token/quoted.go), generalized from its JSON-shaped
// checks (leading digit, true/false/null) to this dialect's own reserved
// spellings and opener characters.
func needsLiteralQuoting(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '"', '\'', '[':
		return true
	}
	if s == "true" || s == "false" {
		return true
	}
	body := s
	if body[0] == '+' || body[0] == '-' {
		body = body[1:]
	}
	return len(body) > 0 && body[0] >= '0' && body[0] <= '9'
}
