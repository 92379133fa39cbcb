// Package ini implements the INI-like text dialect: a hand-rolled,
// options-driven recursive-descent parser that reads INI source text into
// a [dynconfig.Table] tree. Grounded on the teacher's parse/parse.go
// recursive-descent shape (one parser struct walking a cursor, dispatching
// on the next significant byte), generalized from the teacher's
// whitespace-significant multi-dialect grammar (YAML/JSON/Tony) down to
// this package's line-oriented INI grammar.
package ini

import (
	"fmt"
	"strings"

	"github.com/alex05447/miniconfig/dynconfig"
	"github.com/alex05447/miniconfig/escape"
	"github.com/alex05447/miniconfig/ini/token"
	"github.com/alex05447/miniconfig/value"
)

// Parse reads INI source text under the given options (or [Default] if
// none are given) and returns the resulting config tree. A failed parse
// returns a nil config and a non-nil [*ParseError] (spec.md §7: "a failed
// parse yields no config").
func Parse(data []byte, opts ...Option) (*dynconfig.Config, error) {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}
	p := newParser(stripBOM(data), o)
	if err := p.run(); err != nil {
		return nil, err
	}
	return dynconfig.FromTable(p.root), nil
}

func stripBOM(data []byte) []byte {
	bom := []byte{0xEF, 0xBB, 0xBF}
	if len(data) >= 3 && data[0] == bom[0] && data[1] == bom[1] && data[2] == bom[2] {
		return data[3:]
	}
	return data
}

type parser struct {
	cur        *token.Cursor
	opts       Options
	root       *dynconfig.Table
	sections   map[string]*dynconfig.Table
	sawSection bool
}

func newParser(data []byte, o Options) *parser {
	root := dynconfig.NewTable()
	return &parser{
		cur:      token.NewCursor(data),
		opts:     o,
		root:     root,
		sections: map[string]*dynconfig.Table{"": root},
	}
}

func (p *parser) run() error {
	current := p.root
	for {
		p.skipBlankLines()
		if p.cur.Eof() {
			return nil
		}
		b, _ := p.cur.Peek()
		if p.isCommentStart(b) {
			p.skipToEOL()
			continue
		}
		if b == '[' {
			tbl, err := p.parseSectionHeader()
			if err != nil {
				return err
			}
			current = tbl
			p.sawSection = true
			continue
		}
		if current == p.root && !p.sawSection && !p.opts.ImplicitRootSection {
			return newParseError(p.cur.Pos(), ParentSectionMissing, "keys before the first section header are not permitted")
		}
		if err := p.parseKeyValue(current); err != nil {
			return err
		}
	}
}

func (p *parser) skipBlankLines() {
	for {
		p.skipHSpace()
		b, ok := p.cur.Peek()
		if !ok {
			return
		}
		if b == '\n' {
			p.cur.Advance()
			continue
		}
		return
	}
}

func (p *parser) skipHSpace() {
	p.cur.SkipWhile(func(b byte) bool { return b == ' ' || b == '\t' || b == '\r' })
}

func (p *parser) skipToEOL() {
	for {
		b, ok := p.cur.Peek()
		if !ok || b == '\n' {
			return
		}
		p.cur.Advance()
	}
}

func (p *parser) isCommentStart(b byte) bool {
	if b == ';' && p.opts.LineComments&SemicolonComment != 0 {
		return true
	}
	if b == '#' && p.opts.LineComments&HashComment != 0 {
		return true
	}
	return false
}

func (p *parser) quoteFor(b byte) (byte, bool) {
	if b == '\'' && p.opts.StringQuotes&SingleQuote != 0 {
		return '\'', true
	}
	if b == '"' && p.opts.StringQuotes&DoubleQuote != 0 {
		return '"', true
	}
	return 0, false
}

func (p *parser) isEnabledSeparator(b byte) bool {
	if b == '=' && p.opts.KeyValueSeparators&EqualsSeparator != 0 {
		return true
	}
	if b == ':' && p.opts.KeyValueSeparators&ColonSeparator != 0 {
		return true
	}
	return false
}

// finishLine consumes trailing horizontal whitespace and an optional
// inline comment, then requires end-of-line or end-of-input.
func (p *parser) finishLine() error {
	p.skipHSpace()
	b, ok := p.cur.Peek()
	if !ok || b == '\n' {
		return nil
	}
	if p.opts.InlineComments && p.isCommentStart(b) {
		p.skipToEOL()
		return nil
	}
	return newParseError(p.cur.Pos(), UnexpectedCharacter, fmt.Sprintf("unexpected trailing character %q", string(b)))
}

// scanRaw reads raw bytes up to (but not including) the first unescaped
// byte satisfying stop, a bare newline, or end-of-input, honoring the
// escape and line-continuation policy along the way. It reports whether
// stop was what ended the scan (as opposed to newline/EOF).
func (p *parser) scanRaw(stop func(byte) bool, allowLineContinuation bool) (string, bool, error) {
	var raw strings.Builder
	for {
		b, ok := p.cur.Peek()
		if !ok || b == '\n' {
			return raw.String(), false, nil
		}
		if stop(b) {
			return raw.String(), true, nil
		}
		if b == '\\' {
			if nb, ok2 := p.cur.PeekAt(1); ok2 && (nb == '\n' || nb == '\r') {
				if !p.opts.Escape || !allowLineContinuation || !p.opts.LineContinuation {
					return "", false, newParseError(p.cur.Pos(), InvalidEscape, "line continuation is not permitted here")
				}
				p.cur.Advance() // backslash
				cr, _ := p.cur.Advance()
				if cr == '\r' {
					if nx, ok3 := p.cur.Peek(); ok3 && nx == '\n' {
						p.cur.Advance()
					}
				}
				continue
			}
			if p.opts.Escape {
				raw.WriteByte(b)
				p.cur.Advance()
				if nb, ok2 := p.cur.Peek(); ok2 {
					raw.WriteByte(nb)
					p.cur.Advance()
				}
				continue
			}
		}
		raw.WriteByte(b)
		p.cur.Advance()
	}
}

// parseName parses a key or section-path-segment name: a quoted string
// under any enabled quote style, or an unquoted run terminated by
// isTerminator (spec.md §4.4, "the shared name parser").
func (p *parser) parseName(isTerminator func(byte) bool) (string, error) {
	p.skipHSpace()
	b, ok := p.cur.Peek()
	if !ok {
		return "", newParseError(p.cur.Pos(), UnexpectedEnd, "expected a name")
	}
	if q, isQuote := p.quoteFor(b); isQuote {
		return p.parseQuotedString(q)
	}
	raw, _, err := p.scanRaw(isTerminator, false)
	if err != nil {
		return "", err
	}
	s := strings.TrimRight(raw, " \t")
	if !p.opts.Escape {
		return s, nil
	}
	unescaped, err := escape.Unescape(s, true)
	if err != nil {
		return "", newParseError(p.cur.Pos(), InvalidEscape, err.Error())
	}
	return unescaped, nil
}

func (p *parser) parseQuotedString(q byte) (string, error) {
	startPos := p.cur.Pos()
	p.cur.Advance() // opening quote
	raw, stopped, err := p.scanRaw(func(b byte) bool { return b == q }, true)
	if err != nil {
		return "", err
	}
	if !stopped {
		return "", newParseError(startPos, UnterminatedString, "missing closing quote")
	}
	p.cur.Advance() // closing quote
	if !p.opts.Escape {
		return raw, nil
	}
	unescaped, err := escape.Unescape(raw, true)
	if err != nil {
		return "", newParseError(startPos, InvalidEscape, err.Error())
	}
	return unescaped, nil
}

func isKeyNameTerminator(b byte) bool { return b == '=' || b == ':' }

func (p *parser) parseKeyValue(current *dynconfig.Table) error {
	keyPos := p.cur.Pos()
	key, err := p.parseName(isKeyNameTerminator)
	if err != nil {
		return err
	}
	if key == "" {
		return newParseError(keyPos, InvalidKey, "key name must not be empty")
	}
	p.skipHSpace()
	sepB, ok := p.cur.Peek()
	if !ok {
		return newParseError(p.cur.Pos(), UnexpectedEnd, "expected a key/value separator")
	}
	if sepB != '=' && sepB != ':' {
		return newParseError(p.cur.Pos(), UnexpectedCharacter, fmt.Sprintf("expected '=' or ':', found %q", string(sepB)))
	}
	if !p.isEnabledSeparator(sepB) {
		return newParseError(p.cur.Pos(), InvalidSeparator, fmt.Sprintf("separator %q is disabled by the current dialect", string(sepB)))
	}
	p.cur.Advance()
	p.skipHSpace()

	v, err := p.parseValue()
	if err != nil {
		return err
	}
	if err := p.finishLine(); err != nil {
		return err
	}
	return p.assignKey(current, key, v, keyPos)
}

func (p *parser) assignKey(tbl *dynconfig.Table, key string, v value.Value, at token.Pos) error {
	if tbl.Contains(key) {
		switch p.opts.DuplicateKeys {
		case DuplicateKeysForbid:
			return newParseError(at, DuplicateKey, fmt.Sprintf("key %q is already set in this section", key))
		case DuplicateKeysFirst:
			return nil
		case DuplicateKeysLast:
			// falls through to Set, which replaces in place.
		}
	}
	if err := tbl.Set(key, v); err != nil {
		return newParseError(at, InvalidKey, err.Error())
	}
	return nil
}

func (p *parser) parseValue() (value.Value, error) {
	p.skipHSpace()
	b, ok := p.cur.Peek()
	if !ok {
		return value.Value{}, newParseError(p.cur.Pos(), UnexpectedEnd, "expected a value")
	}
	if b == '[' && p.opts.ArraySupport != ArraysDisabled {
		return p.parseArray()
	}
	if q, isQuote := p.quoteFor(b); isQuote {
		s, err := p.parseQuotedString(q)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewStr(s), nil
	}
	return p.parseUnquotedScalar(func(b byte) bool {
		return p.opts.InlineComments && p.isCommentStart(b)
	})
}

func (p *parser) skipArrayWhitespace() {
	p.cur.SkipWhile(func(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' })
}

func (p *parser) parseArray() (value.Value, error) {
	startPos := p.cur.Pos()
	p.cur.Advance() // '['
	arr := dynconfig.NewArray()
	for {
		p.skipArrayWhitespace()
		b, ok := p.cur.Peek()
		if !ok {
			return value.Value{}, newParseError(startPos, UnterminatedArray, "missing closing ']'")
		}
		if b == ']' {
			p.cur.Advance()
			return value.NewArray(arr), nil
		}
		elem, err := p.parseArrayElement()
		if err != nil {
			return value.Value{}, err
		}
		if err := arr.Push(elem); err != nil {
			return value.Value{}, newParseError(startPos, MixedArray, err.Error())
		}
		p.skipArrayWhitespace()
		b, ok = p.cur.Peek()
		if !ok {
			return value.Value{}, newParseError(startPos, UnterminatedArray, "missing closing ']'")
		}
		switch b {
		case ',':
			p.cur.Advance()
		case ']':
			p.cur.Advance()
			return value.NewArray(arr), nil
		default:
			return value.Value{}, newParseError(p.cur.Pos(), UnexpectedCharacter, "expected ',' or ']' in array")
		}
	}
}

func (p *parser) parseArrayElement() (value.Value, error) {
	p.skipHSpace()
	b, ok := p.cur.Peek()
	if !ok {
		return value.Value{}, newParseError(p.cur.Pos(), UnexpectedEnd, "expected an array element")
	}
	if q, isQuote := p.quoteFor(b); isQuote {
		s, err := p.parseQuotedString(q)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewStr(s), nil
	}
	return p.parseUnquotedScalar(func(b byte) bool { return b == ',' || b == ']' })
}

func looksLikeAttemptedNumber(s string) bool {
	body := s
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		body = body[1:]
	}
	return len(body) > 0 && body[0] >= '0' && body[0] <= '9'
}

// parseUnquotedScalar reads unquoted text up to stop (or EOL/EOF) and
// classifies it per spec.md §4.4's value-parsing order: bool, then
// integer, then float, then (if enabled) a plain string.
func (p *parser) parseUnquotedScalar(stop func(byte) bool) (value.Value, error) {
	startPos := p.cur.Pos()
	raw, _, err := p.scanRaw(stop, true)
	if err != nil {
		return value.Value{}, err
	}
	text := strings.TrimRight(raw, " \t")

	switch text {
	case "true":
		return value.NewBool(true), nil
	case "false":
		return value.NewBool(false), nil
	}

	if i, ierr := token.ParseInt(text); ierr == nil {
		return value.NewI64(i), nil
	} else if ierr == token.ErrNumberRange {
		return value.Value{}, newParseError(startPos, NumberOutOfRange, fmt.Sprintf("integer literal %q is out of range", text))
	}
	if f, ferr := token.ParseFloat(text); ferr == nil {
		return value.NewF64(f), nil
	} else if ferr == token.ErrNumberRange {
		return value.Value{}, newParseError(startPos, NumberOutOfRange, fmt.Sprintf("float literal %q is out of range", text))
	}
	if looksLikeAttemptedNumber(text) {
		return value.Value{}, newParseError(startPos, InvalidNumber, fmt.Sprintf("malformed numeric literal %q", text))
	}

	if !p.opts.UnquotedStrings {
		return value.Value{}, newParseError(startPos, UnquotedString, fmt.Sprintf("unquoted string %q is not permitted by the current dialect", text))
	}
	if !p.opts.Escape {
		return value.NewStr(text), nil
	}
	unescaped, uerr := escape.Unescape(text, true)
	if uerr != nil {
		return value.Value{}, newParseError(startPos, InvalidEscape, uerr.Error())
	}
	return value.NewStr(unescaped), nil
}

func (p *parser) sectionPathTerminator(b byte) bool {
	if b == ']' {
		return true
	}
	return p.opts.NestedSections && b == '/'
}

func (p *parser) parseSectionPath() ([]string, error) {
	var segments []string
	for {
		seg, err := p.parseName(p.sectionPathTerminator)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
		if p.opts.NestedSections {
			if b, ok := p.cur.Peek(); ok && b == '/' {
				p.cur.Advance()
				continue
			}
		}
		return segments, nil
	}
}

func (p *parser) parseSectionHeader() (*dynconfig.Table, error) {
	startPos := p.cur.Pos()
	p.cur.Advance() // '['
	segments, err := p.parseSectionPath()
	if err != nil {
		return nil, err
	}
	p.skipHSpace()
	b, ok := p.cur.Peek()
	if !ok || b != ']' {
		return nil, newParseError(p.cur.Pos(), UnexpectedCharacter, "expected ']' to close the section header")
	}
	p.cur.Advance()
	if err := p.finishLine(); err != nil {
		return nil, err
	}

	for _, seg := range segments {
		if seg == "" {
			return nil, newParseError(startPos, EmptySectionName, "section name must not be empty")
		}
	}

	return p.resolveSection(segments, startPos)
}

// resolveSection walks a (possibly multi-segment, for nested sections)
// section path left to right, requiring every parent prefix to already be
// a declared table (spec.md §4.4, "Nested sections": "every parent must
// have been declared explicitly"), then creates or resolves the final
// segment per the duplicate_sections policy.
func (p *parser) resolveSection(segments []string, at token.Pos) (*dynconfig.Table, error) {
	parent := p.root
	path := ""
	for i, seg := range segments {
		if path == "" {
			path = seg
		} else {
			path = path + "/" + seg
		}
		last := i == len(segments)-1
		existing, declared := p.sections[path]

		if !last {
			if !declared {
				return nil, newParseError(at, ParentSectionMissing, fmt.Sprintf("parent section %q has not been declared", path))
			}
			parent = existing
			continue
		}

		if !declared {
			tbl := dynconfig.NewTable()
			if err := parent.SetTable(seg, tbl); err != nil {
				return nil, newParseError(at, InvalidKey, err.Error())
			}
			p.sections[path] = tbl
			return tbl, nil
		}

		switch p.opts.DuplicateSections {
		case DuplicateSectionsForbid:
			return nil, newParseError(at, DuplicateSection, fmt.Sprintf("section %q is already declared", path))
		case DuplicateSectionsMerge:
			return existing, nil
		case DuplicateSectionsFirst:
			// Later occurrences are parsed but their keys are discarded:
			// route assignments to a table nothing else references.
			return dynconfig.NewTable(), nil
		case DuplicateSectionsLast:
			tbl := dynconfig.NewTable()
			if err := parent.SetTable(seg, tbl); err != nil {
				return nil, newParseError(at, InvalidKey, err.Error())
			}
			p.sections[path] = tbl
			return tbl, nil
		}
	}
	return parent, nil
}
