package ini

// CommentChars is a bitmask of characters that may begin a line comment.
type CommentChars uint8

const (
	SemicolonComment CommentChars = 1 << iota
	HashComment
)

// Separators is a bitmask of accepted key/value separator characters.
type Separators uint8

const (
	EqualsSeparator Separators = 1 << iota
	ColonSeparator
)

// QuoteStyles is a bitmask of accepted quote characters for keys, section
// names, and string values.
type QuoteStyles uint8

const (
	SingleQuote QuoteStyles = 1 << iota
	DoubleQuote
)

// ArraySupport controls whether and how `[ v, v, ... ]` array values are
// recognized.
type ArraySupport int

const (
	ArraysDisabled ArraySupport = iota
	ArraysOptional
	ArraysRequired
)

// DuplicateSections controls what happens when a `[section]` header
// reappears.
type DuplicateSections int

const (
	DuplicateSectionsForbid DuplicateSections = iota
	DuplicateSectionsMerge
	DuplicateSectionsFirst
	DuplicateSectionsLast
)

// DuplicateKeys controls what happens when a key reappears within a
// section.
type DuplicateKeys int

const (
	DuplicateKeysForbid DuplicateKeys = iota
	DuplicateKeysFirst
	DuplicateKeysLast
)

// Options is the full set of independently toggleable INI dialect knobs
// (spec.md §4.4). The zero value is not a usable dialect; construct one
// with [Default] and apply [Option] functions over it, in the teacher's
// functional-option idiom (grounded on
// _examples/signadot-tony-format/go-tony/parse/parse_opts.go's
// ParseOption/parseOpts pattern).
type Options struct {
	LineComments         CommentChars
	InlineComments       bool
	KeyValueSeparators   Separators
	StringQuotes         QuoteStyles
	UnquotedStrings      bool
	Escape               bool
	LineContinuation     bool
	ArraySupport         ArraySupport
	NestedSections       bool
	DuplicateSections    DuplicateSections
	DuplicateKeys        DuplicateKeys
	ImplicitRootSection  bool
}

// Default returns the documented default dialect: both comment chars,
// both separators, both quote styles, unquoted strings, escape, and line
// continuation all on; arrays optional; nested sections on; duplicate
// sections and keys forbidden; an implicit root section. Mirrors the
// original crate's IniParser::new(...) builder defaults
// (_examples/original_source/src/ini.rs).
func Default() Options {
	return Options{
		LineComments:        SemicolonComment | HashComment,
		InlineComments:      true,
		KeyValueSeparators:  EqualsSeparator | ColonSeparator,
		StringQuotes:        SingleQuote | DoubleQuote,
		UnquotedStrings:     true,
		Escape:              true,
		LineContinuation:    true,
		ArraySupport:        ArraysOptional,
		NestedSections:      true,
		DuplicateSections:   DuplicateSectionsForbid,
		DuplicateKeys:       DuplicateKeysForbid,
		ImplicitRootSection: true,
	}
}

// Option mutates an [Options] value; see the With* constructors below.
type Option func(*Options)

func WithLineComments(c CommentChars) Option {
	return func(o *Options) { o.LineComments = c }
}

func WithInlineComments(enabled bool) Option {
	return func(o *Options) { o.InlineComments = enabled }
}

func WithKeyValueSeparators(s Separators) Option {
	return func(o *Options) { o.KeyValueSeparators = s }
}

func WithStringQuotes(q QuoteStyles) Option {
	return func(o *Options) { o.StringQuotes = q }
}

func WithUnquotedStrings(enabled bool) Option {
	return func(o *Options) { o.UnquotedStrings = enabled }
}

func WithEscape(enabled bool) Option {
	return func(o *Options) { o.Escape = enabled }
}

func WithLineContinuation(enabled bool) Option {
	return func(o *Options) { o.LineContinuation = enabled }
}

func WithArraySupport(a ArraySupport) Option {
	return func(o *Options) { o.ArraySupport = a }
}

func WithNestedSections(enabled bool) Option {
	return func(o *Options) { o.NestedSections = enabled }
}

func WithDuplicateSections(d DuplicateSections) Option {
	return func(o *Options) { o.DuplicateSections = d }
}

func WithDuplicateKeys(d DuplicateKeys) Option {
	return func(o *Options) { o.DuplicateKeys = d }
}

func WithImplicitRootSection(enabled bool) Option {
	return func(o *Options) { o.ImplicitRootSection = enabled }
}
