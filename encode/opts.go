package encode

// EncState carries the dialect knobs both emitters need. The zero value
// is not ready to use; [INI] and [Lua] build one from defaultState plus the
// caller's options.
type EncState struct {
	allowSingleQuote bool
	allowDoubleQuote bool
	allowUnicode     bool
	nestedSections   bool
	indent           int
}

func defaultState() *EncState {
	return &EncState{
		allowSingleQuote: true,
		allowDoubleQuote: true,
		allowUnicode:     true,
		nestedSections:   true,
		indent:           2,
	}
}

// EncodeOption mutates an [EncState]; apply with [INI] or [Lua].
type EncodeOption func(*EncState)

// WithQuoteStyles restricts which quote characters the emitter may use
// for keys, section names, and string values.
func WithQuoteStyles(allowSingle, allowDouble bool) EncodeOption {
	return func(es *EncState) {
		es.allowSingleQuote = allowSingle
		es.allowDoubleQuote = allowDouble
	}
}

// WithUnicodeEscapes sets the Unicode flag of the [escape.QuotePolicy]
// both emitters pass to [escape.Quote]. Quote does not read that flag: it
// emits only mnemonic escapes and \xHH escapes of the quote character, so
// this option does not change the output.
func WithUnicodeEscapes(enabled bool) EncodeOption {
	return func(es *EncState) { es.allowUnicode = enabled }
}

// WithNestedSections controls whether [INI] permits tables nested more
// than one level below the root. Disabling it makes a doubly-nested
// table an [ErrUnsupportedForIni] error instead of a "/"-joined section
// path.
func WithNestedSections(enabled bool) EncodeOption {
	return func(es *EncState) { es.nestedSections = enabled }
}

// WithIndent sets the number of spaces [Lua] indents per nesting level.
func WithIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func newState(opts []EncodeOption) *EncState {
	es := defaultState()
	for _, opt := range opts {
		opt(es)
	}
	return es
}
