package encode

import (
	"strconv"
	"strings"

	"github.com/alex05447/miniconfig/escape"
	"github.com/alex05447/miniconfig/value"
)

func (es *EncState) quotePolicy(special escape.ConditionallySpecial) escape.QuotePolicy {
	return escape.QuotePolicy{
		AllowSingle: es.allowSingleQuote,
		AllowDouble: es.allowDoubleQuote,
		Special:     special,
		Unicode:     es.allowUnicode,
	}
}

// formatNumeric renders an I64 or F64 value, always leaving a decimal
// point or an exponent on a finite float so re-parsing recovers the
// original kind tag (spec.md
// §4.7, "Numeric arrays emit elements in their stored kind").
func formatNumeric(v value.Value) (string, bool) {
	switch v.Kind() {
	case value.I64:
		i, _ := v.I64()
		return strconv.FormatInt(i, 10), true
	case value.F64:
		f, _ := v.F64()
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") { // not already fractional/exponential/NaN/Inf
			s += ".0"
		}
		return s, true
	default:
		return "", false
	}
}

func formatBool(v value.Value) string {
	b, _ := v.Bool()
	if b {
		return "true"
	}
	return "false"
}
