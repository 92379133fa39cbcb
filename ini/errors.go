package ini

import (
	"fmt"

	"github.com/alex05447/miniconfig/ini/token"
)

// ErrorKind enumerates the parse-error taxonomy from spec.md §4.4.
type ErrorKind int

const (
	UnexpectedCharacter ErrorKind = iota
	UnexpectedEnd
	UnterminatedString
	UnterminatedArray
	InvalidEscape
	InvalidNumber
	NumberOutOfRange
	InvalidBool
	DuplicateKey
	DuplicateSection
	MixedArray
	EmptySectionName
	InvalidSeparator
	UnquotedString
	ParentSectionMissing
	InvalidKey
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case UnexpectedEnd:
		return "UnexpectedEnd"
	case UnterminatedString:
		return "UnterminatedString"
	case UnterminatedArray:
		return "UnterminatedArray"
	case InvalidEscape:
		return "InvalidEscape"
	case InvalidNumber:
		return "InvalidNumber"
	case NumberOutOfRange:
		return "NumberOutOfRange"
	case InvalidBool:
		return "InvalidBool"
	case DuplicateKey:
		return "DuplicateKey"
	case DuplicateSection:
		return "DuplicateSection"
	case MixedArray:
		return "MixedArray"
	case EmptySectionName:
		return "EmptySectionName"
	case InvalidSeparator:
		return "InvalidSeparator"
	case UnquotedString:
		return "UnquotedString"
	case ParentSectionMissing:
		return "ParentSectionMissing"
	case InvalidKey:
		return "InvalidKey"
	default:
		return "ErrorKind(?)"
	}
}

// ParseError is the error type returned by [Parse], carrying the location
// and kind of the failure (spec.md §4.4: "Errors carry {line, column,
// kind}"), grounded on the teacher's TokenizeErr/Pos.String() idiom of
// wrapping an error with the position it occurred at.
type ParseError struct {
	Line   int
	Column int
	Kind   ErrorKind
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s at line %d, column %d", e.Kind, e.Line, e.Column)
	}
	return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Msg)
}

func newParseError(pos token.Pos, kind ErrorKind, msg string) *ParseError {
	return &ParseError{Line: pos.Line, Column: pos.Col, Kind: kind, Msg: msg}
}
