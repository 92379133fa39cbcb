package token

import "fmt"

// ScanError wraps an error with the position at which scanning failed, in
// the teacher's wrap-with-position idiom (token/pos.go's TokenizeErr in the
// original), trimmed of the token-type field: the ini scanner reports
// directly against [ini.ErrorKind] rather than a generic token stream.
type ScanError struct {
	Err error
	At  Pos
}

func NewScanError(err error, at Pos) *ScanError {
	return &ScanError{Err: err, At: at}
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.At.String())
}

func (e *ScanError) Unwrap() error { return e.Err }
