package encode

import (
	"errors"
	"fmt"

	"github.com/alex05447/miniconfig/value"
)

// ErrUnsupportedForIni is the sentinel [UnsupportedForIniError] wraps.
// [INI] returns it for an array of non-primitive elements, or for a
// table nested deeper than the target dialect's section depth allows
// (spec.md §4.7).
var ErrUnsupportedForIni = errors.New("value has no INI representation")

// UnsupportedForIniError names the key path at which [INI] gave up.
type UnsupportedForIniError struct {
	Path   value.Path
	Reason string
}

func (e *UnsupportedForIniError) Error() string {
	return fmt.Sprintf("%v: %s at %s", ErrUnsupportedForIni, e.Reason, e.Path)
}

func (e *UnsupportedForIniError) Unwrap() error { return ErrUnsupportedForIni }

func unsupportedForIni(path value.Path, reason string) error {
	return &UnsupportedForIniError{Path: path, Reason: reason}
}
