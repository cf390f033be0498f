package canon

import (
	"fmt"
	"strings"
)

// Error codes. CLI output and tests compare against these strings.
const (
	ErrInput  = "ERR_INPUT"
	ErrDepth  = "ERR_DEPTH"
	ErrDupKey = "ERR_DUP_KEY"
)

// Error is the canonical error type for document processing. Path is the
// key chain from the root to the offending value, so failures deep inside
// nested input can be located without re-parsing.
type Error struct {
	Code string
	Path []string
	Msg  string
}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("%s at $.%s: %s", e.Code, strings.Join(e.Path, "."), e.Msg)
}

func newErr(code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

func newErrAt(code string, path []string, msg string) *Error {
	// Copy so callers can keep appending to their own path slice.
	p := make([]string, len(path))
	copy(p, path)
	return &Error{Code: code, Path: p, Msg: msg}
}

// CodeOf extracts the canonical error code, or "" for foreign errors.
func CodeOf(err error) string {
	if ce, ok := err.(*Error); ok {
		return ce.Code
	}
	return ""
}
