package parser

import (
	"errors"
	"fmt"
	"strings"
)

var ErrParse = errors.New("unparseable import line")

// ParseError reports an import line that matched neither the whole-module
// nor the from-form shape. Path and LineNo are filled in by the caller that
// knows where the line came from.
type ParseError struct {
	Path   string
	LineNo int
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	line := strings.TrimRight(e.Line, "\r\n")
	if e.Path == "" {
		return fmt.Sprintf("%s %q: %s", ErrParse, line, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s %q: %s", e.Path, e.LineNo, ErrParse, line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}
