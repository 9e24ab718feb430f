package ast

import (
	"fmt"

	"github.com/fexolm/cat2verilog/scanner"
)

type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedEOF:
		return "UnexpectedEOF"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError reports the first grammar mismatch.
type ParseError struct {
	Kind     ErrorKind
	Expected string
	Found    scanner.Token
	Pos      scanner.Pos
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message())
}

func (e *ParseError) Message() string {
	if e.Kind == UnexpectedEOF {
		return "unexpected end of input, expected " + e.Expected
	}
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
}

func (e *ParseError) Position() scanner.Pos { return e.Pos }
