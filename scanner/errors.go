package scanner

import "fmt"

type ErrorKind int

const (
	UnexpectedCharacter ErrorKind = iota
	UnterminatedLiteral
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case UnterminatedLiteral:
		return "UnterminatedLiteral"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a lexical error. Scanning stops at the first one.
type Error struct {
	Kind ErrorKind
	Pos  Pos
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *Error) Message() string { return e.Msg }

func (e *Error) Position() Pos { return e.Pos }
