package irgen

import (
	"fmt"
	"strings"

	"github.com/fexolm/cat2verilog/scanner"
)

type ErrorKind int

const (
	DuplicateSignal ErrorKind = iota
	UndeclaredSignal
	AssignToInput
	WidthMismatch
	MultipleDrivers
	CombinationalLoop
	DriverKindMismatch
	ReservedIdentifier
	UndrivenSignal
)

var errorKindNames = [...]string{
	DuplicateSignal:    "DuplicateSignal",
	UndeclaredSignal:   "UndeclaredSignal",
	AssignToInput:      "AssignToInput",
	WidthMismatch:      "WidthMismatch",
	MultipleDrivers:    "MultipleDrivers",
	CombinationalLoop:  "CombinationalLoop",
	DriverKindMismatch: "DriverKindMismatch",
	ReservedIdentifier: "ReservedIdentifier",
	UndrivenSignal:     "UndrivenSignal",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a semantic error. Name is the offending signal; Path is set for
// CombinationalLoop and lists the loop in dataflow order, first name repeated
// at the end.
type Error struct {
	Kind ErrorKind
	Name string
	Path []string
	Pos  scanner.Pos
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func (e *Error) Message() string { return e.Msg }

func (e *Error) Position() scanner.Pos { return e.Pos }

func errorf(kind ErrorKind, name string, pos scanner.Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Name: name, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func loopError(path []string, pos scanner.Pos) *Error {
	return &Error{
		Kind: CombinationalLoop,
		Name: path[0],
		Path: path,
		Pos:  pos,
		Msg:  "combinational loop: " + strings.Join(path, " -> "),
	}
}
