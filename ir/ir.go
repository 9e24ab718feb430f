// Package ir holds the annotated form of a module: every signal resolved in
// a symbol table and every expression carrying its inferred bit width.
package ir

import (
	"fmt"
	"math/big"

	"github.com/fexolm/cat2verilog/ast"
	"github.com/fexolm/cat2verilog/scanner"
)

// MaxWidth bounds declared and literal widths.
const MaxWidth = 1 << 16

type SignalKind int

const (
	Input SignalKind = iota
	Output
	Wire
	Register
)

func (k SignalKind) String() string {
	switch k {
	case Input:
		return "input"
	case Output:
		return "output"
	case Wire:
		return "wire"
	case Register:
		return "reg"
	}
	return "unknown"
}

type DriverKind int

const (
	Undriven DriverKind = iota
	DrivenCombinational
	DrivenSequential
)

type Signal struct {
	Name   string
	Kind   SignalKind
	Width  int
	Pos    scanner.Pos
	Driver DriverKind
	Read   bool
}

type Module struct {
	Name    string
	Symbols *SymbolTable
	Ports   []*Signal
	Decls   []*Signal
	// Assigns holds combinational assignments in source order.
	Assigns []*Assign
	// Processes holds sequential assignments, one per (edge, clock) pair,
	// ordered by first appearance.
	Processes []*Process
	Warnings  []Warning
}

type Assign struct {
	Target string
	Expr   Expr
	Pos    scanner.Pos
}

type Process struct {
	Edge    ast.Edge
	Clock   string
	Assigns []*Assign
}

type WarningKind int

const (
	UndrivenSignal WarningKind = iota
	UnusedSignal
)

type Warning struct {
	Kind   WarningKind
	Signal string
	Pos    scanner.Pos
}

func (w Warning) Message() string {
	switch w.Kind {
	case UndrivenSignal:
		return fmt.Sprintf("signal %q is never driven", w.Signal)
	case UnusedSignal:
		return fmt.Sprintf("signal %q is never read", w.Signal)
	}
	return fmt.Sprintf("signal %q", w.Signal)
}

func (w Warning) String() string {
	return w.Pos.String() + ": " + w.Message()
}

type Expr interface {
	Width() int
	isExpr()
}

// Const is a literal. Sized constants keep the base and digits they were
// written with.
type Const struct {
	Value  *big.Int
	Bits   int
	Sized  bool
	Base   byte
	Digits string
}

type Ref struct {
	Name string
	Bits int
}

type Select struct {
	Name   string
	Hi, Lo int
	Part   bool
}

type Unary struct {
	Op   ast.UnOp
	X    Expr
	Bits int
}

type Binary struct {
	Op          ast.BinOp
	Left, Right Expr
	Bits        int
}

type Concat struct {
	Parts []Expr
	Bits  int
}

type Cond struct {
	Cond, Then, Else Expr
	Bits             int
}

func (e *Const) Width() int  { return e.Bits }
func (e *Ref) Width() int    { return e.Bits }
func (e *Select) Width() int { return e.Hi - e.Lo + 1 }
func (e *Unary) Width() int  { return e.Bits }
func (e *Binary) Width() int { return e.Bits }
func (e *Concat) Width() int { return e.Bits }
func (e *Cond) Width() int   { return e.Bits }

func (*Const) isExpr()  {}
func (*Ref) isExpr()    {}
func (*Select) isExpr() {}
func (*Unary) isExpr()  {}
func (*Binary) isExpr() {}
func (*Concat) isExpr() {}
func (*Cond) isExpr()   {}

// Inspect calls f for e and, while f returns true, for each sub-expression
// in source order.
func Inspect(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	switch e := e.(type) {
	case *Unary:
		Inspect(e.X, f)
	case *Binary:
		Inspect(e.Left, f)
		Inspect(e.Right, f)
	case *Concat:
		for _, p := range e.Parts {
			Inspect(p, f)
		}
	case *Cond:
		Inspect(e.Cond, f)
		Inspect(e.Then, f)
		Inspect(e.Else, f)
	}
}

// Refs returns the distinct signal names read by e, in first-use order.
func Refs(e Expr) []string {
	var names []string
	seen := map[string]bool{}
	Inspect(e, func(e Expr) bool {
		var name string
		switch e := e.(type) {
		case *Ref:
			name = e.Name
		case *Select:
			name = e.Name
		default:
			return true
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return true
	})
	return names
}
