package ast

import (
	"math/big"

	"github.com/fexolm/cat2verilog/scanner"
)

// Module is the unit of compilation. A source file holds exactly one.
type Module struct {
	Name    string
	Pos     scanner.Pos
	Ports   []*Signal
	Decls   []*Signal
	Assigns []*Assign
}

type SignalKind int

const (
	Input SignalKind = iota
	Output
	Wire
	Reg
)

func (k SignalKind) String() string {
	switch k {
	case Input:
		return "input"
	case Output:
		return "output"
	case Wire:
		return "wire"
	case Reg:
		return "reg"
	}
	return "unknown"
}

// Signal is a port or an internal declaration. Width defaults to 1.
type Signal struct {
	Name  string
	Kind  SignalKind
	Width int
	Pos   scanner.Pos
}

type AssignKind int

const (
	Combinational AssignKind = iota
	Sequential
)

type Edge int

const (
	Posedge Edge = iota
	Negedge
)

func (e Edge) String() string {
	if e == Negedge {
		return "negedge"
	}
	return "posedge"
}

type Clock struct {
	Edge   Edge
	Signal string
	Pos    scanner.Pos
}

// Assign drives Target with Expr. Clock is set only for Sequential assignments;
// statements of one always block share the same Clock.
type Assign struct {
	Target string
	Expr   Expr
	Kind   AssignKind
	Clock  *Clock
	Pos    scanner.Pos
}

type Expr interface {
	Position() scanner.Pos
	isExpr()
}

// Literal is a numeric constant. Width is 0 for unsized literals.
type Literal struct {
	Value  *big.Int
	Width  int
	Base   byte // 'b', 'o', 'd' or 'h'; 0 for unsized
	Digits string
	Pos    scanner.Pos
}

type Ref struct {
	Name string
	Pos  scanner.Pos
}

// Select is a[i] (Hi == Lo, Part false) or a[hi:lo].
type Select struct {
	Name   string
	Hi, Lo int
	Part   bool
	Pos    scanner.Pos
}

type Unary struct {
	Op  UnOp
	X   Expr
	Pos scanner.Pos
}

type Binary struct {
	Op          BinOp
	Left, Right Expr
	Pos         scanner.Pos
}

type Concat struct {
	Parts []Expr
	Pos   scanner.Pos
}

type Cond struct {
	Cond, Then, Else Expr
	Pos              scanner.Pos
}

func (e *Literal) Position() scanner.Pos { return e.Pos }
func (e *Ref) Position() scanner.Pos     { return e.Pos }
func (e *Select) Position() scanner.Pos  { return e.Pos }
func (e *Unary) Position() scanner.Pos   { return e.Pos }
func (e *Binary) Position() scanner.Pos  { return e.Pos }
func (e *Concat) Position() scanner.Pos  { return e.Pos }
func (e *Cond) Position() scanner.Pos    { return e.Pos }

func (*Literal) isExpr() {}
func (*Ref) isExpr()     {}
func (*Select) isExpr()  {}
func (*Unary) isExpr()   {}
func (*Binary) isExpr()  {}
func (*Concat) isExpr()  {}
func (*Cond) isExpr()    {}
