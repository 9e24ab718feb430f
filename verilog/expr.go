package verilog

import (
	"fmt"
	"strings"

	"github.com/fexolm/cat2verilog/ast"
	"github.com/fexolm/cat2verilog/ir"
)

// Expr renders e as Verilog. Nested operators are parenthesized whenever
// Verilog's own precedence could regroup them; only a left-nested chain of
// the same operator is written bare.
func Expr(e ir.Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeExpr(b *strings.Builder, e ir.Expr) {
	switch e := e.(type) {
	case *ir.Const:
		if e.Sized {
			fmt.Fprintf(b, "%d'%c%s", e.Bits, e.Base, e.Digits)
		} else {
			b.WriteString(e.Digits)
		}
	case *ir.Ref:
		b.WriteString(e.Name)
	case *ir.Select:
		if e.Part {
			fmt.Fprintf(b, "%s[%d:%d]", e.Name, e.Hi, e.Lo)
		} else {
			fmt.Fprintf(b, "%s[%d]", e.Name, e.Hi)
		}
	case *ir.Unary:
		b.WriteString(e.Op.String())
		writeOperand(b, e.X, !isPrimary(e.X))
	case *ir.Binary:
		left, leftSame := e.Left.(*ir.Binary)
		writeOperand(b, e.Left, !isPrimary(e.Left) && !(leftSame && left.Op == e.Op))
		fmt.Fprintf(b, " %s ", e.Op)
		writeOperand(b, e.Right, !isPrimary(e.Right))
	case *ir.Concat:
		b.WriteByte('{')
		for i, p := range e.Parts {
			if i > 0 {
				b.WriteString(", ")
			}
			writeExpr(b, p)
		}
		b.WriteByte('}')
	case *ir.Cond:
		writeOperand(b, e.Cond, !isPrimary(e.Cond))
		b.WriteString(" ? ")
		writeOperand(b, e.Then, !isPrimary(e.Then))
		b.WriteString(" : ")
		writeOperand(b, e.Else, !isPrimary(e.Else))
	default:
		panic(fmt.Sprintf("verilog: unhandled expression %T", e))
	}
}

func writeOperand(b *strings.Builder, e ir.Expr, paren bool) {
	if paren {
		b.WriteByte('(')
	}
	writeExpr(b, e)
	if paren {
		b.WriteByte(')')
	}
}

// isPrimary reports whether e renders as a single Verilog primary that never
// needs grouping.
func isPrimary(e ir.Expr) bool {
	switch e := e.(type) {
	case *ir.Const, *ir.Ref, *ir.Select, *ir.Concat:
		return true
	case *ir.Unary:
		// -(-a) must not become --a
		return e.Op != ast.Neg && isPrimary(e.X)
	}
	return false
}
