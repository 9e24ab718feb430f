package irgen

import (
	"github.com/fexolm/cat2verilog/ast"
	"github.com/fexolm/cat2verilog/ir"
)

// expr resolves names in e and infers widths bottom-up: arithmetic and
// bitwise results are as wide as the widest operand, comparisons and logical
// operators yield one bit, shifts keep the width of the shifted value.
func (g *generator) expr(e ast.Expr) (ir.Expr, error) {
	switch e := e.(type) {
	case *ast.Literal:
		return g.literal(e)
	case *ast.Ref:
		sig, err := g.read(e.Name, e)
		if err != nil {
			return nil, err
		}
		return &ir.Ref{Name: e.Name, Bits: sig.Width}, nil
	case *ast.Select:
		sig, err := g.read(e.Name, e)
		if err != nil {
			return nil, err
		}
		if e.Lo > e.Hi {
			return nil, errorf(WidthMismatch, e.Name, e.Pos, "part select %s[%d:%d] must be written [hi:lo]", e.Name, e.Hi, e.Lo)
		}
		if e.Hi >= sig.Width {
			return nil, errorf(WidthMismatch, e.Name, e.Pos, "bit %d out of range for %d-bit signal %q", e.Hi, sig.Width, e.Name)
		}
		if sig.Width == 1 {
			// a scalar has no range to select from
			return &ir.Ref{Name: e.Name, Bits: 1}, nil
		}
		return &ir.Select{Name: e.Name, Hi: e.Hi, Lo: e.Lo, Part: e.Part}, nil
	case *ast.Unary:
		x, err := g.expr(e.X)
		if err != nil {
			return nil, err
		}
		bits := x.Width()
		if e.Op == ast.LogNot {
			bits = 1
		}
		return &ir.Unary{Op: e.Op, X: x, Bits: bits}, nil
	case *ast.Binary:
		l, err := g.expr(e.Left)
		if err != nil {
			return nil, err
		}
		r, err := g.expr(e.Right)
		if err != nil {
			return nil, err
		}
		var bits int
		switch {
		case e.Op.IsCompare():
			bits = 1
		case e.Op == ast.Shl || e.Op == ast.Shr:
			bits = l.Width()
		default:
			bits = max(l.Width(), r.Width())
		}
		return &ir.Binary{Op: e.Op, Left: l, Right: r, Bits: bits}, nil
	case *ast.Concat:
		c := &ir.Concat{}
		for _, p := range e.Parts {
			x, err := g.expr(p)
			if err != nil {
				return nil, err
			}
			sizeConsts(x)
			if x.Width() < 1 {
				return nil, errorf(WidthMismatch, "", p.Position(), "zero-width operand in concatenation")
			}
			c.Parts = append(c.Parts, x)
			c.Bits += x.Width()
		}
		if c.Bits > ir.MaxWidth {
			return nil, errorf(WidthMismatch, "", e.Pos, "concatenation is %d bits wide, limit is %d", c.Bits, ir.MaxWidth)
		}
		return c, nil
	case *ast.Cond:
		cond, err := g.expr(e.Cond)
		if err != nil {
			return nil, err
		}
		if cond.Width() != 1 {
			return nil, errorf(WidthMismatch, "", e.Cond.Position(), "condition must be 1 bit wide, has %d", cond.Width())
		}
		then, err := g.expr(e.Then)
		if err != nil {
			return nil, err
		}
		els, err := g.expr(e.Else)
		if err != nil {
			return nil, err
		}
		return &ir.Cond{Cond: cond, Then: then, Else: els, Bits: max(then.Width(), els.Width())}, nil
	}
	panic("irgen: unhandled expression node")
}

// sizeConsts gives every unsized constant in x its inferred width. Verilog
// sizes each concatenation operand on its own, where a bare literal would
// count as 32 bits.
func sizeConsts(x ir.Expr) {
	ir.Inspect(x, func(e ir.Expr) bool {
		if k, ok := e.(*ir.Const); ok && !k.Sized {
			k.Sized, k.Base, k.Digits = true, 'd', k.Value.String()
		}
		return true
	})
}

func (g *generator) read(name string, at ast.Expr) (*ir.Signal, error) {
	sig, ok := g.syms.Lookup(name)
	if !ok {
		return nil, errorf(UndeclaredSignal, name, at.Position(), "undeclared signal %q", name)
	}
	sig.Read = true
	return sig, nil
}

func (g *generator) literal(e *ast.Literal) (ir.Expr, error) {
	c := &ir.Const{Value: e.Value, Digits: e.Digits}
	if e.Base == 0 {
		c.Bits = max(1, e.Value.BitLen())
		if c.Bits > ir.MaxWidth {
			return nil, errorf(WidthMismatch, "", e.Pos, "literal needs %d bits, limit is %d", c.Bits, ir.MaxWidth)
		}
		return c, nil
	}
	if e.Width < 1 || e.Width > ir.MaxWidth {
		return nil, errorf(WidthMismatch, "", e.Pos, "literal width %d must be between 1 and %d", e.Width, ir.MaxWidth)
	}
	if e.Value.BitLen() > e.Width {
		return nil, errorf(WidthMismatch, "", e.Pos, "value %s does not fit in %d bits", e.Value, e.Width)
	}
	c.Bits, c.Sized, c.Base = e.Width, true, e.Base
	return c, nil
}
