package ast

import (
	"math"
	"math/big"
	"strings"

	"github.com/fexolm/cat2verilog/scanner"
)

type parser struct {
	toks []scanner.Token
	pos  int
}

// ParseModule scans and parses a single module. It performs no semantic
// checks: undeclared names and width errors are left to irgen.
func ParseModule(src []byte) (*Module, error) {
	toks, err := scanner.Scan(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// Parse builds a Module from an EOF-terminated token stream.
func Parse(toks []scanner.Token) (*Module, error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != scanner.EOF {
		toks = append(toks, scanner.Token{Kind: scanner.EOF})
	}
	p := &parser{toks: toks}
	return p.readModule()
}

func (p *parser) tok() scanner.Token {
	return p.toks[p.pos]
}

func (p *parser) next() scanner.Token {
	t := p.toks[p.pos]
	if t.Kind != scanner.EOF {
		p.pos++
	}
	return t
}

func (p *parser) at(text string) bool {
	return p.tok().Is(text)
}

func (p *parser) errorf(expected string) *ParseError {
	t := p.tok()
	kind := UnexpectedToken
	if t.Kind == scanner.EOF {
		kind = UnexpectedEOF
	}
	return &ParseError{Kind: kind, Expected: expected, Found: t, Pos: t.Pos}
}

func (p *parser) expect(text string) (scanner.Token, error) {
	if !p.at(text) {
		return scanner.Token{}, p.errorf("'" + text + "'")
	}
	return p.next(), nil
}

func (p *parser) expectIdent() (scanner.Token, error) {
	if p.tok().Kind != scanner.Identifier {
		return scanner.Token{}, p.errorf("identifier")
	}
	return p.next(), nil
}

// expectIndex reads a constant used as a width or bit index.
func (p *parser) expectIndex(what string) (int, error) {
	t := p.tok()
	if t.Kind != scanner.IntLiteral {
		return 0, p.errorf(what)
	}
	lit := parseLiteral(t)
	if lit.Base != 0 || !lit.Value.IsInt64() || lit.Value.Int64() > math.MaxInt32 {
		return 0, p.errorf(what)
	}
	p.next()
	return int(lit.Value.Int64()), nil
}

func (p *parser) readModule() (*Module, error) {
	kw, err := p.expect("module")
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}

	m := &Module{Name: name.Text, Pos: kw.Pos}
	for !p.at("}") {
		t := p.tok()
		switch {
		case t.Is("input"), t.Is("output"):
			sigs, err := p.readSignals()
			if err != nil {
				return nil, err
			}
			m.Ports = append(m.Ports, sigs...)
		case t.Is("wire"), t.Is("reg"):
			sigs, err := p.readSignals()
			if err != nil {
				return nil, err
			}
			m.Decls = append(m.Decls, sigs...)
		case t.Is("always"):
			assigns, err := p.readAlways()
			if err != nil {
				return nil, err
			}
			m.Assigns = append(m.Assigns, assigns...)
		case t.Is(";"):
			p.next()
		case t.Kind == scanner.Identifier:
			a, err := p.readAssign()
			if err != nil {
				return nil, err
			}
			m.Assigns = append(m.Assigns, a)
		default:
			return nil, p.errorf("declaration or assignment")
		}
	}
	p.next()

	if p.tok().Kind != scanner.EOF {
		return nil, p.errorf("end of file")
	}
	return m, nil
}

var signalKinds = map[string]SignalKind{
	"input":  Input,
	"output": Output,
	"wire":   Wire,
	"reg":    Reg,
}

// readSignals parses `kind name[w], name[w] ;` with an optional terminator.
func (p *parser) readSignals() ([]*Signal, error) {
	kind := signalKinds[p.next().Text]
	var sigs []*Signal
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		sig := &Signal{Name: name.Text, Kind: kind, Width: 1, Pos: name.Pos}
		if p.at("[") {
			p.next()
			if sig.Width, err = p.expectIndex("bit width"); err != nil {
				return nil, err
			}
			if _, err := p.expect("]"); err != nil {
				return nil, err
			}
		}
		sigs = append(sigs, sig)
		if !p.at(",") {
			break
		}
		p.next()
	}
	if p.at(";") {
		p.next()
	}
	return sigs, nil
}

func (p *parser) readAssign() (*Assign, error) {
	target := p.next()
	if _, err := p.expect("="); err != nil {
		return nil, err
	}
	expr, err := p.readExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return &Assign{Target: target.Text, Expr: expr, Kind: Combinational, Pos: target.Pos}, nil
}

func (p *parser) readAlways() ([]*Assign, error) {
	p.next()
	if _, err := p.expect("@"); err != nil {
		return nil, err
	}
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	clk := &Clock{}
	switch {
	case p.at("posedge"):
		clk.Edge = Posedge
	case p.at("negedge"):
		clk.Edge = Negedge
	default:
		return nil, p.errorf("'posedge' or 'negedge'")
	}
	p.next()
	name, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	clk.Signal, clk.Pos = name.Text, name.Pos
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	if _, err := p.expect("{"); err != nil {
		return nil, err
	}

	var assigns []*Assign
	for {
		target, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("<="); err != nil {
			return nil, err
		}
		expr, err := p.readExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(";"); err != nil {
			return nil, err
		}
		assigns = append(assigns, &Assign{
			Target: target.Text,
			Expr:   expr,
			Kind:   Sequential,
			Clock:  clk,
			Pos:    target.Pos,
		})
		if p.at("}") {
			p.next()
			return assigns, nil
		}
	}
}

func (p *parser) readExpr() (Expr, error) {
	cond, err := p.readBinary(PrecLogOr)
	if err != nil {
		return nil, err
	}
	if !p.at("?") {
		return cond, nil
	}
	q := p.next()
	then, err := p.readExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	els, err := p.readExpr()
	if err != nil {
		return nil, err
	}
	return &Cond{Cond: cond, Then: then, Else: els, Pos: q.Pos}, nil
}

func (p *parser) binaryOp() (BinOp, bool) {
	t := p.tok()
	if t.Kind != scanner.Operator {
		return 0, false
	}
	op, ok := binOps[t.Text]
	return op, ok
}

// readBinary parses a left-associative chain of operators of precedence prec.
func (p *parser) readBinary(prec int) (Expr, error) {
	if prec > maxPrec {
		return p.readUnary()
	}
	left, err := p.readBinary(prec + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.binaryOp()
		if !ok || op.Precedence() != prec {
			return left, nil
		}
		t := p.next()
		right, err := p.readBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right, Pos: t.Pos}
	}
}

var unOps = map[string]UnOp{"~": BitNot, "!": LogNot, "-": Neg}

func (p *parser) readUnary() (Expr, error) {
	t := p.tok()
	if op, ok := unOps[t.Text]; ok && t.Kind == scanner.Operator {
		p.next()
		x, err := p.readUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, X: x, Pos: t.Pos}, nil
	}
	return p.readPrimary()
}

func (p *parser) readPrimary() (Expr, error) {
	t := p.tok()
	switch {
	case t.Kind == scanner.Identifier:
		p.next()
		if p.at("[") {
			return p.readSelect(t)
		}
		return &Ref{Name: t.Text, Pos: t.Pos}, nil
	case t.Kind == scanner.IntLiteral:
		p.next()
		return parseLiteral(t), nil
	case t.Is("("):
		p.next()
		e, err := p.readExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return e, nil
	case t.Is("{"):
		return p.readConcat()
	}
	return nil, p.errorf("expression")
}

func (p *parser) readSelect(name scanner.Token) (Expr, error) {
	p.next()
	hi, err := p.expectIndex("bit index")
	if err != nil {
		return nil, err
	}
	sel := &Select{Name: name.Text, Hi: hi, Lo: hi, Pos: name.Pos}
	if p.at(":") {
		p.next()
		if sel.Lo, err = p.expectIndex("bit index"); err != nil {
			return nil, err
		}
		sel.Part = true
	}
	if _, err := p.expect("]"); err != nil {
		return nil, err
	}
	return sel, nil
}

func (p *parser) readConcat() (Expr, error) {
	open := p.next()
	c := &Concat{Pos: open.Pos}
	for {
		e, err := p.readExpr()
		if err != nil {
			return nil, err
		}
		c.Parts = append(c.Parts, e)
		if !p.at(",") {
			break
		}
		p.next()
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	return c, nil
}

// parseLiteral decodes a token the scanner already validated.
func parseLiteral(t scanner.Token) *Literal {
	lit := &Literal{Value: new(big.Int), Pos: t.Pos}
	text := t.Text
	if i := strings.IndexByte(text, '\''); i >= 0 {
		size, _ := new(big.Int).SetString(strings.ReplaceAll(text[:i], "_", ""), 10)
		if size.IsInt64() && size.Int64() <= math.MaxInt32 {
			lit.Width = int(size.Int64())
		} else {
			lit.Width = math.MaxInt32
		}
		lit.Base = text[i+1] | 0x20
		lit.Digits = text[i+2:]
	} else {
		lit.Digits = text
	}
	base := 10
	switch lit.Base {
	case 'b':
		base = 2
	case 'o':
		base = 8
	case 'h':
		base = 16
	}
	lit.Value.SetString(strings.ReplaceAll(lit.Digits, "_", ""), base)
	return lit
}
