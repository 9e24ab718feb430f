package scanner

import "fmt"

type Kind int

const (
	EOF Kind = iota
	Identifier
	IntLiteral
	String
	Keyword
	Operator
	Punctuation
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Identifier:
		return "identifier"
	case IntLiteral:
		return "integer literal"
	case String:
		return "string literal"
	case Keyword:
		return "keyword"
	case Operator:
		return "operator"
	case Punctuation:
		return "punctuation"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pos is a 1-based line and column in the source text.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

// Is reports whether t is a keyword, operator or punctuation token spelled text.
func (t Token) Is(text string) bool {
	switch t.Kind {
	case Keyword, Operator, Punctuation:
		return t.Text == text
	}
	return false
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case Identifier, IntLiteral:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case String:
		return "string literal"
	}
	return fmt.Sprintf("%q", t.Text)
}

var keywords = map[string]bool{
	"module":  true,
	"input":   true,
	"output":  true,
	"wire":    true,
	"reg":     true,
	"always":  true,
	"posedge": true,
	"negedge": true,
}

// IsKeyword reports whether name is reserved by the cat notation.
func IsKeyword(name string) bool {
	return keywords[name]
}

// operators are matched longest first.
var operators = []string{
	"<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"+", "-", "*", "/", "%", "&", "|", "^", "~", "!", "<", ">", "?", "=",
}

const punctuation = "{}()[];,:@"
