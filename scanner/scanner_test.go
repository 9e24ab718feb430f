package scanner

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:     "Empty",
			input:    "",
			expected: []Token{{Kind: EOF, Pos: Pos{1, 1}}},
		},
		{
			name:  "Port",
			input: "input a[4];",
			expected: []Token{
				{Kind: Keyword, Text: "input", Pos: Pos{1, 1}},
				{Kind: Identifier, Text: "a", Pos: Pos{1, 7}},
				{Kind: Punctuation, Text: "[", Pos: Pos{1, 8}},
				{Kind: IntLiteral, Text: "4", Pos: Pos{1, 9}},
				{Kind: Punctuation, Text: "]", Pos: Pos{1, 10}},
				{Kind: Punctuation, Text: ";", Pos: Pos{1, 11}},
				{Kind: EOF, Pos: Pos{1, 12}},
			},
		},
		{
			name:  "Operators longest match",
			input: "a<=b<<c!=d&&e||f<g",
			expected: []Token{
				{Kind: Identifier, Text: "a", Pos: Pos{1, 1}},
				{Kind: Operator, Text: "<=", Pos: Pos{1, 2}},
				{Kind: Identifier, Text: "b", Pos: Pos{1, 4}},
				{Kind: Operator, Text: "<<", Pos: Pos{1, 5}},
				{Kind: Identifier, Text: "c", Pos: Pos{1, 7}},
				{Kind: Operator, Text: "!=", Pos: Pos{1, 8}},
				{Kind: Identifier, Text: "d", Pos: Pos{1, 10}},
				{Kind: Operator, Text: "&&", Pos: Pos{1, 11}},
				{Kind: Identifier, Text: "e", Pos: Pos{1, 13}},
				{Kind: Operator, Text: "||", Pos: Pos{1, 14}},
				{Kind: Identifier, Text: "f", Pos: Pos{1, 16}},
				{Kind: Operator, Text: "<", Pos: Pos{1, 17}},
				{Kind: Identifier, Text: "g", Pos: Pos{1, 18}},
				{Kind: EOF, Pos: Pos{1, 19}},
			},
		},
		{
			name:  "Sized literals",
			input: "8'hFF 4'b10_10 3'o7 16'd1_000 42",
			expected: []Token{
				{Kind: IntLiteral, Text: "8'hFF", Pos: Pos{1, 1}},
				{Kind: IntLiteral, Text: "4'b10_10", Pos: Pos{1, 7}},
				{Kind: IntLiteral, Text: "3'o7", Pos: Pos{1, 16}},
				{Kind: IntLiteral, Text: "16'd1_000", Pos: Pos{1, 21}},
				{Kind: IntLiteral, Text: "42", Pos: Pos{1, 31}},
				{Kind: EOF, Pos: Pos{1, 33}},
			},
		},
		{
			name:  "Comments are skipped",
			input: "// header\nwire /* w */ x; // trailing\n",
			expected: []Token{
				{Kind: Keyword, Text: "wire", Pos: Pos{2, 1}},
				{Kind: Identifier, Text: "x", Pos: Pos{2, 14}},
				{Kind: Punctuation, Text: ";", Pos: Pos{2, 15}},
				{Kind: EOF, Pos: Pos{3, 1}},
			},
		},
		{
			name:  "Always header",
			input: "always @(posedge clk)",
			expected: []Token{
				{Kind: Keyword, Text: "always", Pos: Pos{1, 1}},
				{Kind: Punctuation, Text: "@", Pos: Pos{1, 8}},
				{Kind: Punctuation, Text: "(", Pos: Pos{1, 9}},
				{Kind: Keyword, Text: "posedge", Pos: Pos{1, 10}},
				{Kind: Identifier, Text: "clk", Pos: Pos{1, 18}},
				{Kind: Punctuation, Text: ")", Pos: Pos{1, 21}},
				{Kind: EOF, Pos: Pos{1, 22}},
			},
		},
		{
			name:  "Multibyte runes in comments count as one column",
			input: "/* é */ x",
			expected: []Token{
				{Kind: Identifier, Text: "x", Pos: Pos{1, 9}},
				{Kind: EOF, Pos: Pos{1, 10}},
			},
		},
		{
			name:  "String literal",
			input: `"a\"b" x`,
			expected: []Token{
				{Kind: String, Text: `"a\"b"`, Pos: Pos{1, 1}},
				{Kind: Identifier, Text: "x", Pos: Pos{1, 8}},
				{Kind: EOF, Pos: Pos{1, 9}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Scan([]byte(tt.input))
			if err != nil {
				t.Fatalf("Scan(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Scan(%q) mismatch:\n%s", tt.input, pretty.Diff(tt.expected, got))
			}
		})
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
		pos   Pos
	}{
		{"Dollar", "wire $x;", UnexpectedCharacter, Pos{1, 6}},
		{"Non-ASCII identifier", "wire é;", UnexpectedCharacter, Pos{1, 6}},
		{"Lone quote", "x = 'h1;", UnexpectedCharacter, Pos{1, 5}},
		{"Missing base", "x = 4';", UnterminatedLiteral, Pos{1, 5}},
		{"Missing digits", "x = 8'h;", UnterminatedLiteral, Pos{1, 5}},
		{"Missing digits at EOF", "x = 8'b", UnterminatedLiteral, Pos{1, 5}},
		{"Bad binary digit", "x = 4'b102;", UnexpectedCharacter, Pos{1, 10}},
		{"Letter in decimal", "x = 12ab;", UnexpectedCharacter, Pos{1, 7}},
		{"Unclosed string", "\"abc\nx", UnterminatedLiteral, Pos{1, 1}},
		{"Unclosed block comment", "x /* y", UnterminatedLiteral, Pos{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scan([]byte(tt.input))
			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("Scan(%q) error = %v, want *Error", tt.input, err)
			}
			if serr.Kind != tt.kind || serr.Pos != tt.pos {
				t.Errorf("Scan(%q) = %v at %v, want %v at %v", tt.input, serr.Kind, serr.Pos, tt.kind, tt.pos)
			}
		})
	}
}

func TestTokenIs(t *testing.T) {
	toks, err := Scan([]byte("module m { }"))
	if err != nil {
		t.Fatal(err)
	}
	if !toks[0].Is("module") {
		t.Errorf("expected keyword module, got %v", toks[0])
	}
	if toks[1].Is("m") {
		t.Errorf("identifiers never match Is")
	}
	if !toks[2].Is("{") || !toks[3].Is("}") {
		t.Errorf("expected braces, got %v %v", toks[2], toks[3])
	}
}
