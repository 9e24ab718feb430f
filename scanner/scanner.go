// Package scanner turns cat source text into tokens.
package scanner

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type scanner struct {
	src  []byte
	pos  int
	line int
	col  int
}

func newScanner(src []byte) *scanner {
	return &scanner{src: src, line: 1, col: 1}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peekChar() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) peekNext() byte {
	if s.pos+1 >= len(s.src) {
		return 0
	}
	return s.src[s.pos+1]
}

func (s *scanner) readChar() byte {
	c := s.src[s.pos]
	s.pos++
	switch {
	case c == '\n':
		s.line++
		s.col = 1
	case c&0xC0 != 0x80:
		// continuation bytes of a multi-byte rune do not advance the column
		s.col++
	}
	return c
}

func (s *scanner) here() Pos {
	return Pos{Line: s.line, Col: s.col}
}

func (s *scanner) errorf(kind ErrorKind, pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) skipSpacesAndComments() error {
	for !s.eof() {
		c := s.peekChar()
		switch {
		case isSpace(c):
			s.readChar()
		case c == '/' && s.peekNext() == '/':
			for !s.eof() && s.peekChar() != '\n' {
				s.readChar()
			}
		case c == '/' && s.peekNext() == '*':
			start := s.here()
			s.readChar()
			s.readChar()
			for {
				if s.eof() {
					return s.errorf(UnterminatedLiteral, start, "unterminated block comment")
				}
				if s.peekChar() == '*' && s.peekNext() == '/' {
					s.readChar()
					s.readChar()
					break
				}
				s.readChar()
			}
		default:
			return nil
		}
	}
	return nil
}

func (s *scanner) readWord() string {
	start := s.pos
	for !s.eof() && (isLetter(s.peekChar()) || isDigit(s.peekChar())) {
		s.readChar()
	}
	return string(s.src[start:s.pos])
}

func baseDigit(base, c byte) bool {
	switch base {
	case 'b':
		return c == '0' || c == '1'
	case 'o':
		return '0' <= c && c <= '7'
	case 'd':
		return isDigit(c)
	case 'h':
		return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
	}
	return false
}

// readNumber reads 123, 1_000 or a sized literal such as 8'hff.
func (s *scanner) readNumber(start Pos) (string, error) {
	begin := s.pos
	for !s.eof() && (isDigit(s.peekChar()) || s.peekChar() == '_') {
		s.readChar()
	}
	if s.peekChar() != '\'' {
		if isLetter(s.peekChar()) {
			return "", s.errorf(UnexpectedCharacter, s.here(), "unexpected character %q in number", s.peekChar())
		}
		return string(s.src[begin:s.pos]), nil
	}
	s.readChar()
	base := s.peekChar() | 0x20
	if base != 'b' && base != 'o' && base != 'd' && base != 'h' {
		return "", s.errorf(UnterminatedLiteral, start, "sized literal %q has no base", string(s.src[begin:s.pos]))
	}
	s.readChar()
	digits := 0
	for !s.eof() && (isLetter(s.peekChar()) || isDigit(s.peekChar())) {
		c := s.peekChar()
		if c != '_' {
			if !baseDigit(base, c) {
				return "", s.errorf(UnexpectedCharacter, s.here(), "invalid digit %q in base-%c literal", c, base)
			}
			digits++
		}
		s.readChar()
	}
	if digits == 0 {
		return "", s.errorf(UnterminatedLiteral, start, "sized literal %q has no digits", string(s.src[begin:s.pos]))
	}
	return string(s.src[begin:s.pos]), nil
}

func (s *scanner) readString(start Pos) (string, error) {
	begin := s.pos
	s.readChar()
	for {
		if s.eof() || s.peekChar() == '\n' {
			return "", s.errorf(UnterminatedLiteral, start, "unterminated string literal")
		}
		c := s.readChar()
		if c == '\\' && !s.eof() && s.peekChar() != '\n' {
			s.readChar()
			continue
		}
		if c == '"' {
			return string(s.src[begin:s.pos]), nil
		}
	}
}

func (s *scanner) readOperator() (string, bool) {
	rest := s.src[s.pos:]
	for _, op := range operators {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			for range op {
				s.readChar()
			}
			return op, true
		}
	}
	return "", false
}

func (s *scanner) next() (Token, error) {
	if err := s.skipSpacesAndComments(); err != nil {
		return Token{}, err
	}
	pos := s.here()
	if s.eof() {
		return Token{Kind: EOF, Pos: pos}, nil
	}
	c := s.peekChar()
	switch {
	case isLetter(c):
		w := s.readWord()
		if IsKeyword(w) {
			return Token{Kind: Keyword, Text: w, Pos: pos}, nil
		}
		return Token{Kind: Identifier, Text: w, Pos: pos}, nil
	case isDigit(c):
		lit, err := s.readNumber(pos)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: IntLiteral, Text: lit, Pos: pos}, nil
	case c == '"':
		lit, err := s.readString(pos)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: String, Text: lit, Pos: pos}, nil
	case strings.IndexByte(punctuation, c) >= 0:
		s.readChar()
		return Token{Kind: Punctuation, Text: string(c), Pos: pos}, nil
	}
	if op, ok := s.readOperator(); ok {
		return Token{Kind: Operator, Text: op, Pos: pos}, nil
	}
	r, _ := utf8.DecodeRune(s.src[s.pos:])
	return Token{}, s.errorf(UnexpectedCharacter, pos, "unexpected character %q", r)
}

// Scan tokenizes src. The returned slice always ends with an EOF token.
func Scan(src []byte) ([]Token, error) {
	s := newScanner(src)
	var toks []Token
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}
