// Copyright (c) 2025 khasanyanovk
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package syntax

import (
	"github.com/khasanyanovk/serial-kit/diag"
)

// Scanner produces a token stream from source text, with one token of
// look-ahead (spec §4.1). It owns a cursor into the source (byte offset,
// line, column) and never mutates the source buffer.
type Scanner struct {
	src    []byte
	offset int
	line   int
	column int

	lookahead     *Token
	haveLookahead bool
}

func NewScanner(src []byte) *Scanner {
	return &Scanner{src: src, line: 1, column: 1}
}

// Next consumes and returns the next token.
func (s *Scanner) Next() (Token, error) {
	if s.haveLookahead {
		tok := *s.lookahead
		s.lookahead = nil
		s.haveLookahead = false
		return tok, nil
	}
	return s.scan()
}

// Peek returns the next token without consuming it. Calling Peek
// repeatedly without an intervening Next returns the same token (spec
// §4.1: "idempotent until next() is called").
func (s *Scanner) Peek() (Token, error) {
	if !s.haveLookahead {
		tok, err := s.scan()
		if err != nil {
			return Token{}, err
		}
		s.lookahead = &tok
		s.haveLookahead = true
	}
	return *s.lookahead, nil
}

func (s *Scanner) pos() diag.Pos {
	return diag.Pos{Line: s.line, Column: s.column, Offset: s.offset}
}

// advance consumes one byte, updating line/column per spec §4.1: newline
// advances the line and resets the column to 1; anything else advances
// the column by one.
func (s *Scanner) advance() byte {
	c := s.src[s.offset]
	s.offset++
	if c == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) atEOF() bool {
	return s.offset >= len(s.src)
}

func (s *Scanner) peekByte() byte {
	if s.atEOF() {
		return 0
	}
	return s.src[s.offset]
}

func (s *Scanner) peekByteAt(n int) byte {
	if s.offset+n >= len(s.src) {
		return 0
	}
	return s.src[s.offset+n]
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

// skipTrivia consumes whitespace, line comments, and block comments,
// leaving the cursor at the start of the next real token (spec §4.1).
// An unterminated block comment silently consumes to end of input.
func (s *Scanner) skipTrivia() {
	for !s.atEOF() {
		c := s.peekByte()
		if isSpace(c) {
			s.advance()
			continue
		}
		if c == '/' && s.peekByteAt(1) == '/' {
			for !s.atEOF() && s.peekByte() != '\n' {
				s.advance()
			}
			continue
		}
		if c == '/' && s.peekByteAt(1) == '*' {
			s.advance()
			s.advance()
			for !s.atEOF() {
				if s.peekByte() == '*' && s.peekByteAt(1) == '/' {
					s.advance()
					s.advance()
					break
				}
				s.advance()
			}
			continue
		}
		break
	}
}

func (s *Scanner) scan() (Token, error) {
	s.skipTrivia()
	start := s.pos()

	if s.atEOF() {
		return Token{Kind: EOF, Pos: start}, nil
	}

	c := s.peekByte()

	switch c {
	case ';':
		s.advance()
		return Token{Kind: Semicolon, Pos: start}, nil
	case '=':
		s.advance()
		return Token{Kind: Eq, Pos: start}, nil
	case '{':
		s.advance()
		return Token{Kind: OpenCurl, Pos: start}, nil
	case '}':
		s.advance()
		return Token{Kind: CloseCurl, Pos: start}, nil
	case '.':
		s.advance()
		return Token{Kind: Dot, Pos: start}, nil
	}

	if isIdentStart(c) {
		begin := s.offset
		for !s.atEOF() && isIdentCont(s.peekByte()) {
			s.advance()
		}
		lexeme := string(s.src[begin:s.offset])
		if kind, ok := keywords[lexeme]; ok {
			return Token{Kind: kind, Lexeme: lexeme, Pos: start}, nil
		}
		return Token{Kind: Ident, Lexeme: lexeme, Pos: start}, nil
	}

	if isDigit(c) || (c == '-' && isDigit(s.peekByteAt(1))) {
		begin := s.offset
		if c == '-' {
			s.advance()
		}
		for !s.atEOF() && isDigit(s.peekByte()) {
			s.advance()
		}
		lexeme := string(s.src[begin:s.offset])
		return Token{Kind: Number, Lexeme: lexeme, Pos: start}, nil
	}

	if c == '-' {
		s.advance()
		return Token{Kind: Invalid, Lexeme: "-", Pos: start}, nil
	}

	s.advance()
	return Token{Kind: Invalid, Lexeme: string(c), Pos: start}, nil
}

// FormatError renders a message and location the way the scanner's
// error-formatting helper does (spec §4.1).
func FormatError(pos diag.Pos, msg string) string {
	return diag.New(pos, "%s", msg).Error()
}
