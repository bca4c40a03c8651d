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
	"strconv"

	"github.com/khasanyanovk/serial-kit/diag"
)

// Parser is a recursive-descent parser with one token of look-ahead
// (spec §4.2). It holds a reference to a Scanner and a `current` token
// read at construction time.
type Parser struct {
	scan    *Scanner
	current Token
	err     error
}

// NewParser constructs a parser and primes `current` by reading the
// first token, as required by spec §4.2.
func NewParser(scan *Scanner) (*Parser, error) {
	p := &Parser{scan: scan}
	tok, err := scan.Next()
	if err != nil {
		return nil, err
	}
	p.current = tok
	return p, nil
}

// Parse scans and parses src into a Schema, or returns the single parse
// failure that aborted parsing (spec §4.2 "Failure semantics").
func Parse(src []byte) (*Schema, error) {
	p, err := NewParser(NewScanner(src))
	if err != nil {
		return nil, err
	}
	return p.parseSchema()
}

func (p *Parser) fail(pos diag.Pos, format string, args ...any) error {
	return diag.New(pos, format, args...)
}

// advance reads the next token into `current` and returns the token
// that was current before the call.
func (p *Parser) advance() (Token, error) {
	prev := p.current
	tok, err := p.scan.Next()
	if err != nil {
		return prev, err
	}
	p.current = tok
	return prev, nil
}

// check performs a non-destructive match against `current`.
func (p *Parser) check(kind Kind) bool {
	return p.current.Kind == kind
}

// match consumes `current` if it has the given kind, reporting whether
// it did.
func (p *Parser) match(kind Kind) (bool, error) {
	if !p.check(kind) {
		return false, nil
	}
	if _, err := p.advance(); err != nil {
		return false, err
	}
	return true, nil
}

// consume requires `current` to have the given kind, consuming it or
// raising a parse failure carrying the current token's location.
func (p *Parser) consume(kind Kind, msg string) (Token, error) {
	if !p.check(kind) {
		return Token{}, p.fail(p.current.Pos, "%s (found %s)", msg, p.current.Kind)
	}
	return p.advance()
}

func (p *Parser) parseSchema() (*Schema, error) {
	nsPos := p.current.Pos
	if _, err := p.consume(KwNamespace, "expected 'namespace'"); err != nil {
		return nil, err
	}

	nameTok, err := p.consume(Ident, "expected namespace name")
	if err != nil {
		return nil, err
	}
	name := nameTok.Lexeme
	for p.check(Dot) {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		part, err := p.consume(Ident, "expected identifier after '.'")
		if err != nil {
			return nil, err
		}
		name += "." + part.Lexeme
	}
	if _, err := p.consume(Semicolon, "expected ';' after namespace declaration"); err != nil {
		return nil, err
	}

	schema := &Schema{Namespace: name, NamespacePos: nsPos}
	for !p.check(EOF) {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		schema.Declarations = append(schema.Declarations, decl)
	}
	return schema, nil
}

func (p *Parser) parseDeclaration() (Declaration, error) {
	switch p.current.Kind {
	case KwEnum:
		e, err := p.parseEnum()
		if err != nil {
			return Declaration{}, err
		}
		return Declaration{Enum: e}, nil
	case KwModel:
		m, err := p.parseModel()
		if err != nil {
			return Declaration{}, err
		}
		return Declaration{Model: m}, nil
	default:
		return Declaration{}, p.fail(p.current.Pos, "expected 'enum' or 'model' declaration (found %s)", p.current.Kind)
	}
}

func (p *Parser) parseEnum() (*EnumDecl, error) {
	pos := p.current.Pos
	if _, err := p.advance(); err != nil { // 'enum'
		return nil, err
	}
	nameTok, err := p.consume(Ident, "expected enum name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(OpenCurl, "expected '{' after enum name"); err != nil {
		return nil, err
	}

	decl := &EnumDecl{Pos: pos, Name: nameTok.Lexeme, NamePos: nameTok.Pos}
	for !p.check(CloseCurl) {
		v, err := p.parseEnumValue()
		if err != nil {
			return nil, err
		}
		decl.Values = append(decl.Values, v)
	}
	if _, err := p.advance(); err != nil { // '}'
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseEnumValue() (EnumValue, error) {
	nameTok, err := p.consume(Ident, "expected enum value name")
	if err != nil {
		return EnumValue{}, err
	}
	if _, err := p.consume(Eq, "expected '=' after enum value name"); err != nil {
		return EnumValue{}, err
	}
	numTok, err := p.consume(Number, "expected enum value number")
	if err != nil {
		return EnumValue{}, err
	}
	val, err := p.parseInt(numTok)
	if err != nil {
		return EnumValue{}, err
	}
	if _, err := p.consume(Semicolon, "expected ';' after enum value"); err != nil {
		return EnumValue{}, err
	}
	return EnumValue{
		Pos: nameTok.Pos, Name: nameTok.Lexeme, NamePos: nameTok.Pos,
		Value: val, ValuePos: numTok.Pos,
	}, nil
}

func (p *Parser) parseModel() (*ModelDecl, error) {
	pos := p.current.Pos
	if _, err := p.advance(); err != nil { // 'model'
		return nil, err
	}
	nameTok, err := p.consume(Ident, "expected model name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(OpenCurl, "expected '{' after model name"); err != nil {
		return nil, err
	}

	decl := &ModelDecl{Pos: pos, Name: nameTok.Lexeme, NamePos: nameTok.Pos}
	for !p.check(CloseCurl) {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, f)
	}
	if _, err := p.advance(); err != nil { // '}'
		return nil, err
	}
	return decl, nil
}

// parseField implements the `field` production. Modifiers accumulate
// into a bitset as they are read; duplicates are absorbed by the set
// semantics (spec §4.2). Compatibility between modifiers is not checked
// here — that is the validator's job.
func (p *Parser) parseField() (Field, error) {
	fieldPos := p.current.Pos
	var mods Modifiers
	for modifierKinds[p.current.Kind] {
		switch p.current.Kind {
		case KwOptional:
			mods.Set(ModOptional)
		case KwRepeated:
			mods.Set(ModRepeated)
		case KwPacked:
			mods.Set(ModPacked)
		case KwInterned:
			mods.Set(ModInterned)
		case KwBitmap:
			mods.Set(ModBitmap)
		}
		if _, err := p.advance(); err != nil {
			return Field{}, err
		}
	}

	typ, err := p.parseType()
	if err != nil {
		return Field{}, err
	}

	nameTok, err := p.consume(Ident, "expected field name")
	if err != nil {
		return Field{}, err
	}
	if _, err := p.consume(Eq, "expected '=' after field name"); err != nil {
		return Field{}, err
	}
	numTok, err := p.consume(Number, "expected field number")
	if err != nil {
		return Field{}, err
	}
	num, err := p.parseInt(numTok)
	if err != nil {
		return Field{}, err
	}
	if _, err := p.consume(Semicolon, "expected ';' after field"); err != nil {
		return Field{}, err
	}

	return Field{
		Pos: fieldPos, Type: typ, Name: nameTok.Lexeme, NamePos: nameTok.Pos,
		Number: num, NumberPos: numTok.Pos, Modifiers: mods,
	}, nil
}

func (p *Parser) parseType() (Type, error) {
	pos := p.current.Pos
	if prim, ok := primitiveByKeyword[p.current.Kind]; ok {
		if _, err := p.advance(); err != nil {
			return Type{}, err
		}
		return Type{Pos: pos, IsPrimitive: true, Primitive: prim}, nil
	}
	if p.check(Ident) {
		tok, err := p.advance()
		if err != nil {
			return Type{}, err
		}
		return Type{Pos: pos, IsPrimitive: false, UserRef: tok.Lexeme}, nil
	}
	return Type{}, p.fail(pos, "expected a type (found %s)", p.current.Kind)
}

// parseInt decodes a decimal signed integer literal. Out-of-range or
// malformed numbers raise a parse failure at the token's location (spec
// §4.2).
func (p *Parser) parseInt(tok Token) (int64, error) {
	n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		return 0, p.fail(tok.Pos, "invalid number literal %q", tok.Lexeme)
	}
	return n, nil
}
