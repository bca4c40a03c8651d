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
	"fmt"

	"github.com/khasanyanovk/serial-kit/diag"
)

// Kind identifies the lexical class of a Token.
type Kind uint8

const (
	EOF Kind = iota
	Invalid
	Ident
	Number

	// punctuation
	Semicolon
	Eq
	OpenCurl
	CloseCurl
	Dot

	// keywords
	KwNamespace
	KwEnum
	KwModel
	KwOptional
	KwRepeated
	KwPacked
	KwInterned
	KwBitmap

	// primitive types
	KwInt8
	KwInt16
	KwInt32
	KwInt64
	KwUint8
	KwUint16
	KwUint32
	KwUint64
	KwFloat
	KwDouble
	KwBool
	KwString
	KwByte
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var kindNames = map[Kind]string{
	EOF:         "end-of-file",
	Invalid:     "invalid",
	Ident:       "identifier",
	Number:      "number",
	Semicolon:   "';'",
	Eq:          "'='",
	OpenCurl:    "'{'",
	CloseCurl:   "'}'",
	Dot:         "'.'",
	KwNamespace: "namespace",
	KwEnum:      "enum",
	KwModel:     "model",
	KwOptional:  "optional",
	KwRepeated:  "repeated",
	KwPacked:    "packed",
	KwInterned:  "interned",
	KwBitmap:    "bitmap",
	KwInt8:      "int8",
	KwInt16:     "int16",
	KwInt32:     "int32",
	KwInt64:     "int64",
	KwUint8:     "uint8",
	KwUint16:    "uint16",
	KwUint32:    "uint32",
	KwUint64:    "uint64",
	KwFloat:     "float",
	KwDouble:    "double",
	KwBool:      "bool",
	KwString:    "string",
	KwByte:      "byte",
}

// keywords maps every reserved lexeme (both statement keywords and
// primitive type names) to its Kind. Anything not in this table that
// starts like an identifier becomes Ident.
var keywords = map[string]Kind{
	"namespace": KwNamespace,
	"enum":      KwEnum,
	"model":     KwModel,
	"optional":  KwOptional,
	"repeated":  KwRepeated,
	"packed":    KwPacked,
	"interned":  KwInterned,
	"bitmap":    KwBitmap,

	"int8":   KwInt8,
	"int16":  KwInt16,
	"int32":  KwInt32,
	"int64":  KwInt64,
	"uint8":  KwUint8,
	"uint16": KwUint16,
	"uint32": KwUint32,
	"uint64": KwUint64,
	"float":  KwFloat,
	"double": KwDouble,
	"bool":   KwBool,
	"string": KwString,
	"byte":   KwByte,
}

// primitiveKinds is the set of Kind values that name a primitive type.
// The parser recognizes a type position through primitiveByKeyword.
var primitiveKinds = map[Kind]bool{
	KwInt8: true, KwInt16: true, KwInt32: true, KwInt64: true,
	KwUint8: true, KwUint16: true, KwUint32: true, KwUint64: true,
	KwFloat: true, KwDouble: true, KwBool: true, KwString: true, KwByte: true,
}

// modifierKinds is the set of Kind values that may appear before a field's
// type, used by the parser's modifier-accumulation loop.
var modifierKinds = map[Kind]bool{
	KwOptional: true, KwRepeated: true, KwPacked: true, KwInterned: true, KwBitmap: true,
}

// Token is a tagged lexical unit: a kind, an optional lexeme (set for
// keywords, Ident, Number, and Invalid), and the source location of its first
// character (spec §3).
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    diag.Pos
}
