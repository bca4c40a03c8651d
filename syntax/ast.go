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

import "github.com/khasanyanovk/serial-kit/diag"

// PrimitiveKind identifies one of the thirteen scalar wire types (spec
// §3, §4.2 grammar's primitiveType production).
type PrimitiveKind uint8

const (
	Int8 PrimitiveKind = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float
	Double
	Bool
	String
	Byte
)

func (k PrimitiveKind) String() string {
	return primitiveNames[k]
}

var primitiveNames = [...]string{
	Int8: "int8", Int16: "int16", Int32: "int32", Int64: "int64",
	Uint8: "uint8", Uint16: "uint16", Uint32: "uint32", Uint64: "uint64",
	Float: "float", Double: "double", Bool: "bool", String: "string", Byte: "byte",
}

var primitiveByKeyword = map[Kind]PrimitiveKind{
	KwInt8: Int8, KwInt16: Int16, KwInt32: Int32, KwInt64: Int64,
	KwUint8: Uint8, KwUint16: Uint16, KwUint32: Uint32, KwUint64: Uint64,
	KwFloat: Float, KwDouble: Double, KwBool: Bool, KwString: String, KwByte: Byte,
}

// IsInteger reports whether k is one of the signed/unsigned integer kinds.
func (k PrimitiveKind) IsInteger() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

// Type is the tagged variant from spec §9: either a primitive kind or a
// reference to a user-declared enum or model.
type Type struct {
	Pos diag.Pos

	IsPrimitive bool
	Primitive   PrimitiveKind

	// UserRef is set when IsPrimitive is false; it names an enum or
	// model declared elsewhere in the same schema.
	UserRef string
}

func (t Type) String() string {
	if t.IsPrimitive {
		return t.Primitive.String()
	}
	return t.UserRef
}

// Modifiers is a small bitset over the five field modifiers (spec §9:
// "the flag values themselves are implementation detail; only their set
// semantics matter").
type Modifiers uint8

const (
	ModOptional Modifiers = 1 << iota
	ModRepeated
	ModPacked
	ModInterned
	ModBitmap
)

func (m Modifiers) Has(f Modifiers) bool { return m&f != 0 }
func (m *Modifiers) Set(f Modifiers)     { *m |= f }

// Field is a single record member: a type, a name, a wire number, and a
// modifier set (spec §3).
type Field struct {
	Pos       diag.Pos
	Type      Type
	Name      string
	NamePos   diag.Pos
	Number    int64
	NumberPos diag.Pos
	Modifiers Modifiers
}

// EnumValue is a name/value pair inside an EnumDecl (spec §3).
type EnumValue struct {
	Pos       diag.Pos
	Name      string
	NamePos   diag.Pos
	Value     int64
	ValuePos  diag.Pos
}

// EnumDecl declares a named, ordered, non-empty set of EnumValues.
type EnumDecl struct {
	Pos    diag.Pos
	Name   string
	NamePos diag.Pos
	Values []EnumValue
}

// ModelDecl declares a named, ordered, non-empty set of Fields.
type ModelDecl struct {
	Pos    diag.Pos
	Name   string
	NamePos diag.Pos
	Fields []Field
}

// Declaration is the tagged variant Enum(EnumDecl) | Model(ModelDecl)
// from spec §9. Exactly one of Enum/Model is non-nil.
type Declaration struct {
	Enum  *EnumDecl
	Model *ModelDecl
}

func (d Declaration) Name() string {
	if d.Enum != nil {
		return d.Enum.Name
	}
	return d.Model.Name
}

func (d Declaration) Pos() diag.Pos {
	if d.Enum != nil {
		return d.Enum.Pos
	}
	return d.Model.Pos
}

// Schema is the root syntax-tree node: a (possibly dotted) namespace
// name and an ordered list of declarations (spec §3).
type Schema struct {
	Namespace    string
	NamespacePos diag.Pos
	Declarations []Declaration
}
