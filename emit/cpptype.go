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

package emit

import (
	"fmt"

	"github.com/khasanyanovk/serial-kit/syntax"
)

// primitiveCppType maps a primitive kind to the native type used for its
// singular member declaration (spec §4.4's member table).
var primitiveCppType = map[syntax.PrimitiveKind]string{
	syntax.Int8: "int8_t", syntax.Int16: "int16_t", syntax.Int32: "int32_t", syntax.Int64: "int64_t",
	syntax.Uint8: "uint8_t", syntax.Uint16: "uint16_t", syntax.Uint32: "uint32_t", syntax.Uint64: "uint64_t",
	syntax.Float: "float", syntax.Double: "double",
	syntax.Bool: "bool", syntax.String: "std::string", syntax.Byte: "uint8_t",
}

// elementCppType returns the C++ spelling of a single element of t,
// ignoring the optional/repeated wrapper.
func elementCppType(t syntax.Type) string {
	if t.IsPrimitive {
		return primitiveCppType[t.Primitive]
	}
	return t.UserRef
}

// memberCppType returns the full declared C++ type of a field's member,
// applying the optional/repeated wrapper rules from spec §4.4's member
// table.
func memberCppType(f syntax.Field) string {
	inner := elementCppType(f.Type)
	switch {
	case f.Modifiers.Has(syntax.ModOptional):
		return fmt.Sprintf("std::optional<%s>", inner)
	case f.Modifiers.Has(syntax.ModRepeated):
		return fmt.Sprintf("std::vector<%s>", inner)
	default:
		return inner
	}
}

// memberInitializer returns the initializer text for a singular member,
// or "" when the type is default-initialized (spec §4.4's member table:
// strings and user types get no explicit initializer).
func memberInitializer(f syntax.Field) string {
	if f.Modifiers.Has(syntax.ModOptional) || f.Modifiers.Has(syntax.ModRepeated) {
		return ""
	}
	if !f.Type.IsPrimitive {
		return ""
	}
	switch f.Type.Primitive {
	case syntax.Bool:
		return "false"
	case syntax.String:
		return ""
	default:
		return "0"
	}
}

// isEnumType reports whether t names an enum in symbols (used by the
// serializer/deserializer to route enums through the integer-ordinal
// path rather than the recursive nested-message path).
func isEnumType(t syntax.Type, symbols symbolLookup) bool {
	if t.IsPrimitive {
		return false
	}
	_, ok := symbols.Enum(t.UserRef)
	return ok
}

// symbolLookup is the two-method subset of validate.SymbolTable that the
// body generator needs to resolve user-type references.
type symbolLookup interface {
	Enum(name string) (*syntax.EnumDecl, bool)
	Model(name string) (*syntax.ModelDecl, bool)
}
