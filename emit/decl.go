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

import "github.com/khasanyanovk/serial-kit/syntax"

// GenerateDeclaration renders the declaration artifact for schema: a
// single-inclusion header banner, a namespace frame named after the
// schema's namespace, a strongly-typed enum per EnumDecl, and a struct
// per ModelDecl with public members and serialize/deserialize
// signatures (spec §4.4).
func GenerateDeclaration(schema *syntax.Schema) string {
	w := &codeWriter{}

	w.line("// Generated by serial-kit. DO NOT EDIT.")
	w.line("#pragma once")
	w.blank()
	w.line("#include <cstdint>")
	w.line("#include <optional>")
	w.line("#include <string>")
	w.line("#include <vector>")
	w.blank()
	w.line("namespace %s {", schema.Namespace)
	w.blank()

	for i, d := range schema.Declarations {
		if i > 0 {
			w.blank()
		}
		switch {
		case d.Enum != nil:
			writeEnumDecl(w, d.Enum)
		case d.Model != nil:
			writeModelDecl(w, d.Model)
		}
	}

	w.blank()
	w.line("}  // namespace %s", schema.Namespace)

	return w.String()
}

func writeEnumDecl(w *codeWriter, e *syntax.EnumDecl) {
	w.line("enum class %s : int32_t {", e.Name)
	w.push()
	for _, v := range e.Values {
		w.line("%s = %d,", v.Name, v.Value)
	}
	w.pop()
	w.line("};")
}

func writeModelDecl(w *codeWriter, m *syntax.ModelDecl) {
	w.line("struct %s {", m.Name)
	w.push()
	w.line("%s() = default;", m.Name)
	w.blank()

	for _, f := range m.Fields {
		init := memberInitializer(f)
		if init == "" {
			w.line("%s %s;", memberCppType(f), f.Name)
		} else {
			w.line("%s %s = %s;", memberCppType(f), f.Name, init)
		}
	}

	w.blank()
	w.line("std::vector<uint8_t> serialize() const;")
	w.line("bool deserialize(const std::vector<uint8_t>& bytes);")
	w.pop()
	w.line("};")
}
