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

// GenerateBody renders the body artifact: an include of the declaration
// artifact, the namespace frame, a block of small wire-format support
// functions shared by every model in the schema, and per-model
// definitions of serialize/deserialize (spec §4.4). Enums have no body.
func GenerateBody(schema *syntax.Schema, symbols symbolLookup, declFileName string) string {
	w := &codeWriter{}

	w.line("// Generated by serial-kit. DO NOT EDIT.")
	w.line("#include %q", declFileName)
	w.blank()
	w.line("#include <cstring>")
	w.blank()
	w.line("namespace %s {", schema.Namespace)
	w.blank()

	writeWireSupport(w)

	for _, d := range schema.Declarations {
		if d.Model == nil {
			continue
		}
		w.blank()
		writeModelBody(w, d.Model, symbols)
	}

	w.blank()
	w.line("}  // namespace %s", schema.Namespace)

	return w.String()
}

// writeWireSupport emits the small set of free functions every model's
// serialize/deserialize relies on: varint and fixed-width append/read,
// and the unknown-field skip logic from spec §4.4. These are written
// once per schema rather than once per model, so the helper block does
// not repeat for every model.
func writeWireSupport(w *codeWriter) {
	w.line("namespace {")
	w.blank()

	w.line("void AppendVarint(std::vector<uint8_t>& out, uint64_t value) {")
	w.push()
	w.line("while (value >= 0x80) {")
	w.push()
	w.line("out.push_back(static_cast<uint8_t>(value) | 0x80);")
	w.line("value >>= 7;")
	w.pop()
	w.line("}")
	w.line("out.push_back(static_cast<uint8_t>(value));")
	w.pop()
	w.line("}")
	w.blank()

	w.line("void AppendTag(std::vector<uint8_t>& out, uint32_t number, uint8_t wire_type) {")
	w.push()
	w.line("AppendVarint(out, (static_cast<uint64_t>(number) << 3) | wire_type);")
	w.pop()
	w.line("}")
	w.blank()

	w.line("void AppendFixed32(std::vector<uint8_t>& out, uint32_t value) {")
	w.push()
	w.line("for (int i = 0; i < 4; ++i) out.push_back(static_cast<uint8_t>(value >> (8 * i)));")
	w.pop()
	w.line("}")
	w.blank()

	w.line("void AppendFixed64(std::vector<uint8_t>& out, uint64_t value) {")
	w.push()
	w.line("for (int i = 0; i < 8; ++i) out.push_back(static_cast<uint8_t>(value >> (8 * i)));")
	w.pop()
	w.line("}")
	w.blank()

	w.line("void AppendBytes(std::vector<uint8_t>& out, const uint8_t* data, size_t size) {")
	w.push()
	w.line("AppendVarint(out, size);")
	w.line("out.insert(out.end(), data, data + size);")
	w.pop()
	w.line("}")
	w.blank()

	w.line("uint32_t FloatToBits(float value) {")
	w.push()
	w.line("uint32_t bits;")
	w.line("std::memcpy(&bits, &value, sizeof(bits));")
	w.line("return bits;")
	w.pop()
	w.line("}")
	w.blank()

	w.line("float BitsToFloat(uint32_t bits) {")
	w.push()
	w.line("float value;")
	w.line("std::memcpy(&value, &bits, sizeof(value));")
	w.line("return value;")
	w.pop()
	w.line("}")
	w.blank()

	w.line("uint64_t DoubleToBits(double value) {")
	w.push()
	w.line("uint64_t bits;")
	w.line("std::memcpy(&bits, &value, sizeof(bits));")
	w.line("return bits;")
	w.pop()
	w.line("}")
	w.blank()

	w.line("double BitsToDouble(uint64_t bits) {")
	w.push()
	w.line("double value;")
	w.line("std::memcpy(&value, &bits, sizeof(value));")
	w.line("return value;")
	w.pop()
	w.line("}")
	w.blank()

	w.line("bool ReadVarint(const uint8_t* data, size_t size, size_t& pos, uint64_t& value) {")
	w.push()
	w.line("value = 0;")
	w.line("int shift = 0;")
	w.line("while (true) {")
	w.push()
	w.line("if (pos >= size || shift >= 64) return false;")
	w.line("uint8_t b = data[pos++];")
	w.line("value |= static_cast<uint64_t>(b & 0x7F) << shift;")
	w.line("if ((b & 0x80) == 0) return true;")
	w.line("shift += 7;")
	w.pop()
	w.line("}")
	w.pop()
	w.line("}")
	w.blank()

	// Unknown-field skip, per spec §4.4 point 3: wire types 0, 1, 2, 5 are
	// skippable; everything else (including the reserved codes 3, 6, 7)
	// is unskippable and fails the whole deserialize call.
	w.line("bool SkipField(const uint8_t* data, size_t size, size_t& pos, uint8_t wire_type) {")
	w.push()
	w.line("switch (wire_type) {")
	w.push()
	w.line("case 0: {")
	w.push()
	w.line("uint64_t discard = 0;")
	w.line("return ReadVarint(data, size, pos, discard);")
	w.pop()
	w.line("}")
	w.line("case 1:")
	w.push()
	w.line("if (pos + 8 > size) return false;")
	w.line("pos += 8;")
	w.line("return true;")
	w.pop()
	w.line("case 2: {")
	w.push()
	w.line("uint64_t length = 0;")
	w.line("if (!ReadVarint(data, size, pos, length)) return false;")
	w.line("if (pos + length > size) return false;")
	w.line("pos += static_cast<size_t>(length);")
	w.line("return true;")
	w.pop()
	w.line("}")
	w.line("case 5:")
	w.push()
	w.line("if (pos + 4 > size) return false;")
	w.line("pos += 4;")
	w.line("return true;")
	w.pop()
	w.line("default:")
	w.push()
	w.line("return false;")
	w.pop()
	w.pop()
	w.line("}")
	w.pop()
	w.line("}")
	w.blank()

	w.line("}  // namespace")
}

func writeModelBody(w *codeWriter, m *syntax.ModelDecl, symbols symbolLookup) {
	writeSerializeMethod(w, m, symbols)
	w.blank()
	writeDeserializeMethod(w, m, symbols)
}

func writeSerializeMethod(w *codeWriter, m *syntax.ModelDecl, symbols symbolLookup) {
	w.line("std::vector<uint8_t> %s::serialize() const {", m.Name)
	w.push()
	w.line("std::vector<uint8_t> out;")
	for _, f := range m.Fields {
		w.blank()
		writeSerializeField(w, f, symbols)
	}
	w.blank()
	w.line("return out;")
	w.pop()
	w.line("}")
}

func writeSerializeField(w *codeWriter, f syntax.Field, symbols symbolLookup) {
	member := fmt.Sprintf("this->%s", f.Name)
	wt := uint8(tagWireType(f))

	switch {
	case f.Modifiers.Has(syntax.ModPacked):
		w.line("if (!%s.empty()) {", member)
		w.push()
		w.line("AppendTag(out, %d, %d);", f.Number, wt)
		packedBuf := "packed_" + f.Name
		w.line("std::vector<uint8_t> %s;", packedBuf)
		w.line("for (const auto& item : %s) {", member)
		w.push()
		writeValueAppend(w, packedBuf, "item", f.Type, symbols)
		w.pop()
		w.line("}")
		w.line("AppendVarint(out, %s.size());", packedBuf)
		w.line("out.insert(out.end(), %s.begin(), %s.end());", packedBuf, packedBuf)
		w.pop()
		w.line("}")

	case f.Modifiers.Has(syntax.ModBitmap):
		w.line("if (!%s.empty()) {", member)
		w.push()
		w.line("AppendTag(out, %d, %d);", f.Number, wt)
		w.line("AppendVarint(out, %s.size());", member)
		w.line("std::vector<uint8_t> bits((%s.size() + 7) / 8, 0);", member)
		w.line("for (size_t i = 0; i < %s.size(); ++i) {", member)
		w.push()
		w.line("if (%s[i]) bits[i / 8] |= static_cast<uint8_t>(1u << (i %% 8));", member)
		w.pop()
		w.line("}")
		w.line("out.insert(out.end(), bits.begin(), bits.end());")
		w.pop()
		w.line("}")

	case f.Modifiers.Has(syntax.ModRepeated):
		w.line("for (const auto& item : %s) {", member)
		w.push()
		w.line("AppendTag(out, %d, %d);", f.Number, wt)
		writeValueAppend(w, "out", "item", f.Type, symbols)
		w.pop()
		w.line("}")

	case f.Modifiers.Has(syntax.ModOptional):
		w.line("if (%s.has_value()) {", member)
		w.push()
		w.line("AppendTag(out, %d, %d);", f.Number, wt)
		writeValueAppend(w, "out", "(*"+member+")", f.Type, symbols)
		w.pop()
		w.line("}")

	default:
		w.line("AppendTag(out, %d, %d);", f.Number, wt)
		writeValueAppend(w, "out", member, f.Type, symbols)
	}
}

// writeValueAppend writes the payload-only encoding of a single value of
// type t, held in expression `expr`, into the byte buffer `buf` (spec
// §4.4's per-type payload rules).
func writeValueAppend(w *codeWriter, buf, expr string, t syntax.Type, symbols symbolLookup) {
	if isEnumType(t, symbols) {
		w.line("AppendVarint(%s, static_cast<uint64_t>(static_cast<int32_t>(%s)));", buf, expr)
		return
	}
	if !t.IsPrimitive {
		w.line("{")
		w.push()
		w.line("std::vector<uint8_t> nested = %s.serialize();", expr)
		w.line("AppendVarint(%s, nested.size());", buf)
		w.line("%s.insert(%s.end(), nested.begin(), nested.end());", buf, buf)
		w.pop()
		w.line("}")
		return
	}

	switch t.Primitive {
	case syntax.Bool:
		w.line("AppendVarint(%s, %s ? 1 : 0);", buf, expr)
	case syntax.Float:
		w.line("AppendFixed32(%s, FloatToBits(%s));", buf, expr)
	case syntax.Double:
		w.line("AppendFixed64(%s, DoubleToBits(%s));", buf, expr)
	case syntax.String:
		w.line("AppendBytes(%s, reinterpret_cast<const uint8_t*>(%s.data()), %s.size());", buf, expr, expr)
	case syntax.Byte:
		w.line("{")
		w.push()
		w.line("uint8_t byte_value = %s;", expr)
		w.line("AppendBytes(%s, &byte_value, 1);", buf)
		w.pop()
		w.line("}")
	case syntax.Int8, syntax.Int16, syntax.Int32, syntax.Int64:
		w.line("AppendVarint(%s, static_cast<uint64_t>(static_cast<int64_t>(%s)));", buf, expr)
	default: // unsigned integers
		w.line("AppendVarint(%s, static_cast<uint64_t>(%s));", buf, expr)
	}
}

func writeDeserializeMethod(w *codeWriter, m *syntax.ModelDecl, symbols symbolLookup) {
	w.line("bool %s::deserialize(const std::vector<uint8_t>& bytes) {", m.Name)
	w.push()
	w.line("*this = %s();", m.Name)
	w.line("const uint8_t* data = bytes.data();")
	w.line("size_t size = bytes.size();")
	w.line("size_t pos = 0;")
	w.line("while (pos < size) {")
	w.push()
	w.line("uint64_t tag = 0;")
	w.line("if (!ReadVarint(data, size, pos, tag)) return false;")
	w.line("uint32_t field_number = static_cast<uint32_t>(tag >> 3);")
	w.line("uint8_t wire_type = static_cast<uint8_t>(tag & 0x7);")
	w.line("switch (field_number) {")
	w.push()
	for _, f := range m.Fields {
		writeDeserializeCase(w, f, symbols)
	}
	w.line("default:")
	w.push()
	w.line("if (!SkipField(data, size, pos, wire_type)) return false;")
	w.line("break;")
	w.pop()
	w.pop()
	w.line("}")
	w.pop()
	w.line("}")
	w.line("return true;")
	w.pop()
	w.line("}")
}

func writeDeserializeCase(w *codeWriter, f syntax.Field, symbols symbolLookup) {
	member := fmt.Sprintf("this->%s", f.Name)
	w.line("case %d: {", f.Number)
	w.push()

	switch {
	case f.Modifiers.Has(syntax.ModPacked):
		w.line("uint64_t length = 0;")
		w.line("if (!ReadVarint(data, size, pos, length)) return false;")
		w.line("if (pos + length > size) return false;")
		w.line("size_t end = pos + static_cast<size_t>(length);")
		w.line("while (pos < end) {")
		w.push()
		writeDecodeValue(w, f.Type, symbols)
		w.line("%s.push_back(decoded);", member)
		w.pop()
		w.line("}")
		w.line("if (pos != end) return false;")

	case f.Modifiers.Has(syntax.ModBitmap):
		w.line("uint64_t count = 0;")
		w.line("if (!ReadVarint(data, size, pos, count)) return false;")
		w.line("size_t nbytes = (static_cast<size_t>(count) + 7) / 8;")
		w.line("if (pos + nbytes > size) return false;")
		w.line("%s.clear();", member)
		w.line("for (uint64_t i = 0; i < count; ++i) {")
		w.push()
		w.line("uint8_t byte_value = data[pos + static_cast<size_t>(i / 8)];")
		w.line("%s.push_back(((byte_value >> (i %% 8)) & 1) != 0);", member)
		w.pop()
		w.line("}")
		w.line("pos += nbytes;")

	case f.Modifiers.Has(syntax.ModRepeated):
		writeDecodeValue(w, f.Type, symbols)
		w.line("%s.push_back(decoded);", member)

	case f.Modifiers.Has(syntax.ModOptional):
		writeDecodeValue(w, f.Type, symbols)
		w.line("%s = decoded;", member)

	default:
		writeDecodeValue(w, f.Type, symbols)
		w.line("%s = decoded;", member)
	}

	w.line("break;")
	w.pop()
	w.line("}")
}

// writeDecodeValue decodes one value of type t from (data, size, pos)
// into a freshly declared local `decoded`, per the static declaration —
// never the wire_type on the tag (spec §4.4 point 2).
func writeDecodeValue(w *codeWriter, t syntax.Type, symbols symbolLookup) {
	if isEnumType(t, symbols) {
		w.line("uint64_t raw = 0;")
		w.line("if (!ReadVarint(data, size, pos, raw)) return false;")
		w.line("%s decoded = static_cast<%s>(static_cast<int32_t>(raw));", t.UserRef, t.UserRef)
		return
	}
	if !t.IsPrimitive {
		w.line("uint64_t length = 0;")
		w.line("if (!ReadVarint(data, size, pos, length)) return false;")
		w.line("if (pos + length > size) return false;")
		w.line("%s decoded;", t.UserRef)
		w.line("if (!decoded.deserialize(std::vector<uint8_t>(data + pos, data + pos + length))) return false;")
		w.line("pos += static_cast<size_t>(length);")
		return
	}

	switch t.Primitive {
	case syntax.Bool:
		w.line("uint64_t raw = 0;")
		w.line("if (!ReadVarint(data, size, pos, raw)) return false;")
		w.line("bool decoded = raw != 0;")
	case syntax.Float:
		w.line("if (pos + 4 > size) return false;")
		w.line("uint32_t bits32 = static_cast<uint32_t>(data[pos]) | (static_cast<uint32_t>(data[pos + 1]) << 8) |")
		w.line("                  (static_cast<uint32_t>(data[pos + 2]) << 16) | (static_cast<uint32_t>(data[pos + 3]) << 24);")
		w.line("pos += 4;")
		w.line("float decoded = BitsToFloat(bits32);")
	case syntax.Double:
		w.line("if (pos + 8 > size) return false;")
		w.line("uint64_t bits64 = 0;")
		w.line("for (int i = 0; i < 8; ++i) bits64 |= static_cast<uint64_t>(data[pos + i]) << (8 * i);")
		w.line("pos += 8;")
		w.line("double decoded = BitsToDouble(bits64);")
	case syntax.String:
		w.line("uint64_t length = 0;")
		w.line("if (!ReadVarint(data, size, pos, length)) return false;")
		w.line("if (pos + length > size) return false;")
		w.line("std::string decoded(reinterpret_cast<const char*>(data + pos), static_cast<size_t>(length));")
		w.line("pos += static_cast<size_t>(length);")
	case syntax.Byte:
		w.line("uint64_t length = 0;")
		w.line("if (!ReadVarint(data, size, pos, length)) return false;")
		w.line("if (length != 1 || pos + length > size) return false;")
		w.line("uint8_t decoded = data[pos];")
		w.line("pos += 1;")
	default:
		cppT := primitiveCppType[t.Primitive]
		w.line("uint64_t raw = 0;")
		w.line("if (!ReadVarint(data, size, pos, raw)) return false;")
		if t.Primitive == syntax.Int8 || t.Primitive == syntax.Int16 || t.Primitive == syntax.Int32 || t.Primitive == syntax.Int64 {
			w.line("%s decoded = static_cast<%s>(static_cast<int64_t>(raw));", cppT, cppT)
		} else {
			w.line("%s decoded = static_cast<%s>(raw);", cppT, cppT)
		}
	}
}
