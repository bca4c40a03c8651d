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

package emit_test

import (
	"testing"

	"github.com/khasanyanovk/serial-kit/emit"
	"github.com/khasanyanovk/serial-kit/internal/testutil"
	"github.com/khasanyanovk/serial-kit/syntax"
)

func TestAppendVarintSingleByte(t *testing.T) {
	t.Parallel()
	got := emit.AppendVarint(nil, 7)
	testutil.ExpectBytesEq(t, []byte{0x07}, got)
}

func TestAppendVarintMultiByte(t *testing.T) {
	t.Parallel()
	// 300 = 0b1_0010_1100 -> low 7 bits 0x2C with continuation, then 0x02.
	got := emit.AppendVarint(nil, 300)
	testutil.ExpectBytesEq(t, []byte{0xAC, 0x02}, got)
}

func TestReadVarintRoundTrip(t *testing.T) {
	t.Parallel()
	buf := emit.AppendVarint(nil, 300)
	value, next, ok := emit.ReadVarint(buf, 0)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, uint64(300), value)
	testutil.ExpectEq(t, len(buf), next)
}

func TestReadVarintFailsOnTruncatedInput(t *testing.T) {
	t.Parallel()
	// A continuation byte with nothing following it.
	_, _, ok := emit.ReadVarint([]byte{0x80}, 0)
	testutil.ExpectFalse(t, ok)
}

// TestMinimalSchemaScenario matches spec §8 scenario 1: a single uint32
// field tagged 1 encodes id=7 as [0x08, 0x07].
func TestMinimalSchemaScenario(t *testing.T) {
	t.Parallel()
	f := syntax.Field{Number: 1, Type: syntax.Type{IsPrimitive: true, Primitive: syntax.Uint32}}
	testutil.ExpectEq(t, uint64(0x08), emit.Tag(f))

	buf := emit.AppendTag(nil, 1, emit.WireVarint)
	buf = emit.AppendVarint(buf, 7)
	testutil.ExpectBytesEq(t, []byte{0x08, 0x07}, buf)
}

// TestStringFieldScenario matches spec §8 scenario 2: a string field
// tagged 2 encodes s="hi" as [0x12, 0x02, 'h', 'i'].
func TestStringFieldScenario(t *testing.T) {
	t.Parallel()
	f := syntax.Field{Number: 2, Type: syntax.Type{IsPrimitive: true, Primitive: syntax.String}}
	testutil.ExpectEq(t, uint64(0x12), emit.Tag(f))

	buf := emit.AppendTag(nil, 2, emit.WireLengthDelimited)
	buf = emit.AppendVarint(buf, 2)
	buf = append(buf, 'h', 'i')
	testutil.ExpectBytesEq(t, []byte{0x12, 0x02, 'h', 'i'}, buf)
}

// TestPackedRepeatedScenario matches spec §8 scenario 3: a packed
// repeated uint32 field tagged 3 uses wire type 2 on the wire (not the
// logical PACKED_ARRAY=3), encoding xs=[1,300] as
// [0x1A, 0x03, 0x01, 0xAC, 0x02].
func TestPackedRepeatedScenario(t *testing.T) {
	t.Parallel()
	var mods syntax.Modifiers
	mods.Set(syntax.ModPacked)
	mods.Set(syntax.ModRepeated)
	f := syntax.Field{
		Number:    3,
		Type:      syntax.Type{IsPrimitive: true, Primitive: syntax.Uint32},
		Modifiers: mods,
	}

	testutil.ExpectEq(t, emit.WirePackedArray, emit.WireTypeFor(f))
	testutil.ExpectEq(t, uint64(0x1A), emit.Tag(f))

	var packed []byte
	packed = emit.AppendVarint(packed, 1)
	packed = emit.AppendVarint(packed, 300)

	buf := emit.AppendTag(nil, 3, emit.WireLengthDelimited)
	buf = emit.AppendVarint(buf, uint64(len(packed)))
	buf = append(buf, packed...)
	testutil.ExpectBytesEq(t, []byte{0x1A, 0x03, 0x01, 0xAC, 0x02}, buf)
}

func TestSkipByWireTypeHandlesEverySkippableShape(t *testing.T) {
	t.Parallel()

	varintBuf := emit.AppendVarint(nil, 128)
	next, ok := emit.SkipByWireType(varintBuf, 0, emit.WireVarint)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, len(varintBuf), next)

	fixed64Buf := make([]byte, 8)
	next, ok = emit.SkipByWireType(fixed64Buf, 0, emit.WireFixed64)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, 8, next)

	lengthDelimBuf := append(emit.AppendVarint(nil, 3), 'a', 'b', 'c')
	next, ok = emit.SkipByWireType(lengthDelimBuf, 0, emit.WireLengthDelimited)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, len(lengthDelimBuf), next)

	fixed32Buf := make([]byte, 4)
	next, ok = emit.SkipByWireType(fixed32Buf, 0, emit.WireFixed32)
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, 4, next)
}

// TestSkipByWireTypeRejectsUnskippableShapes covers the reserved/open
// wire types (packed, string-table, bitmap): a generic reader with no
// static declaration for the field cannot know their shape, so
// deserialize must fail rather than guess (spec §9 open question).
func TestSkipByWireTypeRejectsUnskippableShapes(t *testing.T) {
	t.Parallel()

	for _, wt := range []emit.WireType{emit.WirePackedArray, emit.WireStringTable, emit.WireBitmap} {
		_, ok := emit.SkipByWireType([]byte{0x00, 0x00, 0x00, 0x00}, 0, wt)
		testutil.ExpectFalse(t, ok)
	}
}

func TestWireTypeForInterned(t *testing.T) {
	t.Parallel()
	var mods syntax.Modifiers
	mods.Set(syntax.ModInterned)
	f := syntax.Field{
		Type:      syntax.Type{IsPrimitive: true, Primitive: syntax.String},
		Modifiers: mods,
	}
	testutil.ExpectEq(t, emit.WireStringTable, emit.WireTypeFor(f))
}

func TestWireTypeForBitmap(t *testing.T) {
	t.Parallel()
	var mods syntax.Modifiers
	mods.Set(syntax.ModBitmap)
	mods.Set(syntax.ModRepeated)
	f := syntax.Field{
		Type:      syntax.Type{IsPrimitive: true, Primitive: syntax.Bool},
		Modifiers: mods,
	}
	testutil.ExpectEq(t, emit.WireBitmap, emit.WireTypeFor(f))
}
