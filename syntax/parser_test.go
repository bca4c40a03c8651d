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

package syntax_test

import (
	"strings"
	"testing"

	"github.com/khasanyanovk/serial-kit/internal/testutil"
	"github.com/khasanyanovk/serial-kit/syntax"
)

func TestParseNamespaceAndDottedName(t *testing.T) {
	t.Parallel()

	schema, err := syntax.Parse([]byte("namespace acme.widgets;"))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "acme.widgets", schema.Namespace)
	testutil.ExpectEq(t, 0, len(schema.Declarations))
}

func TestParseEnum(t *testing.T) {
	t.Parallel()

	schema, err := syntax.Parse([]byte(`
		namespace n;
		enum Color {
			Red = 0;
			Green = 1;
			Blue = 2;
		}
	`))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, 1, len(schema.Declarations))

	e := schema.Declarations[0].Enum
	testutil.ExpectTrue(t, e != nil)
	testutil.ExpectEq(t, "Color", e.Name)
	testutil.ExpectEq(t, 3, len(e.Values))
	testutil.ExpectEq(t, "Blue", e.Values[2].Name)
	testutil.ExpectEq(t, int64(2), e.Values[2].Value)
}

func TestParseModelWithModifiersAndTypes(t *testing.T) {
	t.Parallel()

	schema, err := syntax.Parse([]byte(`
		namespace n;
		model Widget {
			int32 id = 1;
			optional string label = 2;
			repeated packed uint8 flags = 3;
			repeated bitmap bool switches = 4;
			User owner = 5;
		}
	`))
	testutil.AssertNoError(t, err)

	m := schema.Declarations[0].Model
	testutil.ExpectTrue(t, m != nil)
	testutil.ExpectEq(t, 5, len(m.Fields))

	id := m.Fields[0]
	testutil.ExpectEq(t, "id", id.Name)
	testutil.ExpectTrue(t, id.Type.IsPrimitive)
	testutil.ExpectEq(t, syntax.Int32, id.Type.Primitive)

	label := m.Fields[1]
	testutil.ExpectTrue(t, label.Modifiers.Has(syntax.ModOptional))

	flags := m.Fields[2]
	testutil.ExpectTrue(t, flags.Modifiers.Has(syntax.ModRepeated))
	testutil.ExpectTrue(t, flags.Modifiers.Has(syntax.ModPacked))

	switches := m.Fields[3]
	testutil.ExpectTrue(t, switches.Modifiers.Has(syntax.ModBitmap))

	owner := m.Fields[4]
	testutil.ExpectFalse(t, owner.Type.IsPrimitive)
	testutil.ExpectEq(t, "User", owner.Type.UserRef)
}

func TestParseRejectsMissingSemicolon(t *testing.T) {
	t.Parallel()

	_, err := syntax.Parse([]byte("namespace n"))
	testutil.AssertError(t, err)
}

func TestParseRejectsUnknownDeclarationKeyword(t *testing.T) {
	t.Parallel()

	_, err := syntax.Parse([]byte("namespace n; struct S {}"))
	testutil.AssertError(t, err)
}

func TestParseErrorCarriesPosition(t *testing.T) {
	t.Parallel()

	_, err := syntax.Parse([]byte("namespace n;\nmodel M { int32 x = ; }"))
	testutil.AssertError(t, err)
	if err.Error() == "" {
		t.Fatal("expected a non-empty error message")
	}
	// The failure points at the ';' where the field number should be.
	testutil.ExpectTrue(t, strings.Contains(err.Error(), "line 2, column 21"))
}
