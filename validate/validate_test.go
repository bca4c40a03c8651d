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

package validate_test

import (
	"testing"

	"github.com/khasanyanovk/serial-kit/diag"
	"github.com/khasanyanovk/serial-kit/internal/testutil"
	"github.com/khasanyanovk/serial-kit/syntax"
	"github.com/khasanyanovk/serial-kit/validate"
)

func mustParse(t *testing.T, src string) *syntax.Schema {
	t.Helper()
	schema, err := syntax.Parse([]byte(src))
	testutil.AssertNoError(t, err)
	return schema
}

func TestValidateAcceptsWellFormedSchema(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		enum Color { Red = 0; Green = 1; }
		model Widget {
			int32 id = 1;
			Color color = 2;
			repeated packed int32 tags = 3;
		}
	`)
	result := validate.Validate(schema)
	testutil.ExpectTrue(t, result.OK())
	testutil.ExpectEq(t, 0, len(result.Diagnostics))
}

func TestValidateRejectsEmptyNamespace(t *testing.T) {
	t.Parallel()

	schema := &syntax.Schema{Namespace: "", NamespacePos: diag.Pos{Line: 1, Column: 1}}
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
	testutil.ExpectDiagnosticAt(t, result.Diagnostics, 1, 1, "Namespace name must not be empty")
}

func TestValidateRejectsDuplicateDeclarationNames(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model M { int32 x = 1; }
		model M { int32 y = 1; }
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateRejectsDuplicateFieldNumbers(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model M {
			int32 x = 1;
			int32 y = 1;
		}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateRejectsReservedFieldNumber(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model M {
			int32 x = 19500;
		}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateRejectsOptionalRepeatedConflict(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model M {
			optional repeated int32 x = 1;
		}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateRejectsPackedWithoutRepeated(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model M {
			packed int32 x = 1;
		}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateRejectsPackedOnUserType(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model Inner { int32 x = 1; }
		model Outer {
			repeated packed Inner items = 1;
		}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateRejectsInternedOnNonString(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model M {
			interned int32 x = 1;
		}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateRejectsBitmapOnNonBool(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model M {
			repeated bitmap int32 x = 1;
		}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateRejectsUnknownTypeReference(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model M {
			Ghost x = 1;
		}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateRejectsEmptyEnum(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		enum E {}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateRejectsEmptyModel(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model M {}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
}

func TestValidateCollectsMultipleDiagnosticsInOnePass(t *testing.T) {
	t.Parallel()

	schema := mustParse(t, `
		namespace n;
		model M {
			int32 x = 1;
			int32 y = 1;
			Ghost z = 2;
		}
	`)
	result := validate.Validate(schema)
	testutil.ExpectFalse(t, result.OK())
	if len(result.Diagnostics) < 2 {
		t.Fatalf("expected at least 2 diagnostics, got %d", len(result.Diagnostics))
	}
}
