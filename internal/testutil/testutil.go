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

// Package testutil holds the assertion helpers shared by this module's
// test files: a small set of generic value checks, plus two helpers built
// around the pipeline's own types (diag.Diagnostic position/text, and
// golden C++ source text) so test bodies don't hand-roll the same
// substring/position scanning in every package.
package testutil

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/khasanyanovk/serial-kit/diag"
)

// report fails the current test, using Fatalf when stop is true so a
// broken precondition (a parse that should have succeeded, say) halts the
// test immediately instead of cascading into unrelated failures further
// down the same test body.
func report(t *testing.T, stop bool, format string, args ...any) {
	t.Helper()
	if stop {
		t.Fatalf(format, args...)
		return
	}
	t.Errorf(format, args...)
}

// AssertNoError stops the test if err is non-nil. Used to guard the parse
// step of table-driven tests that go on to inspect the resulting tree.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		report(t, true, "expected a successful parse, got error: %v", err)
	}
}

// AssertError stops the test if err is nil. Used by the negative-syntax
// tests to confirm the scanner or parser actually rejected malformed
// input rather than silently accepting it.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		report(t, true, "expected the parse to fail, but it succeeded")
	}
}

func ExpectTrue(t *testing.T, cond bool) {
	t.Helper()
	if !cond {
		report(t, false, "expected condition to hold, it did not")
	}
}

func ExpectFalse(t *testing.T, cond bool) {
	t.Helper()
	if cond {
		report(t, false, "expected condition to fail, it held")
	}
}

func ExpectEq[T comparable](t *testing.T, want, got T) {
	t.Helper()
	if want != got {
		report(t, false, "want %v, got %v", want, got)
	}
}

// ExpectBytesEq compares two encoded wire buffers, formatting mismatches
// as hex so a one-byte tag or length error is easy to spot by eye.
func ExpectBytesEq(t *testing.T, want, got []byte) {
	t.Helper()
	if !bytes.Equal(want, got) {
		report(t, false, "wire bytes differ:\n want: % x\n  got: % x", want, got)
	}
}

func ExpectSliceEq[E comparable, S ~[]E](t *testing.T, want, got S) {
	t.Helper()
	if !slices.Equal(want, got) {
		report(t, false, "want %#v, got %#v", want, got)
	}
}

// ExpectNoDiff compares generated C++ source against a golden string,
// reporting a unified diff on mismatch instead of dumping both strings in
// full: for a multi-line declaration or body artifact, the diff is the
// only part worth reading.
func ExpectNoDiff(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "golden",
		ToFile:   "generated",
		Context:  3,
	})
	if err != nil {
		report(t, false, "computing golden diff: %v", err)
		return
	}
	report(t, false, "generated output does not match golden text:\n%s", diff)
}

// ExpectDiagnosticAt asserts that diags contains an entry anchored at the
// given 1-based line and column whose message contains substr. Validator
// tests care about *where* a diagnostic points as much as its wording, so
// this checks both instead of forcing every call site to loop by hand.
func ExpectDiagnosticAt(t *testing.T, diags []*diag.Diagnostic, line, column int, substr string) {
	t.Helper()
	for _, d := range diags {
		if d.Pos.Line == line && d.Pos.Column == column && strings.Contains(d.Message, substr) {
			return
		}
	}
	var got []string
	for _, d := range diags {
		got = append(got, d.Short())
	}
	report(t, false, "no diagnostic at line %d, column %d containing %q; got: %v", line, column, substr, got)
}
