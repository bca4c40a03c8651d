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

// Package diag holds the diagnostic record type shared by every stage of
// the compiler pipeline: the parser reports a single fail-fast diagnostic,
// the validator accumulates as many as it finds.
package diag

import "fmt"

// Pos is a source location: a 1-based line, a 1-based column, and a
// 0-based byte offset into the source text.
type Pos struct {
	Line   int
	Column int
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Diagnostic is a message tied to a source location. It satisfies error so
// it can be returned directly from the parser (fail-fast) or collected
// into a Bag by the validator.
type Diagnostic struct {
	Pos     Pos
	Message string
}

func New(pos Pos, format string, args ...any) *Diagnostic {
	return &Diagnostic{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Error renders the diagnostic the way the scanner's error-formatting
// helper does (spec §4.1): "Error at line L, column C: <msg>".
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("Error at line %d, column %d: %s", d.Pos.Line, d.Pos.Column, d.Message)
}

// Short renders the driver-facing form from spec §7: "[line:column] message".
func (d *Diagnostic) Short() string {
	return fmt.Sprintf("[%d:%d] %s", d.Pos.Line, d.Pos.Column, d.Message)
}

func (d *Diagnostic) Position() Pos { return d.Pos }

// Bag accumulates diagnostics in insertion order and never aborts early;
// this is the collection behavior the validator requires (spec §4.3).
type Bag struct {
	items []*Diagnostic
}

func (b *Bag) Add(pos Pos, format string, args ...any) {
	b.items = append(b.items, New(pos, format, args...))
}

func (b *Bag) AddDiagnostic(d *Diagnostic) {
	b.items = append(b.items, d)
}

// OK reports whether no diagnostics have been collected; compilation is
// considered successful iff this is true (spec §3, §4.3).
func (b *Bag) OK() bool {
	return len(b.items) == 0
}

func (b *Bag) Diagnostics() []*Diagnostic {
	return b.items
}

func (b *Bag) Len() int {
	return len(b.items)
}
