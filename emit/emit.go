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
	"github.com/khasanyanovk/serial-kit/syntax"
	"github.com/khasanyanovk/serial-kit/validate"
)

// Options controls the naming of the two artifacts Emit produces
// (spec §6's --decl-ext/--body-ext/--base driver flags).
type Options struct {
	// BaseName is the file stem shared by both artifacts; the driver
	// uses its --base flag or, failing that, the schema's namespace name.
	BaseName string
	// DeclExt and BodyExt are the file extensions for the declaration
	// and body artifacts, including the leading dot. They default to
	// ".h" and ".cc" when empty.
	DeclExt string
	BodyExt string
}

func (o Options) declFileName() string {
	ext := o.DeclExt
	if ext == "" {
		ext = ".h"
	}
	return o.BaseName + ext
}

func (o Options) bodyFileName() string {
	ext := o.BodyExt
	if ext == "" {
		ext = ".cc"
	}
	return o.BaseName + ext
}

// Artifacts holds the two generated files, keyed by the name they should
// be written under (spec §4.4: "the emitter produces exactly two text
// artifacts").
type Artifacts struct {
	DeclFileName string
	DeclSource   string
	BodyFileName string
	BodySource   string
}

// Emit renders both artifacts for a schema that has already passed
// validation. Callers must check result.OK() before calling Emit; a
// schema with outstanding diagnostics has no defined codegen behavior.
func Emit(schema *syntax.Schema, result validate.Result, opts Options) Artifacts {
	declName := opts.declFileName()
	return Artifacts{
		DeclFileName: declName,
		DeclSource:   GenerateDeclaration(schema),
		BodyFileName: opts.bodyFileName(),
		BodySource:   GenerateBody(schema, result.Symbols, declName),
	}
}
