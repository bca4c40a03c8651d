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

// Package validate implements the semantic checks that a syntax tree must
// pass before the emitter can trust it: tag-number ranges and uniqueness,
// modifier compatibility, and cross-declaration type resolution (spec
// §4.3). It borrows the schema non-mutably and never aborts early — every
// discoverable diagnostic is reported in one pass.
package validate

import (
	"github.com/khasanyanovk/serial-kit/diag"
	"github.com/khasanyanovk/serial-kit/syntax"
)

const (
	minFieldNumber = 1
	maxFieldNumber = 536_870_911
	reservedLow    = 19_000
	reservedHigh   = 19_999
)

// SymbolTable is the enum-name/model-name mapping populated before any
// field-type checking, so forward references within a schema resolve
// correctly (spec §4.3 phase 2).
type SymbolTable struct {
	Enums  map[string]*syntax.EnumDecl
	Models map[string]*syntax.ModelDecl
}

// Enum looks up a declared enum by name.
func (st *SymbolTable) Enum(name string) (*syntax.EnumDecl, bool) {
	e, ok := st.Enums[name]
	return e, ok
}

// Model looks up a declared model by name.
func (st *SymbolTable) Model(name string) (*syntax.ModelDecl, bool) {
	m, ok := st.Models[name]
	return m, ok
}

func newSymbolTable(schema *syntax.Schema) *SymbolTable {
	st := &SymbolTable{
		Enums:  make(map[string]*syntax.EnumDecl),
		Models: make(map[string]*syntax.ModelDecl),
	}
	for i := range schema.Declarations {
		d := schema.Declarations[i]
		if d.Enum != nil {
			st.Enums[d.Enum.Name] = d.Enum
		}
		if d.Model != nil {
			st.Models[d.Model.Name] = d.Model
		}
	}
	return st
}

// Result holds the outcome of validating a schema: its symbol table
// (useful to the emitter for resolving user-type references) and the
// diagnostics produced.
type Result struct {
	Symbols     *SymbolTable
	Diagnostics []*diag.Diagnostic
}

// OK reports whether the schema passed validation with zero diagnostics
// (spec §3: "the compilation is considered successful iff no diagnostics
// were produced").
func (r Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// Validate runs all three checking phases from spec §4.3 over schema and
// returns every diagnostic found.
func Validate(schema *syntax.Schema) Result {
	var bag diag.Bag
	symbols := newSymbolTable(schema)

	checkSchemaLevel(schema, &bag)
	for i := range schema.Declarations {
		d := schema.Declarations[i]
		switch {
		case d.Enum != nil:
			checkEnum(d.Enum, &bag)
		case d.Model != nil:
			checkModel(d.Model, symbols, &bag)
		}
	}

	return Result{Symbols: symbols, Diagnostics: bag.Diagnostics()}
}

// checkSchemaLevel implements spec §4.3 phase 1: non-empty namespace and
// pairwise-unique declaration names, reported at the later declaration.
func checkSchemaLevel(schema *syntax.Schema, bag *diag.Bag) {
	if schema.Namespace == "" {
		bag.Add(schema.NamespacePos, "Namespace name must not be empty")
	}

	seen := make(map[string]diag.Pos)
	for _, d := range schema.Declarations {
		name := d.Name()
		if _, dup := seen[name]; dup {
			bag.Add(d.Pos(), "Duplicate declaration name %q", name)
			continue
		}
		seen[name] = d.Pos()
	}
}

func checkEnum(e *syntax.EnumDecl, bag *diag.Bag) {
	if len(e.Values) == 0 {
		bag.Add(e.Pos, "Enum %q must declare at least one value", e.Name)
		return
	}

	namesSeen := make(map[string]bool)
	valuesSeen := make(map[int64]bool)
	for _, v := range e.Values {
		if namesSeen[v.Name] {
			bag.Add(v.NamePos, "Duplicate enum value name %q in enum %q", v.Name, e.Name)
		} else {
			namesSeen[v.Name] = true
		}

		if valuesSeen[v.Value] {
			bag.Add(v.ValuePos, "Duplicate enum value number %d in enum %q", v.Value, e.Name)
		} else {
			valuesSeen[v.Value] = true
		}

		if v.Value < 0 {
			bag.Add(v.ValuePos, "Enum value %q must not be negative", v.Name)
		}
	}
}

func checkModel(m *syntax.ModelDecl, symbols *SymbolTable, bag *diag.Bag) {
	if len(m.Fields) == 0 {
		bag.Add(m.Pos, "Model %q must declare at least one field", m.Name)
		return
	}

	numbersSeen := make(map[int64]bool)
	for _, f := range m.Fields {
		if numbersSeen[f.Number] {
			bag.Add(f.NumberPos, "Duplicate field number %d on field %q", f.Number, f.Name)
		} else {
			numbersSeen[f.Number] = true
		}

		checkFieldNumber(f, bag)
		checkFieldModifiers(f, bag)
		checkFieldType(f, symbols, bag)
	}
}

func checkFieldNumber(f syntax.Field, bag *diag.Bag) {
	if f.Number < minFieldNumber || f.Number > maxFieldNumber {
		bag.Add(f.NumberPos, "Field number %d on field %q is out of the valid range %d..%d",
			f.Number, f.Name, minFieldNumber, maxFieldNumber)
		return
	}
	if f.Number >= reservedLow && f.Number <= reservedHigh {
		bag.Add(f.NumberPos, "Field number %d on field %q falls in the reserved range %d..%d",
			f.Number, f.Name, reservedLow, reservedHigh)
	}
}

// checkFieldModifiers enforces the §3 modifier rules. Each violated rule
// emits its own diagnostic so users see the full picture in one pass.
func checkFieldModifiers(f syntax.Field, bag *diag.Bag) {
	mods := f.Modifiers

	if mods.Has(syntax.ModOptional) && mods.Has(syntax.ModRepeated) {
		bag.Add(f.Pos, "Field %q: 'optional' and 'repeated' are mutually exclusive", f.Name)
	}
	if mods.Has(syntax.ModPacked) && !mods.Has(syntax.ModRepeated) {
		bag.Add(f.Pos, "Field %q: 'packed' requires 'repeated'", f.Name)
	}
	if mods.Has(syntax.ModBitmap) && !mods.Has(syntax.ModRepeated) {
		bag.Add(f.Pos, "Field %q: 'bitmap' requires 'repeated'", f.Name)
	}
	if mods.Has(syntax.ModPacked) && mods.Has(syntax.ModBitmap) {
		bag.Add(f.Pos, "Field %q: 'packed' and 'bitmap' cannot be combined", f.Name)
	}
}

// checkFieldType resolves user-type references and enforces the
// type-specific modifier rules from spec §3/§4.3 (packed requires a
// primitive type, interned requires string, bitmap requires bool).
func checkFieldType(f syntax.Field, symbols *SymbolTable, bag *diag.Bag) {
	if !f.Type.IsPrimitive {
		name := f.Type.UserRef
		if _, ok := symbols.Enums[name]; !ok {
			if _, ok := symbols.Models[name]; !ok {
				bag.Add(f.Type.Pos, "Field %q refers to unknown type %q", f.Name, name)
			}
		}
	}

	mods := f.Modifiers
	if mods.Has(syntax.ModPacked) && !f.Type.IsPrimitive {
		bag.Add(f.Type.Pos, "Field %q: 'packed' requires a primitive type", f.Name)
	}
	if mods.Has(syntax.ModInterned) && !(f.Type.IsPrimitive && f.Type.Primitive == syntax.String) {
		bag.Add(f.Type.Pos, "Field %q: 'interned' requires type 'string'", f.Name)
	}
	if mods.Has(syntax.ModBitmap) && !(f.Type.IsPrimitive && f.Type.Primitive == syntax.Bool) {
		bag.Add(f.Type.Pos, "Field %q: 'bitmap' requires type 'bool'", f.Name)
	}
}
