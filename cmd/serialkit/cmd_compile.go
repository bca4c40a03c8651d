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

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/khasanyanovk/serial-kit/diag"
	"github.com/khasanyanovk/serial-kit/emit"
	"github.com/khasanyanovk/serial-kit/syntax"
	"github.com/khasanyanovk/serial-kit/validate"
)

type cmdCompile struct {
	outDir  string
	declExt string
	bodyExt string
	base    string
}

func (*cmdCompile) help() *commandHelp {
	return &commandHelp{
		usage:   "compile SCHEMA_FILE",
		summary: "compile a schema file into a declaration/body artifact pair",
	}
}

func (cmd *cmdCompile) flags(flags *pflag.FlagSet) {
	flags.StringVarP(&cmd.outDir, "out-dir", "o", "", "output directory (created if missing)")
	flags.StringVar(&cmd.declExt, "decl-ext", "", "declaration artifact extension (default .h)")
	flags.StringVar(&cmd.bodyExt, "body-ext", "", "body artifact extension (default .cc)")
	flags.StringVar(&cmd.base, "base", "", "base file name for both artifacts (default: schema namespace)")
}

func (cmd *cmdCompile) run(ctx context.Context, argv []string) int {
	runID := uuid.New()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("run_id", runID.String()).Logger()

	if len(argv) < 1 {
		fmt.Fprintln(os.Stderr, "usage: serialkit compile SCHEMA_FILE")
		return 1
	}
	srcPath := argv[0]

	cfg, err := loadConfig(filepath.Dir(srcPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cmd.applyConfig(cfg)

	src, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger.Info().Str("path", srcPath).Msg("schema loaded")

	schema, err := syntax.Parse(src)
	if err != nil {
		printDiagnostic(err)
		return 1
	}

	result := validate.Validate(schema)
	if !result.OK() {
		for _, d := range result.Diagnostics {
			printDiagnostic(d)
		}
		logger.Error().Int("count", len(result.Diagnostics)).Msg("validation failed")
		return 1
	}

	opts := emit.Options{
		BaseName: cmd.baseName(schema),
		DeclExt:  cmd.declExt,
		BodyExt:  cmd.bodyExt,
	}
	artifacts := emit.Emit(schema, result, opts)

	if cmd.outDir != "" {
		if err := os.MkdirAll(cmd.outDir, 0o777); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	if err := cmd.writeArtifact(artifacts.DeclFileName, artifacts.DeclSource); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := cmd.writeArtifact(artifacts.BodyFileName, artifacts.BodySource); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger.Info().
		Str("decl", artifacts.DeclFileName).
		Str("body", artifacts.BodyFileName).
		Msg("artifacts written")
	fmt.Printf("wrote %s, %s\n", artifacts.DeclFileName, artifacts.BodyFileName)
	return 0
}

func (cmd *cmdCompile) applyConfig(cfg driverConfig) {
	if cmd.outDir == "" {
		cmd.outDir = cfg.Output.Dir
	}
	if cmd.declExt == "" {
		cmd.declExt = cfg.Output.DeclExt
	}
	if cmd.bodyExt == "" {
		cmd.bodyExt = cfg.Output.BodyExt
	}
}

// baseName resolves the shared file stem for both artifacts: an explicit
// --base flag wins, otherwise the schema's full (possibly dotted)
// namespace name, unsplit.
func (cmd *cmdCompile) baseName(schema *syntax.Schema) string {
	if cmd.base != "" {
		return cmd.base
	}
	return schema.Namespace
}

func (cmd *cmdCompile) writeArtifact(name, contents string) error {
	path := name
	if cmd.outDir != "" {
		path = filepath.Join(cmd.outDir, name)
	}
	return os.WriteFile(path, []byte(contents), 0o666)
}

// printDiagnostic renders a diagnostic as the machine-parseable
// "[line:column] message" line from spec §7, colorizing the severity
// prefix without altering the text a tool would parse.
func printDiagnostic(err error) {
	if d, ok := err.(*diag.Diagnostic); ok {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("error:"), d.Short())
		return
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("error:"), err)
}
