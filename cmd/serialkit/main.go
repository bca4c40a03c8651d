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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// command is the shape every serialkit verb implements: help text for its
// cobra registration, its own flag set, and a run body that returns a
// process exit code directly, since a failed compile reports its own
// diagnostics to stderr rather than needing cobra's error formatting.
type command interface {
	help() *commandHelp
	flags(flags *pflag.FlagSet)
	run(ctx context.Context, argv []string) int
}

type commandHelp struct {
	usage   string
	summary string
}

// exitCode carries a command's exit status through cobra's error-typed
// RunE return path. Its Error text is empty because the command has
// already printed whatever it wants the user to see.
type exitCode int

func (exitCode) Error() string { return "" }

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "serialkit [options] COMMAND",
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.RunE = func(*cobra.Command, []string) error {
		return exitCode(1)
	}
	return root
}

// register wires one command's flags and run body into root as a cobra
// subcommand, binding ctx into its closure so run only ever sees the
// argument list that follows the subcommand name.
func register(root *cobra.Command, ctx context.Context, cmd command) {
	h := cmd.help()
	sub := &cobra.Command{
		Use:   h.usage,
		Short: h.summary,
		RunE: func(_ *cobra.Command, argv []string) error {
			return exitCode(cmd.run(ctx, argv))
		},
	}
	cmd.flags(sub.Flags())
	root.AddCommand(sub)
}

func main() {
	ctx := context.Background()

	root := newRootCommand()
	for _, cmd := range []command{
		&cmdCompile{},
	} {
		register(root, ctx, cmd)
	}

	err := root.Execute()
	if err == nil {
		return
	}

	var code exitCode
	if errors.As(err, &code) {
		os.Exit(int(code))
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
