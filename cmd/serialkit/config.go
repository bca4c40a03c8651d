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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const configFileName = "serialkit.toml"

// driverConfig is the optional project-level configuration read from
// serialkit.toml, per SPEC_FULL §4.5. CLI flags always win over values
// loaded here; cmdCompile.applyConfig only fills in what the invocation
// left unset.
type driverConfig struct {
	Output outputConfig `toml:"output"`
}

type outputConfig struct {
	Dir     string `toml:"dir"`
	DeclExt string `toml:"decl_ext"`
	BodyExt string `toml:"body_ext"`
}

// findConfig walks upward from startDir looking for serialkit.toml, the
// way loadProjectManifest walks for surge.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig loads serialkit.toml starting from startDir. A missing file
// is not an error: the driver falls back to its own defaults.
func loadConfig(startDir string) (driverConfig, error) {
	var cfg driverConfig
	path, ok, err := findConfig(startDir)
	if err != nil || !ok {
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return cfg, nil
}
