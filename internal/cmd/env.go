// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const envArgsVar = "ELFIDENT_ARGS"

// EnvArgs returns elfident arguments from the environment.
func EnvArgs() []string {
	return strings.Fields(os.Getenv(envArgsVar))
}

// LocalConfigArgs returns elfident arguments from a local config file.
//
// The file's format is one argument per line. Environment variables may be used
// and are expanded with [os.ExpandEnv]. A missing file is not an error.
func LocalConfigArgs(fsys fs.FS, file string) ([]string, error) {
	conf, err := fs.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read file: %w", err)
	}

	args := []string{}

	expandedConf := os.ExpandEnv(string(conf))
	for line := range strings.SplitSeq(expandedConf, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			args = append(args, line)
		}
	}

	return args, nil
}

// MergedArgs returns the arguments from all sources without the program name.
//
// The local config file comes first, followed by the environment and then
// the given command line args. Since later flags overwrite earlier ones, the
// command line takes precedence.
func MergedArgs(args []string, fsys fs.FS, file string) ([]string, error) {
	configArgs, err := LocalConfigArgs(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("local config %s: %w", file, err)
	}

	merged := append(configArgs, EnvArgs()...)

	if len(args) > 1 {
		merged = append(merged, args[1:]...)
	}

	return merged, nil
}
