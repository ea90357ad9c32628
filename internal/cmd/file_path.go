// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"os"
)

// ValidateFilePath checks that name exists and is not a directory.
//
// Anything else that can be read is fine, like named pipes, character
// devices or /dev/stdin.
func ValidateFilePath(name string) error {
	stat, err := os.Stat(name)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if stat.IsDir() {
		return ErrIsDirectory
	}

	return nil
}
