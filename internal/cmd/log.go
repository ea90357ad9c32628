// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"
)

// logLevel is the level of the handler installed by [setupLogging]. It can be
// raised once the flags are parsed.
var logLevel = new(slog.LevelVar)

// setupLogging installs the default logger writing to writer. Only warnings
// and errors are logged until [enableDebugLogging] is called.
func setupLogging(writer io.Writer) {
	logLevel.Set(slog.LevelWarn)

	slog.SetDefault(slog.New(slog.NewTextHandler(
		writer,
		&slog.HandlerOptions{
			Level: logLevel,
		},
	)))
}

func enableDebugLogging() {
	logLevel.Set(slog.LevelDebug)
}
