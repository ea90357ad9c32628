// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"flag"
	"fmt"
)

var (
	// ErrHelp is returned if help or version information was requested.
	ErrHelp = flag.ErrHelp

	// ErrReadBuildInfo is returned if the build information can not be read.
	ErrReadBuildInfo = errors.New("failed to read build info")

	// ErrIsDirectory is returned if an input is a directory.
	ErrIsDirectory = errors.New("is a directory")

	// ErrValueOutOfRange is returned if a numeric flag value is outside of
	// its allowed range.
	ErrValueOutOfRange = errors.New("value is outside of range")

	// ErrInputFailed is returned if at least one input could not be decoded.
	// The individual errors are printed as they are collected.
	ErrInputFailed = errors.New("inputs failed")
)

// ParseArgsError wraps errors that occur during argument parsing.
type ParseArgsError struct {
	err error
	msg string
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}
