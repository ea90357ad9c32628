// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

const (
	name = "elfident"

	jobsMin = 1
	jobsMax = 64

	usageMessage = `Usage of 'elfident':
    elfident [flags...] file [files...]

Print the ELF identification (class, data encoding, version) of each file:
	elfident /bin/ls /lib/modules/$(uname -r)/kernel/fs/fuse/fuse.ko.xz

Files ending in .gz, .xz or .zst are decompressed first.

Scan all files in an initramfs archive:
	elfident -archive /boot/initramfs.cpio.gz

All elfident flags can also be provided via environment variable ELFIDENT_ARGS:
	ELFIDENT_ARGS="-json -debug" elfident /bin/ls

All elfident flags can also be provided via file ./.elfident-args, with one
argument per line.
`
)

type flags struct {
	flagSet *flag.FlagSet

	paths   []string
	jobs    uint64
	json    bool
	archive bool
	debug   bool
	version bool
}

func newFlags(output io.Writer) *flags {
	flags := &flags{
		jobs: min(uint64(runtime.NumCPU()), jobsMax),
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) ParseArgs(args []string) error {
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	positionalArgs := f.flagSet.Args()
	if len(positionalArgs) < 1 {
		return f.fail("no file given", nil)
	}

	for _, path := range positionalArgs {
		if path == "" {
			return f.fail("file path must not be empty", nil)
		}
	}

	f.paths = positionalArgs

	return nil
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.BoolVar(
		&f.json,
		"json",
		f.json,
		"print one JSON object per line instead of text",
	)

	flagSet.BoolVar(
		&f.archive,
		"archive",
		f.archive,
		"treat files as cpio archives and print all ELF files in them",
	)

	flagSet.Var(
		&LimitedUintValue{
			Value: &f.jobs,
			Lower: jobsMin,
			Upper: jobsMax,
		},
		"jobs",
		"number of files decoded in parallel",
	)

	flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
