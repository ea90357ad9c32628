// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aibor/elfident/internal/archive"
	"github.com/aibor/elfident/internal/decompress"
	"github.com/aibor/elfident/internal/ident"
	"golang.org/x/sync/errgroup"
)

const localConfigFile = ".elfident-args"

const (
	exitCodeFailure = 1
	exitCodeUsage   = 2
)

// IO provides output details for the command.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

// parseError adds the context of the original diagnostics to decode errors.
// Errors opening the file are already wrapped as such.
func parseError(err error) error {
	if errors.Is(err, &ident.DecodeError{}) {
		return fmt.Errorf("parse ELF identification: %w", err)
	}

	return err
}

func decodeFile(path string) result {
	res := result{path: path}

	err := ValidateFilePath(path)
	if err != nil {
		res.err = fmt.Errorf("open file: %w", err)
		return res
	}

	slog.Debug("Decoding file",
		slog.String("path", path),
		slog.String("compression", decompress.TypeFor(path).String()))

	res.ident, err = ident.ReadFile(path)
	if err != nil {
		res.err = parseError(err)
	}

	return res
}

func scanArchive(path string) []result {
	err := ValidateFilePath(path)
	if err != nil {
		return []result{{path: path, err: fmt.Errorf("open file: %w", err)}}
	}

	file, err := os.Open(path)
	if err != nil {
		return []result{{path: path, err: fmt.Errorf("open file: %w", err)}}
	}
	defer file.Close()

	typ := decompress.TypeFor(path)

	slog.Debug("Scanning archive",
		slog.String("path", path),
		slog.String("compression", typ.String()))

	reader, err := decompress.NewReader(file, typ)
	if err != nil {
		return []result{{path: path, err: fmt.Errorf("decompress: %w", err)}}
	}
	defer reader.Close()

	var results []result

	err = archive.Scan(reader, func(member archive.Member) error {
		if member.Skipped {
			slog.Debug("Skipping non ELF member",
				slog.String("archive", path),
				slog.String("member", member.Name),
				slog.String("compression", member.Compression.String()),
				slog.Int64("size", member.Size))

			return nil
		}

		res := result{
			path:  path + ":" + member.Name,
			ident: member.Ident,
		}
		if member.Err != nil {
			res.err = parseError(member.Err)
		}

		results = append(results, res)

		return nil
	})
	if err != nil {
		results = append(results, result{
			path: path,
			err:  fmt.Errorf("archive: %w", err),
		})
	}

	return results
}

// decodeAll decodes all inputs with at most jobs in parallel. The results are
// in the order of the given paths. Inputs not started yet when ctx is done
// are not decoded and the context's error is returned.
func decodeAll(
	ctx context.Context,
	paths []string,
	jobs int,
	archiveMode bool,
) ([]result, error) {
	collected := make([][]result, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range paths {
		group.Go(func() error {
			err := ctx.Err()
			if err != nil {
				return err //nolint:wrapcheck
			}

			if archiveMode {
				collected[idx] = scanArchive(path)
			} else {
				collected[idx] = []result{decodeFile(path)}
			}

			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	var results []result
	for _, res := range collected {
		results = append(results, res...)
	}

	return results, nil
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	results, err := decodeAll(ctx, flags.paths, int(flags.jobs), flags.archive)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	out := printer{
		stdout:   cfg.Stdout,
		stderr:   cfg.Stderr,
		json:     flags.json,
		withPath: flags.archive || len(flags.paths) > 1,
	}

	failed := 0

	for _, res := range results {
		if res.err != nil {
			failed++
		}

		err := out.print(res)
		if err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrInputFailed, failed, len(results))
	}

	return nil
}

func handleParseArgsError(err error, stderr io.Writer) int {
	// [ErrHelp] is returned when help or version is requested. So exit without
	// error in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit with an error.
	if !errors.Is(err, &ParseArgsError{}) {
		printError(stderr, err)
	}

	return exitCodeUsage
}

func handleRunError(err error, stderr io.Writer) int {
	// Errors of single inputs have already been printed.
	if errors.Is(err, ErrInputFailed) {
		slog.Debug(err.Error())
		return exitCodeFailure
	}

	printError(stderr, err)

	return exitCodeFailure
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr)

	args, err := MergedArgs(args, os.DirFS("."), localConfigFile)
	if err != nil {
		return handleParseArgsError(err, cfg.Stderr)
	}

	flags := newFlags(cfg.Stderr)

	err = flags.ParseArgs(args)
	if err != nil {
		return handleParseArgsError(err, cfg.Stderr)
	}

	if flags.debug {
		enableDebugLogging()
	}

	slog.Debug("Arguments merged", slog.Any("args", args))

	err = run(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err, cfg.Stderr)
	}

	return 0
}
