// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aibor/elfident/internal/ident"
)

// result is the outcome for a single decoded file. For archive members, path
// is the archive path and member name joined by ":".
type result struct {
	path  string
	ident ident.Ident
	err   error
}

type jsonRecord struct {
	Path string `json:"path"`
	ident.Ident
}

// printer writes results in the requested format. Successful results go to
// stdout, errors to stderr.
type printer struct {
	stdout   io.Writer
	stderr   io.Writer
	json     bool
	withPath bool
}

func (p *printer) print(res result) error {
	if res.err != nil {
		p.printError(res)
		return nil
	}

	if p.json {
		return p.printJSON(res)
	}

	prefix := ""
	if p.withPath {
		prefix = res.path + ": "
	}

	_, err := fmt.Fprintf(p.stdout, "%sELF identification: %s\n", prefix, res.ident)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func (p *printer) printJSON(res result) error {
	err := json.NewEncoder(p.stdout).Encode(jsonRecord{
		Path:  res.path,
		Ident: res.ident,
	})
	if err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	return nil
}

func (p *printer) printError(res result) {
	if p.withPath {
		printError(p.stderr, fmt.Errorf("%s: %w", res.path, res.err))
		return
	}

	printError(p.stderr, res.err)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "ERROR: %v\n", err)
}
