// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ident

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aibor/elfident/internal/decompress"
)

// ReadFile decodes the identification of the file at the given path.
//
// Files with a compression suffix known to [decompress.TypeFor] are
// decompressed first, so the identification of the contained file is
// returned. See [DecodeCompressed] for the error handling.
func ReadFile(path string) (Ident, error) {
	file, err := os.Open(path)
	if err != nil {
		return Ident{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	return DecodeCompressed(file, decompress.TypeFor(path))
}

// DecodeCompressed decompresses r according to typ and decodes the
// identification of the decompressed stream.
//
// Input that ends before [Size] decompressed bytes are available is always
// a [*DecodeError] of kind [ErrRead], also if it already ends within the
// compression header. Other decompressor setup errors are wrapped with
// context and are not a [*DecodeError].
func DecodeCompressed(r io.Reader, typ decompress.Type) (Ident, error) {
	reader, err := decompress.NewReader(r, typ)
	if err != nil {
		// gzip and xz read their header on setup.
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Ident{}, newReadError(err)
		}

		return Ident{}, fmt.Errorf("decompress: %w", err)
	}
	defer reader.Close()

	return Decode(reader)
}
