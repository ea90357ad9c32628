// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package decompress selects a decompressing reader by file name suffix.
//
// Kernel images and modules are commonly shipped compressed, so the ELF
// identification must be read from the decompressed stream.
package decompress

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Type is a compression type identified by its file name suffix.
type Type string

// Supported compression types.
const (
	Plain Type = ""
	GZIP  Type = ".gz"
	XZ    Type = ".xz"
	ZSTD  Type = ".zst"
)

// ErrUnsupported is returned for a [Type] without a reader.
var ErrUnsupported = errors.New("compression type not supported")

func (t Type) String() string {
	if t == Plain {
		return "plain"
	}

	return strings.TrimPrefix(string(t), ".")
}

// TypeFor returns the [Type] for the given file name. Names without a known
// suffix are [Plain].
func TypeFor(name string) Type {
	for _, typ := range []Type{GZIP, XZ, ZSTD} {
		if strings.HasSuffix(name, string(typ)) {
			return typ
		}
	}

	return Plain
}

// NewReader returns a reader that decompresses r according to typ.
//
// Closing the returned reader releases decoder resources. It does not close
// r.
func NewReader(r io.Reader, typ Type) (io.ReadCloser, error) {
	switch typ {
	case Plain:
		return io.NopCloser(r), nil
	case GZIP:
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}

		return gzipReader, nil
	case XZ:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}

		return io.NopCloser(xzReader), nil
	case ZSTD:
		zstdReader, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}

		return zstdReader.IOReadCloser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, string(typ))
	}
}
