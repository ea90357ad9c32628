// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package archive decodes the ELF identification of the files in a cpio
// archive, like an initramfs.
package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/aibor/elfident/internal/decompress"
	"github.com/aibor/elfident/internal/ident"
	"github.com/cavaliergopher/cpio"
)

// Member is the result for a single regular file in the archive.
//
// Members with a compression suffix known to [decompress.TypeFor], like
// compressed kernel modules, are decompressed before decoding. Err is set if
// the file looks like an ELF file but its identification is invalid or the
// compressed data is corrupt. Skipped is set for files that are not ELF files
// at all. In both cases Ident is the zero value.
type Member struct {
	Name        string
	Size        int64
	Compression decompress.Type
	Ident       ident.Ident
	Err         error
	Skipped     bool
}

// Scan reads the cpio archive from r and calls fn for each regular file.
//
// Directories, links and device nodes are not passed to fn. Scanning stops at
// the first error returned by fn, which is returned as is.
func Scan(r io.Reader, fn func(Member) error) error {
	reader := cpio.NewReader(r)

	for {
		hdr, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("read header: %w", err)
		}

		if !hdr.Mode.IsRegular() {
			continue
		}

		err = fn(decodeMember(hdr, reader))
		if err != nil {
			return err
		}
	}
}

func decodeMember(hdr *cpio.Header, body io.Reader) Member {
	member := Member{
		Name:        hdr.Name,
		Size:        hdr.Size,
		Compression: decompress.TypeFor(hdr.Name),
	}

	// Too small to carry an identification, so it can not be an ELF file.
	if member.Compression == decompress.Plain && hdr.Size < ident.Size {
		member.Skipped = true
		return member
	}

	member.Ident, member.Err = ident.DecodeCompressed(body, member.Compression)

	switch {
	case errors.Is(member.Err, ident.ErrBadMagic):
		member.Skipped = true
	// Decompressed content shorter than an identification.
	case member.Compression != decompress.Plain &&
		errors.Is(member.Err, ident.ErrRead):
		member.Skipped = true
	}

	if member.Skipped {
		member.Err = nil
	}

	return member
}
