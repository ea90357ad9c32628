// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package ident decodes the identification prefix of ELF files.
//
// The prefix consists of the first [Size] bytes of the file. It declares the
// address width ([Class]), the byte order ([Encoding]) and the format version
// the remainder of the file must be interpreted with. Nothing beyond the
// prefix is read or interpreted.
//
// Fields are validated in the order they appear in the file: magic number,
// class, encoding, version. The first invalid field ends decoding with a
// [*DecodeError]. A partially validated [Ident] is never returned.
package ident
