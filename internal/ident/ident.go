// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ident

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"
)

// Size is the length of the identification prefix (EI_NIDENT).
const Size = elf.EI_NIDENT

// VersionCurrent is the only defined ELF format version.
const VersionCurrent uint8 = uint8(elf.EV_CURRENT)

// Magic is the byte sequence every ELF file starts with.
var Magic = [4]byte{0x7f, 'E', 'L', 'F'}

// Class is the address width of the file.
type Class uint8

// Supported classes.
const (
	Class32 Class = Class(elf.ELFCLASS32)
	Class64 Class = Class(elf.ELFCLASS64)
)

func (c Class) String() string {
	return elf.Class(c).String()
}

func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// AddressSize returns the size of addresses and offsets in bytes.
func (c Class) AddressSize() int {
	if c == Class64 {
		return 8 //nolint:mnd
	}

	return 4 //nolint:mnd
}

// Encoding is the byte order of multi-byte values in the file.
type Encoding uint8

// Supported encodings.
const (
	LSB Encoding = Encoding(elf.ELFDATA2LSB)
	MSB Encoding = Encoding(elf.ELFDATA2MSB)
)

func (e Encoding) String() string {
	return elf.Data(e).String()
}

func (e Encoding) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// ByteOrder returns the [binary.ByteOrder] matching the encoding.
func (e Encoding) ByteOrder() binary.ByteOrder {
	if e == MSB {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// Ident is a validated ELF identification.
type Ident struct {
	Class    Class    `json:"class"`
	Encoding Encoding `json:"encoding"`
	Version  uint8    `json:"version"`
}

func (i Ident) String() string {
	return fmt.Sprintf(
		"{Class: %s, Encoding: %s, Version: %d}",
		i.Class,
		i.Encoding,
		i.Version,
	)
}

// Decode reads exactly [Size] bytes from r and validates them.
//
// If r does not provide [Size] bytes, a [*DecodeError] of kind [ErrRead]
// wrapping the read error is returned. Bytes following the prefix are not
// read.
func Decode(r io.Reader) (Ident, error) {
	var buf [Size]byte

	_, err := io.ReadFull(r, buf[:])
	if err != nil {
		return Ident{}, newReadError(err)
	}

	return parse(buf)
}

// Parse decodes the identification from the start of b.
//
// Bytes beyond [Size] are ignored. If b is shorter than [Size], a
// [*DecodeError] of kind [ErrRead] wrapping [io.ErrUnexpectedEOF] is
// returned.
func Parse(b []byte) (Ident, error) {
	if len(b) < Size {
		return Ident{}, newReadError(io.ErrUnexpectedEOF)
	}

	return parse([Size]byte(b[:Size]))
}

func parse(buf [Size]byte) (Ident, error) {
	if !bytes.Equal(buf[:len(Magic)], Magic[:]) {
		return Ident{}, &DecodeError{Kind: ErrBadMagic}
	}

	class, err := parseClass(buf[elf.EI_CLASS])
	if err != nil {
		return Ident{}, err
	}

	encoding, err := parseEncoding(buf[elf.EI_DATA])
	if err != nil {
		return Ident{}, err
	}

	version, err := parseVersion(buf[elf.EI_VERSION])
	if err != nil {
		return Ident{}, err
	}

	return Ident{
		Class:    class,
		Encoding: encoding,
		Version:  version,
	}, nil
}

func parseClass(value byte) (Class, error) {
	switch class := Class(value); class {
	case Class32, Class64:
		return class, nil
	default:
		return 0, newFieldError(ErrInvalidClass, value)
	}
}

func parseEncoding(value byte) (Encoding, error) {
	switch encoding := Encoding(value); encoding {
	case LSB, MSB:
		return encoding, nil
	default:
		return 0, newFieldError(ErrInvalidEncoding, value)
	}
}

func parseVersion(value byte) (uint8, error) {
	if value != VersionCurrent {
		return 0, newFieldError(ErrInvalidVersion, value)
	}

	return value, nil
}
