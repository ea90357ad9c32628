// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ident_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/aibor/elfident/internal/ident"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(class, encoding, version byte, padding ...byte) []byte {
	hdr := []byte{0x7f, 'E', 'L', 'F', class, encoding, version}
	hdr = append(hdr, padding...)

	for len(hdr) < ident.Size {
		hdr = append(hdr, 0)
	}

	return hdr
}

func requireDecodeError(kind error, value byte) require.ErrorAssertionFunc {
	return func(t require.TestingT, err error, _ ...any) {
		require.ErrorIs(t, err, kind)

		var decodeErr *ident.DecodeError

		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, value, decodeErr.Value)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     []byte
		expected  ident.Ident
		assertErr require.ErrorAssertionFunc
	}{
		{
			name:  "64 bit little endian",
			input: header(2, 1, 1),
			expected: ident.Ident{
				Class:    ident.Class64,
				Encoding: ident.LSB,
				Version:  1,
			},
			assertErr: require.NoError,
		},
		{
			name:  "32 bit big endian",
			input: header(1, 2, 1),
			expected: ident.Ident{
				Class:    ident.Class32,
				Encoding: ident.MSB,
				Version:  1,
			},
			assertErr: require.NoError,
		},
		{
			name:  "padding ignored",
			input: header(1, 1, 1, 3, 1, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff),
			expected: ident.Ident{
				Class:    ident.Class32,
				Encoding: ident.LSB,
				Version:  1,
			},
			assertErr: require.NoError,
		},
		{
			name:      "bad magic last byte",
			input:     append([]byte{0x7f, 'E', 'L', 'G'}, header(2, 1, 1)[4:]...),
			assertErr: requireDecodeError(ident.ErrBadMagic, 0),
		},
		{
			name:      "invalid class",
			input:     header(3, 1, 1),
			assertErr: requireDecodeError(ident.ErrInvalidClass, 3),
		},
		{
			name:      "invalid class none",
			input:     header(0, 1, 1),
			assertErr: requireDecodeError(ident.ErrInvalidClass, 0),
		},
		{
			name:      "invalid class before invalid encoding",
			input:     header(7, 9, 9),
			assertErr: requireDecodeError(ident.ErrInvalidClass, 7),
		},
		{
			name:      "invalid encoding",
			input:     header(1, 3, 1),
			assertErr: requireDecodeError(ident.ErrInvalidEncoding, 3),
		},
		{
			name:      "invalid encoding before invalid version",
			input:     header(2, 0, 0),
			assertErr: requireDecodeError(ident.ErrInvalidEncoding, 0),
		},
		{
			name:      "invalid version",
			input:     header(1, 1, 2),
			assertErr: requireDecodeError(ident.ErrInvalidVersion, 2),
		},
		{
			name:  "short input",
			input: header(2, 1, 1)[:10],
			assertErr: func(t require.TestingT, err error, _ ...any) {
				require.ErrorIs(t, err, ident.ErrRead)
				require.ErrorIs(t, err, io.ErrUnexpectedEOF)
			},
		},
		{
			name:  "empty input",
			input: []byte{},
			assertErr: func(t require.TestingT, err error, _ ...any) {
				require.ErrorIs(t, err, ident.ErrRead)
				require.ErrorIs(t, err, io.EOF)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := ident.Decode(bytes.NewReader(tt.input))
			tt.assertErr(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestDecode_BadMagicEveryPosition(t *testing.T) {
	for pos := range len(ident.Magic) {
		input := header(2, 1, 1)
		input[pos] ^= 0xff

		_, err := ident.Decode(bytes.NewReader(input))
		require.ErrorIs(t, err, ident.ErrBadMagic, "position %d", pos)
		assert.NotErrorIs(t, err, ident.ErrRead)
	}
}

func TestDecode_ShortInputNeverFieldError(t *testing.T) {
	full := header(9, 9, 9)

	for length := range ident.Size {
		_, err := ident.Decode(bytes.NewReader(full[:length]))
		require.ErrorIs(t, err, ident.ErrRead, "length %d", length)
		assert.NotErrorIs(t, err, ident.ErrBadMagic)
		assert.NotErrorIs(t, err, ident.ErrInvalidClass)
	}
}

func TestDecode_AllValidCombinations(t *testing.T) {
	for _, class := range []ident.Class{ident.Class32, ident.Class64} {
		for _, encoding := range []ident.Encoding{ident.LSB, ident.MSB} {
			input := header(byte(class), byte(encoding), 1, 1, 2, 3, 4, 5, 6, 7, 8, 9)

			actual, err := ident.Decode(bytes.NewReader(input))
			require.NoError(t, err)

			expected := ident.Ident{
				Class:    class,
				Encoding: encoding,
				Version:  ident.VersionCurrent,
			}
			assert.Equal(t, expected, actual)
		}
	}
}

func TestDecode_ReadsOnlyPrefix(t *testing.T) {
	input := append(header(2, 1, 1), []byte("rest of the file")...)
	reader := bytes.NewReader(input)

	_, err := ident.Decode(reader)
	require.NoError(t, err)

	assert.Equal(t, len(input)-ident.Size, reader.Len())
}

func TestDecode_ReadError(t *testing.T) {
	_, err := ident.Decode(iotest.ErrReader(assert.AnError))
	require.ErrorIs(t, err, ident.ErrRead)
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t,
		"read ELF identification: assert.AnError general error for testing",
		err.Error(),
	)
}

func TestDecode_OneByteReader(t *testing.T) {
	input := header(1, 2, 1)

	actual, err := ident.Decode(iotest.OneByteReader(bytes.NewReader(input)))
	require.NoError(t, err)
	assert.Equal(t, ident.MSB, actual.Encoding)
}

func TestParse(t *testing.T) {
	actual, err := ident.Parse(append(header(2, 2, 1), 0xaa, 0xbb))
	require.NoError(t, err)
	assert.Equal(t, ident.Ident{
		Class:    ident.Class64,
		Encoding: ident.MSB,
		Version:  1,
	}, actual)

	_, err = ident.Parse(header(2, 2, 1)[:15])
	require.ErrorIs(t, err, ident.ErrRead)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestIdent_String(t *testing.T) {
	id := ident.Ident{
		Class:    ident.Class64,
		Encoding: ident.LSB,
		Version:  1,
	}

	assert.Equal(t,
		"{Class: ELFCLASS64, Encoding: ELFDATA2LSB, Version: 1}",
		id.String(),
	)
}

func TestClass_AddressSize(t *testing.T) {
	assert.Equal(t, 4, ident.Class32.AddressSize())
	assert.Equal(t, 8, ident.Class64.AddressSize())
}

func TestEncoding_ByteOrder(t *testing.T) {
	assert.Equal(t, binary.LittleEndian, ident.LSB.ByteOrder())
	assert.Equal(t, binary.BigEndian, ident.MSB.ByteOrder())
}

func TestDecodeError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ident.DecodeError
		expected string
	}{
		{
			name:     "bad magic",
			err:      &ident.DecodeError{Kind: ident.ErrBadMagic},
			expected: "magic number not found",
		},
		{
			name:     "class",
			err:      &ident.DecodeError{Kind: ident.ErrInvalidClass, Value: 3},
			expected: "invalid file class: 3",
		},
		{
			name:     "encoding",
			err:      &ident.DecodeError{Kind: ident.ErrInvalidEncoding, Value: 0},
			expected: "invalid data encoding: 0",
		},
		{
			name:     "version",
			err:      &ident.DecodeError{Kind: ident.ErrInvalidVersion, Value: 255},
			expected: "invalid header version: 255",
		},
		{
			name:     "read",
			err:      &ident.DecodeError{Kind: ident.ErrRead, Cause: io.EOF},
			expected: "read ELF identification: EOF",
		},
		{
			name:     "read without cause",
			err:      &ident.DecodeError{Kind: ident.ErrRead},
			expected: "read ELF identification",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDecodeErrorIs(t *testing.T) {
	//nolint:testifylint
	assert.ErrorIs(t, error(&ident.DecodeError{}), &ident.DecodeError{})
	assert.NotErrorIs(t, assert.AnError, &ident.DecodeError{})
	assert.NotErrorIs(t,
		&ident.DecodeError{Kind: ident.ErrInvalidClass},
		ident.ErrInvalidVersion,
	)
	assert.True(t, errors.Is(
		&ident.DecodeError{Kind: ident.ErrRead, Cause: io.EOF},
		io.EOF,
	))
}
