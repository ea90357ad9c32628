// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package ident

import (
	"errors"
	"fmt"
)

var (
	// ErrRead is returned if the identification could not be read in full.
	ErrRead = errors.New("read ELF identification")

	// ErrBadMagic is returned if the file does not start with the ELF magic
	// number.
	ErrBadMagic = errors.New("magic number not found")

	// ErrInvalidClass is returned if the class byte is neither 32 nor 64 bit.
	ErrInvalidClass = errors.New("invalid file class")

	// ErrInvalidEncoding is returned if the data encoding byte is neither
	// little nor big endian.
	ErrInvalidEncoding = errors.New("invalid data encoding")

	// ErrInvalidVersion is returned if the version byte is not
	// [VersionCurrent].
	ErrInvalidVersion = errors.New("invalid header version")
)

// DecodeError is returned for every failed decode.
//
// Kind is one of the package's sentinel errors. Value holds the offending
// raw byte for [ErrInvalidClass], [ErrInvalidEncoding] and
// [ErrInvalidVersion]. Cause holds the underlying error for [ErrRead].
type DecodeError struct {
	Kind  error
	Value byte
	Cause error
}

func newReadError(cause error) *DecodeError {
	return &DecodeError{Kind: ErrRead, Cause: cause}
}

func newFieldError(kind error, value byte) *DecodeError {
	return &DecodeError{Kind: kind, Value: value}
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case ErrRead:
		if e.Cause == nil {
			return e.Kind.Error()
		}

		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	case ErrInvalidClass, ErrInvalidEncoding, ErrInvalidVersion:
		return fmt.Sprintf("%v: %d", e.Kind, e.Value)
	case nil:
		return "unknown decode error"
	default:
		return e.Kind.Error()
	}
}

// Is matches any other [*DecodeError], so errors.Is can be used to tell
// decode errors apart from other errors without knowing the kind.
func (e *DecodeError) Is(other error) bool {
	_, ok := other.(*DecodeError)
	return ok
}

// Unwrap returns the kind and, if present, the cause.
func (e *DecodeError) Unwrap() []error {
	errs := make([]error, 0, 2)

	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}

	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}
