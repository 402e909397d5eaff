// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ihex

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to test the kind of an *Error.
var (
	ErrSyntax                = errors.New("syntax error")
	ErrMalformedHex          = errors.New("malformed hex")
	ErrLengthMismatch        = errors.New("length mismatch")
	ErrUnsupportedRecordType = errors.New("unsupported record type")
	ErrChecksumMismatch      = errors.New("checksum mismatch")
	ErrTruncatedInput        = errors.New("truncated input")
	ErrAddressRange          = errors.New("address out of range")
	ErrIO                    = errors.New("i/o failure")
)

// Error describes a failure to decode Intel HEX input.
type Error struct {
	Line int    // 1-based line number, 0 if not known
	Kind error  // one of the Err* values
	Text string // details
	Err  error  // underlying error, if any
}

func (e *Error) Error() string {
	s := e.Kind.Error()
	if e.Text != "" {
		s += ": " + e.Text
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	if e.Line > 0 {
		s = fmt.Sprintf("line %d: %s", e.Line, s)
	}
	return s
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(line int, kind error, format string, args ...any) *Error {
	return &Error{Line: line, Kind: kind, Text: fmt.Sprintf(format, args...)}
}
