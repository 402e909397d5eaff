// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ihex

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Decoder reads Intel HEX records from a line oriented text stream and
// tracks the extended linear address across them.
type Decoder struct {
	Strict bool   // verify record checksums
	Layout Layout // unit of the record address field

	sc   *bufio.Scanner
	addr AddressTracker
	line int
	eof  bool
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{sc: bufio.NewScanner(r)}
}

// Line returns the number of the last line read.
func (d *Decoder) Line() int { return d.line }

// Next returns the next record. ExtendedLinearAddress records update the
// decoder state before they are returned. After the EndOfFile record Next
// returns io.EOF without reading any further input. If the input ends
// before the EndOfFile record, an error of kind ErrTruncatedInput is
// returned. Blank lines are skipped.
func (d *Decoder) Next() (*Record, error) {
	if d.eof {
		return nil, io.EOF
	}
	for d.sc.Scan() {
		d.line++
		line := strings.TrimSpace(d.sc.Text())
		if line == "" {
			continue
		}
		r, err := parseRecord(d.line, line, d.Strict)
		if err != nil {
			return nil, err
		}
		switch r.Type {
		case ExtendedLinearAddress:
			d.addr.OnExtendedAddress(r.HighWord)
		case EndOfFile:
			d.eof = true
		}
		return r, nil
	}
	if err := d.sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, newError(d.line+1, ErrLengthMismatch, "line too long")
		}
		return nil, &Error{Line: d.line, Kind: ErrIO, Err: err}
	}
	return nil, newError(d.line, ErrTruncatedInput, "no end of file record")
}

// Address returns the linear byte address of the first byte of the Data
// record r according to the current extended linear address. In the word
// layout the result is truncated to 32 bits, Walk rejects such records.
func (d *Decoder) Address(r *Record) uint32 {
	return uint32(d.address(r))
}

func (d *Decoder) address(r *Record) uint64 {
	return uint64(d.addr.Resolve(r.Offset)) * uint64(d.Layout.Unit())
}

// Walk decodes all records up to the EndOfFile record and calls fn for the
// data of every Data record. In the word layout a record that does not fit
// in the 32-bit address space fails with ErrAddressRange. In the byte
// layout addresses wrap modulo 4 GiB.
func (d *Decoder) Walk(fn func(addr uint32, data []byte)) error {
	for {
		r, err := d.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if r.Type != Data {
			continue
		}
		if d.Layout == WordLayout {
			if end := d.address(r) + uint64(len(r.Bytes)); end > 1<<32 {
				return newError(
					d.line, ErrAddressRange,
					"word %#x beyond the 32-bit address space",
					d.addr.Resolve(r.Offset),
				)
			}
		}
		fn(d.Address(r), r.Bytes)
	}
}
