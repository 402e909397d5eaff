// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ihex

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// Type is the Intel HEX record type.
type Type byte

const (
	Data                  Type = 0x00
	EndOfFile             Type = 0x01
	ExtendedLinearAddress Type = 0x04
)

func (t Type) String() string {
	switch t {
	case Data:
		return "Data"
	case EndOfFile:
		return "EndOfFile"
	case ExtendedLinearAddress:
		return "ExtendedLinearAddress"
	}
	return fmt.Sprintf("Type(%02X)", byte(t))
}

// MaxData is the maximum number of data bytes in a record.
const MaxData = 255

// Record is a decoded Intel HEX record. Offset and Bytes are meaningful for
// Data records, HighWord for ExtendedLinearAddress records. A Data record
// carries at most MaxData bytes.
type Record struct {
	Type     Type
	Offset   uint16
	Bytes    []byte
	HighWord uint16
	Checksum byte // checksum field as read or generated
}

// Checksum returns the two's complement of the sum of all bytes of the
// record (length, address, type and data fields).
func Checksum(fields []byte) byte {
	var sum byte
	for _, b := range fields {
		sum += b
	}
	return -sum
}

// WordChecksum returns the checksum of a 4-byte data record at the address
// with data field equal to the big-endian representation of data.
func WordChecksum(addr uint16, data uint32) byte {
	var f [8]byte
	f[0] = 4
	binary.BigEndian.PutUint16(f[1:3], addr)
	f[3] = byte(Data)
	binary.BigEndian.PutUint32(f[4:8], data)
	return Checksum(f[:])
}

// fields returns the binary representation of r without the checksum.
func (r *Record) fields() []byte {
	var b []byte
	switch r.Type {
	case Data:
		if len(r.Bytes) > MaxData {
			panic(fmt.Sprintf("ihex: %d data bytes in a record", len(r.Bytes)))
		}
		b = make([]byte, 4, 4+len(r.Bytes))
		b[0] = byte(len(r.Bytes))
		binary.BigEndian.PutUint16(b[1:3], r.Offset)
		b = append(b, r.Bytes...)
	case ExtendedLinearAddress:
		b = []byte{2, 0, 0, 0, byte(r.HighWord >> 8), byte(r.HighWord)}
	default:
		b = make([]byte, 4)
	}
	b[3] = byte(r.Type)
	return b
}

// String returns the record as an Intel HEX line without the line
// terminator. The checksum is computed from the other fields. String panics
// if a Data record carries more than MaxData bytes.
func (r *Record) String() string {
	f := r.fields()
	var sb strings.Builder
	sb.Grow(1 + 2*len(f) + 2)
	sb.WriteByte(':')
	sb.WriteString(strings.ToUpper(hex.EncodeToString(f)))
	fmt.Fprintf(&sb, "%02X", Checksum(f))
	return sb.String()
}

// ParseRecord decodes a single Intel HEX line. The checksum field is stored
// in the returned record but is not verified (see Decoder.Strict). Record
// types other than Data, EndOfFile and ExtendedLinearAddress are rejected
// with ErrUnsupportedRecordType.
func ParseRecord(line string) (*Record, error) {
	return parseRecord(0, strings.TrimSpace(line), false)
}

func parseRecord(lnum int, line string, strict bool) (*Record, error) {
	if len(line) == 0 || line[0] != ':' {
		return nil, newError(lnum, ErrSyntax, "record does not start with ':'")
	}
	line = line[1:]
	if len(line) < 10 {
		return nil, newError(lnum, ErrLengthMismatch, "record too short (%d hex digits)", len(line))
	}
	if len(line)%2 != 0 {
		return nil, newError(lnum, ErrSyntax, "odd number of hex digits")
	}
	raw, err := hex.DecodeString(line)
	if err != nil {
		return nil, &Error{Line: lnum, Kind: ErrMalformedHex, Err: err}
	}
	n := int(raw[0])
	if n+5 != len(raw) {
		return nil, newError(
			lnum, ErrLengthMismatch,
			"length field %d, record carries %d data bytes", n, len(raw)-5,
		)
	}
	if sum := Checksum(raw[:len(raw)-1]); strict && sum != raw[len(raw)-1] {
		return nil, newError(
			lnum, ErrChecksumMismatch,
			"expected %02X, got %02X", sum, raw[len(raw)-1],
		)
	}
	r := &Record{
		Type:     Type(raw[3]),
		Offset:   binary.BigEndian.Uint16(raw[1:3]),
		Checksum: raw[len(raw)-1],
	}
	data := raw[4 : 4+n]
	switch r.Type {
	case Data:
		r.Bytes = data
	case ExtendedLinearAddress:
		if n < 2 {
			return nil, newError(
				lnum, ErrLengthMismatch,
				"extended linear address record with %d data bytes", n,
			)
		}
		r.HighWord = binary.BigEndian.Uint16(data)
		r.Offset = 0
	case EndOfFile:
		r.Offset = 0
	default:
		return nil, newError(lnum, ErrUnsupportedRecordType, "%s", line[6:8])
	}
	return r, nil
}
