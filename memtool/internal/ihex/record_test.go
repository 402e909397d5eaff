// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ihex

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	// 04+00+00+00+01+02+03+04 = 0x0E
	assert.Equal(t, byte(0xF2), Checksum([]byte{4, 0, 0, 0, 1, 2, 3, 4}))
	assert.Equal(t, byte(0xF2), WordChecksum(0, 0x01020304))
	assert.Equal(t, byte(0xFF), Checksum([]byte{0, 0, 0, 1}))
	assert.Equal(t, byte(0x00), Checksum(nil))
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name string
		line string
		want *Record
	}{
		{
			name: "data",
			line: ":0400000001020304F2",
			want: &Record{
				Type:     Data,
				Offset:   0,
				Bytes:    []byte{1, 2, 3, 4},
				Checksum: 0xF2,
			},
		},
		{
			name: "data with offset and crlf",
			line: ":08010000DEADBEEF00112233AB\r\n",
			want: &Record{
				Type:     Data,
				Offset:   0x0100,
				Bytes:    []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x11, 0x22, 0x33},
				Checksum: 0xAB,
			},
		},
		{
			name: "extended linear address",
			line: ":020000040001F9",
			want: &Record{Type: ExtendedLinearAddress, HighWord: 1, Checksum: 0xF9},
		},
		{
			name: "extended linear address with four data bytes",
			line: ":0400000412345678E4",
			want: &Record{Type: ExtendedLinearAddress, HighWord: 0x1234, Checksum: 0xE4},
		},
		{
			name: "end of file",
			line: ":00000001FF",
			want: &Record{Type: EndOfFile, Checksum: 0xFF},
		},
		{
			name: "checksum not verified",
			line: ":0400000001020304EA",
			want: &Record{
				Type:     Data,
				Bytes:    []byte{1, 2, 3, 4},
				Checksum: 0xEA,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRecord(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r)
		})
	}
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind error
	}{
		{"no colon", "00000001FF", ErrSyntax},
		{"empty", "", ErrSyntax},
		{"odd digits", ":0000001FF0F", ErrSyntax},
		{"non hex", ":qw00000001FF", ErrMalformedHex},
		{"non hex data", ":04000000010G0304F2", ErrMalformedHex},
		{"too short", ":000001FF", ErrLengthMismatch},
		{"length too big", ":0500000001020304F1", ErrLengthMismatch},
		{"length too small", ":0300000001020304F3", ErrLengthMismatch},
		{"short extended address", ":0100000400FB", ErrLengthMismatch},
		{"extended segment address", ":020000021200EA", ErrUnsupportedRecordType},
		{"start linear address", ":04000005000000CD2A", ErrUnsupportedRecordType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecord(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			var e *Error
			require.True(t, errors.As(err, &e))
		})
	}
}

func TestUnsupportedRecordTypeText(t *testing.T) {
	_, err := ParseRecord(":020000021200EA")
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "02", e.Text)
	assert.Equal(t, "unsupported record type: 02", err.Error())
}

func TestRecordString(t *testing.T) {
	tests := []struct {
		r    *Record
		want string
	}{
		{&Record{Type: Data, Bytes: []byte{1, 2, 3, 4}}, ":0400000001020304F2"},
		{&Record{Type: Data, Offset: 0x1234, Bytes: []byte{0xAA}}, ":01123400AA0F"},
		{&Record{Type: ExtendedLinearAddress, HighWord: 1}, ":020000040001F9"},
		{&Record{Type: EndOfFile}, ":00000001FF"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.String())
			r, err := ParseRecord(tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.String())
		})
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Data", Data.String())
	assert.Equal(t, "ExtendedLinearAddress", ExtendedLinearAddress.String())
	assert.Equal(t, "Type(03)", Type(3).String())
}

func TestRecordStringMaxData(t *testing.T) {
	r := &Record{Type: Data, Bytes: make([]byte, MaxData)}
	line := r.String()
	assert.True(t, strings.HasPrefix(line, ":FF000000"))
	p, err := ParseRecord(line)
	require.NoError(t, err)
	assert.Len(t, p.Bytes, MaxData)

	r.Bytes = make([]byte, MaxData+1)
	assert.Panics(t, func() { _ = r.String() })
}
