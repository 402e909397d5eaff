// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ihex

import (
	"bufio"
	"io"

	"github.com/marcinbor85/gohex"
)

// Pad returns bin extended with zero bytes to a multiple of 4 bytes.
func Pad(bin []byte) []byte {
	if n := len(bin) & 3; n != 0 {
		bin = append(bin[:len(bin):len(bin)], make([]byte, 4-n)...)
	}
	return bin
}

// Encode converts bin to Intel HEX records in the word layout: one Data
// record per 32-bit word at the address equal to the word index, followed
// by the EndOfFile record. Words at index 0x10000 and above are preceded by
// an ExtendedLinearAddress record every 64 Ki words.
func Encode(bin []byte) []*Record {
	bin = Pad(bin)
	n := len(bin) / 4
	rs := make([]*Record, 0, n+n>>16+1)
	var high uint16
	for i := 0; i < n; i++ {
		if h := uint16(i >> 16); h != high {
			high = h
			rs = append(rs, &Record{Type: ExtendedLinearAddress, HighWord: h})
		}
		rs = append(rs, &Record{
			Type:   Data,
			Offset: uint16(i),
			Bytes:  bin[i*4 : i*4+4],
		})
	}
	rs = append(rs, &Record{Type: EndOfFile})
	for _, r := range rs {
		r.Checksum = Checksum(r.fields())
	}
	return rs
}

// Write writes bin to w in the Intel HEX format using the l layout. Every
// line, including the last one, is terminated by '\n'.
func Write(w io.Writer, bin []byte, l Layout) error {
	if l == ByteLayout {
		mem := gohex.NewMemory()
		if len(bin) != 0 {
			if err := mem.AddBinary(0, Pad(bin)); err != nil {
				return err
			}
		}
		return mem.DumpIntelHex(w, 16)
	}
	bw := bufio.NewWriter(w)
	for _, r := range Encode(bin) {
		bw.WriteString(r.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
