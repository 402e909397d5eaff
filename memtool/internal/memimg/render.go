// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memimg

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/embeddedgo/hdltools/memtool/internal/ihex"
)

const (
	DefaultWordFill = "00000000"
	DefaultByteFill = "XX"
)

// Renderer writes the image as a list of VHDL aggregate choices
//
//	        ADDR => X"VALUE",
//
// terminated by the others choice that covers all unmapped addresses.
type Renderer interface {
	Render(w io.Writer, m *Image) error
}

// WordPacked renders 32-bit words addressed by the word index. The bytes of
// a word are printed from the highest address to the lowest one, so a
// little-endian word reads naturally. Unmapped bytes of a partially mapped
// word are taken from the fill literal.
type WordPacked struct {
	Fill   string // 8 characters, DefaultWordFill if empty
	Sorted bool   // ascending word index instead of the write order
}

func (r *WordPacked) Render(w io.Writer, m *Image) error {
	fill := r.Fill
	if fill == "" {
		fill = DefaultWordFill
	}
	if err := CheckFill(fill, 8); err != nil {
		return err
	}
	var words []uint32
	seen := make(map[uint32]bool)
	for _, a := range m.Addrs(r.Sorted) {
		if wi := a >> 2; !seen[wi] {
			seen[wi] = true
			words = append(words, wi)
		}
	}
	bw := bufio.NewWriter(w)
	var lit [8]byte
	for _, wi := range words {
		for i := uint32(0); i < 4; i++ {
			k := (3 - i) * 2
			if b, ok := m.Byte(wi*4 + i); ok {
				lit[k] = hexDigits[b>>4]
				lit[k+1] = hexDigits[b&15]
			} else {
				lit[k] = fill[k]
				lit[k+1] = fill[k+1]
			}
		}
		fmt.Fprintf(bw, "        %d => X\"%s\",\n", wi, lit[:])
	}
	fmt.Fprintf(bw, "        others => X\"%s\"\n", fill)
	return bw.Flush()
}

// ByteAddressed renders every mapped byte at its own byte address.
type ByteAddressed struct {
	Fill   string // 2 characters, DefaultByteFill if empty
	Sorted bool   // ascending address instead of the write order
}

func (r *ByteAddressed) Render(w io.Writer, m *Image) error {
	fill := r.Fill
	if fill == "" {
		fill = DefaultByteFill
	}
	if err := CheckFill(fill, 2); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, a := range m.Addrs(r.Sorted) {
		b, _ := m.Byte(a)
		fmt.Fprintf(bw, "        %d => X\"%02X\",\n", a, b)
	}
	fmt.Fprintf(bw, "        others => X\"%s\"\n", fill)
	return bw.Flush()
}

// Render decodes all records from d and renders the resulting image.
func Render(w io.Writer, r Renderer, d *ihex.Decoder) error {
	m, err := Load(d)
	if err != nil {
		return err
	}
	return r.Render(w, m)
}

const hexDigits = "0123456789ABCDEF"

// CheckFill checks that fill is a bit string literal of n hexadecimal
// digits or std_logic metavalues.
func CheckFill(fill string, n int) error {
	if len(fill) != n {
		return fmt.Errorf("fill %q: want %d characters", fill, n)
	}
	for _, c := range fill {
		if !strings.ContainsRune(hexDigits+"abcdefXUZWLH-", c) {
			return fmt.Errorf("fill %q: bad character %q", fill, c)
		}
	}
	return nil
}
