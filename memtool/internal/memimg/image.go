// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memimg builds sparse memory images from Intel HEX records and
// renders them as VHDL memory initialization aggregates.
package memimg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/embeddedgo/hdltools/memtool/internal/ihex"
)

// Image is a sparse byte addressed memory image. A byte written more than
// once keeps the last written value and its first write position.
type Image struct {
	mem   map[uint32]byte
	order []uint32 // addresses in the order of the first write
}

func New() *Image {
	return &Image{mem: make(map[uint32]byte)}
}

// Load reads all records from d up to the EndOfFile record.
func Load(d *ihex.Decoder) (*Image, error) {
	m := New()
	if err := d.Walk(m.Write); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile reads the Intel HEX file.
func LoadFile(name string, l ihex.Layout, strict bool) (*Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d := ihex.NewDecoder(f)
	d.Layout = l
	d.Strict = strict
	m, err := Load(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Write stores data at the consecutive addresses starting from addr.
func (m *Image) Write(addr uint32, data []byte) {
	for i, b := range data {
		a := addr + uint32(i)
		if _, ok := m.mem[a]; !ok {
			m.order = append(m.order, a)
		}
		m.mem[a] = b
	}
}

// Byte returns the byte at addr and reports whether addr is mapped.
func (m *Image) Byte(addr uint32) (b byte, ok bool) {
	b, ok = m.mem[addr]
	return
}

// Len returns the number of mapped bytes.
func (m *Image) Len() int { return len(m.order) }

// Addrs returns the mapped addresses in the order of the first write or,
// if sorted is true, in ascending order.
func (m *Image) Addrs(sorted bool) []uint32 {
	if sorted {
		return slices.Sorted(slices.Values(m.order))
	}
	return slices.Clone(m.order)
}

// Bounds returns the lowest and the highest mapped address. It returns
// ok == false for an empty image.
func (m *Image) Bounds() (lo, hi uint32, ok bool) {
	if len(m.order) == 0 {
		return
	}
	return slices.Min(m.order), slices.Max(m.order), true
}

// Flatten writes the image to w starting from its lowest mapped address.
// The gaps between mapped bytes are filled using the pad byte.
func (m *Image) Flatten(w io.Writer, pad byte) (n int, err error) {
	addrs := m.Addrs(true)
	if len(addrs) == 0 {
		return
	}
	bw := bufio.NewWriter(w)
	next := addrs[0]
	for _, a := range addrs {
		for ; next != a; next++ {
			bw.WriteByte(pad)
			n++
		}
		bw.WriteByte(m.mem[a])
		n++
		next = a + 1
	}
	err = bw.Flush()
	return
}
