// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ihex

import "fmt"

// Layout selects the unit of the record address field.
type Layout int

const (
	ByteLayout Layout = iota // address field counts bytes (objcopy)
	WordLayout               // address field counts 32-bit words
)

// ParseLayout parses the "byte" or "word" layout name.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "byte":
		return ByteLayout, nil
	case "word":
		return WordLayout, nil
	}
	return 0, fmt.Errorf("unknown address layout %q (want byte or word)", s)
}

func (l Layout) String() string {
	if l == WordLayout {
		return "word"
	}
	return "byte"
}

// Unit returns the number of bytes addressed by one unit of the record
// address.
func (l Layout) Unit() uint32 {
	if l == WordLayout {
		return 4
	}
	return 1
}

// AddressTracker holds the upper 16 bits of the linear address set by the
// last ExtendedLinearAddress record.
type AddressTracker struct {
	high uint16
}

func (t *AddressTracker) HighWord() uint16 { return t.high }

func (t *AddressTracker) OnExtendedAddress(word uint16) { t.high = word }

// Resolve combines the high word with the record offset.
func (t *AddressTracker) Resolve(offset uint16) uint32 {
	return uint32(t.high)<<16 + uint32(offset)
}
