// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"debug/elf"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/embeddedgo/hdltools/memtool/internal/memimg"
)

// LoadELF writes the loadable sections of the program to m at their
// physical addresses.
func LoadELF(m *memimg.Image, name string) error {
	f, err := elf.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, s := range f.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			continue
		}
		paddr := s.Addr
		for _, p := range f.Progs {
			if p.Type == elf.PT_LOAD && p.Off <= s.Offset && s.Offset < p.Off+p.Filesz {
				paddr = p.Paddr + s.Offset - p.Off
				break
			}
		}
		if paddr+uint64(len(data)) > 1<<32 {
			return fmt.Errorf("%s: section %s at %#x exceeds 32-bit address space", name, s.Name, paddr)
		}
		m.Write(uint32(paddr), data)
	}
	return nil
}

// IncludeBins writes binary files to m acording to the description
// BIN1:ADDR1[,BIN2:ADDR2[,...]].
func IncludeBins(m *memimg.Image, descr string) error {
	for _, ba := range strings.Split(descr, ",") {
		i := strings.LastIndexByte(ba, ':')
		if i <= 0 {
			return fmt.Errorf("bad '%s' in the -inc option", ba)
		}
		bin, addr := ba[:i], ba[i+1:]
		a, err := strconv.ParseUint(addr, 0, 32)
		if err != nil {
			return fmt.Errorf("bad address in '%s': %s", addr, err)
		}
		data, err := os.ReadFile(bin)
		if err != nil {
			return err
		}
		m.Write(uint32(a), data)
	}
	return nil
}
