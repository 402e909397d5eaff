// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/embeddedgo/hdltools/memtool/internal/ihex"
	"github.com/embeddedgo/hdltools/memtool/internal/memimg"
	"github.com/embeddedgo/hdltools/memtool/internal/util"
)

const (
	DescrHex = "convert an Intel HEX file to a word addressed VHDL aggregate"
	DescrVHD = "convert an Intel HEX file to a byte addressed VHDL package"
)

func Main(cmd string, args []string) {
	conf, err := util.LoadConfig()
	util.FatalErr("config", err)
	outSuffix := ".hex"
	defFill := conf.WordFill
	if cmd == "ihex2vhd" {
		outSuffix = ".vhd"
		defFill = conf.ByteFill
	}
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [IHEX [%s]]\nOptions:\n",
			cmd, strings.ToUpper(outSuffix[1:]),
		)
		fs.PrintDefaults()
	}
	fill := fs.String(
		"fill", defFill,
		"`literal` used for all unmapped addresses (others choice)",
	)
	sorted := fs.Bool(
		"sort", false,
		"sort entries by address instead of the order of records",
	)
	strict := fs.Bool("strict", false, "verify record checksums")
	layout := fs.String(
		"layout", "byte",
		"record address `unit` of the input: byte or word",
	)
	verbose := fs.Bool("v", false, "print a summary of the conversion")
	pkg := memimg.Package{
		Name:       conf.Package,
		Constant:   conf.Constant,
		Library:    conf.Library,
		MemPackage: conf.MemPackage,
		Depth:      conf.Depth,
	}
	if cmd == "ihex2vhd" {
		fs.StringVar(
			&pkg.Depth, "depth", pkg.Depth,
			"memory depth in 32-bit `words` (a number or a VHDL constant)",
		)
		fs.StringVar(&pkg.Name, "package", pkg.Name, "VHDL package `name`")
		fs.StringVar(&pkg.Constant, "constant", pkg.Constant, "memory constant `name`")
		fs.StringVar(&pkg.Library, "library", pkg.Library, "`library` of the memory package")
		fs.StringVar(&pkg.MemPackage, "mempkg", pkg.MemPackage, "`package` that declares mem_t")
	}
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	l, err := ihex.ParseLayout(*layout)
	util.FatalErr(cmd, err)
	in, out := util.InOutFiles(fs.Arg(0), ".ihex", fs.Arg(1), outSuffix)
	m, err := memimg.LoadFile(in, l, *strict)
	util.FatalErr("decode", err)
	switch cmd {
	case "ihex2hex":
		r := &memimg.WordPacked{Fill: *fill, Sorted: *sorted}
		err = util.WriteFileAtomic(out, func(w io.Writer) error {
			return r.Render(w, m)
		})
	case "ihex2vhd":
		CheckDepth(cmd, m, pkg.Depth)
		r := &memimg.ByteAddressed{Fill: *fill, Sorted: *sorted}
		err = util.WriteFileAtomic(out, func(w io.Writer) error {
			return memimg.WritePackage(w, &pkg, r, m)
		})
	}
	util.FatalErr("render", err)
	if *verbose {
		util.Warn("%s: %s: %d bytes -> %s", cmd, in, m.Len(), out)
	}
}

// CheckDepth warns if the image does not fit in a memory of depth words.
// Depths given as VHDL constants are not checked.
func CheckDepth(cmd string, m *memimg.Image, depth string) {
	if err := depthError(m, depth); err != nil {
		util.Warn("%s: warning: %s", cmd, err)
	}
}

func depthError(m *memimg.Image, depth string) error {
	d, err := strconv.ParseUint(depth, 0, 32)
	if err != nil {
		return nil
	}
	if _, hi, ok := m.Bounds(); ok && uint64(hi) >= d*4 {
		return fmt.Errorf("image ends at %#x, beyond the %d word memory", hi, d)
	}
	return nil
}
