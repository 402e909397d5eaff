// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ihex2bin

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/embeddedgo/hdltools/memtool/internal/ihex"
	"github.com/embeddedgo/hdltools/memtool/internal/memimg"
	"github.com/embeddedgo/hdltools/memtool/internal/util"
)

const Descr = "convert an Intel HEX file to a binary image"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [IHEX [BIN]]\nOptions:\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	pad := fs.Uint(
		"pad", 0xff,
		"pad `byte` used to fill gaps between records",
	)
	strict := fs.Bool("strict", false, "verify record checksums")
	layout := fs.String(
		"layout", "byte",
		"record address `unit` of the input: byte or word",
	)
	verbose := fs.Bool("v", false, "print a summary of the conversion")
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	l, err := ihex.ParseLayout(*layout)
	util.FatalErr(cmd, err)
	in, out := util.InOutFiles(fs.Arg(0), ".ihex", fs.Arg(1), ".bin")
	m, err := memimg.LoadFile(in, l, *strict)
	util.FatalErr("decode", err)
	var n int
	err = util.WriteFileAtomic(out, func(w io.Writer) (err error) {
		n, err = m.Flatten(w, byte(*pad))
		return
	})
	util.FatalErr("flatten", err)
	if *verbose {
		lo, _, _ := m.Bounds()
		util.Warn("%s: %s: %d bytes from %#x -> %s", cmd, in, n, lo, out)
	}
}
