// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bin2ihex

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/embeddedgo/hdltools/memtool/internal/ihex"
	"github.com/embeddedgo/hdltools/memtool/internal/memimg"
	"github.com/embeddedgo/hdltools/memtool/internal/util"
)

const Descr = "convert a binary image or an ELF file to the Intel HEX format"

func Main(cmd string, args []string) {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] [BIN|ELF [IHEX]]\nOptions:\n",
			cmd,
		)
		fs.PrintDefaults()
	}
	layout := fs.String(
		"layout", "word",
		"record address `unit`: word (one record per 32-bit word) or byte",
	)
	inc := fs.String(
		"inc", "",
		"binary files to be included BIN1:ADDR1[,BIN2:ADDR2[,...]]",
	)
	pad := fs.Uint(
		"pad", 0,
		"pad `byte` used to fill gaps between ELF sections and included files",
	)
	verbose := fs.Bool("v", false, "print a summary of the conversion")
	fs.Parse(args)
	if fs.NArg() > 2 {
		fs.Usage()
		os.Exit(1)
	}
	l, err := ihex.ParseLayout(*layout)
	util.FatalErr(cmd, err)
	in, out := util.InOutFiles(fs.Arg(0), ".bin", fs.Arg(1), ".ihex")
	if strings.HasSuffix(in, ".elf") && fs.Arg(1) == "" {
		out = strings.TrimSuffix(in, ".elf") + ".ihex"
	}
	bin, err := ReadImage(in, *inc, byte(*pad))
	util.FatalErr("read", err)
	err = util.WriteFileAtomic(out, func(w io.Writer) error {
		return ihex.Write(w, bin, l)
	})
	util.FatalErr("write", err)
	if *verbose {
		util.Warn(
			"%s: %s: %d bytes (%d words, %s layout) -> %s",
			cmd, in, len(bin), (len(bin)+3)/4, l, out,
		)
	}
}

// ReadImage returns the flat binary image of the named file. ELF files (the
// .elf suffix) are flattened from their lowest loadable address. The files
// described by inc are placed at their addresses before flattening.
func ReadImage(name, inc string, pad byte) ([]byte, error) {
	isELF := strings.HasSuffix(name, ".elf")
	if !isELF && inc == "" {
		return os.ReadFile(name)
	}
	m := memimg.New()
	if isELF {
		if err := util.LoadELF(m, name); err != nil {
			return nil, err
		}
	} else {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		m.Write(0, data)
	}
	if inc != "" {
		if err := util.IncludeBins(m, inc); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if _, err := m.Flatten(&buf, pad); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
