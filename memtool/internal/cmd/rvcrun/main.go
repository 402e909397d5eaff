// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rvcrun

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/embeddedgo/hdltools/memtool/internal/rvc"
	"github.com/embeddedgo/hdltools/memtool/internal/util"
)

const Descr = "generate the ModelSim script that runs a RISC-V compliance test"

func Main(cmd string, args []string) {
	conf, err := util.LoadConfig()
	util.FatalErr("config", err)
	fset := flag.NewFlagSet(cmd, flag.ExitOnError)
	fset.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\n  %s [OPTIONS] TEST\nOptions:\n",
			cmd,
		)
		fset.PrintDefaults()
	}
	mapFile := fset.String(
		"map", "program_file/main.map",
		"linker map `file` with the begin_signature and end_signature symbols",
	)
	out := fset.String("o", "run/rvc_run.tcl", "output `file`")
	fset.Parse(args)
	if fset.NArg() != 1 {
		fset.Usage()
		os.Exit(1)
	}
	s := rvc.New(fset.Arg(0))
	s.VcomFlags = conf.VcomFlags
	s.VsimFlags = conf.VsimFlags
	f, err := os.Open(*mapFile)
	switch {
	case err == nil:
		err = s.ReadMap(f)
		f.Close()
		util.FatalErr(*mapFile, err)
	case errors.Is(err, fs.ErrNotExist):
		util.Warn(
			"%s: %s not found, using the default signature range %#x-%#x",
			cmd, *mapFile, s.Begin, s.End,
		)
	default:
		util.FatalErr("", err)
	}
	err = util.WriteFileAtomic(*out, func(w io.Writer) error {
		return s.Write(w)
	})
	util.FatalErr("write", err)
}
