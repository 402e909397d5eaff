// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/embeddedgo/hdltools/memtool/internal/cmd/bin2ihex"
	"github.com/embeddedgo/hdltools/memtool/internal/cmd/render"
	"github.com/embeddedgo/hdltools/memtool/internal/ihex"
	"github.com/embeddedgo/hdltools/memtool/internal/memimg"
	"github.com/embeddedgo/hdltools/memtool/internal/util"
)

const Descr = "convert a binary image to Intel HEX, word aggregate and VHDL package"

// Outputs contains the names of the generated files.
type Outputs struct {
	IHex string
	Hex  string
	VHD  string
}

// Job describes a single build.
type Job struct {
	Bin      []byte
	Layout   ihex.Layout
	Out      Outputs
	WordFill string
	ByteFill string
	Sorted   bool
	Package  memimg.Package
	Progress func(name string) // called after every written file
}

// Run writes the Intel HEX file and renders both aggregates from it. The
// two aggregates are written concurrently. Every output is replaced only
// if it was written completely.
func (j *Job) Run() (*memimg.Image, error) {
	if j.Package.Depth == "" {
		return nil, errors.New("memory depth not set (-depth or DEPTH in memtool.conf)")
	}
	var ihx bytes.Buffer
	if err := ihex.Write(&ihx, j.Bin, j.Layout); err != nil {
		return nil, err
	}
	d := ihex.NewDecoder(bytes.NewReader(ihx.Bytes()))
	d.Layout = j.Layout
	d.Strict = true
	m, err := memimg.Load(d)
	if err != nil {
		return nil, err
	}
	done := func(name string) {
		if j.Progress != nil {
			j.Progress(name)
		}
	}
	err = util.WriteFileAtomic(j.Out.IHex, func(w io.Writer) error {
		_, err := w.Write(ihx.Bytes())
		return err
	})
	if err != nil {
		return nil, err
	}
	done(j.Out.IHex)
	var g errgroup.Group
	g.Go(func() error {
		r := &memimg.WordPacked{Fill: j.WordFill, Sorted: j.Sorted}
		err := util.WriteFileAtomic(j.Out.Hex, func(w io.Writer) error {
			return r.Render(w, m)
		})
		if err == nil {
			done(j.Out.Hex)
		}
		return err
	})
	g.Go(func() error {
		r := &memimg.ByteAddressed{Fill: j.ByteFill, Sorted: j.Sorted}
		err := util.WriteFileAtomic(j.Out.VHD, func(w io.Writer) error {
			return memimg.WritePackage(w, &j.Package, r, m)
		})
		if err == nil {
			done(j.Out.VHD)
		}
		return err
	})
	return m, g.Wait()
}

func Main(cmd string, args []string) {
	conf, err := util.LoadConfig()
	util.FatalErr("config", err)
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [OPTIONS] [BIN|ELF]\nOptions:\n", cmd)
		fs.PrintDefaults()
	}
	j := &Job{
		WordFill: conf.WordFill,
		ByteFill: conf.ByteFill,
		Package: memimg.Package{
			Name:       conf.Package,
			Constant:   conf.Constant,
			Library:    conf.Library,
			MemPackage: conf.MemPackage,
			Depth:      conf.Depth,
		},
	}
	layout := fs.String(
		"layout", "word",
		"record address `unit` of the Intel HEX file: word or byte",
	)
	inc := fs.String(
		"inc", "",
		"binary files to be included BIN1:ADDR1[,BIN2:ADDR2[,...]]",
	)
	fs.StringVar(
		&j.Package.Depth, "depth", j.Package.Depth,
		"memory depth in 32-bit `words` (a number or a VHDL constant)",
	)
	fs.StringVar(&j.WordFill, "wfill", j.WordFill, "word aggregate fill `literal`")
	fs.StringVar(&j.ByteFill, "bfill", j.ByteFill, "VHDL package fill `literal`")
	fs.BoolVar(&j.Sorted, "sort", false, "sort entries by address")
	vhd := fs.String(
		"vhd", "",
		"VHDL package `file` (default: PACKAGE.vhd next to the input)",
	)
	fs.Parse(args)
	if fs.NArg() > 1 {
		fs.Usage()
		os.Exit(1)
	}
	j.Layout, err = ihex.ParseLayout(*layout)
	util.FatalErr(cmd, err)
	in, _ := util.InOutFiles(fs.Arg(0), ".bin", "", "")
	base := strings.TrimSuffix(strings.TrimSuffix(in, ".bin"), ".elf")
	j.Out = Outputs{IHex: base + ".ihex", Hex: base + ".hex", VHD: *vhd}
	if j.Out.VHD == "" {
		j.Out.VHD = filepath.Join(filepath.Dir(in), j.Package.Name+".vhd")
	}
	j.Bin, err = bin2ihex.ReadImage(in, *inc, 0)
	util.FatalErr("read", err)
	if util.IsTerminal() {
		var mu sync.Mutex
		n := 0
		j.Progress = func(string) {
			mu.Lock()
			n++
			util.Progress("build ", n, 3, 1, "files")
			mu.Unlock()
		}
	}
	m, err := j.Run()
	util.FatalErr(cmd, err)
	render.CheckDepth(cmd, m, j.Package.Depth)
}
