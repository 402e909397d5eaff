// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/embeddedgo/hdltools/memtool/internal/cmd/bin2ihex"
	"github.com/embeddedgo/hdltools/memtool/internal/cmd/build"
	"github.com/embeddedgo/hdltools/memtool/internal/cmd/ihex2bin"
	"github.com/embeddedgo/hdltools/memtool/internal/cmd/render"
	"github.com/embeddedgo/hdltools/memtool/internal/cmd/rvcrun"
)

type tool struct {
	descr string
	main  func(cmd string, args []string)
}

var tools = map[string]tool{
	"bin2ihex": {bin2ihex.Descr, bin2ihex.Main},
	"build":    {build.Descr, build.Main},
	"ihex2bin": {ihex2bin.Descr, ihex2bin.Main},
	"ihex2hex": {render.DescrHex, render.Main},
	"ihex2vhd": {render.DescrVHD, render.Main},
	"rvcrun":   {rvcrun.Descr, rvcrun.Main},
}

func printToolList() {
	names := slices.Sorted(maps.Keys(tools))
	maxLen := 0
	for _, k := range names {
		if maxLen < len(k) {
			maxLen = len(k)
		}
	}
	uw := os.Stderr
	uw.WriteString("Usage:\n  memtool COMMAND [ARGUMENTS]\n\n")
	uw.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(uw, "  %*s  %s\n", maxLen, name, tools[name].descr)
	}
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" {
		printToolList()
		return
	}
	tool, ok := tools[os.Args[1]]
	if !ok {
		printToolList()
		os.Exit(1)
	}
	tool.main(os.Args[1], os.Args[2:])
}
