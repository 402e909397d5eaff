// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rvc generates the ModelSim script that runs a RISC-V compliance
// test on the simulated core and dumps the test signature.
package rvc

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"
)

// Default signature range used if the map file does not define one.
const (
	DefaultBegin = 0x2030
	DefaultEnd   = 0x20e0
)

// Source is a set of VHDL files compiled into a library. An empty Lib means
// the work library.
type Source struct {
	Glob string
	Lib  string
}

var DefaultSources = []Source{
	{"../inc/*.vhd", "nf"},
	{"../program_file/*.vhd", "nf"},
	{"../rtl/core/*.vhd", ""},
	{"../rtl/common/*.vhd", ""},
	{"../rtl/periphery/*.vhd", ""},
	{"../rtl/periphery/pwm/*.vhd", ""},
	{"../rtl/periphery/gpio/*.vhd", ""},
	{"../rtl/periphery/uart/*.vhd", ""},
	{"../rtl/bus/ahb/*.vhd", ""},
	{"../rtl/top/*.vhd", ""},
	{"../tb/nf_tb_def.vhd", "nf"},
	{"../tb/nf_tb.vhd", ""},
}

// Wave is a group of signals added to the wave window.
type Wave struct {
	Divider string
	Path    string
}

var DefaultWaves = []Wave{
	{"pipeline stages", "sim:/nf_tb/instruction_if_stage"},
	{"", "sim:/nf_tb/instruction_id_stage"},
	{"", "sim:/nf_tb/instruction_iexe_stage"},
	{"", "sim:/nf_tb/instruction_imem_stage"},
	{"", "sim:/nf_tb/instruction_iwb_stage"},
	{"load store unit", "sim:/nf_tb/nf_top_ahb_0/nf_cpu_0/nf_i_lsu_0/*"},
	{"core singals", "sim:/nf_tb/nf_top_ahb_0/nf_cpu_0/*"},
	{"hasard stall & flush singals", "sim:/nf_tb/nf_top_ahb_0/nf_cpu_0/nf_hz_stall_unit_0/*"},
	{"cc unit singals", "sim:/nf_tb/nf_top_ahb_0/nf_cpu_cc_0/*"},
	{"instruction fetch unit", "sim:/nf_tb/nf_top_ahb_0/nf_cpu_0/nf_i_fu_0/*"},
	{"csr singals", "sim:/nf_tb/nf_top_ahb_0/nf_cpu_0/nf_csr_0/*"},
	{"testbench signals", "sim:/nf_tb/*"},
}

// Script describes the generated Tcl script.
type Script struct {
	Test      string // name of the directory that receives mem.hex
	VcomFlags []string
	VsimFlags []string
	Top       string // testbench entity
	RAM       string // path to the memory dumped after the simulation
	Sources   []Source
	Waves     []Wave
	Begin     uint64 // first address of the signature
	End       uint64 // last address of the signature
}

// New returns the script for the nanoFOX testbench.
func New(test string) *Script {
	return &Script{
		Test:      test,
		VcomFlags: []string{"-2008"},
		VsimFlags: []string{"-novopt"},
		Top:       "work.nf_tb",
		RAM:       "/nf_tb/nf_top_ahb_0/nf_ram_i_d_0/ram",
		Sources:   DefaultSources,
		Waves:     DefaultWaves,
		Begin:     DefaultBegin,
		End:       DefaultEnd,
	}
}

// ReadMap sets the signature range from the begin_signature and
// end_signature symbols found in the linker map read from r. The address is
// the first field of the line that contains the symbol.
func (s *Script) ReadMap(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		var p *uint64
		switch {
		case strings.Contains(line, "begin_signature"):
			p = &s.Begin
		case strings.Contains(line, "end_signature"):
			p = &s.End
		default:
			continue
		}
		f := strings.Fields(line)
		a, err := strconv.ParseUint(f[0], 0, 64)
		if err != nil {
			return fmt.Errorf("map line %d: bad address: %w", n, err)
		}
		*p = a
	}
	return sc.Err()
}

var tclTmpl = template.Must(template.New("tcl").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`{{$vcom := join .VcomFlags " "}}{{range .Sources -}}
vcom {{$vcom}} {{.Glob}}{{if .Lib}} -work {{.Lib}}{{end}}
{{end}}
vsim {{join .VsimFlags " "}} {{.Top}}
{{range .Waves -}}
{{if .Divider}}add wave -divider  "{{.Divider}}"
{{end}}add wave -position insertpoint {{.Path}}
{{end}}
run -all
mem save -o ../program_file/{{.Test}}/mem.hex -f hex -noaddress -startaddress {{.Begin}} -endaddress {{.End}} {{.RAM}}
quit
`))

// Write writes the Tcl script to w.
func (s *Script) Write(w io.Writer) error {
	if s.Test == "" {
		return fmt.Errorf("rvc: test name not set")
	}
	if s.End < s.Begin {
		return fmt.Errorf("rvc: signature end %#x below begin %#x", s.End, s.Begin)
	}
	return tclTmpl.Execute(w, s)
}
