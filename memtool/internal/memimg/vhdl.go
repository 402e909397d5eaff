// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memimg

import (
	"bytes"
	"errors"
	"io"
	"text/template"
)

// Package describes the VHDL package that wraps the rendered aggregate.
type Package struct {
	Name       string // package name
	Constant   string // name of the constant of the mem_t type
	Library    string // library containing MemPackage
	MemPackage string // package that declares mem_t
	Depth      string // memory depth in 32-bit words, a number or a constant
}

// DefaultPackage matches the memory package of the nanoFOX cores.
var DefaultPackage = Package{
	Name:       "nf_program",
	Constant:   "program",
	Library:    "work",
	MemPackage: "nf_mem_pkg",
}

var pkgTmpl = template.Must(template.New("pkg").Parse(`library ieee;
use ieee.std_logic_1164.all;
use ieee.numeric_std.all;
library {{.Library}};
use {{.Library}}.{{.MemPackage}}.all;

package {{.Name}} is

    constant {{.Constant}} : mem_t({{.Depth}}*4-1 downto 0)(7 downto 0) :=
    (
{{.Body}}    );

end package {{.Name}};
`))

// WritePackage renders m using r and writes it to w as the VHDL package p.
// Nothing is written to w if rendering fails.
func WritePackage(w io.Writer, p *Package, r Renderer, m *Image) error {
	if p.Name == "" || p.Constant == "" || p.Library == "" || p.MemPackage == "" {
		return errors.New("vhdl: incomplete package description")
	}
	if p.Depth == "" {
		return errors.New("vhdl: memory depth not set")
	}
	var body bytes.Buffer
	if err := r.Render(&body, m); err != nil {
		return err
	}
	return pkgTmpl.Execute(w, struct {
		*Package
		Body string
	}{p, body.String()})
}
