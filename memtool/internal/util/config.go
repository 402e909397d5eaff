// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
)

const (
	confName = "memtool.conf"
	confEnv  = "MEMTOOL_CONF"
)

// Config holds the defaults of the command line options.
type Config struct {
	Path string // file the configuration was read from, empty for defaults

	Depth      string
	WordFill   string
	ByteFill   string
	Package    string
	Constant   string
	Library    string
	MemPackage string
	VcomFlags  []string
	VsimFlags  []string
}

func DefaultConfig() *Config {
	return &Config{
		WordFill:   "00000000",
		ByteFill:   "XX",
		Package:    "nf_program",
		Constant:   "program",
		Library:    "work",
		MemPackage: "nf_mem_pkg",
		VcomFlags:  []string{"-2008"},
		VsimFlags:  []string{"-novopt"},
	}
}

// FindConfig looks for the memtool.conf file in the current directory and
// its parents. The search stops at the first directory that contains go.mod.
// FindConfig returns an empty string if there is no configuration file.
func FindConfig() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		confPath := filepath.Join(wd, confName)
		fi, err := os.Stat(confPath)
		if err == nil {
			if !fi.Mode().IsRegular() {
				return "", fmt.Errorf("%s is not a regular file", confPath)
			}
			return confPath, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		_, err = os.Stat(filepath.Join(wd, "go.mod"))
		if err == nil {
			return "", nil // found go.mod but no confName, stop here
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", nil
		}
		wd = parent
	}
}

// LoadConfig returns the default configuration updated from the file named
// by MEMTOOL_CONF or, if the variable is not set, found by FindConfig.
func LoadConfig() (*Config, error) {
	c := DefaultConfig()
	name := os.Getenv(confEnv)
	if name == "" {
		var err error
		if name, err = FindConfig(); err != nil || name == "" {
			return c, err
		}
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err = ParseConfig(f, c); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	c.Path = name
	return c, nil
}

// ParseConfig reads KEY=VALUE lines from r and updates c. Empty lines and
// lines starting with '#' are ignored. Values are split into words using the
// shell quoting rules.
func ParseConfig(r io.Reader, c *Config) error {
	scalars := map[string]*string{
		"DEPTH":       &c.Depth,
		"WORD_FILL":   &c.WordFill,
		"BYTE_FILL":   &c.ByteFill,
		"PACKAGE":     &c.Package,
		"CONSTANT":    &c.Constant,
		"LIBRARY":     &c.Library,
		"MEM_PACKAGE": &c.MemPackage,
	}
	lists := map[string]*[]string{
		"VCOM_FLAGS": &c.VcomFlags,
		"VSIM_FLAGS": &c.VsimFlags,
	}
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("line %d: missing '='", n)
		}
		key = strings.ToUpper(strings.TrimSpace(key))
		words, err := shlex.Split(val)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", n, key, err)
		}
		if p := lists[key]; p != nil {
			*p = words
			continue
		}
		p := scalars[key]
		if p == nil {
			return fmt.Errorf("line %d: unknown key %s", n, key)
		}
		if len(words) != 1 {
			return fmt.Errorf("line %d: %s requires a single value", n, key)
		}
		*p = words[0]
	}
	return sc.Err()
}
