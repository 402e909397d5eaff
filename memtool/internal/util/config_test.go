// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	c := DefaultConfig()
	in := `
# nanoFOX memory
DEPTH = 1024
byte_fill = 00
PACKAGE=nf_rom
VCOM_FLAGS = -2008 -quiet "+define+SIM ON"
VSIM_FLAGS =
`
	require.NoError(t, ParseConfig(strings.NewReader(in), c))
	assert.Equal(t, "1024", c.Depth)
	assert.Equal(t, "00", c.ByteFill)
	assert.Equal(t, "nf_rom", c.Package)
	assert.Equal(t, "00000000", c.WordFill)
	assert.Equal(t, []string{"-2008", "-quiet", "+define+SIM ON"}, c.VcomFlags)
	assert.Empty(t, c.VsimFlags)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		in  string
		msg string
	}{
		{"DEPTH", "line 1: missing '='"},
		{"\nCOLOR = red", "line 2: unknown key COLOR"},
		{"DEPTH = 1 2", "line 1: DEPTH requires a single value"},
		{"PACKAGE = \"open", "line 1: PACKAGE"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			err := ParseConfig(strings.NewReader(tt.in), DefaultConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFindConfig(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	sub := filepath.Join(root, "program_file", "build")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0o644))
	t.Chdir(sub)

	name, err := FindConfig()
	require.NoError(t, err)
	assert.Empty(t, name)

	conf := filepath.Join(root, "program_file", confName)
	require.NoError(t, os.WriteFile(conf, []byte("DEPTH = 512\n"), 0o644))
	name, err = FindConfig()
	require.NoError(t, err)
	assert.Equal(t, conf, name)

	t.Setenv(confEnv, "")
	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "512", c.Depth)
	assert.Equal(t, conf, c.Path)
}

func TestLoadConfigEnv(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "my.conf")
	require.NoError(t, os.WriteFile(conf, []byte("WORD_FILL = FFFFFFFF\n"), 0o644))
	t.Setenv(confEnv, conf)
	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "FFFFFFFF", c.WordFill)

	require.NoError(t, os.WriteFile(conf, []byte("BOGUS = 1\n"), 0o644))
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "unknown key BOGUS")
}
