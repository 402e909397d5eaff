// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/embeddedgo/hdltools/memtool/internal/memimg"
)

func TestDepthError(t *testing.T) {
	full := memimg.New()
	full.Write(0, make([]byte, 16))
	tests := []struct {
		name  string
		m     *memimg.Image
		depth string
		msg   string
	}{
		{"fits", full, "4", ""},
		{"fits hex depth", full, "0x4", ""},
		{"too small", full, "3", "image ends at 0xf, beyond the 3 word memory"},
		{"zero", full, "0", "image ends at 0xf, beyond the 0 word memory"},
		{"constant", full, "MEM_DEPTH", ""},
		{"empty depth", full, "", ""},
		{"empty image", memimg.New(), "1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := depthError(tt.m, tt.depth)
			if tt.msg == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.msg)
		})
	}
}
