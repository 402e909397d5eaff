// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memimg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/embeddedgo/hdltools/memtool/internal/ihex"
)

func render(t *testing.T, r Renderer, in string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, ihex.NewDecoder(strings.NewReader(in))))
	return buf.String()
}

const twoWords = ":08000000AABBCCDD01020304D6\n" +
	":00000001FF\n" +
	":04000400FFFFFFFFFC\n"

func TestWordPacked(t *testing.T) {
	out := render(t, &WordPacked{}, twoWords)
	assert.Equal(t, ""+
		"        0 => X\"DDCCBBAA\",\n"+
		"        1 => X\"04030201\",\n"+
		"        others => X\"00000000\"\n", out)
}

func TestByteAddressed(t *testing.T) {
	out := render(t, &ByteAddressed{}, ":04000000AABBCCDDEE\n:00000001FF\n")
	assert.Equal(t, ""+
		"        0 => X\"AA\",\n"+
		"        1 => X\"BB\",\n"+
		"        2 => X\"CC\",\n"+
		"        3 => X\"DD\",\n"+
		"        others => X\"XX\"\n", out)
}

func TestRenderExtendedAddress(t *testing.T) {
	in := ":020000040001F9\n:0400000001020304F2\n:00000001FF\n"
	out := render(t, &WordPacked{}, in)
	assert.Equal(t, "        16384 => X\"04030201\",\n        others => X\"00000000\"\n", out)
	out = render(t, &ByteAddressed{}, in)
	assert.True(t, strings.HasPrefix(out, "        65536 => X\"01\",\n        65537 => X\"02\",\n"))
}

func TestRenderOrder(t *testing.T) {
	in := ":0400080001020304EA\n" +
		":0400000005060708DE\n" +
		":00000001FF\n"
	out := render(t, &WordPacked{}, in)
	assert.Equal(t, ""+
		"        2 => X\"04030201\",\n"+
		"        0 => X\"08070605\",\n"+
		"        others => X\"00000000\"\n", out)
	out = render(t, &WordPacked{Sorted: true}, in)
	assert.Equal(t, ""+
		"        0 => X\"08070605\",\n"+
		"        2 => X\"04030201\",\n"+
		"        others => X\"00000000\"\n", out)
}

func TestRenderLastWriteWins(t *testing.T) {
	in := ":0400000001020304F2\n" +
		":02000200AABB97\n" +
		":00000001FF\n"
	out := render(t, &WordPacked{}, in)
	assert.Equal(t, "        0 => X\"BBAA0201\",\n        others => X\"00000000\"\n", out)
	out = render(t, &ByteAddressed{}, in)
	assert.Equal(t, 1, strings.Count(out, "        2 => "))
	assert.Contains(t, out, "        2 => X\"AA\",\n")
}

func TestWordPackedPartialWord(t *testing.T) {
	in := ":02000500AABB94\n:00000001FF\n"
	out := render(t, &WordPacked{Fill: "1234567X"}, in)
	assert.Equal(t, ""+
		"        1 => X\"12BBAA7X\",\n"+
		"        others => X\"1234567X\"\n", out)
}

func TestRenderIdempotent(t *testing.T) {
	m, err := Load(ihex.NewDecoder(strings.NewReader(twoWords)))
	require.NoError(t, err)
	for _, r := range []Renderer{&WordPacked{}, &ByteAddressed{Sorted: true}} {
		var a, b bytes.Buffer
		require.NoError(t, r.Render(&a, m))
		require.NoError(t, r.Render(&b, m))
		assert.Equal(t, a.String(), b.String())
	}
}

func TestRenderEmpty(t *testing.T) {
	out := render(t, &ByteAddressed{Fill: "00"}, ":00000001FF\n")
	assert.Equal(t, "        others => X\"00\"\n", out)
}

func TestRenderErrors(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, &WordPacked{}, ihex.NewDecoder(strings.NewReader(":04000000AABBCCDDEE\n")))
	assert.ErrorIs(t, err, ihex.ErrTruncatedInput)
	assert.Zero(t, buf.Len())

	err = Render(&buf, &WordPacked{}, ihex.NewDecoder(strings.NewReader(":020000021200EA\n:00000001FF\n")))
	assert.ErrorIs(t, err, ihex.ErrUnsupportedRecordType)

	m := New()
	assert.Error(t, (&WordPacked{Fill: "00"}).Render(&buf, m))
	assert.Error(t, (&ByteAddressed{Fill: "0G"}).Render(&buf, m))
	assert.Zero(t, buf.Len())
}

func TestCheckFill(t *testing.T) {
	assert.NoError(t, CheckFill("XX", 2))
	assert.NoError(t, CheckFill("deadBEEF", 8))
	assert.NoError(t, CheckFill("UZ-W", 4))
	assert.Error(t, CheckFill("X", 2))
	assert.Error(t, CheckFill("xx", 2))
}
