// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package secret

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLength(t *testing.T) {
	for _, bits := range []int{8, 64, 128, 256, 512, 4096, MaxBits} {
		got, err := Resolve(Generated(bits))
		require.NoError(t, err, "bits=%d", bits)
		assert.Len(t, got, bits/4, "bits=%d", bits)

		raw, err := hex.DecodeString(got)
		require.NoError(t, err)
		assert.Len(t, raw, bits/8)
	}
}

func TestGenerateInvalidBits(t *testing.T) {
	for _, bits := range []int{0, -8, 1, 7, 255, 100, MaxBits + 8, 8000000000000, 1 << 62} {
		_, err := Resolve(Generated(bits))
		var ibe *InvalidBitsError
		require.True(t, errors.As(err, &ibe), "bits=%d err=%v", bits, err)
		assert.Equal(t, bits, ibe.Bits)
		assert.Contains(t, ibe.Error(), "at most 32768")
	}
}

func TestGenerateHugeLengthReturnsError(t *testing.T) {
	r := &Resolver{}
	got, err := r.Generate(1 << 62)
	var ibe *InvalidBitsError
	require.ErrorAs(t, err, &ibe)
	assert.Empty(t, got)
}

func TestGenerateUsesRandomSource(t *testing.T) {
	r := &Resolver{Rand: bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef})}
	got, err := r.Generate(32)
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", got)
}

func TestGenerateShortRandomSource(t *testing.T) {
	r := &Resolver{Rand: bytes.NewReader([]byte{0x01})}
	_, err := r.Generate(64)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to read random bytes"))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want string
	}{
		{name: "literal", src: Literal("s3cr3t"), want: "s3cr3t"},
		{name: "empty literal", src: Literal(""), want: ""},
		{name: "default", src: Default(), want: Placeholder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "literal", ModeLiteral.String())
	assert.Equal(t, "generated", ModeGenerated.String())
	assert.Equal(t, "default", ModeDefault.String())
}
