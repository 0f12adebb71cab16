// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package secret resolves the value stored in the parameter: a literal given
// on the command line, a freshly generated random key, or a placeholder.
package secret

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// Placeholder is stored when neither a value nor a bit length is given.
const Placeholder = "BLANK"

// MaxBits is the longest key whose hex form fits in an advanced-tier
// SecureString value (8 KB).
const MaxBits = 32768

// Mode selects how the value is produced.
type Mode int

const (
	// ModeDefault stores Placeholder.
	ModeDefault Mode = iota
	// ModeLiteral stores the given value unchanged.
	ModeLiteral
	// ModeGenerated stores a random hex key of Bits bits.
	ModeGenerated
)

func (m Mode) String() string {
	switch m {
	case ModeLiteral:
		return "literal"
	case ModeGenerated:
		return "generated"
	default:
		return "default"
	}
}

// Source describes the requested value.
type Source struct {
	Mode    Mode
	Literal string
	Bits    int
}

// Literal returns a Source for a value given verbatim.
func Literal(v string) Source {
	return Source{Mode: ModeLiteral, Literal: v}
}

// Generated returns a Source for a random key of the given bit length.
func Generated(bits int) Source {
	return Source{Mode: ModeGenerated, Bits: bits}
}

// Default returns a Source for the placeholder value.
func Default() Source {
	return Source{Mode: ModeDefault}
}

// InvalidBitsError is returned for bit lengths that are not a positive
// multiple of 8 or exceed MaxBits.
type InvalidBitsError struct {
	Bits int
}

func (e *InvalidBitsError) Error() string {
	return fmt.Sprintf("invalid key length %d: must be a positive multiple of 8 bits, at most %d", e.Bits, MaxBits)
}

// Resolver produces values. Rand defaults to crypto/rand.Reader.
type Resolver struct {
	Rand io.Reader
}

// Resolve returns the value for src.
func (r *Resolver) Resolve(src Source) (string, error) {
	switch src.Mode {
	case ModeLiteral:
		return src.Literal, nil
	case ModeGenerated:
		return r.Generate(src.Bits)
	default:
		return Placeholder, nil
	}
}

// Generate returns bits/8 random bytes hex encoded, bits/4 characters long.
func (r *Resolver) Generate(bits int) (string, error) {
	if bits <= 0 || bits > MaxBits || bits%8 != 0 {
		return "", &InvalidBitsError{Bits: bits}
	}

	src := r.Rand
	if src == nil {
		src = rand.Reader
	}

	buf := make([]byte, bits/8)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Resolve resolves src with crypto/rand as the random source.
func Resolve(src Source) (string, error) {
	var r Resolver
	return r.Resolve(src)
}
