// Package random provides seeded pseudo-random sources for dice and name
// generation.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"time"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a source seeded from crypto/rand. If the system entropy source
// fails, the clock is used instead.
func New() *rand.Rand {
	seed, err := NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// FromSeed returns a deterministic source for a nonzero seed, or a
// crypto-seeded one when seed is zero.
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		return New()
	}
	return rand.New(rand.NewSource(seed))
}
