package world

import (
	"fmt"
	"math/rand"
)

// tokenGenerator produces 32-character lowercase-hex tokens by
// concatenating two independent 64-bit generators' 16-hex-digit
// output, matching spec §4.4.
type tokenGenerator struct {
	gen1, gen2 *rand.Rand
}

func newTokenGenerator() *tokenGenerator {
	return &tokenGenerator{
		gen1: rand.New(rand.NewSource(newSeed())),
		gen2: rand.New(rand.NewSource(newSeed())),
	}
}

func (g *tokenGenerator) Next() string {
	return fmt.Sprintf("%016x%016x", g.gen1.Uint64(), g.gen2.Uint64())
}
