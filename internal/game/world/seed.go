package world

import (
	"crypto/rand"
	"encoding/binary"
)

// newSeed draws a non-deterministic 64-bit seed for the token and
// spawn-position generators.
func newSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
