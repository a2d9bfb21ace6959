package lootgen

import (
	"crypto/rand"
	"encoding/binary"
)

// newSeed draws a non-deterministic 64-bit seed. Falls back to a fixed
// seed only if the OS entropy source is unavailable, which in practice
// never happens on the platforms this server targets.
func newSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
