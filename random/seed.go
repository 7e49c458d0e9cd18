// Package random provides seed helpers for the engines' explicit random
// sources.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"
)

// NewSeed returns a high-entropy seed from crypto/rand, falling back to the
// wall clock if the system source is unavailable.
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
