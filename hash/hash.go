// Package hash provides the hashing primitive used across the beacon.
package hash

import (
	"github.com/zeebo/blake3"
)

// Size of the hash output.
const Size = 32

// Hash is an alias to blake3.Hasher.
type Hash = blake3.Hasher

// New returns a new Hash.
func New() *Hash {
	return blake3.New()
}

// Sum computes the blake3 digest of chunks concatenated together.
func Sum(chunks ...[]byte) (out [Size]byte) {
	hh := New()
	for _, chunk := range chunks {
		hh.Write(chunk)
	}
	hh.Sum(out[:0])
	return out
}
