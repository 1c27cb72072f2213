// Package types defines the opaque identifiers exchanged by the randomness
// beacon: round nonces, randomness shares and the combined randomness value.
package types

import (
	"encoding/hex"
	"fmt"
)

const (
	// NonceSize in bytes.
	NonceSize = 32
	// RandomnessSize in bytes.
	RandomnessSize = 32
)

// Nonce identifies one randomness round. It is the hash of the block the
// round produces randomness for and doubles as the gossip topic key.
type Nonce [NonceSize]byte

// EmptyNonce is a canonical empty Nonce.
var EmptyNonce = Nonce{}

// BytesToNonce sets the first NonceSize bytes of b to a Nonce.
func BytesToNonce(b []byte) Nonce {
	var n Nonce
	copy(n[:], b)
	return n
}

// HexToNonce converts a hex string (with or without 0x prefix) to a Nonce.
func HexToNonce(s string) (Nonce, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return EmptyNonce, fmt.Errorf("decode nonce hex: %w", err)
	}
	if len(b) != NonceSize {
		return EmptyNonce, fmt.Errorf("wrong nonce length %d", len(b))
	}
	return BytesToNonce(b), nil
}

// Bytes returns the byte representation of the nonce.
func (n Nonce) Bytes() []byte {
	return n[:]
}

// String returns the full hex representation. It is stable and is used as the
// per-round gossip topic suffix.
func (n Nonce) String() string {
	return hex.EncodeToString(n[:])
}

// ShortString returns a shortened hex representation for logging.
func (n Nonce) ShortString() string {
	return hex.EncodeToString(n[:5])
}

// Randomness is the combined output of one completed round.
type Randomness [RandomnessSize]byte

// EmptyRandomness is a canonical empty Randomness.
var EmptyRandomness = Randomness{}

// Bytes returns the byte representation of the randomness.
func (r Randomness) Bytes() []byte {
	return r[:]
}

func (r Randomness) String() string {
	return hex.EncodeToString(r[:])
}

// ShortString returns a shortened hex representation for logging.
func (r Randomness) ShortString() string {
	return hex.EncodeToString(r[:5])
}

// Share is one participant's contribution toward a round's randomness.
// Index is the producer's committee index and deduplicates deliveries of the
// same contribution; Data is opaque to everything but the round crypto.
type Share struct {
	Index uint16
	Data  []byte `scale:"max=1024"`
}
