package beacon

import (
	"github.com/spacemeshos/randomness-beacon/common/types"
)

//go:generate scalegen

// Message carries one serialized randomness share.
type Message struct {
	Share []byte `scale:"max=1088"`
}

// GossipMessage is the wire envelope: the round nonce followed by the share
// message. The nonce doubles as the gossip topic key.
type GossipMessage struct {
	Nonce   types.Nonce
	Message Message
}
