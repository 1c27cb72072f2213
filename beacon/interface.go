package beacon

import (
	"context"

	"github.com/spacemeshos/randomness-beacon/common/types"
	"github.com/spacemeshos/randomness-beacon/p2p/pubsub"
)

//go:generate mockgen -typed -package=beacon -destination=./mocks.go -source=./interface.go

// gossip is the transport handle: publish and per-topic registration from the
// pubsub wrapper, plus the termination signal of the underlying engine.
type gossip interface {
	pubsub.PublishSubscriber
	Done() <-chan struct{}
}

// keyLookup resolves the public key material for a round and fetches this
// node's secret key material out of band. PublicKeyboxParts returns
// ErrNoKeybox when the material for a nonce is not (yet) available.
type keyLookup interface {
	PublicKeyboxParts(types.Nonce) (*KeyboxParts, error)
	FetchSecret(context.Context, []byte) ([]byte, error)
}

// roundBox is the per-round crypto capability: generate this node's share,
// verify peer shares and combine a threshold set into randomness.
type roundBox interface {
	GenerateShare(types.Nonce) (*types.Share, error)
	VerifyShare(types.Nonce, *types.Share) bool
	Combine(types.Nonce, []*types.Share) (types.Randomness, error)
}
