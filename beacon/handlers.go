package beacon

import (
	"context"
	"fmt"

	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/spacemeshos/randomness-beacon/codec"
	"github.com/spacemeshos/randomness-beacon/common/types"
	"github.com/spacemeshos/randomness-beacon/p2p/pubsub"
)

// HandleShareMessage handles a share from gossip. It is registered as the
// topic validator: a malformed envelope is rejected before it propagates,
// everything else only decides whether we relay. Cryptographic verification
// happens here, per share, not in the transport filter.
func (c *Coordinator) HandleShareMessage(ctx context.Context, peer peer.ID, raw []byte) error {
	var gm GossipMessage
	if err := codec.Decode(raw, &gm); err != nil {
		malformedError.Inc()
		return fmt.Errorf("%w: decode gossip message: %s", pubsub.ErrValidationReject, err.Error())
	}
	s := c.getSession(gm.Nonce)
	if s == nil {
		notActiveError.Inc()
		return fmt.Errorf("no active round for nonce %s", gm.Nonce.ShortString())
	}
	var share types.Share
	if err := codec.Decode(gm.Message.Share, &share); err != nil {
		malformedError.Inc()
		return fmt.Errorf("%w: decode share: %s", pubsub.ErrValidationReject, err.Error())
	}
	if !s.box.VerifyShare(gm.Nonce, &share) {
		invalidShareError.Inc()
		c.log.Debug("share failed verification",
			zap.String("nonce", gm.Nonce.ShortString()),
			zap.Stringer("sender", peer),
			zap.Uint16("index", share.Index),
		)
		return fmt.Errorf("share for round %s failed verification", gm.Nonce.ShortString())
	}
	if !s.addShare(&share) {
		duplicateShareError.Inc()
		return fmt.Errorf("duplicate share from index %d for round %s", share.Index, gm.Nonce.ShortString())
	}
	sharesAccepted.Inc()
	c.log.Debug("accepted share",
		zap.String("nonce", gm.Nonce.ShortString()),
		zap.Uint16("index", share.Index),
		zap.Int("total", s.size()),
	)
	c.tryComplete(s)
	return nil
}
