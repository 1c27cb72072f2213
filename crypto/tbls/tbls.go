// Package tbls implements the per-round crypto capability of the randomness
// beacon with BLS threshold signatures over bn256. A share is a partial
// signature over the round nonce; the combined randomness is the digest of
// the recovered group signature, so any threshold subset of valid shares
// yields the same value.
package tbls

import (
	"fmt"

	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/kyber/v3/pairing/bn256"
	"go.dedis.ch/kyber/v3/share"
	"go.dedis.ch/kyber/v3/sign/tbls"

	"github.com/spacemeshos/randomness-beacon/common/types"
	"github.com/spacemeshos/randomness-beacon/hash"
)

// Box is bound to one round's key material.
type Box struct {
	suite *bn256.Suite
	priv  *share.PriShare
	pub   *share.PubPoly
	t, n  int
}

// NewBox creates a round box from the committee's verification keys (the
// commitments of the public polynomial) and, for participants, this node's
// secret key material. index is nil for observers; they can still verify and
// combine.
func NewBox(index *uint16, secret []byte, verificationKeys [][]byte, threshold, participants uint16) (*Box, error) {
	if threshold == 0 || participants < threshold {
		return nil, fmt.Errorf("invalid committee size %d for threshold %d", participants, threshold)
	}
	suite := bn256.NewSuite()
	commits := make([]kyber.Point, len(verificationKeys))
	for i, buf := range verificationKeys {
		p := suite.G2().Point()
		if err := p.UnmarshalBinary(buf); err != nil {
			return nil, fmt.Errorf("unmarshal verification key %d: %w", i, err)
		}
		commits[i] = p
	}
	pub := share.NewPubPoly(suite.G2(), suite.G2().Point().Base(), commits)
	var priv *share.PriShare
	if index != nil {
		sc := suite.G2().Scalar()
		if err := sc.UnmarshalBinary(secret); err != nil {
			return nil, fmt.Errorf("unmarshal secret key material: %w", err)
		}
		priv = &share.PriShare{I: int(*index), V: sc}
	}
	return &Box{
		suite: suite,
		priv:  priv,
		pub:   pub,
		t:     int(threshold),
		n:     int(participants),
	}, nil
}

// GenerateShare signs the nonce with this node's secret share. Returns nil
// when the node is not a participant of the round.
func (b *Box) GenerateShare(nonce types.Nonce) (*types.Share, error) {
	if b.priv == nil {
		return nil, nil
	}
	sig, err := tbls.Sign(b.suite, b.priv, nonce.Bytes())
	if err != nil {
		return nil, fmt.Errorf("sign nonce: %w", err)
	}
	return &types.Share{Index: uint16(b.priv.I), Data: sig}, nil
}

// VerifyShare checks a peer share against the public polynomial. The declared
// index must match the one embedded in the signature payload, otherwise a
// peer could smuggle the same contribution under several identities.
func (b *Box) VerifyShare(nonce types.Nonce, s *types.Share) bool {
	embedded, err := tbls.SigShare(s.Data).Index()
	if err != nil || embedded != int(s.Index) {
		return false
	}
	return tbls.Verify(b.suite, b.pub, nonce.Bytes(), s.Data) == nil
}

// Combine recovers the group signature from a threshold set of shares and
// digests it into the round randomness.
func (b *Box) Combine(nonce types.Nonce, shares []*types.Share) (types.Randomness, error) {
	sigs := make([][]byte, 0, len(shares))
	for _, s := range shares {
		sigs = append(sigs, s.Data)
	}
	sig, err := tbls.Recover(b.suite, b.pub, nonce.Bytes(), sigs, b.t, b.n)
	if err != nil {
		return types.EmptyRandomness, fmt.Errorf("recover group signature: %w", err)
	}
	return types.Randomness(hash.Sum(sig)), nil
}

// Keybox is the output of a trusted-dealer key generation: the committee's
// verification keys plus every participant's secret share, indexed by
// committee position.
type Keybox struct {
	VerificationKeys [][]byte
	MasterKey        []byte
	Secrets          [][]byte
	Threshold        uint16
	Participants     uint16
}

// Deal generates key material for a committee. It stands in for the DKG
// protocol on devnets and in tests.
func Deal(threshold, participants uint16) (*Keybox, error) {
	if threshold == 0 || participants < threshold {
		return nil, fmt.Errorf("invalid committee size %d for threshold %d", participants, threshold)
	}
	suite := bn256.NewSuite()
	priPoly := share.NewPriPoly(suite.G2(), int(threshold), nil, suite.RandomStream())
	pubPoly := priPoly.Commit(suite.G2().Point().Base())

	_, commits := pubPoly.Info()
	kb := &Keybox{Threshold: threshold, Participants: participants}
	for i, commit := range commits {
		buf, err := commit.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("marshal verification key %d: %w", i, err)
		}
		kb.VerificationKeys = append(kb.VerificationKeys, buf)
	}
	master, err := pubPoly.Commit().MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal master key: %w", err)
	}
	kb.MasterKey = master
	for _, ps := range priPoly.Shares(int(participants)) {
		buf, err := ps.V.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("marshal secret share %d: %w", ps.I, err)
		}
		kb.Secrets = append(kb.Secrets, buf)
	}
	return kb, nil
}
