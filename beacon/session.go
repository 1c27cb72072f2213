package beacon

import (
	"sync"

	"github.com/spacemeshos/randomness-beacon/common/types"
)

// session is the per-nonce state bundle: the round crypto capability, the
// accumulated verified shares and the optional outbound rebroadcast payload.
// A session exists from the moment its nonce was observed (and the key lookup
// succeeded) until the round is retired.
type session struct {
	nonce types.Nonce
	topic string
	box   roundBox
	// outbound is the encoded GossipMessage carrying our own share. Empty
	// when this node is not a participant of the round.
	outbound []byte

	mu        sync.Mutex
	shares    []*types.Share
	seen      map[uint16]struct{}
	completed bool

	// done is closed once the session stops making progress (round completed
	// or retired). Stops the rebroadcast ticker.
	done     chan struct{}
	stopOnce sync.Once
}

func newSession(nonce types.Nonce, box roundBox) *session {
	return &session{
		nonce: nonce,
		topic: Topic(nonce),
		box:   box,
		seen:  map[uint16]struct{}{},
		done:  make(chan struct{}),
	}
}

// addShare appends a verified share unless a share with the same producer
// index was already accepted. Shares are still accepted after completion:
// they are harmless and keeping them simplifies the handler.
func (s *session) addShare(share *types.Share) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[share.Index]; ok {
		return false
	}
	s.seen[share.Index] = struct{}{}
	s.shares = append(s.shares, share)
	return true
}

// tryCombine combines the accumulated shares the first time their count
// reaches threshold. Subsequent calls are no-ops: completion is one-way.
func (s *session) tryCombine(threshold uint16) (types.Randomness, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.completed || len(s.shares) < int(threshold) {
		return types.EmptyRandomness, false, nil
	}
	rand, err := s.box.Combine(s.nonce, s.shares)
	if err != nil {
		return types.EmptyRandomness, false, err
	}
	s.completed = true
	s.stop()
	return rand, true, nil
}

func (s *session) isCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}

func (s *session) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shares)
}

func (s *session) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}
