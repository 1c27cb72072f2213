// Package beacon implements the gossip core of the randomness beacon. For
// every new block nonce it runs one round: it broadcasts this node's share of
// randomness on a fixed interval, collects and verifies peer shares from
// gossip and, once a threshold of distinct verified shares was accumulated,
// combines them into a single randomness value delivered to the consumer of
// Results. Block production blocks on that channel when it needs a seed.
package beacon

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/randomness-beacon/codec"
	"github.com/spacemeshos/randomness-beacon/common/types"
	"github.com/spacemeshos/randomness-beacon/crypto/tbls"
)

const (
	// RBProtocol scopes all beacon gossip topics.
	RBProtocol = "/randomness_beacon"
)

// EngineID tags beacon traffic in gossip message ids.
var EngineID = [4]byte{'r', 'n', 'd', 'b'}

// ErrNoKeybox is returned by a key lookup when no verification material
// exists for a nonce. The corresponding notification is dropped; a later
// notification for the same nonce retries.
var ErrNoKeybox = errors.New("no keybox parts for nonce")

// Topic returns the gossip topic of the round identified by nonce.
func Topic(nonce types.Nonce) string {
	return RBProtocol + "/" + nonce.String()
}

// KeyboxParts is the public part of a round's key material, resolved by the
// key lookup when a round opens.
type KeyboxParts struct {
	// Index is this node's committee index, nil when the node is not a
	// participant of the round. Non-participants still collect and combine.
	Index *uint16
	// StorageKey locates this node's secret key material; only used when
	// Index is set.
	StorageKey []byte
	// VerificationKeys are the commitments of the committee's public
	// polynomial. MasterKey is the free coefficient.
	VerificationKeys [][]byte
	MasterKey        []byte
	Threshold        uint16
	Participants     uint16
}

// RoundOutput is the combined randomness of one completed round.
type RoundOutput struct {
	Nonce      types.Nonce
	Randomness types.Randomness
}

type boxBuilder func(parts *KeyboxParts, secret []byte) (roundBox, error)

func defaultBoxBuilder(parts *KeyboxParts, secret []byte) (roundBox, error) {
	return tbls.NewBox(parts.Index, secret, parts.VerificationKeys, parts.Threshold, parts.Participants)
}

// Opt for configuring the Coordinator.
type Opt func(*Coordinator)

// WithLogger defines the logger for the beacon.
func WithLogger(logger *zap.Logger) Opt {
	return func(c *Coordinator) {
		c.log = logger
	}
}

// WithConfig defines protocol parameters.
func WithConfig(cfg Config) Opt {
	return func(c *Coordinator) {
		c.config = cfg
	}
}

// WithWallclock changes the clock used for rebroadcast timers.
func WithWallclock(clock clockwork.Clock) Opt {
	return func(c *Coordinator) {
		c.wallclock = clock
	}
}

func withBoxBuilder(b boxBuilder) Opt {
	return func(c *Coordinator) {
		c.boxes = b
	}
}

// New creates the round Coordinator. Nonces of imported blocks are consumed
// from nonces; combined randomness is delivered on Results.
func New(net gossip, lookup keyLookup, nonces <-chan types.Nonce, opts ...Opt) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		log:       zap.NewNop(),
		config:    DefaultConfig(),
		wallclock: clockwork.NewRealClock(),
		boxes:     defaultBoxBuilder,

		net:    net,
		lookup: lookup,
		nonces: nonces,

		ctx:         ctx,
		cancel:      cancel,
		sessionDone: make(chan struct{}, 1),
		sessions:    map[types.Nonce]*session{},
		opening:     map[types.Nonce]struct{}{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.results = make(chan RoundOutput, c.config.ResultBuffer)
	retired, err := lru.New[types.Nonce, struct{}](c.config.RetiredRounds)
	if err != nil {
		c.log.Panic("invalid retired rounds bound", zap.Error(err))
	}
	c.retired = retired
	return c
}

// Coordinator drives all in-flight randomness rounds. It owns the session
// map, the transport handle and the outgoing results channel.
type Coordinator struct {
	log       *zap.Logger
	config    Config
	wallclock clockwork.Clock
	boxes     boxBuilder

	net    gossip
	lookup keyLookup
	nonces <-chan types.Nonce

	ctx       context.Context
	cancel    context.CancelFunc
	eg        errgroup.Group
	startOnce sync.Once

	results chan RoundOutput
	// sessionDone wakes the run loop to re-check the termination condition.
	sessionDone chan struct{}

	mu       sync.Mutex
	sessions map[types.Nonce]*session
	opening  map[types.Nonce]struct{}
	retired  *lru.Cache[types.Nonce, struct{}]
}

// Results delivers exactly one output per completed round. The channel stays
// open for the coordinator's lifetime.
func (c *Coordinator) Results() <-chan RoundOutput {
	return c.results
}

// Running returns the number of sessions currently held.
func (c *Coordinator) Running() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// Start launches the run loop. Idempotent.
func (c *Coordinator) Start() {
	c.startOnce.Do(func() {
		c.log.Info("starting beacon", zap.Uint16("threshold", c.config.Threshold),
			zap.Duration("send_interval", c.config.SendInterval))
		c.eg.Go(c.run)
	})
}

// Stop terminates all sessions and waits for the goroutines to finish.
func (c *Coordinator) Stop() {
	c.cancel()
	c.eg.Wait()
	c.log.Info("beacon stopped")
}

// run consumes new-block notifications and termination signals. It returns
// when the transport terminates, when the coordinator is stopped, or when the
// nonce stream is closed and no round can make progress anymore.
func (c *Coordinator) run() error {
	nonces := c.nonces
	for {
		select {
		case <-c.ctx.Done():
			return nil
		case <-c.net.Done():
			c.log.Info("gossip engine terminated, stopping beacon")
			return nil
		case nonce, ok := <-nonces:
			if !ok {
				// nil channel blocks forever; only completions can end us now
				nonces = nil
				if c.active() == 0 {
					return nil
				}
				continue
			}
			c.onNonce(nonce)
		case <-c.sessionDone:
			if nonces == nil && c.active() == 0 {
				return nil
			}
		}
	}
}

// active counts the rounds still awaiting their threshold, including rounds
// whose key lookup is in flight.
func (c *Coordinator) active() int {
	c.mu.Lock()
	sessions := make([]*session, 0, len(c.sessions))
	for _, s := range c.sessions {
		sessions = append(sessions, s)
	}
	n := len(c.opening)
	c.mu.Unlock()
	for _, s := range sessions {
		if !s.isCompleted() {
			n++
		}
	}
	return n
}

func (c *Coordinator) onNonce(nonce types.Nonce) {
	c.mu.Lock()
	if _, exists := c.sessions[nonce]; exists {
		c.mu.Unlock()
		c.log.Debug("round already open", zap.String("nonce", nonce.ShortString()))
		return
	}
	if _, exists := c.opening[nonce]; exists {
		c.mu.Unlock()
		return
	}
	if c.retired.Contains(nonce) {
		c.mu.Unlock()
		c.log.Debug("round already retired", zap.String("nonce", nonce.ShortString()))
		return
	}
	c.opening[nonce] = struct{}{}
	c.mu.Unlock()
	// key material retrieval may block on storage or network, keep it off
	// the loop so other rounds keep ticking
	c.eg.Go(func() error {
		c.openRound(nonce)
		return nil
	})
}

func (c *Coordinator) openRound(nonce types.Nonce) {
	logger := c.log.With(zap.String("nonce", nonce.ShortString()))
	s, err := c.initRound(nonce)
	c.mu.Lock()
	delete(c.opening, nonce)
	if err != nil {
		c.mu.Unlock()
		sessionDropped.Inc()
		logger.Warn("dropping new round notification", zap.Error(err))
		c.wakeup()
		return
	}
	// the round may have been retired while the key lookup was in flight
	if c.retired.Contains(nonce) {
		c.mu.Unlock()
		s.stop()
		sessionDropped.Inc()
		logger.Debug("round retired while opening")
		c.wakeup()
		return
	}
	// registering under the lock keeps retirement atomic: OnFinalized always
	// observes the session and its topic together
	c.net.Register(s.topic, c.HandleShareMessage)
	c.sessions[nonce] = s
	sessionsHeld.Inc()
	c.mu.Unlock()
	sessionStarted.Inc()
	logger.Info("opened randomness round", zap.Bool("participant", len(s.outbound) != 0))
	if len(s.outbound) != 0 {
		c.eg.Go(func() error {
			c.rebroadcast(s)
			return nil
		})
	}
	// with threshold 1 our own share already completes the round
	c.tryComplete(s)
}

func (c *Coordinator) initRound(nonce types.Nonce) (*session, error) {
	parts, err := c.lookup.PublicKeyboxParts(nonce)
	if err != nil {
		return nil, fmt.Errorf("lookup keybox parts: %w", err)
	}
	var secret []byte
	if parts.Index != nil {
		secret, err = c.lookup.FetchSecret(c.ctx, parts.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("fetch secret key material: %w", err)
		}
	}
	box, err := c.boxes(parts, secret)
	if err != nil {
		return nil, fmt.Errorf("create round box: %w", err)
	}
	s := newSession(nonce, box)
	share, err := box.GenerateShare(nonce)
	if err != nil {
		return nil, fmt.Errorf("generate own share: %w", err)
	}
	if share != nil {
		// self-trust: our own share is appended without verification
		s.addShare(share)
		s.outbound = codec.MustEncode(&GossipMessage{
			Nonce:   nonce,
			Message: Message{Share: codec.MustEncode(share)},
		})
	}
	return s, nil
}

// rebroadcast publishes the session's own share every SendInterval until the
// round completes or is retired.
func (c *Coordinator) rebroadcast(s *session) {
	ticker := c.wallclock.NewTicker(c.config.SendInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-s.done:
			return
		case <-ticker.Chan():
			if err := c.net.Publish(c.ctx, s.topic, s.outbound); err != nil {
				c.log.Warn("failed to rebroadcast own share",
					zap.String("nonce", s.nonce.ShortString()),
					zap.Error(err),
				)
			}
		}
	}
}

// tryComplete combines and emits once the session holds a threshold of
// shares. Emission happens at most once per round; a slow or gone consumer
// costs the output but never the coordinator.
func (c *Coordinator) tryComplete(s *session) {
	rand, done, err := s.tryCombine(c.config.Threshold)
	if err != nil {
		c.log.Error("failed to combine shares",
			zap.String("nonce", s.nonce.ShortString()),
			zap.Int("shares", s.size()),
			zap.Error(err),
		)
		return
	}
	if !done {
		return
	}
	sessionCompleted.Inc()
	sharesPerRound.Observe(float64(s.size()))
	c.log.Info("combined randomness for round",
		zap.String("nonce", s.nonce.ShortString()),
		zap.String("randomness", rand.ShortString()),
	)
	select {
	case c.results <- RoundOutput{Nonce: s.nonce, Randomness: rand}:
	default:
		outputsDropped.Inc()
		c.log.Error("randomness consumer is not keeping up, dropping output",
			zap.String("nonce", s.nonce.ShortString()))
	}
	c.wakeup()
}

// OnFinalized retires the round for a nonce that is no longer needed (block
// finalized or pruned from the canonical chain). Late notifications for a
// retired nonce are ignored for as long as the nonce stays in the retention
// cache.
func (c *Coordinator) OnFinalized(nonce types.Nonce) {
	c.mu.Lock()
	s := c.sessions[nonce]
	delete(c.sessions, nonce)
	c.retired.Add(nonce, struct{}{})
	c.mu.Unlock()
	if s == nil {
		return
	}
	s.stop()
	c.net.Unregister(s.topic)
	sessionsHeld.Dec()
	sessionRetired.Inc()
	c.log.Info("retired randomness round",
		zap.String("nonce", nonce.ShortString()),
		zap.Bool("completed", s.isCompleted()),
		zap.Int("shares", s.size()),
	)
	c.wakeup()
}

func (c *Coordinator) getSession(nonce types.Nonce) *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessions[nonce]
}

func (c *Coordinator) wakeup() {
	select {
	case c.sessionDone <- struct{}{}:
	default:
	}
}
