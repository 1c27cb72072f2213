// Package pubsub wraps libp2p gossipsub with the registration surface the
// beacon needs: per-topic handlers installed as validators, dynamic topic
// teardown and a termination signal.
package pubsub

import (
	"context"
	"errors"
	"fmt"
	"sync"

	pubsub "github.com/libp2p/go-libp2p-pubsub"
	pb "github.com/libp2p/go-libp2p-pubsub/pb"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"go.uber.org/zap"

	"github.com/spacemeshos/randomness-beacon/hash"
)

// ErrValidationReject is returned by a GossipHandler to mark a message as
// malformed or malicious. Any other non-nil error downgrades the message to
// ignore: it is dropped without propagating but the peer is not penalized.
var ErrValidationReject = errors.New("validation reject")

// GossipHandler is a function for receiving messages. It is invoked by the
// gossip layer before the message is relayed further.
type GossipHandler = func(context.Context, peer.ID, []byte) error

// Publisher interface for publishing messages.
type Publisher interface {
	Publish(context.Context, string, []byte) error
}

// Subscriber is an interface for subscribing to topics.
type Subscriber interface {
	Register(string, GossipHandler)
	Unregister(string)
}

// PublishSubscriber is a common interface for publishing and subscribing.
type PublishSubscriber interface {
	Publisher
	Subscriber
}

// Config for GossipPubSub.
type Config struct {
	Flood          bool   `mapstructure:"pubsub-flood"`
	MaxMessageSize int    `mapstructure:"pubsub-max-message-size"`
	EngineID       [4]byte
}

// DefaultConfig for GossipPubSub.
func DefaultConfig() Config {
	return Config{Flood: true}
}

// New creates a GossipPubSub instance on top of a libp2p host. The returned
// instance terminates together with ctx.
func New(ctx context.Context, logger *zap.Logger, h host.Host, cfg Config) (*GossipPubSub, error) {
	opts := []pubsub.Option{
		pubsub.WithFloodPublish(cfg.Flood),
		pubsub.WithMessageIdFn(msgID(cfg.EngineID)),
		pubsub.WithNoAuthor(),
		pubsub.WithMessageSignaturePolicy(pubsub.StrictNoSign),
	}
	if cfg.MaxMessageSize != 0 {
		opts = append(opts, pubsub.WithMaxMessageSize(cfg.MaxMessageSize))
	}
	ps, err := pubsub.NewGossipSub(ctx, h, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gossipsub instance: %w", err)
	}
	gp := &GossipPubSub{
		logger: logger,
		pubsub: ps,
		host:   h,
		done:   make(chan struct{}),
		topics: map[string]*topicHandle{},
	}
	go func() {
		<-ctx.Done()
		close(gp.done)
	}()
	return gp, nil
}

type topicHandle struct {
	topic  *pubsub.Topic
	cancel pubsub.RelayCancelFunc
}

// GossipPubSub is a wrapper around the gossipsub protocol.
type GossipPubSub struct {
	logger *zap.Logger
	pubsub *pubsub.PubSub
	host   host.Host
	done   chan struct{}

	mu     sync.RWMutex
	topics map[string]*topicHandle
}

// Register installs handler as the validator for topic and joins the topic
// so that accepted messages are relayed to the mesh.
func (ps *GossipPubSub) Register(topic string, handler GossipHandler) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if _, exist := ps.topics[topic]; exist {
		ps.logger.Panic("already registered a topic", zap.String("topic", topic))
	}
	err := ps.pubsub.RegisterTopicValidator(
		topic,
		func(ctx context.Context, pid peer.ID, msg *pubsub.Message) pubsub.ValidationResult {
			err := handler(ctx, pid, msg.Data)
			if err != nil {
				ps.logger.Debug("topic validation failed",
					zap.String("topic", topic),
					zap.Error(err),
				)
			}
			switch {
			case errors.Is(err, ErrValidationReject):
				return pubsub.ValidationReject
			case err != nil:
				return pubsub.ValidationIgnore
			default:
				return pubsub.ValidationAccept
			}
		},
	)
	if err != nil {
		ps.logger.Panic("failed to register topic validator",
			zap.String("topic", topic), zap.Error(err))
	}
	topich, err := ps.pubsub.Join(topic)
	if err != nil {
		ps.logger.Panic("failed to join a topic", zap.String("topic", topic), zap.Error(err))
	}
	cancel, err := topich.Relay()
	if err != nil {
		ps.logger.Panic("failed to enable relay for topic",
			zap.String("topic", topic), zap.Error(err))
	}
	ps.topics[topic] = &topicHandle{topic: topich, cancel: cancel}
}

// Unregister tears a dynamic topic down. Safe to call for topics that were
// never registered.
func (ps *GossipPubSub) Unregister(topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	th, exist := ps.topics[topic]
	if !exist {
		return
	}
	delete(ps.topics, topic)
	if err := ps.pubsub.UnregisterTopicValidator(topic); err != nil {
		ps.logger.Warn("failed to unregister topic validator",
			zap.String("topic", topic), zap.Error(err))
	}
	th.cancel()
	if err := th.topic.Close(); err != nil {
		ps.logger.Warn("failed to close topic",
			zap.String("topic", topic), zap.Error(err))
	}
}

// Publish message to the topic. The topic must have been registered.
func (ps *GossipPubSub) Publish(ctx context.Context, topic string, msg []byte) error {
	ps.mu.RLock()
	th := ps.topics[topic]
	ps.mu.RUnlock()
	if th == nil {
		return fmt.Errorf("not registered to topic %s", topic)
	}
	if err := th.topic.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to topic %s: %w", topic, err)
	}
	return nil
}

// Done is closed when the underlying gossip engine terminated.
func (ps *GossipPubSub) Done() <-chan struct{} {
	return ps.done
}

// ProtocolPeers returns the list of peers subscribed to a given topic.
func (ps *GossipPubSub) ProtocolPeers(topic string) []peer.ID {
	return ps.pubsub.ListPeers(topic)
}

func msgID(engine [4]byte) func(msg *pb.Message) string {
	return func(msg *pb.Message) string {
		hasher := hash.New()
		hasher.Write(engine[:])
		if msg.Topic != nil {
			hasher.Write([]byte(*msg.Topic))
		}
		hasher.Write(msg.Data)
		return string(hasher.Sum(nil))
	}
}
