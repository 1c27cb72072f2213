package beacon

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/spacemeshos/randomness-beacon/codec"
	"github.com/spacemeshos/randomness-beacon/common/types"
	"github.com/spacemeshos/randomness-beacon/p2p/pubsub"
)

const (
	waitFor = 5 * time.Second
	tick    = 10 * time.Millisecond
)

type testBeacon struct {
	*Coordinator
	mNet    *Mockgossip
	mLookup *MockkeyLookup
	mBox    *MockroundBox
	netDone chan struct{}
	nonces  chan types.Nonce
	clock   clockwork.FakeClock
}

func newTestBeacon(t *testing.T, opts ...Opt) *testBeacon {
	ctrl := gomock.NewController(t)
	tb := &testBeacon{
		mNet:    NewMockgossip(ctrl),
		mLookup: NewMockkeyLookup(ctrl),
		mBox:    NewMockroundBox(ctrl),
		netDone: make(chan struct{}),
		nonces:  make(chan types.Nonce),
		clock:   clockwork.NewFakeClock(),
	}
	tb.mNet.EXPECT().Done().Return(tb.netDone).AnyTimes()
	defaults := []Opt{
		WithLogger(zaptest.NewLogger(t)),
		WithConfig(UnitTestConfig()),
		WithWallclock(tb.clock),
		withBoxBuilder(func(*KeyboxParts, []byte) (roundBox, error) {
			return tb.mBox, nil
		}),
	}
	tb.Coordinator = New(tb.mNet, tb.mLookup, tb.nonces, append(defaults, opts...)...)
	return tb
}

func idx(i uint16) *uint16 {
	return &i
}

// openRound primes the mocks for one round, feeds the nonce and waits until
// the round's topic was registered. index nil opens the round as an observer.
func (tb *testBeacon) openRound(t *testing.T, nonce types.Nonce, index *uint16) pubsub.GossipHandler {
	t.Helper()
	parts := &KeyboxParts{
		Index:        index,
		Threshold:    tb.config.Threshold,
		Participants: 3,
	}
	tb.mLookup.EXPECT().PublicKeyboxParts(nonce).Return(parts, nil)
	if index != nil {
		parts.StorageKey = []byte{0, byte(*index)}
		tb.mLookup.EXPECT().FetchSecret(gomock.Any(), parts.StorageKey).Return([]byte("secret"), nil)
		tb.mBox.EXPECT().GenerateShare(nonce).Return(&types.Share{Index: *index, Data: []byte("own share")}, nil)
	} else {
		tb.mBox.EXPECT().GenerateShare(nonce).Return(nil, nil)
	}
	handlers := make(chan pubsub.GossipHandler, 1)
	tb.mNet.EXPECT().Register(Topic(nonce), gomock.Any()).Do(func(_ string, h pubsub.GossipHandler) {
		handlers <- h
	})
	tb.nonces <- nonce
	select {
	case h := <-handlers:
		return h
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for the round to open")
		return nil
	}
}

// noneOpening waits until no key lookup is in flight anymore.
func (tb *testBeacon) noneOpening(t *testing.T) {
	t.Helper()
	require.Eventually(t, func() bool {
		tb.mu.Lock()
		defer tb.mu.Unlock()
		return len(tb.opening) == 0
	}, waitFor, tick)
}

func encodeShare(nonce types.Nonce, share *types.Share) []byte {
	return codec.MustEncode(&GossipMessage{
		Nonce:   nonce,
		Message: Message{Share: codec.MustEncode(share)},
	})
}

func TestBeacon_CompletesRound(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()
	defer tb.Stop()

	nonce := types.BytesToNonce([]byte("block 1"))
	handler := tb.openRound(t, nonce, idx(0))

	expected := types.Randomness{1, 2, 3}
	tb.mBox.EXPECT().VerifyShare(nonce, gomock.Any()).Return(true)
	tb.mBox.EXPECT().Combine(nonce, gomock.Any()).Return(expected, nil)
	require.NoError(t, handler(context.Background(), peer.ID("peer"),
		encodeShare(nonce, &types.Share{Index: 1, Data: []byte("peer share")})))

	select {
	case out := <-tb.Results():
		require.Equal(t, nonce, out.Nonce)
		require.Equal(t, expected, out.Randomness)
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for randomness")
	}

	// a late share from yet another producer is accepted but the round never
	// emits a second time
	tb.mBox.EXPECT().VerifyShare(nonce, gomock.Any()).Return(true)
	require.NoError(t, handler(context.Background(), peer.ID("peer"),
		encodeShare(nonce, &types.Share{Index: 2, Data: []byte("late share")})))
	select {
	case out := <-tb.Results():
		t.Fatalf("unexpected second emission for %s", out.Nonce.ShortString())
	default:
	}
}

func TestBeacon_NonParticipantCombines(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()
	defer tb.Stop()

	nonce := types.BytesToNonce([]byte("observed block"))
	handler := tb.openRound(t, nonce, nil)

	tb.mBox.EXPECT().VerifyShare(nonce, gomock.Any()).Return(true).Times(2)
	require.NoError(t, handler(context.Background(), peer.ID("a"),
		encodeShare(nonce, &types.Share{Index: 0, Data: []byte("share 0")})))

	expected := types.Randomness{9}
	tb.mBox.EXPECT().Combine(nonce, gomock.Any()).Return(expected, nil)
	require.NoError(t, handler(context.Background(), peer.ID("b"),
		encodeShare(nonce, &types.Share{Index: 1, Data: []byte("share 1")})))

	select {
	case out := <-tb.Results():
		require.Equal(t, expected, out.Randomness)
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for randomness")
	}
}

func TestBeacon_LookupMissRetries(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()
	defer tb.Stop()

	nonce := types.BytesToNonce([]byte("early block"))
	tb.mLookup.EXPECT().PublicKeyboxParts(nonce).Return(nil, ErrNoKeybox)
	tb.nonces <- nonce
	tb.noneOpening(t)
	require.Zero(t, tb.Running())

	// a later notification for the same nonce retries the lookup
	tb.openRound(t, nonce, idx(0))
	require.Equal(t, 1, tb.Running())
}

func TestBeacon_OwnShareFailureDropsRound(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()
	defer tb.Stop()

	nonce := types.BytesToNonce([]byte("bad key material"))
	tb.mLookup.EXPECT().PublicKeyboxParts(nonce).Return(&KeyboxParts{
		Index:        idx(0),
		StorageKey:   []byte{0, 0},
		Threshold:    tb.config.Threshold,
		Participants: 3,
	}, nil)
	tb.mLookup.EXPECT().FetchSecret(gomock.Any(), gomock.Any()).Return([]byte("secret"), nil)
	tb.mBox.EXPECT().GenerateShare(nonce).Return(nil, context.DeadlineExceeded)
	tb.nonces <- nonce
	tb.noneOpening(t)
	require.Zero(t, tb.Running())
}

func TestBeacon_Rebroadcast(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()
	defer tb.Stop()

	nonce := types.BytesToNonce([]byte("rebroadcast"))
	handler := tb.openRound(t, nonce, idx(0))

	published := make(chan []byte, 2)
	tb.mNet.EXPECT().Publish(gomock.Any(), Topic(nonce), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, data []byte) error {
			published <- data
			return nil
		}).Times(2)

	tb.clock.BlockUntil(1)
	tb.clock.Advance(tb.config.SendInterval)
	select {
	case data := <-published:
		var gm GossipMessage
		require.NoError(t, codec.Decode(data, &gm))
		require.Equal(t, nonce, gm.Nonce)
		var own types.Share
		require.NoError(t, codec.Decode(gm.Message.Share, &own))
		require.EqualValues(t, 0, own.Index)
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for the first rebroadcast")
	}

	tb.clock.BlockUntil(1)
	tb.clock.Advance(tb.config.SendInterval)
	select {
	case <-published:
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for the second rebroadcast")
	}

	// completion stops the ticker; further time passing publishes nothing
	tb.mBox.EXPECT().VerifyShare(nonce, gomock.Any()).Return(true)
	tb.mBox.EXPECT().Combine(nonce, gomock.Any()).Return(types.Randomness{1}, nil)
	require.NoError(t, handler(context.Background(), peer.ID("peer"),
		encodeShare(nonce, &types.Share{Index: 1, Data: []byte("peer share")})))
	<-tb.Results()
	tb.clock.BlockUntil(0)
	tb.clock.Advance(10 * tb.config.SendInterval)
}

func TestBeacon_CombineFailureIsRecoverable(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()
	defer tb.Stop()

	nonce := types.BytesToNonce([]byte("flaky combine"))
	handler := tb.openRound(t, nonce, idx(0))

	tb.mBox.EXPECT().VerifyShare(nonce, gomock.Any()).Return(true).Times(2)
	tb.mBox.EXPECT().Combine(nonce, gomock.Any()).Return(types.EmptyRandomness, context.DeadlineExceeded)
	require.NoError(t, handler(context.Background(), peer.ID("a"),
		encodeShare(nonce, &types.Share{Index: 1, Data: []byte("share 1")})))
	select {
	case <-tb.Results():
		t.Fatal("emitted despite combine failure")
	default:
	}

	// the session stays open and the next share triggers another attempt
	expected := types.Randomness{4, 2}
	tb.mBox.EXPECT().Combine(nonce, gomock.Any()).Return(expected, nil)
	require.NoError(t, handler(context.Background(), peer.ID("b"),
		encodeShare(nonce, &types.Share{Index: 2, Data: []byte("share 2")})))
	select {
	case out := <-tb.Results():
		require.Equal(t, expected, out.Randomness)
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for randomness")
	}
}

func TestBeacon_SlowConsumerDropsOutput(t *testing.T) {
	cfg := UnitTestConfig()
	cfg.ResultBuffer = 1
	tb := newTestBeacon(t, WithConfig(cfg))
	tb.Start()
	defer tb.Stop()

	complete := func(seed string, rand types.Randomness) {
		nonce := types.BytesToNonce([]byte(seed))
		handler := tb.openRound(t, nonce, idx(0))
		tb.mBox.EXPECT().VerifyShare(nonce, gomock.Any()).Return(true)
		tb.mBox.EXPECT().Combine(nonce, gomock.Any()).Return(rand, nil)
		require.NoError(t, handler(context.Background(), peer.ID("peer"),
			encodeShare(nonce, &types.Share{Index: 1, Data: []byte("peer share")})))
	}

	complete("block 1", types.Randomness{1})
	complete("block 2", types.Randomness{2})

	// the buffer held the first output, the second was dropped, and the
	// coordinator still serves new rounds
	require.Equal(t, types.Randomness{1}, (<-tb.Results()).Randomness)
	complete("block 3", types.Randomness{3})
	require.Equal(t, types.Randomness{3}, (<-tb.Results()).Randomness)
}

func TestBeacon_OnFinalized(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()
	defer tb.Stop()

	nonce := types.BytesToNonce([]byte("finalized block"))
	tb.openRound(t, nonce, idx(0))
	require.Equal(t, 1, tb.Running())

	tb.mNet.EXPECT().Unregister(Topic(nonce))
	tb.OnFinalized(nonce)
	require.Zero(t, tb.Running())
	// idempotent; unknown nonces are fine too
	tb.OnFinalized(nonce)
	tb.OnFinalized(types.BytesToNonce([]byte("never seen")))

	// a late notification for the retired nonce opens nothing. The follow-up
	// round proves the loop consumed it.
	tb.nonces <- nonce
	tb.openRound(t, types.BytesToNonce([]byte("next block")), idx(0))
	require.Equal(t, 1, tb.Running())
}

func TestBeacon_RetireDuringOpening(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()
	defer tb.Stop()

	// stall the key lookup so the retirement lands mid-open
	nonce := types.BytesToNonce([]byte("finalized early"))
	entered := make(chan struct{})
	release := make(chan struct{})
	tb.mLookup.EXPECT().PublicKeyboxParts(nonce).DoAndReturn(func(types.Nonce) (*KeyboxParts, error) {
		close(entered)
		<-release
		return &KeyboxParts{
			Index:        idx(0),
			StorageKey:   []byte{0, 0},
			Threshold:    tb.config.Threshold,
			Participants: 3,
		}, nil
	})
	tb.mLookup.EXPECT().FetchSecret(gomock.Any(), gomock.Any()).Return([]byte("secret"), nil)
	tb.mBox.EXPECT().GenerateShare(nonce).Return(&types.Share{Index: 0, Data: []byte("own share")}, nil)

	tb.nonces <- nonce
	select {
	case <-entered:
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for the key lookup")
	}
	tb.OnFinalized(nonce)
	close(release)

	// no session survives and no topic gets registered (the mocks reject an
	// unexpected Register)
	tb.noneOpening(t)
	require.Zero(t, tb.Running())
}

func TestBeacon_DuplicateNotificationIsIgnored(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()
	defer tb.Stop()

	nonce := types.BytesToNonce([]byte("block 1"))
	tb.openRound(t, nonce, idx(0))
	// no lookup or register expectations: the mocks reject a second open
	tb.nonces <- nonce
	tb.openRound(t, types.BytesToNonce([]byte("block 2")), idx(0))
	require.Equal(t, 2, tb.Running())
}

func TestBeacon_StopsWithTransport(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()

	stopped := make(chan struct{})
	go func() {
		tb.eg.Wait()
		close(stopped)
	}()
	close(tb.netDone)
	select {
	case <-stopped:
	case <-time.After(waitFor):
		t.Fatal("run loop did not stop with the transport")
	}
	tb.Stop()
}

func TestBeacon_DrainsAfterNonceStreamCloses(t *testing.T) {
	tb := newTestBeacon(t)
	tb.Start()
	defer tb.Stop()

	nonce := types.BytesToNonce([]byte("last block"))
	handler := tb.openRound(t, nonce, idx(0))
	close(tb.nonces)

	stopped := make(chan struct{})
	go func() {
		tb.eg.Wait()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("terminated with a round still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	tb.mBox.EXPECT().VerifyShare(nonce, gomock.Any()).Return(true)
	tb.mBox.EXPECT().Combine(nonce, gomock.Any()).Return(types.Randomness{1}, nil)
	require.NoError(t, handler(context.Background(), peer.ID("peer"),
		encodeShare(nonce, &types.Share{Index: 1, Data: []byte("peer share")})))
	select {
	case <-stopped:
	case <-time.After(waitFor):
		t.Fatal("run loop did not terminate after the last round completed")
	}
}
