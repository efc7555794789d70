package bus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan Topic) Topic {
	t.Helper()
	select {
	case topic := <-ch:
		return topic
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for signal")
		return ""
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := New()
	ch1, cancel1 := b.Subscribe()
	defer cancel1()
	ch2, cancel2 := b.Subscribe()
	defer cancel2()

	b.Publish(TopicTransactions)

	assert.Equal(t, TopicTransactions, recv(t, ch1))
	assert.Equal(t, TopicTransactions, recv(t, ch2))
}

func TestCancelStopsDelivery(t *testing.T) {
	b := New()
	ch, cancel := b.Subscribe()
	cancel()

	b.Publish(TopicHoldings)

	_, open := <-ch
	assert.False(t, open, "cancelled subscriber channel is closed")
}

func TestPublishNeverBlocks(t *testing.T) {
	b := New()
	_, cancel := b.Subscribe()
	defer cancel()

	// Far more signals than the subscriber buffer holds; extras drop.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			b.Publish(TopicQuotes)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestSubscriberSeesLatestAfterDrops(t *testing.T) {
	b := New()
	ch, cancel := b.Subscribe()
	defer cancel()

	for i := 0; i < 100; i++ {
		b.Publish(TopicCapital)
	}

	// At least one signal got through; a rebuild on any of them re-syncs.
	require.Equal(t, TopicCapital, recv(t, ch))
}
