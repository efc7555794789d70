// Package bus is a small typed publish/subscribe channel used to signal
// "collection changed" between the fetch layer and the dashboard. Delivery
// is at-least-once per live subscriber with no ordering guarantee across
// topics; a subscriber that falls behind misses the signal and re-syncs on
// its next refresh pass, so publishes never block.
package bus

import "sync"

// Topic identifies one independently-fetched collection.
type Topic string

const (
	TopicTransactions Topic = "transactions"
	TopicHoldings     Topic = "holdings"
	TopicCatalog      Topic = "catalog"
	TopicCapital      Topic = "capital"
	TopicQuotes       Topic = "quotes"
)

// Bus fans published topics out to subscribers.
type Bus struct {
	mu   sync.Mutex
	subs []chan Topic
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber and returns its channel plus a
// cancel function. The channel is buffered; pending signals are dropped
// once the buffer fills.
func (b *Bus) Subscribe() (<-chan Topic, func()) {
	ch := make(chan Topic, 16)

	b.mu.Lock()
	b.subs = append(b.subs, ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subs {
			if sub == ch {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// Publish signals a topic change to every subscriber without blocking.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- topic:
		default:
		}
	}
}
