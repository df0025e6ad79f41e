package service

import (
	"sync"

	"portfolio_api/internal/models"
)

const defaultSubscriberBuffer = 16

// FeedOption configures a ModerationFeed.
type FeedOption func(*ModerationFeed)

// WithPublishHook registers fn to be called for every published event.
func WithPublishHook(fn func(models.ModerationEvent)) FeedOption {
	return func(f *ModerationFeed) { f.hook = fn }
}

// WithSubscriberBuffer sets the per-subscriber channel size.
func WithSubscriberBuffer(n int) FeedOption {
	return func(f *ModerationFeed) {
		if n > 0 {
			f.buffer = n
		}
	}
}

// ModerationFeed fans comment moderation events out to subscribers. Publish
// never blocks: a subscriber whose buffer is full misses the event.
type ModerationFeed struct {
	mu     sync.RWMutex
	subs   map[chan models.ModerationEvent]struct{}
	buffer int
	hook   func(models.ModerationEvent)
}

func NewModerationFeed(opts ...FeedOption) *ModerationFeed {
	f := &ModerationFeed{
		subs:   make(map[chan models.ModerationEvent]struct{}),
		buffer: defaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Subscribe returns a channel of events and a cancel func that closes it.
// Cancel is idempotent.
func (f *ModerationFeed) Subscribe() (<-chan models.ModerationEvent, func()) {
	ch := make(chan models.ModerationEvent, f.buffer)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, ch)
			f.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (f *ModerationFeed) Publish(ev models.ModerationEvent) {
	if f.hook != nil {
		f.hook(ev)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for ch := range f.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers reports the number of live subscriptions.
func (f *ModerationFeed) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
