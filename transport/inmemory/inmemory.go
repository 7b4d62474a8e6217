// In-memory implementation of transport.
// Envelopes are delivered synchronously, in subscription order, to every
// subscriber registered on the channel at the moment of publishing.

package inmemory

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/RidgeA/combus/transport"
)

var (
	ErrShutdown            = errors.New("inmemory transport is shut down")
	ErrUnknownSubscription = errors.New("unknown subscription")
)

type (
	InMemory struct {
		mu            sync.Mutex
		subscriptions map[string][]*subscription
		initialized   bool
		closed        bool
	}

	subscription struct {
		channel string
		sFunc   transport.SubscribeFunc
		removed int32
	}
)

func (s *subscription) Channel() string {
	return s.channel
}

func New() *InMemory {
	t := &InMemory{}
	_ = t.Initialize()
	return t
}

func (t *InMemory) Initialize() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.initialized {
		t.subscriptions = make(map[string][]*subscription)
		t.initialized = true
	}
	return nil
}

// Shutdown drops every subscription. Publish and Subscribe fail afterwards.
func (t *InMemory) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, subs := range t.subscriptions {
		for _, s := range subs {
			atomic.StoreInt32(&s.removed, 1)
		}
	}
	t.subscriptions = make(map[string][]*subscription)
	t.closed = true
}

func (t *InMemory) Subscribe(channel string, f transport.SubscribeFunc) (transport.Subscription, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrShutdown
	}
	sub := &subscription{
		channel: channel,
		sFunc:   f,
	}
	t.subscriptions[channel] = append(t.subscriptions[channel], sub)
	return sub, nil
}

// Unsubscribe removes the subscription. The list is rebuilt rather than
// modified in place, so a Publish already iterating a snapshot is unaffected
// apart from skipping the removed subscriber.
func (t *InMemory) Unsubscribe(s transport.Subscription) error {
	sub, ok := s.(*subscription)
	if !ok || sub == nil {
		return ErrUnknownSubscription
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !atomic.CompareAndSwapInt32(&sub.removed, 0, 1) {
		return nil
	}

	current := t.subscriptions[sub.channel]
	rest := make([]*subscription, 0, len(current))
	for _, c := range current {
		if c != sub {
			rest = append(rest, c)
		}
	}
	if len(rest) == 0 {
		delete(t.subscriptions, sub.channel)
	} else {
		t.subscriptions[sub.channel] = rest
	}
	return nil
}

// Publish hands e to every current subscriber of channel before returning.
// Subscribers may publish, subscribe or unsubscribe from inside the callback.
func (t *InMemory) Publish(channel string, e *transport.Envelope) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrShutdown
	}
	snapshot := t.subscriptions[channel]
	t.mu.Unlock()

	for _, sub := range snapshot {
		if atomic.LoadInt32(&sub.removed) == 1 {
			continue
		}
		sub.sFunc(e)
	}
	return nil
}

// Subscribers returns the number of live subscriptions on channel.
func (t *InMemory) Subscribers(channel string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subscriptions[channel])
}
