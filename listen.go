package combus

import (
	"context"
	"fmt"

	"github.com/RidgeA/combus/transport"
)

type (
	listener struct {
		eventType  string
		handler    Handler
		throughput uint
		limit      chan struct{}
		sub        transport.Subscription
	}

	// Deferred is a reply computed away from the bus task queue. A handler
	// returns one when it has to wait for something.
	Deferred struct {
		fn func(ctx context.Context) (interface{}, error)
	}

	// replyTask runs a handler for one delivered call and publishes its
	// result on the caller's issuer channel.
	replyTask struct {
		bus      *Bus
		listener *listener
		call     *Envelope
	}
)

// Defer wraps work that may block. Returned from a handler, it frees the task
// queue for the next handler; fn runs on its own goroutine and its result is
// queued for publishing once fn returns.
func Defer(fn func(ctx context.Context) (interface{}, error)) *Deferred {
	return &Deferred{fn: fn}
}

// SetHandlerThroughput limits how many deferred replies of the listener are
// computed at once. Zero means no limit.
func SetHandlerThroughput(throughput uint) HandlerOptionsFunc {
	return func(l *listener) {
		l.throughput = throughput
	}
}

// Listen registers h as a persistent responder on eventType. Whatever h
// returns is published on the call's issuer channel.
//
// Handlers run one at a time on the bus task queue, in the order calls and
// listeners were delivered, so h must not block: a handler that waits on I/O,
// timers or another call returns Defer instead.
//
// Several listeners may share an event type. All of them are invoked with the
// same envelope and all of them reply, but the caller settles with the reply
// that is published first; the rest are dropped. Handlers that answer
// directly reply in registration order, so the first registered one wins.
func (b *Bus) Listen(eventType string, h Handler, options ...HandlerOptionsFunc) error {
	if eventType == "" {
		return ErrEmptyType
	}
	if h == nil {
		return ErrNilHandler
	}

	l := &listener{
		eventType: eventType,
		handler:   h,
	}
	for _, setter := range options {
		setter(l)
	}
	if l.throughput > 0 {
		l.limit = make(chan struct{}, l.throughput)
	}

	if b.isClosed() {
		return ErrShutdown
	}

	b.debug("Register handler for %s", eventType)
	sub, err := b.t.Subscribe(eventType, func(e *Envelope) {
		b.schedule(l, e)
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", eventType, err)
	}
	l.sub = sub

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		if err := b.t.Unsubscribe(sub); err != nil {
			b.errorf("Error while removing listener for %s: %s", eventType, err.Error())
		}
		return ErrShutdown
	}
	b.listeners = append(b.listeners, l)
	b.mu.Unlock()
	return nil
}

// ListenFunc is Listen for a plain function.
func (b *Bus) ListenFunc(eventType string, f HandlerFunc, options ...HandlerOptionsFunc) error {
	if f == nil {
		return ErrNilHandler
	}
	return b.Listen(eventType, f, options...)
}

func (b *Bus) schedule(l *listener, e *Envelope) {
	if !b.track() {
		return
	}

	task := replyTask{
		bus:      b,
		listener: l,
		call:     e,
	}
	b.queue.push(task.run)
}

// track counts one unit of work that Shutdown waits for. It fails once the
// bus is shut down.
func (b *Bus) track() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	b.tasks.Add(1)
	return true
}

func (t replyTask) run() {
	b := t.bus
	defer b.tasks.Done()

	result, err := invoke(func() (interface{}, error) {
		return t.listener.handler.Handle(b.ctx, t.call)
	})
	if err != nil {
		t.fail(err)
		return
	}

	if d, ok := result.(*Deferred); ok && d != nil {
		b.tasks.Add(1)
		go t.await(d)
		return
	}
	t.reply(result)
}

// await computes a deferred reply and queues its publishing.
func (t replyTask) await(d *Deferred) {
	b, l := t.bus, t.listener
	defer b.tasks.Done()

	if l.limit != nil {
		select {
		case l.limit <- struct{}{}:
			defer func() { <-l.limit }()
		case <-b.ctx.Done():
			return
		}
	}

	result, err := invoke(func() (interface{}, error) {
		return d.fn(b.ctx)
	})
	if err != nil {
		t.fail(err)
		return
	}

	b.tasks.Add(1)
	b.queue.push(func() {
		defer b.tasks.Done()
		t.reply(result)
	})
}

func (t replyTask) reply(result interface{}) {
	b, l := t.bus, t.listener
	reply := transport.NewEnvelope(l.eventType, l.eventType, result)
	if err := b.t.Publish(t.call.Issuer, reply); err != nil {
		b.errorf("Error while replying to %s: %s", t.call.Issuer, err.Error())
		return
	}
	b.metrics.replies.WithLabelValues(l.eventType).Inc()
}

func (t replyTask) fail(err error) {
	b, l := t.bus, t.listener
	b.metrics.failures.WithLabelValues(l.eventType).Inc()
	b.errorf("Handler for %s failed, issuer %s gets no reply: %s", l.eventType, t.call.Issuer, err.Error())
}

func invoke(f func() (interface{}, error)) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return f()
}
