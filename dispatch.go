package combus

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/RidgeA/combus/transport"
)

const (
	armed int32 = iota
	fired
	canceled
)

// Pending is the eventual reply of one Dispatch. It settles at most once,
// either with the first envelope published on its issuer channel or with an
// error when the call is canceled.
type Pending struct {
	bus       *Bus
	issuer    string
	eventType string

	state int32
	done  chan struct{}
	reply *Envelope
	err   error

	mu    sync.Mutex
	sub   transport.Subscription
	stops []func() bool
}

func newPending(b *Bus, issuer, eventType string) *Pending {
	return &Pending{
		bus:       b,
		issuer:    issuer,
		eventType: eventType,
		done:      make(chan struct{}),
	}
}

// Dispatch publishes payload on the eventType channel and returns the pending
// reply. Every listener of eventType receives the same envelope.
//
// The reply subscription is registered before the call is published. It is
// removed by the first reply, or when ctx is done, the bus timeout expires or
// the bus shuts down. With a background context, no timeout and no listener
// the call never settles.
func (b *Bus) Dispatch(ctx context.Context, eventType string, payload interface{}) (*Pending, error) {
	if eventType == "" {
		return nil, ErrEmptyType
	}
	if b.isClosed() {
		return nil, ErrShutdown
	}

	issuer := b.issuer(eventType)
	p := newPending(b, issuer, eventType)

	b.debug("Dispatching %s, issuer: %s", eventType, issuer)

	b.metrics.pending.Inc()
	sub, err := b.t.Subscribe(issuer, p.deliver)
	if err != nil {
		b.metrics.pending.Dec()
		return nil, fmt.Errorf("subscribe to %s: %w", issuer, err)
	}
	p.mu.Lock()
	p.sub = sub
	p.mu.Unlock()
	if atomic.LoadInt32(&p.state) != armed {
		p.release()
	}

	if err := b.t.Publish(eventType, transport.NewEnvelope(issuer, eventType, payload)); err != nil {
		p.cancel(err)
		return nil, fmt.Errorf("publish %s: %w", eventType, err)
	}
	b.metrics.dispatched.WithLabelValues(eventType).Inc()

	p.watch(ctx)
	return p, nil
}

// watch reclaims the call when the caller's context, the bus timeout or the
// bus lifetime ends first.
func (p *Pending) watch(ctx context.Context) {
	b := p.bus
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		p.addStop(func() bool {
			cancel()
			return true
		})
	}

	p.addStop(context.AfterFunc(ctx, func() {
		if p.cancel(fmt.Errorf("%w: %w", ErrCanceled, context.Cause(ctx))) {
			b.info("Call %s canceled: %s", p.issuer, context.Cause(ctx))
		}
	}))
	p.addStop(context.AfterFunc(b.ctx, func() {
		p.cancel(ErrShutdown)
	}))
}

func (p *Pending) addStop(stop func() bool) {
	p.mu.Lock()
	p.stops = append(p.stops, stop)
	p.mu.Unlock()

	if atomic.LoadInt32(&p.state) != armed {
		p.release()
	}
}

// deliver is the one-shot subscriber of the issuer channel.
func (p *Pending) deliver(e *Envelope) {
	if !atomic.CompareAndSwapInt32(&p.state, armed, fired) {
		return
	}
	p.reply = e
	p.release()
	close(p.done)

	p.bus.metrics.pending.Dec()
	p.bus.metrics.settled.WithLabelValues(p.eventType).Inc()
	p.bus.debug("Got reply for %s, issuer: %s", p.eventType, p.issuer)
}

func (p *Pending) cancel(err error) bool {
	if !atomic.CompareAndSwapInt32(&p.state, armed, canceled) {
		return false
	}
	p.err = err
	p.release()
	close(p.done)

	p.bus.metrics.pending.Dec()
	p.bus.metrics.canceled.WithLabelValues(p.eventType).Inc()
	return true
}

// release removes the reply subscription and detaches the watchers. It may
// run more than once; later runs only see what was added since.
func (p *Pending) release() {
	p.mu.Lock()
	sub, stops := p.sub, p.stops
	p.sub, p.stops = nil, nil
	p.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
	if sub != nil {
		if err := p.bus.t.Unsubscribe(sub); err != nil {
			p.bus.errorf("Error while removing reply listener %s: %s", p.issuer, err.Error())
		}
	}
}

// Issuer returns the private reply channel of the call.
func (p *Pending) Issuer() string {
	return p.issuer
}

// Done is closed once the call settles.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call settles or ctx is done. Giving up on ctx does not
// cancel the call; use Cancel or the context passed to Dispatch for that.
func (p *Pending) Wait(ctx context.Context) (*Envelope, error) {
	select {
	case <-p.done:
		return p.reply, p.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the reply without blocking. ok is false while the call is
// pending or when it was canceled.
func (p *Pending) Result() (reply *Envelope, ok bool) {
	select {
	case <-p.done:
		return p.reply, p.err == nil
	default:
		return nil, false
	}
}

// Cancel reclaims a call that has not settled yet. It reports whether the
// call was still pending.
func (p *Pending) Cancel() bool {
	return p.cancel(ErrCanceled)
}
