package combus

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/RidgeA/combus/transport"
	"github.com/RidgeA/combus/transport/inmemory"
)

var (
	silentLog = func(format string, args ...interface{}) {}
	errorLog  = log.Printf
)

const defaultName = "combus"

type (
	// Envelope is the {issuer, type, payload} record carried through the bus.
	Envelope = transport.Envelope

	// Handler answers calls delivered on a listened channel. The returned value
	// becomes the payload of the reply, unless it is a *Deferred; a returned
	// error strands the call. Handle runs on the bus task queue and must not
	// block.
	Handler interface {
		Handle(ctx context.Context, e *Envelope) (interface{}, error)
	}

	HandlerFunc func(ctx context.Context, e *Envelope) (interface{}, error)

	LogFunc func(string, ...interface{})

	// IssuerFunc allocates the private reply channel name for one call.
	IssuerFunc func(eventType string) string

	OptionsFunc func(*Bus)

	HandlerOptionsFunc func(*listener)

	// Bus correlates replies to calls on top of a broadcast transport.
	Bus struct {
		errorf, info, debug LogFunc
		t                   transport.Transport
		url                 string
		name                string
		instanceId          string
		issuer              IssuerFunc
		timeout             time.Duration
		metrics             *metrics
		registerer          prometheus.Registerer

		ctx    context.Context
		cancel context.CancelFunc

		mu        sync.Mutex
		closed    bool
		tasks     sync.WaitGroup
		queue     *taskQueue
		listeners []*listener
	}
)

func (f HandlerFunc) Handle(ctx context.Context, e *Envelope) (interface{}, error) {
	return f(ctx, e)
}

func SetError(f LogFunc) OptionsFunc {
	return func(b *Bus) {
		b.errorf = f
	}
}

func SetInfo(f LogFunc) OptionsFunc {
	return func(b *Bus) {
		b.info = f
	}
}

func SetDebug(f LogFunc) OptionsFunc {
	return func(b *Bus) {
		b.debug = f
	}
}

// SetName names the bus. The name is used for the AMQP exchange and as the
// "bus" label of the metrics.
func SetName(name string) OptionsFunc {
	return func(b *Bus) {
		b.name = name
	}
}

// SetUrl selects the AMQP transport connected to url, unless a transport is
// given explicitly with SetTransport.
func SetUrl(url string) OptionsFunc {
	return func(b *Bus) {
		b.url = url
	}
}

func SetTransport(t transport.Transport) OptionsFunc {
	return func(b *Bus) {
		b.t = t
	}
}

func SetIssuer(f IssuerFunc) OptionsFunc {
	return func(b *Bus) {
		b.issuer = f
	}
}

// SetTimeout bounds every pending call. A call with no reply after d is
// canceled and its reply subscription removed. Zero means no bound.
func SetTimeout(d time.Duration) OptionsFunc {
	return func(b *Bus) {
		b.timeout = d
	}
}

// SetMetrics registers the bus collectors with reg.
func SetMetrics(reg prometheus.Registerer) OptionsFunc {
	return func(b *Bus) {
		b.registerer = reg
	}
}

// New creates a bus. Without SetTransport or SetUrl the bus owns a private
// in-memory transport, so independent buses never see each other's traffic.
func New(opts ...OptionsFunc) (*Bus, error) {
	b := &Bus{
		name:   defaultName,
		errorf: errorLog,
		info:   silentLog,
		debug:  silentLog,
		issuer: NewIssuer,
	}

	for _, setter := range opts {
		setter(b)
	}

	b.instanceId = b.createInstanceId()

	if b.t == nil {
		if b.url != "" {
			b.t = transport.NewAMQPTransport(
				b.name,
				b.instanceId,
				b.url,
				transport.SetErrorLog(b.errorf),
			)
		} else {
			b.t = inmemory.New()
		}
	}

	if err := b.t.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize transport: %w", err)
	}

	b.metrics = newMetrics(b.name)
	if b.registerer != nil {
		if err := b.metrics.register(b.registerer); err != nil {
			b.t.Shutdown()
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	b.ctx, b.cancel = context.WithCancel(context.Background())
	b.queue = newTaskQueue()
	b.info("Bus %s started", b.instanceId)
	return b, nil
}

// Shutdown stops accepting calls, removes listeners, cancels pending calls
// with ErrShutdown and waits for running handlers and deferred replies before
// shutting the transport down. It must not be called from a handler.
func (b *Bus) Shutdown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	listeners := b.listeners
	b.listeners = nil
	b.mu.Unlock()

	b.info("Shutting down bus %s", b.instanceId)

	for _, l := range listeners {
		if err := b.t.Unsubscribe(l.sub); err != nil {
			b.errorf("Error while removing listener for %s: %s", l.eventType, err.Error())
		}
	}

	b.cancel()
	b.tasks.Wait()
	b.queue.stop()
	b.t.Shutdown()

	if b.registerer != nil {
		b.metrics.unregister(b.registerer)
	}
}

// Call dispatches payload on eventType and waits for the reply.
func (b *Bus) Call(ctx context.Context, eventType string, payload interface{}) (*Envelope, error) {
	p, err := b.Dispatch(ctx, eventType, payload)
	if err != nil {
		return nil, err
	}
	return p.Wait(ctx)
}

func (b *Bus) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *Bus) createInstanceId() string {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown.host"
	}
	pid := strconv.Itoa(os.Getpid())
	return b.name + "." + pid + "." + host
}
