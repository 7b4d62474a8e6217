package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/streadway/amqp"
)

var ErrNotInitialized = errors.New("amqp transport is not initialized")

type (
	AMQPTransport struct {
		url          string
		name         string
		tag          string
		exchangeName string
		extConn      bool
		dial         dialFunc
		errorf       func(string, ...interface{})

		mu            sync.Mutex
		conn          amqpConnection
		out           amqpChannel
		subscriptions map[string]*amqpSubscription
		seq           uint64
		wg            sync.WaitGroup
	}

	OptionsFunc func(transport *AMQPTransport)

	amqpSubscription struct {
		channel  string
		consumer string
		ch       amqpChannel
	}

	// amqpChannel is the subset of *amqp.Channel the transport relies on.
	amqpChannel interface {
		ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
		QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
		QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
		Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
		Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
		Cancel(consumer string, noWait bool) error
		Close() error
	}

	amqpConnection interface {
		Channel() (amqpChannel, error)
		Close() error
	}

	dialFunc func(url string) (amqpConnection, error)

	connection struct {
		*amqp.Connection
	}
)

func (s *amqpSubscription) Channel() string {
	return s.channel
}

func (c connection) Channel() (amqpChannel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func dial(url string) (amqpConnection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return connection{conn}, nil
}

// NewAMQPTransport creates a transport publishing on a direct exchange named
// after the bus. Every subscription gets its own exclusive queue, so all
// subscribers of a channel receive every envelope published on it.
func NewAMQPTransport(name, id, url string, options ...OptionsFunc) *AMQPTransport {
	t := &AMQPTransport{
		url:          url,
		name:         name,
		exchangeName: exchangeName(name),
		tag:          id,
		dial:         dial,
		errorf:       func(string, ...interface{}) {},
	}

	for _, f := range options {
		f(t)
	}

	t.subscriptions = make(map[string]*amqpSubscription)
	return t
}

func SetConnection(conn *amqp.Connection) OptionsFunc {
	return func(t *AMQPTransport) {
		t.extConn = true
		t.conn = connection{conn}
	}
}

func SetErrorLog(f func(string, ...interface{})) OptionsFunc {
	return func(t *AMQPTransport) {
		t.errorf = f
	}
}

func (t *AMQPTransport) Initialize() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.out != nil {
		return nil
	}

	var err error
	if t.conn == nil {
		if t.conn, err = t.dial(t.url); err != nil {
			return err
		}
	}

	out, err := t.conn.Channel()
	if err != nil {
		return err
	}

	// not auto-deleted: reply queues unbind after every call, and the exchange
	// must survive its last binding going away
	if err = out.ExchangeDeclare(t.exchangeName, "direct", false, false, false, false, nil); err != nil {
		return err
	}

	t.out = out
	return nil
}

func (t *AMQPTransport) Shutdown() {
	t.mu.Lock()
	subs := t.subscriptions
	t.subscriptions = make(map[string]*amqpSubscription)
	out, conn := t.out, t.conn
	t.out = nil
	if !t.extConn {
		t.conn = nil
	}
	t.mu.Unlock()

	for _, sub := range subs {
		t.closeSubscription(sub)
	}

	if out != nil {
		if err := out.Close(); err != nil {
			t.errorf("Error while closing 'out' channel: %s", err.Error())
		}
	}

	if conn != nil && !t.extConn {
		if err := conn.Close(); err != nil {
			t.errorf("Error while closing connection: %s", err.Error())
		}
	}

	t.wg.Wait()
}

func (t *AMQPTransport) Subscribe(channel string, f SubscribeFunc) (Subscription, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.out == nil {
		return nil, ErrNotInitialized
	}

	ch, err := t.conn.Channel()
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		ch.Close()
		return nil, err
	}

	if err = ch.QueueBind(q.Name, routingKey(t.name, channel), t.exchangeName, false, nil); err != nil {
		ch.Close()
		return nil, err
	}

	consumer := fmt.Sprintf("%s.%d", t.tag, atomic.AddUint64(&t.seq, 1))
	delivery, err := ch.Consume(q.Name, consumer, true, true, false, false, nil)
	if err != nil {
		ch.Close()
		return nil, err
	}

	sub := &amqpSubscription{
		channel:  channel,
		consumer: consumer,
		ch:       ch,
	}
	t.subscriptions[consumer] = sub

	t.wg.Add(1)
	go t.handle(delivery, f)

	return sub, nil
}

func (t *AMQPTransport) Unsubscribe(s Subscription) error {
	sub, ok := s.(*amqpSubscription)
	if !ok || sub == nil {
		return fmt.Errorf("unknown subscription %T", s)
	}

	t.mu.Lock()
	_, exists := t.subscriptions[sub.consumer]
	delete(t.subscriptions, sub.consumer)
	t.mu.Unlock()

	if !exists {
		return nil
	}
	return t.closeSubscription(sub)
}

func (t *AMQPTransport) Publish(channel string, e *Envelope) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	t.mu.Lock()
	out := t.out
	t.mu.Unlock()

	if out == nil {
		return ErrNotInitialized
	}

	return out.Publish(t.exchangeName, routingKey(t.name, channel), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Transient,
		Body:         body,
	})
}

func (t *AMQPTransport) handle(in <-chan amqp.Delivery, f SubscribeFunc) {
	defer t.wg.Done()
	for msg := range in {
		e := new(Envelope)
		if err := json.Unmarshal(msg.Body, e); err != nil {
			t.errorf("Dropping malformed envelope from %s: %s", msg.RoutingKey, err.Error())
			continue
		}
		f(e)
	}
}

func (t *AMQPTransport) closeSubscription(sub *amqpSubscription) error {
	if err := sub.ch.Cancel(sub.consumer, false); err != nil {
		t.errorf("Error while cancelling consumer %s: %s", sub.consumer, err.Error())
	}
	return sub.ch.Close()
}

func exchangeName(name string) string {
	return name + ".combus.exchange"
}

func routingKey(name, channel string) string {
	return name + ".combus." + channel
}
