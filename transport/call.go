package transport

type (
	// Envelope is the unit carried through the bus.
	//
	// A published envelope is delivered by pointer to every subscriber of the
	// channel; subscribers share it and must copy Payload if they need isolation.
	Envelope struct {
		Issuer  string      `json:"issuer"`
		Type    string      `json:"type"`
		Payload interface{} `json:"payload,omitempty"`
	}

	// SubscribeFunc receives envelopes published on a channel.
	SubscribeFunc func(*Envelope)

	// Subscription is a handle returned by Subscribe and accepted by Unsubscribe.
	Subscription interface {
		Channel() string
	}

	// Transport is a broadcast publish/subscribe primitive keyed by channel name.
	Transport interface {
		Initialize() error
		Shutdown()
		Subscribe(channel string, f SubscribeFunc) (Subscription, error)
		Unsubscribe(Subscription) error
		Publish(channel string, e *Envelope) error
	}
)

func NewEnvelope(issuer, eventType string, payload interface{}) *Envelope {
	return &Envelope{
		Issuer:  issuer,
		Type:    eventType,
		Payload: payload,
	}
}
