package combus

import (
	"context"
	"encoding/json"
	"fmt"
)

// CallAs calls eventType and converts the reply payload to T.
func CallAs[T any](ctx context.Context, b *Bus, eventType string, payload interface{}) (T, error) {
	var zero T
	reply, err := b.Call(ctx, eventType, payload)
	if err != nil {
		return zero, err
	}
	return PayloadAs[T](reply)
}

// ListenAs registers a handler that receives the call payload converted to T.
// A payload that cannot be converted fails the handler, so the call gets no reply.
func ListenAs[T any](b *Bus, eventType string, h func(ctx context.Context, payload T) (interface{}, error), options ...HandlerOptionsFunc) error {
	if h == nil {
		return ErrNilHandler
	}
	return b.Listen(eventType, HandlerFunc(func(ctx context.Context, e *Envelope) (interface{}, error) {
		payload, err := PayloadAs[T](e)
		if err != nil {
			return nil, err
		}
		return h(ctx, payload)
	}), options...)
}

// PayloadAs returns the envelope payload as T. Payloads that crossed a
// serializing transport arrive as generic JSON values and are decoded into T.
func PayloadAs[T any](e *Envelope) (T, error) {
	var out T
	if e == nil || e.Payload == nil {
		return out, nil
	}
	if v, ok := e.Payload.(T); ok {
		return v, nil
	}

	raw, err := json.Marshal(e.Payload)
	if err != nil {
		return out, fmt.Errorf("%w: %T: %v", ErrPayloadType, e.Payload, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %T as %T: %v", ErrPayloadType, e.Payload, out, err)
	}
	return out, nil
}
