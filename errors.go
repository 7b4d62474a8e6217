package combus

import "errors"

var (
	ErrShutdown    = errors.New("bus is shut down")
	ErrEmptyType   = errors.New("empty event type")
	ErrNilHandler  = errors.New("nil handler")
	ErrCanceled    = errors.New("pending call canceled")
	ErrPayloadType = errors.New("unexpected payload type")
)
