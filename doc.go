// Package combus implements request/reply on top of a broadcast
// publish/subscribe transport.
//
// A caller dispatches an envelope on a named channel and gets back a
// [Pending] reply. Listeners registered on that channel receive the envelope
// and their handler's result is published on the envelope's issuer channel,
// a name allocated for that single call. The caller holds a one-shot
// subscription on the issuer channel and settles with the first reply.
//
// When several listeners share a channel, all of them are invoked and all of
// them reply; the reply published first wins and the others are dropped.
//
// Handlers of a bus run one at a time on its task queue, in delivery order.
// A handler that has to wait returns [Defer]; the deferred work runs on its
// own goroutine and its reply is queued back when it completes. Handlers that
// reply directly therefore reply in registration order.
package combus
