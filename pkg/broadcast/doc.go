// Package broadcast fans typed messages out to in-process subscribers.
//
// MemoryBroadcaster never blocks the sender: each subscriber has a bounded
// buffer and messages that do not fit are dropped for that subscriber only.
// Subscriptions end when their context is cancelled, when Close is called on
// the subscriber, or when the broadcaster itself is closed.
//
//	b := broadcast.NewMemoryBroadcaster[notifications.Event](16)
//	sub := b.Subscribe(r.Context())
//	defer sub.Close()
//	for msg := range sub.Messages() {
//	    // stream msg to the client
//	}
package broadcast
