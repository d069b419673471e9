package core

// Settings is the single structural event type exchanged between components:
// a mapping of named keys to values. Receivers inspect only the keys they
// recognize and ignore the rest.
type Settings map[string]any

// Subscriber receives broadcast settings events.
type Subscriber interface {
	Receive(values Settings)
}

// Re-entrant publishes are expected (a receive may write a field, which may
// publish again); idempotent cell writes bound the cascade, the depth cap is
// the safety net for a misbehaving subscriber.
const maxBroadcastDepth = 32

// Bus fans every published event out to every subscriber, including the one
// that originated it. The subscriber list is explicit and inspectable; there
// is no topic routing.
type Bus struct {
	subs    []Subscriber
	depth   int
	metrics *Metrics
}

// NewBus constructs a bus. metrics may be nil.
func NewBus(metrics *Metrics) *Bus {
	return &Bus{metrics: metrics}
}

// Subscribe appends s to the fan-out set.
func (b *Bus) Subscribe(s Subscriber) {
	b.subs = append(b.subs, s)
}

// Subscribers returns the current fan-out set.
func (b *Bus) Subscribers() []Subscriber {
	return append([]Subscriber(nil), b.subs...)
}

// Publish delivers values to every subscriber. Nil events are dropped,
// matching the emit guard of the table components.
func (b *Bus) Publish(values Settings) {
	if values == nil || b.depth >= maxBroadcastDepth {
		return
	}
	b.depth++
	defer func() { b.depth-- }()
	if b.metrics != nil {
		b.metrics.Broadcasts.Inc()
	}
	for _, s := range b.subs {
		s.Receive(values)
	}
}
