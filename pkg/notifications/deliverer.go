package notifications

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formflow/pkg/broadcast"
	"github.com/dmitrymomot/formflow/pkg/logger"
)

// Deliverer hands toast events to a presenter.
type Deliverer interface {
	Deliver(ctx context.Context, ev Event) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, ev Event) error

func (f DelivererFunc) Deliver(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// NoOpDeliverer is a deliverer that does nothing.
type NoOpDeliverer struct{}

func (NoOpDeliverer) Deliver(context.Context, Event) error {
	return nil
}

// MultiDeliverer combines multiple delivery channels.
type MultiDeliverer struct {
	deliverers []Deliverer
	logger     *slog.Logger
}

// NewMultiDeliverer creates a deliverer that forwards to every non-nil deliverer.
func NewMultiDeliverer(log *slog.Logger, deliverers ...Deliverer) *MultiDeliverer {
	if log == nil {
		log = slog.Default()
	}
	clean := make([]Deliverer, 0, len(deliverers))
	for _, d := range deliverers {
		if d != nil {
			clean = append(clean, d)
		}
	}
	return &MultiDeliverer{deliverers: clean, logger: log}
}

// Deliver sends the event through all channels. Failures are logged, not returned.
func (m *MultiDeliverer) Deliver(ctx context.Context, ev Event) error {
	for i, d := range m.deliverers {
		if err := d.Deliver(ctx, ev); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "failed to deliver toast event",
				logger.ToastID(ev.Toast.ID),
				slog.Int("deliverer_index", i),
				logger.Error(err),
			)
		}
	}
	return nil
}

// LogDeliverer writes toast events to a structured logger.
type LogDeliverer struct {
	logger *slog.Logger
}

func NewLogDeliverer(log *slog.Logger) *LogDeliverer {
	if log == nil {
		log = slog.Default()
	}
	return &LogDeliverer{logger: log}
}

func (d *LogDeliverer) Deliver(ctx context.Context, ev Event) error {
	d.logger.LogAttrs(ctx, slog.LevelInfo, "toast "+string(ev.Type),
		logger.ToastID(ev.Toast.ID),
		logger.SessionID(ev.Toast.Session),
		slog.String("severity", string(ev.Toast.Severity)),
		slog.String("title", ev.Toast.Title),
	)
	return nil
}

// BroadcastDeliverer publishes toast events to in-process subscribers, for
// example server-sent event streams.
type BroadcastDeliverer struct {
	b *broadcast.MemoryBroadcaster[Event]
}

func NewBroadcastDeliverer(bufferSize int) *BroadcastDeliverer {
	return &BroadcastDeliverer{b: broadcast.NewMemoryBroadcaster[Event](bufferSize)}
}

func (d *BroadcastDeliverer) Deliver(ctx context.Context, ev Event) error {
	return d.b.Broadcast(ctx, ev)
}

// Subscribe returns a subscriber that lives until ctx is done.
func (d *BroadcastDeliverer) Subscribe(ctx context.Context) broadcast.Subscriber[Event] {
	return d.b.Subscribe(ctx)
}

// Close closes all subscribers.
func (d *BroadcastDeliverer) Close() error {
	return d.b.Close()
}
