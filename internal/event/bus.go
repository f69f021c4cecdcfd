package event

import (
	"log/slog"
	"sync"
)

// Handler receives published events. Delivery is synchronous; a handler
// that blocks delays the auction loop, so handlers must be quick or hand
// off to their own goroutine.
type Handler func(e Event)

// Bus fans events out to subscribers in subscription order, fire-and-forget.
// A subscriber that panics is logged and skipped; the rest still receive
// the event.
type Bus struct {
	mu       sync.Mutex
	handlers []Handler
	logger   *slog.Logger
}

// NewBus creates a Bus. A nil logger falls back to slog.Default.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe registers a handler. Handlers cannot be removed; the bus lives
// as long as its auction.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers e to every subscriber in order.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, h := range handlers {
		b.deliver(h, e)
	}
}

func (b *Bus) deliver(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event subscriber panicked",
				slog.String("event_type", string(e.Type)),
				slog.Any("panic", r),
			)
		}
	}()
	h(e)
}
