package notifier

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// Notifier delivers passive notifications to the user-facing surface.
// Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NoOp discards all notifications. Useful as a default and in tests that
// don't assert on notices.
type NoOp struct{}

func (NoOp) Notify(context.Context, Notification) {}

// Subscriber receives notifications as they are emitted.
type Subscriber func(n Notification)

// Memory is an in-memory notifier that records emitted notifications and
// fans them out to subscribers. Suitable for embedding into UI layers and
// for tests.
type Memory struct {
	mu     sync.RWMutex
	items  []Notification
	subs   map[int]Subscriber
	nextID int
	logger *slog.Logger
}

// MemoryOption configures a Memory notifier.
type MemoryOption func(*Memory)

// WithLogger sets the logger used for delivery diagnostics.
func WithLogger(log *slog.Logger) MemoryOption {
	return func(m *Memory) {
		if log != nil {
			m.logger = log
		}
	}
}

// NewMemory creates an in-memory notifier.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		subs:   make(map[int]Subscriber),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Notify records the notification and delivers it to all subscribers.
// Delivery happens synchronously on the caller's goroutine.
func (m *Memory) Notify(ctx context.Context, n Notification) {
	n = n.WithDefaults()
	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	m.mu.Lock()
	m.items = append(m.items, n)
	subs := make([]Subscriber, 0, len(m.subs))
	for _, s := range m.subs {
		subs = append(subs, s)
	}
	m.mu.Unlock()

	m.logger.LogAttrs(ctx, slog.LevelDebug, "notification emitted",
		slog.String("notification_id", n.ID),
		slog.String("severity", string(n.Severity)),
		slog.String("title", n.Title),
		logger.Component("notifier"),
	)

	for _, s := range subs {
		s(n)
	}
}

// Subscribe registers a subscriber and returns a function that removes it.
func (m *Memory) Subscribe(s Subscriber) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = s
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// All returns a copy of every notification emitted so far.
func (m *Memory) All() []Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items)
}

// Reset drops all recorded notifications.
func (m *Memory) Reset() {
	m.mu.Lock()
	m.items = nil
	m.mu.Unlock()
}
