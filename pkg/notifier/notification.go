package notifier

import (
	"time"
)

// Severity represents the notification severity shown to the user.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DefaultDuration is applied when a notification does not specify how long
// it should stay on screen.
const DefaultDuration = 5 * time.Second

// Notification is a passive, transient message surfaced to the user.
// It carries no behavior beyond display; emitting one never mutates
// application state.
type Notification struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Severity  Severity      `json:"severity"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// WithDefaults returns a copy of the notification with zero fields filled in.
func (n Notification) WithDefaults() Notification {
	if n.Severity == "" {
		n.Severity = SeverityError
	}
	if n.Duration <= 0 {
		n.Duration = DefaultDuration
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return n
}
