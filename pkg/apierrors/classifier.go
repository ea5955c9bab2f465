package apierrors

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
	"github.com/dmitrymomot/sessionkit/pkg/notifier"
)

// Category identifies the classification bucket of a failed call.
type Category string

const (
	CategoryNetwork            Category = "NETWORK_ERROR"
	CategoryTimeout            Category = "TIMEOUT"
	CategoryBadRequest         Category = "400"
	CategoryNotFound           Category = "404"
	CategoryRateLimited        Category = "429"
	CategoryServerError        Category = "500"
	CategoryServiceUnavailable Category = "503"
	CategoryGeneric            Category = "GENERIC"
)

// Classification is the derived, display-ready view of a failure. It is a
// value: producing one has no side effects and classifying the same error
// twice yields the same result.
type Classification struct {
	Category Category
	Title    string
	Message  string
	Severity notifier.Severity
	Duration time.Duration
}

// Notification converts the classification into a passive notification.
func (c Classification) Notification() notifier.Notification {
	return notifier.Notification{
		Title:    c.Title,
		Message:  c.Message,
		Severity: c.Severity,
		Duration: c.Duration,
	}
}

// TranslateFunc resolves a message catalog key into display text. The
// catalog itself is an external collaborator; the default resolver returns
// the key unchanged.
type TranslateFunc func(key string) string

func defaultTranslate(key string) string { return key }

// Classifier turns raw call failures into classifications and auth
// interceptions. It is pure: it never mutates session state, never emits
// notifications, and never navigates.
type Classifier struct {
	translate TranslateFunc
	loginPath string
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithTranslateFunc sets the message catalog lookup.
func WithTranslateFunc(fn TranslateFunc) ClassifierOption {
	return func(c *Classifier) {
		if fn != nil {
			c.translate = fn
		}
	}
}

// WithLoginPath sets the login entry point used in auth redirect intents
// (default "/login").
func WithLoginPath(path string) ClassifierOption {
	return func(c *Classifier) {
		if path != "" {
			c.loginPath = path
		}
	}
}

// New creates a Classifier.
func New(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		translate: defaultTranslate,
		loginPath: "/login",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// entry builds a mapping-table classification from catalog keys.
func (c *Classifier) entry(cat Category, key string, severity notifier.Severity, duration time.Duration) Classification {
	return Classification{
		Category: cat,
		Title:    c.translate("api-errors." + key + ".title"),
		Message:  c.translate("api-errors." + key + ".message"),
		Severity: severity,
		Duration: duration,
	}
}

// mapping is the fixed classification table for non-auth failures.
func (c *Classifier) mapping() map[string]Classification {
	return map[string]Classification{
		"NETWORK_ERROR": c.entry(CategoryNetwork, "network-error", notifier.SeverityWarning, 8*time.Second),
		"TIMEOUT":       c.entry(CategoryTimeout, "timeout", notifier.SeverityWarning, 6*time.Second),
		"400":           c.entry(CategoryBadRequest, "bad-request", notifier.SeverityError, notifier.DefaultDuration),
		"404":           c.entry(CategoryNotFound, "not-found", notifier.SeverityWarning, notifier.DefaultDuration),
		"429":           c.entry(CategoryRateLimited, "too-many-requests", notifier.SeverityWarning, 8*time.Second),
		"500":           c.entry(CategoryServerError, "server-error", notifier.SeverityError, 10*time.Second),
		"503":           c.entry(CategoryServiceUnavailable, "service-unavailable", notifier.SeverityWarning, 10*time.Second),
	}
}

// Classify maps a non-auth failure onto the classification table.
//
// Priority: message text matching network/fetch, then timeout, then the
// structured error code, then the HTTP status, then a generic fallback
// carrying the raw message.
func (c *Classifier) Classify(err error) Classification {
	msg := messageOf(err)
	lower := strings.ToLower(msg)
	table := c.mapping()

	if strings.Contains(lower, "network") || strings.Contains(lower, "fetch") {
		return table["NETWORK_ERROR"]
	}
	if strings.Contains(lower, "timeout") {
		return table["TIMEOUT"]
	}

	if body := apiclient.BodyOf(err); body != nil && body.Code != "" {
		if entry, ok := table[strings.ToUpper(string(body.Code))]; ok {
			return entry
		}
	}

	if status, ok := apiclient.StatusOf(err); ok {
		if entry, ok := table[strconv.Itoa(status)]; ok {
			return entry
		}
	}

	return Classification{
		Category: CategoryGeneric,
		Title:    c.translate("api-errors.generic.title"),
		Message:  msg,
		Severity: notifier.SeverityError,
		Duration: notifier.DefaultDuration,
	}
}

// messageOf extracts the human-oriented failure text: the backend-provided
// statusMessage/message when available, the error string otherwise.
func messageOf(err error) string {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		if text := apiErr.Text(); text != "" {
			return text
		}
	}
	if err == nil {
		return "an error occurred"
	}
	return err.Error()
}
