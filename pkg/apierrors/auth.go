package apierrors

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
	"github.com/dmitrymomot/sessionkit/pkg/navigation"
	"github.com/dmitrymomot/sessionkit/pkg/notifier"
)

// authKeywords mark backend messages that indicate an invalid, expired or
// missing authentication, regardless of status code.
var authKeywords = []string{"auth", "unauthorized", "unauthenticated", "token", "session"}

// IsAuthError reports whether the failure originates from invalid, expired
// or forbidden authentication: status 401 or 403, a structured error code
// of 401, or an auth keyword in the backend-provided message.
//
// Transport-level failures are never auth errors; their text describes the
// network, not the backend's verdict.
func IsAuthError(err error) bool {
	var apiErr *apiclient.Error
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
		return true
	}
	if apiErr.Data != nil && apiErr.Data.Code == "401" {
		return true
	}

	lower := strings.ToLower(apiErr.Text())
	for _, kw := range authKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	return false
}

// Interception is the outcome of auth-error detection. It is a pure value:
// the caller clears the session, emits the notice and performs the
// navigation. Auth is false for non-auth failures and the rest of the
// fields are zero.
type Interception struct {
	Auth         bool
	ClearSession bool
	Notice       *notifier.Notification
	Navigate     navigation.Intent
}

// Intercept runs auth detection first, independent of classification, and
// short-circuits it. For a 403 the user gets an access-denied notice and no
// redirect; every other auth failure gets a session-expired notice plus a
// redirect intent to the login entry point.
func (c *Classifier) Intercept(err error) Interception {
	if !IsAuthError(err) {
		return Interception{}
	}

	if status, _ := apiclient.StatusOf(err); status == http.StatusForbidden {
		return Interception{
			Auth:         true,
			ClearSession: true,
			Notice: &notifier.Notification{
				Title:    c.translate("api-errors.access-denied.title"),
				Message:  c.translate("api-errors.access-denied.message"),
				Severity: notifier.SeverityError,
				Duration: 6 * time.Second,
			},
		}
	}

	return Interception{
		Auth:         true,
		ClearSession: true,
		Notice: &notifier.Notification{
			Title:    c.translate("api-errors.session-expired.title"),
			Message:  c.translate("api-errors.session-expired.message"),
			Severity: notifier.SeverityError,
			Duration: notifier.DefaultDuration,
		},
		Navigate: navigation.NavigateTo(c.loginPath, true),
	}
}
