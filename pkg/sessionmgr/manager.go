package sessionmgr

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
	"github.com/dmitrymomot/sessionkit/pkg/apierrors"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/navigation"
	"github.com/dmitrymomot/sessionkit/pkg/notifier"
	"github.com/dmitrymomot/sessionkit/pkg/sessionstore"
)

// Manager owns all session mutations. It talks to the backend through the
// API client, delegates failure interpretation to the classifier, and
// updates the session store plus the client's auth state (and thereby the
// persisted credential) inside one critical section, so the two can never
// disagree about "is authenticated" across an operation boundary.
type Manager struct {
	client     *apiclient.Client
	store      *sessionstore.Store
	classifier *apierrors.Classifier
	notifier   notifier.Notifier
	navigator  navigation.Navigator
	logger     *slog.Logger
	homePath   string

	// serializes the store+credential dual write
	mu sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithClassifier sets the error classifier (default: apierrors.New()).
func WithClassifier(c *apierrors.Classifier) Option {
	return func(m *Manager) {
		if c != nil {
			m.classifier = c
		}
	}
}

// WithNotifier sets the notification sink (default: discard).
func WithNotifier(n notifier.Notifier) Option {
	return func(m *Manager) {
		if n != nil {
			m.notifier = n
		}
	}
}

// WithNavigator sets the navigation executor (default: discard).
func WithNavigator(n navigation.Navigator) Option {
	return func(m *Manager) {
		if n != nil {
			m.navigator = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}

// WithHomePath sets the path navigated to after account deletion
// (default "/").
func WithHomePath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.homePath = path
		}
	}
}

// New creates a session manager bound to the given client and store.
func New(client *apiclient.Client, store *sessionstore.Store, opts ...Option) *Manager {
	m := &Manager{
		client:     client,
		store:      store,
		classifier: apierrors.New(),
		notifier:   notifier.NoOp{},
		navigator:  navigation.NoopNavigator{},
		logger:     slog.Default(),
		homePath:   "/",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Login authenticates with email and password. On success the session and
// the persisted credential both hold the returned user. On failure the
// error is classified for its side effects and returned unchanged.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*apiclient.User, error) {
	var resp authPayload
	if err := m.client.Call(ctx, http.MethodPost, "/api/auth/login", &resp, apiclient.WithBody(creds)); err != nil {
		m.handleFailure(ctx, "login", err)
		return nil, err
	}

	m.setAuthenticated(resp.User, resp.Token)
	return resp.User, nil
}

// Register creates a new account. Same contract as Login.
func (m *Manager) Register(ctx context.Context, details Registration) (*apiclient.User, error) {
	var resp authPayload
	if err := m.client.Call(ctx, http.MethodPost, "/api/auth/register", &resp, apiclient.WithBody(details)); err != nil {
		m.handleFailure(ctx, "register", err)
		return nil, err
	}

	m.setAuthenticated(resp.User, resp.Token)
	return resp.User, nil
}

// Logout ends the session. Local state is cleared no matter what the remote
// call does; a failed remote logout is logged, never surfaced.
func (m *Manager) Logout(ctx context.Context) {
	defer m.clearAuthenticated()

	if err := m.client.Call(ctx, http.MethodPost, "/api/auth/logout", nil, apiclient.WithBody(struct{}{})); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "logout request failed, clearing local state anyway",
			logger.Error(err),
			logger.Component("sessionmgr"),
		)
	}
}

// Refresh validates the session against the backend and synchronizes the
// local state with the result. It runs at startup, when an unauthenticated
// outcome is expected: any failure yields an anonymous state with no
// notification and no redirect, so the boot path can never loop into the
// login page. The read is idempotent and therefore retried.
func (m *Manager) Refresh(ctx context.Context) *apiclient.User {
	var resp authPayload
	if err := m.client.CallWithRetry(ctx, http.MethodGet, "/api/auth/me", &resp); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelDebug, "session refresh failed, starting anonymous",
			logger.Error(err),
			logger.Component("sessionmgr"),
		)
		m.clearAuthenticated()
		return nil
	}

	m.setAuthenticated(resp.User, resp.Token)
	return resp.User
}

// UpdateProfile changes the user's name and/or avatar. On success the
// session snapshot and the persisted credential model are both replaced.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) (*apiclient.User, error) {
	opts := profileCallOptions(update)

	var resp authPayload
	if err := m.client.Call(ctx, http.MethodPatch, "/api/auth/profile", &resp, opts...); err != nil {
		m.handleFailure(ctx, "profile update", err)
		return nil, err
	}

	m.setAuthenticated(resp.User, resp.Token)
	return resp.User, nil
}

// ChangePassword updates the user's password. The session is untouched on
// success.
func (m *Manager) ChangePassword(ctx context.Context, passwords PasswordChange) error {
	if err := m.client.Call(ctx, http.MethodPost, "/api/auth/change-password", nil, apiclient.WithBody(passwords)); err != nil {
		m.handleFailure(ctx, "password change", err)
		return err
	}
	return nil
}

// RequestEmailChange asks the backend to start an email change flow.
func (m *Manager) RequestEmailChange(ctx context.Context, newEmail string) (*SuccessResponse, error) {
	var resp SuccessResponse
	body := map[string]string{"newEmail": newEmail}
	if err := m.client.Call(ctx, http.MethodPost, "/api/auth/request-email-change", &resp, apiclient.WithBody(body)); err != nil {
		m.handleFailure(ctx, "email change request", err)
		return nil, err
	}
	return &resp, nil
}

// RequestPasswordReset asks the backend to send a password reset email.
func (m *Manager) RequestPasswordReset(ctx context.Context, email string) (*SuccessResponse, error) {
	var resp SuccessResponse
	body := map[string]string{"email": email}
	if err := m.client.Call(ctx, http.MethodPost, "/api/auth/request-password-reset", &resp, apiclient.WithBody(body)); err != nil {
		m.handleFailure(ctx, "password reset request", err)
		return nil, err
	}
	return &resp, nil
}

// DeleteAccount permanently deletes the account, clears the session and
// navigates to the home entry point.
func (m *Manager) DeleteAccount(ctx context.Context) (*SuccessResponse, error) {
	var resp SuccessResponse
	if err := m.client.Call(ctx, http.MethodDelete, "/api/auth/delete-account", &resp); err != nil {
		m.handleFailure(ctx, "account deletion", err)
		return nil, err
	}

	m.clearAuthenticated()
	m.navigator.Navigate(navigation.NavigateTo(m.homePath, false))
	return &resp, nil
}

// setAuthenticated replaces the session snapshot and the credential in one
// critical section. An empty token keeps the current one, for backends that
// don't rotate tokens on every response.
func (m *Manager) setAuthenticated(user *apiclient.User, token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token == "" {
		token = m.client.AuthState().Token()
	}
	m.client.AuthState().Save(token, user)
	m.store.Set(user)
}

// clearAuthenticated clears both in one critical section.
func (m *Manager) clearAuthenticated() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.client.AuthState().Clear()
	m.store.Clear()
}

// handleFailure applies the central failure policy: auth interception runs
// first and unconditionally invalidates the session; validation errors pass
// through silently (forms display them); everything else emits one passive
// notification. The original error is always left for the caller to rethrow.
func (m *Manager) handleFailure(ctx context.Context, op string, err error) {
	if ic := m.classifier.Intercept(err); ic.Auth {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "auth error intercepted",
			slog.String("operation", op),
			logger.Error(err),
			logger.Component("sessionmgr"),
		)
		if ic.ClearSession {
			m.clearAuthenticated()
		}
		if ic.Notice != nil {
			m.notifier.Notify(ctx, *ic.Notice)
		}
		if !ic.Navigate.IsNone() {
			m.navigator.Navigate(ic.Navigate)
		}
		return
	}

	if apierrors.IsValidationError(err) {
		// Surfaced to forms field by field, not as a toast
		return
	}

	classification := m.classifier.Classify(err)
	m.logger.LogAttrs(ctx, slog.LevelError, "api error",
		slog.String("operation", op),
		slog.String("category", string(classification.Category)),
		logger.Error(err),
		logger.Component("sessionmgr"),
	)
	m.notifier.Notify(ctx, classification.Notification())
}

func profileCallOptions(update ProfileUpdate) []apiclient.CallOption {
	if update.Avatar != nil {
		fields := make(map[string]string)
		if update.Name != nil {
			fields["name"] = *update.Name
		}
		return []apiclient.CallOption{apiclient.WithMultipartForm(fields, *update.Avatar)}
	}

	body := make(map[string]string)
	if update.Name != nil {
		body["name"] = *update.Name
	}
	return []apiclient.CallOption{apiclient.WithBody(body)}
}
