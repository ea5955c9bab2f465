package credsync

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// Sync mirrors the backend client's authentication state into a persisted
// credential and back.
//
// Init seeds the client's AuthState from the persisted credential, hooks a
// synchronous persist-on-change listener, and performs one silent refresh
// to verify the loaded token against the backend. A failed refresh clears
// the state (and thereby the credential) and is never raised: an expired
// persisted token simply means starting anonymous.
type Sync struct {
	client      *apiclient.Client
	store       Store
	logger      *slog.Logger
	unsubscribe func()
}

// SyncOption configures a Sync.
type SyncOption func(*Sync)

// WithSyncLogger sets the logger for sync diagnostics.
func WithSyncLogger(log *slog.Logger) SyncOption {
	return func(s *Sync) {
		if log != nil {
			s.logger = log
		}
	}
}

// New creates a Sync between the client's auth state and the given store.
func New(client *apiclient.Client, store Store, opts ...SyncOption) *Sync {
	s := &Sync{
		client: client,
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init performs the startup reconciliation. It never returns an error:
// every failure path degrades to an anonymous state.
func (s *Sync) Init(ctx context.Context) {
	cred, err := s.store.Load()
	if err != nil && !errors.Is(err, ErrNoCredential) {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to load persisted credential, starting anonymous",
			logger.Error(err),
			logger.Component("credsync"),
		)
	}

	auth := s.client.AuthState()
	auth.Save(cred.Token, cred.Model)

	// Every state change from here on is written through immediately; the
	// initial fire persists the seeded state back, normalizing the stored
	// form.
	s.unsubscribe = auth.OnChange(func(token string, model *apiclient.User) {
		if err := s.store.Save(Credential{Token: token, Model: model}); err != nil {
			s.logger.LogAttrs(context.Background(), slog.LevelError, "failed to persist credential",
				logger.Error(err),
				logger.Component("credsync"),
			)
		}
	}, true)

	if !auth.IsValid() {
		return
	}

	if _, err := s.client.AuthRefresh(ctx); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "persisted credential rejected by backend, clearing",
			logger.Error(err),
			logger.Component("credsync"),
		)
		auth.Clear()
	}
}

// Close detaches the persist-on-change listener.
func (s *Sync) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
