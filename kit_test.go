package sessionkit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessionkit "github.com/dmitrymomot/sessionkit"
	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
	"github.com/dmitrymomot/sessionkit/pkg/credsync"
	"github.com/dmitrymomot/sessionkit/pkg/navigation"
	"github.com/dmitrymomot/sessionkit/pkg/routeguard"
	"github.com/dmitrymomot/sessionkit/pkg/sessionmgr"
	"github.com/dmitrymomot/sessionkit/pkg/sessionstore"
)

func testConfig(baseURL string) sessionkit.Config {
	cfg := sessionkit.Config{
		API:    apiclient.DefaultConfig(),
		Cookie: credsync.DefaultConfig(),
		Guard:  routeguard.DefaultConfig(),
	}
	cfg.API.BaseURL = baseURL
	cfg.API.MaxRetries = 0
	cfg.API.RetryBaseDelay = time.Millisecond
	cfg.API.RetryMaxDelay = time.Millisecond
	return cfg
}

func newBackend(t *testing.T, router chi.Router) string {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	cfg := testConfig("ftp://nope")
	_, err := sessionkit.New(cfg, credsync.NewFileStore(filepath.Join(t.TempDir(), "cred.json")))
	assert.ErrorIs(t, err, apiclient.ErrInvalidBaseURL)
}

func TestKit_BootColdStart(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/auth/me", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"statusCode": 401})
	})

	kit, err := sessionkit.New(testConfig(newBackend(t, r)),
		credsync.NewFileStore(filepath.Join(t.TempDir(), "cred.json")))
	require.NoError(t, err)
	defer kit.Close()

	ctx := context.Background()
	kit.Init(ctx)
	kit.Bootstrap(ctx)

	// No persisted credential: one refresh attempt, then anonymous
	assert.Equal(t, sessionstore.StateAnonymous, kit.Store.State())
	assert.False(t, kit.Store.IsAuthenticated())
}

func TestKit_BootWithValidCredential(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/auth/me", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "Bearer tok_persisted", req.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": "usr_1", "email": "a@x.com"},
		})
	})

	credFile := credsync.NewFileStore(filepath.Join(t.TempDir(), "cred.json"))
	require.NoError(t, credFile.Save(credsync.Credential{
		Token: "tok_persisted",
		Model: &apiclient.User{ID: "usr_1"},
	}))

	kit, err := sessionkit.New(testConfig(newBackend(t, r)), credFile)
	require.NoError(t, err)
	defer kit.Close()

	ctx := context.Background()
	kit.Init(ctx)
	kit.Bootstrap(ctx)

	assert.True(t, kit.Client.AuthState().IsValid())
	assert.Equal(t, sessionstore.StateAuthenticated, kit.Store.State())

	current, ok := kit.Store.Current()
	require.True(t, ok)
	assert.Equal(t, "a@x.com", current.Email)

	// Guard now sees the valid session
	assert.True(t, kit.Guard.RequireAuth().IsNone())
	assert.Equal(t, "/protected", kit.Guard.RequireGuest().Path)
}

func TestKit_BootWithRejectedCredential(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/auth/me", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"statusCode": 401,
			"message":    "token expired",
		})
	})

	credFile := credsync.NewFileStore(filepath.Join(t.TempDir(), "cred.json"))
	require.NoError(t, credFile.Save(credsync.Credential{Token: "tok_stale"}))

	var visited []navigation.Intent
	kit, err := sessionkit.New(testConfig(newBackend(t, r)), credFile,
		sessionkit.WithNavigator(navigation.NavigatorFunc(func(intent navigation.Intent) {
			visited = append(visited, intent)
		})))
	require.NoError(t, err)
	defer kit.Close()

	ctx := context.Background()
	kit.Init(ctx)
	kit.Bootstrap(ctx)

	// Expired credential at boot degrades quietly: anonymous, no redirect,
	// no toast, and the stale credential is wiped
	assert.Equal(t, sessionstore.StateAnonymous, kit.Store.State())
	assert.Empty(t, visited)
	assert.Empty(t, kit.Notifier.All())

	persisted, err := credFile.Load()
	require.NoError(t, err)
	assert.True(t, persisted.IsZero())
}

func TestKit_BootstrapRunsOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	r := chi.NewRouter()
	r.Get("/api/auth/me", func(w http.ResponseWriter, req *http.Request) {
		calls++
		writeJSON(w, http.StatusUnauthorized, map[string]any{"statusCode": 401})
	})

	kit, err := sessionkit.New(testConfig(newBackend(t, r)),
		credsync.NewFileStore(filepath.Join(t.TempDir(), "cred.json")))
	require.NoError(t, err)
	defer kit.Close()

	ctx := context.Background()
	kit.Init(ctx)
	kit.Bootstrap(ctx)
	kit.Bootstrap(ctx)
	kit.Bootstrap(ctx)

	assert.Equal(t, 1, calls)
}

func TestKit_BootstrapSkipsResidentSession(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/api/auth/me", func(w http.ResponseWriter, req *http.Request) {
		t.Error("refresh must not run when a session is already resident")
	})

	kit, err := sessionkit.New(testConfig(newBackend(t, r)),
		credsync.NewFileStore(filepath.Join(t.TempDir(), "cred.json")))
	require.NoError(t, err)
	defer kit.Close()

	kit.Store.Set(&apiclient.User{ID: "usr_1"})
	kit.Bootstrap(context.Background())

	assert.True(t, kit.Store.IsAuthenticated())
}

func TestKit_LoginRoundTrip(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"token": "tok_session",
			"user":  map[string]any{"id": "usr_1", "email": "a@x.com"},
		})
	})

	credFile := credsync.NewFileStore(filepath.Join(t.TempDir(), "cred.json"))
	kit, err := sessionkit.New(testConfig(newBackend(t, r)), credFile)
	require.NoError(t, err)
	defer kit.Close()

	ctx := context.Background()
	kit.Init(ctx)

	user, err := kit.Manager.Login(ctx, sessionmgr.Credentials{
		Email:    "a@x.com",
		Password: "correct",
	})
	require.NoError(t, err)

	// The whole chain agrees: store, auth state, credential, guard
	assert.True(t, kit.Store.IsAuthenticated())
	assert.Equal(t, "tok_session", kit.Client.AuthState().Token())
	assert.True(t, kit.Guard.RequireAuth().IsNone())

	persisted, err := credFile.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok_session", persisted.Token)
	require.NotNil(t, persisted.Model)
	assert.Equal(t, user.ID, persisted.Model.ID)
}

func TestKit_TranslateFuncReachesNotices(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Post("/api/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"statusCode": 500})
	})

	kit, err := sessionkit.New(testConfig(newBackend(t, r)),
		credsync.NewFileStore(filepath.Join(t.TempDir(), "cred.json")),
		sessionkit.WithTranslateFunc(func(key string) string {
			if key == "api-errors.server-error.title" {
				return "Server error"
			}
			return key
		}))
	require.NoError(t, err)
	defer kit.Close()

	_, err = kit.Manager.Login(context.Background(), sessionmgr.Credentials{Email: "a@x.com", Password: "x"})
	require.Error(t, err)

	notices := kit.Notifier.All()
	require.Len(t, notices, 1)
	assert.Equal(t, "Server error", notices[0].Title)
}
