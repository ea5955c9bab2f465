package sessionkit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/sessionkit/pkg/apiclient"
	"github.com/dmitrymomot/sessionkit/pkg/apierrors"
	"github.com/dmitrymomot/sessionkit/pkg/config"
	"github.com/dmitrymomot/sessionkit/pkg/credsync"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/navigation"
	"github.com/dmitrymomot/sessionkit/pkg/notifier"
	"github.com/dmitrymomot/sessionkit/pkg/routeguard"
	"github.com/dmitrymomot/sessionkit/pkg/sessionmgr"
	"github.com/dmitrymomot/sessionkit/pkg/sessionstore"
)

// Config aggregates the configuration of every component in the kit.
type Config struct {
	API    apiclient.Config
	Cookie credsync.Config
	Guard  routeguard.Config
	Log    logger.Config
}

// LoadConfig loads the aggregated configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Kit wires the session layer together: one client, one store, one manager
// per running application instance, constructed explicitly instead of
// living as ambient globals.
type Kit struct {
	Client   *apiclient.Client
	Store    *sessionstore.Store
	Manager  *sessionmgr.Manager
	Notifier *notifier.Memory
	Guard    *routeguard.Guard

	sync   *credsync.Sync
	logger *slog.Logger

	bootstrapOnce sync.Once
}

// Option configures a Kit.
type Option func(*kitOptions)

type kitOptions struct {
	navigator navigation.Navigator
	translate apierrors.TranslateFunc
	logger    *slog.Logger
}

// WithNavigator sets the router adapter executing navigation intents.
func WithNavigator(n navigation.Navigator) Option {
	return func(o *kitOptions) {
		if n != nil {
			o.navigator = n
		}
	}
}

// WithTranslateFunc sets the message catalog lookup for error notices.
func WithTranslateFunc(fn apierrors.TranslateFunc) Option {
	return func(o *kitOptions) {
		if fn != nil {
			o.translate = fn
		}
	}
}

// WithKitLogger sets the logger shared by all components.
func WithKitLogger(log *slog.Logger) Option {
	return func(o *kitOptions) {
		if log != nil {
			o.logger = log
		}
	}
}

// New assembles a kit from configuration. credStore is where the credential
// persists between application loads: a credsync.CookieStore in a
// server-rendered flow, a credsync.FileStore in a CLI.
func New(cfg Config, credStore credsync.Store, opts ...Option) (*Kit, error) {
	options := &kitOptions{
		navigator: navigation.NoopNavigator{},
		logger:    logger.NewFromConfig(cfg.Log),
	}
	for _, opt := range opts {
		opt(options)
	}

	client, err := apiclient.NewFromConfig(cfg.API, apiclient.WithClientLogger(options.logger))
	if err != nil {
		return nil, err
	}

	classifierOpts := []apierrors.ClassifierOption{
		apierrors.WithLoginPath(cfg.Guard.LoginPath),
	}
	if options.translate != nil {
		classifierOpts = append(classifierOpts, apierrors.WithTranslateFunc(options.translate))
	}
	classifier := apierrors.New(classifierOpts...)

	store := sessionstore.New()
	notif := notifier.NewMemory(notifier.WithLogger(options.logger))

	manager := sessionmgr.New(client, store,
		sessionmgr.WithClassifier(classifier),
		sessionmgr.WithNotifier(notif),
		sessionmgr.WithNavigator(options.navigator),
		sessionmgr.WithLogger(options.logger),
	)

	return &Kit{
		Client:   client,
		Store:    store,
		Manager:  manager,
		Notifier: notif,
		Guard:    routeguard.New(client.AuthState(), cfg.Guard),
		sync:     credsync.New(client, credStore, credsync.WithSyncLogger(options.logger)),
		logger:   options.logger,
	}, nil
}

// Init runs the credential reconciliation: seed the client's auth state
// from the persisted credential, hook the persist-on-change mirror, and
// silently verify the loaded token. Never fails; a rejected token means
// starting anonymous.
func (k *Kit) Init(ctx context.Context) {
	k.sync.Init(ctx)
}

// Bootstrap runs the one-time startup session refresh. It does nothing if
// a session is already resident, swallows every failure, and guarantees
// the store leaves the Unknown state exactly once.
func (k *Kit) Bootstrap(ctx context.Context) {
	k.bootstrapOnce.Do(func() {
		if _, ok := k.Store.Current(); ok {
			return
		}
		// Refresh transitions the store to Authenticated or Anonymous;
		// failures are already swallowed inside.
		k.Manager.Refresh(ctx)
	})
}

// Close detaches the credential mirror.
func (k *Kit) Close() {
	k.sync.Close()
}
