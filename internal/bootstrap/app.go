package bootstrap

import (
	"context"
	"fmt"

	"github.com/labmall/storefront/config"
	"github.com/labmall/storefront/internal/api"
	"github.com/labmall/storefront/internal/client"
	"github.com/labmall/storefront/internal/logging"
	"github.com/labmall/storefront/internal/session"
	"github.com/labmall/storefront/internal/shell"
)

// App is one fully wired storefront client.
type App struct {
	Config  *config.Config
	Backend *SessionBackend
	Session *session.Store
	Client  *client.Client
	API     *api.Client
	Shell   *shell.Shell
}

type AppOptions struct {
	Policy   shell.UnauthorizedPolicy
	Notifier client.Notifier
}

// NewApp opens session storage, restores the session and connects the
// request pipeline to a shell that applies opts.Policy on 401.
func NewApp(ctx context.Context, cfg *config.Config, opts AppOptions) (*App, error) {
	backend, err := OpenSessionStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(backend.Storage)
	if err := store.Restore(ctx); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("restore session: %w", err)
	}

	c, err := client.New(client.Config{
		BaseURL:        cfg.BaseURL(),
		Timeout:        cfg.API.Timeout,
		Session:        store,
		Notifier:       opts.Notifier,
		RateLimitRPS:   cfg.API.RateLimitRPS,
		RateLimitBurst: cfg.API.RateLimitBurst,
	})
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	a := api.New(c)
	sh := shell.New(shell.Options{
		API:      a,
		Session:  store,
		Notifier: opts.Notifier,
		Policy:   opts.Policy,
	})
	c.SetUnauthorizedHandler(sh.HandleUnauthorized)

	logging.NewLogger(ctx).
		With("base_url", c.BaseURL()).
		With("policy", opts.Policy.String()).
		With("authenticated", store.IsAuthenticated()).
		LogInfo("bootstrap", "storefront client ready")

	return &App{
		Config:  cfg,
		Backend: backend,
		Session: store,
		Client:  c,
		API:     a,
		Shell:   sh,
	}, nil
}

func (a *App) Close() error {
	a.Shell.Close()
	return a.Backend.Close()
}
