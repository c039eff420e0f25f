package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gatherly/gatherly/internal/api"
	"github.com/gatherly/gatherly/internal/apierr"
	"github.com/gatherly/gatherly/internal/config"
	"github.com/gatherly/gatherly/internal/log"
	"github.com/gatherly/gatherly/internal/session"
	"github.com/gatherly/gatherly/internal/token"
)

// app bundles the wiring every command needs: configuration, the token
// store, the API client and the session over it.
type app struct {
	cfg     *config.Config
	tokens  *token.Store
	client  *api.Client
	session *session.Manager
}

// newApp loads the configuration, installs the default logger and builds
// the client stack. Flags set on the root command override the config file.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if apiURLFlag != "" {
		cfg.APIURL = apiURLFlag
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}

	log.SetDefaultLogger(log.New(log.Config{
		Level:  log.ParseLevel(cfg.Log.Level),
		Format: log.ParseFormat(cfg.Log.Format),
		Output: os.Stderr,
	}))

	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, err
	}

	var tokens *token.Store
	if cfg.TokenPassphrase != "" {
		tokens = token.NewEncryptedStore(tokenPath, cfg.TokenPassphrase)
	} else {
		tokens = token.NewStore(tokenPath)
	}

	client := api.NewClient(cfg.APIURL, tokens)

	return &app{
		cfg:     cfg,
		tokens:  tokens,
		client:  client,
		session: session.NewManager(client),
	}, nil
}

// start resolves the stored session. Safe to call for anonymous users.
func (a *app) start(ctx context.Context) {
	a.session.Start(ctx)
}

// requireAuth resolves the session and fails when no authenticated user
// is present. Commands behind it mirror the protected views of the app.
func (a *app) requireAuth(ctx context.Context) error {
	a.session.Start(ctx)
	result := session.Guard(a.session.Snapshot(), "")
	if result.Decision == session.DecisionRedirect {
		return apierr.New(http.StatusUnauthorized, "not logged in; run 'gatherly login' first")
	}
	return nil
}

// sessionError turns the session's recorded failure into a command error
func (a *app) sessionError(fallback string) error {
	if msg := a.session.LastError(); msg != "" {
		return fmt.Errorf("%s: %s", fallback, msg)
	}
	return fmt.Errorf("%s", fallback)
}
