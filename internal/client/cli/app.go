package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"fintrack/internal/client/api"
	"fintrack/internal/client/config"
	"fintrack/internal/client/services"
	"fintrack/internal/client/storage"
	"fintrack/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the interactive shell: config, the session service, and the
// local session database.
type App struct {
	config  *config.Config
	session services.SessionService
	reader  *bufio.Reader
	log     logging.Logger
	db      *sql.DB
}

// NewApp opens the session database, builds the API client and the session
// service, and hydrates the session so a previous login is visible at the
// first prompt.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		logger.Error(ctx, "error initializing session database", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	sess := services.NewSessionService(apiClient, db, logger)
	sess.Restore(ctx)

	return &App{
		config:  c,
		session: sess,
		reader:  bufio.NewReader(os.Stdin),
		log:     logger,
		db:      db,
	}, nil
}

// Run drives the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.db.Close() }()
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status renders the prompt suffix, e.g. "(a@x.com)".
func (a *App) status() string {
	if u := a.session.CurrentUser(); u != nil {
		return "(" + u.Email + ")"
	}
	return ""
}
