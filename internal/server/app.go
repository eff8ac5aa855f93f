// Package server initializes and runs the development auth server.
// It opens the SQLite database, wires the account service, handles
// graceful shutdown, and serves the /auth HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/logging"
	"fintrack/internal/server/config"
	"fintrack/internal/server/httpapi"
	"fintrack/internal/server/refreshtokens"
	"fintrack/internal/server/storage"
	"fintrack/internal/server/users"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) *App {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	return &App{config: c, logger: logger}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.Addr)

	app.initSignalHandler(cancelFunc)

	db, err := storage.InitDatabase(ctx, app.config.DatabaseFile)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	svc := users.NewService(
		users.NewSQLiteRepository(db),
		refreshtokens.NewSQLiteRepository(db),
		[]byte(app.config.SecretKey),
		app.config.AccessTokenValidity,
		app.config.RefreshTokenValidity,
		app.logger,
	)
	handler := httpapi.NewHandler(svc, app.logger)

	srv := &http.Server{
		Addr:              app.config.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
