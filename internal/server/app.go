// Package server wires the directory server together: it builds the logger,
// owns the database session, applies schema migrations and exposes the
// UserService until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userdirectory/internal/dbx"
	"github.com/dmitrijs2005/userdirectory/internal/logging"
	"github.com/dmitrijs2005/userdirectory/internal/server/config"
	"github.com/dmitrijs2005/userdirectory/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userdirectory/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	userService *services.UserService
}

func NewApp(c *config.Config) (*App, error) {
	return newApp(c, os.Stdout, repomanager.NewPostgresRepositoryManager())
}

func newApp(c *config.Config, w io.Writer, rm repomanager.RepositoryManager) (*App, error) {
	logger, zl := logging.New(w, c.LogLevel, c.LogFormat)

	user, password := c.Credentials()
	opts := dbx.OpenOptions{User: user, Password: password}
	if c.TraceSQL {
		opts.TraceLogger = &zl
	}

	db, err := dbx.Open(c.ConnectionString(), opts)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(db, rm, c, logger)

	return &App{config: c, logger: logger, db: db, repomanager: rm, userService: us}, nil
}

// UserService returns the directory service bound to the app's session.
func (app *App) UserService() *services.UserService {
	return app.userService
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run migrates the schema and then blocks until ctx is cancelled or a
// termination signal arrives. The session is closed on every return path.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer func() {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "closing database", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "users_limit", app.config.DefaultLimit())

	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		app.logger.Error(ctx, "migrations failed", "error", err)
		return err
	}

	app.initSignalHandler(cancelFunc)

	<-ctx.Done()
	app.logger.Info(context.Background(), "Shutting down...")

	return nil
}
