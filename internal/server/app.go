// Package server initializes and runs the back-office application: it
// opens the database, applies migrations, wires the services and starts
// the HTTP server, shutting everything down on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmarchuk/estatedesk/internal/logging"
	"github.com/dmarchuk/estatedesk/internal/server/blob"
	"github.com/dmarchuk/estatedesk/internal/server/config"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/repomanager"
	"github.com/dmarchuk/estatedesk/internal/server/rest"
	"github.com/dmarchuk/estatedesk/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	propertyService := services.NewPropertyService(db, rm)
	clientService := services.NewClientService(db, rm)
	transactionService := services.NewTransactionService(db, rm, propertyService, clientService)
	trendService := services.NewTrendService(db, rm)
	userService := services.NewUserService(db, rm, cfg)
	profileService := services.NewProfileService(db, rm)

	images := blob.NewImageStore(cfg)

	handlers := rest.Handlers{
		Auth:         rest.NewAuthHandler(userService, logger),
		Properties:   rest.NewPropertyHandler(propertyService, images, logger),
		Transactions: rest.NewTransactionHandler(transactionService, logger),
		Clients:      rest.NewClientHandler(clientService, logger),
		Trends:       rest.NewTrendHandler(trendService, logger),
		Profiles:     rest.NewProfileHandler(profileService, logger),
	}

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: rest.NewServer(cfg, logger, handlers),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
