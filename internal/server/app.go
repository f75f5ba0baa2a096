// Package server wires the Notflix backend: configuration, the PostgreSQL
// connection and migrations, the event publisher, services, and the gRPC and
// health servers, all stopped together on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/notflix/internal/logging"
	"github.com/dmitrijs2005/notflix/internal/server/config"
	"github.com/dmitrijs2005/notflix/internal/server/events"
	"github.com/dmitrijs2005/notflix/internal/server/health"
	"github.com/dmitrijs2005/notflix/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notflix/internal/server/services"

	gs "github.com/dmitrijs2005/notflix/internal/server/grpc"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	publisher    events.Publisher
	userService  *services.UserService
	storeService *services.StoreService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(c.LogLevel, "json", os.Stdout)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if c.AMQPURL != "" {
		publisher = events.NewAMQPPublisher(c.AMQPURL, c.EventsQueue)
		logger.Info(ctx, "Publishing domain events", "queue", c.EventsQueue)
	}

	us := services.NewUserService(db, rm, publisher, logger.With("module", "users"), c)
	ss := services.NewStoreService(db, rm, publisher, logger.With("module", "store"))

	return &App{
		config:       c,
		logger:       logger,
		db:           db,
		publisher:    publisher,
		userService:  us,
		storeService: ss,
	}, nil
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

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService, app.storeService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHealthServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := health.NewServer(app.config.HealthAddr, app.db, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHealthServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.publisher.Close(); err != nil {
		app.logger.Warn(ctx, "publisher close error", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
