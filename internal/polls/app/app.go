package app

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

	httpapi "github.com/aussiebroadwan/polls/internal/polls/http"
	"github.com/aussiebroadwan/polls/internal/polls/service"
	"github.com/aussiebroadwan/polls/internal/polls/store"
	"github.com/aussiebroadwan/polls/internal/polls/store/drivers/postgres"
	"github.com/aussiebroadwan/polls/internal/polls/store/drivers/sqlite"
	"github.com/aussiebroadwan/polls/pkg/cryptox"
	"github.com/aussiebroadwan/polls/pkg/jwtx"
	"github.com/aussiebroadwan/polls/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application holds the polls service and all of its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager

	userService      *service.UserService
	tokenService     *service.TokenService
	questionService  *service.QuestionService
	voteService      *service.VoteService
	bootstrapService *service.BootstrapService

	server *http.Server
	router *httpapi.Router
}

// New builds the application: database and migrations, signing keys,
// services, the seed admin and the HTTP server.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "polls",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)
	if _, err := cryptox.LoadPepper(); err != nil {
		return nil, fmt.Errorf("failed to load pepper: %w", err)
	}

	ctx := slogx.WithContext(context.Background(), app.logger)

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	keyManager, err := InitTokenKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.keyManager = keyManager

	app.initServices()

	created, err := app.bootstrapService.EnsureAdmin(ctx, app.cfg.Admin)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if created {
		app.logger.Info("seed admin created", "username", app.cfg.Admin.Username)
	}

	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("polls service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests within the grace period and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down polls service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("polls service stopped")
	return nil
}

// sqliteDSN enables WAL, foreign keys and the sqlite time format expected by
// the driver's scanners.
func sqliteDSN(file string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_time_format=sqlite",
		file,
	)
}

// initDatabase opens the configured driver and applies migrations.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqliteDSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initServices() {
	app.userService = &service.UserService{
		Store:            app.db,
		AllowAdminSignup: app.cfg.AllowAdminSignup,
	}
	app.tokenService = &service.TokenService{
		KeyManager:    app.keyManager,
		Users:         app.userService,
		Issuer:        app.cfg.Issuer,
		AccessTTL:     app.cfg.AccessTokenTTL,
		RefreshTTL:    app.cfg.RefreshTokenTTL,
		RotateRefresh: app.cfg.RotateRefresh,
	}
	app.questionService = &service.QuestionService{Store: app.db}
	app.voteService = &service.VoteService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Users: app.userService,
	}
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager,
		BuildVersion,
		app.db,
		app.logger,
		app.cfg.MaxPageSize,
	)

	router.UserService = app.userService
	router.TokenService = app.tokenService
	router.QuestionService = app.questionService
	router.VoteService = app.voteService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
