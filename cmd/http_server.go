package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carpediem/console/internal"
	"github.com/carpediem/console/internal/accesspolicy"
	"github.com/carpediem/console/internal/account"
	accountPostgres "github.com/carpediem/console/internal/account/postgres"
	"github.com/carpediem/console/internal/activity"
	"github.com/carpediem/console/internal/auth"
	authPostgres "github.com/carpediem/console/internal/auth/postgres"
	"github.com/carpediem/console/internal/core/events"
	"github.com/carpediem/console/internal/directory"
	"github.com/carpediem/console/internal/journal"
	journalPostgres "github.com/carpediem/console/internal/journal/postgres"
	"github.com/carpediem/console/internal/portal"
	"github.com/carpediem/console/internal/stats"
	statsPostgres "github.com/carpediem/console/internal/stats/postgres"
	"github.com/carpediem/console/internal/transport/rest"
	"github.com/carpediem/console/internal/uiprefs"
	"github.com/carpediem/console/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server serving the console API`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Bus    *events.EventBus
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.Bus.Drain(ctx); err != nil {
			deps.Logger.Error("event bus drain error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWithOptions(logger.Options{
		Level:  config.Observability.Logging.Level,
		Format: config.Observability.Logging.Format,
	})
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm shares the pgx pool instead of opening a second one.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(lg)

	accountRepo := accountPostgres.NewAccountRepository(gormDB)
	accountService := account.NewService(accountRepo, eventBus, lg)
	accountHandler := account.NewHandler(accountService)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewRepository(gormDB)
	authService := auth.NewService(authRepo, accountService, tokenGen, eventBus, lg).
		WithBCryptCost(config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	journalRepo := journalPostgres.NewJournalRepository(gormDB)
	recorder := journal.NewRecorder(journalRepo, lg)
	recorder.RegisterEventHandlers(eventBus)

	resolver := accesspolicy.NewResolver(config.Access.PrincipalDomain, config.Access.DefaultSubDomain)
	portalHandler := portal.NewHandler(resolver)

	directoryClient := directory.NewClient(directory.Config{
		BaseURL:        config.Directory.BaseURL,
		ServiceRoleKey: config.Directory.ServiceRoleKey,
		RequestTimeout: config.Directory.RequestTimeout,
	}, lg)
	activityService := activity.NewService(directoryClient, accountService, lg)
	activityHandler := activity.NewHandler(activityService)

	statsRepo := statsPostgres.NewStatsRepository(gormDB)
	statsService := stats.NewService(statsRepo, lg)
	statsHandler := stats.NewHandler(statsService)

	uiPrefsHandler := uiprefs.NewHandler(uiprefs.NewStore())

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, rest.Handlers{
		Auth:     authHandler,
		Account:  accountHandler,
		Portal:   portalHandler,
		Activity: activityHandler,
		Stats:    statsHandler,
		UIPrefs:  uiPrefsHandler,
	}, rest.RouterOptions{
		AllowedOrigins: config.Server.AllowedOrigins,
		MetricsEnabled: config.Observability.Metrics.Enabled,
		MetricsPath:    config.Observability.Metrics.Path,
	}, lg)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Bus:    eventBus,
		Logger: lg,
	}, nil
}

// initDB opens the pgx connection pool used by both sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
