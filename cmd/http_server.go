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

	"github.com/frahmantamala/donation-gateway/internal"
	"github.com/frahmantamala/donation-gateway/internal/checkout"
	"github.com/frahmantamala/donation-gateway/internal/contribution"
	contributionpg "github.com/frahmantamala/donation-gateway/internal/contribution/postgres"
	"github.com/frahmantamala/donation-gateway/internal/core/events"
	"github.com/frahmantamala/donation-gateway/internal/ipn"
	"github.com/frahmantamala/donation-gateway/internal/pelecard"
	"github.com/frahmantamala/donation-gateway/internal/processor"
	"github.com/frahmantamala/donation-gateway/internal/transport"
	"github.com/frahmantamala/donation-gateway/internal/transport/rest"
	"github.com/frahmantamala/donation-gateway/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle checkout and payment notification requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config          *internal.Config
	DB              *sqlx.DB
	Router          *chi.Mux
	Processors      *processor.Registry
	CheckoutHandler *checkout.Handler
	IPNHandler      *ipn.Handler
	Logger          *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Processors,
		deps.CheckoutHandler, deps.IPNHandler, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Env)
	appLogger := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	processors, err := processor.NewRegistry(config.Processors)
	if err != nil {
		return nil, fmt.Errorf("failed to build processor registry: %w", err)
	}

	gatewayClient := pelecard.NewClient(pelecard.Config{
		BaseURL: config.Gateway.BaseURL,
		Timeout: config.Gateway.Timeout,
	}, appLogger)

	eventBus := events.NewEventBus(appLogger)

	contributionRepo := contributionpg.NewContributionRepository(gormDB)
	contributionService := contribution.NewService(contributionRepo, appLogger)

	baseHandler := transport.NewBaseHandler(appLogger)

	checkoutService := checkout.NewService(gatewayClient, processors, config.Server.BaseURL, appLogger)
	checkoutHandler := checkout.NewHandler(baseHandler, checkoutService, appLogger)

	validator := ipn.NewValidator(gatewayClient, contributionService, processors, appLogger)
	finalizer := ipn.NewFinalizer(contributionService, eventBus, appLogger)
	ipnHandler := ipn.NewHandler(baseHandler, validator, finalizer, appLogger)

	return &Dependencies{
		Config:          config,
		Logger:          appLogger,
		DB:              db,
		Router:          chi.NewRouter(),
		Processors:      processors,
		CheckoutHandler: checkoutHandler,
		IPNHandler:      ipnHandler,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
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
