package cmd

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

	"github.com/frahmantamala/moneymappr/internal"
	"github.com/frahmantamala/moneymappr/internal/budget"
	budgetPostgres "github.com/frahmantamala/moneymappr/internal/budget/postgres"
	"github.com/frahmantamala/moneymappr/internal/category"
	"github.com/frahmantamala/moneymappr/internal/core/events"
	"github.com/frahmantamala/moneymappr/internal/database"
	"github.com/frahmantamala/moneymappr/internal/messaging/amqp"
	"github.com/frahmantamala/moneymappr/internal/summary"
	summaryPostgres "github.com/frahmantamala/moneymappr/internal/summary/postgres"
	"github.com/frahmantamala/moneymappr/internal/transaction"
	transactionPostgres "github.com/frahmantamala/moneymappr/internal/transaction/postgres"
	"github.com/frahmantamala/moneymappr/internal/transport"
	"github.com/frahmantamala/moneymappr/internal/transport/rest"
	"github.com/frahmantamala/moneymappr/internal/transport/swagger"
	"github.com/frahmantamala/moneymappr/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config    *internal.Config
	Pool      *database.Pool
	Router    *chi.Mux
	EventBus  *events.EventBus
	Forwarder *amqp.Forwarder
	Logger    *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.shutdown(ctx)
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.shutdown(context.Background())
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

// shutdown drains in-flight event handlers before closing the broker and
// database connections they use.
func (d *Dependencies) shutdown(ctx context.Context) {
	if err := d.EventBus.Wait(ctx); err != nil {
		d.Logger.Warn("event handlers still running at shutdown", "error", err)
	}
	if d.Forwarder != nil {
		if err := d.Forwarder.Close(); err != nil {
			d.Logger.Error("AMQP close error", "error", err)
		}
	}
	if err := d.Pool.Close(); err != nil {
		d.Logger.Error("Database close error", "error", err)
	}
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.LoggerWrapper()

	if _, err := swagger.Load(); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
	}

	pool := database.NewPool(config.Database, lg)
	db, err := pool.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	gormDB, err := pool.Gorm(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	eventBus := events.NewEventBus(lg)
	queryTimeout := config.Database.QueryTimeout

	summaryRepo := summaryPostgres.NewSummaryRepository(db)
	transactionService := transaction.NewService(transactionPostgres.NewTransactionRepository(gormDB), eventBus, lg, queryTimeout)
	budgetService := budget.NewService(budgetPostgres.NewBudgetRepository(gormDB), summaryRepo, eventBus, lg, queryTimeout)
	summaryService := summary.NewService(summaryRepo, lg, queryTimeout)
	categoryService := category.NewService(lg)

	budget.NewEventHandler(budgetService, lg).RegisterEventHandlers(eventBus)

	var forwarder *amqp.Forwarder
	if config.Messaging.Enabled() {
		forwarder, err = amqp.Dial(config.Messaging.AMQPURL, config.Messaging.Exchange, lg)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to connect to message broker: %w", err)
		}
		forwarder.RegisterEventHandlers(eventBus)
	}

	baseHandler := transport.NewBaseHandler(lg)
	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.Handlers{
		Health:      rest.NewHealthHandler(db),
		Transaction: transaction.NewHandler(baseHandler, transactionService),
		Budget:      budget.NewHandler(baseHandler, budgetService),
		Summary:     summary.NewHandler(baseHandler, summaryService),
		Category:    category.NewHandler(baseHandler, categoryService),
	}, config.Server.AllowedOrigins, lg)

	return &Dependencies{
		Config:    config,
		Pool:      pool,
		Router:    router,
		EventBus:  eventBus,
		Forwarder: forwarder,
		Logger:    lg,
	}, nil
}
