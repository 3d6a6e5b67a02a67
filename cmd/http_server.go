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

	"github.com/wicaksana/hr-workflow/internal"
	accountPostgres "github.com/wicaksana/hr-workflow/internal/account/postgres"
	"github.com/wicaksana/hr-workflow/internal/auth"
	"github.com/wicaksana/hr-workflow/internal/balance"
	balancePostgres "github.com/wicaksana/hr-workflow/internal/balance/postgres"
	"github.com/wicaksana/hr-workflow/internal/core/events"
	"github.com/wicaksana/hr-workflow/internal/notification"
	notificationPostgres "github.com/wicaksana/hr-workflow/internal/notification/postgres"
	"github.com/wicaksana/hr-workflow/internal/org"
	orgPostgres "github.com/wicaksana/hr-workflow/internal/org/postgres"
	"github.com/wicaksana/hr-workflow/internal/request"
	requestPostgres "github.com/wicaksana/hr-workflow/internal/request/postgres"
	"github.com/wicaksana/hr-workflow/internal/transport/rest"
	"github.com/wicaksana/hr-workflow/internal/transport/swagger"
	"github.com/wicaksana/hr-workflow/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler         *auth.Handler
	OrgHandler          *org.Handler
	RequestHandler      *request.Handler
	NotificationHandler *notification.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.OrgHandler,
		deps.RequestHandler,
		deps.NotificationHandler,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
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
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
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

	logger.Init(config.Logging.Env, config.Logging.Level)
	lg := logger.L()

	// Fail fast on a broken API document rather than at first swagger hit
	if err := swagger.ValidateSpec(context.Background(), "./api/openapi.yml"); err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	bus := events.NewEventBus(lg)
	registerAuditSubscribers(bus, lg)

	orgRepo := orgPostgres.NewOrgRepository(gormDB)
	balanceRepo := balancePostgres.NewBalanceRepository(gormDB)
	notificationRepo := notificationPostgres.NewNotificationRepository(gormDB)
	accountRepo := accountPostgres.NewAccountRepository(gormDB)
	requestRepo := requestPostgres.NewRequestRepository(gormDB)

	orgService := org.NewService(orgRepo, bus, lg)
	balanceService := balance.NewService(balanceRepo, lg)
	notificationService := notification.NewService(notificationRepo, lg)
	requestService := request.NewService(requestRepo, balanceService, notificationService, orgService, accountRepo, bus, lg)

	tokens := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(accountRepo, tokens)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),

		AuthHandler:         auth.NewHandler(authService),
		OrgHandler:          org.NewHandler(orgService),
		RequestHandler:      request.NewHandler(requestService),
		NotificationHandler: notification.NewHandler(notificationService),
	}, nil
}

// registerAuditSubscribers logs every workflow transition so succession
// and approval activity is traceable without a separate audit store.
func registerAuditSubscribers(bus *events.EventBus, lg *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		lg.Info("workflow event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range []string{
		events.EventEmployeeTransferred,
		events.EventDepartmentHeadless,
		events.EventDeputyPromoted,
		events.EventRequestSubmitted,
		events.EventRequestDecided,
	} {
		bus.Subscribe(eventType, audit)
	}
}

// initDB initializes the database connection used for health checks and
// handed to gorm as the shared connection pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
