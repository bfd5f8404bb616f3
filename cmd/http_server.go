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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/areas"
	areasPostgres "github.com/gestion-taller/taller-management/internal/areas/postgres"
	"github.com/gestion-taller/taller-management/internal/authz"
	"github.com/gestion-taller/taller-management/internal/clients"
	clientsPostgres "github.com/gestion-taller/taller-management/internal/clients/postgres"
	"github.com/gestion-taller/taller-management/internal/identity"
	"github.com/gestion-taller/taller-management/internal/inventory"
	inventoryPostgres "github.com/gestion-taller/taller-management/internal/inventory/postgres"
	"github.com/gestion-taller/taller-management/internal/permissions"
	permissionsPostgres "github.com/gestion-taller/taller-management/internal/permissions/postgres"
	"github.com/gestion-taller/taller-management/internal/projects"
	projectsPostgres "github.com/gestion-taller/taller-management/internal/projects/postgres"
	"github.com/gestion-taller/taller-management/internal/suppliers"
	suppliersPostgres "github.com/gestion-taller/taller-management/internal/suppliers/postgres"
	"github.com/gestion-taller/taller-management/internal/transport/rest"
	"github.com/gestion-taller/taller-management/internal/users"
	usersPostgres "github.com/gestion-taller/taller-management/internal/users/postgres"
	"github.com/gestion-taller/taller-management/internal/workshops"
	workshopsPostgres "github.com/gestion-taller/taller-management/internal/workshops/postgres"
	"github.com/gestion-taller/taller-management/pkg/logger"
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
	Config   *internal.Config
	GormDB   *gorm.DB
	SqlxDB   *sqlx.DB
	Router   *chi.Mux
	Verifier *identity.Verifier
	Gate     *authz.Gate
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.SqlxDB.DB,
		deps.SqlxDB,
		deps.Verifier,
		deps.Gate,
		deps.Handlers,
		deps.Config.Server.AllowedOrigins,
		deps.Logger,
	)

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
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.SqlxDB.Close(); err != nil {
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

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	gormDB, sqlxDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Permission catalog: built once at startup, swapped atomically on reload.
	permRepo := permissionsPostgres.NewRepository(gormDB)
	catalog := permissions.NewHolder(permRepo)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := catalog.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load permission catalog: %w", err)
	}

	evaluator := permissions.NewEvaluator(catalog, permRepo, lg)
	audit := authz.NewAuditLogger(gormDB, lg)
	gate := authz.NewGate(evaluator, audit, lg)
	verifier := identity.NewVerifier(config.Security.JWTSecret)

	usersService := users.NewService(usersPostgres.NewUserRepository(gormDB), config.Security.BCryptCost, lg)
	areasService := areas.NewService(areasPostgres.NewAreaRepository(gormDB), lg)
	clientsService := clients.NewService(clientsPostgres.NewClientRepository(gormDB), lg)
	projectsService := projects.NewService(projectsPostgres.NewProjectRepository(gormDB), lg)
	inventoryService := inventory.NewService(inventoryPostgres.NewInventoryRepository(gormDB), lg)
	suppliersService := suppliers.NewService(suppliersPostgres.NewSupplierRepository(gormDB), lg)
	workshopsService := workshops.NewService(workshopsPostgres.NewWorkshopRepository(gormDB), lg)

	handlers := rest.Handlers{
		Permissions: permissions.NewHandler(evaluator),
		Users:       users.NewHandler(usersService),
		Areas:       areas.NewHandler(areasService),
		Clients:     clients.NewHandler(clientsService),
		Projects:    projects.NewHandler(projectsService),
		Inventory:   inventory.NewHandler(inventoryService),
		Suppliers:   suppliers.NewHandler(suppliersService),
		Workshops:   workshops.NewHandler(workshopsService),
	}

	return &Dependencies{
		Config:   config,
		GormDB:   gormDB,
		SqlxDB:   sqlxDB,
		Router:   chi.NewRouter(),
		Verifier: verifier,
		Gate:     gate,
		Handlers: handlers,
		Logger:   lg,
	}, nil
}

// initDB opens one pgx-backed connection pool and exposes it through both
// gorm (repositories) and sqlx (raw lookups such as the stage area resolver).
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	sqlxDB, err := sqlx.Connect("pgx", cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlxDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlxDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlxDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		Conn: sqlxDB.DB,
	}), &gorm.Config{})
	if err != nil {
		_ = sqlxDB.Close()
		return nil, nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return gormDB, sqlxDB, nil
}
