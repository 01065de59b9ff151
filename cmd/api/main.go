package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/summit/internal/adapters/billing"
	"github.com/comitanigiacomo/summit/internal/adapters/cache"
	"github.com/comitanigiacomo/summit/internal/adapters/llm"
	"github.com/comitanigiacomo/summit/internal/adapters/repository"
	"github.com/comitanigiacomo/summit/internal/config"
	"github.com/comitanigiacomo/summit/internal/logging"
)

const shutdownTimeout = 10 * time.Second

// @title                      Summit API
// @version                    1.0
// @description                AI fitness coaching: plans, workouts, metrics and chat.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "summit",
		Short:        "Summit coaching API",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")

	serve := newServeCmd(&envFile)
	root.AddCommand(serve, newMigrateCmd(&envFile))
	root.RunE = serve.RunE

	return root
}

func newServeCmd(envFile *string) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the plan worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return serve(cmd.Context(), cfg, logger, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func newMigrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, err := connectDB(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			return migrate(cmd.Context(), db, logger)
		},
	}
}

func bootstrap(envFile string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.Server.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, logger, nil
}

func connectDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func migrate(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	applied, err := repository.Migrate(ctx, db)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if len(applied) == 0 {
		logger.Info("database schema is up to date")
	}
	for _, name := range applied {
		logger.Info("migration applied", zap.String("file", name))
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger, autoMigrate bool) error {
	startTime := time.Now()

	if !cfg.Server.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("connecting to database", zap.String("host", cfg.Database.Host), zap.String("name", cfg.Database.Name))
	db, err := connectDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if autoMigrate {
		if err := migrate(ctx, db, logger); err != nil {
			return err
		}
	}

	rdb, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, running without cache, rate limiting and durable drafts", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := newApp(ctx, appDeps{
		cfg:      cfg,
		stores:   postgresStores(db, rdb, cfg.Redis.DraftTTL, logger),
		model:    llm.NewAnthropicModel(cfg.LLM, logger),
		verifier: billing.NewStripeVerifier(cfg.Billing.WebhookSecret),
		db:       db,
		redis:    rdb,
		logger:   logger,
		started:  startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("summit api listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("stop signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}
