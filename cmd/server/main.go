package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/ariqM1/fullstack-jam/internal/app"
	"github.com/ariqM1/fullstack-jam/internal/config"
	"github.com/ariqM1/fullstack-jam/internal/database"
	"github.com/ariqM1/fullstack-jam/internal/domain"
	"github.com/ariqM1/fullstack-jam/internal/logging"
	"github.com/ariqM1/fullstack-jam/internal/metrics"
	"github.com/ariqM1/fullstack-jam/internal/redis"
	"github.com/ariqM1/fullstack-jam/internal/server"
	"github.com/ariqM1/fullstack-jam/internal/version"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(cfg *config.Config) *goredis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

// resolveLikedCollection looks up the reserved collection that backs the
// liked flag. It is created by the initial migration, so absence is fatal.
func resolveLikedCollection(collections domain.CollectionRepository) uuid.UUID {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	liked, err := collections.GetByName(ctx, domain.LikedCollectionName)
	if err != nil {
		slog.Error("Failed to resolve liked collection", "error", err)
		os.Exit(1)
	}
	return liked.ID
}

func runGracefulShutdown(srv *server.Server, appSvc *app.Service) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		// Running copy jobs record their cancellation before we exit.
		appSvc.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)
	metrics.BuildInfo.WithLabelValues(version.Version, version.Commit, runtime.Version()).Set(1)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(cfg)
	defer func() { _ = redisClient.Close() }()

	// Repositories and stores
	collectionRepo := database.NewCollectionRepo(pool)
	companyRepo := database.NewCompanyRepo(pool)
	assocRepo := database.NewAssociationRepo(pool)
	operationStore := redis.NewOperationStore(redisClient)

	likedID := resolveLikedCollection(collectionRepo)

	counts := app.NewCountCache(cfg.CountCacheTTL, clock)
	copier := app.NewCopier(assocRepo, operationStore, clock, cfg.CopyRowDelay, cfg.CopyProgressEvery)
	appSvc := app.NewService(collectionRepo, companyRepo, assocRepo, operationStore, counts, copier, likedID)

	srv, err := server.NewServer(cfg, appSvc, pool, redisClient)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv, appSvc)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
