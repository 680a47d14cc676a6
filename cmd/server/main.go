package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"dermis/internal/catalog"
	httpapi "dermis/internal/http"
	"dermis/internal/pipeline"
	"dermis/internal/pipeline/audit"
	"dermis/internal/pipeline/cache"
	"dermis/internal/pipeline/handler"
	"dermis/internal/pipeline/metrics"
	"dermis/internal/pipeline/ports"
	"dermis/internal/platform/config"
	"dermis/internal/platform/httpserver"
	"dermis/internal/platform/logger"
	redisplatform "dermis/internal/platform/redis"
	"dermis/internal/profile/store"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in internal packages.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules, err := pipeline.LoadRules(cfg.RulesPath)
	if err != nil {
		return err
	}
	templates, err := pipeline.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		return err
	}

	profiles, pool, err := newProfileStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	catalogSource := catalog.NewMemorySource(catalog.Ref{ID: "builtin", Version: "v1"}, nil)

	opts := []pipeline.Option{
		pipeline.WithLogger(log),
		pipeline.WithMetrics(metrics.New()),
	}

	redisClient, err := redisplatform.New(cfg.Redis)
	if err != nil {
		return err
	}
	var health []httpapi.HealthChecker
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, pipeline.WithCache(cache.NewRedis(redisClient.Client)))
		health = append(health, redisClient)
		log.Info("plan cache enabled")
	} else {
		log.Info("plan cache disabled, no redis URL configured")
	}

	if len(cfg.KafkaBrokers) > 0 {
		kafkaClient, err := audit.NewClient(cfg.KafkaBrokers)
		if err != nil {
			return err
		}
		publisher := audit.NewPublisher(kafkaClient, log)
		defer publisher.Close(context.Background())
		opts = append(opts, pipeline.WithAudit(publisher))
		log.Info("audit stream enabled", "brokers", cfg.KafkaBrokers, "topic", audit.Topic)
	}

	service := pipeline.New(profiles, rules, templates, catalogSource, opts...)
	router := httpapi.NewRouter(handler.New(service, log), health...)
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting dermis", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newProfileStore picks postgres when a DSN is configured, falling back to the
// in-memory store for development.
func newProfileStore(ctx context.Context, cfg config.Server, log *slog.Logger) (ports.ProfileStore, *pgxpool.Pool, error) {
	if cfg.PostgresDSN == "" {
		log.Info("using in-memory profile store, no postgres DSN configured")
		return store.NewMemory(), nil, nil
	}
	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	log.Info("using postgres profile store")
	return store.NewPostgres(pool), pool, nil
}
