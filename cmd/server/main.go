package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/trailquest/geohunt/internal/config"
	"github.com/trailquest/geohunt/internal/database"
	"github.com/trailquest/geohunt/internal/hunt"
	"github.com/trailquest/geohunt/internal/migrations"
	"github.com/trailquest/geohunt/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Checkpoint catalog ---
	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded", "checkpoints", len(catalog))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	// --- Redis ---
	rdb, err := openRedis(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer rdb.Close()
	logger.Info("connected to redis")

	// --- Store, seeding ---
	store := server.NewSQLiteStore(db)
	if err := server.SeedDemo(ctx, logger, store, catalog); err != nil {
		return fmt.Errorf("seeding demo session: %w", err)
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	// --- HTTP server ---
	srv := server.New(cfg.HTTPAddr, server.Options{
		Logger:      logger,
		DB:          db,
		Redis:       rdb,
		Store:       store,
		Broker:      server.NewBroker(),
		Catalog:     catalog,
		Evaluator:   hunt.Evaluator{Threshold: cfg.ProximityRadius},
		Positions:   server.NewPositionCache(rdb),
		AdminHash:   adminHash,
		SPADir:      cfg.SPADir,
		CORSOrigins: cfg.CORSOrigins,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func loadCatalog(path string) (hunt.Catalog, error) {
	if path == "" {
		return server.DemoCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	catalog, err := hunt.LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return catalog, nil
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
