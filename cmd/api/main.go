package main

import (
	"context"

	"github.com/abhishek622/coderstat/internal/auth"
	"github.com/abhishek622/coderstat/internal/cache"
	"github.com/abhishek622/coderstat/internal/config"
	"github.com/abhishek622/coderstat/internal/database"
	"github.com/abhishek622/coderstat/internal/fetcher"
	"github.com/abhishek622/coderstat/internal/handler"
	"github.com/abhishek622/coderstat/internal/logger"
	"github.com/abhishek622/coderstat/internal/metrics"
	"github.com/abhishek622/coderstat/internal/repository"
	"github.com/abhishek622/coderstat/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type application struct {
	DB         *pgxpool.Pool
	Logger     *zap.Logger
	Config     *config.Config
	Registry   *prometheus.Registry
	Metrics    *metrics.Metrics
	TokenMaker *auth.JWTMaker
	Handler    *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()

	log, err := logger.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded: %s", cfg)

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxConns, cfg.DB.MaxConnLifetime)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			sugar.Fatal(err)
		}
	}

	var readCache service.Cache = cache.Noop{}
	if cfg.Redis.Enabled {
		rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()
		if err := cache.Ping(ctx, rdb); err != nil {
			sugar.Warnw("redis unavailable, lookups will not be cached", "addr", cfg.Redis.Addr, "err", err)
		} else {
			readCache = cache.NewJSONCache(rdb, "coderstat:")
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	agg := fetcher.NewDefault(fetcher.HTTPConfig{
		Timeout:      cfg.Fetch.Timeout,
		UserAgent:    cfg.Fetch.UserAgent,
		Retries:      cfg.Fetch.Retries,
		Backoff:      cfg.Fetch.Backoff,
		MaxBodyBytes: cfg.Fetch.MaxBodyBytes,
	}, cfg.Fetch.Concurrency, log, m)

	repo := repository.NewRepository(pool)
	svc := service.NewStatsService(repo.Handle, repo.Stats, agg, readCache,
		service.CacheTTL{Stats: cfg.Cache.StatsTTL, Contests: cfg.Cache.ContestsTTL}, m, log)

	app := &application{
		DB:         pool,
		Logger:     log,
		Config:     cfg,
		Registry:   reg,
		Metrics:    m,
		TokenMaker: auth.NewJWTMaker(cfg.JWT.Secret, cfg.JWT.Issuer),
		Handler:    &handler.Handler{Logger: log, Stats: svc},
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
