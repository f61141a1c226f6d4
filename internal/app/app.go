package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/accountlink/internal/config"
	"github.com/MrSnakeDoc/accountlink/internal/httpserver"
	"github.com/MrSnakeDoc/accountlink/internal/httpserver/deps"
	"github.com/MrSnakeDoc/accountlink/internal/logger"
	"github.com/MrSnakeDoc/accountlink/internal/redis"
	"github.com/MrSnakeDoc/accountlink/internal/scheduler"
	"github.com/MrSnakeDoc/accountlink/internal/store"
	"github.com/MrSnakeDoc/accountlink/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/accountlink/internal/store/redis"
	"github.com/MrSnakeDoc/accountlink/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.FixtureReloader
	reloadCh    chan struct{}
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	st, redisClient, err := openStore(cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open %s store: %v", cfg.Store, err)
		os.Exit(1)
	}

	// Manual reload trigger, fed by SIGHUP in Run
	reloadCh := make(chan struct{}, 1)
	reloader := scheduler.NewFixtureReloader(
		cfg.FixtureFile,
		st,
		loggerClient.Named("fixtures"),
		cfg.FixtureReloadInterval,
		reloadCh,
	)

	d := deps.Deps{
		Logger:                loggerClient,
		StartTime:             time.Now(),
		Version:               version.Version,
		Commit:                version.Commit,
		BuildDate:             version.BuildDate,
		GoVersion:             version.GoVersion,
		TimeNow:               time.Now,
		Store:                 st,
		StoreKind:             cfg.Store,
		BasePath:              cfg.BasePath,
		RateLimitBurst:        cfg.RateLimitBurst,
		RateLimitRefillPerMin: cfg.RateLimitRefillPerMin,
		TrustProxy:            cfg.TrustProxy,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		reloader:    reloader,
		reloadCh:    reloadCh,
	}
}

func openStore(cfg *config.Config, loggerClient logger.Logger) (store.Store, *goredis.Client, error) {
	if cfg.Store != "redis" {
		loggerClient.Info("using in-memory store")
		return memory.New(), nil, nil
	}

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient.Named("redis"))
	if err != nil {
		return nil, nil, err
	}
	loggerClient.Info("Redis initialized successfully")

	return redisstore.NewStore(redisClient), redisClient, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Kaleron sandbox v%s on %s%s", version.Version, a.cfg.ListenPort, a.cfg.BasePath)
	a.logger.Infof("kaleron-sandbox %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Seed account links - fail fast on bad fixtures
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start fixture reloader: %w", err)
	}
	a.logger.Info("fixture reloader started",
		logger.String("file", a.cfg.FixtureFile),
		logger.Duration("interval", a.cfg.FixtureReloadInterval))

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-hup:
				select {
				case a.reloadCh <- struct{}{}:
				default: // a reload is already pending
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case serverErr = <-errCh:
		a.logger.Error("server stopped unexpectedly", logger.Error(serverErr))
	}

	if err := a.shutdown(); err != nil && serverErr == nil {
		return err
	}
	return serverErr
}

// shutdown stops the reloader and the server, then closes redis.
// It runs on every exit of Run, including a failed server.
func (a *App) shutdown() error {
	a.reloader.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	var stopErr error
	if err := a.server.Stop(shutdownCtx); err != nil {
		stopErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	_ = a.logger.Sync()
	if stopErr == nil {
		a.logger.Info("✅ Kaleron sandbox stopped cleanly")
	}
	return stopErr
}
