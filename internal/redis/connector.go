package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MrSnakeDoc/accountlink/internal/logger"
)

// ConnectOptions defines the sandbox's Redis connection and retry behavior.
type ConnectOptions struct {
	Addr         string `validate:"required"` // ex: "localhost:6379"
	User         string
	Password     string
	RedisDB      int `validate:"gte=0"`
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int `validate:"gte=0"`

	ConnectTimeout time.Duration `validate:"gt=0"`  // total budget for connection attempts (ex: 30s)
	RetryInterval  time.Duration `validate:"gt=0"`  // first wait, doubled on each failure (ex: 2s)
	MaxWait        time.Duration `validate:"gt=0"`  // cap on the wait between attempts (ex: 10s)
	PingTimeout    time.Duration `validate:"gt=0"`  // per attempt (ex: 5s)
	WarnThreshold  int           `validate:"gte=0"` // attempts logged at warn before escalating to error
}

func validateOptions(opts ConnectOptions) error {
	if err := validator.New().Struct(opts); err != nil {
		return fmt.Errorf("invalid redis options: %w", err)
	}
	return nil
}

// New creates a Redis client for the sandbox store and pings it until it
// answers or ConnectTimeout runs out. The client is closed on failure.
func New(opts ConnectOptions, log logger.Logger) (*redis.Client, error) {
	if err := validateOptions(opts); err != nil {
		log.Error("refusing to connect to redis", logger.Error(err))
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Username:     opts.User,
		Password:     opts.Password,
		DB:           opts.RedisDB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	})

	if err := waitReady(client, opts, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// newBackOff doubles the wait from RetryInterval up to MaxWait, giving up
// after ConnectTimeout.
func newBackOff(opts ConnectOptions) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.RetryInterval
	b.MaxInterval = opts.MaxWait
	b.MaxElapsedTime = opts.ConnectTimeout
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.Reset()
	return b
}

// retryLevel picks how loud a failed attempt is: warn while under the
// threshold, error once past it or when less than 10s of budget is left.
func retryLevel(attempt, warnThreshold int, remaining time.Duration) string {
	if remaining < 10*time.Second || attempt > warnThreshold {
		return "error"
	}
	return "warn"
}

func waitReady(client *redis.Client, opts ConnectOptions, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	log.Info("waiting for redis",
		logger.String("addr", opts.Addr),
		logger.Duration("budget", opts.ConnectTimeout))

	start := time.Now()
	attempt := 0
	ping := func() error {
		attempt++
		pingCtx, pingCancel := context.WithTimeout(ctx, opts.PingTimeout)
		defer pingCancel()
		return client.Ping(pingCtx).Err()
	}

	notify := func(err error, next time.Duration) {
		remaining := time.Duration(0)
		if deadline, ok := ctx.Deadline(); ok {
			remaining = time.Until(deadline)
		}
		fields := []zap.Field{
			logger.String("addr", opts.Addr),
			logger.Int("attempt", attempt),
			logger.Duration("remaining", remaining),
			logger.Duration("next_retry_in", next),
			logger.Error(err),
		}
		if retryLevel(attempt, opts.WarnThreshold, remaining) == "warn" {
			log.Warn("redis ping failed, retrying", fields...)
			return
		}
		log.Error("redis still unreachable", fields...)
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(newBackOff(opts), ctx), notify); err != nil {
		log.Error("giving up on redis",
			logger.String("addr", opts.Addr),
			logger.Int("attempts", attempt),
			logger.Error(err))
		return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w",
			opts.Addr, attempt, opts.ConnectTimeout, err)
	}

	log.Info("redis ready",
		logger.String("addr", opts.Addr),
		logger.Int("attempts", attempt),
		logger.Duration("elapsed", time.Since(start)))
	return nil
}
