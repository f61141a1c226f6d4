package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        `validate:"required"` // ex: ":8088"
	ShutdownTimeout time.Duration `validate:"gt=0"`     // ex: 5s

	LogLevel  string `validate:"oneof=debug info warn error"`
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	FixtureFile           string        `validate:"required"`              // YAML file seeding the account links
	FixtureReloadInterval time.Duration `validate:"gte=0"`                 // 0 = reload only on SIGHUP
	BasePath              string        `validate:"required,startswith=/"` // API root, mirrors the production /API/V1
	Store                 string        `validate:"oneof=memory redis"`    // storage backend

	// Rate limiting (0 burst = disabled)
	RateLimitBurst        int  `validate:"gte=0"`
	RateLimitRefillPerMin int  `validate:"gte=0"`
	TrustProxy            bool // true => rate limit on X-Forwarded-For / CF-Connecting-IP

	// Redis (only used when Store == "redis")
	RedisAddr           string        `validate:"required_if=Store redis"` // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           `validate:"gte=0"`
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts
}

// Load reads the sandbox configuration from the environment, after loading
// a .env file from the working directory when one exists.
func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("KALERON_SANDBOX_LISTEN_PORT", ":8088"),
		ShutdownTimeout: mustDuration("KALERON_SANDBOX_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("KALERON_SANDBOX_LOG_LEVEL", "info"),
		PrettyLog: mustBool("KALERON_SANDBOX_PRETTY_LOG", true),

		// Sandbox data
		FixtureFile:           requireEnv("KALERON_SANDBOX_FIXTURE_FILE"),
		FixtureReloadInterval: mustDuration("KALERON_SANDBOX_FIXTURE_RELOAD_INTERVAL", 0),
		BasePath:              getenv("KALERON_SANDBOX_BASE_PATH", "/API/V1"),
		Store:                 getenv("KALERON_SANDBOX_STORE", "memory"),

		// Rate limiting
		RateLimitBurst:        getenvInt("KALERON_SANDBOX_RATE_LIMIT_BURST", 0),
		RateLimitRefillPerMin: getenvInt("KALERON_SANDBOX_RATE_LIMIT_REFILL_PER_MIN", 60),
		TrustProxy:            mustBool("KALERON_SANDBOX_TRUST_PROXY", false),

		// Redis settings
		RedisAddr:           getenv("KALERON_SANDBOX_REDIS_ADDR", ""),
		RedisUser:           getenv("KALERON_SANDBOX_REDIS_USERNAME", ""),
		RedisPassword:       getenv("KALERON_SANDBOX_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("KALERON_SANDBOX_REDIS_DB", 0),
		RedisDT:             mustDuration("KALERON_SANDBOX_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("KALERON_SANDBOX_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("KALERON_SANDBOX_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("KALERON_SANDBOX_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("KALERON_SANDBOX_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("KALERON_SANDBOX_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("KALERON_SANDBOX_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("KALERON_SANDBOX_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("KALERON_SANDBOX_REDIS_WARN_THRESHOLD", 3),
	}

	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: invalid sandbox configuration: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// Validate checks field constraints declared in the struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
