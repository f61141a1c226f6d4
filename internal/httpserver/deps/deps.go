package deps

import (
	"time"

	"github.com/MrSnakeDoc/accountlink/internal/logger"
	"github.com/MrSnakeDoc/accountlink/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now
	Store     store.Store      // links, comments and reactions
	StoreKind string           // "memory" | "redis", reported by readyz
	BasePath  string           // API root the account link routes are mounted under (ex: /API/V1)

	RateLimitBurst        int  // 0 = rate limiting disabled
	RateLimitRefillPerMin int  // tokens regained per client per minute
	TrustProxy            bool // true if running behind a trusted reverse proxy (e.g., cloudflared)
}
