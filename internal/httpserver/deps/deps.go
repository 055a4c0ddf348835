package deps

import (
	"time"

	"github.com/MrSnakeDoc/slapp/internal/bot"
	"github.com/MrSnakeDoc/slapp/internal/index"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/metrics"
	"github.com/MrSnakeDoc/slapp/internal/presenter"
	redisstore "github.com/MrSnakeDoc/slapp/internal/store/redis"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	AllowedHosts  []string             // Host headers allowed to access the admin routes
	AllowedCIDRS  []string             // IPs allowed to access the admin routes
	TrustProxy    bool                 // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins   []string             // Origins allowed to call the preview API (empty = CORS off)
	RosterFile    string               // Path to the roster file
	Store         *redisstore.Store    // Roster snapshot and query cache (nil when Redis is disabled)
	MemoryIndex   *index.MemoryIndex   // In-memory roster index
	Presenter     *presenter.Presenter // Renders query results
	Searcher      *bot.Searcher        // Resolves preview queries
	Metrics       *metrics.Metrics     // Prometheus collectors (nil disables /metrics)
	ReloadTrigger chan struct{}        // Channel to trigger manual roster reload
	PreviewRate   float64              // Preview requests per second per client IP
	PreviewBurst  int                  // Preview burst per client IP
}
