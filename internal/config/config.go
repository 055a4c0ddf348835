package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Chat gateway
	DiscordToken  string   // bot token, required by serve
	CommandPrefix string   // ex: "!"
	OwnerIDs      []string // users allowed to run owner commands (reload)
	GatewayRate   float64  // outbound gateway calls per second (0 = unlimited)
	GatewayBurst  int      // outbound burst

	// Presentation
	ReactionCacheSize int // reaction indexes kept for drill-down (default: 50)
	MaxResults        int // entities rendered per category (default: 20)

	// Roster
	RosterFile     string        // path to the roster YAML file
	ReloadInterval time.Duration // periodic reload (0 = only on trigger)
	WatchRoster    bool          // reload when the file changes on disk

	// Redis (empty address disables it)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
	QueryCacheTTL         time.Duration // lifetime of cached query matches

	// Admin HTTP
	AllowedHosts []string // optional, restrict admin routes to specific Host headers
	AllowedCIDRS []string // optional, restrict admin routes to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	CORSOrigins  []string // origins allowed to call the preview API
	PreviewRate  float64  // preview requests per second per client IP
	PreviewBurst int
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("SLAPP_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("SLAPP_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("SLAPP_LOG_LEVEL", "info"),
		PrettyLog: mustBool("SLAPP_PRETTY_LOG", true),

		// Gateway
		DiscordToken:  getenv("SLAPP_DISCORD_TOKEN", ""),
		CommandPrefix: getenv("SLAPP_COMMAND_PREFIX", "!"),
		OwnerIDs:      splitAndTrim(getenv("SLAPP_OWNER_IDS", "")),
		GatewayRate:   getenvFloat("SLAPP_GATEWAY_RATE", 5),
		GatewayBurst:  getenvInt("SLAPP_GATEWAY_BURST", 5),

		// Presentation
		ReactionCacheSize: getenvInt("SLAPP_REACTION_CACHE_SIZE", 50),
		MaxResults:        getenvInt("SLAPP_MAX_RESULTS", 20),

		// Roster
		RosterFile:     getenv("SLAPP_ROSTER_FILE", "/app/roster.yaml"),
		ReloadInterval: mustDuration("SLAPP_RELOAD_INTERVAL", 24*time.Hour),
		WatchRoster:    mustBool("SLAPP_WATCH_ROSTER", true),

		// Redis settings
		RedisAddr:             getenv("SLAPP_REDIS_ADDR", ""),
		RedisUser:             getenv("SLAPP_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("SLAPP_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("SLAPP_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("SLAPP_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
		QueryCacheTTL:         mustDuration("SLAPP_QUERY_CACHE_TTL", 10*time.Minute),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("SLAPP_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("SLAPP_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("SLAPP_TRUST_PROXY", false),
		CORSOrigins:  splitAndTrim(getenv("SLAPP_CORS_ORIGINS", "")),
		PreviewRate:  getenvFloat("SLAPP_PREVIEW_RATE", 1),
		PreviewBurst: getenvInt("SLAPP_PREVIEW_BURST", 5),
	}

	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: SLAPP_REDIS_PASSWORD is required when SLAPP_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.DiscordToken != "" {
		cp.DiscordToken = "***REDACTED***"
	}
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	return cp
}

// RedisEnabled reports whether a Redis address is configured.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

// IsOwner reports whether userID may run owner commands.
func (c *Config) IsOwner(userID string) bool {
	for _, id := range c.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Validate checks settings whose defaults cannot be trusted. The Discord
// token is only required when the bot connects.
func (c *Config) Validate(needDiscord bool) error {
	switch {
	case needDiscord && c.DiscordToken == "":
		return errors.New("SLAPP_DISCORD_TOKEN is required")
	case strings.TrimSpace(c.CommandPrefix) == "":
		return errors.New("SLAPP_COMMAND_PREFIX must not be empty")
	case strings.ContainsAny(c.CommandPrefix, " \t\n"):
		return errors.Errorf("SLAPP_COMMAND_PREFIX must not contain spaces, got %q", c.CommandPrefix)
	case c.RosterFile == "":
		return errors.New("SLAPP_ROSTER_FILE must not be empty")
	case c.ReactionCacheSize < 1:
		return errors.Errorf("SLAPP_REACTION_CACHE_SIZE must be > 0, got %d", c.ReactionCacheSize)
	case c.MaxResults < 1 || c.MaxResults > 25:
		return errors.Errorf("SLAPP_MAX_RESULTS must be between 1 and 25, got %d", c.MaxResults)
	case c.ReloadInterval < 0:
		return errors.Errorf("SLAPP_RELOAD_INTERVAL must be >= 0, got %v", c.ReloadInterval)
	case c.GatewayRate < 0 || c.PreviewRate < 0:
		return errors.New("rates must be >= 0")
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
		}
		return i
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Invalid number value for %s: %s", key, v))
		}
		return f
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

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
