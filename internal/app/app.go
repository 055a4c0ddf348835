package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/slapp/internal/bot"
	"github.com/MrSnakeDoc/slapp/internal/config"
	"github.com/MrSnakeDoc/slapp/internal/gateway"
	"github.com/MrSnakeDoc/slapp/internal/httpserver"
	"github.com/MrSnakeDoc/slapp/internal/httpserver/deps"
	"github.com/MrSnakeDoc/slapp/internal/index"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/metrics"
	"github.com/MrSnakeDoc/slapp/internal/presenter"
	"github.com/MrSnakeDoc/slapp/internal/reactions"
	"github.com/MrSnakeDoc/slapp/internal/redis"
	"github.com/MrSnakeDoc/slapp/internal/scheduler"
	redisstore "github.com/MrSnakeDoc/slapp/internal/store/redis"
	"github.com/MrSnakeDoc/slapp/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.RosterReloader
	discord     *gateway.Discord
}

// New wires the bot, the roster reloader and the admin server from cfg.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(true); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	m := metrics.New()

	// Redis is optional, but once configured it must answer (fail fast)
	var (
		redisClient *goredis.Client
		store       *redisstore.Store
	)
	if cfg.RedisEnabled() {
		client, err := redis.Connect(context.Background(), redis.Options{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, errors.Wrap(err, "failed to connect to redis")
		}
		redisClient = client
		store = redisstore.NewStore(client)
	} else {
		loggerClient.Info("redis address not configured, query cache and snapshot disabled")
	}

	memIndex := index.NewMemoryIndex()
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewRosterReloader(
		cfg.RosterFile,
		store,
		memIndex,
		loggerClient,
		m,
		cfg.ReloadInterval,
		reloadTrigger,
	)
	if store != nil {
		reloader.WithFallback(scheduler.NewRedisSyncer(store, memIndex, loggerClient).Sync)
	}

	discord, err := gateway.NewDiscord(gateway.Options{
		Token: cfg.DiscordToken,
		Rate:  cfg.GatewayRate,
		Burst: cfg.GatewayBurst,
	}, loggerClient, m)
	if err != nil {
		closeRedis(redisClient, loggerClient)
		return nil, err
	}

	pres := presenter.New(memIndex, discord, reactions.NewCache(cfg.ReactionCacheSize), loggerClient, m, presenter.Options{
		MaxResults:    cfg.MaxResults,
		CommandPrefix: cfg.CommandPrefix,
	})
	searcher := bot.NewSearcher(memIndex, store, cfg.QueryCacheTTL, loggerClient)
	b := bot.New(pres, searcher, discord, cfg.CommandPrefix, loggerClient).
		WithReload(reloadTrigger, cfg.IsOwner)
	router := b.Router()
	discord.OnMessage(router.HandleMessage)
	discord.OnReaction(b.HandleReaction)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		CORSOrigins:   cfg.CORSOrigins,
		RosterFile:    cfg.RosterFile,
		Store:         store,
		MemoryIndex:   memIndex,
		Presenter:     pres,
		Searcher:      searcher,
		Metrics:       m,
		ReloadTrigger: reloadTrigger,
		PreviewRate:   cfg.PreviewRate,
		PreviewBurst:  cfg.PreviewBurst,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		discord:     discord,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the roster (or its Redis snapshot) before answering anyone
	if err := a.reloader.Start(ctx); err != nil {
		closeRedis(a.redisClient, a.logger)
		return errors.Wrap(err, "failed to start roster reloader")
	}
	players, teams, sources := a.memIndex.Counts()
	a.logger.Info("roster reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval),
		logger.Int("players", players),
		logger.Int("teams", teams),
		logger.Int("sources", sources))

	if a.cfg.WatchRoster {
		if err := a.reloader.Watch(ctx); err != nil {
			a.logger.Warn("roster file watch disabled", logger.Error(err))
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- errors.Wrap(err, "http server error")
		}
	}()

	if err := a.discord.Open(ctx); err != nil {
		a.shutdown()
		return err
	}
	a.logger.Info("✅ Bot connected", logger.String("prefix", a.cfg.CommandPrefix))

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.shutdown()
	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ Slapp stopped cleanly")
	return nil
}

func (a *App) shutdown() {
	a.reloader.Stop()

	if err := a.discord.Close(); err != nil {
		a.logger.Warn("failed to close discord session", logger.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		a.logger.Warn("failed to stop server", logger.Error(err))
	}

	closeRedis(a.redisClient, a.logger)
	_ = a.logger.Sync()
}

func closeRedis(client *goredis.Client, log logger.Logger) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Warnf("failed to close redis: %v", err)
		return
	}
	log.Info("✅ Redis closed cleanly")
}
