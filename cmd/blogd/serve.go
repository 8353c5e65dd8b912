package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/unais-08/blogs-fullstack/internal/auth"
	"github.com/unais-08/blogs-fullstack/internal/config"
	"github.com/unais-08/blogs-fullstack/internal/database"
	"github.com/unais-08/blogs-fullstack/internal/logging"
	"github.com/unais-08/blogs-fullstack/internal/ratelimit"
	postgresrepo "github.com/unais-08/blogs-fullstack/internal/repository/postgres"
	"github.com/unais-08/blogs-fullstack/internal/server"
	"github.com/unais-08/blogs-fullstack/internal/service"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/router"
)

var serveFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "listen",
		Usage: "listen address, overrides PORT",
	},
	&cli.StringFlag{
		Name:  "env",
		Usage: "development, production or test, overrides APP_ENV",
	},
	&cli.BoolFlag{
		Name:  "migrate",
		Usage: "apply pending migrations before serving",
	},
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if env := c.String("env"); env != "" {
		cfg.Env = env
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	return cfg, nil
}

func serve(c *cli.Context) error {
	ctx := c.Context

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Opened before the pool so that it is closed after it.
	var (
		denylist auth.Denylist = auth.NopDenylist{}
		store    ratelimit.Store
	)
	if cfg.RedisURL != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Error("redis connection failed", zap.Error(err))
			return err
		}
		defer rdb.Close()
		log.Info("connected to redis")

		denylist = auth.NewRedisDenylist(rdb)
		store = ratelimit.NewRedisStore(rdb)
	} else {
		mem, err := newMemoryStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer mem.Close()
		log.Warn("REDIS_URL not set, rate limits are per-process and logout does not revoke tokens")
		store = mem
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Error("database connection failed", zap.Error(err))
		return err
	}
	defer db.Close()
	log.Info("connected to database")

	if c.Bool("migrate") {
		if err := database.Migrate(ctx, db); err != nil {
			log.Error("migration failed", zap.Error(err))
			return err
		}
	}

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher, cfg.BcryptRounds)
	if err != nil {
		return err
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn, cfg.JWTIssuer, cfg.JWTAudience)

	userRepo := postgresrepo.NewUserRepo(db)
	blogRepo := postgresrepo.NewBlogRepo(db)

	authService := service.NewAuthService(userRepo, hasher, tokens, denylist, log)
	blogService := service.NewBlogService(blogRepo, log)

	handler := router.New(router.Deps{
		Log:           log,
		Production:    cfg.IsProduction(),
		CORSOrigin:    cfg.CORSOrigin,
		AuthService:   authService,
		BlogService:   blogService,
		Tokens:        tokens,
		Denylist:      denylist,
		GlobalLimiter: ratelimit.NewLimiter(store, "global", cfg.RateLimitMaxRequests, cfg.RateLimitWindow),
		AuthLimiter:   ratelimit.NewLimiter(store, "auth", cfg.AuthRateLimitMax, cfg.AuthRateLimitWindow),
		DB:            db,
	})

	addr := cfg.ListenAddr()
	if listen := c.String("listen"); listen != "" {
		addr = listen
	}

	log.Info("starting blog API", zap.String("env", cfg.Env), zap.String("addr", addr))

	return server.Serve(ctx, addr, handler, server.Options{
		ShutdownTimeout: cfg.ShutdownTimeout,
		Log:             log,
	})
}

func newMemoryStore(ctx context.Context, cfg *config.Config) (*ratelimit.MemoryStore, error) {
	window := max(cfg.RateLimitWindow, cfg.AuthRateLimitWindow)
	mem, err := ratelimit.NewMemoryStore(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("creating in-memory rate limit store: %w", err)
	}
	return mem, nil
}
