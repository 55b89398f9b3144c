package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ariel-nathan/chirp/internal/audit"
	"github.com/ariel-nathan/chirp/internal/config"
	"github.com/ariel-nathan/chirp/internal/events"
	"github.com/ariel-nathan/chirp/internal/identity"
	"github.com/ariel-nathan/chirp/internal/posts"
	"github.com/ariel-nathan/chirp/internal/profile"
	"github.com/ariel-nathan/chirp/internal/router"
	"github.com/ariel-nathan/chirp/internal/web"
)

func main() {
	cfg := config.Load()

	setupLogger(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is not set")
		os.Exit(1)
	}
	if cfg.SessionJWTSecret == "" {
		slog.Error("SESSION_JWT_SECRET is not set")
		os.Exit(1)
	}
	secret := []byte(cfg.SessionJWTSecret)

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("error creating pgx pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		slog.Error("error pinging database", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		slog.Error("invalid REDIS_URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	nc, err := nats.Connect(cfg.NatsURL)
	if err != nil {
		slog.Error("error connecting to nats", "error", err)
		os.Exit(1)
	}
	defer nc.Close()

	idClient := identity.NewClient(cfg.IdentityAPIURL, cfg.IdentityAPIKey)

	limiter := posts.NewRedisCreateLimiter(rdb, 3, time.Minute)
	publisher := events.NewNatsPublisher(nc)

	postSvc := posts.NewService(posts.NewRepository(pool), idClient, limiter, publisher)
	postsHandler := posts.NewHandler(postSvc)
	postsHandler.Audit = &audit.Recorder{DB: pool}

	app := fiber.New(fiber.Config{
		ErrorHandler: router.ErrorHandler(),
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Dev token endpoint: mints a session for a fixed user so the API
	// can be exercised without the hosted identity provider.
	if !cfg.IsProduction() {
		app.Get("/dev/token", func(c *fiber.Ctx) error {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "user_2devdevdevdevdevdevdevdev",
				"exp": time.Now().Add(24 * time.Hour).Unix(),
			})
			signed, err := token.SignedString(secret)
			if err != nil {
				return err
			}
			return c.JSON(fiber.Map{"token": signed})
		})
	}

	r := &router.Router{
		PostsHandler:   postsHandler,
		ProfileHandler: profile.NewHandler(idClient),
		WebHandler:     web.NewHandler(postSvc, idClient, web.NewRedisCache(rdb)),
		AuthMW:         identity.RequireSession(secret),
		SessionMW:      identity.OptionalSession(secret),
	}
	r.RegisterRoutes(app)

	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	})))
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		slog.Info("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	}
}
