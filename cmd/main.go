package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gizo333/react-server/config"
	"github.com/gizo333/react-server/db"
	"github.com/gizo333/react-server/internal/auth/handler"
	"github.com/gizo333/react-server/internal/auth/ratelimit"
	repo "github.com/gizo333/react-server/internal/auth/repository/postgres"
	"github.com/gizo333/react-server/internal/auth/service"
	"github.com/gizo333/react-server/internal/hashing"
	"github.com/gizo333/react-server/internal/logger"
	"github.com/gizo333/react-server/internal/mailer"
)

func main() {
	cfg := config.Load()

	log := logger.Init(cfg.Env)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	limiter := newLimiter(ctx, cfg, log)
	sender := newSender(cfg)

	userRepo := repo.NewPostgresRepository(pool)
	tokenService := service.NewTokenService(cfg.TokenSecret, cfg.TokenTTL)
	hasher := hashing.NewHasher(cfg.BcryptCost)
	userService := service.NewUserService(userRepo, tokenService, hasher, sender)
	authHandler := handler.NewAuthHandler(userService)

	app := fiber.New()
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowedOrigins}))
	handler.RegisterRoutes(app, authHandler, limiter)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		_ = app.Shutdown()
	}()

	log.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLimiter(ctx context.Context, cfg *config.Config, log *zap.Logger) ratelimit.Limiter {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		return ratelimit.NewRedisLimiter(redis.NewClient(opts), cfg.RateLimitWindow, cfg.RateLimitMax)
	}

	mem := ratelimit.NewMemoryLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)
	mem.StartSweeping(ctx, cfg.RateLimitWindow)
	return mem
}

func newSender(cfg *config.Config) mailer.Sender {
	if cfg.SMTPAddr == "" {
		return mailer.NopSender{}
	}
	return mailer.NewSMTPSender(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
}
