package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warden/internal/auth/handler"
	"warden/internal/auth/service"
	"warden/internal/auth/store"
	"warden/internal/auth/store/challenge"
	"warden/internal/auth/store/revocation"
	"warden/internal/auth/store/user"
	"warden/internal/auth/token"
	"warden/internal/email"
	"warden/internal/password"
	"warden/internal/platform/config"
	"warden/internal/platform/httpserver"
	"warden/internal/platform/logger"
	"warden/internal/platform/metrics"
	"warden/internal/platform/postgres"
	"warden/internal/platform/redis"
	httptransport "warden/internal/transport/http"
	"warden/pkg/domain"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Backends degrade gracefully: without DATABASE_URL or REDIS_URL the process
// runs on in-memory stores, which is fine for dev and useless for production.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hasher := password.New(password.DefaultParams())

	var users store.UserStore
	if cfg.Postgres.URL != "" {
		pool, err := postgres.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Error("postgres migration failed", "error", err)
			os.Exit(1)
		}
		users = user.NewPostgres(pool, hasher)
		log.Info("user store: postgres")
	} else {
		users = user.NewMemory(hasher)
		log.Warn("user store: in-memory, users are lost on restart")
	}

	checks := map[string]httptransport.HealthCheck{}

	var (
		challenges store.ChallengeStore
		revoked    store.TokenRevocationList
	)
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		challenges = challenge.NewRedis(redisClient.Client)
		revoked = revocation.NewRedis(redisClient.Client)
		checks["redis"] = redisClient.Health
		log.Info("challenge store and revocation list: redis")
	} else {
		challenges = challenge.NewMemory()
		revoked = revocation.NewMemory()
		log.Warn("challenge store and revocation list: in-memory")
	}

	var sender email.Sender
	if cfg.Postmark.AuthToken != "" {
		fromAddr, err := domain.ParseEmail(cfg.Postmark.Sender)
		if err != nil {
			log.Error("invalid POSTMARK_SENDER address", "error", err)
			os.Exit(1)
		}
		sender, err = email.NewPostmark(cfg.Postmark.BaseURL, fromAddr,
			domain.NewSecret(cfg.Postmark.AuthToken), nil)
		if err != nil {
			log.Error("postmark setup failed", "error", err)
			os.Exit(1)
		}
		log.Info("email sender: postmark")
	} else {
		sender = email.NewMock(log)
		log.Warn("email sender: mock, outbound mail is recorded but not delivered")
	}

	tokens, err := token.New(domain.NewSecret(cfg.Token.SigningKey), token.TTL)
	if err != nil {
		log.Error("token service setup failed", "error", err)
		os.Exit(1)
	}

	authService := service.New(service.Deps{
		Users:      users,
		Challenges: challenges,
		Revoked:    revoked,
		Tokens:     tokens,
		Sender:     sender,
		Logger:     log,
		Metrics:    metrics.New(),
	})

	router := httptransport.NewRouter(handler.New(authService, log), log, checks)
	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting warden", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
