package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"safesound/internal/audit"
	"safesound/internal/crime"
	"safesound/internal/jwtauth"
	"safesound/internal/notify"
	"safesound/internal/platform/config"
	"safesound/internal/platform/httpserver"
	"safesound/internal/platform/logger"
	"safesound/internal/platform/metrics"
	"safesound/internal/platform/postgres"
	"safesound/internal/platform/redis"
	"safesound/internal/police"
	"safesound/internal/report"
	reporthandler "safesound/internal/report/handler"
	"safesound/internal/report/live"
	httptransport "safesound/internal/transport/http"
	"safesound/internal/user"
	"safesound/internal/venue"
)

const (
	tokenTTL        = 24 * time.Hour
	auditBuffer     = 256
	shutdownTimeout = 10 * time.Second
)

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	m := metrics.New()
	jwtSvc := jwtauth.NewService(cfg.JWTSigningKey, tokenTTL)

	auditPub := audit.NewPublisher(auditBuffer, log)
	auditWorker := audit.NewWorker(audit.NewPostgresStore(db), auditPub.Inbox(), log)

	reportStore := report.NewPostgresStore(db)
	engine := live.NewEngine(live.NewRegistry(), reportStore, log, m, auditPub)

	var codes user.CodeStore
	if redisClient != nil {
		codes = user.NewRedisCodeStore(redisClient)
	} else {
		log.Warn("redis not configured, keeping activation codes in memory")
		codes = user.NewMemoryCodeStore()
	}
	sender := notify.NewLogSender(log)
	userSvc := user.NewService(user.NewPostgresStore(db), codes, sender, jwtSvc, cfg.ActivationTTL)

	policeStore := police.NewPostgresStore(db)
	if err := police.Bootstrap(ctx, policeStore, cfg.AdminBadge, cfg.AdminPassword, log); err != nil {
		return err
	}

	checkers := map[string]httptransport.HealthChecker{
		"postgres": db.Ping,
	}
	if redisClient != nil {
		checkers["redis"] = func() error { return redisClient.Health(context.Background()) }
	}

	router := httptransport.NewRouter(log, checkers,
		reporthandler.New(engine, reportStore, auditPub, jwtSvc, log, cfg.WriteTimeout),
		user.NewHandler(userSvc, jwtSvc, log),
		police.NewHandler(policeStore, jwtSvc, jwtSvc, log),
		venue.NewHandler(venue.NewPostgresStore(db), jwtSvc, log),
		crime.NewHandler(crime.NewPostgresStore(db), jwtSvc, log),
	)
	srv := httpserver.New(cfg.Addr, router, cfg.ReadHeaderTimeout)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return auditWorker.Run(ctx)
	})
	g.Go(func() error {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
