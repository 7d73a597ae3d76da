package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agendamento-api/internal/auth"
	"github.com/BruksfildServices01/agendamento-api/internal/config"
	dbpkg "github.com/BruksfildServices01/agendamento-api/internal/db"
	"github.com/BruksfildServices01/agendamento-api/internal/jobs"
	"github.com/BruksfildServices01/agendamento-api/internal/logger"
	"github.com/BruksfildServices01/agendamento-api/internal/metrics"
	"github.com/BruksfildServices01/agendamento-api/internal/notification"
	"github.com/BruksfildServices01/agendamento-api/internal/routes"
	"github.com/BruksfildServices01/agendamento-api/internal/storage"
	"github.com/BruksfildServices01/agendamento-api/internal/timezone"
	"github.com/BruksfildServices01/agendamento-api/internal/validators"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validators.Register(); err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	blacklist, closeBlacklist, err := auth.NewBlacklist(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer func() { _ = closeBlacklist() }()

	clock := timezone.NewClock(cfg.Timezone)
	m := metrics.NewCollector(prometheus.DefaultRegisterer)

	store := notification.NewStore(db)
	dispatcher := notification.NewDispatcher(store, log, m, notification.DefaultQueueSize)

	var uploader storage.Uploader
	if cfg.S3.Enabled() {
		s3Storage, err := storage.NewS3Storage(cfg.S3)
		if err != nil {
			return err
		}
		uploader = s3Storage
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		DB:        db,
		Config:    cfg,
		Log:       log,
		Metrics:   m,
		Tokens:    auth.NewTokenManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL),
		Blacklist: blacklist,
		Notifier:  dispatcher,
		Images:    storage.NewServiceImages(uploader, cfg.ServiceImageMaxWidth, cfg.ServiceImageQualityWP),
		Clock:     clock,
	})

	// ======================================================
	// JOBS
	// ======================================================
	birthday := jobs.NewBirthdayReminder(jobs.NewGormBirthdaySource(db), store, clock, log, m)
	scheduler, err := jobs.Schedule(cfg.BirthdayCron, clock.Location(), birthday, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("env", cfg.Env),
			zap.String("timezone", clock.Location().String()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	<-scheduler.Stop().Done()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("notification queue not drained", zap.Error(err))
	}

	return nil
}
