package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entwine/internal/auth"
	"entwine/internal/collision"
	"entwine/internal/config"
	"entwine/internal/db"
	"entwine/internal/event"
	httpx "entwine/internal/http"
	"entwine/internal/jobs"
	"entwine/internal/logger"
)

func main() {
	cfg, _ := config.Load()

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		lg.Fatal("db connect", "err", err)
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		lg.Fatal("db migrate", "err", err)
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret)

	eventRepo := &event.Repo{DB: gdb}
	store := &collision.Store{DB: gdb}
	engine := &collision.Engine{
		Data:  eventRepo,
		Store: store,
		Log:   lg,

		TemporalWindow:      cfg.TemporalWindow,
		SpatialRadiusMeters: cfg.SpatialRadiusMeters,
		MinConfidence:       cfg.MinConfidence,
	}
	sched := &collision.Scheduler{
		Engine: engine,
		Data:   eventRepo,
		Log:    lg,

		FullInterval:        cfg.FullSweepInterval,
		IncrementalInterval: cfg.IncrementalSweepInterval,
		IncrementalWindow:   cfg.IncrementalWindow,
	}

	r := httpx.NewRouter(cfg, gdb, jwtSvc, engine, sched)

	// dispatch worker
	jobsRepo := &jobs.Repo{DB: gdb}
	worker := &jobs.Worker{ID: "worker-1", Repo: jobsRepo, DB: gdb, Log: lg}

	ctx, cancel := context.WithCancel(context.Background())
	go worker.Run(ctx)
	go sched.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lg.Fatal("http server", "err", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
