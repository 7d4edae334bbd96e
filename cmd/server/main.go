package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/schedcu/rotacheck/internal/api"
	"github.com/schedcu/rotacheck/internal/configstore"
	"github.com/schedcu/rotacheck/internal/job"
	"github.com/schedcu/rotacheck/internal/logger"
	"github.com/schedcu/rotacheck/internal/metrics"
	"github.com/schedcu/rotacheck/internal/optimizerclient"
	"github.com/schedcu/rotacheck/internal/repository"
	"github.com/schedcu/rotacheck/internal/repository/memory"
	"github.com/schedcu/rotacheck/internal/repository/postgres"
)

func main() {
	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := openDatabase()
	if err != nil {
		log.Fatalw("failed to open database", "error", err)
	}
	defer db.Close()

	store := configstore.New(configstore.NewMemoryBackend())
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		backend, err := configstore.NewPostgresBackend(dsn)
		if err != nil {
			log.Fatalw("failed to open config store", "error", err)
		}
		defer backend.Close()
		store = configstore.New(backend)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	scheduler, err := job.NewScheduler(redisAddr)
	if err != nil {
		log.Fatalw("failed to connect job scheduler", "error", err)
	}
	defer scheduler.Close()

	reg := metrics.New()

	optimizerURL := os.Getenv("OPTIMIZER_BASE_URL")
	if optimizerURL == "" {
		optimizerURL = "http://localhost:9000"
	}
	client := optimizerclient.NewClient(optimizerURL, 3, optimizerclient.DefaultTimeout)

	handlers := job.NewHandlers(client, db, store, log, reg)
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)
	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: 4},
	)
	go func() {
		if err := server.Run(mux); err != nil {
			log.Fatalw("asynq worker stopped", "error", err)
		}
	}()
	defer server.Shutdown()

	sweeper := job.NewSweeper(db, log)
	if err := sweeper.Start(); err != nil {
		log.Fatalw("failed to start stale-run sweeper", "error", err)
	}
	defer sweeper.Stop()

	router := api.NewRouter(db, store, scheduler, reg, log)

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	go func() {
		log.Infow("starting server", "addr", addr)
		if err := router.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed to start", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Infow("shutting down")
	if err := router.Shutdown(); err != nil {
		log.Errorw("server shutdown error", "error", err)
	}
}

func openDatabase() (repository.Database, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return memory.NewDatabase(), nil
	}
	return postgres.NewDatabase(dsn)
}
