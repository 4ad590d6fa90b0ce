package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leave-registry/internal/config"
	"leave-registry/internal/handler"
	"leave-registry/internal/repository"
	"leave-registry/internal/service"
	"leave-registry/internal/worker"
	"leave-registry/pkg/slackclient"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logger := logrus.New()

	logger.Info("Initializing config...")
	cfg := config.GetConfig()

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		// Duplicate-key detection in the ingestion engine relies on
		// translated errors.
		TranslateError: true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get database instance:", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logger.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	leaveRepo, err := repository.NewGormLeaveRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create leave repository")
	}
	originRepo, err := repository.NewGormOriginReferenceRepository(db)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create origin reference repository")
	}

	// Downstream channels plug in here; the fanout contract stands even
	// with none registered.
	fanout := service.NewFanout(logger)
	ingestion := service.NewIngestionService(db, leaveRepo, originRepo, fanout, logger)

	pool := worker.NewPool(cfg.WorkerPoolSize, cfg.WorkerQueueLen, logger)

	chat := slackclient.New(cfg.SlackBotToken)

	h := handler.NewHandler(chat, ingestion, leaveRepo, pool, cfg.SlackSigningSecret, logger)
	router := handler.NewRouter(h)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Infof("Listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed:", err)
		}
	}()

	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Infof("Error shutting down HTTP server: %v", err)
	}

	// Let queued background legs (ingestions, thread replies) finish.
	pool.Shutdown()

	if err := sqlDB.Close(); err != nil {
		logger.Infof("Error closing database: %v", err)
	}

	logger.Info("Server stopped gracefully")
}
