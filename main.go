package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Buddhisha1997/linkshoter/config"
	"github.com/Buddhisha1997/linkshoter/logger"
	"github.com/Buddhisha1997/linkshoter/repository"
	"github.com/Buddhisha1997/linkshoter/server"
	"github.com/Buddhisha1997/linkshoter/sweeper"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	env, err := config.Process()
	if err != nil {
		log.Fatalf("failed to process env: %s", err)
	}

	zaplogger, err := logger.New(env.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %s", err)
	}
	defer zaplogger.Sync()

	db, err := repository.NewSQLiteRepo(env.DBPath)
	if err != nil {
		zaplogger.Fatal("failed to open database", zap.String("path", env.DBPath), zap.Error(err))
	}

	sw, err := sweeper.New(db, zaplogger, env.SweepInterval)
	if err != nil {
		zaplogger.Fatal("failed to build sweeper", zap.Error(err))
	}
	sw.Start()
	zaplogger.Info("sweeper started", zap.Duration("interval", env.SweepInterval))

	if !env.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", env.AppPort),
		Handler: server.NewRouter(db, zaplogger, env.BaseURL),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		zaplogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		zaplogger.Fatal("server failed", zap.Error(err))
	case <-ctx.Done():
	}
	zaplogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zaplogger.Error("failed to stop server cleanly", zap.Error(err))
	}
	if err := sw.Shutdown(); err != nil {
		zaplogger.Error("failed to stop sweeper cleanly", zap.Error(err))
	}
	zaplogger.Info("stopped")
}
