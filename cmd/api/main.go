package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-minimax/internal/config"
	"github.com/iamasit07/connect4-minimax/internal/logger"
	"github.com/iamasit07/connect4-minimax/internal/service/cleanup"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-minimax/internal/transport/http"
	"github.com/iamasit07/connect4-minimax/internal/transport/websocket"
)

func main() {
	envErr := config.LoadDotEnv()

	log, err := logger.New(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	// 1. Configuration
	if envErr != nil {
		log.Debug("No .env file found")
	}
	cfg, err := config.LoadConfig(log)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Services
	sessionManager := game.NewSessionManager(log, cfg.BoardOptions()...)
	connManager := websocket.NewConnectionManager()

	// 3. Background workers
	cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.SessionIdleTimeout, log).Start(ctx)

	// 4. Handlers and router
	gameHandler := transportHttp.NewGameHandler(sessionManager, cfg.BoardOptions(), cfg.MachineMoveTimeout, log)
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.AllowedOrigins, cfg.MachineMoveTimeout, log)
	router := transportHttp.NewRouter(gameHandler, wsHandler, cfg.AllowedOrigins, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Server is shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited gracefully")
}
