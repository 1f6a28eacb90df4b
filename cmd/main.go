package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ridepilot/api"
	"ridepilot/config"
	"ridepilot/pkg/bot"
	"ridepilot/pkg/logger"
	"ridepilot/service"
	"ridepilot/storage/postgres"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load Config
	cfg := config.Load()

	// 2. Initialize Logger
	log := logger.New(cfg.ServiceName, cfg.LoggerLevel)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", logger.Error(err))
		os.Exit(1)
	}

	// 3. Initialize Storage (Postgres, service credential)
	pgStore, err := postgres.New(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to connect to postgres", logger.Error(err))
		os.Exit(1)
	}
	defer pgStore.Close()

	// 4. Optional Telegram notifier for magic links
	var notifier service.LinkNotifier
	tgBot, err := bot.New(&cfg, pgStore, log)
	if err != nil {
		log.Error("Failed to initialize telegram bot", logger.Error(err))
		os.Exit(1)
	}
	if tgBot != nil {
		notifier = tgBot
		go tgBot.Start()
		defer tgBot.Stop()
	}

	// 5. Services and HTTP
	services := service.New(pgStore, log, notifier)

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           api.NewRouter(cfg, services, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("🚀 Driver portal API listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server stopped", logger.Error(err))
			os.Exit(1)
		}
	}()

	// 6. Graceful Shutdown listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", logger.Error(err))
	}
}
