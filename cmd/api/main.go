package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"memory-agent/config"
	_ "memory-agent/docs" // Swagger docs
	"memory-agent/internal/bootstrap"
	chatHTTP "memory-agent/internal/chat/delivery/http"
	"memory-agent/internal/httpserver"
	"memory-agent/internal/middleware"
	"memory-agent/internal/observability"
	"memory-agent/pkg/log"
)

// @title       Memory Agent API
// @description Conversational agent with long-term vector memory.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Memory Agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Memory backend: %s", cfg.Memory.Backend)

	// 3. Core: language providers, memory store, orchestrator, chat usecase
	agent, err := bootstrap.New(ctx, cfg, logger, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error(ctx, "Failed to initialize agent: ", err)
		return
	}
	defer func() {
		if err := agent.Close(); err != nil {
			logger.Warnf(ctx, "Failed to close memory store: %v", err)
		}
	}()

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		TrustedProxies: cfg.HTTPServer.TrustedProxies,
		Middleware:     middleware.New(logger, cfg.RateLimit.PerMin),
		ChatHandler:    chatHTTP.New(logger, agent.UseCase),
		MetricsHandler: observability.Handler(nil),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
