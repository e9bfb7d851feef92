package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/XIVMarket_Go/internal/bootstrap"
	"github.com/osse101/XIVMarket_Go/internal/config"
	"github.com/osse101/XIVMarket_Go/internal/server"
	"github.com/osse101/XIVMarket_Go/internal/sse"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// Every key has a default, so an incomplete .env only warrants a warning
	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		slog.Warn("Environment validation failed, using defaults", "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	svc := bootstrap.BuildServices(cfg)

	hub := sse.NewHub()
	hub.Start()

	srv := server.NewServer(cfg.Port, nil, server.Deps{
		Search:   svc.Search,
		Crafting: svc.Crafting,
		Items:    svc.Items,
		Prices:   svc.Prices,
		State:    svc.State,
		Hub:      hub,
		Events:   sse.NewPublisher(hub),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{Server: srv, Hub: hub})
}
