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

	"github.com/seolens/seolens/internal/audit"
	"github.com/seolens/seolens/internal/platform/config"
	"github.com/seolens/seolens/internal/platform/logger"
	"github.com/seolens/seolens/internal/platform/middleware"
	"github.com/seolens/seolens/internal/recommend"
	"github.com/seolens/seolens/internal/seoscan"
	"github.com/seolens/seolens/internal/store"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	fetcher := seoscan.NewPageFetcher(
		time.Duration(cfg.ScanTimeoutSeconds)*time.Second,
		time.Duration(cfg.ProbeTimeoutSeconds)*time.Second,
	)
	engine := seoscan.NewEngine(fetcher)
	scans := store.NewScanStore()

	var recommender audit.Recommender = recommend.Noop{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := recommend.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "recommend: %v\n", err)
			os.Exit(1)
		}
		recommender = gemini
	}

	service := audit.NewService(engine, scans, recommender, log)
	transport := audit.NewTransport(service, log)

	mux := http.NewServeMux()
	transport.RegisterRoutes(mux)

	handler := middleware.RequestID(middleware.Logging(log)(mux))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server started", "port", cfg.Port, "rules_version", seoscan.RulesVersion)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
