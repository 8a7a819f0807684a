package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"persona-insight/internal/app"
	"persona-insight/internal/config"
	apihttp "persona-insight/internal/http"
	"persona-insight/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	zl, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		panic(err)
	}
	defer zl.Sync()

	a, err := app.New(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("init services", zap.Error(err))
	}
	defer a.Close()

	analysisHandler := apihttp.NewAnalysisHandler(zl, a.Service)
	reportHandler := apihttp.NewReportHandler(zl, a.Service, a.Exporter)
	router := apihttp.NewRouter(zl, analysisHandler, reportHandler, apihttp.RouterOptions{
		Tokens:  a.Tokens,
		Limiter: a.Limiter,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zl.Warn("server shutdown", zap.Error(err))
		}
	}()

	zl.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Fatal("server error", zap.Error(err))
	}
}
