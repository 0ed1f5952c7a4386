package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joao-fontenele/procon-bom/internal/ubkstub"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	maxLatency := 200 * time.Millisecond
	if raw := os.Getenv("UBK_MAX_LATENCY"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			logger.Error("invalid UBK_MAX_LATENCY", "error", err)
			os.Exit(1)
		}
		maxLatency = d
	}

	handler := ubkstub.NewHandler(os.Getenv("UBK_FIXTURES_DIR"), maxLatency, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /transactions", handler.HandleTransaction)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8084"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting ubk stub", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
