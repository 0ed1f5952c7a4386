package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/joao-fontenele/procon-bom/internal/lookup"
	"github.com/joao-fontenele/procon-bom/internal/messaging"
	"github.com/joao-fontenele/procon-bom/internal/telemetry"
	"github.com/joao-fontenele/procon-bom/internal/transaction"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "bomlookup", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("bomlookup", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ubkURL := os.Getenv("UBK_URL")
	if ubkURL == "" {
		logger.Error("UBK_URL is required")
		os.Exit(1)
	}

	cfg := lookup.NewBOMConfig(
		envInt(logger, "UBK_APP_ID", 1),
		envInt(logger, "UBK_TARGET_SYSTEM", 1),
		envInt(logger, "UBK_TEMPLATE_ID", transaction.BOMExplosionTemplateID),
		envInt(logger, "UBK_COUNT_POINT", 1),
	)

	var templates transaction.TemplateSource = transaction.DefaultTemplates()
	if postgresURL := os.Getenv("POSTGRES_URL"); postgresURL != "" {
		db, err := telemetry.OpenPostgres(ctx, postgresURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		templates = transaction.NewTemplateRepository(db)
	}

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	client := transaction.New(cfg, templates, transaction.NewHTTPTransport(ubkURL, httpClient))

	var opts []lookup.HandlerOption
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		producer := messaging.NewProducer(strings.Split(kafkaBrokers, ","), messaging.LookupCompletedTopic)
		defer func() { _ = producer.Close() }()
		opts = append(opts, lookup.WithPublisher(producer))
	}

	handler, err := lookup.NewHandler(client, logger, opts...)
	if err != nil {
		logger.Error("failed to create handler", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /material/{materialNumber}", telemetry.WithHTTPRoute(handler.HandleMaterial))
	mux.Handle("GET /metrics", metricsHandler)

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "bomlookup",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("starting bomlookup service", "port", port, "ubk_url", ubkURL, "template_id", cfg.TemplateID)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

func envInt(logger *slog.Logger, name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logger.Error("invalid integer environment variable", "name", name, "value", raw)
		os.Exit(1)
	}
	return n
}
