package lookup

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/joao-fontenele/procon-bom/internal/bom"
	"github.com/joao-fontenele/procon-bom/internal/domain"
	"github.com/joao-fontenele/procon-bom/internal/transaction"
)

const upstreamFailureMessage = "upstream transaction failed"

type Publisher interface {
	PublishLookup(ctx context.Context, event domain.LookupCompletedEvent) error
}

type Handler struct {
	client    transaction.Client
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
	metrics   *metrics
}

type HandlerOption func(*Handler)

// WithClock replaces time.Now as the source of the explosion date.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.now = now
	}
}

// WithPublisher enables lookup events.
func WithPublisher(p Publisher) HandlerOption {
	return func(h *Handler) {
		h.publisher = p
	}
}

func NewHandler(client transaction.Client, logger *slog.Logger, opts ...HandlerOption) (*Handler, error) {
	m, err := newMetrics(otel.Meter("lookup"))
	if err != nil {
		return nil, err
	}

	h := &Handler{
		client:  client,
		logger:  logger,
		now:     time.Now,
		metrics: m,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *Handler) HandleMaterial(w http.ResponseWriter, r *http.Request) {
	materialNumber := r.PathValue("materialNumber")
	if materialNumber == "" {
		h.writeError(w, http.StatusBadRequest, "missing material number")
		return
	}

	ctx := r.Context()
	explosionDate := h.now().Format(explosionDateLayout)

	start := time.Now()
	raw, err := h.client.Execute(ctx, transaction.Part{
		fieldMaterialNumber: materialNumber,
		fieldExplosionDate:  explosionDate,
	})
	h.metrics.recordUpstream(ctx, time.Since(start), err != nil)
	if err != nil {
		h.logger.Error("bom transaction failed", "error", err, "material_number", materialNumber)
		h.metrics.recordLookup(ctx, domain.OutcomeUpstreamError)
		h.publish(ctx, materialNumber, explosionDate, domain.ExtractionResult{Message: upstreamFailureMessage}, domain.OutcomeUpstreamError)
		h.writeError(w, http.StatusBadGateway, upstreamFailureMessage)
		return
	}

	result := bom.Extract(raw)
	outcome := result.Outcome()
	h.metrics.recordLookup(ctx, outcome)

	if outcome == domain.OutcomeParseError {
		h.logger.Warn("unparsable bom response", "material_number", materialNumber, "response_bytes", len(raw))
	}

	h.publish(ctx, materialNumber, explosionDate, result, outcome)

	h.logger.Info("bom lookup completed", "material_number", materialNumber, "outcome", outcome)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) publish(ctx context.Context, materialNumber, explosionDate string, result domain.ExtractionResult, outcome domain.Outcome) {
	if h.publisher == nil {
		return
	}

	event := domain.LookupCompletedEvent{
		LookupID:       uuid.NewString(),
		MaterialNumber: materialNumber,
		ExplosionDate:  explosionDate,
		OxygenSensor:   result.OxygenSensor,
		WireHarness:    result.WireHarness,
		Message:        result.Message,
		Outcome:        outcome,
		Timestamp:      h.now().UTC(),
	}
	if err := h.publisher.PublishLookup(ctx, event); err != nil {
		h.logger.Error("failed to publish lookup event", "error", err, "material_number", materialNumber)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
