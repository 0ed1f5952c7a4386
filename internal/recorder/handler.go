// Package recorder persists lookup events consumed from Kafka and serves the
// lookup history per material.
package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/joao-fontenele/procon-bom/internal/domain"
	"github.com/joao-fontenele/procon-bom/internal/messaging"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type Store interface {
	Insert(ctx context.Context, rec domain.LookupRecord) error
	ListByMaterial(ctx context.Context, materialNumber string, limit int) ([]domain.LookupRecord, error)
}

type Handler struct {
	store  Store
	logger *slog.Logger
}

func NewHandler(store Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Handle consumes one bom.lookup.completed payload. Payloads that can never
// be stored are reported as messaging.ErrSkip; store failures are returned
// as is so the message is redelivered.
func (h *Handler) Handle(ctx context.Context, payload []byte) error {
	var event domain.LookupCompletedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal lookup completed event: %w: %w", messaging.ErrSkip, err)
	}

	if _, err := uuid.Parse(event.LookupID); err != nil {
		return fmt.Errorf("invalid lookup id %q: %w: %w", event.LookupID, messaging.ErrSkip, err)
	}

	if err := h.store.Insert(ctx, event.Record()); err != nil {
		return fmt.Errorf("insert lookup %s: %w", event.LookupID, err)
	}

	h.logger.Info("lookup recorded", "lookup_id", event.LookupID, "material_number", event.MaterialNumber, "outcome", event.Outcome)
	return nil
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	materialNumber := r.PathValue("materialNumber")
	if materialNumber == "" {
		h.writeError(w, http.StatusBadRequest, "missing material number")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			h.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.store.ListByMaterial(r.Context(), materialNumber, limit)
	if err != nil {
		h.logger.Error("failed to list lookups", "error", err, "material_number", materialNumber)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("lookups listed", "material_number", materialNumber, "count", len(records))
	h.writeJSON(w, http.StatusOK, records)
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
