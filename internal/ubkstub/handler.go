// Package ubkstub is a stand-in for the UBK transaction interface used in
// local development and tests.
package ubkstub

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
)

type Handler struct {
	fixturesDir string
	maxLatency  time.Duration
	logger      *slog.Logger
}

// NewHandler serves <fixturesDir>/<material>.xml when present and a
// generated BOM otherwise. An empty fixturesDir disables fixtures.
func NewHandler(fixturesDir string, maxLatency time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		fixturesDir: fixturesDir,
		maxLatency:  maxLatency,
		logger:      logger,
	}
}

type transactionRequest struct {
	TemplateID   int    `json:"template_id"`
	TargetSystem int    `json:"target_sys"`
	ReturnPacket bool   `json:"rtn_pkt"`
	RequestPkt   string `json:"request_pkt"`
}

type transactionResponse struct {
	Status      string `json:"status"`
	ResponsePkt string `json:"response_pkt"`
}

func (h *Handler) HandleTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	requestDoc := etree.NewDocument()
	if err := requestDoc.ReadFromString(req.RequestPkt); err != nil || requestDoc.Root() == nil {
		h.writeError(w, http.StatusBadRequest, "invalid request packet")
		return
	}

	materialNumber := ""
	if el := requestDoc.FindElement("//MaterialNumber"); el != nil {
		materialNumber = el.Text()
	}
	if materialNumber == "" {
		h.writeError(w, http.StatusBadRequest, "request packet has no material number")
		return
	}

	if h.maxLatency > 0 {
		time.Sleep(time.Duration(rand.Int63n(int64(h.maxLatency))))
	}

	body, err := h.responseFor(materialNumber, requestDoc)
	if err != nil {
		h.logger.Error("failed to build response packet", "error", err, "material_number", materialNumber)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("transaction served", "material_number", materialNumber, "template_id", req.TemplateID)
	h.writeJSON(w, http.StatusOK, transactionResponse{Status: "OK", ResponsePkt: body})
}

func (h *Handler) responseFor(materialNumber string, requestDoc *etree.Document) (string, error) {
	if h.fixturesDir != "" {
		name := filepath.Base(materialNumber) + ".xml"
		data, err := os.ReadFile(filepath.Join(h.fixturesDir, name))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}

	return GenerateBOM(materialNumber, requestDoc.Root()), nil
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
