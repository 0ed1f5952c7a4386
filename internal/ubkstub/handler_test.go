package ubkstub

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joao-fontenele/procon-bom/internal/bom"
	"github.com/joao-fontenele/procon-bom/internal/domain"
)

func post(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.HandleTransaction(rec, req)
	return rec
}

func requestBody(t *testing.T, packet string) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{"template_id": 1, "rtn_pkt": true, "request_pkt": packet})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	return string(data)
}

func decodePacket(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp transactionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.ResponsePkt
}

func TestHandler_HandleTransaction(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	packet := `<BomExplosionRequest><MaterialNumber>A-100</MaterialNumber><Plant>1</Plant></BomExplosionRequest>`

	t.Run("generates an extractable bom", func(t *testing.T) {
		rec := post(t, NewHandler("", 0, logger), requestBody(t, packet))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}

		result := bom.Extract(decodePacket(t, rec))
		if result.Message != domain.MessageOK {
			t.Fatalf("unexpected message: %s", result.Message)
		}
		if *result.OxygenSensor != "A-100-O2" {
			t.Errorf("expected A-100-O2, got %s", *result.OxygenSensor)
		}
		if *result.WireHarness != "A-100-WH" {
			t.Errorf("expected A-100-WH, got %s", *result.WireHarness)
		}
	})

	t.Run("serves fixture when present", func(t *testing.T) {
		dir := t.TempDir()
		fixture := `<Root><Req/><Result><Items/></Result></Root>`
		if err := os.WriteFile(filepath.Join(dir, "A-100.xml"), []byte(fixture), 0o644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		rec := post(t, NewHandler(dir, 0, logger), requestBody(t, packet))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if got := decodePacket(t, rec); got != fixture {
			t.Errorf("expected fixture, got %s", got)
		}
	})

	t.Run("falls back to generated bom without fixture", func(t *testing.T) {
		rec := post(t, NewHandler(t.TempDir(), 0, logger), requestBody(t, packet))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(decodePacket(t, rec), "A-100-WH") {
			t.Error("expected generated bom")
		}
	})

	t.Run("rejects invalid body", func(t *testing.T) {
		rec := post(t, NewHandler("", 0, logger), "{")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("rejects malformed request packet", func(t *testing.T) {
		rec := post(t, NewHandler("", 0, logger), requestBody(t, "<BomExplosionRequest>"))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("rejects packet without material number", func(t *testing.T) {
		rec := post(t, NewHandler("", 0, logger), requestBody(t, "<BomExplosionRequest><Plant>1</Plant></BomExplosionRequest>"))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}
	})
}
