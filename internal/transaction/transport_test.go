package transaction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPTransport_Send(t *testing.T) {
	t.Run("posts envelope and decodes response packet", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if r.URL.Path != "/transactions" {
				t.Errorf("expected /transactions, got %s", r.URL.Path)
			}
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("expected application/json, got %s", r.Header.Get("Content-Type"))
			}

			var req Request
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("failed to decode request: %v", err)
				return
			}
			if req.TemplateID != 5 || req.RequestPkt != "<Req/>" || !req.ReturnPacket {
				t.Errorf("unexpected request: %+v", req)
			}

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"OK","response_pkt":"<Root><A/></Root>"}`))
		}))
		defer server.Close()

		transport := NewHTTPTransport(server.URL, server.Client())
		resp, err := transport.Send(context.Background(), Request{TemplateID: 5, ReturnPacket: true, RequestPkt: "<Req/>"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if resp.ResponsePkt != "<Root><A/></Root>" {
			t.Errorf("unexpected response packet: %s", resp.ResponsePkt)
		}
		if resp.Status != "OK" {
			t.Errorf("expected status OK, got %s", resp.Status)
		}
	})

	t.Run("returns error on non 2xx status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("target system offline"))
		}))
		defer server.Close()

		transport := NewHTTPTransport(server.URL, server.Client())
		_, err := transport.Send(context.Background(), Request{})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "target system offline") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("returns error on undecodable body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		}))
		defer server.Close()

		transport := NewHTTPTransport(server.URL, server.Client())
		if _, err := transport.Send(context.Background(), Request{}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		transport := NewHTTPTransport(server.URL, server.Client())
		if _, err := transport.Send(ctx, Request{}); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
