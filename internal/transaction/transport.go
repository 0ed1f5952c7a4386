package transaction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Request is the envelope the UBK interface accepts on POST /transactions.
type Request struct {
	Description  string `json:"description"`
	AppID        int    `json:"app_id"`
	CountPoint   int    `json:"count_pt"`
	TargetSystem int    `json:"target_sys"`
	TemplateID   int    `json:"template_id"`
	ReturnPacket bool   `json:"rtn_pkt"`
	RequestPkt   string `json:"request_pkt"`
}

type Response struct {
	Status      string `json:"status"`
	ResponsePkt string `json:"response_pkt"`
	Error       string `json:"error,omitempty"`
}

type Transport interface {
	Send(ctx context.Context, req Request) (*Response, error)
}

type HTTPTransport struct {
	baseURL string
	client  *http.Client
}

func NewHTTPTransport(baseURL string, client *http.Client) *HTTPTransport {
	return &HTTPTransport{
		baseURL: baseURL,
		client:  client,
	}
}

func (t *HTTPTransport) Send(ctx context.Context, req Request) (*Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal transaction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/transactions", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create transaction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ubk interface returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode transaction response: %w", err)
	}

	return &out, nil
}
