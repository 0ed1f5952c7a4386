package transaction

import (
	"context"
	"fmt"
)

// Client runs one transaction for a part and returns the raw response packet.
type Client interface {
	Execute(ctx context.Context, part Part) (string, error)
}

type Transaction struct {
	cfg       Config
	builder   *Builder
	transport Transport
}

func New(cfg Config, templates TemplateSource, transport Transport) *Transaction {
	return &Transaction{
		cfg:       cfg,
		builder:   NewBuilder(cfg, templates),
		transport: transport,
	}
}

func (t *Transaction) Execute(ctx context.Context, part Part) (string, error) {
	payload, err := t.builder.CreatePayload(ctx, part, nil)
	if err != nil {
		return "", fmt.Errorf("create payload: %w", err)
	}

	resp, err := t.transport.Send(ctx, Request{
		Description:  t.cfg.Description,
		AppID:        t.cfg.AppID,
		CountPoint:   t.cfg.CountPoint,
		TargetSystem: t.cfg.TargetSystem,
		TemplateID:   t.cfg.TemplateID,
		ReturnPacket: t.cfg.ReturnPacket,
		RequestPkt:   payload,
	})
	if err != nil {
		return "", err
	}

	return resp.ResponsePkt, nil
}
