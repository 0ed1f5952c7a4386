package lookup

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/joao-fontenele/procon-bom/internal/domain"
)

type metrics struct {
	lookups          metric.Int64Counter
	upstreamDuration metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	lookups, err := meter.Int64Counter("bom.lookups",
		metric.WithDescription("BOM lookups by extraction outcome"),
	)
	if err != nil {
		return nil, err
	}

	upstreamDuration, err := meter.Float64Histogram("bom.upstream.duration",
		metric.WithDescription("Duration of UBK transactions"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{
		lookups:          lookups,
		upstreamDuration: upstreamDuration,
	}, nil
}

func (m *metrics) recordLookup(ctx context.Context, outcome domain.Outcome) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(outcome))))
}

func (m *metrics) recordUpstream(ctx context.Context, elapsed time.Duration, failed bool) {
	m.upstreamDuration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.Bool("error", failed)))
}
