// Package audit emits pipeline decision events to Kafka. Delivery is
// fire-and-forget: the pipeline never blocks on, retries for, or fails
// because of the audit stream.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"dermis/internal/pipeline/ports"
)

// Topic is the decision event stream.
const Topic = "derm.plan.decisions"

// Publisher produces decision events via franz-go. A nil Publisher or a nil
// client is valid and drops events silently.
type Publisher struct {
	client *kgo.Client
	logger *slog.Logger
}

// NewPublisher wraps an existing kgo client. The client lifecycle is managed
// by the caller.
func NewPublisher(client *kgo.Client, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{client: client, logger: logger}
}

// NewClient builds a kgo client for the given brokers.
func NewClient(brokers []string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(Topic),
	)
}

// Publish produces one decision event asynchronously. Records are keyed by
// user so one user's decisions stay ordered within a partition.
func (p *Publisher) Publish(ctx context.Context, event ports.DecisionEvent) {
	if p == nil || p.client == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.WarnContext(ctx, "audit event encode failed", "error", err)
		return
	}

	record := &kgo.Record{
		Topic: Topic,
		Key:   []byte(event.UserID),
		Value: payload,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Warn("audit event produce failed",
				"request_id", event.RequestID,
				"error", err,
			)
		}
	})
}

// Close flushes pending records and releases the client.
func (p *Publisher) Close(ctx context.Context) {
	if p == nil || p.client == nil {
		return
	}
	if err := p.client.Flush(ctx); err != nil {
		p.logger.Warn("audit flush failed", "error", err)
	}
	p.client.Close()
}
