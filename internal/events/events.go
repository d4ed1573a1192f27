package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/solosphere/server/shared/rabbitmq"
)

// Event kinds emitted by the bid endpoints.
const (
	KindBidPlaced        = "bid_placed"
	KindBidStatusChanged = "bid_status_changed"
)

// Event is the JSON payload published for bid activity.
type Event struct {
	Kind       string    `json:"kind"`
	JobID      string    `json:"job_id"`
	JobTitle   string    `json:"job_title,omitempty"`
	BidID      string    `json:"bid_id"`
	Bidder     string    `json:"bidder"`
	Owner      string    `json:"owner"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits bid events for downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// RabbitPublisher publishes events to the bid events exchange.
type RabbitPublisher struct {
	client *rabbitmq.Client
	logger *slog.Logger
}

func NewRabbitPublisher(client *rabbitmq.Client, logger *slog.Logger) *RabbitPublisher {
	return &RabbitPublisher{
		client: client,
		logger: logger,
	}
}

func (p *RabbitPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", evt.Kind, err)
	}

	p.logger.Debug("Event published",
		slog.String("kind", evt.Kind),
		slog.String("bid_id", evt.BidID),
	)
	return nil
}
