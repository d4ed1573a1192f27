package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/solosphere/server/internal/events"
	"github.com/solosphere/server/shared/rabbitmq"
)

// Notifier consumes bid events and materializes notification rows.
type Notifier struct {
	logger        *slog.Logger
	rabbitClient  *rabbitmq.Client
	store         NotificationStore
	consumerID    string
	concurrency   int
	prefetchCount int

	eventsChan chan *eventMessage
	wg         sync.WaitGroup
}

type eventMessage struct {
	Event       events.Event
	DeliveryTag uint64
}

// New creates a Notifier with a unique consumer id.
func New(logger *slog.Logger, rabbitClient *rabbitmq.Client, store NotificationStore, concurrency, prefetchCount int) *Notifier {
	return &Notifier{
		logger:        logger,
		rabbitClient:  rabbitClient,
		store:         store,
		consumerID:    fmt.Sprintf("notifier-%s", uuid.New().String()[:8]),
		concurrency:   concurrency,
		prefetchCount: prefetchCount,
		eventsChan:    make(chan *eventMessage, concurrency),
	}
}

// Run consumes until the context is canceled, then drains the pool.
func (n *Notifier) Run(ctx context.Context) error {
	deliveries, err := n.setupConsumer()
	if err != nil {
		return err
	}

	n.spawnPool(ctx)
	n.dispatch(ctx, deliveries)

	close(n.eventsChan)
	n.wg.Wait()

	n.logger.Info("Notifier stopped",
		slog.String("consumer_id", n.consumerID),
	)
	return nil
}

func (n *Notifier) setupConsumer() (<-chan amqp.Delivery, error) {
	channel := n.rabbitClient.GetChannel()
	if channel == nil {
		return nil, fmt.Errorf("rabbitmq channel is nil")
	}

	// Per-consumer prefetch bound so a slow database does not pile up
	// unacked deliveries.
	if err := channel.Qos(n.prefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := n.rabbitClient.Consume(n.consumerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	n.logger.Info("Notifier consumer started",
		slog.String("consumer_id", n.consumerID),
		slog.Int("prefetch_count", n.prefetchCount),
	)

	return deliveries, nil
}

// dispatch parses deliveries and hands them to the pool. Malformed payloads
// are NACKed without requeue.
func (n *Notifier) dispatch(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("Dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				n.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			var evt events.Event
			if err := json.Unmarshal(delivery.Body, &evt); err != nil {
				n.logger.Error("Failed to parse event JSON",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					n.logger.Error("Failed to NACK malformed event",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			msg := &eventMessage{
				Event:       evt,
				DeliveryTag: delivery.DeliveryTag,
			}

			select {
			case n.eventsChan <- msg:
			case <-ctx.Done():
				// Requeue so another consumer picks it up.
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					n.logger.Error("Failed to NACK event on shutdown",
						slog.String("error", nackErr.Error()),
					)
				}
				return
			}
		}
	}
}

func (n *Notifier) spawnPool(ctx context.Context) {
	n.logger.Info("Spawning notifier pool",
		slog.Int("concurrency", n.concurrency),
	)

	for i := 0; i < n.concurrency; i++ {
		n.wg.Add(1)
		go n.workerLoop(ctx, i)
	}
}

func (n *Notifier) workerLoop(ctx context.Context, workerNum int) {
	defer n.wg.Done()

	workerName := fmt.Sprintf("%s-%d", n.consumerID, workerNum)

	for msg := range n.eventsChan {
		err := n.processEvent(ctx, msg.Event)

		channel := n.rabbitClient.GetChannel()
		if channel == nil {
			n.logger.Error("Failed to get RabbitMQ channel for ACK/NACK",
				slog.String("worker", workerName),
			)
			continue
		}

		if err != nil {
			n.logger.Error("Event processing failed",
				slog.String("worker", workerName),
				slog.String("bid_id", msg.Event.BidID),
				slog.String("error", err.Error()),
			)
			// Store errors are transient; requeue for another attempt.
			if nackErr := channel.Nack(msg.DeliveryTag, false, true); nackErr != nil {
				n.logger.Error("Failed to NACK event",
					slog.String("worker", workerName),
					slog.String("error", nackErr.Error()),
				)
			}
			continue
		}

		if ackErr := channel.Ack(msg.DeliveryTag, false); ackErr != nil {
			n.logger.Error("Failed to ACK event",
				slog.String("worker", workerName),
				slog.String("error", ackErr.Error()),
			)
		}
	}
}
