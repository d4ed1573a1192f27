package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/solosphere/server/internal/events"
)

// buildNotifications maps a bid event to the notifications it produces.
// Events of unknown kinds produce none and are dropped.
func buildNotifications(evt events.Event) []Notification {
	now := time.Now()

	switch evt.Kind {
	case events.KindBidPlaced:
		return []Notification{{
			NotificationID: uuid.New().String(),
			Recipient:      evt.Owner,
			Kind:           evt.Kind,
			JobID:          evt.JobID,
			BidID:          evt.BidID,
			Message:        fmt.Sprintf("%s placed a bid on your job", evt.Bidder),
			CreatedAt:      now,
		}}
	case events.KindBidStatusChanged:
		return []Notification{{
			NotificationID: uuid.New().String(),
			Recipient:      evt.Bidder,
			Kind:           evt.Kind,
			JobID:          evt.JobID,
			BidID:          evt.BidID,
			Message:        fmt.Sprintf("your bid was moved to %s", evt.Status),
			CreatedAt:      now,
		}}
	default:
		return nil
	}
}

// processEvent records every notification the event produces.
func (n *Notifier) processEvent(ctx context.Context, evt events.Event) error {
	notifications := buildNotifications(evt)
	if len(notifications) == 0 {
		n.logger.Warn("Dropping event of unknown kind",
			slog.String("kind", evt.Kind),
			slog.String("bid_id", evt.BidID),
		)
		return nil
	}

	for i := range notifications {
		if err := n.store.Record(ctx, &notifications[i]); err != nil {
			return fmt.Errorf("failed to process %s event: %w", evt.Kind, err)
		}
	}

	n.logger.Info("Event processed",
		slog.String("kind", evt.Kind),
		slog.String("bid_id", evt.BidID),
		slog.Int("notifications", len(notifications)),
	)

	return nil
}
