package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/solosphere/server/shared/postgresql"
)

// Notification is a materialized inbox row for a marketplace user.
type Notification struct {
	NotificationID string    `db:"notification_id"`
	Recipient      string    `db:"recipient"`
	Kind           string    `db:"kind"`
	JobID          string    `db:"job_id"`
	BidID          string    `db:"bid_id"`
	Message        string    `db:"message"`
	CreatedAt      time.Time `db:"created_at"`
}

// NotificationStore persists notifications.
type NotificationStore interface {
	Record(ctx context.Context, n *Notification) error
}

// PostgresStore writes notifications to the notifications table.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(pg *postgresql.Client) *PostgresStore {
	return &PostgresStore{
		db: pg.GetDB(),
	}
}

func (s *PostgresStore) Record(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (
			notification_id, recipient, kind, job_id, bid_id, message, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		n.NotificationID,
		n.Recipient,
		n.Kind,
		n.JobID,
		n.BidID,
		n.Message,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	return nil
}
