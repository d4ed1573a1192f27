package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/solosphere/server/internal/api/domain"
	"github.com/solosphere/server/internal/api/model"
	"github.com/solosphere/server/shared/postgresql"
)

const bidColumns = `
	bid_id, job_id, email, buyer_email, price,
	comment, deadline, status, created_at
`

// PostgresBidStore is the bids collection backed by PostgreSQL.
type PostgresBidStore struct {
	db *sqlx.DB
}

func NewPostgresBidStore(pg *postgresql.Client) *PostgresBidStore {
	return &PostgresBidStore{
		db: pg.GetDB(),
	}
}

// Place inserts the bid and bumps the job's bid_count. The duplicate check,
// the insert, and the counter bump are three separate statements: two
// concurrent placements for the same (email, job_id) can both pass the
// check, and a failure after the insert leaves bid_count under-counted.
func (s *PostgresBidStore) Place(ctx context.Context, bid *model.Bid) error {
	var exists bool
	check := `SELECT EXISTS(SELECT 1 FROM bids WHERE email = $1 AND job_id = $2)`
	if err := s.db.GetContext(ctx, &exists, check, bid.Email, bid.JobID); err != nil {
		return fmt.Errorf("failed to check existing bid: %w", err)
	}
	if exists {
		return domain.ErrDuplicateBid
	}

	insert := `
		INSERT INTO bids (` + bidColumns + `) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		insert,
		bid.BidID,
		bid.JobID,
		bid.Email,
		bid.BuyerEmail,
		bid.Price,
		bid.Comment,
		bid.Deadline,
		bid.Status,
		bid.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to place bid: %w", err)
	}

	bump := `UPDATE jobs SET bid_count = bid_count + 1, updated_at = NOW() WHERE job_id = $1`
	if _, err := s.db.ExecContext(ctx, bump, bid.JobID); err != nil {
		return fmt.Errorf("failed to increment bid count: %w", err)
	}

	return nil
}

func (s *PostgresBidStore) ListForBidder(ctx context.Context, email string) ([]model.Bid, error) {
	var bids []model.Bid
	query := `SELECT ` + bidColumns + ` FROM bids WHERE email = $1`
	if err := s.db.SelectContext(ctx, &bids, query, email); err != nil {
		return nil, fmt.Errorf("failed to list bids for bidder: %w", err)
	}
	return bids, nil
}

func (s *PostgresBidStore) ListForOwner(ctx context.Context, email string) ([]model.Bid, error) {
	var bids []model.Bid
	query := `SELECT ` + bidColumns + ` FROM bids WHERE buyer_email = $1`
	if err := s.db.SelectContext(ctx, &bids, query, email); err != nil {
		return nil, fmt.Errorf("failed to list bids for owner: %w", err)
	}
	return bids, nil
}

// UpdateStatus overwrites the status field with whatever the caller sent.
// Membership in the status vocabulary is not enforced.
func (s *PostgresBidStore) UpdateStatus(ctx context.Context, id, status string) (*model.Bid, error) {
	query := `
		UPDATE bids
		SET status = $1
		WHERE bid_id = $2
		RETURNING ` + bidColumns

	var bid model.Bid
	err := s.db.GetContext(ctx, &bid, query, status, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update bid status: %w", err)
	}

	return &bid, nil
}
