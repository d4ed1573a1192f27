package storage

import (
	"context"

	"github.com/solosphere/server/internal/api/model"
)

// JobUpdate is a partial job for the merge-upsert: nil fields keep their
// stored value, non-nil fields overwrite.
type JobUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Deadline    *string
	MinPrice    *float64
	MaxPrice    *float64
	BuyerEmail  *string
	BuyerName   *string
	BuyerPhoto  *string
}

// SearchQuery filters the public job listing. Text is matched
// case-insensitively as a title substring; empty Text matches everything.
// Category is an exact match when non-empty. Sort of "asc" orders by
// deadline ascending, any other non-empty value descending, empty leaves
// the order unspecified.
type SearchQuery struct {
	Category string
	Text     string
	Sort     string
}

// JobStore owns the jobs collection.
type JobStore interface {
	Create(ctx context.Context, job *model.Job) error
	ListAll(ctx context.Context) ([]model.Job, error)
	ListByOwner(ctx context.Context, email string) ([]model.Job, error)
	// GetByID returns (nil, nil) when no job matches: a missing job is an
	// empty result, not an error.
	GetByID(ctx context.Context, id string) (*model.Job, error)
	// Upsert merges the supplied fields into the job, creating the row under
	// the given id when it does not exist. Returns true when a row was created.
	Upsert(ctx context.Context, id string, upd JobUpdate) (bool, error)
	// Delete removes the job if present and reports the number of rows
	// removed. Deleting a missing id is a success with count 0.
	Delete(ctx context.Context, id string) (int64, error)
	Search(ctx context.Context, q SearchQuery) ([]model.Job, error)
}

// BidStore owns the bids collection.
type BidStore interface {
	// Place inserts the bid and bumps the referenced job's bid_count.
	// Returns domain.ErrDuplicateBid when the bidder already has a bid on
	// the job.
	Place(ctx context.Context, bid *model.Bid) error
	ListForBidder(ctx context.Context, email string) ([]model.Bid, error)
	ListForOwner(ctx context.Context, email string) ([]model.Bid, error)
	// UpdateStatus overwrites the bid's status unconditionally and returns
	// the updated bid, or (nil, nil) when no bid matches the id.
	UpdateStatus(ctx context.Context, id, status string) (*model.Bid, error)
}
