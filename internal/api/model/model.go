package model

import "time"

// Job is a marketplace job posting. Deadline is kept as an ISO-8601 date
// string; lexicographic order on it matches chronological order.
type Job struct {
	JobID       string    `db:"job_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Deadline    string    `db:"deadline"`
	MinPrice    float64   `db:"min_price"`
	MaxPrice    float64   `db:"max_price"`
	BuyerEmail  string    `db:"buyer_email"`
	BuyerName   string    `db:"buyer_name"`
	BuyerPhoto  string    `db:"buyer_photo"`
	BidCount    int       `db:"bid_count"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// Bid is a bid placed on a job. BuyerEmail is the job owner's email,
// denormalized at placement time so owner-side listing needs no join.
// JobID is a plain reference: deleting a job does not cascade to its bids.
type Bid struct {
	BidID      string    `db:"bid_id"`
	JobID      string    `db:"job_id"`
	Email      string    `db:"email"`
	BuyerEmail string    `db:"buyer_email"`
	Price      float64   `db:"price"`
	Comment    string    `db:"comment"`
	Deadline   string    `db:"deadline"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
}
