package domain

import (
	"errors"
)

// Bid status vocabulary. The store never rejects values outside this set;
// status is overwritten with whatever the caller sends.
const (
	BidStatusPending    = "pending"
	BidStatusInProgress = "in-progress"
	BidStatusCompleted  = "completed"
	BidStatusRejected   = "rejected"
)

var (
	// ErrDuplicateBid is returned when a bidder already has a bid on the job.
	ErrDuplicateBid = errors.New("bid already placed on this job")
)
