package dto

type PlaceBidRequest struct {
	JobID      string  `json:"job_id" binding:"required"`
	Email      string  `json:"email" binding:"required"`
	BuyerEmail string  `json:"buyer_email"`
	Price      float64 `json:"price"`
	Comment    string  `json:"comment"`
	Deadline   string  `json:"deadline"`
}

type UpdateBidStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListBidsRequest binds the ?buyer= flag: any non-empty value switches the
// listing from bids-placed to bids-received.
type ListBidsRequest struct {
	Buyer string `form:"buyer"`
}

type BidDTO struct {
	BidID      string  `json:"bid_id"`
	JobID      string  `json:"job_id"`
	Email      string  `json:"email"`
	BuyerEmail string  `json:"buyer_email"`
	Price      float64 `json:"price"`
	Comment    string  `json:"comment"`
	Deadline   string  `json:"deadline"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"created_at"`
}
