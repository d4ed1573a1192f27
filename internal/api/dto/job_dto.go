package dto

// BuyerDTO is the nested buyer sub-record carried on jobs.
type BuyerDTO struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// CreateJobRequest carries a new job posting. Fields are deliberately not
// marked required: the caller decides how complete the posting is.
type CreateJobRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Deadline    string   `json:"deadline"`
	MinPrice    float64  `json:"min_price"`
	MaxPrice    float64  `json:"max_price"`
	Buyer       BuyerDTO `json:"buyer"`
	BidCount    int      `json:"bid_count"`
}

// UpdateJobRequest is a partial job: nil fields are left untouched by the
// merge, non-nil fields overwrite.
type UpdateJobRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Deadline    *string   `json:"deadline"`
	MinPrice    *float64  `json:"min_price"`
	MaxPrice    *float64  `json:"max_price"`
	Buyer       *BuyerDTO `json:"buyer"`
}

// SearchJobsRequest binds the /all-jobs query parameters.
type SearchJobsRequest struct {
	Filter string `form:"filter"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

type JobDTO struct {
	JobID       string   `json:"job_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Deadline    string   `json:"deadline"`
	MinPrice    float64  `json:"min_price"`
	MaxPrice    float64  `json:"max_price"`
	Buyer       BuyerDTO `json:"buyer"`
	BidCount    int      `json:"bid_count"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}
