package handler

import (
	"log/slog"

	"github.com/solosphere/server/internal/api/storage"
	"github.com/solosphere/server/internal/auth"
	"github.com/solosphere/server/internal/events"
)

// IdentityKey is the gin context key under which the auth middleware stores
// the verified session email.
const IdentityKey = "auth_email"

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger       *slog.Logger
	Jobs         storage.JobStore
	Bids         storage.BidStore
	Events       events.Publisher
	Tokens       *auth.Manager
	SecureCookie bool
}

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	logger *slog.Logger
	jobs   storage.JobStore
}

// NewJobHandler creates a new JobHandler instance
func NewJobHandler(deps *Dependencies) *JobHandler {
	return &JobHandler{
		logger: deps.Logger,
		jobs:   deps.Jobs,
	}
}

// BidHandler handles bid-related HTTP requests
type BidHandler struct {
	logger *slog.Logger
	jobs   storage.JobStore
	bids   storage.BidStore
	events events.Publisher
}

// NewBidHandler creates a new BidHandler instance
func NewBidHandler(deps *Dependencies) *BidHandler {
	return &BidHandler{
		logger: deps.Logger,
		jobs:   deps.Jobs,
		bids:   deps.Bids,
		events: deps.Events,
	}
}

// AuthHandler issues and clears session cookies
type AuthHandler struct {
	logger       *slog.Logger
	tokens       *auth.Manager
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(deps *Dependencies) *AuthHandler {
	return &AuthHandler{
		logger:       deps.Logger,
		tokens:       deps.Tokens,
		secureCookie: deps.SecureCookie,
	}
}
