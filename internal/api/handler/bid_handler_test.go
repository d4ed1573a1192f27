package handler_test

import (
	"net/http"
	"testing"

	"github.com/solosphere/server/internal/api/dto"
	"github.com/solosphere/server/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceBidRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/add-bid", dto.PlaceBidRequest{JobID: "j1", Email: "bid@x.com"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBidLifecycle(t *testing.T) {
	s := newTestServer(t)

	jobID := createJob(t, s, "own@x.com", dto.CreateJobRequest{
		Title:    "Build logo",
		Category: "design",
		Deadline: "2024-01-01",
		Buyer:    dto.BuyerDTO{Email: "own@x.com"},
	})

	var job dto.JobDTO
	decodeJSON(t, s.do(t, http.MethodGet, "/job/"+jobID, nil), &job)
	require.Equal(t, 0, job.BidCount)

	bidder := s.sessionCookie(t, "bid@x.com")
	w := s.do(t, http.MethodPost, "/add-bid", dto.PlaceBidRequest{
		JobID:      jobID,
		Email:      "bid@x.com",
		BuyerEmail: "own@x.com",
		Price:      120,
	}, bidder)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ack struct {
		Acknowledged bool   `json:"acknowledged"`
		BidID        string `json:"bid_id"`
	}
	decodeJSON(t, w, &ack)
	require.True(t, ack.Acknowledged)
	require.NotEmpty(t, ack.BidID)

	decodeJSON(t, s.do(t, http.MethodGet, "/job/"+jobID, nil), &job)
	assert.Equal(t, 1, job.BidCount)

	// Second bid from the same bidder on the same job is rejected.
	w = s.do(t, http.MethodPost, "/add-bid", dto.PlaceBidRequest{
		JobID: jobID,
		Email: "bid@x.com",
	}, bidder)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var rejection struct {
		Message string `json:"message"`
	}
	decodeJSON(t, w, &rejection)
	assert.Contains(t, rejection.Message, "already placed a bid")

	decodeJSON(t, s.do(t, http.MethodGet, "/job/"+jobID, nil), &job)
	assert.Equal(t, 1, job.BidCount)
}

func TestPlaceBidPublishesEvent(t *testing.T) {
	s := newTestServer(t)

	jobID := createJob(t, s, "own@x.com", dto.CreateJobRequest{
		Title: "Build logo",
		Buyer: dto.BuyerDTO{Email: "own@x.com"},
	})

	w := s.do(t, http.MethodPost, "/add-bid", dto.PlaceBidRequest{
		JobID:      jobID,
		Email:      "bid@x.com",
		BuyerEmail: "own@x.com",
	}, s.sessionCookie(t, "bid@x.com"))
	require.Equal(t, http.StatusOK, w.Code)

	published := s.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.KindBidPlaced, published[0].Kind)
	assert.Equal(t, jobID, published[0].JobID)
	assert.Equal(t, "bid@x.com", published[0].Bidder)
	assert.Equal(t, "own@x.com", published[0].Owner)
}

func TestListBidsModes(t *testing.T) {
	s := newTestServer(t)

	jobID := createJob(t, s, "own@x.com", dto.CreateJobRequest{
		Title: "Build logo",
		Buyer: dto.BuyerDTO{Email: "own@x.com"},
	})

	w := s.do(t, http.MethodPost, "/add-bid", dto.PlaceBidRequest{
		JobID:      jobID,
		Email:      "bid@x.com",
		BuyerEmail: "own@x.com",
	}, s.sessionCookie(t, "bid@x.com"))
	require.Equal(t, http.StatusOK, w.Code)

	// Bids the caller placed.
	var bids []dto.BidDTO
	w = s.do(t, http.MethodGet, "/bids/bid@x.com", nil, s.sessionCookie(t, "bid@x.com"))
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &bids)
	require.Len(t, bids, 1)
	assert.Equal(t, jobID, bids[0].JobID)
	assert.Equal(t, "pending", bids[0].Status)

	// Bids received on the caller's jobs.
	w = s.do(t, http.MethodGet, "/bids/own@x.com?buyer=true", nil, s.sessionCookie(t, "own@x.com"))
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &bids)
	require.Len(t, bids, 1)
	assert.Equal(t, "bid@x.com", bids[0].Email)

	// Owner mode for an email with no owned jobs is empty even when that
	// email has placed bids.
	w = s.do(t, http.MethodGet, "/bids/bid@x.com?buyer=true", nil, s.sessionCookie(t, "bid@x.com"))
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &bids)
	assert.Empty(t, bids)
}

func TestUpdateBidStatus(t *testing.T) {
	s := newTestServer(t)

	jobID := createJob(t, s, "own@x.com", dto.CreateJobRequest{
		Title: "Build logo",
		Buyer: dto.BuyerDTO{Email: "own@x.com"},
	})

	w := s.do(t, http.MethodPost, "/add-bid", dto.PlaceBidRequest{
		JobID:      jobID,
		Email:      "bid@x.com",
		BuyerEmail: "own@x.com",
	}, s.sessionCookie(t, "bid@x.com"))
	require.Equal(t, http.StatusOK, w.Code)

	var placeAck struct {
		BidID string `json:"bid_id"`
	}
	decodeJSON(t, w, &placeAck)

	// Any authenticated session may update any bid's status.
	w = s.do(t, http.MethodPatch, "/bid-status-update/"+placeAck.BidID,
		dto.UpdateBidStatusRequest{Status: "in-progress"}, s.sessionCookie(t, "someone-else@x.com"))
	require.Equal(t, http.StatusOK, w.Code)

	var ack struct {
		MatchedCount int64 `json:"matched_count"`
	}
	decodeJSON(t, w, &ack)
	assert.Equal(t, int64(1), ack.MatchedCount)

	var bids []dto.BidDTO
	decodeJSON(t, s.do(t, http.MethodGet, "/bids/bid@x.com", nil, s.sessionCookie(t, "bid@x.com")), &bids)
	require.Len(t, bids, 1)
	assert.Equal(t, "in-progress", bids[0].Status)

	published := s.publisher.published()
	require.Len(t, published, 2)
	assert.Equal(t, events.KindBidStatusChanged, published[1].Kind)
	assert.Equal(t, "in-progress", published[1].Status)

	// Unknown bid id matches nothing but still acks.
	w = s.do(t, http.MethodPatch, "/bid-status-update/missing",
		dto.UpdateBidStatusRequest{Status: "rejected"}, s.sessionCookie(t, "own@x.com"))
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &ack)
	assert.Equal(t, int64(0), ack.MatchedCount)
}
