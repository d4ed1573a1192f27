package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/solosphere/server/internal/api/domain"
	"github.com/solosphere/server/internal/api/dto"
	"github.com/solosphere/server/internal/api/model"
	"github.com/solosphere/server/internal/events"
)

// PlaceBid handles POST /add-bid
// Rejects a second bid from the same bidder on the same job
func (h *BidHandler) PlaceBid(c *gin.Context) {
	var req dto.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	bid := model.Bid{
		BidID:      uuid.New().String(),
		JobID:      req.JobID,
		Email:      req.Email,
		BuyerEmail: req.BuyerEmail,
		Price:      req.Price,
		Comment:    req.Comment,
		Deadline:   req.Deadline,
		Status:     domain.BidStatusPending,
		CreatedAt:  time.Now(),
	}

	if err := h.bids.Place(c.Request.Context(), &bid); err != nil {
		if errors.Is(err, domain.ErrDuplicateBid) {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "You have already placed a bid on this job!",
			})
			return
		}
		h.logger.Error("Failed to place bid", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to place bid",
		})
		return
	}

	h.publishEvent(c, events.Event{
		Kind:       events.KindBidPlaced,
		JobID:      bid.JobID,
		BidID:      bid.BidID,
		Bidder:     bid.Email,
		Owner:      bid.BuyerEmail,
		OccurredAt: time.Now(),
	})

	c.JSON(http.StatusOK, gin.H{
		"acknowledged": true,
		"bid_id":       bid.BidID,
	})
}

// ListBids handles GET /bids/:email
// Without ?buyer= it returns the bids the email placed; with it, the bids
// received on the email's jobs. The two modes never combine.
func (h *BidHandler) ListBids(c *gin.Context) {
	email := c.Param("email")

	var req dto.ListBidsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	var (
		bids []model.Bid
		err  error
	)
	if req.Buyer != "" {
		bids, err = h.bids.ListForOwner(c.Request.Context(), email)
	} else {
		bids, err = h.bids.ListForBidder(c.Request.Context(), email)
	}

	if err != nil {
		h.logger.Error("Failed to list bids", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list bids",
		})
		return
	}

	out := make([]dto.BidDTO, len(bids))
	for i, bid := range bids {
		out[i] = toBidDTO(bid)
	}
	c.JSON(http.StatusOK, out)
}

// UpdateBidStatus handles PATCH /bid-status-update/:id
// Overwrites the status with whatever the caller sent; any authenticated
// session may update any bid
func (h *BidHandler) UpdateBidStatus(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateBidStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	bid, err := h.bids.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("Failed to update bid status",
			slog.String("bid_id", id),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update bid status",
		})
		return
	}

	var matched int64
	if bid != nil {
		matched = 1
		h.publishEvent(c, events.Event{
			Kind:       events.KindBidStatusChanged,
			JobID:      bid.JobID,
			BidID:      bid.BidID,
			Bidder:     bid.Email,
			Owner:      bid.BuyerEmail,
			Status:     bid.Status,
			OccurredAt: time.Now(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"acknowledged":  true,
		"matched_count": matched,
	})
}

// publishEvent is best-effort: a broker failure is logged and never fails
// the request.
func (h *BidHandler) publishEvent(c *gin.Context, evt events.Event) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(c.Request.Context(), evt); err != nil {
		h.logger.Error("Failed to publish bid event",
			slog.String("kind", evt.Kind),
			slog.String("bid_id", evt.BidID),
			slog.String("error", err.Error()),
		)
	}
}

func toBidDTO(bid model.Bid) dto.BidDTO {
	return dto.BidDTO{
		BidID:      bid.BidID,
		JobID:      bid.JobID,
		Email:      bid.Email,
		BuyerEmail: bid.BuyerEmail,
		Price:      bid.Price,
		Comment:    bid.Comment,
		Deadline:   bid.Deadline,
		Status:     bid.Status,
		CreatedAt:  bid.CreatedAt.Format(time.RFC3339),
	}
}
