package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/solosphere/server/internal/api/dto"
	"github.com/solosphere/server/internal/api/model"
	"github.com/solosphere/server/internal/api/storage"
)

// CreateJob handles POST /add-job
// Persists a new job posting for the authenticated caller
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	now := time.Now()
	job := model.Job{
		JobID:       uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Deadline:    req.Deadline,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
		BuyerEmail:  req.Buyer.Email,
		BuyerName:   req.Buyer.Name,
		BuyerPhoto:  req.Buyer.Photo,
		BidCount:    req.BidCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.jobs.Create(c.Request.Context(), &job); err != nil {
		h.logger.Error("Failed to create job", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create job",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"acknowledged": true,
		"job_id":       job.JobID,
	})
}

// ListJobs handles GET /jobs
// Returns every job posting, unfiltered
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list jobs",
		})
		return
	}

	c.JSON(http.StatusOK, toJobDTOs(jobs))
}

// ListJobsByOwner handles GET /jobs/:email
// Returns the jobs posted by the given owner. The path email must match the
// verified session email.
func (h *JobHandler) ListJobsByOwner(c *gin.Context) {
	email := c.Param("email")

	caller := c.GetString(IdentityKey)
	if caller != email {
		h.logger.Warn("Owner listing rejected - email mismatch",
			slog.String("caller", caller),
			slog.String("requested", email),
		)
		c.JSON(http.StatusUnauthorized, gin.H{
			"message": "unauthorized access",
		})
		return
	}

	jobs, err := h.jobs.ListByOwner(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to list jobs by owner", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list jobs",
		})
		return
	}

	c.JSON(http.StatusOK, toJobDTOs(jobs))
}

// GetJob handles GET /job/:id
// A missing job is served as a 200 with a null body, not a 404
func (h *JobHandler) GetJob(c *gin.Context) {
	id := c.Param("id")

	job, err := h.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get job",
			slog.String("job_id", id),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get job",
		})
		return
	}

	if job == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, toJobDTO(*job))
}

// UpdateJob handles PUT /update-job/:id
// Merges the supplied fields into the job; when the id does not exist a new
// job is created under it (upsert)
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	upd := storage.JobUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Deadline:    req.Deadline,
		MinPrice:    req.MinPrice,
		MaxPrice:    req.MaxPrice,
	}
	if req.Buyer != nil {
		upd.BuyerEmail = &req.Buyer.Email
		upd.BuyerName = &req.Buyer.Name
		upd.BuyerPhoto = &req.Buyer.Photo
	}

	created, err := h.jobs.Upsert(c.Request.Context(), id, upd)
	if err != nil {
		h.logger.Error("Failed to update job",
			slog.String("job_id", id),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update job",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"acknowledged": true,
		"job_id":       id,
		"created":      created,
	})
}

// DeleteJob handles DELETE /jobs/:id
// Deleting an absent job is a success with deleted_count 0
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.jobs.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to delete job",
			slog.String("job_id", id),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete job",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"acknowledged":  true,
		"deleted_count": deleted,
	})
}

// SearchJobs handles GET /all-jobs
// Filters by category, searches title substrings case-insensitively, and
// optionally sorts by deadline
func (h *JobHandler) SearchJobs(c *gin.Context) {
	var req dto.SearchJobsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	query := storage.SearchQuery{
		Category: req.Filter,
		Text:     req.Search,
		Sort:     req.Sort,
	}

	jobs, err := h.jobs.Search(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("Failed to search jobs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to search jobs",
		})
		return
	}

	c.JSON(http.StatusOK, toJobDTOs(jobs))
}

func toJobDTO(job model.Job) dto.JobDTO {
	return dto.JobDTO{
		JobID:       job.JobID,
		Title:       job.Title,
		Description: job.Description,
		Category:    job.Category,
		Deadline:    job.Deadline,
		MinPrice:    job.MinPrice,
		MaxPrice:    job.MaxPrice,
		Buyer: dto.BuyerDTO{
			Email: job.BuyerEmail,
			Name:  job.BuyerName,
			Photo: job.BuyerPhoto,
		},
		BidCount:  job.BidCount,
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
		UpdatedAt: job.UpdatedAt.Format(time.RFC3339),
	}
}

func toJobDTOs(jobs []model.Job) []dto.JobDTO {
	out := make([]dto.JobDTO, len(jobs))
	for i, job := range jobs {
		out[i] = toJobDTO(job)
	}
	return out
}
