package handler_test

import (
	"net/http"
	"testing"

	"github.com/solosphere/server/internal/api/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createJob(t *testing.T, s *testServer, owner string, req dto.CreateJobRequest) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/add-job", req, s.sessionCookie(t, owner))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ack struct {
		Acknowledged bool   `json:"acknowledged"`
		JobID        string `json:"job_id"`
	}
	decodeJSON(t, w, &ack)
	require.True(t, ack.Acknowledged)
	require.NotEmpty(t, ack.JobID)
	return ack.JobID
}

func TestCreateJobRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/add-job", dto.CreateJobRequest{Title: "Build logo"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateJobThenGet(t *testing.T) {
	s := newTestServer(t)

	id := createJob(t, s, "own@x.com", dto.CreateJobRequest{
		Title:    "Build logo",
		Category: "design",
		Deadline: "2024-01-01",
		Buyer:    dto.BuyerDTO{Email: "own@x.com"},
	})

	w := s.do(t, http.MethodGet, "/job/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var job dto.JobDTO
	decodeJSON(t, w, &job)
	assert.Equal(t, id, job.JobID)
	assert.Equal(t, "Build logo", job.Title)
	assert.Equal(t, "design", job.Category)
	assert.Equal(t, "2024-01-01", job.Deadline)
	assert.Equal(t, "own@x.com", job.Buyer.Email)
	assert.Equal(t, 0, job.BidCount)
}

func TestGetJobMissingIsNullBody(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/job/does-not-exist", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestUpdateJobMergesPartial(t *testing.T) {
	s := newTestServer(t)

	id := createJob(t, s, "own@x.com", dto.CreateJobRequest{
		Title:    "Build logo",
		Category: "design",
		Buyer:    dto.BuyerDTO{Email: "own@x.com"},
	})

	title := "Build a better logo"
	w := s.do(t, http.MethodPut, "/update-job/"+id, dto.UpdateJobRequest{Title: &title}, s.sessionCookie(t, "own@x.com"))
	require.Equal(t, http.StatusOK, w.Code)

	var ack struct {
		Acknowledged bool `json:"acknowledged"`
		Created      bool `json:"created"`
	}
	decodeJSON(t, w, &ack)
	assert.True(t, ack.Acknowledged)
	assert.False(t, ack.Created)

	var job dto.JobDTO
	decodeJSON(t, s.do(t, http.MethodGet, "/job/"+id, nil), &job)
	assert.Equal(t, "Build a better logo", job.Title)
	// The absent field keeps its value.
	assert.Equal(t, "design", job.Category)
}

func TestUpdateJobUpsertsMissingID(t *testing.T) {
	s := newTestServer(t)

	title := "Brand new"
	w := s.do(t, http.MethodPut, "/update-job/custom-id", dto.UpdateJobRequest{Title: &title}, s.sessionCookie(t, "own@x.com"))
	require.Equal(t, http.StatusOK, w.Code)

	var ack struct {
		Created bool   `json:"created"`
		JobID   string `json:"job_id"`
	}
	decodeJSON(t, w, &ack)
	assert.True(t, ack.Created)
	assert.Equal(t, "custom-id", ack.JobID)

	var job dto.JobDTO
	decodeJSON(t, s.do(t, http.MethodGet, "/job/custom-id", nil), &job)
	assert.Equal(t, "Brand new", job.Title)
}

func TestDeleteJobIsIdempotent(t *testing.T) {
	s := newTestServer(t)

	id := createJob(t, s, "own@x.com", dto.CreateJobRequest{Title: "Build logo"})
	cookie := s.sessionCookie(t, "own@x.com")

	var ack struct {
		DeletedCount int64 `json:"deleted_count"`
	}

	w := s.do(t, http.MethodDelete, "/jobs/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &ack)
	assert.Equal(t, int64(1), ack.DeletedCount)

	w = s.do(t, http.MethodDelete, "/jobs/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &ack)
	assert.Equal(t, int64(0), ack.DeletedCount)
}

func TestListJobsByOwnerEnforcesEmailMatch(t *testing.T) {
	s := newTestServer(t)

	createJob(t, s, "own@x.com", dto.CreateJobRequest{
		Title: "Build logo",
		Buyer: dto.BuyerDTO{Email: "own@x.com"},
	})

	// Valid session, but for a different email than the path.
	w := s.do(t, http.MethodGet, "/jobs/own@x.com", nil, s.sessionCookie(t, "other@x.com"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/jobs/own@x.com", nil, s.sessionCookie(t, "own@x.com"))
	require.Equal(t, http.StatusOK, w.Code)

	var jobs []dto.JobDTO
	decodeJSON(t, w, &jobs)
	require.Len(t, jobs, 1)
	assert.Equal(t, "own@x.com", jobs[0].Buyer.Email)
}

func TestListJobsIsPublic(t *testing.T) {
	s := newTestServer(t)

	createJob(t, s, "own@x.com", dto.CreateJobRequest{Title: "Build logo"})
	createJob(t, s, "own@x.com", dto.CreateJobRequest{Title: "Landing page"})

	w := s.do(t, http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var jobs []dto.JobDTO
	decodeJSON(t, w, &jobs)
	assert.Len(t, jobs, 2)
}

func TestSearchJobs(t *testing.T) {
	s := newTestServer(t)

	createJob(t, s, "own@x.com", dto.CreateJobRequest{Title: "Build logo", Category: "design", Deadline: "2024-03-01"})
	createJob(t, s, "own@x.com", dto.CreateJobRequest{Title: "Logo refresh", Category: "design", Deadline: "2024-01-01"})
	createJob(t, s, "own@x.com", dto.CreateJobRequest{Title: "Logo animation", Category: "video", Deadline: "2024-02-01"})

	w := s.do(t, http.MethodGet, "/all-jobs?filter=design&search=log&sort=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var jobs []dto.JobDTO
	decodeJSON(t, w, &jobs)
	require.Len(t, jobs, 2)
	assert.Equal(t, "Logo refresh", jobs[0].Title)
	assert.Equal(t, "Build logo", jobs[1].Title)
	for _, j := range jobs {
		assert.Equal(t, "design", j.Category)
	}

	// No parameters returns everything.
	w = s.do(t, http.MethodGet, "/all-jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &jobs)
	assert.Len(t, jobs, 3)
}
