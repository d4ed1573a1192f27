package storage

import (
	"context"
	"testing"

	"github.com/solosphere/server/internal/api/domain"
	"github.com/solosphere/server/internal/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMemoryCreateThenGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	job := model.Job{
		JobID:      "j1",
		Title:      "Build logo",
		Category:   "design",
		Deadline:   "2024-01-01",
		BuyerEmail: "own@x.com",
	}
	require.NoError(t, m.Create(ctx, &job))

	got, err := m.GetByID(ctx, "j1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, job, *got)
	assert.Equal(t, 0, got.BidCount)
}

func TestMemoryGetMissingIsNil(t *testing.T) {
	m := NewMemory()

	got, err := m.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryUpsertMergesPartial(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Create(ctx, &model.Job{
		JobID:    "j1",
		Title:    "Build logo",
		Category: "design",
	}))

	created, err := m.Upsert(ctx, "j1", JobUpdate{Title: strPtr("Build a better logo")})
	require.NoError(t, err)
	assert.False(t, created)

	got, err := m.GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, "Build a better logo", got.Title)
	// Fields absent from the partial are untouched.
	assert.Equal(t, "design", got.Category)
}

func TestMemoryUpsertCreatesMissing(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	created, err := m.Upsert(ctx, "brand-new", JobUpdate{Title: strPtr("New job")})
	require.NoError(t, err)
	assert.True(t, created)

	got, err := m.GetByID(ctx, "brand-new")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "New job", got.Title)
}

func TestMemoryDeleteIsIdempotent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Create(ctx, &model.Job{JobID: "j1"}))

	deleted, err := m.Delete(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = m.Delete(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestMemorySearch(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Create(ctx, &model.Job{JobID: "a", Title: "Build logo", Category: "design", Deadline: "2024-03-01"}))
	require.NoError(t, m.Create(ctx, &model.Job{JobID: "b", Title: "Logo refresh", Category: "design", Deadline: "2024-01-01"}))
	require.NoError(t, m.Create(ctx, &model.Job{JobID: "c", Title: "Logo animation", Category: "video", Deadline: "2024-02-01"}))
	require.NoError(t, m.Create(ctx, &model.Job{JobID: "d", Title: "Landing page", Category: "design", Deadline: "2024-04-01"}))

	jobs, err := m.Search(ctx, SearchQuery{Category: "design", Text: "log", Sort: "asc"})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "b", jobs[0].JobID)
	assert.Equal(t, "a", jobs[1].JobID)

	// Empty text matches every title.
	jobs, err = m.Search(ctx, SearchQuery{Category: "design"})
	require.NoError(t, err)
	assert.Len(t, jobs, 3)

	// Matching is case-insensitive.
	jobs, err = m.Search(ctx, SearchQuery{Text: "LOGO"})
	require.NoError(t, err)
	assert.Len(t, jobs, 3)

	// Descending sort.
	jobs, err = m.Search(ctx, SearchQuery{Text: "logo", Sort: "desc"})
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "a", jobs[0].JobID)
	assert.Equal(t, "b", jobs[2].JobID)
}

func TestMemoryPlaceBidIncrementsCount(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Create(ctx, &model.Job{JobID: "j1", BuyerEmail: "own@x.com"}))

	bid := model.Bid{BidID: "b1", JobID: "j1", Email: "a@x.com", BuyerEmail: "own@x.com"}
	require.NoError(t, m.Place(ctx, &bid))

	job, err := m.GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, 1, job.BidCount)

	placed, err := m.ListForBidder(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, "b1", placed[0].BidID)
}

func TestMemoryPlaceBidRejectsDuplicate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Create(ctx, &model.Job{JobID: "j1"}))
	require.NoError(t, m.Place(ctx, &model.Bid{BidID: "b1", JobID: "j1", Email: "a@x.com"}))

	err := m.Place(ctx, &model.Bid{BidID: "b2", JobID: "j1", Email: "a@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateBid)

	job, err := m.GetByID(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, 1, job.BidCount)
}

func TestMemoryListModesNeverCombine(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Place(ctx, &model.Bid{BidID: "b1", JobID: "j1", Email: "a@x.com", BuyerEmail: "own@x.com"}))
	require.NoError(t, m.Place(ctx, &model.Bid{BidID: "b2", JobID: "j2", Email: "own@x.com", BuyerEmail: "a@x.com"}))

	placed, err := m.ListForBidder(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, placed, 1)
	assert.Equal(t, "b1", placed[0].BidID)

	received, err := m.ListForOwner(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "b2", received[0].BidID)
}

func TestMemoryUpdateStatus(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Place(ctx, &model.Bid{BidID: "b1", JobID: "j1", Email: "a@x.com", Status: "pending"}))

	bid, err := m.UpdateStatus(ctx, "b1", "rejected")
	require.NoError(t, err)
	require.NotNil(t, bid)
	assert.Equal(t, "rejected", bid.Status)

	// Any value overwrites any other; nothing validates membership.
	bid, err = m.UpdateStatus(ctx, "b1", "whatever")
	require.NoError(t, err)
	assert.Equal(t, "whatever", bid.Status)

	bid, err = m.UpdateStatus(ctx, "missing", "rejected")
	require.NoError(t, err)
	assert.Nil(t, bid)
}
