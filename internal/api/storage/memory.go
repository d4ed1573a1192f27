package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/solosphere/server/internal/api/domain"
	"github.com/solosphere/server/internal/api/model"
)

// Memory implements JobStore and BidStore in process memory. It backs the
// handler tests so they run against the same store contract without a
// database.
type Memory struct {
	mu   sync.Mutex
	jobs []model.Job
	bids []model.Bid
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Create(ctx context.Context, job *model.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs = append(m.jobs, *job)
	return nil
}

func (m *Memory) ListAll(ctx context.Context) ([]model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Job(nil), m.jobs...), nil
}

func (m *Memory) ListByOwner(ctx context.Context, email string) ([]model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Job
	for _, j := range m.jobs {
		if j.BuyerEmail == email {
			out = append(out, j)
		}
	}
	return out, nil
}

func (m *Memory) GetByID(ctx context.Context, id string) (*model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.jobs {
		if m.jobs[i].JobID == id {
			j := m.jobs[i]
			return &j, nil
		}
	}
	return nil, nil
}

func (m *Memory) Upsert(ctx context.Context, id string, upd JobUpdate) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.jobs {
		if m.jobs[i].JobID == id {
			applyUpdate(&m.jobs[i], upd)
			return false, nil
		}
	}
	job := model.Job{JobID: id}
	applyUpdate(&job, upd)
	m.jobs = append(m.jobs, job)
	return true, nil
}

func applyUpdate(job *model.Job, upd JobUpdate) {
	if upd.Title != nil {
		job.Title = *upd.Title
	}
	if upd.Description != nil {
		job.Description = *upd.Description
	}
	if upd.Category != nil {
		job.Category = *upd.Category
	}
	if upd.Deadline != nil {
		job.Deadline = *upd.Deadline
	}
	if upd.MinPrice != nil {
		job.MinPrice = *upd.MinPrice
	}
	if upd.MaxPrice != nil {
		job.MaxPrice = *upd.MaxPrice
	}
	if upd.BuyerEmail != nil {
		job.BuyerEmail = *upd.BuyerEmail
	}
	if upd.BuyerName != nil {
		job.BuyerName = *upd.BuyerName
	}
	if upd.BuyerPhoto != nil {
		job.BuyerPhoto = *upd.BuyerPhoto
	}
}

func (m *Memory) Delete(ctx context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.jobs {
		if m.jobs[i].JobID == id {
			m.jobs = append(m.jobs[:i], m.jobs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *Memory) Search(ctx context.Context, q SearchQuery) ([]model.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	text := strings.ToLower(q.Text)
	var out []model.Job
	for _, j := range m.jobs {
		if text != "" && !strings.Contains(strings.ToLower(j.Title), text) {
			continue
		}
		if q.Category != "" && j.Category != q.Category {
			continue
		}
		out = append(out, j)
	}

	if q.Sort != "" {
		asc := q.Sort == domain.SortAscending
		sort.SliceStable(out, func(i, k int) bool {
			if asc {
				return out[i].Deadline < out[k].Deadline
			}
			return out[i].Deadline > out[k].Deadline
		})
	}

	return out, nil
}

func (m *Memory) Place(ctx context.Context, bid *model.Bid) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bids {
		if b.Email == bid.Email && b.JobID == bid.JobID {
			return domain.ErrDuplicateBid
		}
	}

	m.bids = append(m.bids, *bid)
	for i := range m.jobs {
		if m.jobs[i].JobID == bid.JobID {
			m.jobs[i].BidCount++
			break
		}
	}
	return nil
}

func (m *Memory) ListForBidder(ctx context.Context, email string) ([]model.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Bid
	for _, b := range m.bids {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *Memory) ListForOwner(ctx context.Context, email string) ([]model.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Bid
	for _, b := range m.bids {
		if b.BuyerEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *Memory) UpdateStatus(ctx context.Context, id, status string) (*model.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bids {
		if m.bids[i].BidID == id {
			m.bids[i].Status = status
			b := m.bids[i]
			return &b, nil
		}
	}
	return nil, nil
}
