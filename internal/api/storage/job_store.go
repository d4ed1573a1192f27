package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/solosphere/server/internal/api/domain"
	"github.com/solosphere/server/internal/api/model"
	"github.com/solosphere/server/shared/postgresql"
)

const jobColumns = `
	job_id, title, description, category, deadline,
	min_price, max_price, buyer_email, buyer_name, buyer_photo,
	bid_count, created_at, updated_at
`

// PostgresJobStore is the jobs collection backed by PostgreSQL.
type PostgresJobStore struct {
	db *sqlx.DB
}

func NewPostgresJobStore(pg *postgresql.Client) *PostgresJobStore {
	return &PostgresJobStore{
		db: pg.GetDB(),
	}
}

func (s *PostgresJobStore) Create(ctx context.Context, job *model.Job) error {
	query := `
		INSERT INTO jobs (` + jobColumns + `) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.JobID,
		job.Title,
		job.Description,
		job.Category,
		job.Deadline,
		job.MinPrice,
		job.MaxPrice,
		job.BuyerEmail,
		job.BuyerName,
		job.BuyerPhoto,
		job.BidCount,
		job.CreatedAt,
		job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (s *PostgresJobStore) ListAll(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	err := s.db.SelectContext(ctx, &jobs, `SELECT `+jobColumns+` FROM jobs`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (s *PostgresJobStore) ListByOwner(ctx context.Context, email string) ([]model.Job, error) {
	var jobs []model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE buyer_email = $1`
	err := s.db.SelectContext(ctx, &jobs, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by owner: %w", err)
	}
	return jobs, nil
}

func (s *PostgresJobStore) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE job_id = $1`

	err := s.db.GetContext(ctx, &job, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// A missing job is an empty result, not an error.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

// Upsert merges the non-nil fields of upd into the job. When no row matches
// the id, a new row is created under that id from the supplied fields.
func (s *PostgresJobStore) Upsert(ctx context.Context, id string, upd JobUpdate) (bool, error) {
	query := `
		UPDATE jobs SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			category = COALESCE($4, category),
			deadline = COALESCE($5, deadline),
			min_price = COALESCE($6, min_price),
			max_price = COALESCE($7, max_price),
			buyer_email = COALESCE($8, buyer_email),
			buyer_name = COALESCE($9, buyer_name),
			buyer_photo = COALESCE($10, buyer_photo),
			updated_at = NOW()
		WHERE job_id = $1
	`

	res, err := s.db.ExecContext(
		ctx,
		query,
		id,
		upd.Title,
		upd.Description,
		upd.Category,
		upd.Deadline,
		upd.MinPrice,
		upd.MaxPrice,
		upd.BuyerEmail,
		upd.BuyerName,
		upd.BuyerPhoto,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update job: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		return false, nil
	}

	insert := `
		INSERT INTO jobs (` + jobColumns + `) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			0, NOW(), NOW()
		)
	`

	_, err = s.db.ExecContext(
		ctx,
		insert,
		id,
		deref(upd.Title),
		deref(upd.Description),
		deref(upd.Category),
		deref(upd.Deadline),
		derefFloat(upd.MinPrice),
		derefFloat(upd.MaxPrice),
		deref(upd.BuyerEmail),
		deref(upd.BuyerName),
		deref(upd.BuyerPhoto),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert job: %w", err)
	}

	return true, nil
}

func (s *PostgresJobStore) Delete(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE job_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete job: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

func (s *PostgresJobStore) Search(ctx context.Context, q SearchQuery) ([]model.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE title ILIKE '%' || $1 || '%'`
	args := []interface{}{q.Text}
	argIdx := 2

	if q.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, q.Category)
		argIdx++
	}

	if q.Sort != "" {
		if q.Sort == domain.SortAscending {
			query += " ORDER BY deadline ASC"
		} else {
			query += " ORDER BY deadline DESC"
		}
	}

	var jobs []model.Job
	err := s.db.SelectContext(ctx, &jobs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}

	return jobs, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
