package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/port"
)

type intakeJobRepo struct {
	db *sqlx.DB
}

// NewIntakeJobRepo creates a new PostgreSQL-backed IntakeJobRepository.
func NewIntakeJobRepo(db *sqlx.DB) port.IntakeJobRepository {
	return &intakeJobRepo{db: db}
}

func (r *intakeJobRepo) Create(ctx context.Context, job *domain.IntakeJob) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.CreatedAt = time.Now().UTC()
	if job.Status == "" {
		job.Status = domain.JobStatusQueued
	}

	query := `INSERT INTO intake_jobs (
		id, source, file_name, file_type, content_type, file_size,
		s3_bucket, s3_key, allow_multiple, split_mode, provider,
		status, ocr_confidence, record_count, error,
		created_by, created_at, started_at, finished_at
	) VALUES (
		:id, :source, :file_name, :file_type, :content_type, :file_size,
		:s3_bucket, :s3_key, :allow_multiple, :split_mode, :provider,
		:status, :ocr_confidence, :record_count, :error,
		:created_by, :created_at, :started_at, :finished_at
	)`

	if _, err := r.db.NamedExecContext(ctx, query, job); err != nil {
		return fmt.Errorf("intakeJobRepo.Create: %w", err)
	}
	return nil
}

func (r *intakeJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.IntakeJob, error) {
	var job domain.IntakeJob
	err := r.db.GetContext(ctx, &job, "SELECT * FROM intake_jobs WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("intakeJobRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *intakeJobRepo) List(ctx context.Context, offset, limit int) ([]domain.IntakeJob, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM intake_jobs")
	if err != nil {
		return nil, 0, fmt.Errorf("intakeJobRepo.List count: %w", err)
	}

	var jobs []domain.IntakeJob
	err = r.db.SelectContext(ctx, &jobs,
		"SELECT * FROM intake_jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("intakeJobRepo.List: %w", err)
	}
	return jobs, total, nil
}

// ClaimQueued moves up to limit queued jobs to processing and returns them.
// SKIP LOCKED keeps concurrent workers from claiming the same job twice.
func (r *intakeJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.IntakeJob, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `WITH claimed AS (
		SELECT id FROM intake_jobs
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2
		FOR UPDATE SKIP LOCKED
	)
	UPDATE intake_jobs j
	SET status = $3, started_at = NOW()
	FROM claimed
	WHERE j.id = claimed.id
	RETURNING j.*`

	var jobs []domain.IntakeJob
	err := r.db.SelectContext(ctx, &jobs, query,
		domain.JobStatusQueued, limit, domain.JobStatusProcessing)
	if err != nil {
		return nil, fmt.Errorf("intakeJobRepo.ClaimQueued: %w", err)
	}
	return jobs, nil
}

func (r *intakeJobRepo) MarkCompleted(ctx context.Context, id uuid.UUID, recordCount int, ocrConfidence *float64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE intake_jobs
		 SET status = $1, record_count = $2, ocr_confidence = $3, error = '', finished_at = NOW()
		 WHERE id = $4`,
		domain.JobStatusCompleted, recordCount, ocrConfidence, id)
	if err != nil {
		return fmt.Errorf("intakeJobRepo.MarkCompleted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *intakeJobRepo) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE intake_jobs SET status = $1, error = $2, finished_at = NOW() WHERE id = $3`,
		domain.JobStatusFailed, errMsg, id)
	if err != nil {
		return fmt.Errorf("intakeJobRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SkipQueued marks every still-queued job as skipped. Called on shutdown so
// restarting the service never reprocesses half-forgotten uploads silently.
func (r *intakeJobRepo) SkipQueued(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE intake_jobs SET status = $1, finished_at = NOW() WHERE status = $2`,
		domain.JobStatusSkipped, domain.JobStatusQueued)
	if err != nil {
		return 0, fmt.Errorf("intakeJobRepo.SkipQueued: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
