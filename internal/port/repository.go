package port

import (
	"context"

	"github.com/google/uuid"

	"aansluitintake/internal/domain"
)

// ConnectionRepository defines the contract for connection persistence.
// Put is an upsert keyed on the connection id.
type ConnectionRepository interface {
	Put(ctx context.Context, conn *domain.Connection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Connection, error)
	List(ctx context.Context, offset, limit int) ([]domain.Connection, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// IntakeJobRepository defines the contract for intake job persistence.
type IntakeJobRepository interface {
	Create(ctx context.Context, job *domain.IntakeJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.IntakeJob, error)
	List(ctx context.Context, offset, limit int) ([]domain.IntakeJob, int, error)
	// ClaimQueued atomically moves up to limit queued jobs to processing and
	// returns them. Safe to call from concurrent workers.
	ClaimQueued(ctx context.Context, limit int) ([]domain.IntakeJob, error)
	MarkCompleted(ctx context.Context, id uuid.UUID, recordCount int, ocrConfidence *float64) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	// SkipQueued marks all still-queued jobs as skipped, returning the count.
	// Used during shutdown so queued work is not silently lost.
	SkipQueued(ctx context.Context) (int64, error)
}

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}
