package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/eats-service/internal/domain"
)

// VerificationRepository manages email verification code persistence.
type VerificationRepository interface {
	Create(ctx context.Context, verification *domain.Verification) error
	GetByCode(ctx context.Context, code string) (*domain.Verification, error)
	Delete(ctx context.Context, id int64) error
}

type verificationRepository struct {
	pool *pgxpool.Pool
}

// NewVerificationRepository constructs repository.
func NewVerificationRepository(pool *pgxpool.Pool) VerificationRepository {
	return &verificationRepository{pool: pool}
}

func (r *verificationRepository) Create(ctx context.Context, verification *domain.Verification) error {
	const query = `
        INSERT INTO verifications (code, user_id)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		verification.Code,
		verification.UserID,
	).Scan(&verification.ID, &verification.CreatedAt, &verification.UpdatedAt)
}

// GetByCode loads a verification joined to its owning user; only the user id
// is needed by the consume flow.
func (r *verificationRepository) GetByCode(ctx context.Context, code string) (*domain.Verification, error) {
	const query = `
        SELECT v.id, v.code, u.id, v.created_at, v.updated_at
        FROM verifications v
        JOIN users u ON u.id = v.user_id
        WHERE v.code=$1`
	var verification domain.Verification
	if err := r.pool.QueryRow(ctx, query, code).Scan(
		&verification.ID,
		&verification.Code,
		&verification.UserID,
		&verification.CreatedAt,
		&verification.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *verificationRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM verifications WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
