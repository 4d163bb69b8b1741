package database

import (
	"context"
	"fmt"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CompanyRepo implements domain.CompanyRepository backed by PostgreSQL.
type CompanyRepo struct {
	pool *pgxpool.Pool
}

func NewCompanyRepo(pool *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{pool: pool}
}

func (r *CompanyRepo) GetPage(ctx context.Context, likedCollectionID uuid.UUID, offset, limit int) ([]domain.Company, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.company_name, c.created_at,
		       EXISTS (
		           SELECT 1 FROM company_collection_associations liked
		           WHERE liked.collection_id = $1 AND liked.company_id = c.id
		       ) AS liked
		FROM companies c
		ORDER BY c.id
		OFFSET $2 LIMIT $3
	`, likedCollectionID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies page: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

func (r *CompanyRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return total, nil
}

func (r *CompanyRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check company existence: %w", err)
	}
	return exists, nil
}
