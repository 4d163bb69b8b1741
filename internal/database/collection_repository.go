package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CollectionRepo implements domain.CollectionRepository backed by PostgreSQL.
type CollectionRepo struct {
	pool *pgxpool.Pool
}

func NewCollectionRepo(pool *pgxpool.Pool) *CollectionRepo {
	return &CollectionRepo{pool: pool}
}

func (r *CollectionRepo) List(ctx context.Context) ([]domain.Collection, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, collection_name, created_at
		FROM company_collections
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var collections []domain.Collection
	for rows.Next() {
		var c domain.Collection
		if err := rows.Scan(&c.ID, &c.CollectionName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read collections: %w", err)
	}
	return collections, nil
}

func (r *CollectionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Collection, error) {
	return r.get(ctx, `SELECT id, collection_name, created_at FROM company_collections WHERE id = $1`, id)
}

func (r *CollectionRepo) GetByName(ctx context.Context, name string) (*domain.Collection, error) {
	return r.get(ctx, `SELECT id, collection_name, created_at FROM company_collections WHERE collection_name = $1`, name)
}

func (r *CollectionRepo) get(ctx context.Context, query string, arg any) (*domain.Collection, error) {
	var c domain.Collection
	err := r.pool.QueryRow(ctx, query, arg).Scan(&c.ID, &c.CollectionName, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCollectionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return &c, nil
}

func (r *CollectionRepo) CountCompanies(ctx context.Context, id uuid.UUID) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM company_collection_associations
		WHERE collection_id = $1
	`, id).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count collection companies: %w", err)
	}
	return total, nil
}

// GetCompanyPage joins membership with companies and resolves the liked flag
// against the reserved liked collection, all in one round trip.
func (r *CollectionRepo) GetCompanyPage(ctx context.Context, id, likedCollectionID uuid.UUID, offset, limit int) ([]domain.Company, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.company_name, c.created_at,
		       EXISTS (
		           SELECT 1 FROM company_collection_associations liked
		           WHERE liked.collection_id = $2 AND liked.company_id = c.id
		       ) AS liked
		FROM company_collection_associations a
		JOIN companies c ON c.id = a.company_id
		WHERE a.collection_id = $1
		ORDER BY c.id
		OFFSET $3 LIMIT $4
	`, id, likedCollectionID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection page: %w", err)
	}
	defer rows.Close()

	return scanCompanies(rows)
}

func (r *CollectionRepo) MemberIDs(ctx context.Context, id uuid.UUID) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT company_id
		FROM company_collection_associations
		WHERE collection_id = $1
		ORDER BY company_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query member IDs: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (r *CollectionRepo) FilterMembers(ctx context.Context, id uuid.UUID, ids []int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT company_id
		FROM company_collection_associations
		WHERE collection_id = $1 AND company_id = ANY($2)
		ORDER BY company_id
	`, id, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to filter members: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

func scanIDs(rows pgx.Rows) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan company ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read company IDs: %w", err)
	}
	return ids, nil
}

func scanCompanies(rows pgx.Rows) ([]domain.Company, error) {
	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.CreatedAt, &c.Liked); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read companies: %w", err)
	}
	return companies, nil
}
