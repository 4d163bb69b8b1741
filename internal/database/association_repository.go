package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AssociationRepo implements domain.AssociationRepository backed by PostgreSQL.
type AssociationRepo struct {
	pool *pgxpool.Pool
}

func NewAssociationRepo(pool *pgxpool.Pool) *AssociationRepo {
	return &AssociationRepo{pool: pool}
}

// Insert adds one association row. Duplicate pairs are skipped via the
// unique constraint; the bool reports whether a row was actually written.
func (r *AssociationRepo) Insert(ctx context.Context, collectionID uuid.UUID, companyID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO company_collection_associations (collection_id, company_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT uq_collection_company DO NOTHING
	`, collectionID, companyID)
	if err != nil {
		return false, fmt.Errorf("failed to insert association: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AssociationRepo) Delete(ctx context.Context, collectionID uuid.UUID, companyID int64) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM company_collection_associations
		WHERE collection_id = $1 AND company_id = $2
	`, collectionID, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete association: %w", err)
	}
	return nil
}

func (r *AssociationRepo) ExistingIn(ctx context.Context, collectionID uuid.UUID, ids []int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT company_id
		FROM company_collection_associations
		WHERE collection_id = $1 AND company_id = ANY($2)
		ORDER BY company_id
	`, collectionID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing associations: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}
