package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCompanies bulk-inserts n synthetic companies via COPY and returns
// their IDs.
func SeedCompanies(ctx context.Context, pool *pgxpool.Pool, n int) ([]int64, error) {
	rows := make([][]any, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, []any{fmt.Sprintf("Company %d", i+1)})
	}

	_, err := pool.CopyFrom(ctx,
		pgx.Identifier{"companies"},
		[]string{"company_name"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to copy companies: %w", err)
	}

	idRows, err := pool.Query(ctx, `SELECT id FROM companies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to read seeded company IDs: %w", err)
	}
	defer idRows.Close()

	return scanIDs(idRows)
}

// SeedCollection creates a collection holding the given companies. The
// membership rows go in via COPY, bypassing the per-row insert path.
func SeedCollection(ctx context.Context, pool *pgxpool.Pool, name string, companyIDs []int64) (uuid.UUID, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, `
		INSERT INTO company_collections (collection_name)
		VALUES ($1)
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create collection: %w", err)
	}

	if len(companyIDs) == 0 {
		return id, nil
	}

	rows := make([][]any, 0, len(companyIDs))
	for _, companyID := range companyIDs {
		rows = append(rows, []any{id, companyID})
	}

	_, err = pool.CopyFrom(ctx,
		pgx.Identifier{"company_collection_associations"},
		[]string{"collection_id", "company_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to copy associations: %w", err)
	}

	return id, nil
}
