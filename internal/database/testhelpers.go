package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestCompanies seeds n companies and returns their IDs.
func CreateTestCompanies(t *testing.T, pool *pgxpool.Pool, n int) []int64 {
	t.Helper()

	ids, err := SeedCompanies(context.Background(), pool, n)
	require.NoError(t, err)
	require.Len(t, ids, n)
	return ids
}

// CreateTestCollection creates a collection containing the given companies.
func CreateTestCollection(t *testing.T, pool *pgxpool.Pool, name string, companyIDs []int64) uuid.UUID {
	t.Helper()

	id, err := SeedCollection(context.Background(), pool, name, companyIDs)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	return id
}

// LikedCollectionID resolves the reserved liked collection created by the
// migrations.
func LikedCollectionID(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`SELECT id FROM company_collections WHERE collection_name = 'Liked Companies'`,
	).Scan(&id)
	require.NoError(t, err)
	return id
}
