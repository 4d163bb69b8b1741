package database

import (
	"context"
	"testing"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionRepo_List(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCollectionRepo(pool)
	ctx := context.Background()

	CreateTestCollection(t, pool, "My List", nil)
	CreateTestCollection(t, pool, "Prospects", nil)

	collections, err := repo.List(ctx)
	require.NoError(t, err)

	// The liked collection from the migrations is always present.
	require.Len(t, collections, 3)
	names := make([]string, 0, len(collections))
	for _, c := range collections {
		names = append(names, c.CollectionName)
	}
	assert.Contains(t, names, domain.LikedCollectionName)
	assert.Contains(t, names, "My List")
	assert.Contains(t, names, "Prospects")
}

func TestCollectionRepo_GetByID(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCollectionRepo(pool)
	ctx := context.Background()

	id := CreateTestCollection(t, pool, "My List", nil)

	collection, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, collection.ID)
	assert.Equal(t, "My List", collection.CollectionName)
	assert.False(t, collection.CreatedAt.IsZero())
}

func TestCollectionRepo_GetByID_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCollectionRepo(pool)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
}

func TestCollectionRepo_GetByName(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCollectionRepo(pool)
	ctx := context.Background()

	liked, err := repo.GetByName(ctx, domain.LikedCollectionName)
	require.NoError(t, err)
	assert.Equal(t, domain.LikedCollectionName, liked.CollectionName)

	_, err = repo.GetByName(ctx, "No Such List")
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
}

func TestCollectionRepo_CountCompanies(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCollectionRepo(pool)
	ctx := context.Background()

	companyIDs := CreateTestCompanies(t, pool, 7)
	id := CreateTestCollection(t, pool, "My List", companyIDs[:5])

	total, err := repo.CountCompanies(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	empty := CreateTestCollection(t, pool, "Empty", nil)
	total, err = repo.CountCompanies(ctx, empty)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestCollectionRepo_GetCompanyPage(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCollectionRepo(pool)
	ctx := context.Background()
	likedID := LikedCollectionID(t, pool)

	companyIDs := CreateTestCompanies(t, pool, 25)
	id := CreateTestCollection(t, pool, "My List", companyIDs)

	// Like one company inside the page we will fetch
	assocs := NewAssociationRepo(pool)
	inserted, err := assocs.Insert(ctx, likedID, companyIDs[11])
	require.NoError(t, err)
	require.True(t, inserted)

	page, err := repo.GetCompanyPage(ctx, id, likedID, 10, 5)
	require.NoError(t, err)
	require.Len(t, page, 5)

	// Ordered by company ID
	assert.Equal(t, companyIDs[10], page[0].ID)
	assert.Equal(t, companyIDs[14], page[4].ID)

	assert.False(t, page[0].Liked)
	assert.True(t, page[1].Liked)
}

func TestCollectionRepo_GetCompanyPage_PastEnd(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCollectionRepo(pool)
	ctx := context.Background()

	companyIDs := CreateTestCompanies(t, pool, 3)
	id := CreateTestCollection(t, pool, "My List", companyIDs)

	page, err := repo.GetCompanyPage(ctx, id, LikedCollectionID(t, pool), 100, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestCollectionRepo_MemberIDs(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCollectionRepo(pool)
	ctx := context.Background()

	companyIDs := CreateTestCompanies(t, pool, 5)
	id := CreateTestCollection(t, pool, "My List", []int64{companyIDs[4], companyIDs[0], companyIDs[2]})

	members, err := repo.MemberIDs(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []int64{companyIDs[0], companyIDs[2], companyIDs[4]}, members)
}

func TestCollectionRepo_FilterMembers(t *testing.T) {
	pool := setupTestDB(t)
	repo := NewCollectionRepo(pool)
	ctx := context.Background()

	companyIDs := CreateTestCompanies(t, pool, 5)
	id := CreateTestCollection(t, pool, "My List", companyIDs[:3])

	members, err := repo.FilterMembers(ctx, id, []int64{companyIDs[0], companyIDs[2], companyIDs[4], 99999})
	require.NoError(t, err)
	assert.Equal(t, []int64{companyIDs[0], companyIDs[2]}, members)
}
