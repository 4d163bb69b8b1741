package domain

import (
	"context"

	"github.com/google/uuid"
)

// CollectionRepository reads collections and their membership.
type CollectionRepository interface {
	// List returns all collections ordered by creation time.
	List(ctx context.Context) ([]Collection, error)

	// GetByID returns a collection or ErrCollectionNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Collection, error)

	// GetByName returns a collection by exact name or ErrCollectionNotFound.
	GetByName(ctx context.Context, name string) (*Collection, error)

	// CountCompanies returns the number of companies in the collection.
	CountCompanies(ctx context.Context, id uuid.UUID) (int64, error)

	// GetCompanyPage returns one page of the collection's companies ordered
	// by company ID. The liked flag is resolved against likedCollectionID.
	GetCompanyPage(ctx context.Context, id, likedCollectionID uuid.UUID, offset, limit int) ([]Company, error)

	// MemberIDs returns all company IDs in the collection ordered by ID.
	MemberIDs(ctx context.Context, id uuid.UUID) ([]int64, error)

	// FilterMembers returns the subset of ids that are members of the
	// collection.
	FilterMembers(ctx context.Context, id uuid.UUID, ids []int64) ([]int64, error)
}

// CompanyRepository reads the global companies table.
type CompanyRepository interface {
	// GetPage returns one page of companies ordered by ID, with the liked
	// flag resolved against likedCollectionID.
	GetPage(ctx context.Context, likedCollectionID uuid.UUID, offset, limit int) ([]Company, error)

	// Count returns the total number of companies.
	Count(ctx context.Context) (int64, error)

	// Exists reports whether a company ID exists.
	Exists(ctx context.Context, id int64) (bool, error)
}

// AssociationRepository mutates collection membership.
type AssociationRepository interface {
	// Insert adds a company to a collection. It reports false without error
	// when the association already exists (duplicates are skipped, not
	// failures).
	Insert(ctx context.Context, collectionID uuid.UUID, companyID int64) (bool, error)

	// Delete removes a company from a collection. Removing a missing
	// association is a no-op.
	Delete(ctx context.Context, collectionID uuid.UUID, companyID int64) error

	// ExistingIn returns the subset of ids already present in the
	// collection.
	ExistingIn(ctx context.Context, collectionID uuid.UUID, ids []int64) ([]int64, error)
}

// OperationStore tracks background copy operations. Records are ephemeral:
// implementations may expire them after a retention window, after which Get
// returns ErrOperationNotFound.
type OperationStore interface {
	// Create stores a new pending operation with the given expected total.
	Create(ctx context.Context, id uuid.UUID, total int64) error

	// SetInProgress marks the operation running and rewrites its total
	// (duplicates already in the target are dropped from the count).
	SetInProgress(ctx context.Context, id uuid.UUID, total int64) error

	// SetProgress updates the progress counter.
	SetProgress(ctx context.Context, id uuid.UUID, progress int64) error

	// SetCompleted marks the operation finished.
	SetCompleted(ctx context.Context, id uuid.UUID) error

	// SetFailed marks the operation failed with a human-readable message.
	SetFailed(ctx context.Context, id uuid.UUID, message string) error

	// Get returns the operation or ErrOperationNotFound.
	Get(ctx context.Context, id uuid.UUID) (*Operation, error)
}
