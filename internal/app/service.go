package app

import (
	"context"
	"fmt"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	"github.com/ariqM1/fullstack-jam/internal/metrics"
	"github.com/google/uuid"
)

// allCompaniesCountKey is the count-cache key for the global companies total.
var allCompaniesCountKey = uuid.Nil

// CopyAccepted is the immediate response to a copy request; the actual work
// happens in the background and is polled via the operation ID.
type CopyAccepted struct {
	OperationID uuid.UUID `json:"operation_id"`
	Message     string    `json:"message"`
}

// Service orchestrates all use cases. It is the only component that touches
// more than one repository.
type Service struct {
	collections domain.CollectionRepository
	companies   domain.CompanyRepository
	assocs      domain.AssociationRepository
	store       domain.OperationStore
	counts      *CountCache
	copier      *Copier
	likedID     uuid.UUID
}

// NewService creates the application service. likedCollectionID is the
// reserved collection backing the liked flag, resolved at startup.
func NewService(
	collections domain.CollectionRepository,
	companies domain.CompanyRepository,
	assocs domain.AssociationRepository,
	store domain.OperationStore,
	counts *CountCache,
	copier *Copier,
	likedCollectionID uuid.UUID,
) *Service {
	return &Service{
		collections: collections,
		companies:   companies,
		assocs:      assocs,
		store:       store,
		counts:      counts,
		copier:      copier,
		likedID:     likedCollectionID,
	}
}

// Stop shuts down the background copier and waits for in-flight jobs.
func (s *Service) Stop() {
	s.copier.Stop()
}

// ListCollections returns the metadata of all collections.
func (s *Service) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	return s.collections.List(ctx)
}

// GetCollectionPage returns one page of a collection's companies plus the
// (possibly cached) membership total.
func (s *Service) GetCollectionPage(ctx context.Context, id uuid.UUID, offset, limit int) (*domain.CollectionPage, error) {
	collection, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	total, err := s.counts.Get(ctx, id, func(ctx context.Context) (int64, error) {
		return s.collections.CountCompanies(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	companies, err := s.collections.GetCompanyPage(ctx, id, s.likedID, offset, limit)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []domain.Company{}
	}

	return &domain.CollectionPage{
		ID:             collection.ID,
		CollectionName: collection.CollectionName,
		Companies:      companies,
		Total:          total,
	}, nil
}

// ListCompanies returns one page of the global companies table.
func (s *Service) ListCompanies(ctx context.Context, offset, limit int) (*domain.CompanyPage, error) {
	total, err := s.counts.Get(ctx, allCompaniesCountKey, func(ctx context.Context) (int64, error) {
		return s.companies.Count(ctx)
	})
	if err != nil {
		return nil, err
	}

	companies, err := s.companies.GetPage(ctx, s.likedID, offset, limit)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []domain.Company{}
	}

	return &domain.CompanyPage{Companies: companies, Total: total}, nil
}

// LikeCompany adds a company to the liked collection. Liking an already
// liked company is a no-op.
func (s *Service) LikeCompany(ctx context.Context, companyID int64) error {
	if err := s.checkCompanyExists(ctx, companyID); err != nil {
		return err
	}
	if _, err := s.assocs.Insert(ctx, s.likedID, companyID); err != nil {
		return err
	}
	s.counts.Invalidate(s.likedID)
	return nil
}

// UnlikeCompany removes a company from the liked collection.
func (s *Service) UnlikeCompany(ctx context.Context, companyID int64) error {
	if err := s.checkCompanyExists(ctx, companyID); err != nil {
		return err
	}
	if err := s.assocs.Delete(ctx, s.likedID, companyID); err != nil {
		return err
	}
	s.counts.Invalidate(s.likedID)
	return nil
}

func (s *Service) checkCompanyExists(ctx context.Context, companyID int64) error {
	exists, err := s.companies.Exists(ctx, companyID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrCompanyNotFound
	}
	return nil
}

// CopySelected validates a selected-subset copy and launches it in the
// background. Every selected company must currently be a member of the
// source collection.
func (s *Service) CopySelected(ctx context.Context, sourceID, targetID uuid.UUID, companyIDs []int64) (*CopyAccepted, error) {
	source, target, err := s.resolveCopyPair(ctx, sourceID, targetID)
	if err != nil {
		return nil, err
	}

	companyIDs = dedupe(companyIDs)
	if len(companyIDs) == 0 {
		return nil, domain.ErrNoCompaniesSelected
	}

	members, err := s.collections.FilterMembers(ctx, source.ID, companyIDs)
	if err != nil {
		return nil, err
	}
	if len(members) != len(companyIDs) {
		return nil, domain.ErrCompaniesNotInSource
	}

	accepted, err := s.launchCopy(ctx, target.ID, companyIDs)
	if err != nil {
		return nil, err
	}
	metrics.CopyOperationsStarted.WithLabelValues("selected").Inc()

	accepted.Message = fmt.Sprintf("Adding %d companies to %s", len(companyIDs), target.CollectionName)
	return accepted, nil
}

// CopyAll launches a copy of the source collection's entire membership.
func (s *Service) CopyAll(ctx context.Context, sourceID, targetID uuid.UUID) (*CopyAccepted, error) {
	source, target, err := s.resolveCopyPair(ctx, sourceID, targetID)
	if err != nil {
		return nil, err
	}

	companyIDs, err := s.collections.MemberIDs(ctx, source.ID)
	if err != nil {
		return nil, err
	}

	accepted, err := s.launchCopy(ctx, target.ID, companyIDs)
	if err != nil {
		return nil, err
	}
	metrics.CopyOperationsStarted.WithLabelValues("all").Inc()

	accepted.Message = fmt.Sprintf("Adding all %d companies from %s to %s",
		len(companyIDs), source.CollectionName, target.CollectionName)
	return accepted, nil
}

// OperationStatus returns the current progress record of a copy operation.
func (s *Service) OperationStatus(ctx context.Context, id uuid.UUID) (*domain.Operation, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) resolveCopyPair(ctx context.Context, sourceID, targetID uuid.UUID) (source, target *domain.Collection, err error) {
	if sourceID == targetID {
		return nil, nil, domain.ErrSameCollection
	}
	if source, err = s.collections.GetByID(ctx, sourceID); err != nil {
		return nil, nil, err
	}
	if target, err = s.collections.GetByID(ctx, targetID); err != nil {
		return nil, nil, err
	}
	return source, target, nil
}

func (s *Service) launchCopy(ctx context.Context, targetID uuid.UUID, companyIDs []int64) (*CopyAccepted, error) {
	operationID := uuid.New()
	if err := s.store.Create(ctx, operationID, int64(len(companyIDs))); err != nil {
		return nil, err
	}

	s.copier.Launch(operationID, targetID, companyIDs)
	return &CopyAccepted{OperationID: operationID}, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
