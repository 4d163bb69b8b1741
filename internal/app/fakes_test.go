package app

import (
	"context"
	"slices"
	"sync"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	"github.com/google/uuid"
)

// fakeOperationStore keeps operations in memory and records every progress
// write so tests can assert the write cadence.
type fakeOperationStore struct {
	mu             sync.Mutex
	operations     map[uuid.UUID]*domain.Operation
	progressWrites []int64
}

func newFakeOperationStore() *fakeOperationStore {
	return &fakeOperationStore{operations: make(map[uuid.UUID]*domain.Operation)}
}

func (s *fakeOperationStore) Create(_ context.Context, id uuid.UUID, total int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operations[id] = &domain.Operation{ID: id, Status: domain.OperationPending, Total: total}
	return nil
}

func (s *fakeOperationStore) SetInProgress(_ context.Context, id uuid.UUID, total int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op := s.get(id)
	op.Status = domain.OperationInProgress
	op.Total = total
	return nil
}

func (s *fakeOperationStore) SetProgress(_ context.Context, id uuid.UUID, progress int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op := s.get(id)
	op.Progress = progress
	s.progressWrites = append(s.progressWrites, progress)
	return nil
}

func (s *fakeOperationStore) SetCompleted(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(id).Status = domain.OperationCompleted
	return nil
}

func (s *fakeOperationStore) SetFailed(_ context.Context, id uuid.UUID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op := s.get(id)
	op.Status = domain.OperationFailed
	op.ErrorMessage = message
	return nil
}

func (s *fakeOperationStore) Get(_ context.Context, id uuid.UUID) (*domain.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.operations[id]
	if !ok {
		return nil, domain.ErrOperationNotFound
	}
	copied := *op
	return &copied, nil
}

// get is a lock-held helper that upserts the record.
func (s *fakeOperationStore) get(id uuid.UUID) *domain.Operation {
	op, ok := s.operations[id]
	if !ok {
		op = &domain.Operation{ID: id}
		s.operations[id] = op
	}
	return op
}

func (s *fakeOperationStore) snapshotProgressWrites() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.progressWrites)
}

// fakeAssociationRepo tracks membership per collection and records insert
// order. insertErrs injects failures for specific company IDs.
type fakeAssociationRepo struct {
	mu         sync.Mutex
	members    map[uuid.UUID]map[int64]struct{}
	insertErrs map[int64]error
	existErr   error
	inserted   []int64
}

func newFakeAssociationRepo() *fakeAssociationRepo {
	return &fakeAssociationRepo{
		members:    make(map[uuid.UUID]map[int64]struct{}),
		insertErrs: make(map[int64]error),
	}
}

func (r *fakeAssociationRepo) add(collectionID uuid.UUID, ids ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.members[collectionID]
	if !ok {
		set = make(map[int64]struct{})
		r.members[collectionID] = set
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
}

func (r *fakeAssociationRepo) Insert(_ context.Context, collectionID uuid.UUID, companyID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.insertErrs[companyID]; err != nil {
		return false, err
	}
	set, ok := r.members[collectionID]
	if !ok {
		set = make(map[int64]struct{})
		r.members[collectionID] = set
	}
	if _, exists := set[companyID]; exists {
		return false, nil
	}
	set[companyID] = struct{}{}
	r.inserted = append(r.inserted, companyID)
	return true, nil
}

func (r *fakeAssociationRepo) Delete(_ context.Context, collectionID uuid.UUID, companyID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members[collectionID], companyID)
	return nil
}

func (r *fakeAssociationRepo) ExistingIn(_ context.Context, collectionID uuid.UUID, ids []int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existErr != nil {
		return nil, r.existErr
	}
	var existing []int64
	for _, id := range ids {
		if _, ok := r.members[collectionID][id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

func (r *fakeAssociationRepo) insertedIDs() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.inserted)
}

func (r *fakeAssociationRepo) has(collectionID uuid.UUID, companyID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[collectionID][companyID]
	return ok
}

// fakeCollectionRepo serves collections and their membership from maps. The
// membership backing is shared with a fakeAssociationRepo so copy tests see
// a consistent view.
type fakeCollectionRepo struct {
	collections map[uuid.UUID]domain.Collection
	members     map[uuid.UUID][]int64
	pages       map[uuid.UUID][]domain.Company
	countCalls  int
}

func newFakeCollectionRepo() *fakeCollectionRepo {
	return &fakeCollectionRepo{
		collections: make(map[uuid.UUID]domain.Collection),
		members:     make(map[uuid.UUID][]int64),
		pages:       make(map[uuid.UUID][]domain.Company),
	}
}

func (r *fakeCollectionRepo) addCollection(name string, memberIDs ...int64) uuid.UUID {
	id := uuid.New()
	r.collections[id] = domain.Collection{ID: id, CollectionName: name}
	r.members[id] = memberIDs
	return id
}

func (r *fakeCollectionRepo) List(context.Context) ([]domain.Collection, error) {
	out := make([]domain.Collection, 0, len(r.collections))
	for _, c := range r.collections {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCollectionRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Collection, error) {
	c, ok := r.collections[id]
	if !ok {
		return nil, domain.ErrCollectionNotFound
	}
	return &c, nil
}

func (r *fakeCollectionRepo) GetByName(_ context.Context, name string) (*domain.Collection, error) {
	for _, c := range r.collections {
		if c.CollectionName == name {
			copied := c
			return &copied, nil
		}
	}
	return nil, domain.ErrCollectionNotFound
}

func (r *fakeCollectionRepo) CountCompanies(_ context.Context, id uuid.UUID) (int64, error) {
	r.countCalls++
	return int64(len(r.members[id])), nil
}

func (r *fakeCollectionRepo) GetCompanyPage(_ context.Context, id, _ uuid.UUID, offset, limit int) ([]domain.Company, error) {
	page := r.pages[id]
	if offset >= len(page) {
		return nil, nil
	}
	end := min(offset+limit, len(page))
	return page[offset:end], nil
}

func (r *fakeCollectionRepo) MemberIDs(_ context.Context, id uuid.UUID) ([]int64, error) {
	return slices.Clone(r.members[id]), nil
}

func (r *fakeCollectionRepo) FilterMembers(_ context.Context, id uuid.UUID, ids []int64) ([]int64, error) {
	var out []int64
	for _, candidate := range ids {
		if slices.Contains(r.members[id], candidate) {
			out = append(out, candidate)
		}
	}
	return out, nil
}

// fakeCompanyRepo serves the global companies table from a map.
type fakeCompanyRepo struct {
	companies map[int64]domain.Company
}

func newFakeCompanyRepo(ids ...int64) *fakeCompanyRepo {
	r := &fakeCompanyRepo{companies: make(map[int64]domain.Company)}
	for _, id := range ids {
		r.companies[id] = domain.Company{ID: id}
	}
	return r
}

func (r *fakeCompanyRepo) GetPage(_ context.Context, _ uuid.UUID, offset, limit int) ([]domain.Company, error) {
	ids := make([]int64, 0, len(r.companies))
	for id := range r.companies {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	if offset >= len(ids) {
		return nil, nil
	}
	end := min(offset+limit, len(ids))
	out := make([]domain.Company, 0, end-offset)
	for _, id := range ids[offset:end] {
		out = append(out, r.companies[id])
	}
	return out, nil
}

func (r *fakeCompanyRepo) Count(context.Context) (int64, error) {
	return int64(len(r.companies)), nil
}

func (r *fakeCompanyRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.companies[id]
	return ok, nil
}
