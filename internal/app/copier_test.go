package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForStatus(t *testing.T, store *fakeOperationStore, id uuid.UUID, want domain.OperationStatus) *domain.Operation {
	t.Helper()

	var op *domain.Operation
	require.Eventually(t, func() bool {
		got, err := store.Get(context.Background(), id)
		if err != nil {
			return false
		}
		op = got
		return got.Status == want
	}, 2*time.Second, 5*time.Millisecond, "operation never reached status %q", want)
	return op
}

func TestCopier_InsertsAllRows(t *testing.T) {
	assocs := newFakeAssociationRepo()
	store := newFakeOperationStore()
	copier := NewCopier(assocs, store, clockwork.NewRealClock(), 0, 1)
	defer copier.Stop()

	operationID := uuid.New()
	targetID := uuid.New()
	require.NoError(t, store.Create(context.Background(), operationID, 3))

	copier.Launch(operationID, targetID, []int64{1, 2, 3})

	op := waitForStatus(t, store, operationID, domain.OperationCompleted)
	assert.Equal(t, int64(3), op.Total)
	assert.Equal(t, int64(3), op.Progress)
	assert.Equal(t, []int64{1, 2, 3}, assocs.insertedIDs())
}

func TestCopier_SkipsCompaniesAlreadyInTarget(t *testing.T) {
	assocs := newFakeAssociationRepo()
	store := newFakeOperationStore()
	copier := NewCopier(assocs, store, clockwork.NewRealClock(), 0, 1)
	defer copier.Stop()

	operationID := uuid.New()
	targetID := uuid.New()
	assocs.add(targetID, 2)
	require.NoError(t, store.Create(context.Background(), operationID, 3))

	copier.Launch(operationID, targetID, []int64{1, 2, 3})

	op := waitForStatus(t, store, operationID, domain.OperationCompleted)
	// Total is rewritten once duplicates are filtered out.
	assert.Equal(t, int64(2), op.Total)
	assert.Equal(t, int64(2), op.Progress)
	assert.Equal(t, []int64{1, 3}, assocs.insertedIDs())
}

func TestCopier_AllDuplicatesCompletesImmediately(t *testing.T) {
	assocs := newFakeAssociationRepo()
	store := newFakeOperationStore()
	copier := NewCopier(assocs, store, clockwork.NewRealClock(), 0, 1)
	defer copier.Stop()

	operationID := uuid.New()
	targetID := uuid.New()
	assocs.add(targetID, 1, 2)
	require.NoError(t, store.Create(context.Background(), operationID, 2))

	copier.Launch(operationID, targetID, []int64{1, 2})

	op := waitForStatus(t, store, operationID, domain.OperationCompleted)
	assert.Equal(t, int64(0), op.Total)
	assert.Equal(t, int64(0), op.Progress)
	assert.Empty(t, assocs.insertedIDs())
}

func TestCopier_WritesProgressEveryN(t *testing.T) {
	assocs := newFakeAssociationRepo()
	store := newFakeOperationStore()
	copier := NewCopier(assocs, store, clockwork.NewRealClock(), 0, 2)
	defer copier.Stop()

	operationID := uuid.New()
	require.NoError(t, store.Create(context.Background(), operationID, 5))

	copier.Launch(operationID, uuid.New(), []int64{1, 2, 3, 4, 5})

	waitForStatus(t, store, operationID, domain.OperationCompleted)
	// Writes at every second row, plus the final write before completion.
	assert.Equal(t, []int64{2, 4, 5}, store.snapshotProgressWrites())
}

func TestCopier_InsertFailureMarksOperationFailed(t *testing.T) {
	assocs := newFakeAssociationRepo()
	assocs.insertErrs[3] = errors.New("connection reset")
	store := newFakeOperationStore()
	copier := NewCopier(assocs, store, clockwork.NewRealClock(), 0, 1)
	defer copier.Stop()

	operationID := uuid.New()
	require.NoError(t, store.Create(context.Background(), operationID, 3))

	copier.Launch(operationID, uuid.New(), []int64{1, 2, 3})

	op := waitForStatus(t, store, operationID, domain.OperationFailed)
	assert.Contains(t, op.ErrorMessage, "failed to insert company 3")
	assert.Contains(t, op.ErrorMessage, "connection reset")
	assert.Equal(t, []int64{1, 2}, assocs.insertedIDs())
}

func TestCopier_MembershipCheckFailureMarksOperationFailed(t *testing.T) {
	assocs := newFakeAssociationRepo()
	assocs.existErr = errors.New("connection reset")
	store := newFakeOperationStore()
	copier := NewCopier(assocs, store, clockwork.NewRealClock(), 0, 1)
	defer copier.Stop()

	operationID := uuid.New()
	require.NoError(t, store.Create(context.Background(), operationID, 2))

	copier.Launch(operationID, uuid.New(), []int64{1, 2})

	op := waitForStatus(t, store, operationID, domain.OperationFailed)
	assert.Contains(t, op.ErrorMessage, "failed to check target collection")
	assert.Empty(t, assocs.insertedIDs())
}

func TestCopier_StopCancelsRunningJob(t *testing.T) {
	assocs := newFakeAssociationRepo()
	store := newFakeOperationStore()
	clock := clockwork.NewFakeClock()
	copier := NewCopier(assocs, store, clock, 100*time.Millisecond, 1)

	operationID := uuid.New()
	require.NoError(t, store.Create(context.Background(), operationID, 3))

	copier.Launch(operationID, uuid.New(), []int64{1, 2, 3})

	// Let the job insert the first row and park on the inter-row delay.
	require.Eventually(t, func() bool {
		return len(assocs.insertedIDs()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	copier.Stop()

	op, err := store.Get(context.Background(), operationID)
	require.NoError(t, err)
	assert.Equal(t, domain.OperationFailed, op.Status)
	assert.Equal(t, "copy cancelled: server shutting down", op.ErrorMessage)
	assert.Equal(t, int64(1), op.Progress)
	assert.Equal(t, []int64{1}, assocs.insertedIDs())
}

func TestCopier_RowDelayPacesInserts(t *testing.T) {
	assocs := newFakeAssociationRepo()
	store := newFakeOperationStore()
	clock := clockwork.NewFakeClock()
	copier := NewCopier(assocs, store, clock, 100*time.Millisecond, 1)
	defer copier.Stop()

	operationID := uuid.New()
	require.NoError(t, store.Create(context.Background(), operationID, 2))

	copier.Launch(operationID, uuid.New(), []int64{1, 2})

	// The second insert must wait for the delay timer.
	require.Eventually(t, func() bool {
		return len(assocs.insertedIDs()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	clock.BlockUntil(1)
	assert.Len(t, assocs.insertedIDs(), 1)

	clock.Advance(100 * time.Millisecond)

	op := waitForStatus(t, store, operationID, domain.OperationCompleted)
	assert.Equal(t, int64(2), op.Progress)
}
