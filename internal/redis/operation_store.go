package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ariqM1/fullstack-jam/internal/domain"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// operationTTL is how long finished (or abandoned) operation records stay
// pollable before Redis expires them.
const operationTTL = 24 * time.Hour

const (
	fieldStatus       = "status"
	fieldProgress     = "progress"
	fieldTotal        = "total"
	fieldErrorMessage = "error_message"
)

// OperationStore implements domain.OperationStore on Redis hashes.
type OperationStore struct {
	rdb *goredis.Client
}

func NewOperationStore(rdb *goredis.Client) *OperationStore {
	return &OperationStore{rdb: rdb}
}

var _ domain.OperationStore = (*OperationStore)(nil)

func operationKey(id uuid.UUID) string {
	return "copyop:" + id.String()
}

func (s *OperationStore) Create(ctx context.Context, id uuid.UUID, total int64) error {
	key := operationKey(id)

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		fieldStatus, string(domain.OperationPending),
		fieldProgress, 0,
		fieldTotal, total,
	)
	pipe.Expire(ctx, key, operationTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create operation record: %w", err)
	}
	return nil
}

func (s *OperationStore) SetInProgress(ctx context.Context, id uuid.UUID, total int64) error {
	err := s.rdb.HSet(ctx, operationKey(id),
		fieldStatus, string(domain.OperationInProgress),
		fieldTotal, total,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to mark operation in progress: %w", err)
	}
	return nil
}

func (s *OperationStore) SetProgress(ctx context.Context, id uuid.UUID, progress int64) error {
	if err := s.rdb.HSet(ctx, operationKey(id), fieldProgress, progress).Err(); err != nil {
		return fmt.Errorf("failed to update operation progress: %w", err)
	}
	return nil
}

func (s *OperationStore) SetCompleted(ctx context.Context, id uuid.UUID) error {
	err := s.rdb.HSet(ctx, operationKey(id), fieldStatus, string(domain.OperationCompleted)).Err()
	if err != nil {
		return fmt.Errorf("failed to mark operation completed: %w", err)
	}
	return nil
}

func (s *OperationStore) SetFailed(ctx context.Context, id uuid.UUID, message string) error {
	err := s.rdb.HSet(ctx, operationKey(id),
		fieldStatus, string(domain.OperationFailed),
		fieldErrorMessage, message,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to mark operation failed: %w", err)
	}
	return nil
}

func (s *OperationStore) Get(ctx context.Context, id uuid.UUID) (*domain.Operation, error) {
	fields, err := s.rdb.HGetAll(ctx, operationKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read operation record: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrOperationNotFound
	}

	op := &domain.Operation{
		ID:           id,
		Status:       domain.OperationStatus(fields[fieldStatus]),
		ErrorMessage: fields[fieldErrorMessage],
	}

	if op.Progress, err = parseCounter(fields[fieldProgress]); err != nil {
		return nil, fmt.Errorf("operation %s has corrupt progress field: %w", id, err)
	}
	if op.Total, err = parseCounter(fields[fieldTotal]); err != nil {
		return nil, fmt.Errorf("operation %s has corrupt total field: %w", id, err)
	}

	return op, nil
}

func parseCounter(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
