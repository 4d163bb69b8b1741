package domain

import (
	"time"

	"github.com/google/uuid"
)

// LikedCollectionName is the reserved collection that backs the "liked"
// flag. Membership in this collection is what marks a company as liked.
// It is created by the initial migration and must not be deleted.
const LikedCollectionName = "Liked Companies"

// Company is a single row in the companies table.
type Company struct {
	ID          int64     `json:"id"`
	CompanyName string    `json:"company_name"`
	Liked       bool      `json:"liked"`
	CreatedAt   time.Time `json:"-"`
}

// Collection identifies a named group of companies.
type Collection struct {
	ID             uuid.UUID `json:"id"`
	CollectionName string    `json:"collection_name"`
	CreatedAt      time.Time `json:"-"`
}

// CollectionPage is one page of a collection's companies plus the total
// membership count, for server-side pagination.
type CollectionPage struct {
	ID             uuid.UUID `json:"id"`
	CollectionName string    `json:"collection_name"`
	Companies      []Company `json:"companies"`
	Total          int64     `json:"total"`
}

// CompanyPage is one page of the global companies table.
type CompanyPage struct {
	Companies []Company `json:"companies"`
	Total     int64     `json:"total"`
}

// OperationStatus is the lifecycle state of a background copy operation.
type OperationStatus string

const (
	OperationPending    OperationStatus = "pending"
	OperationInProgress OperationStatus = "in_progress"
	OperationCompleted  OperationStatus = "completed"
	OperationFailed     OperationStatus = "failed"
)

// Operation is the progress record of a background copy. Progress and Total
// count association rows; Total shrinks once duplicates in the target have
// been filtered out.
type Operation struct {
	ID           uuid.UUID       `json:"operation_id"`
	Status       OperationStatus `json:"status"`
	Progress     int64           `json:"progress"`
	Total        int64           `json:"total"`
	ErrorMessage string          `json:"error_message,omitempty"`
}
