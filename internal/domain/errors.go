package domain

import "errors"

var (
	// ErrCollectionNotFound is returned when a collection ID does not exist.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCompanyNotFound is returned when a company ID does not exist.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrOperationNotFound is returned for unknown or expired operation IDs.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrCompaniesNotInSource is returned when a copy request selects
	// company IDs that are not members of the source collection.
	ErrCompaniesNotInSource = errors.New("some companies not found in source collection")

	// ErrSameCollection is returned when source and target of a copy are
	// the same collection.
	ErrSameCollection = errors.New("source and target collection must differ")

	// ErrNoCompaniesSelected is returned when a selected-subset copy names
	// no companies at all.
	ErrNoCompaniesSelected = errors.New("no companies selected")
)
