// Package domain holds the core types of the application: companies,
// collections, the association between them, and the copy operations that
// move companies between collections. It defines the repository and store
// interfaces implemented by the postgres and redis adapters, and the
// sentinel errors shared across layers. It has no dependencies on any
// infrastructure package.
package domain
