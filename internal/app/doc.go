// Package app is the application layer. It orchestrates the repositories,
// the operation store, and the background copier into the use cases exposed
// over HTTP: browsing collections, liking companies, and copying companies
// between collections with progress tracking.
package app
