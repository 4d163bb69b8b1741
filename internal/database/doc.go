// Package database implements the domain repositories on PostgreSQL using
// pgx connection pools. Schema migrations are embedded and applied through
// tern under an advisory lock, so concurrent replicas can start safely.
package database
