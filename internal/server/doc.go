// Package server wires the application service into an echo HTTP server:
// REST handlers for collections, companies, and copy operations, the table
// UI page, and the operational endpoints (health, metrics, version).
package server
