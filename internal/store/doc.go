// Package store defines the persistence interfaces for tasks, trends,
// scripts, and agent metrics, plus the DBTX abstraction that lets store
// implementations run against either a connection pool or a transaction.
// The orchestrator and API depend only on these interfaces; the Postgres
// implementations live in platform/postgres.
package store
