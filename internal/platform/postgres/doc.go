// Package postgres implements the store interfaces over PostgreSQL: the
// task queue with its conditional claim, the trend and script records the
// pipeline chains through, and the agent metrics behind the status
// endpoint. Driver errors are mapped to the store package's sentinels so
// callers never see pgx types. The goose migration files are embedded here.
package postgres
