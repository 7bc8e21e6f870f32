package stage

import "errors"

// Common errors returned by stage collaborators
var (
	// ErrNoTrends is returned when trend discovery produces no candidates.
	// It is non-fatal: the daily pipeline ends its run and waits for the
	// next schedule.
	ErrNoTrends = errors.New("no trends discovered")

	// ErrNoScripts is returned when script generation produces nothing for
	// a trend. The trend is skipped; other trends still run.
	ErrNoScripts = errors.New("no scripts generated for trend")

	// ErrStageUnavailable is returned when an external stage service cannot
	// be reached. Queue tasks hitting this are retried on a later sweep.
	ErrStageUnavailable = errors.New("stage service unavailable")
)
