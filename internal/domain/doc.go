// Package domain holds the pipeline's core entities: queued tasks, the
// trends discovery finds, the scripts content generation persists, and the
// agent metrics the orchestrator records. Entities validate themselves and
// know nothing about storage or transport.
package domain
