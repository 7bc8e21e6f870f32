// Package orchestrator sequences the content pipeline: it dispatches queued
// tasks to the stage collaborators, sweeps the persistent queue, runs the
// daily trend-to-publish pipeline, and enqueues user-initiated regeneration.
// All durable state lives in the stores; the orchestrator owns ordering,
// claiming, retries, and scheduling.
package orchestrator
