// Package stage defines the interfaces the orchestrator uses to talk to the
// pipeline stage collaborators: trend discovery, script generation, avatar
// video synthesis, post-production, and publishing. It abstracts the details
// of the external AI and media services behind each stage, allowing the
// orchestrator to sequence the pipeline without coupling to specific vendors.
package stage
