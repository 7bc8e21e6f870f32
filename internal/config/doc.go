// Package config loads and validates the orchestrator's settings: server
// port and log level, the Postgres URL, and the base URLs of the five stage
// agent services. Values come from TRENDCAST_-prefixed environment
// variables, with an optional config.yaml underneath them.
package config
