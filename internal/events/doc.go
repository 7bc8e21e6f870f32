// Package events provides types and interfaces for an event-driven architecture.
//
// This package defines event types and handler interfaces that allow for loose coupling
// between components in the system. API handlers can emit events without knowing
// which handlers will process them, enabling better separation of concerns and
// reducing circular dependencies between the HTTP layer and the orchestrator.
//
// The primary components are:
// - TaskRequestEvent: Represents a request to enqueue a pipeline task
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
