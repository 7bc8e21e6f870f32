package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a queued task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// TaskType identifies which pipeline stage a queued task belongs to
type TaskType string

// The closed set of task types the dispatcher can route
const (
	TaskTypeTrendDiscovery   TaskType = "trend_discovery"
	TaskTypeScriptGeneration TaskType = "script_generation"
	TaskTypeVideoCreation    TaskType = "video_creation"
	TaskTypePublishing       TaskType = "publishing"
)

// Queue priorities. Lower value means more urgent; user-initiated
// regeneration outranks everything the pipeline enqueues on its own.
const (
	PriorityRegeneration = 1
	PriorityDefault      = 2
	PriorityPublishing   = 3
)

// DefaultMaxAttempts bounds how many times a task is executed before it is
// left in the failed state for good.
const DefaultMaxAttempts = 3

// Common validation errors for Task
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrInvalidTaskType   = errors.New("invalid task type")
	ErrEmptyTaskData     = errors.New("task data cannot be empty")
	ErrInvalidTaskStatus = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("task priority must be positive")
)

// Task is a durable unit of work routed through the processing queue.
// Type, payload, and priority are fixed at creation; only the lifecycle
// fields (status, attempts, assigned agent, error message, timestamps)
// change afterwards.
type Task struct {
	ID            uuid.UUID       `json:"id"`
	TaskType      TaskType        `json:"task_type"`
	TaskData      json.RawMessage `json:"task_data"`
	Priority      int             `json:"priority"`
	Status        TaskStatus      `json:"status"`
	Attempts      int             `json:"attempts"`
	MaxAttempts   int             `json:"max_attempts"`
	AssignedAgent string          `json:"assigned_agent,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	StartedAt     *time.Time      `json:"started_at,omitempty"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// NewTask creates a new pending Task with the given type, payload, and
// priority. It generates the task ID, applies the default retry ceiling,
// and sets the creation timestamp.
// Returns an error if validation fails.
func NewTask(taskType TaskType, taskData json.RawMessage, priority int) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		TaskType:    taskType,
		TaskData:    taskData,
		Priority:    priority,
		Status:      TaskStatusPending,
		Attempts:    0,
		MaxAttempts: DefaultMaxAttempts,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if !isValidTaskType(t.TaskType) {
		return ErrInvalidTaskType
	}

	if len(t.TaskData) == 0 {
		return ErrEmptyTaskData
	}

	if t.Priority <= 0 {
		return ErrInvalidPriority
	}

	if !isValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}

	return nil
}

// RetriesExhausted reports whether another execution attempt would exceed
// the task's retry ceiling.
func (t *Task) RetriesExhausted() bool {
	return t.Attempts >= t.MaxAttempts
}

// UnmarshalData decodes the task payload into the provided structure.
func (t *Task) UnmarshalData(v interface{}) error {
	return json.Unmarshal(t.TaskData, v)
}

// isValidTaskType checks if the given type is part of the closed enumeration.
func isValidTaskType(taskType TaskType) bool {
	switch taskType {
	case TaskTypeTrendDiscovery, TaskTypeScriptGeneration,
		TaskTypeVideoCreation, TaskTypePublishing:
		return true
	default:
		return false
	}
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusProcessing, TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}
