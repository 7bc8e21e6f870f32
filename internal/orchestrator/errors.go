package orchestrator

import (
	"errors"
	"fmt"

	"github.com/trendcast/trendcast-api/internal/domain"
)

// ErrUnknownTaskType is returned when a task's type has no registered
// handler. The task fails immediately but goes through the normal failure
// accounting, so a bad row cannot wedge the queue.
var ErrUnknownTaskType = errors.New("unknown task type")

// StageFailure wraps an error returned by a stage collaborator during
// dispatch. The queue processor persists its message on the failed task.
type StageFailure struct {
	TaskType domain.TaskType
	Err      error
}

func (e *StageFailure) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.TaskType, e.Err)
}

func (e *StageFailure) Unwrap() error {
	return e.Err
}
