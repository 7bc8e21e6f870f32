package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/orchestrator"
	"github.com/trendcast/trendcast-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockRegenerator captures regeneration calls.
type mockRegenerator struct {
	taskID uuid.UUID
	err    error

	gotTopicID  uuid.UUID
	gotTopic    string
	gotCategory string
	gotNuance   map[string]any
}

func (m *mockRegenerator) RegenerateWithNuance(ctx context.Context, topicID uuid.UUID, topic, category string, nuance map[string]any) (uuid.UUID, error) {
	m.gotTopicID = topicID
	m.gotTopic = topic
	m.gotCategory = category
	m.gotNuance = nuance
	if m.err != nil {
		return uuid.Nil, m.err
	}
	return m.taskID, nil
}

// mockTaskGetter implements just enough of store.TaskStore for the task
// handler.
type mockTaskGetter struct {
	store.TaskStore
	task *domain.Task
	err  error
}

func (m *mockTaskGetter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.task, nil
}

type mockRunner struct {
	ran chan struct{}
	err error
}

func (m *mockRunner) RunDailyPipeline(ctx context.Context) error {
	if m.ran != nil {
		close(m.ran)
	}
	return m.err
}

type mockStatusProvider struct {
	status *orchestrator.SystemStatus
	err    error
}

func (m *mockStatusProvider) SystemStatus(ctx context.Context) (*orchestrator.SystemStatus, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.status, nil
}

// newRegenerateRequest builds a POST with the topic ID routed through chi.
func newRegenerateRequest(t *testing.T, topicID string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))

	r := httptest.NewRequest(http.MethodPost, "/api/topics/"+topicID+"/regenerate", &buf)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", topicID)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	return httptest.NewRecorder(), r
}

func TestRegenerateSuccess(t *testing.T) {
	taskID := uuid.New()
	regen := &mockRegenerator{taskID: taskID}
	h := NewRegenerationHandler(regen, testLogger())

	topicID := uuid.New()
	w, r := newRegenerateRequest(t, topicID.String(), RegenerateRequest{
		Topic:    "ai avatars",
		Category: "technology",
		NuanceParams: map[string]any{
			"microExpressionIntensity": 0.95,
		},
	})

	h.Regenerate(w, r)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var resp RegenerateResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, taskID, resp.TaskID)
	assert.Equal(t, "queued", resp.Status)

	assert.Equal(t, topicID, regen.gotTopicID)
	assert.Equal(t, "ai avatars", regen.gotTopic)
	assert.Equal(t, "technology", regen.gotCategory)
	assert.Equal(t, 0.95, regen.gotNuance["microExpressionIntensity"])
}

func TestRegenerateInvalidTopicID(t *testing.T) {
	h := NewRegenerationHandler(&mockRegenerator{}, testLogger())

	w, r := newRegenerateRequest(t, "not-a-uuid", RegenerateRequest{Topic: "t", Category: "c"})
	h.Regenerate(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegenerateInvalidBody(t *testing.T) {
	h := NewRegenerationHandler(&mockRegenerator{}, testLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/topics/x/regenerate", bytes.NewBufferString("{not json"))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", uuid.New().String())
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	w := httptest.NewRecorder()

	h.Regenerate(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegenerateMissingTopic(t *testing.T) {
	h := NewRegenerationHandler(&mockRegenerator{}, testLogger())

	w, r := newRegenerateRequest(t, uuid.New().String(), RegenerateRequest{Category: "technology"})
	h.Regenerate(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegenerateServiceError(t *testing.T) {
	regen := &mockRegenerator{err: errors.New("emit failed")}
	h := NewRegenerationHandler(regen, testLogger())

	w, r := newRegenerateRequest(t, uuid.New().String(), RegenerateRequest{Topic: "t", Category: "c"})
	h.Regenerate(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func newTaskRequest(taskID string) (*httptest.ResponseRecorder, *http.Request) {
	r := httptest.NewRequest(http.MethodGet, "/api/tasks/"+taskID, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", taskID)
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	return httptest.NewRecorder(), r
}

func TestGetTaskSuccess(t *testing.T) {
	started := time.Date(2026, 3, 10, 7, 5, 0, 0, time.UTC)
	task := &domain.Task{
		ID:          uuid.New(),
		TaskType:    domain.TaskTypeScriptGeneration,
		TaskData:    []byte(`{"topic":"x"}`),
		Priority:    domain.PriorityRegeneration,
		Status:      domain.TaskStatusProcessing,
		Attempts:    1,
		MaxAttempts: domain.DefaultMaxAttempts,
		CreatedAt:   started.Add(-time.Minute),
		StartedAt:   &started,
	}
	h := NewTaskHandler(&mockTaskGetter{task: task}, testLogger())

	w, r := newTaskRequest(task.ID.String())
	h.GetTask(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp TaskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, task.ID, resp.ID)
	assert.Equal(t, "script_generation", resp.TaskType)
	assert.Equal(t, "processing", resp.Status)
	assert.Equal(t, 1, resp.Attempts)
	require.NotNil(t, resp.StartedAt)
	assert.True(t, resp.StartedAt.Equal(started))

	// The raw payload is not exposed.
	assert.NotContains(t, w.Body.String(), "task_data")
}

func TestGetTaskNotFound(t *testing.T) {
	h := NewTaskHandler(&mockTaskGetter{err: store.ErrTaskNotFound}, testLogger())

	w, r := newTaskRequest(uuid.New().String())
	h.GetTask(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTaskInvalidID(t *testing.T) {
	h := NewTaskHandler(&mockTaskGetter{}, testLogger())

	w, r := newTaskRequest("42")
	h.GetTask(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunPipelineAccepted(t *testing.T) {
	runner := &mockRunner{ran: make(chan struct{})}
	h := NewPipelineHandler(runner, &mockStatusProvider{}, testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/pipeline/run", nil)
	h.RunPipeline(w, r)

	assert.Equal(t, http.StatusAccepted, w.Code)

	select {
	case <-runner.ran:
	case <-time.After(time.Second):
		t.Fatal("pipeline run was never started")
	}
}

func TestGetStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	provider := &mockStatusProvider{status: &orchestrator.SystemStatus{
		QueueStatus: []store.TaskStatusCount{
			{Status: domain.TaskStatusPending, TaskType: domain.TaskTypePublishing, Count: 2},
		},
		Metrics:     []*domain.AgentMetric{},
		WindowStart: now.Add(-24 * time.Hour),
		LastUpdated: now,
	}}
	h := NewPipelineHandler(&mockRunner{}, provider, testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	h.GetStatus(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"queue_status"`)
	assert.Contains(t, w.Body.String(), "publishing")
}

func TestGetStatusError(t *testing.T) {
	provider := &mockStatusProvider{err: errors.New("connection refused")}
	h := NewPipelineHandler(&mockRunner{}, provider, testLogger())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	h.GetStatus(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
