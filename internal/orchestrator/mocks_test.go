package orchestrator

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/stage"
	"github.com/trendcast/trendcast-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockTaskStore is an in-memory store.TaskStore that mimics the ordering
// and claim semantics of the Postgres implementation.
type mockTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task

	// error overrides
	queryErr    error
	claimErr    error
	completeErr error
	failErr     error
	insertErr   error

	// lostClaims simulates another processor winning the claim race
	lostClaims map[uuid.UUID]bool
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{
		tasks:      make(map[uuid.UUID]*domain.Task),
		lostClaims: make(map[uuid.UUID]bool),
	}
}

func (m *mockTaskStore) Insert(ctx context.Context, task *domain.Task) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.tasks[task.ID]; exists {
		return store.ErrDuplicate
	}
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *mockTaskStore) QueryPending(ctx context.Context, limit int) ([]*domain.Task, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var pending []*domain.Task
	for _, task := range m.tasks {
		if task.Status == domain.TaskStatusPending {
			copied := *task
			pending = append(pending, &copied)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].Priority != pending[j].Priority {
			return pending[i].Priority < pending[j].Priority
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (m *mockTaskStore) Claim(ctx context.Context, id uuid.UUID, agent string, startedAt time.Time) (bool, error) {
	if m.claimErr != nil {
		return false, m.claimErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return false, store.ErrTaskNotFound
	}
	if m.lostClaims[id] || task.Status != domain.TaskStatusPending {
		return false, nil
	}
	task.Status = domain.TaskStatusProcessing
	task.AssignedAgent = agent
	started := startedAt
	task.StartedAt = &started
	return true, nil
}

func (m *mockTaskStore) MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time) error {
	if m.completeErr != nil {
		return m.completeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.Status = domain.TaskStatusCompleted
	completed := completedAt
	task.CompletedAt = &completed
	task.ErrorMessage = ""
	return nil
}

func (m *mockTaskStore) MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string, status domain.TaskStatus) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.Status = status
	task.ErrorMessage = errorMessage
	task.Attempts++
	return nil
}

func (m *mockTaskStore) CountByStatusSince(ctx context.Context, since time.Time) ([]store.TaskStatusCount, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	type key struct {
		status   domain.TaskStatus
		taskType domain.TaskType
	}
	counts := make(map[key]int)
	for _, task := range m.tasks {
		if !task.CreatedAt.Before(since) {
			counts[key{task.Status, task.TaskType}]++
		}
	}

	var result []store.TaskStatusCount
	for k, n := range counts {
		result = append(result, store.TaskStatusCount{Status: k.status, TaskType: k.taskType, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Status != result[j].Status {
			return result[i].Status < result[j].Status
		}
		return result[i].TaskType < result[j].TaskType
	})
	return result, nil
}

func (m *mockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// byStatus returns the stored tasks currently in the given status.
func (m *mockTaskStore) byStatus(status domain.TaskStatus) []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*domain.Task
	for _, task := range m.tasks {
		if task.Status == status {
			copied := *task
			result = append(result, &copied)
		}
	}
	return result
}

// mockTrendStore records inserts and status updates.
type mockTrendStore struct {
	mu        sync.Mutex
	inserted  []*domain.Trend
	statuses  map[uuid.UUID]domain.TrendStatus
	insertErr error
}

func newMockTrendStore() *mockTrendStore {
	return &mockTrendStore{statuses: make(map[uuid.UUID]domain.TrendStatus)}
}

func (m *mockTrendStore) Insert(ctx context.Context, trend *domain.Trend) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserted = append(m.inserted, trend)
	return nil
}

func (m *mockTrendStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TrendStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses[id] = status
	return nil
}

// mockScriptStore serves script records keyed by topic and platform.
type mockScriptStore struct {
	mu      sync.Mutex
	records map[string]*domain.Script
	getErr  error
}

func newMockScriptStore() *mockScriptStore {
	return &mockScriptStore{records: make(map[string]*domain.Script)}
}

func scriptKey(topicID uuid.UUID, platform domain.Platform) string {
	return topicID.String() + "/" + string(platform)
}

func (m *mockScriptStore) add(script *domain.Script) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[scriptKey(script.TopicID, script.Platform)] = script
}

func (m *mockScriptStore) GetByTopicAndPlatform(ctx context.Context, topicID uuid.UUID, platform domain.Platform) (*domain.Script, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	script, ok := m.records[scriptKey(topicID, platform)]
	if !ok {
		return nil, store.ErrScriptNotFound
	}
	return script, nil
}

// mockMetricsStore collects recorded samples.
type mockMetricsStore struct {
	mu        sync.Mutex
	recorded  []*domain.AgentMetric
	recordErr error
}

func newMockMetricsStore() *mockMetricsStore {
	return &mockMetricsStore{}
}

func (m *mockMetricsStore) Record(ctx context.Context, metric *domain.AgentMetric) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, metric)
	return nil
}

func (m *mockMetricsStore) RecentMetrics(ctx context.Context, since time.Time) ([]*domain.AgentMetric, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*domain.AgentMetric
	for _, metric := range m.recorded {
		if !metric.RecordedAt.Before(since) {
			result = append(result, metric)
		}
	}
	return result, nil
}

func (m *mockMetricsStore) WithTx(tx *sql.Tx) store.MetricsStore {
	return m
}

func (m *mockMetricsStore) metricTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var types []string
	for _, metric := range m.recorded {
		types = append(types, metric.MetricType)
	}
	return types
}

// Stage collaborator mocks, driven by function fields.

type mockDiscovery struct {
	fn    func(ctx context.Context) ([]*domain.Trend, error)
	calls int
}

func (m *mockDiscovery) DiscoverTrends(ctx context.Context) ([]*domain.Trend, error) {
	m.calls++
	if m.fn == nil {
		return nil, stage.ErrNoTrends
	}
	return m.fn(ctx)
}

type mockContent struct {
	fn       func(ctx context.Context, req stage.ScriptRequest) ([]*domain.Script, error)
	requests []stage.ScriptRequest
}

func (m *mockContent) GenerateScripts(ctx context.Context, req stage.ScriptRequest) ([]*domain.Script, error) {
	m.requests = append(m.requests, req)
	if m.fn == nil {
		return nil, stage.ErrNoScripts
	}
	return m.fn(ctx, req)
}

type mockAvatar struct {
	fn       func(ctx context.Context, req stage.VideoRequest) (*stage.VideoResult, error)
	requests []stage.VideoRequest
}

func (m *mockAvatar) SynthesizeVideo(ctx context.Context, req stage.VideoRequest) (*stage.VideoResult, error) {
	m.requests = append(m.requests, req)
	if m.fn == nil {
		return &stage.VideoResult{VideoURL: "https://cdn.example.com/raw.mp4"}, nil
	}
	return m.fn(ctx, req)
}

type mockProduction struct {
	fn       func(ctx context.Context, req stage.EditRequest) (*stage.EditResult, error)
	requests []stage.EditRequest
}

func (m *mockProduction) ProcessVideo(ctx context.Context, req stage.EditRequest) (*stage.EditResult, error) {
	m.requests = append(m.requests, req)
	if m.fn == nil {
		return &stage.EditResult{
			EditedVideoURL:    "https://cdn.example.com/final.mp4",
			ThumbnailVariants: []string{"https://cdn.example.com/thumb.jpg"},
		}, nil
	}
	return m.fn(ctx, req)
}

type mockPublisher struct {
	slots        []stage.TimeSlot
	slotsErr     error
	scheduleErr  error
	publishErr   error
	scheduled    []stage.ScheduleRequest
	published    []json.RawMessage
	publishCalls int
}

func (m *mockPublisher) OptimalPostingTimes(ctx context.Context, platform domain.Platform) ([]stage.TimeSlot, error) {
	if m.slotsErr != nil {
		return nil, m.slotsErr
	}
	if m.slots == nil {
		return []stage.TimeSlot{{Hour: 9}, {Hour: 14}, {Hour: 20}}, nil
	}
	return m.slots, nil
}

func (m *mockPublisher) ScheduleContent(ctx context.Context, req stage.ScheduleRequest) error {
	if m.scheduleErr != nil {
		return m.scheduleErr
	}
	m.scheduled = append(m.scheduled, req)
	return nil
}

func (m *mockPublisher) Publish(ctx context.Context, payload json.RawMessage) error {
	m.publishCalls++
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, payload)
	return nil
}
