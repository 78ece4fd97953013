package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/climawatch/news-service/app/cfg"
	"github.com/climawatch/news-service/app/database"
)

// MockMetricsRepo implements a simple mock for testing
type MockMetricsRepo struct {
	mu          sync.Mutex
	prunedDays  []int
	deleted     int64
	shouldError bool
}

var _ database.SourceMetricsRepository = (*MockMetricsRepo)(nil)

func (m *MockMetricsRepo) RecordFetch(source, sourceType string, ok bool, itemCount int, duration time.Duration, fetchErr string) error {
	return nil
}

func (m *MockMetricsRepo) GetSourceStats(days int) ([]database.SourceStats, error) {
	return nil, nil
}

func (m *MockMetricsRepo) PruneOlderThan(days int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldError {
		return 0, errors.New("mock prune error")
	}
	m.prunedDays = append(m.prunedDays, days)
	return m.deleted, nil
}

func (m *MockMetricsRepo) calls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.prunedDays...)
}

// recordingTask implements TaskInterface and signals when executed.
type recordingTask struct {
	Task
	executed chan struct{}
}

func newRecordingTask() *recordingTask {
	return &recordingTask{
		Task:     NewTask(TaskTypeRefreshCaches),
		executed: make(chan struct{}),
	}
}

func (t *recordingTask) Execute(ctx context.Context) error {
	close(t.executed)
	return nil
}

func setTestConfig() {
	cfg.SetForTesting(&cfg.Cfg{
		MetricsRetention:  30,
		SchedulerInterval: 3600,
		WorkerCount:       2,
	})
}

func TestNewScheduler(t *testing.T) {
	setTestConfig()

	scheduler := NewScheduler(nil, &MockMetricsRepo{}).(*Scheduler)

	if scheduler == nil {
		t.Fatal("Expected scheduler to be created")
	}
	if scheduler.workerCount != 2 {
		t.Errorf("Expected worker count 2, got %d", scheduler.workerCount)
	}
	if scheduler.retention != 30 {
		t.Errorf("Expected retention 30, got %d", scheduler.retention)
	}
	if scheduler.interval != time.Hour {
		t.Errorf("Expected interval 1h, got %s", scheduler.interval)
	}
}

func TestSchedulerExecutesEnqueuedTask(t *testing.T) {
	setTestConfig()

	scheduler := NewScheduler(nil, &MockMetricsRepo{}).(*Scheduler)
	scheduler.prewarm = false
	scheduler.Start()
	defer scheduler.Stop()

	task := newRecordingTask()
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatalf("Failed to enqueue task: %v", err)
	}

	select {
	case <-task.executed:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected task to be executed by a worker")
	}
}

func TestEnqueueTask_QueueFull(t *testing.T) {
	setTestConfig()

	// No workers running, so the queue fills up.
	scheduler := NewScheduler(nil, &MockMetricsRepo{}).(*Scheduler)

	var err error
	for i := 0; i <= cap(scheduler.taskQueue); i++ {
		err = scheduler.EnqueueTask(newRecordingTask())
		if err != nil {
			break
		}
	}

	if err == nil {
		t.Error("Expected error when queue is full")
	}
}

func TestTaskRetryBookkeeping(t *testing.T) {
	task := NewTask(TaskTypePruneMetrics)

	if task.GetType() != TaskTypePruneMetrics {
		t.Errorf("Expected task type %s, got %s", TaskTypePruneMetrics, task.GetType())
	}
	if task.GetID() == "" {
		t.Error("Expected non-empty task ID")
	}
	if task.GetMaxRetries() != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, task.GetMaxRetries())
	}

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}
	if task.CanRetry() {
		t.Error("Expected retries exhausted")
	}
}

func TestPruneMetricsTask(t *testing.T) {
	repo := &MockMetricsRepo{deleted: 5}
	task := NewPruneMetricsTask(repo, 30)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if calls := repo.calls(); len(calls) != 1 || calls[0] != 30 {
		t.Errorf("Expected one prune with retention 30, got %v", calls)
	}

	repo.shouldError = true
	if err := task.Execute(context.Background()); err == nil {
		t.Error("Expected repository error surfaced")
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := task.Execute(cancelled); err == nil {
		t.Error("Expected cancelled context rejected")
	}
}
