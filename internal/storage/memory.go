package storage

import (
	"context"
	"sort"
	"sync"

	"noetica/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunSummary
	snapshots   map[string][]model.Snapshot
	metrics     map[string][]model.MetricPoint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunSummary)
	s.snapshots = make(map[string][]model.Snapshot)
	s.metrics = make(map[string][]model.MetricPoint)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]model.RunSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunSummary, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedUnix != runs[j].StartedUnix {
			return runs[i].StartedUnix < runs[j].StartedUnix
		}
		return runs[i].ID < runs[j].ID
	})
	return runs, nil
}

func (s *MemoryStore) SaveSnapshot(_ context.Context, snapshot model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snapshot.RunID] = append(s.snapshots[snapshot.RunID], snapshot)
	return nil
}

func (s *MemoryStore) GetSnapshots(_ context.Context, runID string) ([]model.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots, ok := s.snapshots[runID]
	if !ok {
		return nil, false, nil
	}
	out := make([]model.Snapshot, len(snapshots))
	copy(out, snapshots)
	return out, true, nil
}

func (s *MemoryStore) SaveMetrics(_ context.Context, runID string, points []model.MetricPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]model.MetricPoint, len(points))
	copy(stored, points)
	s.metrics[runID] = stored
	return nil
}

func (s *MemoryStore) GetMetrics(_ context.Context, runID string) ([]model.MetricPoint, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points, ok := s.metrics[runID]
	if !ok {
		return nil, false, nil
	}
	out := make([]model.MetricPoint, len(points))
	copy(out, points)
	return out, true, nil
}
