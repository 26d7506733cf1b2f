package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/service"
)

// MockSnapshotStore stores snapshots in memory
type MockSnapshotStore struct {
	mu    sync.Mutex
	saved map[string]model.Snapshot
	err   error
}

func (m *MockSnapshotStore) Save(_ context.Context, s *model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved[s.ID] = *s
	return nil
}

func runJobs(t *testing.T, store service.SnapshotStore, snaps ...model.Snapshot) []bool {
	t.Helper()
	jobChan := make(chan service.SnapshotJob, len(snaps))
	results := make([]bool, len(snaps))

	var wg sync.WaitGroup
	wg.Add(len(snaps))
	for i, s := range snaps {
		i := i
		jobChan <- service.SnapshotJob{Snapshot: s, Done: func(stored bool) {
			results[i] = stored
			wg.Done()
		}}
	}
	close(jobChan)

	worker := service.NewWorker(store, jobChan)
	go worker.Start(context.Background())
	wg.Wait()
	return results
}

func TestWorkerStoresSnapshots(t *testing.T) {
	store := &MockSnapshotStore{saved: map[string]model.Snapshot{}}

	results := runJobs(t, store,
		model.Snapshot{ID: "s1", Kind: model.SnapshotMetrics, Payload: []byte(`{}`)},
		model.Snapshot{ID: "s2", Kind: "weather", Payload: []byte(`{}`)},
	)

	if !results[0] || !results[1] {
		t.Errorf("both jobs should be acked, got %v", results)
	}
	if _, ok := store.saved["s1"]; !ok {
		t.Errorf("expected s1 stored")
	}
	if _, ok := store.saved["s2"]; ok {
		t.Errorf("unknown kinds must not be stored")
	}
}

func TestWorkerReportsStoreFailure(t *testing.T) {
	store := &MockSnapshotStore{saved: map[string]model.Snapshot{}, err: errors.New("db down")}

	results := runJobs(t, store, model.Snapshot{ID: "s1", Kind: model.SnapshotAnalytics})
	if results[0] {
		t.Errorf("expected failed store to be reported")
	}
}
