package service

import (
	"context"
	"log"

	"github.com/unclebandit/hudey-console/internal/model"
)

// SnapshotStore defines the methods the worker needs
type SnapshotStore interface {
	Save(ctx context.Context, s *model.Snapshot) error
}

// SnapshotJob is one delivery. Done reports whether the snapshot was
// stored so the transport can ack or requeue.
type SnapshotJob struct {
	Snapshot model.Snapshot
	Done     func(stored bool)
}

// Worker persists dashboard snapshots
type Worker struct {
	Store   SnapshotStore
	JobChan <-chan SnapshotJob
}

func NewWorker(store SnapshotStore, jobChan <-chan SnapshotJob) *Worker {
	return &Worker{
		Store:   store,
		JobChan: jobChan,
	}
}

// Start processes jobs until JobChan is closed or ctx ends.
func (w *Worker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-w.JobChan:
			if !ok {
				return
			}
			stored := w.handle(ctx, job.Snapshot)
			if job.Done != nil {
				job.Done(stored)
			}
		}
	}
}

func (w *Worker) handle(ctx context.Context, s model.Snapshot) bool {
	if !model.ValidSnapshotKind(s.Kind) {
		log.Printf("⚠️ dropping snapshot %s with unknown kind %q\n", s.ID, s.Kind)
		return true
	}
	if err := w.Store.Save(ctx, &s); err != nil {
		log.Println("⚠️ failed to store snapshot:", err)
		return false
	}
	log.Printf("✅ stored %s snapshot %s\n", s.Kind, s.ID)
	return true
}
