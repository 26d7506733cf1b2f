package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/hudey-console/internal/model"
)

const (
	defaultSnapshotLimit = 20
	maxSnapshotLimit     = 200
)

type SnapshotRepositoryInterface interface {
	Save(ctx context.Context, s *model.Snapshot) error
	ListByKind(ctx context.Context, kind string, limit int) ([]model.Snapshot, error)
}

type SnapshotRepository struct {
	DB *sql.DB
}

var _ SnapshotRepositoryInterface = (*SnapshotRepository)(nil)

// Save inserts s. Redelivered snapshots keep their first row.
func (r *SnapshotRepository) Save(ctx context.Context, s *model.Snapshot) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	query := `
        INSERT INTO dashboard_snapshots (id, kind, payload, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO NOTHING
    `
	if _, err := r.DB.ExecContext(ctx, query, s.ID, s.Kind, []byte(s.Payload), s.CreatedAt); err != nil {
		return fmt.Errorf("insert snapshot %s: %w", s.ID, err)
	}
	return nil
}

// ListByKind returns the newest snapshots of kind first.
func (r *SnapshotRepository) ListByKind(ctx context.Context, kind string, limit int) ([]model.Snapshot, error) {
	limit = clampLimit(limit)
	query := `
        SELECT id, kind, payload, created_at
        FROM dashboard_snapshots
        WHERE kind = $1
        ORDER BY created_at DESC
        LIMIT $2
    `
	rows, err := r.DB.QueryContext(ctx, query, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []model.Snapshot{}
	for rows.Next() {
		var s model.Snapshot
		var payload []byte
		if err := rows.Scan(&s.ID, &s.Kind, &payload, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Payload = payload
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultSnapshotLimit
	}
	if limit > maxSnapshotLimit {
		return maxSnapshotLimit
	}
	return limit
}
