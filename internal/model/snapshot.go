package model

import (
	"encoding/json"
	"time"
)

const (
	SnapshotMetrics      = "metrics"
	SnapshotOutreach     = "outreach"
	SnapshotAnalytics    = "analytics"
	SnapshotNegotiations = "negotiations"
)

// Snapshot is a persisted copy of one aggregate response.
type Snapshot struct {
	ID        string          `db:"id" json:"id"`
	Kind      string          `db:"kind" json:"kind"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

func ValidSnapshotKind(kind string) bool {
	switch kind {
	case SnapshotMetrics, SnapshotOutreach, SnapshotAnalytics, SnapshotNegotiations:
		return true
	}
	return false
}
