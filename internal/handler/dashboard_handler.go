package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/service"
)

// Dashboard is what the dashboard routes need from service.DashboardService.
type Dashboard interface {
	AggregateMetrics(ctx context.Context) service.Metrics
	AggregateOutreach(ctx context.Context) service.Outreach
	OutreachInboxCount(ctx context.Context) int
	AggregateAnalytics(ctx context.Context) service.Analytics
	AggregateNegotiations(ctx context.Context) service.Negotiations
}

type SnapshotLister interface {
	ListByKind(ctx context.Context, kind string, limit int) ([]model.Snapshot, error)
}

// DashboardHandler serves the cross-campaign aggregates. Aggregates never
// fail, so every route answers 200.
type DashboardHandler struct {
	Service   Dashboard
	Snapshots SnapshotLister
}

func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Service.AggregateMetrics(r.Context()))
}

func (h *DashboardHandler) Outreach(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Service.AggregateOutreach(r.Context()))
}

func (h *DashboardHandler) InboxCount(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]int{"count": h.Service.OutreachInboxCount(r.Context())})
}

func (h *DashboardHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Service.AggregateAnalytics(r.Context()))
}

func (h *DashboardHandler) Negotiations(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.Service.AggregateNegotiations(r.Context()))
}

// SnapshotHistory lists stored aggregates of one kind, newest first.
func (h *DashboardHandler) SnapshotHistory(w http.ResponseWriter, r *http.Request) {
	if h.Snapshots == nil {
		WriteDetail(w, http.StatusServiceUnavailable, "snapshot history is not configured")
		return
	}

	kind := chi.URLParam(r, "kind")
	if !model.ValidSnapshotKind(kind) {
		WriteDetail(w, http.StatusNotFound, "unknown snapshot kind "+kind)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteDetail(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	snapshots, err := h.Snapshots.ListByKind(r.Context(), kind, limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, snapshots)
}
