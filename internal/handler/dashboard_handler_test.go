package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/hudey-console/internal/errors"
	"github.com/unclebandit/hudey-console/internal/handler"
	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/service"
)

type FakeDashboard struct{}

func (FakeDashboard) AggregateMetrics(context.Context) service.Metrics {
	return service.Metrics{ActiveOutreach: 1, OutreachTrend: make([]int, 7), ResponseTrend: make([]int, 7)}
}

func (FakeDashboard) AggregateOutreach(context.Context) service.Outreach {
	return service.Outreach{TotalSent: 12, ByStatus: map[string]int{}, PerCampaign: []service.OutreachCampaign{}}
}

func (FakeDashboard) OutreachInboxCount(context.Context) int { return 4 }

func (FakeDashboard) AggregateAnalytics(context.Context) service.Analytics {
	return service.Analytics{ResponseRate: 67, ConversionRate: 33}
}

func (FakeDashboard) AggregateNegotiations(context.Context) service.Negotiations {
	return service.Negotiations{AvgResponseTimeHours: 5, Campaigns: []service.NegotiationCampaign{}}
}

type FakeSnapshots struct {
	kind  string
	limit int
	err   error
}

func (f *FakeSnapshots) ListByKind(_ context.Context, kind string, limit int) ([]model.Snapshot, error) {
	f.kind, f.limit = kind, limit
	if f.err != nil {
		return nil, f.err
	}
	return []model.Snapshot{{ID: "s1", Kind: kind, Payload: json.RawMessage(`{"activeOutreach":1}`)}}, nil
}

func serve(h *handler.DashboardHandler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/dashboard/metrics", h.Metrics)
	r.Get("/dashboard/outreach", h.Outreach)
	r.Get("/dashboard/inbox-count", h.InboxCount)
	r.Get("/dashboard/analytics", h.Analytics)
	r.Get("/dashboard/negotiations", h.Negotiations)
	r.Get("/dashboard/snapshots/{kind}", h.SnapshotHistory)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestDashboardRoutes(t *testing.T) {
	h := &handler.DashboardHandler{Service: FakeDashboard{}}

	cases := []struct {
		path, key string
		want      float64
	}{
		{"/dashboard/metrics", "activeOutreach", 1},
		{"/dashboard/outreach", "totalSent", 12},
		{"/dashboard/inbox-count", "count", 4},
		{"/dashboard/analytics", "responseRate", 67},
		{"/dashboard/negotiations", "avgResponseTimeHours", 5},
	}
	for _, c := range cases {
		w := serve(h, c.path)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", c.path, w.Code)
			continue
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s: unexpected content type %q", c.path, ct)
		}
		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Errorf("%s: decode: %v", c.path, err)
			continue
		}
		if body[c.key] != c.want {
			t.Errorf("%s: expected %s=%v, got %v", c.path, c.key, c.want, body[c.key])
		}
	}
}

func TestSnapshotHistory(t *testing.T) {
	snaps := &FakeSnapshots{}
	h := &handler.DashboardHandler{Service: FakeDashboard{}, Snapshots: snaps}

	w := serve(h, "/dashboard/snapshots/metrics?limit=5")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if snaps.kind != model.SnapshotMetrics || snaps.limit != 5 {
		t.Errorf("unexpected query kind=%s limit=%d", snaps.kind, snaps.limit)
	}

	if w := serve(h, "/dashboard/snapshots/weather"); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown kind, got %d", w.Code)
	}
	if w := serve(h, "/dashboard/snapshots/metrics?limit=zero"); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", w.Code)
	}

	snaps.err = errors.New("db down")
	if w := serve(h, "/dashboard/snapshots/analytics"); w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on store failure, got %d", w.Code)
	}

	h.Snapshots = nil
	if w := serve(h, "/dashboard/snapshots/metrics"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without a store, got %d", w.Code)
	}
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		detail string
	}{
		{appErrors.NewAPIError(http.StatusUnauthorized, "Not authenticated", "list campaigns"), 401, "Not authenticated"},
		{appErrors.NewCampaignNotFound("c9"), 404, "campaign with ID c9 not found"},
		{appErrors.NewValidation("message cannot be empty"), 400, "message cannot be empty"},
		{errors.New("boom"), 500, "boom"},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		handler.WriteError(w, c.err)
		if w.Code != c.status {
			t.Errorf("%v: expected %d, got %d", c.err, c.status, w.Code)
		}
		var body handler.ErrorBody
		json.NewDecoder(w.Body).Decode(&body)
		if body.Detail != c.detail {
			t.Errorf("%v: expected detail %q, got %q", c.err, c.detail, body.Detail)
		}
	}
}

func TestHealthzAndRequestID(t *testing.T) {
	srv := httptest.NewServer(handler.NewRouter(&handler.DashboardHandler{Service: FakeDashboard{}}, nil, nil, nil))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-Id") == "" {
		t.Errorf("expected a generated request id")
	}
}
