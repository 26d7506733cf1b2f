package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/service"
)

// MockSource serves canned campaign data. Campaign ids listed in failing
// return an error for every per-campaign fetch.
type MockSource struct {
	campaigns   []model.Campaign
	listErr     error
	engagements map[string][]model.CreatorEngagement
	email       map[string]model.EmailDeliverySummary
	pending     []model.Approval
	failing     map[string]bool
	details     map[string]model.Campaign
}

func (m *MockSource) ListCampaigns(context.Context) ([]model.Campaign, error) {
	return m.campaigns, m.listErr
}

func (m *MockSource) FetchEngagements(_ context.Context, id string) ([]model.CreatorEngagement, error) {
	if m.failing[id] {
		return nil, errors.New("engagements unavailable")
	}
	return m.engagements[id], nil
}

func (m *MockSource) FetchEmailEvents(_ context.Context, id string) (model.EmailDeliverySummary, error) {
	if m.failing[id] {
		return model.EmptyDeliverySummary(), errors.New("email events unavailable")
	}
	if s, ok := m.email[id]; ok {
		return s, nil
	}
	return model.EmptyDeliverySummary(), nil
}

func (m *MockSource) ListPendingApprovals(context.Context) []model.Approval {
	return m.pending
}

func (m *MockSource) GetCampaign(_ context.Context, id string) (*model.Campaign, error) {
	if m.failing[id] {
		return nil, errors.New("campaign unavailable")
	}
	c, ok := m.details[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type MockPublisher struct {
	mu    sync.Mutex
	kinds []string
	err   error
}

func (p *MockPublisher) PublishSnapshot(_ context.Context, s model.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kinds = append(p.kinds, s.Kind)
	return p.err
}

var fixedNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func newDashboard(src *MockSource, pub service.SnapshotPublisher) *service.DashboardService {
	return &service.DashboardService{
		Source:    src,
		Snapshots: pub,
		Location:  time.UTC,
		Now:       func() time.Time { return fixedNow },
	}
}

func eng(id, status string) model.CreatorEngagement {
	created := fixedNow.Add(-30 * time.Hour)
	responded := created.Add(2 * time.Hour)
	e := model.CreatorEngagement{ID: id, CreatorID: id, Status: status, CreatedAt: created, UpdatedAt: fixedNow.Add(-time.Hour)}
	if status != model.EngagementContacted {
		e.ResponseTimestamp = &responded
	}
	return e
}

func TestAggregatesTolerateFailedCampaigns(t *testing.T) {
	src := &MockSource{
		campaigns: []model.Campaign{
			{ID: "C1", Status: model.CampaignStatusRunning},
			{ID: "C2", Status: model.CampaignStatusAwaitingApproval},
		},
		engagements: map[string][]model.CreatorEngagement{
			"C1": {eng("a", model.EngagementContacted), eng("b", model.EngagementAgreed)},
			"C2": {eng("c", model.EngagementNegotiating)},
		},
		email: map[string]model.EmailDeliverySummary{
			"C1": {TotalSent: 4, Delivered: 4, Opened: 2},
			"C2": {TotalSent: 100},
		},
		pending: []model.Approval{{ID: "p1"}, {ID: "p2"}},
		failing: map[string]bool{"C2": true},
	}
	d := newDashboard(src, nil)
	ctx := context.Background()

	m := d.AggregateMetrics(ctx)
	if m.ActiveOutreach != 2 || m.TotalEngagements != 2 || m.PendingApprovals != 2 {
		t.Errorf("unexpected metrics %+v", m)
	}

	o := d.AggregateOutreach(ctx)
	if o.TotalSent != 4 || o.TotalEngagements != 2 || len(o.PerCampaign) != 1 {
		t.Errorf("C2 should contribute nothing, got %+v", o)
	}

	a := d.AggregateAnalytics(ctx)
	if a.TotalCampaigns != 2 || a.TotalCreatorsContacted != 2 || a.ResponseRate != 50 {
		t.Errorf("unexpected analytics %+v", a)
	}

	n := d.AggregateNegotiations(ctx)
	if n.TotalAgreed != 1 || n.ActiveNegotiations != 0 || n.AvgResponseTimeHours != 2 {
		t.Errorf("unexpected negotiations %+v", n)
	}

	if got := d.OutreachInboxCount(ctx); got != 1 {
		t.Errorf("expected 1 awaiting reply, got %d", got)
	}
}

func TestAggregatesResolveWhenEverythingFails(t *testing.T) {
	src := &MockSource{listErr: errors.New("backend down")}
	d := newDashboard(src, nil)
	ctx := context.Background()

	m := d.AggregateMetrics(ctx)
	if m.TotalCampaigns != 0 || len(m.OutreachTrend) != 7 || len(m.ResponseTrend) != 7 {
		t.Errorf("expected zero metrics with 7 buckets, got %+v", m)
	}
	if o := d.AggregateOutreach(ctx); o.TotalSent != 0 || len(o.PerCampaign) != 0 {
		t.Errorf("expected zero outreach, got %+v", o)
	}
	if a := d.AggregateAnalytics(ctx); a.ResponseRate != 0 || a.ConversionRate != 0 {
		t.Errorf("expected zero analytics, got %+v", a)
	}
	if n := d.AggregateNegotiations(ctx); len(n.Campaigns) != 0 {
		t.Errorf("expected no negotiations, got %+v", n)
	}
	if got := d.OutreachInboxCount(ctx); got != 0 {
		t.Errorf("expected 0 inbox, got %d", got)
	}
}

func TestAggregatesWhenEveryCampaignFetchFails(t *testing.T) {
	src := &MockSource{
		campaigns: []model.Campaign{{ID: "C1", Status: model.CampaignStatusRunning}},
		failing:   map[string]bool{"C1": true},
	}
	d := newDashboard(src, nil)

	a := d.AggregateAnalytics(context.Background())
	if a.TotalCreatorsContacted != 0 || a.ResponseRate != 0 || a.EmailStats.TotalSent != 0 {
		t.Errorf("expected zero analytics, got %+v", a)
	}
	if len(a.PerCampaign) != 1 || a.PerCampaign[0].Creators != 0 {
		t.Errorf("expected one zero row, got %+v", a.PerCampaign)
	}
}

func TestAggregatesPublishSnapshots(t *testing.T) {
	pub := &MockPublisher{err: errors.New("broker gone")}
	d := newDashboard(&MockSource{}, pub)
	ctx := context.Background()

	d.AggregateMetrics(ctx)
	d.AggregateOutreach(ctx)
	d.AggregateAnalytics(ctx)
	d.AggregateNegotiations(ctx)
	d.OutreachInboxCount(ctx)

	want := []string{model.SnapshotMetrics, model.SnapshotOutreach, model.SnapshotAnalytics, model.SnapshotNegotiations}
	if len(pub.kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, pub.kinds)
	}
	for i := range want {
		if pub.kinds[i] != want[i] {
			t.Errorf("snapshot %d: expected %s, got %s", i, want[i], pub.kinds[i])
		}
	}
}

func TestAnalyticsBudgetReadFromCampaignDetail(t *testing.T) {
	agreed := eng("a", model.EngagementAgreed)
	agreed.Terms = json.RawMessage(`{"fee_gbp": 400}`)
	src := &MockSource{
		campaigns: []model.Campaign{
			{ID: "C1", Name: "Spring", Status: model.CampaignStatusRunning},
			{ID: "C2", Name: "Autumn", Status: model.CampaignStatusRunning},
		},
		details: map[string]model.Campaign{
			"C1": {ID: "C1", Name: "Spring", Status: model.CampaignStatusRunning, Brief: json.RawMessage(`{"budget_gbp": 5000}`)},
		},
		engagements: map[string][]model.CreatorEngagement{"C1": {agreed}},
	}
	d := newDashboard(src, nil)

	a := d.AggregateAnalytics(context.Background())
	if a.BudgetTracking.TotalBudget != 5000 {
		t.Errorf("expected budget 5000 from detail, got %v", a.BudgetTracking.TotalBudget)
	}
	if a.BudgetTracking.TotalAgreedFees != 400 {
		t.Errorf("expected fees 400, got %v", a.BudgetTracking.TotalAgreedFees)
	}
	if len(a.BudgetTracking.PerCampaign) != 2 || a.BudgetTracking.PerCampaign[1].Budget != 0 {
		t.Errorf("campaign without detail should count budget 0, got %+v", a.BudgetTracking.PerCampaign)
	}
}
