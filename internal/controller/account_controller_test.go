package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/unclebandit/hudey-console/internal/model"
)

type MockBrand struct {
	read    []string
	readAll int
}

func (m *MockBrand) GetBrand(context.Context) (*model.Brand, error) {
	return &model.Brand{ID: "b1", Name: "Hudey", BrandVoice: json.RawMessage(`{"notifications":{"email_weekly_digest":true}}`)}, nil
}

func (m *MockBrand) UpdateBrand(_ context.Context, req model.UpdateBrandRequest) (*model.Brand, error) {
	return &model.Brand{ID: "b1", Name: req.Name, Industry: req.Industry}, nil
}

func (m *MockBrand) GetBilling(context.Context) model.BillingData {
	billing := model.EmptyBilling()
	billing.Summary.CampaignsPaid = 2
	return billing
}

func (m *MockBrand) CreateBillingPortal(context.Context) (string, error) {
	return "https://billing.example/p/1", nil
}

func (m *MockBrand) ListNotifications(context.Context) []model.Notification {
	return []model.Notification{{ID: "n1", Title: "Creator replied"}}
}

func (m *MockBrand) UnreadNotificationCount(context.Context) int { return 3 }

func (m *MockBrand) MarkNotificationRead(_ context.Context, id string) error {
	m.read = append(m.read, id)
	return nil
}

func (m *MockBrand) MarkAllNotificationsRead(context.Context) error {
	m.readAll++
	return nil
}

func TestBrandRoutes(t *testing.T) {
	srv := newServer(t, &MockBackend{}, nil)

	resp := do(t, http.MethodGet, srv.URL+"/brand", nil)
	var profile struct {
		Name                    string                        `json:"name"`
		NotificationPreferences model.NotificationPreferences `json:"notification_preferences"`
	}
	json.NewDecoder(resp.Body).Decode(&profile)
	if resp.StatusCode != http.StatusOK || profile.Name != "Hudey" || !profile.NotificationPreferences.EmailWeeklyDigest {
		t.Errorf("unexpected brand %d %+v", resp.StatusCode, profile)
	}

	resp = do(t, http.MethodPut, srv.URL+"/brand", model.UpdateBrandRequest{Industry: "Beauty"})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	resp = do(t, http.MethodPut, srv.URL+"/brand", model.UpdateBrandRequest{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for empty update, got %d", resp.StatusCode)
	}
}

func TestBillingRoutes(t *testing.T) {
	srv := newServer(t, &MockBackend{}, nil)

	resp := do(t, http.MethodGet, srv.URL+"/billing", nil)
	var billing model.BillingData
	json.NewDecoder(resp.Body).Decode(&billing)
	if billing.Summary.CampaignsPaid != 2 || billing.Transactions == nil {
		t.Errorf("unexpected billing %+v", billing)
	}

	resp = do(t, http.MethodPost, srv.URL+"/billing/portal", nil)
	var portal model.PortalSession
	json.NewDecoder(resp.Body).Decode(&portal)
	if resp.StatusCode != http.StatusOK || portal.URL != "https://billing.example/p/1" {
		t.Errorf("unexpected portal %d %+v", resp.StatusCode, portal)
	}
}

func TestNotificationRoutes(t *testing.T) {
	srv := newServer(t, &MockBackend{}, nil)

	resp := do(t, http.MethodGet, srv.URL+"/notifications", nil)
	var feed struct {
		Notifications []model.Notification `json:"notifications"`
		UnreadCount   int                  `json:"unread_count"`
	}
	json.NewDecoder(resp.Body).Decode(&feed)
	if len(feed.Notifications) != 1 || feed.UnreadCount != 3 {
		t.Errorf("unexpected feed %+v", feed)
	}

	resp = do(t, http.MethodGet, srv.URL+"/notifications/unread-count", nil)
	var count model.UnreadCount
	json.NewDecoder(resp.Body).Decode(&count)
	if count.Count != 3 {
		t.Errorf("expected 3 unread, got %d", count.Count)
	}

	if resp := do(t, http.MethodPut, srv.URL+"/notifications/n1/read", nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if resp := do(t, http.MethodPut, srv.URL+"/notifications/read-all", nil); resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if len(srv.brand.read) != 1 || srv.brand.read[0] != "n1" || srv.brand.readAll != 1 {
		t.Errorf("unexpected calls read=%v readAll=%d", srv.brand.read, srv.brand.readAll)
	}
}
