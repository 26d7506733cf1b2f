package service

import (
	"context"
	"strings"

	appErrors "github.com/unclebandit/hudey-console/internal/errors"
	"github.com/unclebandit/hudey-console/internal/model"
)

// BrandBackend covers the signed-in brand: profile, billing and
// notifications.
type BrandBackend interface {
	GetBrand(ctx context.Context) (*model.Brand, error)
	UpdateBrand(ctx context.Context, req model.UpdateBrandRequest) (*model.Brand, error)
	GetBilling(ctx context.Context) model.BillingData
	CreateBillingPortal(ctx context.Context) (string, error)
	ListNotifications(ctx context.Context) []model.Notification
	UnreadNotificationCount(ctx context.Context) int
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

type AccountService struct {
	Backend BrandBackend
}

// BrandProfile is the brand with its notification preferences decoded.
type BrandProfile struct {
	model.Brand
	NotificationPreferences model.NotificationPreferences `json:"notification_preferences"`
}

func (s *AccountService) Brand(ctx context.Context) (*BrandProfile, error) {
	brand, err := s.Backend.GetBrand(ctx)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, appErrors.NewNotFound("brand", "")
	}
	return &BrandProfile{Brand: *brand, NotificationPreferences: brand.Notifications()}, nil
}

func (s *AccountService) UpdateBrand(ctx context.Context, req model.UpdateBrandRequest) (*BrandProfile, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)
	if req.Name == "" && req.Industry == "" && req.ContactEmail == "" && len(req.BrandVoice) == 0 {
		return nil, appErrors.NewValidation("nothing to update")
	}
	if req.ContactEmail != "" && !strings.Contains(req.ContactEmail, "@") {
		return nil, appErrors.NewValidation("contact_email is not an email address")
	}
	brand, err := s.Backend.UpdateBrand(ctx, req)
	if err != nil {
		return nil, err
	}
	return &BrandProfile{Brand: *brand, NotificationPreferences: brand.Notifications()}, nil
}

func (s *AccountService) Billing(ctx context.Context) model.BillingData {
	return s.Backend.GetBilling(ctx)
}

func (s *AccountService) BillingPortal(ctx context.Context) (string, error) {
	return s.Backend.CreateBillingPortal(ctx)
}

// Notifications returns the feed together with the unread count.
func (s *AccountService) Notifications(ctx context.Context) ([]model.Notification, int) {
	return s.Backend.ListNotifications(ctx), s.Backend.UnreadNotificationCount(ctx)
}

func (s *AccountService) UnreadCount(ctx context.Context) int {
	return s.Backend.UnreadNotificationCount(ctx)
}

func (s *AccountService) MarkRead(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return appErrors.NewValidation("notification id is required")
	}
	return s.Backend.MarkNotificationRead(ctx, id)
}

func (s *AccountService) MarkAllRead(ctx context.Context) error {
	return s.Backend.MarkAllNotificationsRead(ctx)
}
