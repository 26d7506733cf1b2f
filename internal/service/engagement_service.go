package service

import (
	"context"
	"encoding/json"
	"strings"

	appErrors "github.com/unclebandit/hudey-console/internal/errors"
	"github.com/unclebandit/hudey-console/internal/model"
)

// EngagementBackend is the part of the API client the negotiation screens
// use.
type EngagementBackend interface {
	ListEngagements(ctx context.Context, campaignID string) []model.CreatorEngagement
	GetEmailEvents(ctx context.Context, campaignID string) model.EmailDeliverySummary
	UpdateEngagementStatus(ctx context.Context, campaignID, creatorID string, req model.UpdateEngagementStatusRequest) error
	GenerateCounterOffer(ctx context.Context, campaignID, creatorID string) (json.RawMessage, error)
	SendCounterOffer(ctx context.Context, campaignID string, req model.SendCounterOfferRequest) error
	AcceptTerms(ctx context.Context, campaignID string, req model.AcceptTermsRequest) error
}

type EngagementService struct {
	Backend EngagementBackend
}

var engagementStatuses = map[string]bool{
	model.EngagementContacted:   true,
	model.EngagementResponded:   true,
	model.EngagementNegotiating: true,
	model.EngagementAgreed:      true,
	model.EngagementDeclined:    true,
}

func (s *EngagementService) ListEngagements(ctx context.Context, campaignID string) []model.CreatorEngagement {
	return s.Backend.ListEngagements(ctx, campaignID)
}

func (s *EngagementService) EmailEvents(ctx context.Context, campaignID string) model.EmailDeliverySummary {
	return s.Backend.GetEmailEvents(ctx, campaignID)
}

func (s *EngagementService) UpdateStatus(ctx context.Context, campaignID, creatorID string, req model.UpdateEngagementStatusRequest) error {
	if strings.TrimSpace(creatorID) == "" {
		return appErrors.NewValidation("creator_id is required")
	}
	if !engagementStatuses[req.Status] {
		return appErrors.NewValidation("unknown engagement status %q", req.Status)
	}
	return s.Backend.UpdateEngagementStatus(ctx, campaignID, creatorID, req)
}

// DraftCounterOffer asks the agent for a counter offer; the draft is the
// backend's JSON, returned as-is.
func (s *EngagementService) DraftCounterOffer(ctx context.Context, campaignID string, req model.CounterOfferRequest) (json.RawMessage, error) {
	if strings.TrimSpace(req.CreatorID) == "" {
		return nil, appErrors.NewValidation("creator_id is required")
	}
	return s.Backend.GenerateCounterOffer(ctx, campaignID, req.CreatorID)
}

func (s *EngagementService) SendCounterOffer(ctx context.Context, campaignID string, req model.SendCounterOfferRequest) error {
	if strings.TrimSpace(req.CreatorID) == "" {
		return appErrors.NewValidation("creator_id is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return appErrors.NewValidation("message cannot be empty")
	}
	return s.Backend.SendCounterOffer(ctx, campaignID, req)
}

func (s *EngagementService) AcceptTerms(ctx context.Context, campaignID string, req model.AcceptTermsRequest) error {
	if strings.TrimSpace(req.CreatorID) == "" {
		return appErrors.NewValidation("creator_id is required")
	}
	return s.Backend.AcceptTerms(ctx, campaignID, req)
}
