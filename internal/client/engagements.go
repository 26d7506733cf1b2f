package client

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/unclebandit/hudey-console/internal/model"
)

// FetchEngagements is the strict variant used by the aggregates, which
// need to know which campaigns failed.
func (c *Client) FetchEngagements(ctx context.Context, campaignID string) ([]model.CreatorEngagement, error) {
	engagements := []model.CreatorEngagement{}
	if err := c.call(ctx, http.MethodGet, campaignPath(campaignID)+"/engagements", nil, "fetch engagements", &engagements); err != nil {
		return nil, err
	}
	if engagements == nil {
		engagements = []model.CreatorEngagement{}
	}
	return engagements, nil
}

// ListEngagements degrades to an empty list on any failure.
func (c *Client) ListEngagements(ctx context.Context, campaignID string) []model.CreatorEngagement {
	engagements, err := c.FetchEngagements(ctx, campaignID)
	if err != nil {
		log.Printf("⚠️ fetch engagements degraded: %v\n", err)
		return []model.CreatorEngagement{}
	}
	return engagements
}

func (c *Client) ReplyToCreator(ctx context.Context, campaignID, creatorID, message string) error {
	body := model.ReplyRequest{CreatorID: creatorID, Message: message}
	return c.call(ctx, http.MethodPost, campaignPath(campaignID)+"/reply", body, "send reply", nil)
}

func (c *Client) UpdateEngagementStatus(ctx context.Context, campaignID, creatorID string, req model.UpdateEngagementStatusRequest) error {
	path := campaignPath(campaignID) + "/engagements/" + url.PathEscape(creatorID) + "/status"
	return c.call(ctx, http.MethodPatch, path, req, "update engagement status", nil)
}

// GenerateCounterOffer asks the agent to draft a counter offer. The draft
// shape belongs to the backend and is returned untouched.
func (c *Client) GenerateCounterOffer(ctx context.Context, campaignID, creatorID string) (json.RawMessage, error) {
	var out json.RawMessage
	body := model.CounterOfferRequest{CreatorID: creatorID}
	if err := c.call(ctx, http.MethodPost, campaignPath(campaignID)+"/negotiate", body, "generate counter offer", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendCounterOffer(ctx context.Context, campaignID string, req model.SendCounterOfferRequest) error {
	return c.call(ctx, http.MethodPost, campaignPath(campaignID)+"/send-counter-offer", req, "send counter offer", nil)
}

func (c *Client) AcceptTerms(ctx context.Context, campaignID string, req model.AcceptTermsRequest) error {
	return c.call(ctx, http.MethodPost, campaignPath(campaignID)+"/accept-terms", req, "accept terms", nil)
}
