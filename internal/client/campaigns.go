package client

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"github.com/unclebandit/hudey-console/internal/model"
)

func campaignPath(id string) string {
	return "/api/campaigns/" + url.PathEscape(id)
}

// ListCampaigns returns campaign summaries, newest first.
func (c *Client) ListCampaigns(ctx context.Context) ([]model.Campaign, error) {
	campaigns := []model.Campaign{}
	if err := c.call(ctx, http.MethodGet, "/api/campaigns", nil, "list campaigns", &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

// GetCampaign returns nil, nil when the backend answers 404.
func (c *Client) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	var campaign model.Campaign
	found, err := c.find(ctx, campaignPath(id), "fetch campaign", &campaign)
	if err != nil || !found {
		return nil, err
	}
	return &campaign, nil
}

func (c *Client) CreateCampaign(ctx context.Context, req model.CreateCampaignRequest) (string, error) {
	var out model.CreateCampaignResponse
	if err := c.call(ctx, http.MethodPost, "/api/campaigns", req, "create campaign", &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// UpdateCampaign sends a partial update; fields is passed through as-is.
func (c *Client) UpdateCampaign(ctx context.Context, id string, fields map[string]any) error {
	return c.call(ctx, http.MethodPut, campaignPath(id), fields, "update campaign", nil)
}

func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, campaignPath(id), nil, "delete campaign", nil)
}

// RunCampaign moves a draft campaign to running.
func (c *Client) RunCampaign(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodPost, campaignPath(id)+"/run", nil, "run campaign", nil)
}

// FetchEmailEvents returns the delivery summary or the failure.
func (c *Client) FetchEmailEvents(ctx context.Context, campaignID string) (model.EmailDeliverySummary, error) {
	summary := model.EmptyDeliverySummary()
	if err := c.call(ctx, http.MethodGet, campaignPath(campaignID)+"/email-events", nil, "fetch email events", &summary); err != nil {
		return model.EmptyDeliverySummary(), err
	}
	if summary.PerCreator == nil {
		summary.PerCreator = []model.RecipientDelivery{}
	}
	return summary, nil
}

// GetEmailEvents never fails: any error yields a zeroed summary.
func (c *Client) GetEmailEvents(ctx context.Context, campaignID string) model.EmailDeliverySummary {
	summary, err := c.FetchEmailEvents(ctx, campaignID)
	if err != nil {
		log.Printf("⚠️ fetch email events degraded: %v\n", err)
	}
	return summary
}
