package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/unclebandit/hudey-console/internal/model"
)

func templatePath(id string) string {
	return "/api/templates/" + url.PathEscape(id)
}

// ListCampaignTemplates degrades to an empty list.
func (c *Client) ListCampaignTemplates(ctx context.Context) []model.CampaignTemplate {
	templates := []model.CampaignTemplate{}
	if !c.soft(ctx, "/api/templates", "fetch campaign templates", &templates) {
		return []model.CampaignTemplate{}
	}
	return templates
}

func (c *Client) GetCampaignTemplate(ctx context.Context, id string) (*model.CampaignTemplate, error) {
	var tmpl model.CampaignTemplate
	found, err := c.find(ctx, templatePath(id), "fetch campaign template", &tmpl)
	if err != nil || !found {
		return nil, err
	}
	return &tmpl, nil
}

func (c *Client) CreateCampaignTemplate(ctx context.Context, req model.CampaignTemplateRequest) (string, error) {
	var out model.CreateCampaignResponse
	if err := c.call(ctx, http.MethodPost, "/api/templates", req, "create campaign template", &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) DeleteCampaignTemplate(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, templatePath(id), nil, "delete campaign template", nil)
}

// CreateCampaignFromTemplate starts a draft campaign from a template and
// returns the new campaign id.
func (c *Client) CreateCampaignFromTemplate(ctx context.Context, templateID string, req model.FromTemplateRequest) (string, error) {
	var out model.FromTemplateResponse
	if err := c.call(ctx, http.MethodPost, templatePath(templateID)+"/create-campaign", req, "create campaign from template", &out); err != nil {
		return "", err
	}
	return out.ID, nil
}
