package model

import (
	"encoding/json"
	"time"
)

// CampaignTemplate is a saved brief (and optionally a strategy) a brand
// starts new campaigns from.
type CampaignTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Brief       json.RawMessage `json:"brief,omitempty"`
	Strategy    json.RawMessage `json:"strategy,omitempty"`
	UsageCount  int             `json:"usage_count"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}

// CampaignTemplateRequest saves either an explicit brief or, with
// CampaignID set, the brief of an existing campaign.
type CampaignTemplateRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Brief       json.RawMessage `json:"brief,omitempty"`
	Strategy    json.RawMessage `json:"strategy,omitempty"`
	CampaignID  string          `json:"campaign_id,omitempty"`
}

type FromTemplateRequest struct {
	Name           string         `json:"name,omitempty"`
	BriefOverrides map[string]any `json:"brief_overrides,omitempty"`
}

type FromTemplateResponse struct {
	ID         string `json:"id"`
	TemplateID string `json:"template_id"`
}
