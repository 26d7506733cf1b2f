// internal/model/campaign.go
package model

import (
	"encoding/json"
	"time"
)

const (
	CampaignStatusDraft            = "draft"
	CampaignStatusRunning          = "running"
	CampaignStatusAwaitingApproval = "awaiting_approval"
	CampaignStatusCompleted        = "completed"
	CampaignStatusFailed           = "failed"
)

type Campaign struct {
	ID          string          `json:"id"`
	ShortID     *string         `json:"short_id,omitempty"`
	Name        string          `json:"name"`
	Status      string          `json:"status"`
	AgentState  *string         `json:"agent_state,omitempty"`
	Brief       json.RawMessage `json:"brief,omitempty"`
	Strategy    json.RawMessage `json:"strategy,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// IsLive reports whether the backend is still working on the campaign,
// either running or blocked on a human approval.
func (c Campaign) IsLive() bool {
	return c.Status == CampaignStatusRunning || c.Status == CampaignStatusAwaitingApproval
}

// BudgetGBP reads brief.budget_gbp. Missing or non-numeric budgets count as 0.
func (c Campaign) BudgetGBP() float64 {
	if len(c.Brief) == 0 {
		return 0
	}
	var brief struct {
		BudgetGBP any `json:"budget_gbp"`
	}
	if err := json.Unmarshal(c.Brief, &brief); err != nil {
		return 0
	}
	if v, ok := brief.BudgetGBP.(float64); ok {
		return v
	}
	return 0
}

// CreateCampaignRequest is the body of POST /api/campaigns.
type CreateCampaignRequest struct {
	Name               string          `json:"name,omitempty"`
	Brief              json.RawMessage `json:"brief,omitempty"`
	Strategy           json.RawMessage `json:"strategy,omitempty"`
	ShortID            string          `json:"short_id,omitempty"`
	ContractTemplateID string          `json:"contract_template_id,omitempty"`
}

type CreateCampaignResponse struct {
	ID string `json:"id"`
}
