package model

import (
	"encoding/json"
	"time"
)

const (
	ApprovalTypeStrategy = "strategy"
	ApprovalTypeCreators = "creators"
	ApprovalTypeOutreach = "outreach"
	ApprovalTypeTerms    = "terms"
	ApprovalTypeOther    = "other"

	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

type Approval struct {
	ID           string          `json:"id"`
	CampaignID   string          `json:"campaign_id"`
	ApprovalType string          `json:"approval_type"`
	Subject      string          `json:"subject"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	Reasoning    *string         `json:"reasoning,omitempty"`
	Status       string          `json:"status"`
	Feedback     *string         `json:"feedback,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	DecidedAt    *time.Time      `json:"decided_at,omitempty"`
}

// DecideApprovalRequest is the body of PUT /api/approvals/{id}.
type DecideApprovalRequest struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
}
