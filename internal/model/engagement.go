package model

import (
	"encoding/json"
	"time"
)

const (
	EngagementContacted   = "contacted"
	EngagementResponded   = "responded"
	EngagementNegotiating = "negotiating"
	EngagementAgreed      = "agreed"
	EngagementDeclined    = "declined"

	MessageFromBrand   = "brand"
	MessageFromCreator = "creator"
)

type Message struct {
	From      string `json:"from"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

type CreatorEngagement struct {
	ID                string          `json:"id"`
	CampaignID        string          `json:"campaign_id"`
	CreatorID         string          `json:"creator_id"`
	CreatorName       *string         `json:"creator_name,omitempty"`
	CreatorEmail      *string         `json:"creator_email,omitempty"`
	Platform          *string         `json:"platform,omitempty"`
	Status            string          `json:"status"`
	LatestProposal    json.RawMessage `json:"latest_proposal,omitempty"`
	Terms             json.RawMessage `json:"terms,omitempty"`
	MessageHistory    []Message       `json:"message_history"`
	ResponseTimestamp *time.Time      `json:"response_timestamp,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// HasResponded is true for every status past the initial outreach.
func (e CreatorEngagement) HasResponded() bool {
	return e.Status != EngagementContacted
}

// LastActivity is updated_at, falling back to created_at when the backend
// never touched the row.
func (e CreatorEngagement) LastActivity() time.Time {
	if !e.UpdatedAt.IsZero() {
		return e.UpdatedAt
	}
	return e.CreatedAt
}

// LastMessage returns the newest message in the thread, or nil.
func (e CreatorEngagement) LastMessage() *Message {
	if len(e.MessageHistory) == 0 {
		return nil
	}
	return &e.MessageHistory[len(e.MessageHistory)-1]
}

// DisplayName falls back to the creator id.
func (e CreatorEngagement) DisplayName() string {
	if e.CreatorName != nil && *e.CreatorName != "" {
		return *e.CreatorName
	}
	return e.CreatorID
}

// FeeGBP prefers the agreed terms and falls back to the latest proposal.
func (e CreatorEngagement) FeeGBP() (float64, bool) {
	if fee, ok := feeFrom(e.Terms); ok {
		return fee, true
	}
	return feeFrom(e.LatestProposal)
}

func feeFrom(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var v struct {
		FeeGBP any `json:"fee_gbp"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	fee, ok := v.FeeGBP.(float64)
	return fee, ok
}

type ReplyRequest struct {
	CreatorID string `json:"creator_id"`
	Message   string `json:"message"`
}

type UpdateEngagementStatusRequest struct {
	Status         string          `json:"status"`
	Terms          json.RawMessage `json:"terms,omitempty"`
	LatestProposal json.RawMessage `json:"latest_proposal,omitempty"`
}

type CounterOfferRequest struct {
	CreatorID string `json:"creator_id"`
}

type SendCounterOfferRequest struct {
	CreatorID     string          `json:"creator_id"`
	Message       string          `json:"message"`
	Subject       string          `json:"subject,omitempty"`
	ProposedTerms json.RawMessage `json:"proposed_terms,omitempty"`
}

type AcceptTermsRequest struct {
	CreatorID        string          `json:"creator_id"`
	Terms            json.RawMessage `json:"terms,omitempty"`
	ContractAccepted *bool           `json:"contract_accepted,omitempty"`
	SendConfirmation bool            `json:"send_confirmation"`
	UserAgent        string          `json:"user_agent,omitempty"`
}
