package model

import (
	"encoding/json"
	"time"
)

type Brand struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Industry     string          `json:"industry,omitempty"`
	ContactEmail string          `json:"contact_email,omitempty"`
	BrandVoice   json.RawMessage `json:"brand_voice,omitempty"`
}

// NotificationPreferences lives inside brand_voice; the backend has no
// dedicated column for it.
type NotificationPreferences struct {
	EmailOnApproval    bool `json:"email_on_approval"`
	EmailOnResponse    bool `json:"email_on_response"`
	EmailWeeklyDigest  bool `json:"email_weekly_digest"`
	InAppNotifications bool `json:"in_app_notifications"`
}

// Notifications decodes brand_voice.notifications. Absent preferences
// yield the zero value.
func (b Brand) Notifications() NotificationPreferences {
	var voice struct {
		Notifications NotificationPreferences `json:"notifications"`
	}
	if len(b.BrandVoice) > 0 {
		_ = json.Unmarshal(b.BrandVoice, &voice)
	}
	return voice.Notifications
}

type UpdateBrandRequest struct {
	Name         string          `json:"name,omitempty"`
	Industry     string          `json:"industry,omitempty"`
	ContactEmail string          `json:"contact_email,omitempty"`
	BrandVoice   json.RawMessage `json:"brand_voice,omitempty"`
}

type BillingSummary struct {
	TotalSpent    float64    `json:"total_spent"`
	CampaignsPaid int        `json:"campaigns_paid"`
	LastPaymentAt *time.Time `json:"last_payment_at"`
}

type Transaction struct {
	CampaignID    string     `json:"campaign_id"`
	CampaignName  string     `json:"campaign_name"`
	TransactionID *string    `json:"transaction_id"`
	Amount        float64    `json:"amount"`
	PaidAt        *time.Time `json:"paid_at"`
}

type BillingData struct {
	Summary      BillingSummary `json:"summary"`
	Transactions []Transaction  `json:"transactions"`
}

func EmptyBilling() BillingData {
	return BillingData{Transactions: []Transaction{}}
}

type PortalSession struct {
	URL string `json:"url"`
}
