package model

// DeliveryStatusPriority ranks per-recipient email states; the highest
// event seen for a recipient is its headline status.
var DeliveryStatusPriority = map[string]int{
	"complained": 5,
	"bounced":    4,
	"clicked":    3,
	"opened":     2,
	"delivered":  1,
	"sent":       0,
}

type EmailEvent struct {
	EventType string `json:"event_type"`
	CreatedAt string `json:"created_at"`
}

type RecipientDelivery struct {
	CreatorID string       `json:"creator_id"`
	EmailID   string       `json:"email_id"`
	Recipient string       `json:"recipient"`
	Status    string       `json:"status"`
	Events    []EmailEvent `json:"events"`
}

// HeadlineStatus returns Status, or derives it from Events when the
// backend left it empty.
func (r RecipientDelivery) HeadlineStatus() string {
	if r.Status != "" {
		return r.Status
	}
	best, bestP := "sent", 0
	for _, ev := range r.Events {
		if p := DeliveryStatusPriority[ev.EventType]; p > bestP {
			best, bestP = ev.EventType, p
		}
	}
	return best
}

type EmailDeliverySummary struct {
	TotalSent  int                 `json:"total_sent"`
	Delivered  int                 `json:"delivered"`
	Opened     int                 `json:"opened"`
	Clicked    int                 `json:"clicked"`
	Bounced    int                 `json:"bounced"`
	PerCreator []RecipientDelivery `json:"per_creator"`
}

// EmptyDeliverySummary is the placeholder used when the events endpoint fails.
func EmptyDeliverySummary() EmailDeliverySummary {
	return EmailDeliverySummary{PerCreator: []RecipientDelivery{}}
}
