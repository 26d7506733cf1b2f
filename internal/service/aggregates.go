package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/unclebandit/hudey-console/internal/model"
)

const (
	trendDays       = 7
	weeklyWindow    = 7 * 24 * time.Hour
	inboxWindow     = 48 * time.Hour
	unknownPlatform = "unknown"
)

// CampaignData is everything fetched for one campaign. A failed fetch
// leaves the matching field zeroed.
type CampaignData struct {
	Campaign    model.Campaign
	Email       model.EmailDeliverySummary
	Engagements []model.CreatorEngagement
}

// ====================== Metrics ======================

type Metrics struct {
	TotalCampaigns   int   `json:"totalCampaigns"`
	ActiveOutreach   int   `json:"activeOutreach"`
	TotalEngagements int   `json:"totalEngagements"`
	WeeklyResponses  int   `json:"weeklyResponses"`
	PendingApprovals int   `json:"pendingApprovals"`
	OutreachTrend    []int `json:"outreachTrend"`
	ResponseTrend    []int `json:"responseTrend"`
}

// ReduceMetrics buckets by calendar day in now's location. Bucket 0 is six
// days ago, bucket 6 is today.
func ReduceMetrics(campaigns []model.Campaign, engagements []model.CreatorEngagement, pendingApprovals int, now time.Time) Metrics {
	m := Metrics{
		TotalCampaigns:   len(campaigns),
		TotalEngagements: len(engagements),
		PendingApprovals: pendingApprovals,
		OutreachTrend:    make([]int, trendDays),
		ResponseTrend:    make([]int, trendDays),
	}

	for _, c := range campaigns {
		if c.IsLive() {
			m.ActiveOutreach++
		}
	}

	weekAgo := now.Add(-weeklyWindow)
	bounds := dayBounds(now)
	for _, e := range engagements {
		if i := bucketOf(bounds, e.CreatedAt); i >= 0 {
			m.OutreachTrend[i]++
		}
		if e.ResponseTimestamp == nil {
			continue
		}
		rt := *e.ResponseTimestamp
		if !rt.Before(weekAgo) && !rt.After(now) {
			m.WeeklyResponses++
		}
		if i := bucketOf(bounds, rt); i >= 0 {
			m.ResponseTrend[i]++
		}
	}
	return m
}

// dayBounds returns trendDays+1 local midnights; bucket i is
// [bounds[i], bounds[i+1]).
func dayBounds(now time.Time) []time.Time {
	loc := now.Location()
	y, mo, d := now.Date()
	bounds := make([]time.Time, trendDays+1)
	for i := range bounds {
		bounds[i] = time.Date(y, mo, d-(trendDays-1)+i, 0, 0, 0, 0, loc)
	}
	return bounds
}

func bucketOf(bounds []time.Time, t time.Time) int {
	if t.IsZero() {
		return -1
	}
	for i := 0; i < len(bounds)-1; i++ {
		if !t.Before(bounds[i]) && t.Before(bounds[i+1]) {
			return i
		}
	}
	return -1
}

// ====================== Outreach ======================

type OutreachCampaign struct {
	CampaignID   string `json:"campaignId"`
	CampaignName string `json:"campaignName"`
	Status       string `json:"status"`
	Sent         int    `json:"sent"`
	Delivered    int    `json:"delivered"`
	Opened       int    `json:"opened"`
	Clicked      int    `json:"clicked"`
	Bounced      int    `json:"bounced"`
	Engagements  int    `json:"engagements"`
}

type Outreach struct {
	TotalSent        int                `json:"totalSent"`
	TotalDelivered   int                `json:"totalDelivered"`
	TotalOpened      int                `json:"totalOpened"`
	TotalClicked     int                `json:"totalClicked"`
	TotalBounced     int                `json:"totalBounced"`
	TotalEngagements int                `json:"totalEngagements"`
	ByStatus         map[string]int     `json:"byStatus"`
	PerCampaign      []OutreachCampaign `json:"perCampaign"`
}

// ReduceOutreach sums delivery counts. Campaigns with no email sent and no
// engagement are left out of PerCampaign.
func ReduceOutreach(data []CampaignData) Outreach {
	o := Outreach{ByStatus: map[string]int{}, PerCampaign: []OutreachCampaign{}}
	for _, d := range data {
		o.TotalSent += d.Email.TotalSent
		o.TotalDelivered += d.Email.Delivered
		o.TotalOpened += d.Email.Opened
		o.TotalClicked += d.Email.Clicked
		o.TotalBounced += d.Email.Bounced
		o.TotalEngagements += len(d.Engagements)
		for _, e := range d.Engagements {
			o.ByStatus[e.Status]++
		}

		if d.Email.TotalSent == 0 && len(d.Engagements) == 0 {
			continue
		}
		o.PerCampaign = append(o.PerCampaign, OutreachCampaign{
			CampaignID:   d.Campaign.ID,
			CampaignName: d.Campaign.Name,
			Status:       d.Campaign.Status,
			Sent:         d.Email.TotalSent,
			Delivered:    d.Email.Delivered,
			Opened:       d.Email.Opened,
			Clicked:      d.Email.Clicked,
			Bounced:      d.Email.Bounced,
			Engagements:  len(d.Engagements),
		})
	}
	return o
}

// ====================== Inbox ======================

// AwaitingReply: the creator has answered, the thread moved in the last
// 48 hours, and the brand did not write last.
func AwaitingReply(e model.CreatorEngagement, now time.Time) bool {
	if e.Status == model.EngagementContacted {
		return false
	}
	if e.LastActivity().Before(now.Add(-inboxWindow)) {
		return false
	}
	if last := e.LastMessage(); last != nil && last.From == model.MessageFromBrand {
		return false
	}
	return true
}

func ReduceInboxCount(engagements []model.CreatorEngagement, now time.Time) int {
	n := 0
	for _, e := range engagements {
		if AwaitingReply(e, now) {
			n++
		}
	}
	return n
}

// ====================== Analytics ======================

type EmailStats struct {
	TotalSent    int `json:"totalSent"`
	DeliveryRate int `json:"deliveryRate"`
	OpenRate     int `json:"openRate"`
	ClickRate    int `json:"clickRate"`
}

type AnalyticsCampaign struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Creators   int    `json:"creators"`
	Responded  int    `json:"responded"`
	Agreed     int    `json:"agreed"`
	EmailsSent int    `json:"emailsSent"`
	OpenRate   int    `json:"openRate"`
}

type PlatformStats struct {
	Platform     string `json:"platform"`
	Creators     int    `json:"creators"`
	Responded    int    `json:"responded"`
	Agreed       int    `json:"agreed"`
	Declined     int    `json:"declined"`
	ResponseRate int    `json:"responseRate"`
}

type CampaignBudget struct {
	CampaignID     string  `json:"campaignId"`
	CampaignName   string  `json:"campaignName"`
	Budget         float64 `json:"budget"`
	AgreedFees     float64 `json:"agreedFees"`
	CreatorsAgreed int     `json:"creatorsAgreed"`
}

type BudgetTracking struct {
	TotalBudget       float64          `json:"totalBudget"`
	TotalAgreedFees   float64          `json:"totalAgreedFees"`
	AvgCostPerCreator int              `json:"avgCostPerCreator"`
	PerCampaign       []CampaignBudget `json:"perCampaign"`
}

type Analytics struct {
	TotalCampaigns         int                 `json:"totalCampaigns"`
	ByStatus               map[string]int      `json:"byStatus"`
	TotalCreatorsContacted int                 `json:"totalCreatorsContacted"`
	TotalResponded         int                 `json:"totalResponded"`
	TotalAgreed            int                 `json:"totalAgreed"`
	TotalDeclined          int                 `json:"totalDeclined"`
	ResponseRate           int                 `json:"responseRate"`
	ConversionRate         int                 `json:"conversionRate"`
	EmailStats             EmailStats          `json:"emailStats"`
	PerCampaign            []AnalyticsCampaign `json:"perCampaign"`
	EngagementFunnel       map[string]int      `json:"engagementFunnel"`
	PlatformBreakdown      []PlatformStats     `json:"platformBreakdown"`
	BudgetTracking         BudgetTracking      `json:"budgetTracking"`
}

func ReduceAnalytics(data []CampaignData) Analytics {
	a := Analytics{
		TotalCampaigns:    len(data),
		ByStatus:          map[string]int{},
		PerCampaign:       []AnalyticsCampaign{},
		EngagementFunnel:  map[string]int{},
		PlatformBreakdown: []PlatformStats{},
		BudgetTracking:    BudgetTracking{PerCampaign: []CampaignBudget{}},
	}

	var totalSent, totalDelivered, totalOpened, totalClicked int
	platforms := map[string]*PlatformStats{}

	for _, d := range data {
		c := d.Campaign
		a.ByStatus[c.Status]++

		totalSent += d.Email.TotalSent
		totalDelivered += d.Email.Delivered
		totalOpened += d.Email.Opened
		totalClicked += d.Email.Clicked

		row := AnalyticsCampaign{
			ID:         c.ID,
			Name:       c.Name,
			Status:     c.Status,
			Creators:   len(d.Engagements),
			EmailsSent: d.Email.TotalSent,
			OpenRate:   percent(d.Email.Opened, d.Email.TotalSent),
		}
		var fees float64

		for _, e := range d.Engagements {
			a.EngagementFunnel[e.Status]++

			key := unknownPlatform
			if e.Platform != nil && strings.TrimSpace(*e.Platform) != "" {
				key = strings.ToLower(strings.TrimSpace(*e.Platform))
			}
			p, ok := platforms[key]
			if !ok {
				p = &PlatformStats{Platform: platformLabel(key)}
				platforms[key] = p
			}
			p.Creators++

			if e.HasResponded() {
				row.Responded++
				p.Responded++
			}
			switch e.Status {
			case model.EngagementAgreed:
				row.Agreed++
				p.Agreed++
				if fee, ok := e.FeeGBP(); ok {
					fees += fee
				}
			case model.EngagementDeclined:
				a.TotalDeclined++
				p.Declined++
			}
		}

		a.TotalCreatorsContacted += row.Creators
		a.TotalResponded += row.Responded
		a.TotalAgreed += row.Agreed
		a.PerCampaign = append(a.PerCampaign, row)

		budget := c.BudgetGBP()
		a.BudgetTracking.TotalBudget += budget
		a.BudgetTracking.TotalAgreedFees += fees
		a.BudgetTracking.PerCampaign = append(a.BudgetTracking.PerCampaign, CampaignBudget{
			CampaignID:     c.ID,
			CampaignName:   c.Name,
			Budget:         budget,
			AgreedFees:     fees,
			CreatorsAgreed: row.Agreed,
		})
	}

	a.ResponseRate = percent(a.TotalResponded, a.TotalCreatorsContacted)
	a.ConversionRate = percent(a.TotalAgreed, a.TotalCreatorsContacted)
	a.EmailStats = EmailStats{
		TotalSent:    totalSent,
		DeliveryRate: percent(totalDelivered, totalSent),
		OpenRate:     percent(totalOpened, totalSent),
		ClickRate:    percent(totalClicked, totalSent),
	}
	if a.TotalAgreed > 0 {
		a.BudgetTracking.AvgCostPerCreator = int(math.Round(a.BudgetTracking.TotalAgreedFees / float64(a.TotalAgreed)))
	}

	for _, p := range platforms {
		p.ResponseRate = percent(p.Responded, p.Creators)
		a.PlatformBreakdown = append(a.PlatformBreakdown, *p)
	}
	sort.Slice(a.PlatformBreakdown, func(i, j int) bool {
		pi, pj := a.PlatformBreakdown[i], a.PlatformBreakdown[j]
		if pi.Creators != pj.Creators {
			return pi.Creators > pj.Creators
		}
		return pi.Platform < pj.Platform
	})
	return a
}

// ====================== Negotiations ======================

type NegotiationCampaign struct {
	CampaignID   string                    `json:"campaignId"`
	CampaignName string                    `json:"campaignName"`
	Status       string                    `json:"status"`
	Engagements  []model.CreatorEngagement `json:"engagements"`
}

type Negotiations struct {
	ActiveNegotiations   int                   `json:"activeNegotiations"`
	TotalAgreed          int                   `json:"totalAgreed"`
	TotalDeclined        int                   `json:"totalDeclined"`
	AvgResponseTimeHours int                   `json:"avgResponseTimeHours"`
	Campaigns            []NegotiationCampaign `json:"campaigns"`
}

// ReduceNegotiations keeps engagements past "contacted". A response
// timestamp before created_at is malformed and left out of the average.
func ReduceNegotiations(data []CampaignData) Negotiations {
	n := Negotiations{Campaigns: []NegotiationCampaign{}}
	var sumHours float64
	var samples int

	for _, d := range data {
		var kept []model.CreatorEngagement
		for _, e := range d.Engagements {
			if !e.HasResponded() {
				continue
			}
			kept = append(kept, e)

			switch e.Status {
			case model.EngagementNegotiating:
				n.ActiveNegotiations++
			case model.EngagementAgreed:
				n.TotalAgreed++
			case model.EngagementDeclined:
				n.TotalDeclined++
			}

			if e.ResponseTimestamp == nil || e.CreatedAt.IsZero() {
				continue
			}
			hours := e.ResponseTimestamp.Sub(e.CreatedAt).Hours()
			if hours < 0 {
				continue
			}
			sumHours += hours
			samples++
		}
		if len(kept) == 0 {
			continue
		}
		n.Campaigns = append(n.Campaigns, NegotiationCampaign{
			CampaignID:   d.Campaign.ID,
			CampaignName: d.Campaign.Name,
			Status:       d.Campaign.Status,
			Engagements:  kept,
		})
	}

	if samples > 0 {
		n.AvgResponseTimeHours = int(math.Round(sumHours / float64(samples)))
	}
	return n
}

// ====================== helpers ======================

// percent is round(100*n/d), 0 when d is 0.
func percent(n, d int) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(n) / float64(d)))
}

func platformLabel(key string) string {
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
