package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/hudey-console/internal/model"
)

// DashboardSource is the slice of the API client the aggregates read from.
type DashboardSource interface {
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)
	FetchEngagements(ctx context.Context, campaignID string) ([]model.CreatorEngagement, error)
	FetchEmailEvents(ctx context.Context, campaignID string) (model.EmailDeliverySummary, error)
	ListPendingApprovals(ctx context.Context) []model.Approval
	GetCampaign(ctx context.Context, id string) (*model.Campaign, error)
}

// SnapshotPublisher receives a copy of every computed aggregate.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, s model.Snapshot) error
}

type DashboardService struct {
	Source    DashboardSource
	Snapshots SnapshotPublisher
	Location  *time.Location
	Now       func() time.Time
}

func (s *DashboardService) now() time.Time {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	if s.Location != nil {
		now = now.In(s.Location)
	}
	return now
}

// campaigns never fails; a listing error yields no campaigns.
func (s *DashboardService) campaigns(ctx context.Context) []model.Campaign {
	campaigns, err := s.Source.ListCampaigns(ctx)
	if err != nil {
		log.Println("⚠️ list campaigns failed, aggregating nothing:", err)
		return nil
	}
	return campaigns
}

// engagements flattens the engagements of every campaign whose fetch
// succeeded.
func (s *DashboardService) engagements(ctx context.Context, campaigns []model.Campaign) []model.CreatorEngagement {
	results := SettledMap(ctx, campaigns, func(ctx context.Context, c model.Campaign) ([]model.CreatorEngagement, error) {
		return s.Source.FetchEngagements(ctx, c.ID)
	})

	all := []model.CreatorEngagement{}
	for i, r := range results {
		if !r.OK() {
			log.Printf("⚠️ engagements for campaign %s skipped: %v\n", campaigns[i].ID, r.Err)
			continue
		}
		all = append(all, r.Value...)
	}
	return all
}

// campaignData fetches email events and engagements for every campaign.
// With detail set it also re-reads each campaign, since list rows carry no
// brief; a failed detail read leaves the list row in place.
func (s *DashboardService) campaignData(ctx context.Context, campaigns []model.Campaign, detail bool) []CampaignData {
	results := SettledMap(ctx, campaigns, func(ctx context.Context, c model.Campaign) (CampaignData, error) {
		d := CampaignData{Campaign: c, Email: model.EmptyDeliverySummary()}
		var emailErr, engErr, detailErr error
		wg := sync.WaitGroup{}
		wg.Add(2)
		go func() {
			defer wg.Done()
			var summary model.EmailDeliverySummary
			if summary, emailErr = s.Source.FetchEmailEvents(ctx, c.ID); emailErr == nil {
				d.Email = summary
			}
		}()
		go func() {
			defer wg.Done()
			d.Engagements, engErr = s.Source.FetchEngagements(ctx, c.ID)
		}()
		if detail {
			wg.Add(1)
			go func() {
				defer wg.Done()
				var full *model.Campaign
				if full, detailErr = s.Source.GetCampaign(ctx, c.ID); detailErr == nil && full != nil {
					d.Campaign = *full
				}
			}()
		}
		wg.Wait()

		if emailErr != nil {
			log.Printf("⚠️ email events for campaign %s skipped: %v\n", c.ID, emailErr)
		}
		if engErr != nil {
			log.Printf("⚠️ engagements for campaign %s skipped: %v\n", c.ID, engErr)
			d.Engagements = nil
		}
		if detailErr != nil {
			log.Printf("⚠️ detail for campaign %s skipped, budget counts as 0: %v\n", c.ID, detailErr)
		}
		return d, nil
	})

	data := make([]CampaignData, len(campaigns))
	for i, r := range results {
		data[i] = r.Value
	}
	return data
}

func (s *DashboardService) AggregateMetrics(ctx context.Context) Metrics {
	campaigns := s.campaigns(ctx)

	var engagements []model.CreatorEngagement
	var pending []model.Approval
	done := make(chan struct{})
	go func() {
		defer close(done)
		pending = s.Source.ListPendingApprovals(ctx)
	}()
	engagements = s.engagements(ctx, campaigns)
	<-done

	m := ReduceMetrics(campaigns, engagements, len(pending), s.now())
	s.record(ctx, model.SnapshotMetrics, m)
	return m
}

func (s *DashboardService) AggregateOutreach(ctx context.Context) Outreach {
	o := ReduceOutreach(s.campaignData(ctx, s.campaigns(ctx), false))
	s.record(ctx, model.SnapshotOutreach, o)
	return o
}

func (s *DashboardService) OutreachInboxCount(ctx context.Context) int {
	return ReduceInboxCount(s.engagements(ctx, s.campaigns(ctx)), s.now())
}

func (s *DashboardService) AggregateAnalytics(ctx context.Context) Analytics {
	a := ReduceAnalytics(s.campaignData(ctx, s.campaigns(ctx), true))
	s.record(ctx, model.SnapshotAnalytics, a)
	return a
}

// AggregateNegotiations only needs engagements, so email events are not
// fetched.
func (s *DashboardService) AggregateNegotiations(ctx context.Context) Negotiations {
	campaigns := s.campaigns(ctx)
	results := SettledMap(ctx, campaigns, func(ctx context.Context, c model.Campaign) ([]model.CreatorEngagement, error) {
		return s.Source.FetchEngagements(ctx, c.ID)
	})

	data := make([]CampaignData, 0, len(campaigns))
	for i, r := range results {
		if !r.OK() {
			log.Printf("⚠️ engagements for campaign %s skipped: %v\n", campaigns[i].ID, r.Err)
			continue
		}
		data = append(data, CampaignData{Campaign: campaigns[i], Engagements: r.Value})
	}

	n := ReduceNegotiations(data)
	s.record(ctx, model.SnapshotNegotiations, n)
	return n
}

// record hands the aggregate to the snapshot publisher. Failures are
// logged; the dashboard response is never held back by history.
func (s *DashboardService) record(ctx context.Context, kind string, v any) {
	if s.Snapshots == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		log.Println("⚠️ snapshot encode failed:", err)
		return
	}
	snap := model.Snapshot{
		ID:        uuid.NewString(),
		Kind:      kind,
		Payload:   payload,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Snapshots.PublishSnapshot(ctx, snap); err != nil {
		log.Printf("⚠️ snapshot %s not published: %v\n", kind, err)
	}
}
