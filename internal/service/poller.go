package service

import (
	"context"
	"log"
	"sync"
	"time"

	appErrors "github.com/unclebandit/hudey-console/internal/errors"
	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/queue"
)

type PollSource interface {
	GetCampaign(ctx context.Context, id string) (*model.Campaign, error)
	ListApprovals(ctx context.Context, campaignID string) ([]model.Approval, error)
}

// CampaignUpdate is published on queue.TopicCampaignUpdates after every
// refresh.
type CampaignUpdate struct {
	// Ref is the id polling was started with; it may be a short id.
	Ref       string           `json:"ref"`
	Campaign  model.Campaign   `json:"campaign"`
	Approvals []model.Approval `json:"approvals"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// CampaignPoller refreshes one campaign and its approvals while the
// backend is still working on it.
type CampaignPoller struct {
	Source   PollSource
	Queue    queue.Queue
	Interval time.Duration
}

// Poll blocks until the campaign leaves running/awaiting_approval or ctx
// ends. A failed refresh is logged and retried on the next tick.
func (p *CampaignPoller) Poll(ctx context.Context, campaignID string) error {
	interval := p.Interval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	update, err := p.refresh(ctx, campaignID)
	if err != nil {
		return err
	}
	if !update.Campaign.IsLive() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			update, err := p.refresh(ctx, campaignID)
			if err != nil {
				log.Printf("⚠️ poll campaign %s: %v\n", campaignID, err)
				continue
			}
			if !update.Campaign.IsLive() {
				log.Printf("✅ campaign %s settled as %s, polling stopped\n", campaignID, update.Campaign.Status)
				return nil
			}
		}
	}
}

func (p *CampaignPoller) refresh(ctx context.Context, campaignID string) (*CampaignUpdate, error) {
	campaign, err := p.Source.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, appErrors.NewCampaignNotFound(campaignID)
	}
	approvals, err := p.Source.ListApprovals(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	update := &CampaignUpdate{Ref: campaignID, Campaign: *campaign, Approvals: approvals, FetchedAt: time.Now().UTC()}
	if p.Queue != nil {
		if err := p.Queue.Publish(queue.TopicCampaignUpdates, *update); err != nil {
			log.Printf("⚠️ campaign update for %s not published: %v\n", campaignID, err)
		}
	}
	return update, nil
}

// UpdateCache keeps the newest CampaignUpdate per campaign, fed from the
// campaign_updates topic.
type UpdateCache struct {
	mu     sync.RWMutex
	latest map[string]CampaignUpdate
}

func NewUpdateCache() *UpdateCache {
	return &UpdateCache{latest: map[string]CampaignUpdate{}}
}

func (c *UpdateCache) Subscribe(q queue.Queue) error {
	return q.Subscribe(queue.TopicCampaignUpdates, c.handle)
}

func (c *UpdateCache) handle(payload any) error {
	u, ok := payload.(CampaignUpdate)
	if !ok {
		log.Printf("⚠️ unexpected campaign update payload %T\n", payload)
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range updateKeys(u) {
		if prev, ok := c.latest[key]; ok && prev.FetchedAt.After(u.FetchedAt) {
			continue
		}
		c.latest[key] = u
	}
	return nil
}

// updateKeys lists every id the campaign can be looked up by.
func updateKeys(u CampaignUpdate) []string {
	keys := make([]string, 0, 3)
	add := func(k string) {
		if k == "" {
			return
		}
		for _, seen := range keys {
			if seen == k {
				return
			}
		}
		keys = append(keys, k)
	}
	add(u.Ref)
	add(u.Campaign.ID)
	if u.Campaign.ShortID != nil {
		add(*u.Campaign.ShortID)
	}
	return keys
}

func (c *UpdateCache) Latest(campaignID string) (CampaignUpdate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.latest[campaignID]
	return u, ok
}
