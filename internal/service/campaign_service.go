package service

import (
	"context"
	"log"
	"strings"
	"time"

	appErrors "github.com/unclebandit/hudey-console/internal/errors"
	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/pipeline"
)

// CampaignBackend is the part of the API client campaign actions use.
type CampaignBackend interface {
	ListCampaigns(ctx context.Context) ([]model.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*model.Campaign, error)
	CreateCampaign(ctx context.Context, req model.CreateCampaignRequest) (string, error)
	CreateCampaignFromTemplate(ctx context.Context, templateID string, req model.FromTemplateRequest) (string, error)
	UpdateCampaign(ctx context.Context, id string, fields map[string]any) error
	DeleteCampaign(ctx context.Context, id string) error
	RunCampaign(ctx context.Context, id string) error
	ListApprovals(ctx context.Context, campaignID string) ([]model.Approval, error)
	DecideApproval(ctx context.Context, approvalID, status, feedback string) error
	ListEngagements(ctx context.Context, campaignID string) []model.CreatorEngagement
	ReplyToCreator(ctx context.Context, campaignID, creatorID, message string) error
}

type CampaignService struct {
	Backend CampaignBackend
	Poller  *CampaignPoller
	// PollCtx bounds background polling started by RunCampaign.
	PollCtx context.Context
}

type CampaignSummary struct {
	model.Campaign
	Pipeline pipeline.Progress `json:"pipeline"`
}

type CampaignDetails struct {
	model.Campaign
	Pipeline         pipeline.Progress `json:"pipeline"`
	Approvals        []model.Approval  `json:"approvals"`
	PendingApprovals int               `json:"pending_approvals"`
}

type ReplyResult struct {
	CampaignID string `json:"campaign_id"`
	CreatorID  string `json:"creator_id"`
	Message    string `json:"message"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// ListCampaigns pages through the backend list, optionally keeping one
// status. The backend order (newest first) is preserved.
func (s *CampaignService) ListCampaigns(ctx context.Context, page, pageSize int, status string) ([]CampaignSummary, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	campaigns, err := s.Backend.ListCampaigns(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}

	filtered := make([]model.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if status != "" && c.Status != status {
			continue
		}
		filtered = append(filtered, c)
	}

	total := len(filtered)
	pagination := Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []CampaignSummary{}, pagination, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	// List rows carry no agent_state, so the page is re-read one campaign
	// at a time. A failed read keeps the list row.
	rows := filtered[start:end]
	details := SettledMap(ctx, rows, func(ctx context.Context, c model.Campaign) (*model.Campaign, error) {
		return s.Backend.GetCampaign(ctx, c.ID)
	})

	out := make([]CampaignSummary, 0, len(rows))
	for i, c := range rows {
		agentState := c.AgentState
		switch d := details[i]; {
		case !d.OK():
			log.Printf("⚠️ pipeline for campaign %s unavailable: %v\n", c.ID, d.Err)
		case d.Value != nil:
			agentState = d.Value.AgentState
		}
		out = append(out, CampaignSummary{Campaign: c, Pipeline: pipeline.ProgressOf(agentState)})
	}
	return out, pagination, nil
}

func (s *CampaignService) GetCampaignDetails(ctx context.Context, id string) (*CampaignDetails, error) {
	campaign, err := s.Backend.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, appErrors.NewCampaignNotFound(id)
	}

	approvals, err := s.Backend.ListApprovals(ctx, id)
	if err != nil {
		log.Printf("⚠️ approvals for campaign %s unavailable: %v\n", id, err)
		approvals = []model.Approval{}
	}

	details := &CampaignDetails{
		Campaign:  *campaign,
		Pipeline:  pipeline.ProgressOf(campaign.AgentState),
		Approvals: approvals,
	}
	for _, a := range approvals {
		if a.Status == model.ApprovalStatusPending {
			details.PendingApprovals++
		}
	}
	return details, nil
}

func (s *CampaignService) CreateCampaign(ctx context.Context, req model.CreateCampaignRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" && len(req.Brief) == 0 {
		return "", appErrors.NewValidation("a campaign needs a name or a brief")
	}
	return s.Backend.CreateCampaign(ctx, req)
}

// CreateFromTemplate starts a draft from a saved campaign template. The
// backend merges brief_overrides into the template's brief.
func (s *CampaignService) CreateFromTemplate(ctx context.Context, templateID string, req model.FromTemplateRequest) (*model.FromTemplateResponse, error) {
	if strings.TrimSpace(templateID) == "" {
		return nil, appErrors.NewValidation("template id is required")
	}
	req.Name = strings.TrimSpace(req.Name)
	id, err := s.Backend.CreateCampaignFromTemplate(ctx, templateID, req)
	if err != nil {
		return nil, err
	}
	return &model.FromTemplateResponse{ID: id, TemplateID: templateID}, nil
}

// UpdateCampaign forwards a partial update. At least one field is needed.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return appErrors.NewValidation("no fields to update")
	}
	return s.Backend.UpdateCampaign(ctx, id, fields)
}

func (s *CampaignService) DeleteCampaign(ctx context.Context, id string) error {
	return s.Backend.DeleteCampaign(ctx, id)
}

// RunCampaign starts a draft and, when a poller is configured, follows it
// in the background until it settles.
func (s *CampaignService) RunCampaign(ctx context.Context, id string) error {
	if err := s.Backend.RunCampaign(ctx, id); err != nil {
		return err
	}
	s.WatchCampaign(id)
	return nil
}

func (s *CampaignService) WatchCampaign(id string) {
	if s.Poller == nil {
		return
	}
	ctx := s.PollCtx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 6*time.Hour)
	go func() {
		defer cancel()
		if err := s.Poller.Poll(ctx, id); err != nil && ctx.Err() == nil {
			log.Printf("⚠️ polling campaign %s stopped: %v\n", id, err)
		}
	}()
}

func (s *CampaignService) ListApprovals(ctx context.Context, campaignID string) ([]model.Approval, error) {
	return s.Backend.ListApprovals(ctx, campaignID)
}

func (s *CampaignService) DecideApproval(ctx context.Context, approvalID string, req model.DecideApprovalRequest) error {
	if req.Status != model.ApprovalStatusApproved && req.Status != model.ApprovalStatusRejected {
		return appErrors.NewValidation("status must be %q or %q", model.ApprovalStatusApproved, model.ApprovalStatusRejected)
	}
	return s.Backend.DecideApproval(ctx, approvalID, req.Status, req.Feedback)
}

// Reply renders {creator_name}/{campaign_name}/{platform} in message and
// sends it to the creator.
func (s *CampaignService) Reply(ctx context.Context, campaignID string, req model.ReplyRequest) (*ReplyResult, error) {
	if strings.TrimSpace(req.CreatorID) == "" {
		return nil, appErrors.NewValidation("creator_id is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, appErrors.NewValidation("message cannot be empty")
	}

	message := req.Message
	if strings.Contains(message, "{") {
		campaign, err := s.Backend.GetCampaign(ctx, campaignID)
		if err != nil {
			return nil, err
		}
		if campaign == nil {
			return nil, appErrors.NewCampaignNotFound(campaignID)
		}
		var engagement *model.CreatorEngagement
		for _, e := range s.Backend.ListEngagements(ctx, campaignID) {
			if e.CreatorID == req.CreatorID {
				e := e
				engagement = &e
				break
			}
		}
		message = RenderTemplate(message, ReplyData(campaign, engagement))
	}

	if err := s.Backend.ReplyToCreator(ctx, campaignID, req.CreatorID, message); err != nil {
		return nil, err
	}
	return &ReplyResult{CampaignID: campaignID, CreatorID: req.CreatorID, Message: message}, nil
}
