package service

import (
	"context"
	"strings"

	appErrors "github.com/unclebandit/hudey-console/internal/errors"
	"github.com/unclebandit/hudey-console/internal/model"
)

// LibraryBackend holds the reusable documents of a brand: contract
// templates and campaign templates.
type LibraryBackend interface {
	ListContractTemplates(ctx context.Context) []model.ContractTemplate
	GetContractTemplate(ctx context.Context, id string) (*model.ContractTemplate, error)
	DefaultClauses(ctx context.Context) []model.ContractClause
	CreateContractTemplate(ctx context.Context, req model.ContractTemplateRequest) (*model.ContractTemplate, error)
	UpdateContractTemplate(ctx context.Context, id string, req model.ContractTemplateRequest) (*model.ContractTemplate, error)
	DeleteContractTemplate(ctx context.Context, id string) error

	ListCampaignTemplates(ctx context.Context) []model.CampaignTemplate
	GetCampaignTemplate(ctx context.Context, id string) (*model.CampaignTemplate, error)
	CreateCampaignTemplate(ctx context.Context, req model.CampaignTemplateRequest) (string, error)
	DeleteCampaignTemplate(ctx context.Context, id string) error
}

type LibraryService struct {
	Backend LibraryBackend
}

func (s *LibraryService) ContractTemplates(ctx context.Context) []model.ContractTemplate {
	return s.Backend.ListContractTemplates(ctx)
}

func (s *LibraryService) ContractTemplate(ctx context.Context, id string) (*model.ContractTemplate, error) {
	tmpl, err := s.Backend.GetContractTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, appErrors.NewNotFound("contract template", id)
	}
	return tmpl, nil
}

func (s *LibraryService) DefaultClauses(ctx context.Context) []model.ContractClause {
	return s.Backend.DefaultClauses(ctx)
}

func (s *LibraryService) CreateContractTemplate(ctx context.Context, req model.ContractTemplateRequest) (*model.ContractTemplate, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, appErrors.NewValidation("contract template name is required")
	}
	if err := checkClauses(req.Clauses); err != nil {
		return nil, err
	}
	return s.Backend.CreateContractTemplate(ctx, req)
}

func (s *LibraryService) UpdateContractTemplate(ctx context.Context, id string, req model.ContractTemplateRequest) (*model.ContractTemplate, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := checkClauses(req.Clauses); err != nil {
		return nil, err
	}
	return s.Backend.UpdateContractTemplate(ctx, id, req)
}

func checkClauses(clauses []model.ContractClause) error {
	for i, c := range clauses {
		if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Body) == "" {
			return appErrors.NewValidation("clause %d needs a title and a body", i+1)
		}
	}
	return nil
}

func (s *LibraryService) DeleteContractTemplate(ctx context.Context, id string) error {
	return s.Backend.DeleteContractTemplate(ctx, id)
}

func (s *LibraryService) CampaignTemplates(ctx context.Context) []model.CampaignTemplate {
	return s.Backend.ListCampaignTemplates(ctx)
}

func (s *LibraryService) CampaignTemplate(ctx context.Context, id string) (*model.CampaignTemplate, error) {
	tmpl, err := s.Backend.GetCampaignTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	if tmpl == nil {
		return nil, appErrors.NewNotFound("campaign template", id)
	}
	return tmpl, nil
}

// SaveCampaignTemplate needs a name and either a brief object or the id of
// the campaign to copy it from.
func (s *LibraryService) SaveCampaignTemplate(ctx context.Context, req model.CampaignTemplateRequest) (string, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "", appErrors.NewValidation("template name is required")
	}
	if req.CampaignID == "" && !isJSONObject(req.Brief) {
		return "", appErrors.NewValidation("brief is required")
	}
	return s.Backend.CreateCampaignTemplate(ctx, req)
}

func (s *LibraryService) DeleteCampaignTemplate(ctx context.Context, id string) error {
	return s.Backend.DeleteCampaignTemplate(ctx, id)
}

func isJSONObject(raw []byte) bool {
	trimmed := strings.TrimSpace(string(raw))
	return strings.HasPrefix(trimmed, "{") && trimmed != "{}"
}
