package service_test

import (
	"context"
	"encoding/json"
	"testing"

	appErrors "github.com/unclebandit/hudey-console/internal/errors"
	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/service"
)

type MockLibraryBackend struct {
	contracts map[string]*model.ContractTemplate
	templates map[string]*model.CampaignTemplate
	saved     []model.CampaignTemplateRequest
	created   []model.ContractTemplateRequest
	deleted   []string
}

func (m *MockLibraryBackend) ListContractTemplates(context.Context) []model.ContractTemplate {
	return []model.ContractTemplate{}
}

func (m *MockLibraryBackend) GetContractTemplate(_ context.Context, id string) (*model.ContractTemplate, error) {
	return m.contracts[id], nil
}

func (m *MockLibraryBackend) DefaultClauses(context.Context) []model.ContractClause {
	return []model.ContractClause{{Title: "Usage rights", Body: "30 days", Required: true}}
}

func (m *MockLibraryBackend) CreateContractTemplate(_ context.Context, req model.ContractTemplateRequest) (*model.ContractTemplate, error) {
	m.created = append(m.created, req)
	return &model.ContractTemplate{ID: "ct-new", Name: req.Name, Clauses: req.Clauses}, nil
}

func (m *MockLibraryBackend) UpdateContractTemplate(_ context.Context, id string, req model.ContractTemplateRequest) (*model.ContractTemplate, error) {
	return &model.ContractTemplate{ID: id, Name: req.Name}, nil
}

func (m *MockLibraryBackend) DeleteContractTemplate(_ context.Context, id string) error {
	m.deleted = append(m.deleted, "contract:"+id)
	return nil
}

func (m *MockLibraryBackend) ListCampaignTemplates(context.Context) []model.CampaignTemplate {
	return []model.CampaignTemplate{{ID: "t1", Name: "Launch"}}
}

func (m *MockLibraryBackend) GetCampaignTemplate(_ context.Context, id string) (*model.CampaignTemplate, error) {
	return m.templates[id], nil
}

func (m *MockLibraryBackend) CreateCampaignTemplate(_ context.Context, req model.CampaignTemplateRequest) (string, error) {
	m.saved = append(m.saved, req)
	return "t-new", nil
}

func (m *MockLibraryBackend) DeleteCampaignTemplate(_ context.Context, id string) error {
	m.deleted = append(m.deleted, "template:"+id)
	return nil
}

func TestContractTemplateNotFound(t *testing.T) {
	svc := &service.LibraryService{Backend: &MockLibraryBackend{}}

	_, err := svc.ContractTemplate(context.Background(), "ct-9")
	if appErrors.StatusOf(err) != 404 || err.Error() != "contract template with ID ct-9 not found" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestCreateContractTemplateValidation(t *testing.T) {
	backend := &MockLibraryBackend{}
	svc := &service.LibraryService{Backend: backend}
	ctx := context.Background()

	if _, err := svc.CreateContractTemplate(ctx, model.ContractTemplateRequest{Name: " "}); appErrors.StatusOf(err) != 400 {
		t.Errorf("expected 400 without a name, got %v", err)
	}
	bad := model.ContractTemplateRequest{Name: "Standard", Clauses: []model.ContractClause{{Title: "Fees"}}}
	if _, err := svc.CreateContractTemplate(ctx, bad); appErrors.StatusOf(err) != 400 {
		t.Errorf("expected 400 for clause without body, got %v", err)
	}
	if len(backend.created) != 0 {
		t.Fatalf("invalid templates must not reach the backend")
	}

	tmpl, err := svc.CreateContractTemplate(ctx, model.ContractTemplateRequest{Name: "Standard", Clauses: svc.DefaultClauses(ctx)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl.ID != "ct-new" || len(tmpl.Clauses) != 1 {
		t.Errorf("unexpected template %+v", tmpl)
	}
}

func TestSaveCampaignTemplate(t *testing.T) {
	backend := &MockLibraryBackend{}
	svc := &service.LibraryService{Backend: backend}
	ctx := context.Background()

	cases := []struct {
		name    string
		req     model.CampaignTemplateRequest
		wantErr bool
	}{
		{"no name", model.CampaignTemplateRequest{Brief: json.RawMessage(`{"goal":"awareness"}`)}, true},
		{"no brief", model.CampaignTemplateRequest{Name: "Launch"}, true},
		{"empty brief", model.CampaignTemplateRequest{Name: "Launch", Brief: json.RawMessage(`{}`)}, true},
		{"brief", model.CampaignTemplateRequest{Name: "Launch", Brief: json.RawMessage(`{"goal":"awareness"}`)}, false},
		{"from campaign", model.CampaignTemplateRequest{Name: "Copy", CampaignID: "c1"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := svc.SaveCampaignTemplate(ctx, tc.req)
			if tc.wantErr {
				if appErrors.StatusOf(err) != 400 {
					t.Errorf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil || id != "t-new" {
				t.Errorf("expected t-new, got %q (%v)", id, err)
			}
		})
	}
	if len(backend.saved) != 2 {
		t.Errorf("expected 2 saved templates, got %d", len(backend.saved))
	}
}

func TestCampaignTemplateLookup(t *testing.T) {
	backend := &MockLibraryBackend{templates: map[string]*model.CampaignTemplate{"t1": {ID: "t1", Name: "Launch"}}}
	svc := &service.LibraryService{Backend: backend}
	ctx := context.Background()

	if tmpl, err := svc.CampaignTemplate(ctx, "t1"); err != nil || tmpl.Name != "Launch" {
		t.Errorf("unexpected template %+v (%v)", tmpl, err)
	}
	if _, err := svc.CampaignTemplate(ctx, "t2"); appErrors.StatusOf(err) != 404 {
		t.Errorf("expected 404, got %v", err)
	}
	_ = svc.DeleteCampaignTemplate(ctx, "t1")
	_ = svc.DeleteContractTemplate(ctx, "ct-1")
	if len(backend.deleted) != 2 || backend.deleted[0] != "template:t1" || backend.deleted[1] != "contract:ct-1" {
		t.Errorf("unexpected deletes %v", backend.deleted)
	}
}
