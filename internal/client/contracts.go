package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/unclebandit/hudey-console/internal/model"
)

func (c *Client) ListContractTemplates(ctx context.Context) []model.ContractTemplate {
	templates := []model.ContractTemplate{}
	if !c.soft(ctx, "/api/contracts", "fetch contract templates", &templates) {
		return []model.ContractTemplate{}
	}
	return templates
}

func (c *Client) GetContractTemplate(ctx context.Context, id string) (*model.ContractTemplate, error) {
	var tmpl model.ContractTemplate
	found, err := c.find(ctx, "/api/contracts/"+url.PathEscape(id), "fetch contract template", &tmpl)
	if err != nil || !found {
		return nil, err
	}
	return &tmpl, nil
}

func (c *Client) DefaultClauses(ctx context.Context) []model.ContractClause {
	clauses := []model.ContractClause{}
	if !c.soft(ctx, "/api/contracts/default-clauses", "fetch default clauses", &clauses) {
		return []model.ContractClause{}
	}
	return clauses
}

func (c *Client) CreateContractTemplate(ctx context.Context, req model.ContractTemplateRequest) (*model.ContractTemplate, error) {
	var tmpl model.ContractTemplate
	if err := c.call(ctx, http.MethodPost, "/api/contracts", req, "create contract template", &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (c *Client) UpdateContractTemplate(ctx context.Context, id string, req model.ContractTemplateRequest) (*model.ContractTemplate, error) {
	var tmpl model.ContractTemplate
	if err := c.call(ctx, http.MethodPut, "/api/contracts/"+url.PathEscape(id), req, "update contract template", &tmpl); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (c *Client) DeleteContractTemplate(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, "/api/contracts/"+url.PathEscape(id), nil, "delete contract template", nil)
}
