package client

import (
	"context"
	"net/http"

	"github.com/unclebandit/hudey-console/internal/model"
)

func (c *Client) GetBrand(ctx context.Context) (*model.Brand, error) {
	var brand model.Brand
	found, err := c.find(ctx, "/api/brands/me", "fetch brand", &brand)
	if err != nil || !found {
		return nil, err
	}
	return &brand, nil
}

func (c *Client) UpdateBrand(ctx context.Context, req model.UpdateBrandRequest) (*model.Brand, error) {
	var brand model.Brand
	if err := c.call(ctx, http.MethodPut, "/api/brands/me", req, "update brand", &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// GetBilling degrades to a zeroed summary.
func (c *Client) GetBilling(ctx context.Context) model.BillingData {
	billing := model.EmptyBilling()
	if !c.soft(ctx, "/api/brands/billing", "fetch billing", &billing) {
		return model.EmptyBilling()
	}
	if billing.Transactions == nil {
		billing.Transactions = []model.Transaction{}
	}
	return billing
}

func (c *Client) CreateBillingPortal(ctx context.Context) (string, error) {
	var out model.PortalSession
	if err := c.call(ctx, http.MethodPost, "/api/brands/billing/portal", nil, "open billing portal", &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
