package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/unclebandit/hudey-console/internal/model"
)

func (c *Client) ListApprovals(ctx context.Context, campaignID string) ([]model.Approval, error) {
	approvals := []model.Approval{}
	if err := c.call(ctx, http.MethodGet, campaignPath(campaignID)+"/approvals", nil, "fetch approvals", &approvals); err != nil {
		return nil, err
	}
	return approvals, nil
}

// ListPendingApprovals spans every campaign of the brand. Degrades to an
// empty list.
func (c *Client) ListPendingApprovals(ctx context.Context) []model.Approval {
	approvals := []model.Approval{}
	if !c.soft(ctx, "/api/approvals/pending", "fetch pending approvals", &approvals) {
		return []model.Approval{}
	}
	return approvals
}

// DecideApproval approves or rejects. The backend rejects anything but
// pending -> approved|rejected.
func (c *Client) DecideApproval(ctx context.Context, approvalID, status, feedback string) error {
	body := model.DecideApprovalRequest{Status: status, Feedback: feedback}
	return c.call(ctx, http.MethodPut, "/api/approvals/"+url.PathEscape(approvalID), body, "decide approval", nil)
}
