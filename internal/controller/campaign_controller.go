package controller

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/hudey-console/internal/handler"
	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/service"
)

type CampaignController struct {
	CampaignService   *service.CampaignService
	EngagementService *service.EngagementService
	Updates           *service.UpdateCache
}

var _ handler.CampaignRoutes = (*CampaignController)(nil)

func campaignID(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", 1)
	pageSize := intQuery(r, "page_size", 20)
	status := r.URL.Query().Get("status")

	campaigns, pagination, err := c.CampaignService.ListCampaigns(r.Context(), page, pageSize, status)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]any{
		"data":       campaigns,
		"pagination": pagination,
	})
}

func intQuery(r *http.Request, name string, fallback int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	details, err := c.CampaignService.GetCampaignDetails(r.Context(), campaignID(r))
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, details)
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body model.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	id, err := c.CampaignService.CreateCampaign(r.Context(), body)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, model.CreateCampaignResponse{ID: id})
}

func (c *CampaignController) RunCampaign(w http.ResponseWriter, r *http.Request) {
	id := campaignID(r)
	if err := c.CampaignService.RunCampaign(r.Context(), id); err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusAccepted, map[string]string{
		"campaign_id": id,
		"status":      model.CampaignStatusRunning,
	})
}

func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	id := campaignID(r)
	if err := c.CampaignService.UpdateCampaign(r.Context(), id, fields); err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := c.CampaignService.DeleteCampaign(r.Context(), campaignID(r)); err != nil {
		handler.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LiveStatus returns the newest poll result for a campaign started through
// this server.
func (c *CampaignController) LiveStatus(w http.ResponseWriter, r *http.Request) {
	id := campaignID(r)
	if c.Updates == nil {
		handler.WriteDetail(w, http.StatusNotFound, "no live updates for campaign "+id)
		return
	}
	update, ok := c.Updates.Latest(id)
	if !ok {
		handler.WriteDetail(w, http.StatusNotFound, "no live updates for campaign "+id)
		return
	}
	handler.WriteJSON(w, http.StatusOK, update)
}

func (c *CampaignController) ListApprovals(w http.ResponseWriter, r *http.Request) {
	approvals, err := c.CampaignService.ListApprovals(r.Context(), campaignID(r))
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, approvals)
}

func (c *CampaignController) DecideApproval(w http.ResponseWriter, r *http.Request) {
	var body model.DecideApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := c.CampaignService.DecideApproval(r.Context(), id, body); err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]string{"id": id, "status": body.Status})
}

func (c *CampaignController) Reply(w http.ResponseWriter, r *http.Request) {
	var body model.ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	result, err := c.CampaignService.Reply(r.Context(), campaignID(r), body)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, result)
}

func (c *CampaignController) ListEngagements(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, c.EngagementService.ListEngagements(r.Context(), campaignID(r)))
}

func (c *CampaignController) EmailEvents(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, c.EngagementService.EmailEvents(r.Context(), campaignID(r)))
}

func (c *CampaignController) UpdateEngagementStatus(w http.ResponseWriter, r *http.Request) {
	var body model.UpdateEngagementStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	creatorID := chi.URLParam(r, "creatorId")
	if err := c.EngagementService.UpdateStatus(r.Context(), campaignID(r), creatorID, body); err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]string{"creator_id": creatorID, "status": body.Status})
}

func (c *CampaignController) DraftCounterOffer(w http.ResponseWriter, r *http.Request) {
	var body model.CounterOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	draft, err := c.EngagementService.DraftCounterOffer(r.Context(), campaignID(r), body)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, draft)
}

func (c *CampaignController) SendCounterOffer(w http.ResponseWriter, r *http.Request) {
	var body model.SendCounterOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	if err := c.EngagementService.SendCounterOffer(r.Context(), campaignID(r), body); err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]string{"creator_id": body.CreatorID, "status": "sent"})
}

func (c *CampaignController) AcceptTerms(w http.ResponseWriter, r *http.Request) {
	var body model.AcceptTermsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if body.UserAgent == "" {
		body.UserAgent = r.UserAgent()
	}

	if err := c.EngagementService.AcceptTerms(r.Context(), campaignID(r), body); err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]string{"creator_id": body.CreatorID, "status": model.EngagementAgreed})
}
