package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/hudey-console/internal/handler"
	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/service"
)

// AccountController serves the brand profile, billing and notifications.
type AccountController struct {
	AccountService *service.AccountService
}

var _ handler.AccountRoutes = (*AccountController)(nil)

func (c *AccountController) GetBrand(w http.ResponseWriter, r *http.Request) {
	profile, err := c.AccountService.Brand(r.Context())
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, profile)
}

func (c *AccountController) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	var body model.UpdateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	profile, err := c.AccountService.UpdateBrand(r.Context(), body)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, profile)
}

func (c *AccountController) Billing(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, c.AccountService.Billing(r.Context()))
}

func (c *AccountController) BillingPortal(w http.ResponseWriter, r *http.Request) {
	url, err := c.AccountService.BillingPortal(r.Context())
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, model.PortalSession{URL: url})
}

func (c *AccountController) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, unread := c.AccountService.Notifications(r.Context())
	handler.WriteJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

func (c *AccountController) UnreadCount(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, model.UnreadCount{Count: c.AccountService.UnreadCount(r.Context())})
}

func (c *AccountController) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := c.AccountService.MarkRead(r.Context(), chi.URLParam(r, "id")); err != nil {
		handler.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *AccountController) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := c.AccountService.MarkAllRead(r.Context()); err != nil {
		handler.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
