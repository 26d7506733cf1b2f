package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/hudey-console/internal/handler"
	"github.com/unclebandit/hudey-console/internal/model"
	"github.com/unclebandit/hudey-console/internal/service"
)

// LibraryController serves contract templates and campaign templates.
// Starting a campaign from a template goes through CampaignService.
type LibraryController struct {
	LibraryService  *service.LibraryService
	CampaignService *service.CampaignService
}

var _ handler.LibraryRoutes = (*LibraryController)(nil)

func (c *LibraryController) ListContracts(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, c.LibraryService.ContractTemplates(r.Context()))
}

func (c *LibraryController) DefaultClauses(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, c.LibraryService.DefaultClauses(r.Context()))
}

func (c *LibraryController) GetContract(w http.ResponseWriter, r *http.Request) {
	tmpl, err := c.LibraryService.ContractTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, tmpl)
}

func (c *LibraryController) CreateContract(w http.ResponseWriter, r *http.Request) {
	var body model.ContractTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	tmpl, err := c.LibraryService.CreateContractTemplate(r.Context(), body)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, tmpl)
}

func (c *LibraryController) UpdateContract(w http.ResponseWriter, r *http.Request) {
	var body model.ContractTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	tmpl, err := c.LibraryService.UpdateContractTemplate(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, tmpl)
}

func (c *LibraryController) DeleteContract(w http.ResponseWriter, r *http.Request) {
	if err := c.LibraryService.DeleteContractTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		handler.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *LibraryController) ListTemplates(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, c.LibraryService.CampaignTemplates(r.Context()))
}

func (c *LibraryController) GetTemplate(w http.ResponseWriter, r *http.Request) {
	tmpl, err := c.LibraryService.CampaignTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, tmpl)
}

func (c *LibraryController) SaveTemplate(w http.ResponseWriter, r *http.Request) {
	var body model.CampaignTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	id, err := c.LibraryService.SaveCampaignTemplate(r.Context(), body)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, model.CreateCampaignResponse{ID: id})
}

func (c *LibraryController) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := c.LibraryService.DeleteCampaignTemplate(r.Context(), chi.URLParam(r, "id")); err != nil {
		handler.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *LibraryController) CreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	// The body is optional.
	var body model.FromTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		handler.WriteDetail(w, http.StatusBadRequest, "invalid body")
		return
	}

	res, err := c.CampaignService.CreateFromTemplate(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusCreated, res)
}
