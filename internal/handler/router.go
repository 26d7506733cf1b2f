package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CampaignRoutes is implemented by controller.CampaignController.
type CampaignRoutes interface {
	ListCampaigns(w http.ResponseWriter, r *http.Request)
	GetCampaign(w http.ResponseWriter, r *http.Request)
	CreateCampaign(w http.ResponseWriter, r *http.Request)
	RunCampaign(w http.ResponseWriter, r *http.Request)
	DeleteCampaign(w http.ResponseWriter, r *http.Request)
	LiveStatus(w http.ResponseWriter, r *http.Request)
	ListApprovals(w http.ResponseWriter, r *http.Request)
	DecideApproval(w http.ResponseWriter, r *http.Request)
	Reply(w http.ResponseWriter, r *http.Request)
	UpdateCampaign(w http.ResponseWriter, r *http.Request)
	ListEngagements(w http.ResponseWriter, r *http.Request)
	EmailEvents(w http.ResponseWriter, r *http.Request)
	UpdateEngagementStatus(w http.ResponseWriter, r *http.Request)
	DraftCounterOffer(w http.ResponseWriter, r *http.Request)
	SendCounterOffer(w http.ResponseWriter, r *http.Request)
	AcceptTerms(w http.ResponseWriter, r *http.Request)
}

// AccountRoutes is implemented by controller.AccountController.
type AccountRoutes interface {
	GetBrand(w http.ResponseWriter, r *http.Request)
	UpdateBrand(w http.ResponseWriter, r *http.Request)
	Billing(w http.ResponseWriter, r *http.Request)
	BillingPortal(w http.ResponseWriter, r *http.Request)
	Notifications(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
}

// LibraryRoutes is implemented by controller.LibraryController.
type LibraryRoutes interface {
	ListContracts(w http.ResponseWriter, r *http.Request)
	DefaultClauses(w http.ResponseWriter, r *http.Request)
	GetContract(w http.ResponseWriter, r *http.Request)
	CreateContract(w http.ResponseWriter, r *http.Request)
	UpdateContract(w http.ResponseWriter, r *http.Request)
	DeleteContract(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	GetTemplate(w http.ResponseWriter, r *http.Request)
	SaveTemplate(w http.ResponseWriter, r *http.Request)
	DeleteTemplate(w http.ResponseWriter, r *http.Request)
	CreateFromTemplate(w http.ResponseWriter, r *http.Request)
}

// NewRouter registers the dashboard routes and whichever of campaigns,
// account and library are non-nil.
func NewRouter(dashboard *DashboardHandler, campaigns CampaignRoutes, account AccountRoutes, library LibraryRoutes) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/metrics", dashboard.Metrics)
		r.Get("/outreach", dashboard.Outreach)
		r.Get("/inbox-count", dashboard.InboxCount)
		r.Get("/analytics", dashboard.Analytics)
		r.Get("/negotiations", dashboard.Negotiations)
		r.Get("/snapshots/{kind}", dashboard.SnapshotHistory)
	})

	if campaigns != nil {
		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", campaigns.ListCampaigns)
			r.Post("/", campaigns.CreateCampaign)
			r.Get("/{id}", campaigns.GetCampaign)
			r.Put("/{id}", campaigns.UpdateCampaign)
			r.Delete("/{id}", campaigns.DeleteCampaign)
			r.Post("/{id}/run", campaigns.RunCampaign)
			r.Get("/{id}/live", campaigns.LiveStatus)
			r.Get("/{id}/approvals", campaigns.ListApprovals)
			r.Post("/{id}/reply", campaigns.Reply)
			r.Get("/{id}/engagements", campaigns.ListEngagements)
			r.Patch("/{id}/engagements/{creatorId}/status", campaigns.UpdateEngagementStatus)
			r.Get("/{id}/email-events", campaigns.EmailEvents)
			r.Post("/{id}/negotiate", campaigns.DraftCounterOffer)
			r.Post("/{id}/send-counter-offer", campaigns.SendCounterOffer)
			r.Post("/{id}/accept-terms", campaigns.AcceptTerms)
		})
		r.Put("/approvals/{id}", campaigns.DecideApproval)
	}

	if account != nil {
		r.Get("/brand", account.GetBrand)
		r.Put("/brand", account.UpdateBrand)
		r.Get("/billing", account.Billing)
		r.Post("/billing/portal", account.BillingPortal)
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", account.Notifications)
			r.Get("/unread-count", account.UnreadCount)
			r.Put("/read-all", account.MarkAllRead)
			r.Put("/{id}/read", account.MarkRead)
		})
	}

	if library != nil {
		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", library.ListContracts)
			r.Post("/", library.CreateContract)
			r.Get("/default-clauses", library.DefaultClauses)
			r.Get("/{id}", library.GetContract)
			r.Put("/{id}", library.UpdateContract)
			r.Delete("/{id}", library.DeleteContract)
		})
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", library.ListTemplates)
			r.Post("/", library.SaveTemplate)
			r.Get("/{id}", library.GetTemplate)
			r.Delete("/{id}", library.DeleteTemplate)
			r.Post("/{id}/create-campaign", library.CreateFromTemplate)
		})
	}

	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("📥 %s %s %d %s [%s]\n", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), w.Header().Get("X-Request-Id"))
	})
}
