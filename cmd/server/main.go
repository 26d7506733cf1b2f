package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/unclebandit/hudey-console/internal/client"
	"github.com/unclebandit/hudey-console/internal/config"
	"github.com/unclebandit/hudey-console/internal/controller"
	"github.com/unclebandit/hudey-console/internal/db"
	"github.com/unclebandit/hudey-console/internal/handler"
	"github.com/unclebandit/hudey-console/internal/queue"
	"github.com/unclebandit/hudey-console/internal/repository"
	"github.com/unclebandit/hudey-console/internal/service"
	"github.com/unclebandit/hudey-console/internal/session"
)

func main() {
	cfg, err := config.Load(envOr("CONFIG_FILE", "config.yaml"))
	if err != nil {
		log.Fatal("❌ config: ", err)
	}
	if err := cfg.RequireAPI(); err != nil {
		log.Fatal("❌ config: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.New(cfg.APIURL, sessionProvider(cfg), cfg.HTTPTimeout)

	q := queue.NewInMemoryQueue()
	updates := service.NewUpdateCache()
	if err := updates.Subscribe(q); err != nil {
		log.Fatal("❌ subscribe campaign updates: ", err)
	}

	dashboardService := &service.DashboardService{
		Source:   api,
		Location: cfg.Location,
	}
	if cfg.AMQPURL != "" {
		publisher, err := queue.DialPublisher(cfg.AMQPURL)
		if err != nil {
			log.Println("⚠️ snapshot publishing disabled:", err)
		} else {
			defer publisher.Close()
			dashboardService.Snapshots = publisher
		}
	}

	dashboardHandler := &handler.DashboardHandler{Service: dashboardService}
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Println("⚠️ snapshot history disabled:", err)
		} else {
			defer conn.Close()
			dashboardHandler.Snapshots = &repository.SnapshotRepository{DB: conn}
		}
	}

	campaignService := &service.CampaignService{
		Backend: api,
		Poller: &service.CampaignPoller{
			Source:   api,
			Queue:    q,
			Interval: cfg.PollInterval,
		},
		PollCtx: ctx,
	}
	campaignController := &controller.CampaignController{
		CampaignService:   campaignService,
		EngagementService: &service.EngagementService{Backend: api},
		Updates:           updates,
	}
	accountController := &controller.AccountController{
		AccountService: &service.AccountService{Backend: api},
	}
	libraryController := &controller.LibraryController{
		LibraryService:  &service.LibraryService{Backend: api},
		CampaignService: campaignService,
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           handler.NewRouter(dashboardHandler, campaignController, accountController, libraryController),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server running on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ server: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("⚠️ shutdown:", err)
	}
}

// sessionProvider uses the refresh flow when configured, otherwise the
// static HUDEY_API_TOKEN. Tokens are shared through redis when REDIS_URL
// is set.
func sessionProvider(cfg config.Config) session.Provider {
	if cfg.AuthRefreshURL == "" {
		if cfg.APIToken == "" {
			log.Println("⚠️ no HUDEY_API_TOKEN or AUTH_REFRESH_URL, requests go out unauthenticated")
		}
		return session.StaticProvider{Token: cfg.APIToken}
	}

	var store session.TokenStore = session.NewMemoryStore()
	if cfg.RedisURL != "" {
		rdb, err := session.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Println("⚠️ redis unavailable, caching tokens in memory:", err)
		} else {
			store = session.NewRedisStore(rdb)
		}
	}

	refresher := &session.HTTPRefresher{
		URL:          cfg.AuthRefreshURL,
		RefreshToken: cfg.AuthRefreshToken,
		APIKey:       cfg.AuthAPIKey,
		HTTPClient:   &http.Client{Timeout: cfg.HTTPTimeout},
	}
	provider := session.NewCachingProvider(store, refresher, "")
	// A still-valid HUDEY_API_TOKEN saves the first refresh.
	if exp, ok := session.ExpiryOf(cfg.APIToken); ok && time.Until(exp) > 0 {
		if err := store.Set(context.Background(), provider.Key, cfg.APIToken, time.Until(exp)); err != nil {
			log.Println("⚠️ seed token cache:", err)
		}
	}
	return provider
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
