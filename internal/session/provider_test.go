package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestExpiryOf(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := ExpiryOf(signedToken(t, exp))
	if !ok {
		t.Fatalf("expected exp claim to be found")
	}
	if !got.Equal(exp) {
		t.Errorf("expected %v, got %v", exp, got)
	}

	if _, ok := ExpiryOf("not-a-jwt"); ok {
		t.Errorf("expected garbage token to have no expiry")
	}
}

func TestCachingProviderRefreshAndCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["refresh_token"] != "rt-1" {
			t.Errorf("expected refresh token rt-1, got %q", body["refresh_token"])
		}
		json.NewEncoder(w).Encode(map[string]any{"access_token": "at-1", "expires_in": 3600})
	}))
	defer srv.Close()

	store := NewMemoryStore()
	p := NewCachingProvider(store, &HTTPRefresher{URL: srv.URL, RefreshToken: "rt-1"}, "")

	ctx := context.Background()
	cached, err := p.CachedToken(ctx)
	if err != nil || cached != "" {
		t.Fatalf("expected empty cache, got %q, %v", cached, err)
	}

	tok, err := p.RefreshToken(ctx)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if tok != "at-1" {
		t.Errorf("expected at-1, got %q", tok)
	}

	cached, _ = p.CachedToken(ctx)
	if cached != "at-1" {
		t.Errorf("expected cached at-1, got %q", cached)
	}
	if calls != 1 {
		t.Errorf("expected 1 refresh call, got %d", calls)
	}
}

func TestCachingProviderRefreshFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewCachingProvider(NewMemoryStore(), &HTTPRefresher{URL: srv.URL}, "k")
	if _, err := p.RefreshToken(context.Background()); err == nil {
		t.Fatalf("expected error from 401 refresh")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return now }

	_ = s.Set(context.Background(), "k", "v", time.Minute)
	if v, _ := s.Get(context.Background(), "k"); v != "v" {
		t.Fatalf("expected v, got %q", v)
	}

	now = now.Add(2 * time.Minute)
	if v, _ := s.Get(context.Background(), "k"); v != "" {
		t.Errorf("expected expired entry, got %q", v)
	}
}
