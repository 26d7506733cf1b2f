package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// Provider hands out bearer tokens for the Hudey API.
type Provider interface {
	// CachedToken returns the current token without network calls.
	// An empty string means nothing is cached.
	CachedToken(ctx context.Context) (string, error)
	// RefreshToken forces a new token from the auth provider.
	RefreshToken(ctx context.Context) (string, error)
}

// StaticProvider serves a fixed token, e.g. HUDEY_API_TOKEN from the env.
type StaticProvider struct {
	Token string
}

func (p StaticProvider) CachedToken(context.Context) (string, error) {
	return p.Token, nil
}

func (p StaticProvider) RefreshToken(context.Context) (string, error) {
	return p.Token, nil
}

// Refresher exchanges a long-lived credential for an access token.
type Refresher interface {
	Refresh(ctx context.Context) (Token, error)
}

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// CachingProvider keeps the access token in a TokenStore (memory or
// redis) and asks the Refresher for a new one on demand.
type CachingProvider struct {
	Store     TokenStore
	Refresher Refresher
	Key       string
	// DefaultTTL applies when neither the refresher nor the JWT exp claim
	// gives an expiry.
	DefaultTTL time.Duration

	nowFn func() time.Time
	mu    sync.Mutex
}

func NewCachingProvider(store TokenStore, refresher Refresher, key string) *CachingProvider {
	if key == "" {
		key = "hudey:session:access_token"
	}
	return &CachingProvider{
		Store:      store,
		Refresher:  refresher,
		Key:        key,
		DefaultTTL: 50 * time.Minute,
		nowFn:      time.Now,
	}
}

func (p *CachingProvider) CachedToken(ctx context.Context) (string, error) {
	return p.Store.Get(ctx, p.Key)
}

func (p *CachingProvider) RefreshToken(ctx context.Context) (string, error) {
	if p.Refresher == nil {
		return "", errors.New("no refresher configured")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	tok, err := p.Refresher.Refresh(ctx)
	if err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", errors.New("refresh returned empty access token")
	}

	expiresAt := tok.ExpiresAt
	if expiresAt.IsZero() {
		if exp, ok := ExpiryOf(tok.AccessToken); ok {
			expiresAt = exp
		}
	}
	ttl := p.DefaultTTL
	if !expiresAt.IsZero() {
		ttl = expiresAt.Sub(p.now())
	}
	if ttl <= 0 {
		// already expired, hand it out once but don't cache
		return tok.AccessToken, nil
	}

	if err := p.Store.Set(ctx, p.Key, tok.AccessToken, ttl); err != nil {
		log.Println("⚠️ failed to cache session token:", err)
	}
	return tok.AccessToken, nil
}

func (p *CachingProvider) now() time.Time {
	if p.nowFn == nil {
		return time.Now()
	}
	return p.nowFn()
}
