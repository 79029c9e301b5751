package auth

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"engdata-admin/internal/common/database"
	"engdata-admin/internal/common/errors"
	"engdata-admin/internal/common/logger"
)

// expiryMargin is subtracted from the advertised token lifetime.
const expiryMargin = 30 * time.Second

// Cache stores tokens so that replicas share one token per lifetime.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

// TokenProvider fetches client-credentials tokens for the engineering data
// service. Tokens are held in memory and, when a Cache is set, in Redis.
type TokenProvider struct {
	tokenURL     string
	clientID     string
	clientSecret string
	cacheKey     string
	staticToken  string

	httpClient *http.Client
	cache      Cache
	logger     logger.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

type ProviderOptions struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	CacheKey     string
	// StaticToken is returned as-is when TokenURL is empty.
	StaticToken string
	Cache       Cache
	HTTPClient  *http.Client
	Logger      logger.Logger
}

func NewTokenProvider(opts ProviderOptions) *TokenProvider {
	p := &TokenProvider{
		tokenURL:     strings.TrimSpace(opts.TokenURL),
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		cacheKey:     opts.CacheKey,
		staticToken:  opts.StaticToken,
		httpClient:   opts.HTTPClient,
		cache:        opts.Cache,
		logger:       opts.Logger,
	}
	if p.httpClient == nil {
		p.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if p.logger == nil {
		p.logger = logger.NewNoOpLogger()
	}
	if p.cacheKey == "" {
		p.cacheKey = "engdata:downstream:token"
	}
	return p
}

// Token implements downstream.TokenSource.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	if p.tokenURL == "" {
		return p.staticToken, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.accessToken != "" && p.tokenExpiry.After(time.Now()) {
		return p.accessToken, nil
	}

	if token, ttl, ok := p.fromCache(ctx); ok {
		p.accessToken = token
		p.tokenExpiry = time.Now().Add(ttl)
		return token, nil
	}

	tokenResp, err := p.fetch(ctx)
	if err != nil {
		return "", errors.NewAuthTokenError(err)
	}

	ttl := time.Duration(tokenResp.ExpiresIn)*time.Second - expiryMargin
	if ttl <= 0 {
		ttl = time.Duration(tokenResp.ExpiresIn) * time.Second
	}
	p.accessToken = tokenResp.AccessToken
	p.tokenExpiry = time.Now().Add(ttl)

	if p.cache != nil && ttl > 0 {
		if err := p.cache.Set(ctx, p.cacheKey, tokenResp.AccessToken, ttl); err != nil {
			p.logger.WithError(err).Warn("Failed to cache access token", map[string]interface{}{
				"cacheKey": p.cacheKey,
			})
		}
	}

	return p.accessToken, nil
}

// fromCache returns a shared token. The remaining TTL is not stored alongside
// the token, so the local copy is kept for at most one expiry margin.
func (p *TokenProvider) fromCache(ctx context.Context) (string, time.Duration, bool) {
	if p.cache == nil {
		return "", 0, false
	}
	token, err := p.cache.Get(ctx, p.cacheKey)
	if err != nil {
		if !stderrors.Is(err, database.ErrCacheMiss) {
			p.logger.Warn("Token cache lookup failed", map[string]interface{}{
				"cacheKey": p.cacheKey,
				"error":    err.Error(),
			})
		}
		return "", 0, false
	}
	if token == "" {
		return "", 0, false
	}
	return token, expiryMargin, true
}

func (p *TokenProvider) fetch(ctx context.Context) (*TokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", p.clientID)
	data.Set("client_secret", p.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("token request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token response did not include access_token")
	}

	p.logger.Debug("Fetched access token", map[string]interface{}{
		"expiresIn": tokenResp.ExpiresIn,
	})
	return &tokenResp, nil
}
