package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultTokenURL = "https://test.api.amadeus.com/v1/security/oauth2/token" //nolint:gosec // not a credential
	refreshBuffer   = 5 * time.Minute
	maxTokenBody    = 64 << 10
)

// ErrCredentialsNotConfigured is returned when the client id or secret is
// empty. Callers treat it as fatal for the whole polling run.
var ErrCredentialsNotConfigured = errors.New("amadeus credentials not configured")

// TokenError is a rejected client-credentials exchange.
type TokenError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *TokenError) Error() string {
	msg := fmt.Sprintf("token request failed (status %d)", e.StatusCode)
	if e.Code != "" {
		msg += ": " + e.Code
	}
	if e.Description != "" {
		msg += " - " + e.Description
	}
	return msg
}

type accessToken struct {
	value   string
	expires time.Time
}

// usable reports whether the token is still good for at least refreshBuffer.
func (t accessToken) usable(now time.Time) bool {
	return t.value != "" && now.Before(t.expires.Add(-refreshBuffer))
}

// OAuthTokenProvider exchanges Amadeus API credentials for a bearer token
// and caches it until it is within five minutes of expiry. Token is safe for
// concurrent use; at most one exchange is in flight.
type OAuthTokenProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
	client       *http.Client
	now          func() time.Time

	mu     sync.Mutex
	cached accessToken
}

// OAuthOption configures the OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithTokenURL overrides the default Amadeus token endpoint.
func WithTokenURL(u string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		if u != "" {
			p.tokenURL = u
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.client = c
	}
}

// WithNowFunc overrides the clock used for expiry checks.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.now = f
	}
}

// NewOAuthTokenProvider creates a provider for the given API key and secret.
func NewOAuthTokenProvider(clientID, clientSecret string, opts ...OAuthOption) *OAuthTokenProvider {
	p := &OAuthTokenProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     defaultTokenURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Token returns a cached bearer token or obtains a new one.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached.usable(p.now()) {
		return p.cached.value, nil
	}
	if p.clientID == "" || p.clientSecret == "" {
		return "", ErrCredentialsNotConfigured
	}

	tok, err := p.exchange(ctx)
	if err != nil {
		return "", err
	}
	p.cached = tok
	return tok.value, nil
}

// Invalidate drops the cached token so the next Token call re-authenticates.
func (p *OAuthTokenProvider) Invalidate() {
	p.mu.Lock()
	p.cached = accessToken{}
	p.mu.Unlock()
}

func (p *OAuthTokenProvider) exchange(ctx context.Context) (accessToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return accessToken{}, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return accessToken{}, fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenBody))
	if err != nil {
		return accessToken{}, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		tokErr := &TokenError{StatusCode: resp.StatusCode}
		var payload struct {
			Error       string `json:"error"`
			Description string `json:"error_description"`
		}
		if json.Unmarshal(body, &payload) == nil {
			tokErr.Code = payload.Error
			tokErr.Description = payload.Description
		}
		return accessToken{}, tokErr
	}

	var granted struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &granted); err != nil {
		return accessToken{}, fmt.Errorf("parsing token response: %w", err)
	}
	if granted.AccessToken == "" {
		return accessToken{}, errors.New("token response missing access_token")
	}

	return accessToken{
		value:   granted.AccessToken,
		expires: p.now().Add(time.Duration(granted.ExpiresIn) * time.Second),
	}, nil
}
