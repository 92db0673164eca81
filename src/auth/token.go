package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenPath      = "/oauth/token"
	defaultTimeout = 30 * time.Second

	// refreshSkew is how long before expiry a cached token is considered stale.
	refreshSkew = 60 * time.Second
)

// ErrNoCredentials indicates the client ID or secret is missing.
var ErrNoCredentials = errors.New("client credentials are required")

// Config holds configuration for the token source.
type Config struct {
	AuthURL      string        // Base URL of the OAuth2 server
	ClientID     string        // Client ID for the credentials exchange
	ClientSecret string        // Client secret for the credentials exchange
	Timeout      time.Duration // HTTP timeout for the token request
	Logger       *slog.Logger  // Logger for debugging
}

// tokenResponse is the wire shape of a successful token exchange.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenSource obtains bearer tokens via the OAuth2 client-credentials grant
// and caches them until shortly before expiry. It is safe for concurrent use.
type TokenSource struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenSource creates a token source for the given credentials.
func NewTokenSource(config Config) (*TokenSource, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, ErrNoCredentials
	}
	if config.AuthURL == "" {
		return nil, errors.New("auth URL is required")
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "token_source")

	return &TokenSource{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}, nil
}

// Token returns a valid bearer token, fetching a fresh one when the cached
// token is missing or about to expire.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.token != "" && time.Now().Before(ts.expiresAt.Add(-refreshSkew)) {
		return ts.token, nil
	}

	token, expiresAt, err := ts.fetch(ctx)
	if err != nil {
		return "", err
	}

	ts.token = token
	ts.expiresAt = expiresAt
	return token, nil
}

// Invalidate drops the cached token so the next call fetches a fresh one.
func (ts *TokenSource) Invalidate() {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.token = ""
	ts.expiresAt = time.Time{}
}

// fetch performs the client-credentials exchange.
func (ts *TokenSource) fetch(ctx context.Context) (string, time.Time, error) {
	ts.logger.Debug("fetching bearer token")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	endpoint := strings.TrimSuffix(ts.config.AuthURL, "/") + tokenPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(ts.config.ClientID, ts.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		ts.logger.Error("token endpoint returned error", "status_code", resp.StatusCode)
		return "", time.Time{}, fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to decode token response: %w", err)
	}
	if result.AccessToken == "" {
		return "", time.Time{}, errors.New("token endpoint returned an empty token")
	}

	expiresAt := time.Now().Add(time.Duration(result.ExpiresIn) * time.Second)

	// The JWT exp claim wins when it is earlier than expires_in suggests.
	// The token is not verified here; the gateway is the verifier.
	if claimExp, ok := tokenExpiry(result.AccessToken); ok && claimExp.Before(expiresAt) {
		expiresAt = claimExp
	}

	ts.logger.Info("obtained bearer token", "expires_at", expiresAt)
	return result.AccessToken, expiresAt, nil
}

// tokenExpiry extracts the exp claim from a JWT without verifying it.
func tokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
