package googleauth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/workspacekit/workspace-mcp/internal/logging"
)

// RefreshRecorder receives the outcome of background token refreshes.
// *instrumentation.Metrics satisfies it; the indirection keeps this
// package free of a telemetry dependency.
type RefreshRecorder interface {
	RecordOAuthTokenRefresh(ctx context.Context, result string)
}

// Result labels passed to the RefreshRecorder.
const (
	refreshSuccess = "success"
	refreshFailure = "failure"
)

// Authenticator is the process-wide handle for Google API authorization.
// It owns the shared token source and persists every token the source
// mints through the Store. Construct one per process and inject it
// wherever Google clients are built.
type Authenticator struct {
	oauth *oauth2.Config
	store *Store

	// ctx outlives individual tool calls; token refreshes triggered
	// during short-lived request contexts must not be bound to them.
	ctx context.Context

	mu       sync.Mutex
	outer    oauth2.TokenSource
	inner    oauth2.TokenSource
	last     *oauth2.Token
	recorder RefreshRecorder
}

// NewAuthenticator creates an Authenticator for the given configuration.
// ctx is the long-lived process context used for token refresh requests.
func NewAuthenticator(ctx context.Context, cfg *Config) *Authenticator {
	return &Authenticator{
		oauth: cfg.OAuthConfig(),
		store: NewStore(cfg.TokenPath),
		ctx:   ctx,
	}
}

// TokenSource returns the shared token source. Every call returns the
// same value; the refreshing source behind it is built lazily from the
// cache file on first token request.
func (a *Authenticator) TokenSource() oauth2.TokenSource {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.outer == nil {
		a.outer = &persistingSource{auth: a}
	}
	return a.outer
}

// persistingSource defers to the Authenticator so the refreshing source
// can be swapped after a new authorization without invalidating token
// sources already handed out.
type persistingSource struct {
	auth *Authenticator
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	return p.auth.token()
}

func (a *Authenticator) token() (*oauth2.Token, error) {
	a.mu.Lock()
	if a.inner == nil {
		seed := a.store.Load()
		a.inner = a.oauth.TokenSource(a.ctx, seed)
		a.last = seed
	}
	src := a.inner
	a.mu.Unlock()

	tok, err := src.Token()
	if err != nil {
		a.recordRefresh(refreshFailure)
		return nil, err
	}

	if a.persistIfChanged(tok) {
		a.recordRefresh(refreshSuccess)
	}
	return tok, nil
}

// SetRefreshRecorder registers rec to observe refresh outcomes. Pass nil
// to detach. Safe to call while the token source is in use.
func (a *Authenticator) SetRefreshRecorder(rec RefreshRecorder) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recorder = rec
}

func (a *Authenticator) recordRefresh(result string) {
	a.mu.Lock()
	rec := a.recorder
	a.mu.Unlock()

	if rec != nil {
		rec.RecordOAuthTokenRefresh(a.ctx, result)
	}
}

// persistIfChanged writes tok to the cache when it differs from the last
// token seen, reporting whether a new token was observed. Write failures
// are logged and dropped; the in-memory token stays usable either way.
func (a *Authenticator) persistIfChanged(tok *oauth2.Token) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.last != nil &&
		a.last.AccessToken == tok.AccessToken &&
		a.last.RefreshToken == tok.RefreshToken {
		return false
	}
	a.last = tok

	slog.Debug("persisting refreshed token",
		slog.String("access_token", logging.SanitizeToken(tok.AccessToken)),
		logging.Path(a.store.Path()))

	if err := a.store.Save(tok); err != nil {
		slog.Warn("failed to persist refreshed token",
			logging.Err(err),
			logging.Path(a.store.Path()))
	}
	return true
}

// HTTPClient returns an HTTP client that injects OAuth credentials on
// every request. The token source is exercised once up front so callers
// get a clear authentication error instead of a failed API call.
// The client is configured to use HTTP/1.1 to avoid HTTP/2 protocol errors.
func (a *Authenticator) HTTPClient(ctx context.Context) (*http.Client, error) {
	ts := a.TokenSource()
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("no valid Google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, ts)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{ForceAttemptHTTP2: false}

	return client, nil
}

// AuthCodeURL returns the URL the user visits to authorize access.
func (a *Authenticator) AuthCodeURL() string {
	return a.oauth.AuthCodeURL("state")
}

// AuthenticationErrorMessage returns the instructions tool handlers show
// when no valid token is available yet.
func (a *Authenticator) AuthenticationErrorMessage() string {
	return fmt.Sprintf(`Google OAuth token not found. To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to the requested services
4. Copy the authorization code

5. Provide the authorization code to your AI agent
   The agent will use the google_save_auth_code tool to complete authentication.

Note: You only need to authorize once. The token will be refreshed automatically.`, a.AuthCodeURL())
}

// Exchange trades an authorization code for tokens, persists them, and
// swaps the refreshing source so subsequent calls use the new grant.
func (a *Authenticator) Exchange(ctx context.Context, authCode string) error {
	tok, err := a.oauth.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	a.mu.Lock()
	a.inner = a.oauth.TokenSource(a.ctx, tok)
	a.last = tok
	a.mu.Unlock()

	if err := a.store.Save(tok); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// Status describes the credential cache without any network traffic.
type Status struct {
	TokenPath       string    `json:"token_path"`
	HasCredentials  bool      `json:"has_credentials"`
	HasRefreshToken bool      `json:"has_refresh_token"`
	Expiry          time.Time `json:"expiry"`
}

// Status reports the state of the cached credentials.
func (a *Authenticator) Status() Status {
	st := Status{TokenPath: a.store.Path()}

	tok := a.store.Load()
	if tok == nil {
		return st
	}

	st.HasCredentials = true
	st.HasRefreshToken = tok.RefreshToken != ""
	st.Expiry = tok.Expiry
	return st
}
