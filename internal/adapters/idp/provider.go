package idp

// Package idp adapts an OIDC/OAuth2 identity provider to the gate's
// IdentityProvider port. It owns the session credential cookies end to end:
// reading them from the jar, refreshing them against the provider, and
// staging rotated or cleared values back into the jar.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
)

// Cookie names for the session credential pair. These are an implementation
// detail of this adapter; nothing outside it reads them.
const (
	sessionCookie = "cva_session_token"
	refreshCookie = "cva_session_refresh"
)

// Provider implements ports.IdentityProvider against an OIDC provider.
type Provider struct {
	config        *oauth2.Config
	oidcProvider  *gooidc.Provider
	revocationURL string
	httpClient    *http.Client
}

// ProviderConfig holds configuration for the OIDC identity provider.
type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	Scope        string
	DiscoveryURL string
	// RevocationURL is the optional RFC 7009 token revocation endpoint.
	// When empty, SignOut only clears the local session cookies.
	RevocationURL string
	HTTPClient    *http.Client // Optional, defaults to a 30s-timeout client
}

// NewProvider creates a new OIDC identity provider adapter. Discovery runs
// once at construction.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.DiscoveryURL == "" {
		return nil, errors.New("discovery URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
	issuer := strings.TrimSuffix(cfg.DiscoveryURL, "/")
	issuer = strings.TrimSuffix(issuer, "/.well-known/openid-configuration")
	issuer = strings.TrimSuffix(issuer, ".well-known/openid-configuration")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc new provider: %w", err)
	}

	return &Provider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       strings.Fields(cfg.Scope),
			Endpoint:     op.Endpoint(),
		},
		oidcProvider:  op,
		revocationURL: cfg.RevocationURL,
		httpClient:    httpClient,
	}, nil
}

// Verify resolves the jar's credential pair to an identity via the provider's
// userinfo endpoint. An expired access token is refreshed transparently when
// a refresh token is present; the rotated pair is staged back into the jar so
// the caller's response carries it on every outcome. A missing or rejected
// pair yields (nil, nil); only provider transport failures return an error.
func (p *Provider) Verify(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
	access, hasAccess := jar.Get(sessionCookie)
	refresh, hasRefresh := jar.Get(refreshCookie)
	if !hasAccess && !hasRefresh {
		return nil, nil
	}

	tok := &oauth2.Token{AccessToken: access, RefreshToken: refresh}
	if access == "" {
		// Force the token source to refresh immediately.
		tok.Expiry = time.Unix(1, 0)
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	ts := p.config.TokenSource(ctx, tok)

	ui, err := p.oidcProvider.UserInfo(ctx, ts)
	if err != nil {
		if credentialsRejected(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch user info: %w", err)
	}

	current, err := ts.Token()
	if err == nil && current.AccessToken != access {
		p.stagePair(jar, current.AccessToken, firstNonEmpty(current.RefreshToken, refresh))
	}

	expiresAt := time.Now().Add(time.Hour)
	if err == nil && !current.Expiry.IsZero() {
		expiresAt = current.Expiry
	}

	var claims struct {
		Email string `json:"email"`
	}
	if claimsErr := ui.Claims(&claims); claimsErr != nil {
		return nil, fmt.Errorf("decode user info: %w", claimsErr)
	}
	email := firstNonEmpty(claims.Email, ui.Email)

	return &domainauth.Identity{
		UserID:    ui.Subject,
		Email:     email,
		ExpiresAt: expiresAt,
	}, nil
}

// InstallSession validates the client-established credential pair against the
// provider and stages it as session cookies.
func (p *Provider) InstallSession(ctx context.Context, jar *cookiejar.Jar, accessToken, refreshToken string) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	if _, err := p.oidcProvider.UserInfo(ctx, ts); err != nil {
		return fmt.Errorf("validate session credentials: %w", err)
	}
	p.stagePair(jar, accessToken, refreshToken)
	return nil
}

// SignOut revokes the refresh token when a revocation endpoint is configured
// and stages removal of the session cookies. Cookies are cleared even when
// revocation fails so the browser never keeps dead credentials.
func (p *Provider) SignOut(ctx context.Context, jar *cookiejar.Jar) error {
	refresh, _ := jar.Get(refreshCookie)

	var revokeErr error
	if p.revocationURL != "" && refresh != "" {
		revokeErr = p.revoke(ctx, refresh)
	}

	jar.Clear(sessionCookie)
	jar.Clear(refreshCookie)
	return revokeErr
}

func (p *Provider) revoke(ctx context.Context, refreshToken string) error {
	form := url.Values{
		"token":           {refreshToken},
		"token_type_hint": {"refresh_token"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.revocationURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build revocation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(url.QueryEscape(p.config.ClientID), url.QueryEscape(p.config.ClientSecret))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("revoke token: provider returned %s", resp.Status)
	}
	return nil
}

func (p *Provider) stagePair(jar *cookiejar.Jar, accessToken, refreshToken string) {
	jar.Stage(sessionCookie, accessToken, 0)
	if refreshToken != "" {
		jar.Stage(refreshCookie, refreshToken, 0)
	}
}

// credentialsRejected reports whether the provider definitively rejected the
// credentials, as opposed to failing to answer. Rejection means "no
// identity", not "verification broke".
func credentialsRejected(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return retrieveErr.Response != nil &&
			retrieveErr.Response.StatusCode >= 400 && retrieveErr.Response.StatusCode < 500
	}
	// go-oidc wraps non-2xx userinfo responses in a plain error carrying the
	// status text; 401/403 mean the access token is no longer honored.
	msg := err.Error()
	return strings.Contains(msg, "401") || strings.Contains(msg, "403")
}

// firstNonEmpty returns the first non-empty string from vals, or empty string if none.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
