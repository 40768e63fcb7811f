package devauth

// Package devauth provides a config-driven IdentityProvider for local
// development. Any non-empty credential pair is treated as the configured
// identity, so the full gate flow can run without an external provider.

import (
	"context"
	"errors"
	"time"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
)

// Cookie names mirror the production adapter so browser state carries over
// when switching modes locally.
const (
	sessionCookie = "cva_session_token"
	refreshCookie = "cva_session_refresh"
)

// Config controls the dev auth provider behavior.
type Config struct {
	UserID          string
	Email           string
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.IdentityProvider for local development.
type Provider struct {
	userID          string
	email           string
	sessionDuration time.Duration
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	return &Provider{userID: cfg.UserID, email: cfg.Email, sessionDuration: dur}, nil
}

// Verify returns the configured identity whenever a session cookie is
// present, and (nil, nil) otherwise.
func (p *Provider) Verify(_ context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
	if v, ok := jar.Get(sessionCookie); !ok || v == "" {
		return nil, nil
	}
	return &domainauth.Identity{
		UserID:    p.userID,
		Email:     p.email,
		ExpiresAt: time.Now().Add(p.sessionDuration),
	}, nil
}

// InstallSession stages the provided pair without upstream validation.
func (p *Provider) InstallSession(_ context.Context, jar *cookiejar.Jar, accessToken, refreshToken string) error {
	if accessToken == "" {
		return errors.New("dev auth: access token is required")
	}
	jar.Stage(sessionCookie, accessToken, 0)
	if refreshToken != "" {
		jar.Stage(refreshCookie, refreshToken, 0)
	}
	return nil
}

// SignOut stages removal of the session cookies.
func (p *Provider) SignOut(_ context.Context, jar *cookiejar.Jar) error {
	jar.Clear(sessionCookie)
	jar.Clear(refreshCookie)
	return nil
}
