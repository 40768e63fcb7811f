package auth

// Package auth contains simple hand-written test doubles for the identity
// provider port. These are lightweight and suitable for unit tests without
// codegen.

import (
	"context"
	"time"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
	"github.com/civassist/cva-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.IdentityProvider = (*MockIdentityProvider)(nil)

// MockIdentityProvider simulates an identity provider for tests. Each
// behavior can be overridden with a func field; the zero value verifies
// nobody and fails nothing.
type MockIdentityProvider struct {
	VerifyFunc         func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error)
	InstallSessionFunc func(ctx context.Context, jar *cookiejar.Jar, accessToken, refreshToken string) error
	SignOutFunc        func(ctx context.Context, jar *cookiejar.Jar) error

	// Identity is returned by Verify when VerifyFunc is nil and Identity is set.
	Identity *domainauth.Identity

	// Call counters for assertion convenience.
	VerifyCalls         int
	InstallSessionCalls int
	SignOutCalls        int
}

// NewVerifiedProvider returns a provider that verifies everyone as the given
// email with a one-hour session.
func NewVerifiedProvider(userID, email string) *MockIdentityProvider {
	return &MockIdentityProvider{
		Identity: &domainauth.Identity{
			UserID:    userID,
			Email:     email,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func (m *MockIdentityProvider) Verify(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
	m.VerifyCalls++
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, jar)
	}
	return m.Identity, nil
}

func (m *MockIdentityProvider) InstallSession(ctx context.Context, jar *cookiejar.Jar, accessToken, refreshToken string) error {
	m.InstallSessionCalls++
	if m.InstallSessionFunc != nil {
		return m.InstallSessionFunc(ctx, jar, accessToken, refreshToken)
	}
	jar.Stage("cva_session_token", accessToken, 0)
	jar.Stage("cva_session_refresh", refreshToken, 0)
	return nil
}

func (m *MockIdentityProvider) SignOut(ctx context.Context, jar *cookiejar.Jar) error {
	m.SignOutCalls++
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, jar)
	}
	jar.Clear("cva_session_token")
	jar.Clear("cva_session_refresh")
	return nil
}
