package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
	apperrors "github.com/civassist/cva-ui-api/internal/errors"
	mockauth "github.com/civassist/cva-ui-api/internal/mocks/auth"
)

func TestAuthService_Verify(t *testing.T) {
	t.Run("returns the provider identity", func(t *testing.T) {
		provider := mockauth.NewVerifiedProvider("u1", "admin@example.com")
		svc := NewAuthService(AuthServiceOptions{Provider: provider, AdminEmail: "admin@example.com"})

		jar := cookiejar.New(cookiejar.Options{})
		ident, err := svc.Verify(context.Background(), jar)
		require.NoError(t, err)
		require.NotNil(t, ident)
		assert.Equal(t, "admin@example.com", ident.Email)
		assert.Equal(t, 1, provider.VerifyCalls)
	})

	t.Run("no identity is not an error", func(t *testing.T) {
		provider := &mockauth.MockIdentityProvider{}
		svc := NewAuthService(AuthServiceOptions{Provider: provider})

		ident, err := svc.Verify(context.Background(), cookiejar.New(cookiejar.Options{}))
		assert.NoError(t, err)
		assert.Nil(t, ident)
	})

	t.Run("provider failure becomes upstream error", func(t *testing.T) {
		provider := &mockauth.MockIdentityProvider{
			VerifyFunc: func(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
				return nil, errors.New("userinfo timeout")
			},
		}
		svc := NewAuthService(AuthServiceOptions{Provider: provider})

		ident, err := svc.Verify(context.Background(), cookiejar.New(cookiejar.Options{}))
		require.Error(t, err)
		assert.Nil(t, ident)
		assert.True(t, apperrors.IsUpstream(err))
	})
}

func TestAuthService_Decide(t *testing.T) {
	svc := NewAuthService(AuthServiceOptions{
		Provider:   &mockauth.MockIdentityProvider{},
		AdminEmail: "admin@example.com",
	})

	assert.Equal(t, domainauth.DecisionRedirect, svc.Decide(nil))
	assert.Equal(t, domainauth.DecisionForbid, svc.Decide(&domainauth.Identity{Email: "user@example.com"}))
	assert.Equal(t, domainauth.DecisionAllow, svc.Decide(&domainauth.Identity{Email: "ADMIN@example.com"}))
}

func TestAuthService_Bridge(t *testing.T) {
	t.Run("installs the pair", func(t *testing.T) {
		provider := &mockauth.MockIdentityProvider{}
		svc := NewAuthService(AuthServiceOptions{Provider: provider})

		jar := cookiejar.New(cookiejar.Options{})
		err := svc.Bridge(context.Background(), jar, "access-abc", "refresh-def")
		require.NoError(t, err)
		assert.Equal(t, 1, provider.InstallSessionCalls)

		v, ok := jar.Get("cva_session_token")
		assert.True(t, ok)
		assert.Equal(t, "access-abc", v)
		v, ok = jar.Get("cva_session_refresh")
		assert.True(t, ok)
		assert.Equal(t, "refresh-def", v)
	})

	t.Run("missing refresh token", func(t *testing.T) {
		provider := &mockauth.MockIdentityProvider{}
		svc := NewAuthService(AuthServiceOptions{Provider: provider})

		err := svc.Bridge(context.Background(), cookiejar.New(cookiejar.Options{}), "access-abc", "  ")
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Equal(t, ReasonTokensRequired, apperrors.GetReason(err))
		assert.Zero(t, provider.InstallSessionCalls)
	})

	t.Run("missing access token", func(t *testing.T) {
		svc := NewAuthService(AuthServiceOptions{Provider: &mockauth.MockIdentityProvider{}})

		err := svc.Bridge(context.Background(), cookiejar.New(cookiejar.Options{}), "", "refresh-def")
		require.Error(t, err)
		assert.Equal(t, ReasonTokensRequired, apperrors.GetReason(err))
	})

	t.Run("install failure", func(t *testing.T) {
		provider := &mockauth.MockIdentityProvider{
			InstallSessionFunc: func(ctx context.Context, jar *cookiejar.Jar, accessToken, refreshToken string) error {
				return errors.New("token rejected by provider")
			},
		}
		svc := NewAuthService(AuthServiceOptions{Provider: provider})

		err := svc.Bridge(context.Background(), cookiejar.New(cookiejar.Options{}), "access-abc", "refresh-def")
		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthenticated(err))
		assert.Equal(t, ReasonSetSessionFailed, apperrors.GetReason(err))
	})
}

func TestAuthService_SignOut(t *testing.T) {
	t.Run("clears the session cookies", func(t *testing.T) {
		provider := &mockauth.MockIdentityProvider{}
		svc := NewAuthService(AuthServiceOptions{Provider: provider})

		jar := cookiejar.New(cookiejar.Options{})
		require.NoError(t, svc.SignOut(context.Background(), jar))
		assert.Equal(t, 1, provider.SignOutCalls)

		_, ok := jar.Get("cva_session_token")
		assert.False(t, ok)
	})

	t.Run("revocation failure is reported", func(t *testing.T) {
		provider := &mockauth.MockIdentityProvider{
			SignOutFunc: func(ctx context.Context, jar *cookiejar.Jar) error {
				jar.Clear("cva_session_token")
				jar.Clear("cva_session_refresh")
				return errors.New("revocation endpoint unavailable")
			},
		}
		svc := NewAuthService(AuthServiceOptions{Provider: provider})

		jar := cookiejar.New(cookiejar.Options{})
		err := svc.SignOut(context.Background(), jar)
		require.Error(t, err)
		assert.Equal(t, ReasonSignOutFailed, apperrors.GetReason(err))

		// Cookies are still cleared even when revocation fails.
		assert.Len(t, jar.Staged(), 2)
	})
}
