package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
	apperrors "github.com/civassist/cva-ui-api/internal/errors"
	"github.com/civassist/cva-ui-api/internal/ports"
)

// Machine-readable reasons surfaced by the session endpoints.
const (
	ReasonTokensRequired   = "TOKENS_REQUIRED"
	ReasonSetSessionFailed = "SET_SESSION_FAILED"
	ReasonSignOutFailed    = "SIGNOUT_FAILED"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider   ports.IdentityProvider
	AdminEmail string
	Logger     *slog.Logger
}

// AuthService orchestrates identity verification, session bridging, and
// sign-out against the identity provider. The privilege decision itself stays
// in the domain package; this service only supplies the configured
// administrator email.
type AuthService struct {
	provider   ports.IdentityProvider
	adminEmail string
	logger     *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider:   opts.Provider,
		adminEmail: strings.TrimSpace(opts.AdminEmail),
		logger:     logger,
	}
}

// Verify resolves the jar's credentials to an identity. It returns (nil, nil)
// when no verifiable identity is present. Provider failures are logged and
// returned as upstream errors so callers fail closed instead of guessing.
func (s *AuthService) Verify(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error) {
	ident, err := s.provider.Verify(ctx, jar)
	if err != nil {
		s.logger.ErrorContext(ctx, "identity verification failed", "err", err)
		return nil, apperrors.Upstream(err, "identity verification failed")
	}
	return ident, nil
}

// Decide runs the privilege decision for an identity, which may be nil.
func (s *AuthService) Decide(ident *domainauth.Identity) domainauth.Decision {
	return domainauth.Decide(ident, s.adminEmail)
}

// Bridge installs a client-established credential pair as gate session
// cookies. Both tokens are required; installation failures surface as
// unauthenticated errors with reason SET_SESSION_FAILED.
func (s *AuthService) Bridge(ctx context.Context, jar *cookiejar.Jar, accessToken, refreshToken string) error {
	accessToken = strings.TrimSpace(accessToken)
	refreshToken = strings.TrimSpace(refreshToken)
	if accessToken == "" || refreshToken == "" {
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeValidation,
			Message: "access and refresh tokens are required",
			Reason:  ReasonTokensRequired,
		}
	}

	if err := s.provider.InstallSession(ctx, jar, accessToken, refreshToken); err != nil {
		s.logger.ErrorContext(ctx, "session install failed", "err", err)
		// The provider would not accept the pair, so the caller has no session.
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeUnauthenticated,
			Message: "failed to establish session",
			Reason:  ReasonSetSessionFailed,
			Cause:   err,
		}
	}
	return nil
}

// SignOut ends the current session. The provider clears the session cookies
// even when upstream revocation fails; the failure is still reported so the
// client can surface it.
func (s *AuthService) SignOut(ctx context.Context, jar *cookiejar.Jar) error {
	if err := s.provider.SignOut(ctx, jar); err != nil {
		s.logger.ErrorContext(ctx, "sign-out failed", "err", err)
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeInternal,
			Message: "failed to sign out",
			Reason:  ReasonSignOutFailed,
			Cause:   err,
		}
	}
	return nil
}
