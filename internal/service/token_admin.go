package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/civassist/cva-ui-api/internal/data"
	"github.com/civassist/cva-ui-api/internal/domain/model"
	apperrors "github.com/civassist/cva-ui-api/internal/errors"
	"github.com/civassist/cva-ui-api/internal/ports"
)

// TokenAdminServiceOptions groups dependencies for TokenAdminService.
type TokenAdminServiceOptions struct {
	Tokens ports.AccessTokenRepository
	Logger *slog.Logger
}

// TokenAdminService backs the administrator surface over the access-token
// catalog. Privilege checks happen in the HTTP layer before these methods
// run; the service assumes an already-authorized caller.
type TokenAdminService struct {
	tokens ports.AccessTokenRepository
	logger *slog.Logger
}

// NewTokenAdminService constructs a new TokenAdminService.
func NewTokenAdminService(opts TokenAdminServiceOptions) *TokenAdminService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenAdminService{tokens: opts.Tokens, logger: logger}
}

// List returns every catalog row, newest first.
func (s *TokenAdminService) List(ctx context.Context) ([]*model.AccessToken, error) {
	rows, err := s.tokens.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "access token list failed", "err", err)
		return nil, apperrors.Upstream(err, "failed to list access tokens")
	}
	return rows, nil
}

// SetActive flips one token's active flag.
func (s *TokenAdminService) SetActive(ctx context.Context, token string, active bool) (*model.AccessToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.Validation("token is required")
	}
	row, err := s.tokens.SetActive(ctx, token, active)
	if err != nil {
		if errors.Is(err, data.ErrAccessTokenNotFound) {
			return nil, apperrors.NotFoundf("access token %q not found", token)
		}
		s.logger.ErrorContext(ctx, "access token update failed", "err", err, "token", token)
		return nil, apperrors.Upstream(err, "failed to update access token")
	}
	return row, nil
}

// SetExpiry updates one token's expiry. A nil expiresAt clears it.
func (s *TokenAdminService) SetExpiry(ctx context.Context, token string, expiresAt *time.Time) (*model.AccessToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperrors.Validation("token is required")
	}
	row, err := s.tokens.SetExpiry(ctx, token, expiresAt)
	if err != nil {
		if errors.Is(err, data.ErrAccessTokenNotFound) {
			return nil, apperrors.NotFoundf("access token %q not found", token)
		}
		s.logger.ErrorContext(ctx, "access token update failed", "err", err, "token", token)
		return nil, apperrors.Upstream(err, "failed to update access token")
	}
	return row, nil
}
