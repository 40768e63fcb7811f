package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	"github.com/civassist/cva-ui-api/internal/data"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
	apperrors "github.com/civassist/cva-ui-api/internal/errors"
	"github.com/civassist/cva-ui-api/internal/ports"
)

// Grant cookie names. The pair travels together: the token proves the
// exchange happened, the group label partitions the quiz content.
const (
	GrantTokenCookie = "cva_grant_token"
	GrantGroupCookie = "cva_grant_group"
)

// Machine-readable reasons surfaced by the token exchange.
const (
	ReasonTokenRequired          = "TOKEN_REQUIRED"
	ReasonTokenGroupParseFailed  = "TOKEN_GROUP_PARSE_FAILED"
	ReasonTokenInvalidOrInactive = "TOKEN_INVALID_OR_INACTIVE"
	ReasonTokenExpired           = "TOKEN_EXPIRED"
)

// GrantServiceOptions groups dependencies for GrantService.
type GrantServiceOptions struct {
	Tokens       ports.AccessTokenRepository
	GrantTTL     time.Duration
	TimeProvider data.TimeProvider
	Logger       *slog.Logger
}

// GrantService exchanges catalog access tokens for time-limited grant
// cookies. The exchange is stateless: it neither consumes the token nor
// records the grant, so re-running it is always safe.
type GrantService struct {
	tokens       ports.AccessTokenRepository
	grantTTL     time.Duration
	timeProvider data.TimeProvider
	logger       *slog.Logger
}

// NewGrantService constructs a new GrantService.
func NewGrantService(opts GrantServiceOptions) *GrantService {
	ttl := opts.GrantTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	tp := opts.TimeProvider
	if tp == nil {
		tp = &data.RealTimeProvider{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GrantService{
		tokens:       opts.Tokens,
		grantTTL:     ttl,
		timeProvider: tp,
		logger:       logger,
	}
}

// Exchange validates a raw access token against the catalog and, when every
// check passes, stages the grant cookie pair. The checks run in a fixed
// order so the first failure names the earliest problem: presence, group
// parse, catalog match, expiry.
func (s *GrantService) Exchange(ctx context.Context, jar *cookiejar.Jar, rawToken, area string) (*domainauth.Grant, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		// Absence is a malformed request, not a rejected credential.
		return nil, &apperrors.AppError{
			Code:    apperrors.ErrCodeValidation,
			Message: "access token is required",
			Reason:  ReasonTokenRequired,
		}
	}

	group, ok := domainauth.ParseGroupLabel(token)
	if !ok {
		return nil, apperrors.TokenRejected(ReasonTokenGroupParseFailed, "access token has no recognizable group prefix")
	}

	row, err := s.tokens.FindActive(ctx, token, area)
	if err != nil {
		if errors.Is(err, data.ErrAccessTokenNotFound) {
			return nil, apperrors.TokenRejected(ReasonTokenInvalidOrInactive, "access token is not valid for this area")
		}
		s.logger.ErrorContext(ctx, "access token lookup failed", "err", err, "area", area)
		return nil, apperrors.Upstream(err, "access token lookup failed")
	}

	now := s.timeProvider.Now()
	if row.Expired(now) {
		return nil, apperrors.TokenRejected(ReasonTokenExpired, "access token has expired")
	}

	jar.Stage(GrantTokenCookie, token, s.grantTTL)
	jar.Stage(GrantGroupCookie, group, s.grantTTL)

	return &domainauth.Grant{
		Token:     token,
		Group:     group,
		ExpiresAt: now.Add(s.grantTTL),
	}, nil
}

// Current reads the grant cookie pair from the jar. Both cookies must be
// present for the grant to count.
func (s *GrantService) Current(jar *cookiejar.Jar) (*domainauth.Grant, bool) {
	token, okT := jar.Get(GrantTokenCookie)
	group, okG := jar.Get(GrantGroupCookie)
	if !okT || !okG || token == "" || group == "" {
		return nil, false
	}
	return &domainauth.Grant{Token: token, Group: group}, true
}
