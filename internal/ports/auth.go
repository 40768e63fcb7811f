package ports

// Package ports defines interfaces (hexagonal ports) for the gate's behavior.
// Implementations live in internal/adapters and internal/data; orchestration
// in internal/service.

import (
	"context"
	"time"

	"github.com/civassist/cva-ui-api/internal/cookiejar"
	domainauth "github.com/civassist/cva-ui-api/internal/domain/auth"
	"github.com/civassist/cva-ui-api/internal/domain/model"
)

// IdentityProvider is the external identity provider boundary. All three
// operations read credentials from and stage rotated credentials into the
// caller's jar; the cookie names and shapes are owned entirely by the
// adapter, so the provider can change its scheme without touching the gate.
type IdentityProvider interface {
	// Verify answers "who is this, if anyone?" from the jar's credential
	// cookies. It returns (nil, nil) when no verifiable identity is present
	// and a non-nil error only for upstream/config failures. When the
	// provider silently refreshed the session, the new credential cookies
	// are staged into the jar before returning.
	Verify(ctx context.Context, jar *cookiejar.Jar) (*domainauth.Identity, error)

	// InstallSession re-issues a client-established credential pair as
	// gate cookies staged into the jar.
	InstallSession(ctx context.Context, jar *cookiejar.Jar, accessToken, refreshToken string) error

	// SignOut invalidates the current session upstream (best effort where
	// the provider supports it) and stages removal of the gate cookies.
	SignOut(ctx context.Context, jar *cookiejar.Jar) error
}

// AccessTokenRepository reads and administers the access-token catalog.
// FindActive is the only operation the token exchange uses; the rest back
// the administrator surface.
type AccessTokenRepository interface {
	// FindActive returns the token row matching (token, area, active=true),
	// or a not-found error when no row matches.
	FindActive(ctx context.Context, token, area string) (*model.AccessToken, error)
	List(ctx context.Context) ([]*model.AccessToken, error)
	SetActive(ctx context.Context, token string, active bool) (*model.AccessToken, error)
	SetExpiry(ctx context.Context, token string, expiresAt *time.Time) (*model.AccessToken, error)
}

// CacheRepository is a byte-oriented cache with TTLs (Redis in production).
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) (bool, error)
	Health(ctx context.Context) error
}
