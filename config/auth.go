package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses the OIDC identity provider for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains the identity-provider connection parameters.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"      envDefault:"civassist"`
	ClientSecret string `env:"CLIENT_SECRET"  envDefault:"civassist"`
	Scope        string `env:"SCOPE"          envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	// RevocationURL is the optional token revocation endpoint used on sign-out.
	// Not every provider exposes one; sign-out still clears gate cookies without it.
	RevocationURL string `env:"REVOCATION_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID string `env:"USER_ID" envDefault:"dev-user"`
	Email  string `env:"EMAIL"   envDefault:"dev@example.com"`
}

// AuthConfig groups all authentication and gate configuration.
type AuthConfig struct {
	// Mode determines which identity provider adapter to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminEmail is the single administrator identity. When empty, no caller
	// is ever treated as administrator (the gate fails closed).
	AdminEmail string `env:"ADMIN_EMAIL"`

	// GrantTTL is the lifetime of the access-grant cookies issued by a
	// successful token exchange.
	GrantTTL time.Duration `env:"ACCESS_GRANT_TTL" envDefault:"12h"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.AdminEmail = strings.TrimSpace(a.AdminEmail)
	if a.GrantTTL <= 0 {
		a.GrantTTL = 12 * time.Hour
	}
}
