package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/civassist/cva-ui-api/config"
	"github.com/civassist/cva-ui-api/internal/adapters/devauth"
	"github.com/civassist/cva-ui-api/internal/adapters/idp"
	"github.com/civassist/cva-ui-api/internal/ports"
	"github.com/civassist/cva-ui-api/internal/service"
)

// AuthConfig contains configuration for the auth service.
type AuthConfig struct {
	Auth   config.AuthConfig
	Logger *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	provider, err := buildIdentityProvider(cfg)
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:   provider,
		AdminEmail: cfg.Auth.AdminEmail,
		Logger:     cfg.Logger,
	}), nil
}

//nolint:ireturn // the port is the whole point here; callers never see the concrete adapter.
func buildIdentityProvider(cfg AuthConfig) (ports.IdentityProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			UserID: cfg.Auth.DevAuth.UserID,
			Email:  cfg.Auth.DevAuth.Email,
			// session duration defaults inside provider
		})
		if err != nil {
			return nil, fmt.Errorf("create dev auth provider: %w", err)
		}
		return prov, nil

	case config.AuthModeOAuth:
		oauth := cfg.Auth.OAuth
		prov, err := idp.NewProvider(idp.ProviderConfig{
			ClientID:      oauth.ClientID,
			ClientSecret:  oauth.ClientSecret,
			Scope:         oauth.Scope,
			DiscoveryURL:  oauth.DiscoveryURL,
			RevocationURL: oauth.RevocationURL,
		})
		if err != nil {
			return nil, fmt.Errorf("create OIDC provider: %w", err)
		}
		return prov, nil

	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}
