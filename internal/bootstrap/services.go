package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/civassist/cva-ui-api/config"
	"github.com/civassist/cva-ui-api/internal/data"
	"github.com/civassist/cva-ui-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth       *service.AuthService
	Grants     *service.GrantService
	Content    *service.ContentService
	TokenAdmin *service.TokenAdminService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices builds the repositories and services the HTTP surface needs.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authSvc, err := BuildAuthService(AuthConfig{Auth: deps.Config.Auth, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("build auth service: %w", err)
	}

	tokenRepo := data.NewAccessTokenRepo(deps.DB)
	cacheRepo := data.NewRedisCacheRepo(deps.RedisClient)

	grants := service.NewGrantService(service.GrantServiceOptions{
		Tokens:   tokenRepo,
		GrantTTL: deps.Config.Auth.GrantTTL,
		Logger:   logger,
	})

	content := service.NewContentService(service.ContentServiceOptions{
		Candidates: data.NewCandidateRepo(deps.DB),
		Quizzes:    data.NewQuizRepo(deps.DB),
		Polls:      data.NewPollRepo(deps.DB),
		Cache:      cacheRepo,
		CacheTTL:   deps.Config.Cache.ContentTTL,
		Logger:     logger,
	})

	tokenAdmin := service.NewTokenAdminService(service.TokenAdminServiceOptions{
		Tokens: tokenRepo,
		Logger: logger,
	})

	return &ServiceContainer{
		Auth:       authSvc,
		Grants:     grants,
		Content:    content,
		TokenAdmin: tokenAdmin,
	}, nil
}
