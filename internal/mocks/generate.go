// Package mocks provides mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the repository ports. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockAccessTokenRepository(ctrl)
//	mockRepo.EXPECT().FindActive(gomock.Any(), "GROUPA-1", "north").Return(row, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=access_token_repository_mock.go github.com/civassist/cva-ui-api/internal/ports AccessTokenRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=cache_repository_mock.go github.com/civassist/cva-ui-api/internal/ports CacheRepository

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=content_repositories_mock.go github.com/civassist/cva-ui-api/internal/ports CandidateRepository,QuizRepository,PollRepository
