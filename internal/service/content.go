package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"

	"github.com/civassist/cva-ui-api/internal/data"
	apperrors "github.com/civassist/cva-ui-api/internal/errors"
	"github.com/civassist/cva-ui-api/internal/domain/model"
	"github.com/civassist/cva-ui-api/internal/ports"
)

// ProfileEvaluator validates and evaluates profile query expressions.
type ProfileEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements ProfileEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// ContentServiceOptions groups dependencies for ContentService.
type ContentServiceOptions struct {
	Candidates   ports.CandidateRepository
	Quizzes      ports.QuizRepository
	Polls        ports.PollRepository
	Cache        ports.CacheRepository
	CacheTTL     time.Duration
	TimeProvider data.TimeProvider
	Evaluator    ProfileEvaluator // Optional, defaults to the jmespath evaluator
	Logger       *slog.Logger
}

// ContentService serves the public catalog surfaces: candidates, profile
// Q&A, quiz questions, and polls. Reads go through the cache when one is
// configured; cache failures degrade to direct repository reads.
type ContentService struct {
	candidates   ports.CandidateRepository
	quizzes      ports.QuizRepository
	polls        ports.PollRepository
	cache        ports.CacheRepository
	cacheTTL     time.Duration
	timeProvider data.TimeProvider
	evaluator    ProfileEvaluator
	logger       *slog.Logger
}

// NewContentService constructs a new ContentService.
func NewContentService(opts ContentServiceOptions) *ContentService {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	tp := opts.TimeProvider
	if tp == nil {
		tp = &data.RealTimeProvider{}
	}
	ev := opts.Evaluator
	if ev == nil {
		ev = jmespathLibEvaluator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentService{
		candidates:   opts.Candidates,
		quizzes:      opts.Quizzes,
		polls:        opts.Polls,
		cache:        opts.Cache,
		cacheTTL:     ttl,
		timeProvider: tp,
		evaluator:    ev,
		logger:       logger,
	}
}

// GetCandidate retrieves one candidate by ID, cache first.
func (s *ContentService) GetCandidate(ctx context.Context, id string) (*model.Candidate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Validation("candidate ID is required")
	}

	key := "candidate:" + id
	var cached model.Candidate
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	cand, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, cand)
	return cand, nil
}

// ListCandidates retrieves the candidates for one content area. Only the
// unfiltered listing is cached; search results vary too much to be worth it.
func (s *ContentService) ListCandidates(ctx context.Context, area, query string) ([]*model.Candidate, error) {
	area = strings.TrimSpace(area)
	if area == "" {
		return nil, apperrors.Validation("area is required")
	}

	query = strings.TrimSpace(query)
	key := "candidates:" + area
	if query == "" {
		var cached []*model.Candidate
		if s.cacheGet(ctx, key, &cached) {
			return cached, nil
		}
	}

	list, err := s.candidates.ListByArea(ctx, area, query)
	if err != nil {
		return nil, err
	}
	if query == "" {
		s.cacheSet(ctx, key, list)
	}
	return list, nil
}

// AnswerProfile evaluates a query expression against one candidate's profile
// document and returns the projected result.
func (s *ContentService) AnswerProfile(ctx context.Context, id, expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, apperrors.Validation("query expression is required")
	}
	if err := s.evaluator.Validate(expr); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid query expression")
	}

	cand, err := s.GetCandidate(ctx, id)
	if err != nil {
		return nil, err
	}

	var doc any
	if len(cand.Profile) > 0 {
		if unmarshalErr := json.Unmarshal(cand.Profile, &doc); unmarshalErr != nil {
			return nil, apperrors.Wrap(unmarshalErr, apperrors.ErrCodeInternal, "candidate profile is not valid JSON")
		}
	}

	result, err := s.evaluator.Evaluate(expr, doc)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "query evaluation failed")
	}
	return result, nil
}

// QuizQuestions retrieves the unlocked quiz questions for one group label.
func (s *ContentService) QuizQuestions(ctx context.Context, groupLabel string) ([]*model.QuizQuestion, error) {
	groupLabel = strings.TrimSpace(groupLabel)
	if groupLabel == "" {
		return nil, apperrors.Validation("group label is required")
	}
	return s.quizzes.ListAvailable(ctx, groupLabel, s.timeProvider.Now())
}

// OpenPolls retrieves polls currently open for responses, cache first.
func (s *ContentService) OpenPolls(ctx context.Context) ([]*model.Poll, error) {
	const key = "polls:open"
	var cached []*model.Poll
	if s.cacheGet(ctx, key, &cached) {
		return cached, nil
	}

	polls, err := s.polls.ListOpen(ctx, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, polls)
	return polls, nil
}

// cacheGet loads and decodes a cached value. Any cache failure is logged and
// treated as a miss.
func (s *ContentService) cacheGet(ctx context.Context, key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "cache read failed", "key", key, "err", err)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.WarnContext(ctx, "cache decode failed", "key", key, "err", err)
		return false
	}
	return true
}

// cacheSet encodes and stores a value. Failures are logged, never surfaced.
func (s *ContentService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.WarnContext(ctx, "cache encode failed", "key", key, "err", err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", "key", key, "err", err)
	}
}
