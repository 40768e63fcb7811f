package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/civassist/cva-ui-api/internal/data"
	"github.com/civassist/cva-ui-api/internal/domain/model"
	apperrors "github.com/civassist/cva-ui-api/internal/errors"
	"github.com/civassist/cva-ui-api/internal/mocks"
)

type contentFixture struct {
	svc        *ContentService
	candidates *mocks.MockCandidateRepository
	quizzes    *mocks.MockQuizRepository
	polls      *mocks.MockPollRepository
	cache      *mocks.MockCacheRepository
	now        time.Time
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &contentFixture{
		candidates: mocks.NewMockCandidateRepository(ctrl),
		quizzes:    mocks.NewMockQuizRepository(ctrl),
		polls:      mocks.NewMockPollRepository(ctrl),
		cache:      mocks.NewMockCacheRepository(ctrl),
		now:        time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	f.svc = NewContentService(ContentServiceOptions{
		Candidates:   f.candidates,
		Quizzes:      f.quizzes,
		Polls:        f.polls,
		Cache:        f.cache,
		CacheTTL:     time.Minute,
		TimeProvider: data.NewFixedTimeProvider(f.now),
	})
	return f
}

func TestContentService_GetCandidate_CacheMiss(t *testing.T) {
	f := newContentFixture(t)
	cand := &model.Candidate{ID: "c1", Area: "springfield", Name: "Jo Reyes"}

	f.cache.EXPECT().Get(gomock.Any(), "candidate:c1").Return(nil, nil)
	f.candidates.EXPECT().GetByID(gomock.Any(), "c1").Return(cand, nil)
	f.cache.EXPECT().Set(gomock.Any(), "candidate:c1", gomock.Any(), time.Minute).Return(nil)

	got, err := f.svc.GetCandidate(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, cand, got)
}

func TestContentService_GetCandidate_CacheHit(t *testing.T) {
	f := newContentFixture(t)
	cand := &model.Candidate{ID: "c1", Area: "springfield", Name: "Jo Reyes"}
	raw, err := json.Marshal(cand)
	require.NoError(t, err)

	f.cache.EXPECT().Get(gomock.Any(), "candidate:c1").Return(raw, nil)

	got, err := f.svc.GetCandidate(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, cand.Name, got.Name)
}

func TestContentService_GetCandidate_CacheFailureDegrades(t *testing.T) {
	f := newContentFixture(t)
	cand := &model.Candidate{ID: "c1", Area: "springfield"}

	f.cache.EXPECT().Get(gomock.Any(), "candidate:c1").Return(nil, errors.New("redis down"))
	f.candidates.EXPECT().GetByID(gomock.Any(), "c1").Return(cand, nil)
	f.cache.EXPECT().Set(gomock.Any(), "candidate:c1", gomock.Any(), time.Minute).Return(errors.New("redis down"))

	got, err := f.svc.GetCandidate(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, cand, got)
}

func TestContentService_GetCandidate_EmptyID(t *testing.T) {
	f := newContentFixture(t)

	_, err := f.svc.GetCandidate(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestContentService_ListCandidates(t *testing.T) {
	t.Run("unfiltered listing is cached", func(t *testing.T) {
		f := newContentFixture(t)
		list := []*model.Candidate{{ID: "c1", Area: "springfield"}}

		f.cache.EXPECT().Get(gomock.Any(), "candidates:springfield").Return(nil, nil)
		f.candidates.EXPECT().ListByArea(gomock.Any(), "springfield", "").Return(list, nil)
		f.cache.EXPECT().Set(gomock.Any(), "candidates:springfield", gomock.Any(), time.Minute).Return(nil)

		got, err := f.svc.ListCandidates(context.Background(), "springfield", "")
		require.NoError(t, err)
		assert.Equal(t, list, got)
	})

	t.Run("search bypasses the cache", func(t *testing.T) {
		f := newContentFixture(t)
		list := []*model.Candidate{{ID: "c2", Area: "springfield", Name: "Pat Vu"}}

		f.candidates.EXPECT().ListByArea(gomock.Any(), "springfield", "vu").Return(list, nil)

		got, err := f.svc.ListCandidates(context.Background(), "springfield", "vu")
		require.NoError(t, err)
		assert.Equal(t, list, got)
	})

	t.Run("empty area is rejected", func(t *testing.T) {
		f := newContentFixture(t)

		_, err := f.svc.ListCandidates(context.Background(), "", "")
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestContentService_AnswerProfile(t *testing.T) {
	profile := json.RawMessage(`{"positions":{"transit":"expand bus lanes"},"endorsements":["local 42"]}`)
	cand := &model.Candidate{ID: "c1", Area: "springfield", Profile: profile}

	t.Run("projects the answer", func(t *testing.T) {
		f := newContentFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "candidate:c1").Return(nil, nil)
		f.candidates.EXPECT().GetByID(gomock.Any(), "c1").Return(cand, nil)
		f.cache.EXPECT().Set(gomock.Any(), "candidate:c1", gomock.Any(), time.Minute).Return(nil)

		answer, err := f.svc.AnswerProfile(context.Background(), "c1", "positions.transit")
		require.NoError(t, err)
		assert.Equal(t, "expand bus lanes", answer)
	})

	t.Run("missing path yields nil", func(t *testing.T) {
		f := newContentFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), "candidate:c1").Return(nil, nil)
		f.candidates.EXPECT().GetByID(gomock.Any(), "c1").Return(cand, nil)
		f.cache.EXPECT().Set(gomock.Any(), "candidate:c1", gomock.Any(), time.Minute).Return(nil)

		answer, err := f.svc.AnswerProfile(context.Background(), "c1", "positions.housing")
		require.NoError(t, err)
		assert.Nil(t, answer)
	})

	t.Run("invalid expression", func(t *testing.T) {
		f := newContentFixture(t)

		_, err := f.svc.AnswerProfile(context.Background(), "c1", "positions[")
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("empty expression", func(t *testing.T) {
		f := newContentFixture(t)

		_, err := f.svc.AnswerProfile(context.Background(), "c1", "   ")
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("empty profile document", func(t *testing.T) {
		f := newContentFixture(t)
		bare := &model.Candidate{ID: "c2", Area: "springfield"}
		f.cache.EXPECT().Get(gomock.Any(), "candidate:c2").Return(nil, nil)
		f.candidates.EXPECT().GetByID(gomock.Any(), "c2").Return(bare, nil)
		f.cache.EXPECT().Set(gomock.Any(), "candidate:c2", gomock.Any(), time.Minute).Return(nil)

		answer, err := f.svc.AnswerProfile(context.Background(), "c2", "positions")
		require.NoError(t, err)
		assert.Nil(t, answer)
	})
}

func TestContentService_QuizQuestions(t *testing.T) {
	t.Run("passes the clock to the repository", func(t *testing.T) {
		f := newContentFixture(t)
		questions := []*model.QuizQuestion{{ID: "q1", GroupLabel: "GROUPA", Question: "Which year?"}}

		f.quizzes.EXPECT().ListAvailable(gomock.Any(), "GROUPA", f.now).Return(questions, nil)

		got, err := f.svc.QuizQuestions(context.Background(), "GROUPA")
		require.NoError(t, err)
		assert.Equal(t, questions, got)
	})

	t.Run("empty group label is rejected", func(t *testing.T) {
		f := newContentFixture(t)

		_, err := f.svc.QuizQuestions(context.Background(), "")
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestContentService_OpenPolls(t *testing.T) {
	t.Run("cache miss reads the repository", func(t *testing.T) {
		f := newContentFixture(t)
		polls := []*model.Poll{{ID: "p1", Area: "springfield", Title: "Transit levy"}}

		f.cache.EXPECT().Get(gomock.Any(), "polls:open").Return(nil, nil)
		f.polls.EXPECT().ListOpen(gomock.Any(), f.now).Return(polls, nil)
		f.cache.EXPECT().Set(gomock.Any(), "polls:open", gomock.Any(), time.Minute).Return(nil)

		got, err := f.svc.OpenPolls(context.Background())
		require.NoError(t, err)
		assert.Equal(t, polls, got)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		f := newContentFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "polls:open").Return(nil, nil)
		f.polls.EXPECT().ListOpen(gomock.Any(), f.now).Return(nil, errors.New("connection refused"))

		_, err := f.svc.OpenPolls(context.Background())
		assert.Error(t, err)
	})
}
