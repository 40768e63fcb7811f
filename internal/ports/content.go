package ports

import (
	"context"
	"time"

	"github.com/civassist/cva-ui-api/internal/domain/model"
)

// CandidateRepository provides read-only candidate catalog lookups.
type CandidateRepository interface {
	GetByID(ctx context.Context, id string) (*model.Candidate, error)
	ListByArea(ctx context.Context, area, query string) ([]*model.Candidate, error)
}

// QuizRepository reads quiz questions for one group label. Time-locked
// questions (available_from in the future) are excluded by the query.
type QuizRepository interface {
	ListAvailable(ctx context.Context, groupLabel string, now time.Time) ([]*model.QuizQuestion, error)
}

// PollRepository reads poll summaries.
type PollRepository interface {
	ListOpen(ctx context.Context, now time.Time) ([]*model.Poll, error)
}
