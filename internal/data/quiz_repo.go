package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/civassist/cva-ui-api/internal/data/pgxutil"
	"github.com/civassist/cva-ui-api/internal/domain/model"
)

// QuizRepo provides read-only database operations for quiz questions.
type QuizRepo struct {
	DB *sql.DB
}

// NewQuizRepo creates a new QuizRepo.
func NewQuizRepo(db *sql.DB) *QuizRepo {
	return &QuizRepo{DB: db}
}

const quizListAvailableQuery = `
	SELECT id, group_label, question, choices, available_from, created_at
	FROM quiz_questions
	WHERE group_label = $1 AND (available_from IS NULL OR available_from <= $2)
	ORDER BY created_at ASC`

// ListAvailable retrieves the unlocked questions for one group label.
// Questions whose available_from lies in the future stay hidden.
func (r *QuizRepo) ListAvailable(ctx context.Context, groupLabel string, now time.Time) ([]*model.QuizQuestion, error) {
	var rowsOut []model.QuizQuestion
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, quizListAvailableQuery, groupLabel, now.UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.QuizQuestion])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list quiz questions: %w", err)
	}

	res := make([]*model.QuizQuestion, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
