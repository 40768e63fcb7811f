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

// PollRepo provides read-only database operations for poll summaries.
type PollRepo struct {
	DB *sql.DB
}

// NewPollRepo creates a new PollRepo.
func NewPollRepo(db *sql.DB) *PollRepo {
	return &PollRepo{DB: db}
}

const pollListOpenQuery = `
	SELECT id, area, title, opens_at, closes_at, created_at
	FROM polls
	WHERE opens_at <= $1 AND closes_at > $1
	ORDER BY closes_at ASC`

// ListOpen retrieves polls that are open at now.
func (r *PollRepo) ListOpen(ctx context.Context, now time.Time) ([]*model.Poll, error) {
	var rowsOut []model.Poll
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, pollListOpenQuery, now.UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Poll])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list open polls: %w", err)
	}

	res := make([]*model.Poll, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
