package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/civassist/cva-ui-api/internal/data/pgxutil"
	"github.com/civassist/cva-ui-api/internal/domain/model"
)

// ErrCandidateNotFound is returned when a candidate is not found.
var ErrCandidateNotFound = errors.New("candidate not found")

// CandidateRepo provides read-only database operations for the candidate catalog.
type CandidateRepo struct {
	DB *sql.DB
}

// NewCandidateRepo creates a new CandidateRepo.
func NewCandidateRepo(db *sql.DB) *CandidateRepo {
	return &CandidateRepo{DB: db}
}

const (
	candidateGetByIDQuery = `
		SELECT id, area, name, party, profile, created_at, updated_at
		FROM candidates
		WHERE id = $1`

	candidateListByAreaQuery = `
		SELECT id, area, name, party, profile, created_at, updated_at
		FROM candidates
		WHERE area = $1
		ORDER BY name ASC`

	candidateSearchByAreaQuery = `
		SELECT id, area, name, party, profile, created_at, updated_at
		FROM candidates
		WHERE area = $1 AND (name ILIKE $2 OR party ILIKE $2)
		ORDER BY name ASC`
)

// GetByID retrieves a candidate by ID.
func (r *CandidateRepo) GetByID(ctx context.Context, id string) (*model.Candidate, error) {
	var out model.Candidate
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, candidateGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Candidate])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate by ID: %w", err)
	}
	return &out, nil
}

// ListByArea retrieves the candidates for one content area, optionally
// filtered by a case-insensitive name or party match.
func (r *CandidateRepo) ListByArea(ctx context.Context, area, query string) ([]*model.Candidate, error) {
	q := candidateListByAreaQuery
	args := []any{area}
	if s := strings.TrimSpace(query); s != "" {
		q = candidateSearchByAreaQuery
		args = append(args, "%"+s+"%")
	}

	var rowsOut []model.Candidate
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Candidate])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	res := make([]*model.Candidate, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
