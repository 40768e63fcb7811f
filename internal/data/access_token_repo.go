package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/civassist/cva-ui-api/internal/data/pgxutil"
	"github.com/civassist/cva-ui-api/internal/domain/model"
)

// ErrAccessTokenNotFound is returned when no catalog row matches the lookup.
var ErrAccessTokenNotFound = errors.New("access token not found")

// AccessTokenRepo provides database operations for the access-token catalog.
type AccessTokenRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAccessTokenRepo creates a new AccessTokenRepo with real time provider.
func NewAccessTokenRepo(db *sql.DB) *AccessTokenRepo {
	return &AccessTokenRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAccessTokenRepoWithTimeProvider creates a new AccessTokenRepo with a custom time provider (useful for tests).
func NewAccessTokenRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AccessTokenRepo {
	return &AccessTokenRepo{DB: db, timeProvider: tp}
}

const (
	accessTokenColumns = `token, area, active, expires_at, note, created_at, updated_at`

	accessTokenFindActiveQuery = `
		SELECT token, area, active, expires_at, note, created_at, updated_at
		FROM access_tokens
		WHERE token = $1 AND area = $2 AND active = TRUE`

	accessTokenListQuery = `
		SELECT token, area, active, expires_at, note, created_at, updated_at
		FROM access_tokens
		ORDER BY created_at DESC`
)

// FindActive returns the active catalog row for (token, area). Expiry is not
// checked here; callers compare ExpiresAt against their own clock so the
// decision stays testable.
func (r *AccessTokenRepo) FindActive(ctx context.Context, token, area string) (*model.AccessToken, error) {
	return r.getByQuery(ctx, accessTokenFindActiveQuery, "failed to find active access token", token, area)
}

// List retrieves all catalog rows, newest first.
func (r *AccessTokenRepo) List(ctx context.Context) ([]*model.AccessToken, error) {
	var rowsOut []model.AccessToken
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, accessTokenListQuery)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AccessToken])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list access tokens: %w", err)
	}

	res := make([]*model.AccessToken, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// SetActive flips the active flag for one token and returns the updated row.
func (r *AccessTokenRepo) SetActive(ctx context.Context, token string, active bool) (*model.AccessToken, error) {
	var out model.AccessToken
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE access_tokens SET active = $2, updated_at = $3
			WHERE token = $1
			RETURNING `+accessTokenColumns, token, active, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AccessToken])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccessTokenNotFound
		}
		return nil, fmt.Errorf("failed to set access token active flag: %w", err)
	}
	return &out, nil
}

// SetExpiry updates the expiry timestamp for one token and returns the
// updated row. A nil expiresAt clears the expiry so the token never expires.
func (r *AccessTokenRepo) SetExpiry(ctx context.Context, token string, expiresAt *time.Time) (*model.AccessToken, error) {
	var out model.AccessToken
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE access_tokens SET expires_at = $2, updated_at = $3
			WHERE token = $1
			RETURNING `+accessTokenColumns, token, expiresAt, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AccessToken])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccessTokenNotFound
		}
		return nil, fmt.Errorf("failed to set access token expiry: %w", err)
	}
	return &out, nil
}

// getByQuery executes a query expected to return a single catalog row.
func (r *AccessTokenRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.AccessToken, error) {
	var row model.AccessToken
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		row, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AccessToken])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccessTokenNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &row, nil
}
