// Package iostore implements store.Store on PostgreSQL.
//
// Every upsert runs resolve, insert, re-resolve and tag inserts in one
// transaction. When two importers insert the same natural key at the same
// time, the loser gets a unique violation, rolls back and resolves the
// winner's row. Queries go through database/sql so the store works on top
// of the pgx pool and can be tested with sqlmock.
package iostore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/vgarchive/vgdb/internal/iodb"
	"github.com/vgarchive/vgdb/pkg/db"
	"github.com/vgarchive/vgdb/pkg/schema"
	"github.com/vgarchive/vgdb/pkg/store"
)

const (
	uniqueViolation  = "23505"
	notNullViolation = "23502"
)

type pgStore struct {
	db *sql.DB
}

// New creates a store on top of a connected database operator.
func New(op db.Operator) (store.Store, error) {
	pool := op.Pool()
	if pool == nil {
		return nil, iodb.NotConnectedError()
	}
	return NewWithDB(stdlib.OpenDBFromPool(pool)), nil
}

// NewWithDB creates a store that uses the given database handle.
func NewWithDB(sqlDB *sql.DB) store.Store {
	return &pgStore{db: sqlDB}
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// tagFunc inserts secondary rows of an entity once its id is known.
type tagFunc func(ctx context.Context, q querier, id int64) error

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// required turns empty text into NULL, so a NOT NULL column rejects it.
func required(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

// requiredID turns a zero id into NULL.
func requiredID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func requiredDate(d time.Time) any {
	if d.IsZero() {
		return nil
	}
	return d
}

func (s *pgStore) FindGame(
	ctx context.Context,
	title string,
) (schema.Game, bool, error) {
	g := schema.Game{Title: title}
	found, err := resolve(ctx, s.db, gameKind, &g)
	return g, found, err
}

func (s *pgStore) UpsertGame(
	ctx context.Context,
	g *schema.Game,
) (store.Resolution, error) {
	return upsert(ctx, s.db, gameKind, g, nil)
}

func (s *pgStore) SetEarliestReleaseDate(
	ctx context.Context,
	gameID int64,
	d time.Time,
) error {
	q := `UPDATE games SET earliest_release_date = $2 WHERE game_id = $1`
	_, err := s.db.ExecContext(ctx, q, gameID, d)
	if err != nil {
		return UpdateError("game", gameID, err)
	}
	return nil
}

func (s *pgStore) FindCompany(
	ctx context.Context,
	name string,
) (schema.Company, bool, error) {
	c := schema.Company{Name: name}
	found, err := resolve(ctx, s.db, companyKind, &c)
	return c, found, err
}

func (s *pgStore) UpsertCompany(
	ctx context.Context,
	c *schema.Company,
	roles ...string,
) (store.Resolution, error) {
	tags := func(ctx context.Context, q querier, id int64) error {
		for _, role := range roles {
			_, err := q.ExecContext(ctx, `
INSERT INTO company_roles (company_id, role) VALUES ($1, $2)
ON CONFLICT DO NOTHING`, id, role)
			if err != nil {
				return err
			}
		}
		return nil
	}
	return upsert(ctx, s.db, companyKind, c, tags)
}

func (s *pgStore) UpsertEmployee(
	ctx context.Context,
	name string,
	roles []string,
) (store.EmployeeResolution, error) {
	res := store.EmployeeResolution{Name: name}
	var firstErr error
	for _, role := range roles {
		e := schema.Employee{Name: name, Role: role}
		r, err := upsert(ctx, s.db, employeeKind, &e, nil)
		if store.IsRequiredField(err) {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err != nil {
			return res, err
		}
		res.Roles = append(res.Roles, store.RoleID{Role: role, Resolution: r})
	}
	if len(res.Roles) == 0 && firstErr != nil {
		return res, firstErr
	}
	return res, nil
}

func (s *pgStore) FindPlatform(
	ctx context.Context,
	name string,
) (schema.Platform, bool, error) {
	p := schema.Platform{Name: name}
	found, err := resolve(ctx, s.db, platformKind, &p)
	return p, found, err
}

func (s *pgStore) UpsertPlatform(
	ctx context.Context,
	p *schema.Platform,
	manufacturers []string,
) (store.Resolution, error) {
	tags := func(ctx context.Context, q querier, id int64) error {
		for _, m := range manufacturers {
			_, err := q.ExecContext(ctx, `
INSERT INTO platform_manufacturers (platform_id, manufacturer)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`, id, m)
			if err != nil {
				return err
			}
		}
		return nil
	}
	return upsert(ctx, s.db, platformKind, p, tags)
}

func (s *pgStore) UpsertRelease(
	ctx context.Context,
	r *schema.GameRelease,
) (store.Resolution, error) {
	return upsert(ctx, s.db, releaseKind, r, nil)
}

func (s *pgStore) InsertCredit(
	ctx context.Context,
	d schema.Develops,
) (bool, error) {
	q := `
INSERT INTO develops
	(release_id, employee_id, role,
	 developing_company_id, publishing_company_id)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT DO NOTHING`
	res, err := s.db.ExecContext(ctx, q,
		d.ReleaseID, d.EmployeeID, d.Role,
		d.DevelopingCompanyID, d.PublishingCompanyID,
	)
	if err != nil {
		if pgErr, ok := pgError(err); ok && pgErr.Code == notNullViolation {
			return false, RequiredFieldError("credit", pgErr.ColumnName, err)
		}
		return false, InsertError("credit", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, InsertError("credit", err)
	}
	return n > 0, nil
}

func (s *pgStore) GameReleases(
	ctx context.Context,
	gameID int64,
) ([]store.ReleaseView, error) {
	q := `
SELECT gr.release_id, p.name, gr.region, gr.release_date
  FROM game_releases gr
    JOIN platforms p ON p.platform_id = gr.platform_id
  WHERE gr.game_id = $1
  ORDER BY gr.release_date, p.name, gr.region`
	rows, err := s.db.QueryContext(ctx, q, gameID)
	if err != nil {
		return nil, QueryError("release", "game_id", err)
	}
	defer rows.Close()

	var res []store.ReleaseView
	for rows.Next() {
		var v store.ReleaseView
		if err = rows.Scan(&v.ReleaseID, &v.Platform, &v.Region, &v.Date); err != nil {
			return nil, QueryError("release", "game_id", err)
		}
		res = append(res, v)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("release", "game_id", err)
	}
	return res, nil
}

func (s *pgStore) CreditCount(ctx context.Context, gameID int64) (int, error) {
	q := `
SELECT count(*)
  FROM develops d
    JOIN game_releases gr ON gr.release_id = d.release_id
  WHERE gr.game_id = $1`
	var res int
	if err := s.db.QueryRowContext(ctx, q, gameID).Scan(&res); err != nil {
		return 0, QueryError("credit", "game_id", err)
	}
	return res, nil
}
