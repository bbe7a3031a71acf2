package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/prospector-cli/internal/db"
	"github.com/sells-group/prospector-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	date       TIMESTAMPTZ NOT NULL,
	task       TEXT NOT NULL DEFAULT '',
	category   TEXT NOT NULL DEFAULT '',
	city       TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL DEFAULT 'in_progress',
	records    JSONB NOT NULL DEFAULT '[]',
	notes      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_sessions_city ON sessions(city);
CREATE INDEX IF NOT EXISTS idx_sessions_category ON sessions(category);
CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateSession(ctx context.Context, sess model.Session) (*model.Session, error) {
	applySessionDefaults(&sess)

	recordsJSON, err := json.Marshal(sess.Records)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal records")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO sessions (id, date, task, category, city, status, records, notes) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sess.ID, sess.Date, sess.Task, sess.Category, sess.City, string(sess.Status), recordsJSON, sess.Notes,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert session")
	}
	return &sess, nil
}

func (s *PostgresStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, date, task, category, city, status, records, notes FROM sessions WHERE id = $1`,
		id,
	)
	return scanPgSession(row)
}

func (s *PostgresStore) ListSessions(ctx context.Context, filter SessionFilter) ([]model.Session, error) {
	query := `SELECT id, date, task, category, city, status, records, notes FROM sessions WHERE 1=1`
	var args []any

	if filter.City != "" {
		args = append(args, "%"+filter.City+"%")
		query += fmt.Sprintf(` AND city ILIKE $%d`, len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY date ASC, created_at ASC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	args = append(args, limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(` OFFSET $%d`, len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list sessions")
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		sess, err := scanPgSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, eris.Wrap(rows.Err(), "postgres: list sessions iterate")
}

func (s *PostgresStore) UpdateSessionStatus(ctx context.Context, id string, status model.SessionStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update session status %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("session not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) ReplaceRecords(ctx context.Context, id string, records []model.Record) error {
	recordsJSON, err := json.Marshal(records)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal records")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET records = $1, updated_at = $2 WHERE id = $3`,
		recordsJSON, time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: replace records %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("session not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete session %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("session not found: %s", id)
	}
	return nil
}

func scanPgSession(row pgx.Row) (*model.Session, error) {
	var sess model.Session
	var status string
	var recordsJSON []byte

	err := row.Scan(&sess.ID, &sess.Date, &sess.Task, &sess.Category, &sess.City, &status, &recordsJSON, &sess.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.New("session not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan session")
	}

	sess.Status = model.SessionStatus(status)
	if err := json.Unmarshal(recordsJSON, &sess.Records); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal records")
	}
	return &sess, nil
}
