package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nathoo/duelcore/types"
)

// ErrNotFound is returned for a session id the store does not hold.
var ErrNotFound = errors.New("session not found")

// Session describes one recorded fight.
type Session struct {
	ID        string
	Me        string
	Seed      int64
	Label     string
	StartedAt time.Time
	Slices    int
}

// Store is an append-only SQLite log of sessions and their slices.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the store at path and applies its migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateSession starts a new session with a fresh id.
func (s *Store) CreateSession(ctx context.Context, me string, seed int64, label string) (Session, error) {
	sess, err := s.newSession(me, seed, label)
	if err != nil {
		return Session{}, err
	}
	if err := insertSession(ctx, s.db, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Store) newSession(me string, seed int64, label string) (Session, error) {
	if strings.TrimSpace(me) == "" {
		return Session{}, errors.New("session me is required")
	}
	return Session{
		ID:        uuid.NewString(),
		Me:        me,
		Seed:      seed,
		Label:     label,
		StartedAt: s.now().UTC().Truncate(time.Millisecond),
	}, nil
}

func insertSession(ctx context.Context, q queryer, sess Session) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO sessions (id, me, seed, label, started_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.Me, sess.Seed, sess.Label, sess.StartedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Append adds ts to the end of the session and returns its sequence number.
// A slice earlier than the session's last one is rejected.
func (s *Store) Append(ctx context.Context, sessionID string, ts types.TimeSlice) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	seq, err := appendSlice(ctx, tx, sessionID, ts)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit append: %w", err)
	}
	return seq, nil
}

func appendSlice(ctx context.Context, q queryer, sessionID string, ts types.TimeSlice) (int, error) {
	body, err := MarshalSlice(ts)
	if err != nil {
		return 0, err
	}

	var exists int
	if err := q.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ?`, sessionID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("lookup session: %w", err)
	}

	var seq int
	var last types.Time
	err = q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), -1) + 1, COALESCE(MAX(time), 0) FROM slices WHERE session_id = ?`,
		sessionID,
	).Scan(&seq, &last)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	if ts.Time < last {
		return 0, fmt.Errorf("append: time %d is before %d", ts.Time, last)
	}

	if _, err := q.ExecContext(ctx,
		`INSERT INTO slices (session_id, seq, time, body) VALUES (?, ?, ?, ?)`,
		sessionID, seq, int64(ts.Time), body,
	); err != nil {
		return 0, fmt.Errorf("append slice: %w", err)
	}
	return seq, nil
}

const sessionColumns = `s.id, s.me, s.seed, s.label, s.started_at,
	(SELECT COUNT(*) FROM slices WHERE session_id = s.id)`

func scanSession(row interface{ Scan(...any) error }) (Session, error) {
	var sess Session
	var started int64
	if err := row.Scan(&sess.ID, &sess.Me, &sess.Seed, &sess.Label, &started, &sess.Slices); err != nil {
		return Session{}, err
	}
	sess.StartedAt = time.UnixMilli(started).UTC()
	return sess, nil
}

// Session returns one session by id.
func (s *Store) Session(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions s WHERE s.id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

// Sessions lists every session, most recent first.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions s ORDER BY s.started_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Slices returns the session's slices in the order they were appended.
func (s *Store) Slices(ctx context.Context, id string) ([]types.TimeSlice, error) {
	if _, err := s.Session(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, body FROM slices WHERE session_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("list slices: %w", err)
	}
	defer rows.Close()

	var out []types.TimeSlice
	for rows.Next() {
		var seq int
		var body []byte
		if err := rows.Scan(&seq, &body); err != nil {
			return nil, fmt.Errorf("scan slice: %w", err)
		}
		ts, err := UnmarshalSlice(body)
		if err != nil {
			return nil, fmt.Errorf("slice %d: %w", seq, err)
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

// Import stores a fixture as a new session. Either every slice is stored
// or nothing is.
func (s *Store) Import(ctx context.Context, f *Fixture) (Session, error) {
	sess, err := s.newSession(f.Me, f.Seed, f.Name)
	if err != nil {
		return Session{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertSession(ctx, tx, sess); err != nil {
		return Session{}, err
	}
	for i, ts := range f.Slices {
		if _, err := appendSlice(ctx, tx, sess.ID, ts); err != nil {
			return Session{}, fmt.Errorf("import slice %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("commit import: %w", err)
	}
	sess.Slices = len(f.Slices)
	return sess, nil
}

// Export reads a session back as a fixture.
func (s *Store) Export(ctx context.Context, id string) (*Fixture, error) {
	sess, err := s.Session(ctx, id)
	if err != nil {
		return nil, err
	}
	slices, err := s.Slices(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Fixture{Name: sess.Label, Me: sess.Me, Seed: sess.Seed, Slices: slices}, nil
}
