package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/ji-woo-hub/suguan-bot/internal/domain"
)

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// SQLite is a single-writer engine; one connection is enough.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

const scheduleColumns = `id, user_id, date, day, time_24, time_12, locale, role, language, status, created_at`

// Insert stores a new schedule row and returns the assigned id.
func (r *SQLiteRepo) Insert(ctx context.Context, s *domain.Schedule) (int64, error) {
	if s == nil {
		return 0, errors.New("nil schedule")
	}
	created := s.CreatedAt.UTC().Unix()
	if s.CreatedAt.IsZero() {
		created = time.Now().UTC().Unix()
	}
	status := s.Status
	if status == "" {
		status = domain.StatusActive
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO schedules (
			user_id, date, day, time_24, time_12, locale, role, language, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.UserID, s.Date, s.Day, s.Time24, s.Time12,
		s.Locale, s.Role, s.Language, string(status), created,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	s.ID = id
	return id, nil
}

// GetByID returns the schedule with the given id or ErrNotFound.
func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE id = ?`,
		id,
	)
	s, err := scanSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListActiveByUser returns a user's active schedules, oldest first.
func (r *SQLiteRepo) ListActiveByUser(ctx context.Context, userID int64) ([]domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE user_id = ? AND status = ?
		ORDER BY id ASC`,
		userID, string(domain.StatusActive),
	)
	if err != nil {
		return nil, err
	}
	return collectSchedules(rows)
}

// ListActive returns every active schedule, oldest first.
func (r *SQLiteRepo) ListActive(ctx context.Context) ([]domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE status = ?
		ORDER BY id ASC`,
		string(domain.StatusActive),
	)
	if err != nil {
		return nil, err
	}
	return collectSchedules(rows)
}

// ListRecent returns up to limit schedules for a user, newest first,
// skipping offset rows.
func (r *SQLiteRepo) ListRecent(ctx context.Context, userID int64, limit, offset int) ([]domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM schedules
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	return collectSchedules(rows)
}

// UpdateStatus flips a schedule's status with a compare-and-set guard on
// the current value and reports whether a row changed.
func (r *SQLiteRepo) UpdateStatus(ctx context.Context, id int64, from, to domain.Status) (bool, error) {
	if !domain.CanTransition(from, to) {
		return false, fmt.Errorf("illegal status transition %s -> %s", from, to)
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE schedules
		SET status = ?
		WHERE id = ? AND status = ?`,
		string(to), id, string(from),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
