package store

import (
	"database/sql"
	"time"

	"github.com/ji-woo-hub/suguan-bot/internal/domain"
)

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var (
		s       domain.Schedule
		status  string
		created int64
	)
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Date, &s.Day, &s.Time24, &s.Time12,
		&s.Locale, &s.Role, &s.Language, &status, &created,
	); err != nil {
		return nil, err
	}
	s.Status = domain.Status(status)
	s.CreatedAt = time.Unix(created, 0).UTC()
	return &s, nil
}

func collectSchedules(rows *sql.Rows) ([]domain.Schedule, error) {
	defer rows.Close()

	var res []domain.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return res, nil
}
