package domain

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a schedule. Transitions only move
// forward: active -> canceled or active -> finished.
type Status string

const (
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
	StatusFinished Status = "finished"
)

// Roles and Languages are the closed sets a schedule may reference.
// Values are stored in their canonical spelling.
var (
	Roles     = []string{"Sugo 1", "Sugo 2"}
	Languages = []string{"Tagalog", "English"}
)

// Schedule is one persisted Suguan event created by a completed
// conversation.
type Schedule struct {
	ID        int64
	UserID    int64
	Date      string // MM-DD-YYYY
	Day       string // weekday name derived from Date
	Time24    string // HH:MM
	Time12    string // hh:MM AM/PM, derived from Time24
	Locale    string
	Role      string
	Language  string
	Status    Status
	CreatedAt time.Time // UTC
}

// EventAt combines the schedule's date and 24-hour time into a wall-clock
// instant in the process's local timezone.
func (s *Schedule) EventAt() (time.Time, error) {
	return EventAt(s.Date, s.Time24)
}

// CanTransition reports whether a status change is a legal forward move.
// Rows start active and may only become canceled or finished.
func CanTransition(from, to Status) bool {
	return from == StatusActive && (to == StatusCanceled || to == StatusFinished)
}

// CanonicalRole matches input against the role set case-insensitively and
// returns the canonical spelling.
func CanonicalRole(s string) (string, bool) {
	return canonical(s, Roles)
}

// CanonicalLanguage matches input against the language set
// case-insensitively and returns the canonical spelling.
func CanonicalLanguage(s string) (string, bool) {
	return canonical(s, Languages)
}

func canonical(s string, set []string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, v := range set {
		if strings.EqualFold(s, v) {
			return v, true
		}
	}
	return "", false
}
